package favicon

import (
	"context"
	"errors"
	"testing"

	"favicon-finder-api/core/domain"
	coreerrors "favicon-finder-api/core/errors"
	"favicon-finder-api/core/interfaces"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWellKnownStrategy_Search_Found(t *testing.T) {
	var requested string
	client := &mockHTTPClient{
		headFunc: func(ctx context.Context, url string) (interfaces.Response, error) {
			requested = url
			return &mockResponse{statusCode: 200}, nil
		},
	}
	strategy := NewWellKnownStrategy(interfaces.Dependencies{HTTPClient: client})

	favicon, err := strategy.Search(context.Background(), "https://example.com/blog/post?id=1#comments")
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/favicon.ico", requested)
	assert.Equal(t, "https://example.com/favicon.ico", favicon.String())
	assert.Equal(t, domain.FaviconTypeShortcutIcon, favicon.Type)
	assert.Equal(t, "ico", strategy.Name())
}

func TestWellKnownStrategy_Search_NotFound(t *testing.T) {
	client := &mockHTTPClient{
		headFunc: func(ctx context.Context, url string) (interfaces.Response, error) {
			return &mockResponse{statusCode: 404}, nil
		},
	}
	strategy := NewWellKnownStrategy(interfaces.Dependencies{HTTPClient: client})

	_, err := strategy.Search(context.Background(), "https://example.com/")

	assert.True(t, coreerrors.IsNoAcceptableCandidate(err))
}

func TestWellKnownStrategy_Search_FallsBackToGet(t *testing.T) {
	getCalled := false
	client := &mockHTTPClient{
		headFunc: func(ctx context.Context, url string) (interfaces.Response, error) {
			return &mockResponse{statusCode: 405}, nil
		},
		getFunc: func(ctx context.Context, url string) (interfaces.Response, error) {
			getCalled = true
			return &mockResponse{statusCode: 200, body: "\x00\x00\x01\x00"}, nil
		},
	}
	strategy := NewWellKnownStrategy(interfaces.Dependencies{HTTPClient: client})

	favicon, err := strategy.Search(context.Background(), "http://example.com:8080/")
	require.NoError(t, err)

	assert.True(t, getCalled)
	assert.Equal(t, "http://example.com:8080/favicon.ico", favicon.String())
}

func TestWellKnownStrategy_Search_TransportError(t *testing.T) {
	client := &mockHTTPClient{
		headFunc: func(ctx context.Context, url string) (interfaces.Response, error) {
			return nil, errors.New("dial tcp: no such host")
		},
	}
	strategy := NewWellKnownStrategy(interfaces.Dependencies{HTTPClient: client})

	_, err := strategy.Search(context.Background(), "https://example.com/")

	assert.True(t, coreerrors.IsFetchFailed(err))
}

func TestWellKnownStrategy_Search_InvalidURL(t *testing.T) {
	strategy := NewWellKnownStrategy(interfaces.Dependencies{HTTPClient: &mockHTTPClient{}})

	_, err := strategy.Search(context.Background(), "not a url")

	assert.True(t, coreerrors.IsValidation(err))
}

func TestWellKnownStrategy_Search_NoHTTPClient(t *testing.T) {
	strategy := NewWellKnownStrategy(interfaces.Dependencies{})

	_, err := strategy.Search(context.Background(), "https://example.com/")

	assert.ErrorIs(t, err, ErrNoHTTPClient)
}
