package favicon

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"favicon-finder-api/core/domain"
	coreerrors "favicon-finder-api/core/errors"
	"favicon-finder-api/core/interfaces"
	stdhttp "favicon-finder-api/infrastructure/http/standard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePage = `<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="utf-8">
	<title>Blog post</title>
	<link rel="icon" type="image/png" sizes="32x32" href="/favicon-32x32.png">
	<link rel="shortcut icon" href="/favicon.ico">
	<link rel="apple-touch-icon" sizes="180x180" href="/apple-touch-icon.png">
</head>
<body><h1>Hello</h1></body>
</html>`

func TestNewHTMLStrategy(t *testing.T) {
	strategy := NewHTMLStrategy(interfaces.Dependencies{})

	require.NotNil(t, strategy)
	assert.Equal(t, "html", strategy.Name())
}

func TestHTMLStrategy_Search_Success(t *testing.T) {
	var requested string
	client := &mockHTTPClient{
		getFunc: func(ctx context.Context, url string) (interfaces.Response, error) {
			requested = url
			return &mockResponse{statusCode: 200, body: samplePage}, nil
		},
	}
	strategy := NewHTMLStrategy(interfaces.Dependencies{HTTPClient: client})

	favicon, err := strategy.Search(context.Background(), "https://example.com/blog/post")
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/blog/post", requested)
	assert.Equal(t, domain.FaviconTypeAppleTouchIcon, favicon.Type)
	assert.Equal(t, "https://example.com/apple-touch-icon.png", favicon.String())
}

func TestHTMLStrategy_Search_BaseTag(t *testing.T) {
	page := `<html><head><base href="https://cdn.example.com/assets/"><link rel="icon" href="icon.png"></head></html>`
	strategy := NewHTMLStrategy(interfaces.Dependencies{HTTPClient: htmlClient(page)})

	favicon, err := strategy.Search(context.Background(), "https://example.com/blog/post")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/assets/icon.png", favicon.String())
}

func TestHTMLStrategy_Search_EmptyBody(t *testing.T) {
	strategy := NewHTMLStrategy(interfaces.Dependencies{HTTPClient: htmlClient("")})

	_, err := strategy.Search(context.Background(), "https://example.com/")

	require.Error(t, err)
	assert.True(t, coreerrors.IsEmptyResponse(err))
	assert.False(t, coreerrors.IsNoAcceptableCandidate(err))
}

func TestHTMLStrategy_Search_InvalidUTF8(t *testing.T) {
	strategy := NewHTMLStrategy(interfaces.Dependencies{HTTPClient: htmlClient("<html>\xff\xfe\xfd</html>")})

	_, err := strategy.Search(context.Background(), "https://example.com/")

	assert.True(t, coreerrors.IsDecodeFailure(err))
}

func TestHTMLStrategy_Search_NoLinks(t *testing.T) {
	strategy := NewHTMLStrategy(interfaces.Dependencies{HTTPClient: htmlClient("<html><head><title>t</title></head><body>hi</body></html>")})

	_, err := strategy.Search(context.Background(), "https://example.com/")

	assert.True(t, coreerrors.IsNoAcceptableCandidate(err))
}

func TestHTMLStrategy_Search_TransportError(t *testing.T) {
	client := &mockHTTPClient{
		getFunc: func(ctx context.Context, url string) (interfaces.Response, error) {
			return nil, errors.New("connection refused")
		},
	}
	strategy := NewHTMLStrategy(interfaces.Dependencies{HTTPClient: client})

	_, err := strategy.Search(context.Background(), "https://example.com/")

	assert.True(t, coreerrors.IsFetchFailed(err))
	assert.Contains(t, err.Error(), "connection refused")
}

func TestHTMLStrategy_Search_ErrorStatus(t *testing.T) {
	client := &mockHTTPClient{
		getFunc: func(ctx context.Context, url string) (interfaces.Response, error) {
			return &mockResponse{statusCode: 404, body: samplePage}, nil
		},
	}
	strategy := NewHTMLStrategy(interfaces.Dependencies{HTTPClient: client})

	_, err := strategy.Search(context.Background(), "https://example.com/missing")

	assert.True(t, coreerrors.IsFetchFailed(err))
	assert.True(t, coreerrors.IsExternalAPI(err))
}

func TestHTMLStrategy_Search_InvalidPageURL(t *testing.T) {
	called := false
	client := &mockHTTPClient{
		getFunc: func(ctx context.Context, url string) (interfaces.Response, error) {
			called = true
			return nil, errors.New("should not be called")
		},
	}
	strategy := NewHTMLStrategy(interfaces.Dependencies{HTTPClient: client})

	for _, raw := range []string{"", "example.com", "ftp://example.com/", "https://", "://bad"} {
		_, err := strategy.Search(context.Background(), raw)
		assert.True(t, coreerrors.IsValidation(err), "url %q should fail validation", raw)
	}
	assert.False(t, called)
}

func TestHTMLStrategy_Search_NoHTTPClient(t *testing.T) {
	strategy := NewHTMLStrategy(interfaces.Dependencies{})

	_, err := strategy.Search(context.Background(), "https://example.com/")

	assert.ErrorIs(t, err, ErrNoHTTPClient)
	assert.True(t, coreerrors.IsConfiguration(err))
	_, hasKind := coreerrors.KindOf(err)
	assert.False(t, hasKind)
}

func TestHTMLStrategy_Search_TruncatedMidCharacter(t *testing.T) {
	head := `<head><link rel="icon" href="/i.png"></head>`
	full := head + strings.Repeat("é", 100)
	// Cut inside the final two-byte character
	capped := full[:len(full)-1]

	client := &mockHTTPClient{
		getFunc: func(ctx context.Context, url string) (interfaces.Response, error) {
			return &mockResponse{statusCode: 200, body: capped, truncated: true}, nil
		},
	}
	strategy := NewHTMLStrategy(interfaces.Dependencies{HTTPClient: client})

	favicon, err := strategy.Search(context.Background(), "https://example.com/")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/i.png", favicon.String())
}

func TestHTMLStrategy_Search_IncompleteCharacterWithoutTruncation(t *testing.T) {
	full := `<head><link rel="icon" href="/i.png"></head>` + "é"
	strategy := NewHTMLStrategy(interfaces.Dependencies{HTTPClient: htmlClient(full[:len(full)-1])})

	_, err := strategy.Search(context.Background(), "https://example.com/")

	assert.True(t, coreerrors.IsDecodeFailure(err))
}

func TestHTMLStrategy_Search_BodyCappedByStandardClient(t *testing.T) {
	page := `<head><link rel="icon" href="/i.png"></head>` + strings.Repeat("é", 100)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(page))
	}))
	defer server.Close()

	client := stdhttp.NewStandardHTTPClientWithOptions(stdhttp.Options{Timeout: 5 * time.Second, MaxBodyBytes: 101})
	strategy := NewHTMLStrategy(interfaces.Dependencies{HTTPClient: client})

	favicon, err := strategy.Search(context.Background(), server.URL+"/post")
	require.NoError(t, err)
	assert.Equal(t, server.URL+"/i.png", favicon.String())
}

func TestTrimPartialRune(t *testing.T) {
	testCases := []struct {
		name string
		in   string
		want string
	}{
		{"ascii", "abc", "abc"},
		{"complete two-byte", "aé", "aé"},
		{"cut two-byte", "a\xc3", "a"},
		{"cut three-byte", "a\xe2\x82", "a"},
		{"complete three-byte", "a€", "a€"},
		{"cut four-byte", "a\xf0\x9f\x98", "a"},
		{"empty", "", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, string(trimPartialRune([]byte(tc.in))))
		})
	}
}

func TestHTMLStrategy_SearchWith_PreferredTypeIgnored(t *testing.T) {
	strategy := NewHTMLStrategy(interfaces.Dependencies{HTTPClient: htmlClient(samplePage)})

	favicon, err := strategy.SearchWith(context.Background(), SearchRequest{
		PageURL:       "https://example.com/",
		PreferredType: domain.FaviconTypeIcon,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.FaviconTypeAppleTouchIcon, favicon.Type)
}

func TestHTMLStrategy_SearchWith_LoggingToggle(t *testing.T) {
	logger := &mockLogger{}
	strategy := NewHTMLStrategy(interfaces.Dependencies{HTTPClient: htmlClient(samplePage), Logger: logger})

	_, err := strategy.SearchWith(context.Background(), SearchRequest{PageURL: "https://example.com/"})
	require.NoError(t, err)
	assert.Equal(t, 0, logger.count())

	_, err = strategy.SearchWith(context.Background(), SearchRequest{PageURL: "https://example.com/", LoggingEnabled: true})
	require.NoError(t, err)
	assert.Greater(t, logger.count(), 0)
}

func TestHTMLStrategy_SearchAsync_DeliversExactlyOnce(t *testing.T) {
	testCases := []struct {
		name   string
		client *mockHTTPClient
		check  func(t *testing.T, r Result)
	}{
		{
			name:   "success",
			client: htmlClient(samplePage),
			check: func(t *testing.T, r Result) {
				require.NoError(t, r.Err)
				assert.Equal(t, "https://example.com/apple-touch-icon.png", r.Favicon.String())
			},
		},
		{
			name:   "empty body",
			client: htmlClient(""),
			check: func(t *testing.T, r Result) {
				assert.Nil(t, r.Favicon)
				assert.True(t, coreerrors.IsEmptyResponse(r.Err))
			},
		},
		{
			name: "transport error",
			client: &mockHTTPClient{
				getFunc: func(ctx context.Context, url string) (interfaces.Response, error) {
					return nil, errors.New("timeout")
				},
			},
			check: func(t *testing.T, r Result) {
				assert.Nil(t, r.Favicon)
				assert.True(t, coreerrors.IsFetchFailed(r.Err))
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			strategy := NewHTMLStrategy(interfaces.Dependencies{HTTPClient: tc.client})
			results := strategy.SearchAsync(context.Background(), SearchRequest{PageURL: "https://example.com/"})

			var received []Result
			timeout := time.After(2 * time.Second)
		loop:
			for {
				select {
				case r, ok := <-results:
					if !ok {
						break loop
					}
					received = append(received, r)
				case <-timeout:
					t.Fatal("SearchAsync did not complete")
				}
			}

			require.Len(t, received, 1)
			tc.check(t, received[0])
		})
	}
}

func TestHTMLStrategy_ConcurrentSearchesAreIndependent(t *testing.T) {
	client := &mockHTTPClient{
		getFunc: func(ctx context.Context, url string) (interfaces.Response, error) {
			if url == "https://a.example.com/" {
				return &mockResponse{statusCode: 200, body: `<head><link rel="icon" href="/a.png"></head>`}, nil
			}
			return &mockResponse{statusCode: 200, body: `<head><link rel="shortcut icon" href="/b.ico"></head>`}, nil
		},
	}
	strategy := NewHTMLStrategy(interfaces.Dependencies{HTTPClient: client})

	a := strategy.SearchAsync(context.Background(), SearchRequest{PageURL: "https://a.example.com/"})
	b := strategy.SearchAsync(context.Background(), SearchRequest{PageURL: "https://b.example.com/"})

	ra, rb := <-a, <-b
	require.NoError(t, ra.Err)
	require.NoError(t, rb.Err)
	assert.Equal(t, "https://a.example.com/a.png", ra.Favicon.String())
	assert.Equal(t, "https://b.example.com/b.ico", rb.Favicon.String())
}
