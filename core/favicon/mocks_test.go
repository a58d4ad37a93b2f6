package favicon

import (
	"context"
	"io"
	"strings"
	"sync"

	"favicon-finder-api/core/domain"
	"favicon-finder-api/core/interfaces"
)

// mockHTTPClient is a mock implementation of the HTTPClient interface
type mockHTTPClient struct {
	getFunc  func(ctx context.Context, url string) (interfaces.Response, error)
	headFunc func(ctx context.Context, url string) (interfaces.Response, error)
}

func (m *mockHTTPClient) Get(ctx context.Context, url string) (interfaces.Response, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, url)
	}
	return nil, nil
}

func (m *mockHTTPClient) Head(ctx context.Context, url string) (interfaces.Response, error) {
	if m.headFunc != nil {
		return m.headFunc(ctx, url)
	}
	return nil, nil
}

// mockResponse is a mock implementation of the Response interface
type mockResponse struct {
	statusCode int
	body       string
	headers    map[string]string
	truncated  bool
}

func (m *mockResponse) StatusCode() int {
	return m.statusCode
}

func (m *mockResponse) Body() io.ReadCloser {
	return io.NopCloser(strings.NewReader(m.body))
}

func (m *mockResponse) Header(key string) string {
	if m.headers != nil {
		return m.headers[key]
	}
	return ""
}

func (m *mockResponse) Truncated() bool {
	return m.truncated
}

// htmlClient serves body with status 200 for every GET
func htmlClient(body string) *mockHTTPClient {
	return &mockHTTPClient{
		getFunc: func(ctx context.Context, url string) (interfaces.Response, error) {
			return &mockResponse{statusCode: 200, body: body}, nil
		},
	}
}

// mockLogger records every message it receives
type mockLogger struct {
	mu       sync.Mutex
	messages []string
}

func (m *mockLogger) record(msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, msg)
}

func (m *mockLogger) Debug(msg string, fields map[string]interface{}) { m.record(msg) }
func (m *mockLogger) Info(msg string, fields map[string]interface{})  { m.record(msg) }
func (m *mockLogger) Warn(msg string, fields map[string]interface{})  { m.record(msg) }
func (m *mockLogger) Error(msg string, fields map[string]interface{}) { m.record(msg) }

func (m *mockLogger) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.messages)
}

// mockStrategy is a mock implementation of the FaviconStrategy interface
type mockStrategy struct {
	name       string
	searchFunc func(ctx context.Context, pageURL string) (*domain.FaviconURL, error)
	calls      int
	mu         sync.Mutex
}

func (m *mockStrategy) Name() string {
	return m.name
}

func (m *mockStrategy) Search(ctx context.Context, pageURL string) (*domain.FaviconURL, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.searchFunc != nil {
		return m.searchFunc(ctx, pageURL)
	}
	return nil, nil
}
