package linter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tanema/typify/src/docs"
	"github.com/tanema/typify/src/lerrors"
)

func newServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return &Client{URL: srv.URL, HTTP: srv.Client()}
}

func TestLint(t *testing.T) {
	t.Parallel()
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, DefaultUserAgent, r.Header.Get("User-Agent"))
		assert.Equal(t, "https://www.tradingview.com", r.Header.Get("Origin"))
		assert.Equal(t, "https://www.tradingview.com/", r.Header.Get("Referer"))
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "a = close", r.PostForm.Get("source"))
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write([]byte(`{"success":true,"result":{"variables":[{"name":"a","type":"series float"}]}}`))
	})

	result, err := client.Lint(context.Background(), "a = close")
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, []docs.Variable{{Name: "a", Type: "series float"}}, result.Result.Variables)
	assert.Equal(t, result.Result.Variables, client.Hints(context.Background(), "a = close"))
}

func TestLintFailures(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		contentType string
		status      int
		body        string
	}{
		{"status", "application/json", http.StatusBadGateway, `{}`},
		{"content type", "text/html", http.StatusOK, `<html></html>`},
		{"json", "application/json", http.StatusOK, `{"success":`},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			client := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", test.contentType)
				w.WriteHeader(test.status)
				_, _ = w.Write([]byte(test.body))
			})
			_, err := client.Lint(context.Background(), "a = 1")
			assert.True(t, lerrors.Is(err, lerrors.LinterErr))
			assert.Nil(t, client.Hints(context.Background(), "a = 1"))
		})
	}
}

func TestLintEmptyScript(t *testing.T) {
	t.Parallel()
	client := &Client{URL: "http://127.0.0.1:0"}
	_, err := client.Lint(context.Background(), " \n\t")
	assert.ErrorIs(t, err, ErrEmptyScript)
	assert.True(t, lerrors.Is(err, lerrors.LinterErr))
}

func TestLintUnsuccessful(t *testing.T) {
	t.Parallel()
	client := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":false,"result":{"variables":[{"name":"a","type":"int"}]}}`))
	})
	result, err := client.Lint(context.Background(), "a = 1")
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Nil(t, client.Hints(context.Background(), "a = 1"))
}

func TestLintTimeout(t *testing.T) {
	t.Parallel()
	done := make(chan struct{})
	client := newServer(t, func(_ http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-done:
		}
	})
	defer close(done)
	client.Timeout = 10 * time.Millisecond
	_, err := client.Lint(context.Background(), "a = 1")
	assert.True(t, lerrors.Is(err, lerrors.LinterErr))
}
