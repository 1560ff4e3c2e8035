// Package linter talks to the remote script linter. The linter compiles a
// script and reports the type of every variable it declares, which typify
// uses as hints before falling back on builtin docs.
package linter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tanema/typify/src/docs"
	"github.com/tanema/typify/src/lerrors"
)

const (
	// DefaultURL is the public translate endpoint.
	DefaultURL = "https://pine-facade.tradingview.com/pine-facade/translate_light?user_name=Guest&v=3"
	// DefaultUserAgent is sent when no user agent is configured.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36 PineLinterMini/1.0"
	// DefaultTimeout bounds a single lint request.
	DefaultTimeout = 20 * time.Second

	origin     = "https://www.tradingview.com"
	snippetLen = 200
)

// ErrEmptyScript is returned when there is nothing to lint.
var ErrEmptyScript = errors.New("script cannot be empty")

type (
	// Client lints scripts. The zero value uses the defaults.
	Client struct {
		URL       string
		UserAgent string
		Timeout   time.Duration
		HTTP      *http.Client
		Logger    *zap.Logger
	}
	// Result is the decoded linter response. Only the fields typify needs are
	// kept.
	Result struct {
		Success bool `json:"success"`
		Result  struct {
			Variables []docs.Variable `json:"variables"`
		} `json:"result"`
	}
)

// Lint sends src to the linter and decodes its response.
func (c *Client) Lint(ctx context.Context, src string) (*Result, error) {
	if strings.TrimSpace(src) == "" {
		return nil, lintErr(ErrEmptyScript)
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout())
	defer cancel()

	form := url.Values{"source": {src}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(), strings.NewReader(form.Encode()))
	if err != nil {
		return nil, lintErr(err)
	}
	req.Header.Set("User-Agent", c.userAgent())
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded;charset=UTF-8")
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("Origin", origin)
	req.Header.Set("Referer", origin+"/")

	res, err := c.client().Do(req)
	if err != nil {
		return nil, lintErr(err)
	}
	defer func() { _ = res.Body.Close() }()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, lintErr(err)
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, lintErr(fmt.Errorf("http %d: %s", res.StatusCode, snippet(body)))
	}
	contentType := res.Header.Get("Content-Type")
	if mediaType, _, err := mime.ParseMediaType(contentType); err != nil || mediaType != "application/json" {
		return nil, lintErr(fmt.Errorf("unexpected content type %q: %s", contentType, snippet(body)))
	}
	result := &Result{}
	if err := json.Unmarshal(body, result); err != nil {
		return nil, lintErr(fmt.Errorf("decode response: %w: %s", err, snippet(body)))
	}
	return result, nil
}

// Hints returns the variables the linter found in src. Every failure is
// logged and results in no hints so that typify can carry on with builtins.
func (c *Client) Hints(ctx context.Context, src string) []docs.Variable {
	result, err := c.Lint(ctx, src)
	if err != nil {
		c.logger().Warn("linter unavailable", zap.Error(err))
		return nil
	} else if !result.Success {
		c.logger().Warn("linter could not compile script")
		return nil
	}
	c.logger().Debug("linter hints", zap.Int("variables", len(result.Result.Variables)))
	return result.Result.Variables
}

func (c *Client) url() string {
	if c.URL == "" {
		return DefaultURL
	}
	return c.URL
}

func (c *Client) userAgent() string {
	if c.UserAgent == "" {
		return DefaultUserAgent
	}
	return c.UserAgent
}

func (c *Client) timeout() time.Duration {
	if c.Timeout <= 0 {
		return DefaultTimeout
	}
	return c.Timeout
}

func (c *Client) client() *http.Client {
	if c.HTTP == nil {
		return http.DefaultClient
	}
	return c.HTTP
}

func (c *Client) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

func lintErr(err error) error {
	return &lerrors.Error{Kind: lerrors.LinterErr, Err: err}
}

func snippet(body []byte) string {
	if len(body) > snippetLen {
		body = body[:snippetLen]
	}
	return string(body)
}
