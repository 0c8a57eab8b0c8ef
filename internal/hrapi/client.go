// Package hrapi HR 后端 REST API 客户端。
// 列表/对象载荷统一包在 {"value": ...} 里；失败时后端给 {"errorMessage": "..."}。
package hrapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type Options struct {
	BaseURL string
	Token   string // 服务令牌；请求上下文里带了调用方令牌时优先用调用方的
	Timeout time.Duration
	Retries int // 仅对 GET 的网络错误重试
	RPS     float64
	Burst   int
}

type Client struct {
	baseURL string
	token   string
	retries int
	backoff time.Duration

	httpClient *http.Client
	limiter    *rate.Limiter
	log        *zap.Logger
}

func New(o Options, httpClient *http.Client, l *zap.Logger) *Client {
	if httpClient == nil {
		timeout := o.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	lim := rate.NewLimiter(rate.Inf, 0)
	if o.RPS > 0 {
		lim = rate.NewLimiter(rate.Limit(o.RPS), max(1, o.Burst))
	}
	if l == nil {
		l = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimRight(o.BaseURL, "/"),
		token:      o.Token,
		retries:    max(0, o.Retries),
		backoff:    200 * time.Millisecond,
		httpClient: httpClient,
		limiter:    lim,
		log:        l.Named("hrapi"),
	}
}

type tokenKey struct{}

// WithToken 把调用方的 bearer token 放进上下文，转发给后端
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

func (c *Client) bearer(ctx context.Context) string {
	if t, ok := ctx.Value(tokenKey{}).(string); ok && t != "" {
		return t
	}
	return c.token
}

// envelope 后端统一包装
type envelope struct {
	Value json.RawMessage `json:"value"`
}

// do 发请求并把 value 解到 target；target 为 nil 时只检查状态码
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, target any) error {
	var payload []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		payload = b
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	attempts := 1
	if method == http.MethodGet {
		attempts += c.retries
	}

	var resp *http.Response
	for i := 0; i < attempts; i++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
		req, err := http.NewRequestWithContext(ctx, method, u, bytes.NewReader(payload))
		if err != nil {
			return fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if tok := c.bearer(ctx); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}

		resp, err = c.httpClient.Do(req)
		if err == nil {
			break
		}
		if ctx.Err() != nil || i == attempts-1 {
			return fmt.Errorf("%s %s: %w", method, path, err)
		}
		c.log.Warn("backend request failed, retrying",
			zap.String("method", method), zap.String("path", path),
			zap.Int("attempt", i+1), zap.Error(err))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.backoff * time.Duration(i+1)):
		}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newError(resp.StatusCode, raw)
	}
	if target == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if len(env.Value) == 0 || string(env.Value) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Value, target); err != nil {
		return fmt.Errorf("decode value: %w", err)
	}
	return nil
}

func pageQuery(page, pageSize int) url.Values {
	q := url.Values{}
	if page > 0 {
		q.Set("pageNumber", fmt.Sprint(page))
	}
	if pageSize > 0 {
		q.Set("pageSize", fmt.Sprint(pageSize))
	}
	return q
}

func seg(s string) string { return url.PathEscape(s) }

var errEmptyID = errors.New("empty id")
