package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"net/url"
	"time"
)

const (
	defaultTimeout = 30 * time.Second // backend trên Render khởi động chậm
	maxAttempts    = 3
	backoffStep    = 2 * time.Second
)

// TokenProvider cấp bearer token cho mỗi request. Token rỗng = chế độ dev/mock.
type TokenProvider interface {
	Token() string
}

// APIError lỗi trả về từ backend, giữ nguyên message của server
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api error %d", e.Status)
}

// IsRetriable timeout, lỗi kết nối và 5xx thì retry được; 4xx thì không
func IsRetriable(err error) bool {
	if err == nil {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status >= 500
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}
	return errors.Is(err, io.ErrUnexpectedEOF)
}

type OrderAPI struct {
	baseURL string
	http    *http.Client
	tokens  TokenProvider
	backoff time.Duration
}

func New(baseURL string, tokens TokenProvider) *OrderAPI {
	return &OrderAPI{
		baseURL: baseURL,
		http:    &http.Client{Timeout: defaultTimeout},
		tokens:  tokens,
		backoff: backoffStep,
	}
}

// do gửi request với retry: tối đa 3 lần, linear backoff, chỉ retry lỗi retriable
func (a *OrderAPI) do(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return err
		}
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(a.backoff * time.Duration(attempt-1)):
			}
			log.Printf("[API] retry %d/%d %s %s", attempt, maxAttempts, method, path)
		}

		lastErr = a.doOnce(ctx, method, path, query, payload, out)
		if lastErr == nil || !IsRetriable(lastErr) {
			return lastErr
		}
	}
	return lastErr
}

func (a *OrderAPI) doOnce(ctx context.Context, method, path string, query url.Values, payload []byte, out any) error {
	u := a.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if a.tokens != nil {
		if token := a.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	res, err := a.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}

	if res.StatusCode >= 400 {
		return &APIError{Status: res.StatusCode, Message: serverMessage(data)}
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode %s %s: %w", method, path, err)
		}
	}
	return nil
}

// serverMessage lấy message từ body lỗi nếu có
func serverMessage(data []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	if body.Message != "" {
		return body.Message
	}
	return body.Error
}

// fallback thử lần lượt các request shape, dừng ở shape đầu tiên thành công
// hoặc gặp lỗi không retry được (4xx)
func (a *OrderAPI) fallback(ctx context.Context, shapes ...func(context.Context) error) error {
	var lastErr error
	for i, shape := range shapes {
		lastErr = shape(ctx)
		if lastErr == nil {
			return nil
		}
		if !IsRetriable(lastErr) {
			return lastErr
		}
		if i < len(shapes)-1 {
			log.Printf("[API] request shape %d failed, trying fallback: %v", i+1, lastErr)
		}
	}
	return lastErr
}
