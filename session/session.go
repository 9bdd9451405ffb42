package session

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"driftsip_admin/model"

	"github.com/golang-jwt/jwt/v5"
)

// RefreshAPI phần API mà session cần để làm mới token
type RefreshAPI interface {
	Login(ctx context.Context, username, password string) (model.TokenData, error)
	RefreshToken(ctx context.Context, refreshToken string) (model.TokenData, error)
}

// Session giữ token cho Action Dispatcher và Polling Loader.
// Token rỗng được chấp nhận (chế độ dev/mock không cần auth).
type Session struct {
	mu       sync.Mutex
	access   string
	refresh  string
	username string
	password string
}

func New(token string) *Session {
	return &Session{access: token}
}

// WithCredentials cho phép RefreshSession đăng nhập lại khi refresh token hết hạn
func (s *Session) WithCredentials(username, password string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.username = username
	s.password = password
	return s
}

func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.access
}

func (s *Session) SetTokens(data model.TokenData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = data.AccessToken
	if data.RefreshToken != "" {
		s.refresh = data.RefreshToken
	}
}

// Expired đọc claim exp không cần verify; token không parse được coi như hết hạn
func (s *Session) Expired() bool {
	s.mu.Lock()
	token := s.access
	s.mu.Unlock()

	if token == "" {
		return false // chưa đăng nhập thì không có gì để hết hạn
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return time.Now().After(exp.Time)
}

// RefreshSession làm mới access token: thử refresh token trước, rồi đăng nhập lại
func (s *Session) RefreshSession(ctx context.Context, api RefreshAPI) error {
	s.mu.Lock()
	refresh := s.refresh
	username, password := s.username, s.password
	s.mu.Unlock()

	if refresh != "" {
		data, err := api.RefreshToken(ctx, refresh)
		if err == nil {
			s.SetTokens(data)
			return nil
		}
		log.Printf("[SESSION] refresh token failed, falling back to login: %v", err)
	}

	if username == "" {
		return errors.New("no refresh token or credentials")
	}

	data, err := api.Login(ctx, username, password)
	if err != nil {
		return err
	}
	s.SetTokens(data)
	return nil
}
