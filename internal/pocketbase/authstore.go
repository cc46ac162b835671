package pocketbase

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AuthStore holds the token sent with every request. It never obtains one
// itself; callers Save whatever token they were issued.
type AuthStore struct {
	mu     sync.RWMutex
	token  string
	record json.RawMessage
}

func (s *AuthStore) Save(token string, record json.RawMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
	s.record = record
}

func (s *AuthStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.token
}

// Record is the raw auth record saved alongside the token, if any.
func (s *AuthStore) Record() json.RawMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.record
}

func (s *AuthStore) Clear() {
	s.Save("", nil)
}

// IsValid reports whether a token is set and its exp claim lies in the future.
// The signature is not checked; only the server can do that.
func (s *AuthStore) IsValid() bool {
	return tokenValidAt(s.Token(), time.Now())
}

func tokenValidAt(token string, now time.Time) bool {
	if token == "" {
		return false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return now.Before(exp.Time)
}
