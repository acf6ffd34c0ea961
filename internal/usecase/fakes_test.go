package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"hospital-management-system/internal/service"
	"hospital-management-system/pkg/jwt"

	"github.com/google/uuid"
)

// fakeTokenStore keeps live token ids in a set keyed like the redis store.
type fakeTokenStore struct {
	mu     sync.Mutex
	tokens map[string]time.Duration
	err    error
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: map[string]time.Duration{}}
}

func (s *fakeTokenStore) Store(_ context.Context, tokenType jwt.TokenType, userID uuid.UUID, tokenID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.tokens[service.TokenKey(tokenType, userID, tokenID)] = ttl
	return nil
}

func (s *fakeTokenStore) Exists(_ context.Context, tokenType jwt.TokenType, userID uuid.UUID, tokenID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return false, s.err
	}
	_, ok := s.tokens[service.TokenKey(tokenType, userID, tokenID)]
	return ok, nil
}

func (s *fakeTokenStore) Revoke(_ context.Context, tokenType jwt.TokenType, userID uuid.UUID, tokenID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	delete(s.tokens, service.TokenKey(tokenType, userID, tokenID))
	return nil
}

func (s *fakeTokenStore) RevokeAll(_ context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	for key := range s.tokens {
		if strings.Contains(key, ":"+userID.String()+":") {
			delete(s.tokens, key)
		}
	}
	return nil
}

func (s *fakeTokenStore) count(userID uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for key := range s.tokens {
		if strings.Contains(key, ":"+userID.String()+":") {
			n++
		}
	}
	return n
}

// fakeLoginThrottle counts failures without a window.
type fakeLoginThrottle struct {
	mu       sync.Mutex
	failures map[string]int64
}

func newFakeLoginThrottle() *fakeLoginThrottle {
	return &fakeLoginThrottle{failures: map[string]int64{}}
}

func (t *fakeLoginThrottle) Attempts(_ context.Context, email string) (int64, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.failures[email], nil
}

func (t *fakeLoginThrottle) RecordFailure(_ context.Context, email string) (int64, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.failures[email]++
	return t.failures[email], nil
}

func (t *fakeLoginThrottle) Reset(_ context.Context, email string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.failures, email)
	return nil
}
