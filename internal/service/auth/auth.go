package service_auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Token = string

var (
	ErrInternal     = errors.New("internal error")
	ErrInvalidToken = errors.New("invalid token")
)

type SessionCache interface {
	Set(key string, value string, ttl time.Duration) error
	Get(key string) (string, error)
}

// Service issues opaque session tokens and resolves them back to user ids.
// It stands in for a real identity source: any client that presents a user
// id gets a session. Swap this out before exposing the server publicly.
type Service struct {
	sessionCache SessionCache
	ttl          time.Duration
}

const defaultSessionTTL = 12 * time.Hour

func New(sessionCache SessionCache, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &Service{
		sessionCache: sessionCache,
		ttl:          ttl,
	}
}

func (s *Service) IssueSession(userID uuid.UUID) (Token, error) {
	token := uuid.NewString()
	if err := s.sessionCache.Set(token, userID.String(), s.ttl); err != nil {
		return "", errors.Join(ErrInternal, err)
	}
	return token, nil
}

func (s *Service) ResolveUser(token Token) (uuid.UUID, error) {
	if token == "" {
		return uuid.Nil, ErrInvalidToken
	}

	raw, err := s.sessionCache.Get(token)
	if err != nil {
		return uuid.Nil, errors.Join(ErrInternal, err)
	}
	if raw == "" {
		return uuid.Nil, ErrInvalidToken
	}

	userID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: malformed session payload", ErrInternal)
	}
	return userID, nil
}
