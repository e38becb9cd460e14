package chat

import (
	"context"
	"errors"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"

	"github.com/zhouzirui/game-guru/backend/internal/model/chat"
	"github.com/zhouzirui/game-guru/backend/internal/model/game"
)

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrSessionClosed    = errors.New("session closed")
	ErrEmptyMessage     = errors.New("message text is required")
	ErrAwaitingResponse = errors.New("still composing the previous reply")
	ErrGameNotFound     = errors.New("game not found")
)

// Options configures the session registry.
type Options struct {
	Timing Timing
	// SessionTTL evicts sessions idle for longer; zero keeps them until closed.
	SessionTTL time.Duration
	Clock      Clock
}

// Service owns the live conversation sessions and resolves game references.
type Service struct {
	sessions  *cache.Cache
	catalog   game.Catalog
	responder Responder
	opts      Options
}

// NewService bootstraps the in-memory session registry.
func NewService(catalog game.Catalog, responder Responder, opts Options) *Service {
	if opts.Clock == nil {
		opts.Clock = SystemClock()
	}

	ttl := opts.SessionTTL
	cleanup := ttl / 2
	if ttl <= 0 {
		ttl = cache.NoExpiration
		cleanup = 0
	}

	sessions := cache.New(ttl, cleanup)
	sessions.OnEvicted(func(id string, value interface{}) {
		if session, ok := value.(*Session); ok {
			session.Close()
			log.Info().Str("component", "chat").Str("session", id).Msg("session released")
		}
	})

	return &Service{
		sessions:  sessions,
		catalog:   catalog,
		responder: responder,
		opts:      opts,
	}
}

// CreateSession provisions an anonymous session seeded with the welcome message.
func (s *Service) CreateSession(_ context.Context) (chat.Session, error) {
	session := NewSession(s.responder, s.opts.Clock, s.opts.Timing)
	s.sessions.Set(session.ID(), session, cache.DefaultExpiration)

	log.Info().Str("component", "chat").Str("session", session.ID()).Msg("session created")
	return session.Snapshot(), nil
}

// Session returns the live session, extending its idle TTL.
func (s *Service) Session(sessionID string) (*Session, error) {
	value, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}
	session := value.(*Session)
	if session.Closed() {
		return nil, ErrSessionNotFound
	}
	// Replace only refreshes entries still present, so a concurrent close wins.
	if err := s.sessions.Replace(sessionID, session, cache.DefaultExpiration); err != nil {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// GetSession retrieves a session snapshot by identifier.
func (s *Service) GetSession(_ context.Context, sessionID string) (chat.Session, error) {
	session, err := s.Session(sessionID)
	if err != nil {
		return chat.Session{}, err
	}
	return session.Snapshot(), nil
}

// LoadTranscript returns the messages of the provided session.
func (s *Service) LoadTranscript(_ context.Context, sessionID string) ([]chat.Message, error) {
	session, err := s.Session(sessionID)
	if err != nil {
		return nil, err
	}
	return session.Messages(), nil
}

// SendMessage hands user text to the session's sequencer.
func (s *Service) SendMessage(_ context.Context, sessionID, text string) error {
	session, err := s.Session(sessionID)
	if err != nil {
		return err
	}
	return session.Send(text)
}

// ClearChat resets the session transcript to a single welcome message.
func (s *Service) ClearChat(_ context.Context, sessionID string) error {
	session, err := s.Session(sessionID)
	if err != nil {
		return err
	}
	return session.Clear()
}

// CloseSession tears the session down, cancelling any pending reply.
func (s *Service) CloseSession(_ context.Context, sessionID string) error {
	if _, ok := s.sessions.Get(sessionID); !ok {
		return ErrSessionNotFound
	}
	s.sessions.Delete(sessionID)
	return nil
}

// SelectGame resolves a message's game reference for navigation.
func (s *Service) SelectGame(_ context.Context, gameID string) (game.Game, error) {
	g, ok := s.catalog.FindByID(gameID)
	if !ok {
		return game.Game{}, ErrGameNotFound
	}
	return g, nil
}

// Count returns the number of live sessions.
func (s *Service) Count() int {
	return s.sessions.ItemCount()
}

// Shutdown closes every live session.
func (s *Service) Shutdown() {
	for id := range s.sessions.Items() {
		s.sessions.Delete(id)
	}
}
