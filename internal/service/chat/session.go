package chat

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/zhouzirui/game-guru/backend/internal/model/chat"
	"github.com/zhouzirui/game-guru/backend/internal/service/recommend"
)

const (
	WelcomeText = "Hello! I'm your Game Guru 🎲 I can help you find the perfect board game based on your preferences. What kind of gaming experience are you looking for today?"
	ClearedText = "Chat cleared! How can I help you find your next favorite game?"
)

// Responder produces reply units for a single user message.
type Responder interface {
	Respond(ctx context.Context, text string) (recommend.Reply, error)
}

// EventType names what changed in a session.
type EventType string

const (
	EventMessage EventType = "message"
	EventCleared EventType = "cleared"
	EventState   EventType = "state"
)

// Event is delivered to subscribers whenever the transcript or state changes.
type Event struct {
	Type     EventType      `json:"type"`
	Message  *chat.Message  `json:"message,omitempty"`
	State    chat.State     `json:"state"`
	Messages []chat.Message `json:"messages,omitempty"`
}

// Timing controls the simulated thinking and reveal delays.
type Timing struct {
	ReplyDelay   time.Duration
	StaggerDelay time.Duration
}

// DefaultTiming mirrors the assistant's 1s thinking pause and 500ms reveals.
func DefaultTiming() Timing {
	return Timing{ReplyDelay: time.Second, StaggerDelay: 500 * time.Millisecond}
}

// Session sequences one conversation: user message, delayed reply, staged game reveals.
type Session struct {
	id        string
	createdAt time.Time
	responder Responder
	clock     Clock
	timing    Timing

	ctx    context.Context
	cancel context.CancelFunc

	mu          sync.Mutex
	state       chat.State
	messages    []chat.Message
	seq         int
	queue       *schedule
	closed      bool
	subscribers map[int]chan Event
	nextSub     int
}

// NewSession starts a conversation seeded with the welcome message.
func NewSession(responder Responder, clock Clock, timing Timing) *Session {
	if clock == nil {
		clock = SystemClock()
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		id:          uuid.NewString(),
		createdAt:   clock.Now(),
		responder:   responder,
		clock:       clock,
		timing:      timing,
		ctx:         ctx,
		cancel:      cancel,
		state:       chat.StateIdle,
		subscribers: make(map[int]chan Event),
	}
	s.queue = newSchedule(clock, &s.mu)
	s.appendLocked(WelcomeText, false, "")
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Send appends a user message and schedules the reply.
func (s *Session) Send(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyMessage
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}
	if s.state != chat.StateIdle {
		return ErrAwaitingResponse
	}

	s.appendLocked(text, true, "")
	s.setStateLocked(chat.StateAwaitingResponse)
	s.queue.push(s.timing.ReplyDelay, func() { s.replyLocked(text) })
	return nil
}

// Clear discards history, cancels pending replies and reseeds a welcome message.
func (s *Session) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}

	s.queue.cancel()
	s.messages = nil
	s.state = chat.StateIdle
	welcome := s.newMessageLocked(ClearedText, false, "")
	s.messages = append(s.messages, welcome)
	s.publishLocked(Event{Type: EventCleared, State: s.state, Messages: s.snapshotLocked()})
	return nil
}

// Close cancels pending emissions and detaches subscribers. It is safe to call twice.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	s.queue.cancel()
	s.cancel()
	for id, ch := range s.subscribers {
		close(ch)
		delete(s.subscribers, id)
	}
	log.Debug().Str("component", "chat").Str("session", s.id).Msg("session closed")
}

// Messages returns a snapshot of the transcript in creation order.
func (s *Session) Messages() []chat.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// State returns the current sequencer state.
func (s *Session) State() chat.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Closed reports whether the session has been torn down.
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Snapshot returns the client-facing view of the session.
func (s *Session) Snapshot() chat.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return chat.Session{
		ID:        s.id,
		State:     s.state,
		CreatedAt: s.createdAt,
		Messages:  s.snapshotLocked(),
	}
}

// Subscribe registers an observer. Events that do not fit in buffer are dropped
// for that observer. The returned func unsubscribes.
func (s *Session) Subscribe(buffer int) (<-chan Event, func()) {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan Event, buffer)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		close(ch)
		return ch, func() {}
	}
	id := s.nextSub
	s.nextSub++
	s.subscribers[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if existing, ok := s.subscribers[id]; ok {
				close(existing)
				delete(s.subscribers, id)
			}
		})
	}
}

func (s *Session) replyLocked(text string) {
	reply, err := s.responder.Respond(s.ctx, text)
	units := reply.Units
	if err != nil || len(units) == 0 {
		if err != nil {
			log.Error().Err(err).Str("component", "chat").Str("session", s.id).Msg("failed to build reply")
		}
		units = []recommend.Unit{{Text: recommend.Apology}}
	}

	lead := units[0]
	s.appendLocked(lead.Text, false, lead.GameRef)

	rest := units[1:]
	if len(rest) == 0 {
		s.setStateLocked(chat.StateIdle)
		return
	}
	for i, unit := range rest {
		last := i == len(rest)-1
		s.queue.push(s.timing.StaggerDelay, func() {
			s.appendLocked(unit.Text, false, unit.GameRef)
			if last {
				s.setStateLocked(chat.StateIdle)
			}
		})
	}
}

func (s *Session) appendLocked(text string, isUser bool, gameRef string) {
	msg := s.newMessageLocked(text, isUser, gameRef)
	s.messages = append(s.messages, msg)
	s.publishLocked(Event{Type: EventMessage, Message: &msg, State: s.state})
}

func (s *Session) newMessageLocked(text string, isUser bool, gameRef string) chat.Message {
	s.seq++
	return chat.Message{
		ID:        uuid.NewString(),
		Seq:       s.seq,
		SessionID: s.id,
		Text:      text,
		IsUser:    isUser,
		Timestamp: s.clock.Now(),
		GameRef:   gameRef,
	}
}

func (s *Session) setStateLocked(state chat.State) {
	if s.state == state {
		return
	}
	s.state = state
	s.publishLocked(Event{Type: EventState, State: state})
}

func (s *Session) publishLocked(evt Event) {
	for id, ch := range s.subscribers {
		select {
		case ch <- evt:
		default:
			log.Warn().Str("component", "chat").Str("session", s.id).Int("subscriber", id).Str("event", string(evt.Type)).Msg("subscriber too slow, dropping event")
		}
	}
}

func (s *Session) snapshotLocked() []chat.Message {
	copied := make([]chat.Message, len(s.messages))
	copy(copied, s.messages)
	return copied
}
