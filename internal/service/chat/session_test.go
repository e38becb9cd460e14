package chat

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/game-guru/backend/internal/model/chat"
	"github.com/zhouzirui/game-guru/backend/internal/model/game"
	"github.com/zhouzirui/game-guru/backend/internal/service/recommend"
)

func scenarioCatalog() *game.MemoryStore {
	return game.NewMemoryStore([]game.Game{
		{ID: "A", Name: "Alpha", Description: "Family fun.", MinPlayers: 2, MaxPlayers: 4, PlayTime: 60, Difficulty: 2, Categories: []game.Category{game.Family}},
		{ID: "B", Name: "Bravo", Description: "Deep strategy.", MinPlayers: 1, MaxPlayers: 8, PlayTime: 120, Difficulty: 4, Categories: []game.Category{game.Strategy}},
		{ID: "C", Name: "Charlie", Description: "Party time.", MinPlayers: 3, MaxPlayers: 6, PlayTime: 20, Difficulty: 1, Categories: []game.Category{game.Party}},
	})
}

func newTestResponder(t *testing.T) *recommend.Responder {
	t.Helper()
	r, err := recommend.NewResponder(context.Background(), scenarioCatalog(), recommend.Config{})
	require.NoError(t, err)
	return r
}

func newTestSession(t *testing.T) (*Session, *manualClock) {
	t.Helper()
	clock := newManualClock()
	session := NewSession(newTestResponder(t), clock, DefaultTiming())
	t.Cleanup(session.Close)
	return session, clock
}

type failingResponder struct{}

func (failingResponder) Respond(context.Context, string) (recommend.Reply, error) {
	return recommend.Reply{}, errors.New("boom")
}

func texts(messages []chat.Message) []string {
	out := make([]string, len(messages))
	for i, m := range messages {
		out[i] = m.Text
	}
	return out
}

func TestNewSessionSeedsWelcome(t *testing.T) {
	session, _ := newTestSession(t)

	messages := session.Messages()
	require.Len(t, messages, 1)
	assert.Equal(t, WelcomeText, messages[0].Text)
	assert.False(t, messages[0].IsUser)
	assert.Equal(t, chat.StateIdle, session.State())
}

func TestSendStagesRecommendations(t *testing.T) {
	session, clock := newTestSession(t)

	require.NoError(t, session.Send("I want something for 3 players that's easy"))
	messages := session.Messages()
	require.Len(t, messages, 2)
	assert.True(t, messages[1].IsUser)
	assert.Equal(t, chat.StateAwaitingResponse, session.State())

	clock.Advance(999 * time.Millisecond)
	assert.Len(t, session.Messages(), 2)

	clock.Advance(time.Millisecond)
	messages = session.Messages()
	require.Len(t, messages, 3)
	assert.Equal(t, recommend.LeadStructured, messages[2].Text)
	assert.Equal(t, chat.StateAwaitingResponse, session.State())

	clock.Advance(500 * time.Millisecond)
	messages = session.Messages()
	require.Len(t, messages, 4)
	assert.Equal(t, "A", messages[3].GameRef)

	clock.Advance(500 * time.Millisecond)
	messages = session.Messages()
	require.Len(t, messages, 5)
	assert.Equal(t, "C", messages[4].GameRef)
	assert.Equal(t, chat.StateIdle, session.State())
	assert.Zero(t, clock.Pending())
}

func TestSendRejectsBlankInput(t *testing.T) {
	session, _ := newTestSession(t)

	for _, input := range []string{"", "   ", "\n\t"} {
		assert.ErrorIs(t, session.Send(input), ErrEmptyMessage)
	}
	assert.Len(t, session.Messages(), 1)
	assert.Equal(t, chat.StateIdle, session.State())
}

func TestSendRejectedWhileAwaiting(t *testing.T) {
	session, clock := newTestSession(t)

	require.NoError(t, session.Send("party"))
	assert.ErrorIs(t, session.Send("another"), ErrAwaitingResponse)
	assert.Len(t, session.Messages(), 2)

	clock.Advance(10 * time.Second)
	assert.Equal(t, chat.StateIdle, session.State())
	assert.NoError(t, session.Send("another"))
}

func TestGreetingHasNoGameUnits(t *testing.T) {
	session, clock := newTestSession(t)

	require.NoError(t, session.Send("hello"))
	clock.Advance(time.Second)

	messages := session.Messages()
	require.Len(t, messages, 3)
	assert.Equal(t, recommend.Greeting, messages[2].Text)
	assert.Empty(t, messages[2].GameRef)
	assert.Equal(t, chat.StateIdle, session.State())
}

func TestResponderErrorStillReturnsToIdle(t *testing.T) {
	clock := newManualClock()
	session := NewSession(failingResponder{}, clock, DefaultTiming())
	defer session.Close()

	require.NoError(t, session.Send("anything"))
	clock.Advance(time.Second)

	messages := session.Messages()
	require.Len(t, messages, 3)
	assert.Equal(t, recommend.Apology, messages[2].Text)
	assert.Equal(t, chat.StateIdle, session.State())
}

func TestClearCancelsPendingAndIsIdempotent(t *testing.T) {
	session, clock := newTestSession(t)

	require.NoError(t, session.Send("I want something for 3 players that's easy"))
	clock.Advance(time.Second)
	require.Len(t, session.Messages(), 3)

	require.NoError(t, session.Clear())
	first := session.Messages()
	require.NoError(t, session.Clear())
	second := session.Messages()

	assert.Equal(t, []string{ClearedText}, texts(first))
	assert.Equal(t, texts(first), texts(second))
	assert.Equal(t, chat.StateIdle, session.State())

	clock.Advance(10 * time.Second)
	assert.Equal(t, []string{ClearedText}, texts(session.Messages()))
	assert.Zero(t, clock.Pending())
}

func TestCloseCancelsPendingEmissions(t *testing.T) {
	session, clock := newTestSession(t)

	require.NoError(t, session.Send("party"))
	session.Close()
	session.Close()

	clock.Advance(10 * time.Second)
	assert.Len(t, session.Messages(), 2)
	assert.ErrorIs(t, session.Send("more"), ErrSessionClosed)
	assert.ErrorIs(t, session.Clear(), ErrSessionClosed)
}

func TestHistoryIsMonotonic(t *testing.T) {
	session, clock := newTestSession(t)

	inputs := []string{"hello", "2 players", "something funny", "a quick one", "recommend something", "zzz"}
	previous := len(session.Messages())
	for _, input := range inputs {
		require.NoError(t, session.Send(input))
		for i := 0; i < 10; i++ {
			clock.Advance(250 * time.Millisecond)
			current := len(session.Messages())
			require.GreaterOrEqual(t, current, previous)
			previous = current
		}
		require.Equal(t, chat.StateIdle, session.State(), input)
	}

	messages := session.Messages()
	assert.False(t, messages[0].IsUser)
	for i := 1; i < len(messages); i++ {
		assert.Greater(t, messages[i].Seq, messages[i-1].Seq)
		assert.False(t, messages[i].IsUser && messages[i-1].IsUser, "consecutive user messages at %d", i)
	}
}

func TestSubscribeReceivesEventsInOrder(t *testing.T) {
	session, clock := newTestSession(t)
	events, unsubscribe := session.Subscribe(32)
	defer unsubscribe()

	require.NoError(t, session.Send("I want something for 3 players that's easy"))
	clock.Advance(2 * time.Second)

	var refs []string
	var states []chat.State
	for len(events) > 0 {
		evt := <-events
		switch evt.Type {
		case EventMessage:
			refs = append(refs, evt.Message.GameRef)
		case EventState:
			states = append(states, evt.State)
		}
	}
	assert.Equal(t, []string{"", "", "A", "C"}, refs)
	assert.Equal(t, []chat.State{chat.StateAwaitingResponse, chat.StateIdle}, states)
}

func TestCloseClosesSubscribers(t *testing.T) {
	session, _ := newTestSession(t)
	events, unsubscribe := session.Subscribe(1)

	session.Close()
	_, open := <-events
	assert.False(t, open)
	unsubscribe()

	late, _ := session.Subscribe(1)
	_, open = <-late
	assert.False(t, open)
}
