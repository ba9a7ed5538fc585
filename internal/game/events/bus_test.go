package events

import (
	"errors"
	"testing"
	"time"

	"github.com/mitchelldurbincs/battleship/internal/game/core"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBus(t *testing.T) {
	bus := NewEventBus()

	received := false
	var receivedEvent Event

	bus.SubscribeFunc(TypeGameStarted, func(e Event) {
		received = true
		receivedEvent = e
	})

	bus.Publish(NewGameStartedEvent("test-game", "alice", "Ferris"))

	assert.True(t, received, "Event handler should have been called")
	require.NotNil(t, receivedEvent, "Event should have been received")
	assert.Equal(t, TypeGameStarted, receivedEvent.Type())
	assert.Equal(t, "test-game", receivedEvent.GameID())
	assert.False(t, receivedEvent.Timestamp().IsZero())

	started, ok := receivedEvent.(*GameStartedEvent)
	require.True(t, ok)
	assert.Equal(t, "alice", started.Username)
	assert.Equal(t, "Ferris", started.OpponentName)
}

func TestEventBusAllEvents(t *testing.T) {
	bus := NewEventBus()

	var seen []string
	bus.SubscribeFunc(AllEvents, func(e Event) { seen = append(seen, e.Type()) })
	bus.SubscribeFunc(TypeTurnChanged, func(e Event) { seen = append(seen, "turn-only") })

	bus.Publish(NewGameStartedEvent("g", "alice", "Ferris"))
	bus.Publish(NewTurnChangedEvent("g", core.SideOpponent))

	assert.Equal(t, []string{TypeGameStarted, "turn-only", TypeTurnChanged}, seen)
}

func TestEventBusMultipleSubscribers(t *testing.T) {
	bus := NewEventBus()

	handler1Called := false
	handler2Called := false

	bus.SubscribeFunc(TypeTurnChanged, func(e Event) {
		handler1Called = true
	})
	bus.SubscribeFunc(TypeTurnChanged, func(e Event) {
		handler2Called = true
	})

	bus.Publish(NewTurnChangedEvent("test-game", core.SideOpponent))

	assert.True(t, handler1Called, "Handler 1 should have been called")
	assert.True(t, handler2Called, "Handler 2 should have been called")
	assert.Equal(t, 2, bus.GetFuncHandlerCount(TypeTurnChanged))
}

func TestEventBusUnsubscribeFunc(t *testing.T) {
	bus := NewEventBus()

	calls := 0
	id1 := bus.SubscribeFunc(TypeShotFired, func(e Event) { calls++ })
	id2 := bus.SubscribeFunc(TypeShotFired, func(e Event) { calls += 10 })
	assert.NotEqual(t, id1, id2, "handler ids must be unique")

	bus.UnsubscribeFunc(id1)
	bus.Publish(NewShotFiredEvent("g", core.SidePlayer, core.ShotResult{Outcome: core.OutcomeMiss}))
	assert.Equal(t, 10, calls)

	bus.UnsubscribeFunc(id2)
	bus.UnsubscribeFunc("missing")
	bus.Publish(NewShotFiredEvent("g", core.SidePlayer, core.ShotResult{Outcome: core.OutcomeMiss}))
	assert.Equal(t, 10, calls)
	assert.Zero(t, bus.GetFuncHandlerCount(TypeShotFired))
}

// TestSubscriber is a test implementation of Subscriber
type TestSubscriber struct {
	id              string
	interestedTypes map[string]bool
	receivedEvents  []Event
}

func (ts *TestSubscriber) ID() string {
	return ts.id
}

func (ts *TestSubscriber) HandleEvent(e Event) {
	ts.receivedEvents = append(ts.receivedEvents, e)
}

func (ts *TestSubscriber) InterestedIn(eventType string) bool {
	if ts.interestedTypes == nil {
		return true
	}
	return ts.interestedTypes[eventType]
}

func TestEventBusSubscriber(t *testing.T) {
	bus := NewEventBus()

	subscriber := &TestSubscriber{
		id: "test-subscriber",
		interestedTypes: map[string]bool{
			TypeGameStarted: true,
			TypeGameEnded:   true,
		},
		receivedEvents: []Event{},
	}

	bus.Subscribe(subscriber)
	assert.Equal(t, 1, bus.GetSubscriberCount())

	bus.Publish(NewGameStartedEvent("test-game", "alice", "Ferris"))
	bus.Publish(NewTurnChangedEvent("test-game", core.SideOpponent))
	bus.Publish(NewGameEndedEvent("test-game", core.SidePlayer, time.Minute, 900, 40, 10))

	// Should only receive GameStarted and GameEnded
	require.Len(t, subscriber.receivedEvents, 2)
	assert.Equal(t, TypeGameStarted, subscriber.receivedEvents[0].Type())
	assert.Equal(t, TypeGameEnded, subscriber.receivedEvents[1].Type())

	bus.Unsubscribe(subscriber.ID())
	bus.Publish(NewGameStartedEvent("test-game", "alice", "Ferris"))
	assert.Len(t, subscriber.receivedEvents, 2)
	assert.Zero(t, bus.GetSubscriberCount())
}

func TestEventBusPanicIsolation(t *testing.T) {
	bus := NewEventBusWithLogger(zerolog.Nop())

	called := false
	bus.SubscribeFunc(TypeShipSunk, func(e Event) { panic("boom") })
	bus.SubscribeFunc(TypeShipSunk, func(e Event) { called = true })

	assert.NotPanics(t, func() {
		bus.Publish(NewShipSunkEvent("g", core.SidePlayer, core.ShotResult{Outcome: core.OutcomeHitAndSunk, ShipType: core.Cruiser, ShipSize: 3}))
	})
	assert.True(t, called, "a panicking handler must not stop the others")
}

func TestEventBusReentrantPublish(t *testing.T) {
	bus := NewEventBus()

	var order []string
	bus.SubscribeFunc(TypeShotFired, func(e Event) {
		order = append(order, e.Type())
		bus.Publish(NewTurnChangedEvent(e.GameID(), core.SideOpponent))
	})
	bus.SubscribeFunc(TypeTurnChanged, func(e Event) {
		order = append(order, e.Type())
	})

	done := make(chan struct{})
	go func() {
		bus.Publish(NewShotFiredEvent("g", core.SidePlayer, core.ShotResult{Outcome: core.OutcomeMiss}))
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publishing from a handler deadlocked")
	}
	assert.Equal(t, []string{TypeShotFired, TypeTurnChanged}, order)
}

func TestEventConstructors(t *testing.T) {
	ship := core.NewShip("player-cruiser-0", core.Cruiser, core.NewCoordinate(2, 3), core.Vertical)
	placed := NewShipPlacedEvent("g", ship, core.Vertical, 4)
	assert.Equal(t, TypeShipPlaced, placed.Type())
	assert.Equal(t, core.NewCoordinate(2, 3), placed.Origin)
	assert.Equal(t, 4, placed.Remaining)

	ok := NewResultSubmittedEvent("g", "alice", "0xabc", nil)
	assert.True(t, ok.Success)
	assert.Empty(t, ok.Error)

	failed := NewResultSubmittedEvent("g", "alice", "", errors.New("connection refused"))
	assert.False(t, failed.Success)
	assert.Equal(t, "connection refused", failed.Error)

	var p Publisher = NopPublisher{}
	assert.NotPanics(t, func() { p.Publish(ok) })
}
