package core

import (
	"testing"
	"time"
)

const startFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

func mustEvent(t *testing.T, ch <-chan *Event, kind EventKind) *Event {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		select {
		case ev := <-ch:
			if ev == nil {
				continue
			}
			if ev.Kind == kind {
				return ev
			}
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}
	t.Fatalf("expected event kind %v not received", kind)
	return nil
}

// mustNoEvent drains ch for a short window and fails if kind shows up.
func mustNoEvent(t *testing.T, ch <-chan *Event, kind EventKind) {
	t.Helper()

	deadline := time.After(150 * time.Millisecond)
	for {
		select {
		case ev := <-ch:
			if ev != nil && ev.Kind == kind {
				t.Fatalf("unexpected event %v: %+v", kind, ev)
			}
		case <-deadline:
			return
		}
	}
}

func newTestHub() *Hub {
	return NewHub(Options{
		InitialPosition: startFEN,
		Registry:        []RegistryOption{WithCoinFlip(func() bool { return true })},
	})
}

func connect(t *testing.T, hub *Hub, id string) *Client {
	t.Helper()
	c := NewClient(id, 64)
	hub.RegisterClient(c)
	ev := mustEvent(t, c.Events, EventSession)
	if ev.ConnID != id {
		t.Fatalf("session greeting carries %q, want %q", ev.ConnID, id)
	}
	return c
}

func identify(hub *Hub, c *Client, uid, name string, rating int) {
	hub.Dispatch(c, &Command{
		Kind:    CommandIdentify,
		Profile: Profile{UID: uid, Name: name, Rating: rating},
	})
}

// startGame seats alice (white) and bob (black) in room id.
func startGame(t *testing.T, hub *Hub, alice, bob *Client, id string) {
	t.Helper()
	hub.Dispatch(alice, &Command{Kind: CommandCreateRoom, Room: id, ColorChoice: ChoiceWhite})
	mustEvent(t, alice.Events, EventRoomCreated)
	hub.Dispatch(bob, &Command{Kind: CommandJoinRoom, Room: id})
	mustEvent(t, bob.Events, EventGameStart)
	mustEvent(t, alice.Events, EventGameStart)
}
