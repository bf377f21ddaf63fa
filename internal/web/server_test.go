package web

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"snake-grid/internal/core"
	"snake-grid/internal/session"
	"snake-grid/internal/snake"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

type harness struct {
	t      *testing.T
	srv    *Server
	ts     *httptest.Server
	scheds chan *core.ManualScheduler
}

func newHarness(t *testing.T, game snake.Config) *harness {
	t.Helper()
	h := &harness{t: t, scheds: make(chan *core.ManualScheduler, 4)}
	h.srv = NewServer(Options{
		Session: session.Options{Game: game, CellSize: 20, Seed: 3, Food: snake.PlacerRandom},
		Tick:    core.DefaultInterval,
		Parameters: core.ParameterSnapshot{Groups: []core.ParameterGroup{{
			Name:   "Board",
			Params: []core.Parameter{core.IntParam("grid_size", "Grid size", game.GridSize)},
		}}},
		NewScheduler: func() core.Scheduler {
			m := core.NewManualScheduler()
			h.scheds <- m
			return m
		},
		Logger: log.New(io.Discard, "", 0),
	})
	h.ts = httptest.NewServer(h.srv)
	t.Cleanup(func() {
		h.srv.Close()
		h.ts.Close()
	})
	return h
}

func (h *harness) dial() (*websocket.Conn, *core.ManualScheduler) {
	h.t.Helper()
	url := "ws" + strings.TrimPrefix(h.ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		h.t.Fatalf("dial: %v", err)
	}
	h.t.Cleanup(func() { conn.Close() })

	hello := h.read(conn)
	if hello.Type != MsgHello {
		h.t.Fatalf("first message %q, want hello", hello.Type)
	}
	if _, err := uuid.Parse(hello.Session); err != nil {
		h.t.Fatalf("session id %q: %v", hello.Session, err)
	}
	select {
	case m := <-h.scheds:
		return conn, m
	case <-time.After(time.Second):
		h.t.Fatal("no scheduler created")
	}
	return nil, nil
}

func (h *harness) read(conn *websocket.Conn) ServerMessage {
	h.t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg ServerMessage
	if err := conn.ReadJSON(&msg); err != nil {
		h.t.Fatalf("read: %v", err)
	}
	return msg
}

func (h *harness) frame(conn *websocket.Conn) ServerMessage {
	h.t.Helper()
	msg := h.read(conn)
	if msg.Type != MsgFrame || msg.Frame == nil {
		h.t.Fatalf("expected frame, got %+v", msg)
	}
	return msg
}

func (h *harness) send(conn *websocket.Conn, msg ClientMessage) {
	h.t.Helper()
	if err := conn.WriteJSON(msg); err != nil {
		h.t.Fatalf("write: %v", err)
	}
}

func TestSessionStreamsFrames(t *testing.T) {
	h := newHarness(t, snake.DefaultConfig())
	conn, sched := h.dial()

	first := h.frame(conn).Frame
	if first.ScoreText != "Score: 0" || len(first.Segments) != 1 || first.Segments[0].X != 200 {
		t.Fatalf("initial frame %+v", first)
	}
	if !sched.Running() {
		t.Fatal("scheduler not armed for a running game")
	}

	sched.Fire()
	next := h.frame(conn).Frame
	if next.Segments[0].X != 220 || next.Segments[0].Y != 200 {
		t.Fatalf("head box after tick %+v", next.Segments[0])
	}
}

func TestKeySteersSnake(t *testing.T) {
	h := newHarness(t, snake.DefaultConfig())
	conn, sched := h.dial()
	h.frame(conn)

	h.send(conn, ClientMessage{Type: MsgKey, Key: "ArrowDown"})
	for i := 0; i < 8; i++ {
		sched.Fire()
		f := h.frame(conn).Frame
		if f.Segments[0].Y == 220 {
			return
		}
		if f.GameOver {
			t.Fatal("game ended before the key applied")
		}
	}
	t.Fatal("ArrowDown never applied")
}

func TestMalformedMessageIsIgnored(t *testing.T) {
	h := newHarness(t, snake.DefaultConfig())
	conn, sched := h.dial()
	h.frame(conn)

	if err := conn.WriteMessage(websocket.TextMessage, []byte("not json")); err != nil {
		t.Fatalf("write: %v", err)
	}
	h.send(conn, ClientMessage{Type: MsgKey, Key: "ArrowDown"})
	for i := 0; i < 8; i++ {
		sched.Fire()
		if f := h.frame(conn).Frame; f.Segments[0].Y == 220 {
			if n := h.srv.Sessions(); n != 1 {
				t.Fatalf("sessions=%d after malformed message", n)
			}
			return
		}
	}
	t.Fatal("key after a malformed message never applied")
}

func TestGameOverAndReset(t *testing.T) {
	game := snake.Config{GridSize: 3, InitialSnake: []core.Cell{{X: 2, Y: 1}}, InitialFood: core.Cell{X: 0, Y: 0}}
	h := newHarness(t, game)
	conn, sched := h.dial()
	h.frame(conn)

	sched.Fire()
	over := h.frame(conn).Frame
	if !over.GameOver || over.Overlay == nil || over.Overlay.Title != "Game Over!" {
		t.Fatalf("expected game-over frame, got %+v", over)
	}
	if sched.Running() {
		t.Fatal("scheduler still armed after game over")
	}

	h.send(conn, ClientMessage{Type: MsgReset})
	fresh := h.frame(conn).Frame
	if fresh.GameOver || fresh.Overlay != nil || fresh.Score != 0 {
		t.Fatalf("frame after reset %+v", fresh)
	}
	if !sched.Running() || sched.Starts() != 2 {
		t.Fatalf("scheduler running=%v starts=%d after reset", sched.Running(), sched.Starts())
	}
}

func TestSessionsAreIndependent(t *testing.T) {
	h := newHarness(t, snake.DefaultConfig())
	a, schedA := h.dial()
	b, _ := h.dial()
	h.frame(a)
	h.frame(b)
	if n := h.srv.Sessions(); n != 2 {
		t.Fatalf("sessions=%d", n)
	}

	schedA.Fire()
	if f := h.frame(a).Frame; f.Segments[0].X != 220 {
		t.Fatalf("session a did not advance: %+v", f.Segments[0])
	}

	a.Close()
	deadline := time.Now().Add(2 * time.Second)
	for h.srv.Sessions() != 1 {
		if time.Now().After(deadline) {
			t.Fatalf("sessions=%d after disconnect", h.srv.Sessions())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestConfigEndpoint(t *testing.T) {
	h := newHarness(t, snake.DefaultConfig())
	resp, err := http.Get(h.ts.URL + "/api/config")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content type %q", ct)
	}
	var snap core.ParameterSnapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		t.Fatalf("decode: %v", err)
	}
	p, ok := snap.Lookup("grid_size")
	if !ok || p.Value != "20" {
		t.Fatalf("grid_size param %+v ok=%v", p, ok)
	}
}

func TestIndexServed(t *testing.T) {
	h := newHarness(t, snake.DefaultConfig())
	resp, err := http.Get(h.ts.URL + "/")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), "<title>Snake</title>") {
		t.Fatalf("index status=%d", resp.StatusCode)
	}
}
