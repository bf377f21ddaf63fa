// Package web serves the game to browsers. Each websocket connection owns one
// game session; the page draws the frames it receives as DOM boxes.
package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"io/fs"
	"log"
	"net/http"
	"sync"
	"time"

	"snake-grid/internal/core"
	"snake-grid/internal/session"
	"snake-grid/internal/snake"
	"snake-grid/internal/view"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

//go:embed static
var staticFiles embed.FS

const (
	writeWait      = 2 * time.Second
	maxMessageSize = 512
)

// Message types exchanged over the websocket.
const (
	MsgHello = "hello"
	MsgFrame = "frame"
	MsgKey   = "key"
	MsgReset = "reset"
)

// ServerMessage is sent to the browser.
type ServerMessage struct {
	Type    string      `json:"type"`
	Session string      `json:"session,omitempty"`
	Frame   *view.Frame `json:"frame,omitempty"`
}

// ClientMessage is received from the browser. Key carries a DOM key name
// such as "ArrowUp".
type ClientMessage struct {
	Type string `json:"type"`
	Key  string `json:"key,omitempty"`
}

// Options configures a Server.
type Options struct {
	Session    session.Options
	Tick       time.Duration
	Parameters core.ParameterSnapshot
	// NewScheduler builds the tick source for each session. Defaults to a
	// wall-clock ticker.
	NewScheduler func() core.Scheduler
	Logger       *log.Logger
}

// Server hosts browser sessions.
type Server struct {
	opts     Options
	upgrader websocket.Upgrader
	logger   *log.Logger
	mux      *http.ServeMux

	mu       sync.Mutex
	sessions map[string]context.CancelFunc
}

// NewServer returns a Server for opts.
func NewServer(opts Options) *Server {
	if opts.NewScheduler == nil {
		opts.NewScheduler = func() core.Scheduler { return core.NewTicker() }
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	s := &Server{
		opts:   opts,
		logger: opts.Logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
		mux:      http.NewServeMux(),
		sessions: make(map[string]context.CancelFunc),
	}
	static, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}
	s.mux.Handle("/", http.FileServer(http.FS(static)))
	s.mux.HandleFunc("/ws", s.handleWebSocket)
	s.mux.HandleFunc("/api/config", s.handleConfig)
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Sessions returns the number of connected games.
func (s *Server) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Close ends every running session.
func (s *Server) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, cancel := range s.sessions {
		cancel()
	}
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.opts.Parameters); err != nil {
		s.logger.Printf("encode config: %v", err)
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Printf("upgrade: %v", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxMessageSize)

	id := uuid.NewString()
	opts := s.opts.Session
	opts.Logger = log.New(s.logger.Writer(), "session "+id[:8]+": ", s.logger.Flags())
	ctrl, err := session.NewController(opts)
	if err != nil {
		s.logger.Printf("session %s: %v", id, err)
		conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "bad game config"))
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	s.track(id, cancel)
	defer s.untrack(id)
	s.logger.Printf("session %s connected from %s", id, r.RemoteAddr)

	if err := s.write(conn, ServerMessage{Type: MsgHello, Session: id}); err != nil {
		s.logger.Printf("session %s: %v", id, err)
		return
	}

	runner := session.NewRunner(ctrl, s.opts.NewScheduler(), s.opts.Tick)
	go s.readLoop(ctx, cancel, conn, runner, id)

	// Only the runner goroutine writes after the hello.
	err = runner.Run(ctx, func(f view.Frame) {
		if err := s.write(conn, ServerMessage{Type: MsgFrame, Frame: &f}); err != nil {
			s.logger.Printf("session %s write: %v", id, err)
			cancel()
		}
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		s.logger.Printf("session %s: %v", id, err)
	}
	s.logger.Printf("session %s closed after %d games", id, ctrl.Games())
}

func (s *Server) readLoop(ctx context.Context, cancel context.CancelFunc, conn *websocket.Conn, runner *session.Runner, id string) {
	defer cancel()
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Printf("session %s read: %v", id, err)
			}
			return
		}
		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			s.logger.Printf("session %s: ignoring malformed message: %v", id, err)
			continue
		}
		switch msg.Type {
		case MsgKey:
			k := snake.ParseKey(msg.Key)
			if k == snake.KeyNone {
				continue
			}
			err = runner.Key(ctx, k)
		case MsgReset:
			err = runner.Reset(ctx)
		default:
			s.logger.Printf("session %s: unknown message %q", id, msg.Type)
		}
		if err != nil {
			return
		}
	}
}

func (s *Server) write(conn *websocket.Conn, msg ServerMessage) error {
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return conn.WriteJSON(msg)
}

func (s *Server) track(id string, cancel context.CancelFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = cancel
}

func (s *Server) untrack(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}
