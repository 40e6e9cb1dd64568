package runner

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/lgbarn/chessbot-go/internal/bridge"
	"github.com/lgbarn/chessbot-go/internal/chess"
	"github.com/lgbarn/chessbot-go/internal/engine"
	"github.com/lgbarn/chessbot-go/internal/errors"
	"github.com/lgbarn/chessbot-go/internal/strategem"
)

// Message types exchanged over the websocket.
const (
	MsgMove   = "move"
	MsgAck    = "ack"
	MsgReject = "reject"
	MsgResync = "resync"
	MsgState  = "state"
	MsgError  = "error"
)

const shutdownTimeout = 5 * time.Second

// ClientMessage is sent by the client. Move is set for "move", Reason for
// "reject" and FEN for "resync"; "ack" carries nothing.
type ClientMessage struct {
	Type   string `json:"type"`
	Move   string `json:"move,omitempty"`
	Reason string `json:"reason,omitempty"`
	FEN    string `json:"fen,omitempty"`
}

// ServerMessage is sent by the server: the bot's moves, the final game state
// and errors in response to client messages.
type ServerMessage struct {
	Type   string `json:"type"`
	Move   string `json:"move,omitempty"`
	FEN    string `json:"fen,omitempty"`
	Status string `json:"status,omitempty"`
	Reason string `json:"reason,omitempty"`
	ToMove string `json:"toMove,omitempty"`
	Result string `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

func stateMessage(st engine.GameState) ServerMessage {
	msg := ServerMessage{
		Type:   MsgState,
		Status: st.Status.String(),
		ToMove: strings.ToLower(st.ToMove.String()),
		Result: st.Result(),
	}
	if st.Reason != engine.NoDraw {
		msg.Reason = st.Reason.String()
	}
	return msg
}

func moveMessage(bm bridge.BotMove) ServerMessage {
	return ServerMessage{Type: MsgMove, Move: bm.Notation, FEN: bm.FEN}
}

func errorMessage(err error) ServerMessage {
	return ServerMessage{Type: MsgError, Error: err.Error()}
}

// Server plays one game per websocket connection.
//
// The bot side, strategem and seed are taken from the query string of
// GET /ws, e.g. /ws?side=black&strategem=coleminer&seed=7.
type Server struct {
	router   *mux.Router
	upgrader websocket.Upgrader
	logger   *log.Logger

	strategem string
	seed      uint64
	startFEN  string

	connsLock sync.Mutex
	conns     map[*websocket.Conn]struct{}
}

// NewServer creates a server whose connections default to the named
// strategem and seed.
func NewServer(strategemName string, seed uint64, opts ...Option) *Server {
	o := buildOptions(opts)
	s := &Server{
		router: mux.NewRouter(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger:    o.logger,
		strategem: strategemName,
		seed:      seed,
		startFEN:  o.startFEN,
		conns:     make(map[*websocket.Conn]struct{}),
	}
	s.router.Use(func(next http.Handler) http.Handler {
		return handlers.LoggingHandler(o.accessLog, next)
	})
	s.router.HandleFunc("/healthz", s.healthHandler).Methods(http.MethodGet)
	s.router.HandleFunc("/ws", s.wsHandler).Methods(http.MethodGet)
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down and
// closes any open game connections.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "serve")
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.closeAll()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// Connections returns the number of open game connections.
func (s *Server) Connections() int {
	s.connsLock.Lock()
	defer s.connsLock.Unlock()
	return len(s.conns)
}

func (s *Server) healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, "ok")
}

func (s *Server) wsHandler(w http.ResponseWriter, r *http.Request) {
	side, strat, err := s.sessionParams(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrade failed", "err", err)
		return
	}
	s.track(conn)
	defer s.untrack(conn)

	logger := s.logger.With("remote", r.RemoteAddr, "side", side, "strategem", strat.Name())
	sess := newSession(conn, side, strat, logger)
	if err := sess.run(s.startFEN); err != nil {
		logger.Warn("session ended", "err", err)
		return
	}
	logger.Info("session closed")
}

func (s *Server) sessionParams(r *http.Request) (chess.Colour, strategem.Strategem, error) {
	q := r.URL.Query()

	side := chess.White
	switch strings.ToLower(q.Get("side")) {
	case "", "white", "w":
	case "black", "b":
		side = chess.Black
	default:
		return 0, nil, errors.Wrapf(errors.ErrInvalidConfig, "unknown side %q", q.Get("side"))
	}

	seed := s.seed
	if text := q.Get("seed"); text != "" {
		n, err := strconv.ParseUint(text, 10, 64)
		if err != nil {
			return 0, nil, errors.Wrapf(errors.ErrInvalidConfig, "bad seed %q", text)
		}
		seed = n
	}

	name := s.strategem
	if q.Has("strategem") {
		name = q.Get("strategem")
	}
	strat, err := strategem.New(name,
		strategem.WithSeed(seed),
		strategem.WithLogger(s.logger.WithPrefix("strategem")),
	)
	if err != nil {
		return 0, nil, err
	}
	return side, strat, nil
}

func (s *Server) track(conn *websocket.Conn) {
	s.connsLock.Lock()
	defer s.connsLock.Unlock()
	s.conns[conn] = struct{}{}
}

func (s *Server) untrack(conn *websocket.Conn) {
	s.connsLock.Lock()
	defer s.connsLock.Unlock()
	delete(s.conns, conn)
	conn.Close()
}

func (s *Server) closeAll() {
	s.connsLock.Lock()
	defer s.connsLock.Unlock()
	for conn := range s.conns {
		conn.Close()
	}
}

// session drives one bridge from one connection. All bridge calls happen on
// the goroutine running run.
type session struct {
	conn   *websocket.Conn
	bridge *bridge.Bridge
	logger *log.Logger

	pending []ServerMessage
	last    *bridge.BotMove
}

func newSession(conn *websocket.Conn, side chess.Colour, strat strategem.Strategem, logger *log.Logger) *session {
	sess := &session{conn: conn, logger: logger}
	reporter := bridge.ReporterFunc(func(st engine.GameState) {
		sess.pending = append(sess.pending, stateMessage(st))
	})
	sess.bridge = bridge.New(side, strat, reporter, bridge.WithLogger(logger.WithPrefix("bridge")))
	return sess
}

func (s *session) run(startFEN string) error {
	var (
		bm  bridge.BotMove
		ok  bool
		err error
	)
	if startFEN != "" {
		bm, ok, err = s.bridge.Resync(startFEN)
	} else {
		bm, ok, err = s.bridge.Start()
	}
	if err := s.flush(bm, ok, err); err != nil {
		return err
	}

	for {
		var msg ClientMessage
		if err := s.conn.ReadJSON(&msg); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return errors.Wrap(err, "read")
		}
		s.logger.Debug("client message", "type", msg.Type, "move", msg.Move)
		bm, ok, err := s.handle(msg)
		if err := s.flush(bm, ok, err); err != nil {
			return err
		}
	}
}

func (s *session) handle(msg ClientMessage) (bridge.BotMove, bool, error) {
	switch msg.Type {
	case MsgMove:
		return s.bridge.SubmitOpponentMove(msg.Move)
	case MsgAck:
		if err := s.bridge.ConfirmSubmission(); err != nil {
			return bridge.BotMove{}, false, err
		}
		s.last = nil
		return bridge.BotMove{}, false, nil
	case MsgReject:
		reason := msg.Reason
		if reason == "" {
			reason = "rejected by client"
		}
		err := s.bridge.SubmissionFailed(fmt.Errorf("%s", reason))
		if s.last != nil && errors.Is(err, errors.ErrSubmissionFailed) {
			// Offer the same move again; the client acks once it lands.
			return *s.last, true, err
		}
		return bridge.BotMove{}, false, err
	case MsgResync:
		return s.bridge.Resync(msg.FEN)
	default:
		return bridge.BotMove{}, false, fmt.Errorf("unknown message type %q", msg.Type)
	}
}

// flush writes the outcome of one bridge call: an error, then the bot's
// move, then any final state reported while handling it.
func (s *session) flush(bm bridge.BotMove, ok bool, err error) error {
	if err != nil {
		if werr := s.conn.WriteJSON(errorMessage(err)); werr != nil {
			return errors.Wrap(werr, "write")
		}
	}
	if ok {
		s.last = &bm
		if werr := s.conn.WriteJSON(moveMessage(bm)); werr != nil {
			return errors.Wrap(werr, "write")
		}
	}
	for _, msg := range s.pending {
		if werr := s.conn.WriteJSON(msg); werr != nil {
			return errors.Wrap(werr, "write")
		}
	}
	s.pending = s.pending[:0]
	return nil
}
