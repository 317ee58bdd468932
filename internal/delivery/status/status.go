package status

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"woodsim/internal/domain/game"
	"woodsim/internal/httpresponse"
)

type StatsSource interface {
	Snapshot() game.Summary
}

type StatusHandler struct {
	log   *zap.SugaredLogger
	stats StatsSource
	hub   *Hub
}

func NewStatusHandler(log *zap.SugaredLogger, stats StatsSource, hub *Hub) *StatusHandler {
	return &StatusHandler{
		log:   log,
		stats: stats,
		hub:   hub,
	}
}

func (h *StatusHandler) Router(r chi.Router) {
	r.Use(middleware.Recoverer)

	r.Get("/stats", h.HandleStats)
	r.Get("/ws", h.hub.ServeWS)
}

func (h *StatusHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, h.stats.Snapshot())
}

// Server serves the status router in the background.
type Server struct {
	srv *http.Server
	lis net.Listener
	log *zap.SugaredLogger
}

func NewServer(addr string, handler *StatusHandler, log *zap.SugaredLogger) (*Server, error) {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	handler.Router(r)

	return &Server{
		srv: &http.Server{
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		lis: lis,
		log: log,
	}, nil
}

func (s *Server) Addr() string {
	return s.lis.Addr().String()
}

func (s *Server) Start() {
	s.log.Infof("status server is running on %s", s.Addr())
	go func() {
		if err := s.srv.Serve(s.lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Errorw("status server stopped", "error", err)
		}
	}()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
