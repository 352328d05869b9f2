package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/mikhailv/number-feed/internal/feed"
	"github.com/mikhailv/number-feed/internal/log"
	"github.com/mikhailv/number-feed/internal/metrics"
	"github.com/mikhailv/number-feed/internal/stream"
)

type FilterFunc[T any] func(val T) bool

type HTTPServer struct {
	logger    *slog.Logger
	feed      *feed.Service
	server    http.Server
	logStream *stream.Buffered[log.Entry]
}

func NewHTTPServer(
	addr string,
	logger *slog.Logger,
	feed *feed.Service,
	logStream *stream.Buffered[log.Entry],
) *HTTPServer {
	return &HTTPServer{
		logger: logger,
		feed:   feed,
		server: http.Server{
			Addr:              addr,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logStream: logStream,
	}
}

func (s *HTTPServer) Serve(ctx context.Context) {
	s.server.Handler = s.createHandler()

	context.AfterFunc(ctx, func() {
		s.logger.Info("shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.server.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("failed to shutdown server", "err", err)
		}
	})

	s.logger.Info("server starting...", "addr", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.logger.Error("failed to start server", "err", err)
		os.Exit(1)
	}
}

func (s *HTTPServer) createHandler() http.Handler {
	wsLogger := log.WithPrefix(s.logger, "ws")

	mux := http.NewServeMux()
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.Handle("POST /api/values", s.wrapHandler(s.handleEmitValue))
	mux.Handle("POST /api/values/next", s.wrapHandler(s.handleEmitRandom))
	mux.Handle("GET /api/board", http.HandlerFunc(s.handleBoard))
	mux.Handle("GET /api/board/ws", s.createBoardStreamHandler(wsLogger))
	mux.Handle("GET /api/values", createListHandler(s.feed.History(), s.filterValues))
	mux.Handle("GET /api/values/ws", createStreamHandler(s.feed.History(), wsLogger, s.filterValues))
	mux.Handle("GET /api/logs", createListHandler(s.logStream, s.filterLogs))
	mux.Handle("GET /api/logs/ws", createStreamHandler(s.logStream, wsLogger, s.filterLogs))
	mux.Handle("GET /app.js", staticFileHandler("app.js"))
	mux.Handle("GET /", staticFileHandler("index.html"))

	return cors.Default().Handler(mux)
}

func (s *HTTPServer) wrapHandler(handler func(w http.ResponseWriter, req *http.Request) (statusCode int, err error)) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, path := r.Method, r.URL.Path
		operation := fmt.Sprintf("%s %s", method, path)
		defer metrics.TrackDuration(operation)()
		statusCode, err := handler(w, r)
		if err != nil {
			w.WriteHeader(statusCode)
			s.logger.Error(err.Error(), "method", method, "path", path, "statusCode", statusCode)
		}
		metrics.TrackStatus(operation, strconv.Itoa(statusCode))
	})
}
