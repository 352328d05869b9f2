package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/mikhailv/number-feed/internal/log"
	"github.com/mikhailv/number-feed/internal/stream"
	"github.com/mikhailv/number-feed/internal/types"
)

func (s *HTTPServer) handleBoard(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.feed.State()) //nolint:errchkjson // ignore any error
}

// createBoardStreamHandler pushes full board snapshots, so a slow watcher
// only ever sees the latest state and intermediate values collapse into
// the debounce window.
func (s *HTTPServer) createBoardStreamHandler(logger *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		conn, err := websocket.Accept(w, req, &websocket.AcceptOptions{OriginPatterns: []string{"*"}})
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			logger.Error("failed to accept websocket connection", "err", err)
			return
		}
		defer func() { _ = conn.CloseNow() }()

		defer log.Profile(logger, "board watch session", "client", req.RemoteAddr)()
		ctx := conn.CloseRead(req.Context())

		updateCh := make(chan struct{})
		debouncedUpdateCh := debounceUpdateChannel(ctx, time.Second/4, time.Second, updateCh)

		stopListen := s.feed.History().Listen(func(stream.Cursor, types.ValueEvent) {
			select {
			case <-ctx.Done():
			case updateCh <- struct{}{}: // signal about update
			default: // do not block
			}
		})
		defer stopListen()

		// Initial snapshot goes out after the listener is registered, so any
		// value applied in between still triggers a follow-up push.
		if err := wsjson.Write(ctx, conn, s.feed.State()); err != nil {
			logger.Error("failed to send board state", "err", err)
			return
		}

		for {
			select {
			case <-ctx.Done():
				logger.Debug("websocket connection closed", "err", ctx.Err())
				return
			case <-debouncedUpdateCh:
				if err := wsjson.Write(ctx, conn, s.feed.State()); err != nil {
					logger.Error("failed to send board state", "err", err)
				}
			}
		}
	})
}
