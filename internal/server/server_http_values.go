package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/mikhailv/number-feed/internal/server/ctxutil"
	"github.com/mikhailv/number-feed/internal/types"
)

func (s *HTTPServer) handleEmitValue(w http.ResponseWriter, req *http.Request) (statusCode int, err error) {
	var body struct {
		Value *int `json:"value"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return http.StatusBadRequest, fmt.Errorf("http: failed to decode body: %w", err)
	}
	if body.Value == nil {
		return http.StatusBadRequest, errors.New("http: missing 'value' field")
	}

	ctx := ctxutil.WithEmitClientAddr(req.Context(), req.RemoteAddr)
	ev := s.feed.Emit(ctx, types.SourceAPI, *body.Value)

	writeJSON(w, http.StatusAccepted, ev)
	return http.StatusAccepted, nil
}

func (s *HTTPServer) handleEmitRandom(w http.ResponseWriter, req *http.Request) (statusCode int, err error) {
	ctx := ctxutil.WithEmitClientAddr(req.Context(), req.RemoteAddr)
	ev := s.feed.EmitRandom(ctx, types.SourceButton)

	writeJSON(w, http.StatusAccepted, ev)
	return http.StatusAccepted, nil
}

func (s *HTTPServer) filterValues(_ *http.Request, query url.Values) FilterFunc[types.ValueEvent] {
	source := strings.TrimSpace(query.Get("source"))
	minVal, minSet := queryParamInt(query, "min")
	maxVal, maxSet := queryParamInt(query, "max")
	if source == "" && !minSet && !maxSet {
		return nil
	}
	return func(val types.ValueEvent) bool {
		if source != "" && val.Source != source {
			return false
		}
		if minSet && val.Value < minVal {
			return false
		}
		if maxSet && val.Value > maxVal {
			return false
		}
		return true
	}
}
