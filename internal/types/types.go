package types

import (
	"log/slog"
	"time"

	"github.com/mikhailv/number-feed/internal/stream"
)

// Sources a value can be emitted from.
const (
	SourceAPI    = "api"
	SourceButton = "button"
	SourceAuto   = "auto"
)

var _ stream.CursorAware = (*ValueEvent)(nil)

// ValueEvent is a single emitted value on its way from a producer to the
// board. The cursor is assigned when the event reaches the history stream.
type ValueEvent struct {
	Cursor     stream.Cursor `json:"cursor,omitempty"`
	Time       time.Time     `json:"time"`
	Source     string        `json:"source"`
	ClientAddr string        `json:"client_addr,omitempty"`
	Value      int           `json:"value"`
}

func (s *ValueEvent) SetCursor(cursor stream.Cursor) {
	s.Cursor = cursor
}

func (s ValueEvent) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("source", s.Source),
		slog.Int("value", s.Value),
	)
}

// BoardState is what the display shows: the latest value and how it got
// there. A zero Seq means no value has been applied yet.
type BoardState struct {
	Seq       uint64    `json:"seq"`
	Value     int       `json:"value"`
	Source    string    `json:"source,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}
