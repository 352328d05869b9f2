package feed

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/mikhailv/number-feed/internal/config"
	"github.com/mikhailv/number-feed/internal/metrics"
	"github.com/mikhailv/number-feed/internal/server/ctxutil"
	"github.com/mikhailv/number-feed/internal/stream"
	"github.com/mikhailv/number-feed/internal/types"
	"github.com/mikhailv/number-feed/internal/util"
)

// Service connects producers to the board through a single value stream:
// Emit may be called from any goroutine, Run is the one consumer loop
// applying values to the board in emission order.
type Service struct {
	logger  *slog.Logger
	mu      sync.RWMutex
	values  config.Values
	intake  *stream.Unbounded[types.ValueEvent]
	history *stream.Buffered[types.ValueEvent]
	board   *Board
}

func NewService(logger *slog.Logger, values config.Values, historySize int) *Service {
	return &Service{
		logger:  logger,
		values:  values,
		intake:  stream.NewUnboundedStream[types.ValueEvent](),
		history: stream.NewBufferedStream[types.ValueEvent](historySize),
		board:   NewBoard(),
	}
}

func (s *Service) History() *stream.Buffered[types.ValueEvent] {
	return s.history
}

func (s *Service) State() types.BoardState {
	return s.board.State()
}

// PendingValues reports emitted values not yet applied to the board.
func (s *Service) PendingValues() int {
	return s.intake.Len()
}

// Emit feeds one value into the stream. It never blocks; the board applies
// values asynchronously, in emission order.
func (s *Service) Emit(ctx context.Context, source string, value int) types.ValueEvent {
	ev := types.ValueEvent{
		Time:       time.Now().UTC(),
		Source:     source,
		ClientAddr: ctxutil.GetEmitClientAddr(ctx),
		Value:      value,
	}
	s.intake.Emit(ev)
	metrics.TrackValueEmitted(source)
	return ev
}

// EmitRandom emits a uniformly random value from the configured range.
func (s *Service) EmitRandom(ctx context.Context, source string) types.ValueEvent {
	s.mu.RLock()
	values := s.values
	s.mu.RUnlock()
	return s.Emit(ctx, source, values.Min+rand.IntN(values.Max-values.Min+1))
}

// UpdateValues replaces the range EmitRandom draws from.
func (s *Service) UpdateValues(values config.Values) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.values != values {
		s.logger.Info("values range updated", "min", values.Min, "max", values.Max)
		s.values = values
	}
}

// Run consumes the intake stream until ctx is cancelled.
func (s *Service) Run(ctx context.Context) {
	s.logger.Info("feed started")
	for ev := range s.intake.Values(ctx) {
		state := s.board.Apply(ev)
		s.history.Append(ev)
		metrics.TrackBoardState(state)
		s.logger.Debug("value applied", "", ev, "seq", state.Seq)
	}
	s.logger.Info("feed stopped")
}

// StartAutoEmit emits a random value immediately and then one per interval
// tick, until ctx is cancelled.
func (s *Service) StartAutoEmit(ctx context.Context, cfg config.AutoEmit) {
	if !cfg.Enabled {
		return
	}
	s.logger.Info("auto emit enabled", "interval", cfg.Interval)
	s.EmitRandom(ctx, types.SourceAuto)
	go util.RunPeriodically(ctx, cfg.Interval, func(ctx context.Context) {
		s.EmitRandom(ctx, types.SourceAuto)
	})
}
