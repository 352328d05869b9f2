package feed

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikhailv/number-feed/internal/config"
	"github.com/mikhailv/number-feed/internal/server/ctxutil"
	"github.com/mikhailv/number-feed/internal/types"
)

func newTestService(values config.Values) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(logger, values, 100)
}

func TestService(t *testing.T) {
	ctx := context.Background()

	t.Run("applies emitted values in order", func(t *testing.T) {
		svc := newTestService(config.Values{Min: 0, Max: 999})
		runCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		go svc.Run(runCtx)

		svc.Emit(ctx, types.SourceAPI, 10)
		svc.Emit(ctx, types.SourceAPI, 20)
		svc.Emit(ctx, types.SourceAPI, 30)

		require.Eventually(t, func() bool { return svc.State().Seq == 3 }, 2*time.Second, time.Millisecond)

		state := svc.State()
		assert.Equal(t, 30, state.Value)
		assert.Equal(t, types.SourceAPI, state.Source)
		assert.Equal(t, 0, svc.PendingValues())

		history := svc.History().Query(0, 10, nil)
		require.Len(t, history.Items, 3)
		for i, want := range []int{10, 20, 30} {
			assert.Equal(t, want, history.Items[i].Value)
			assert.NotZero(t, history.Items[i].Cursor)
		}
	})

	t.Run("emitted values wait for the consumer", func(t *testing.T) {
		svc := newTestService(config.Values{Min: 0, Max: 999})

		ev := svc.Emit(ctxutil.WithEmitClientAddr(ctx, "10.0.0.1:1234"), types.SourceAPI, 1)
		assert.Equal(t, "10.0.0.1:1234", ev.ClientAddr)
		assert.Equal(t, 1, ev.Value)
		assert.False(t, ev.Time.IsZero())

		assert.Equal(t, 1, svc.PendingValues())
		assert.Zero(t, svc.State().Seq)
	})

	t.Run("emit random respects the range", func(t *testing.T) {
		svc := newTestService(config.Values{Min: 3, Max: 7})
		for i := 0; i < 100; i++ {
			ev := svc.EmitRandom(ctx, types.SourceButton)
			assert.GreaterOrEqual(t, ev.Value, 3)
			assert.LessOrEqual(t, ev.Value, 7)
			assert.Equal(t, types.SourceButton, ev.Source)
		}
	})

	t.Run("update values changes the range", func(t *testing.T) {
		svc := newTestService(config.Values{Min: 0, Max: 999})
		svc.UpdateValues(config.Values{Min: 5, Max: 5})

		ev := svc.EmitRandom(ctx, types.SourceButton)
		assert.Equal(t, 5, ev.Value)
	})

	t.Run("auto emit produces values", func(t *testing.T) {
		svc := newTestService(config.Values{Min: 0, Max: 9})
		autoCtx, cancel := context.WithCancel(ctx)
		defer cancel()

		svc.StartAutoEmit(autoCtx, config.AutoEmit{Enabled: true, Interval: 5 * time.Millisecond})
		require.Eventually(t, func() bool { return svc.PendingValues() >= 3 }, 2*time.Second, time.Millisecond)
	})

	t.Run("auto emit disabled", func(t *testing.T) {
		svc := newTestService(config.Values{Min: 0, Max: 9})
		svc.StartAutoEmit(ctx, config.AutoEmit{Enabled: false, Interval: time.Millisecond})

		time.Sleep(30 * time.Millisecond)
		assert.Equal(t, 0, svc.PendingValues())
	})
}
