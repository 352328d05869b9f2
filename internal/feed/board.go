package feed

import (
	"sync"

	"github.com/mikhailv/number-feed/internal/types"
)

// Board holds the state the display shows: the latest applied value and
// a sequence number counting how many values reached it.
type Board struct {
	mu    sync.RWMutex
	state types.BoardState
}

func NewBoard() *Board {
	return &Board{}
}

func (s *Board) Apply(ev types.ValueEvent) types.BoardState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Seq++
	s.state.Value = ev.Value
	s.state.Source = ev.Source
	s.state.UpdatedAt = ev.Time
	return s.state
}

func (s *Board) State() types.BoardState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}
