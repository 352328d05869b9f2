package stream

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEvent struct {
	Cursor Cursor
	ID     int
}

func (e *testEvent) SetCursor(cursor Cursor) {
	e.Cursor = cursor
}

func newIntStream(values ...int) *Buffered[int] {
	st := NewBufferedStream[int](10)
	for _, v := range values {
		st.Append(v)
	}
	return st
}

func TestBuffered(t *testing.T) {
	t.Run("append assigns increasing cursors", func(t *testing.T) {
		st := NewBufferedStream[testEvent](10)
		for i := 1; i <= 5; i++ {
			st.Append(testEvent{ID: i})
		}

		res := st.Query(0, 10, nil)
		require.Len(t, res.Items, 5)
		prev := Cursor(0)
		for i, it := range res.Items {
			assert.Equal(t, i+1, it.ID)
			assert.Greater(t, it.Cursor, prev)
			prev = it.Cursor
		}
		assert.Equal(t, res.Items[0].Cursor, res.FirstCursor)
		assert.Equal(t, res.Items[4].Cursor, res.LastCursor)
		assert.False(t, res.HasMore)
	})

	t.Run("query pages forward", func(t *testing.T) {
		st := newIntStream(10, 20, 30, 40, 50)

		page := st.Query(0, 2, nil)
		assert.Equal(t, []int{10, 20}, page.Items)
		assert.True(t, page.HasMore)

		page = st.Query(page.LastCursor, 2, nil)
		assert.Equal(t, []int{30, 40}, page.Items)
		assert.True(t, page.HasMore)

		page = st.Query(page.LastCursor, 2, nil)
		assert.Equal(t, []int{50}, page.Items)
		assert.False(t, page.HasMore)

		empty := st.Query(page.LastCursor, 2, nil)
		assert.Empty(t, empty.Items)
		assert.Equal(t, page.LastCursor, empty.FirstCursor)
		assert.Equal(t, page.LastCursor, empty.LastCursor)
	})

	t.Run("query pages backward", func(t *testing.T) {
		st := newIntStream(10, 20, 30, 40, 50)

		page := st.QueryBackward(math.MaxUint64, 2, nil)
		assert.Equal(t, []int{50, 40}, page.Items)
		assert.True(t, page.HasMore)

		page = st.QueryBackward(page.LastCursor, 2, nil)
		assert.Equal(t, []int{30, 20}, page.Items)

		page.Reverse()
		assert.Equal(t, []int{20, 30}, page.Items)
	})

	t.Run("query applies the predicate", func(t *testing.T) {
		st := newIntStream(10, 15, 20, 25, 30)

		res := st.Query(0, 10, func(v int) bool { return v%10 == 0 })
		assert.Equal(t, []int{10, 20, 30}, res.Items)
	})

	t.Run("old entries are evicted", func(t *testing.T) {
		st := NewBufferedStream[int](3)
		for i := 1; i <= 5; i++ {
			st.Append(i)
		}

		res := st.Query(0, 10, nil)
		assert.Equal(t, []int{3, 4, 5}, res.Items)
	})

	t.Run("listen", func(t *testing.T) {
		st := NewBufferedStream[int](10)

		var got []int
		stop := st.Listen(func(cursor Cursor, v int) {
			assert.NotZero(t, cursor)
			got = append(got, v)
		})
		st.Append(1)
		st.Append(2)
		assert.Equal(t, []int{1, 2}, got)

		stop()
		st.Append(3)
		assert.Equal(t, []int{1, 2}, got)
	})
}

func TestCursor(t *testing.T) {
	c := newCursor(time.Now(), 42)

	parsed, err := ParseCursor(c.String())
	require.NoError(t, err)
	assert.Equal(t, c, parsed)

	_, err = ParseCursor("not a cursor")
	assert.Error(t, err)
}
