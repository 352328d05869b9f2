package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRingBuf(t *testing.T) {
	t.Run("add and get", func(t *testing.T) {
		buf := NewRingBuf[int](3)
		assert.Equal(t, 0, buf.Size())
		assert.Nil(t, buf.Values())

		buf.Add(1)
		buf.Add(2)
		assert.Equal(t, 2, buf.Size())
		assert.Equal(t, 1, buf.Get(0))
		assert.Equal(t, 2, buf.Get(1))
		assert.Equal(t, []int{1, 2}, buf.Values())
	})

	t.Run("overwrites oldest when full", func(t *testing.T) {
		buf := NewRingBuf[int](3)
		for i := 1; i <= 5; i++ {
			buf.Add(i)
		}
		assert.Equal(t, 3, buf.Size())
		assert.Equal(t, 3, buf.Get(0))
		assert.Equal(t, []int{3, 4, 5}, buf.Values())
	})

	t.Run("iterator", func(t *testing.T) {
		buf := NewRingBuf[int](3)
		for i := 1; i <= 5; i++ {
			buf.Add(i)
		}

		var forward []int
		for v := range buf.Iterator(1, 1) {
			forward = append(forward, v)
		}
		assert.Equal(t, []int{4, 5}, forward)

		var backward []int
		for v := range buf.Iterator(buf.Size()-1, -1) {
			backward = append(backward, v)
		}
		assert.Equal(t, []int{5, 4, 3}, backward)

		var stopped []int
		for v := range buf.Iterator(0, 1) {
			stopped = append(stopped, v)
			if len(stopped) == 2 {
				break
			}
		}
		assert.Equal(t, []int{3, 4}, stopped)
	})

	t.Run("rejects non-positive capacity", func(t *testing.T) {
		assert.Panics(t, func() { NewRingBuf[int](0) })
	})
}
