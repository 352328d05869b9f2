package stream

import (
	"fmt"
	"strconv"
	"time"
)

// Cursor is a stream position: a millisecond timestamp in the high bits
// combined with a 20-bit append counter, so cursors stay unique and
// strictly increasing within a stream.
type Cursor uint64

type CursorAware interface {
	SetCursor(cursor Cursor)
}

func newCursor(t time.Time, index uint32) Cursor {
	return Cursor((uint64(t.UnixMilli()) << 20) | uint64(index&0xfffff))
}

func (c Cursor) String() string {
	return fmt.Sprintf("%016x", uint64(c))
}

func (c Cursor) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Cursor) UnmarshalText(b []byte) error {
	cur, err := ParseCursor(string(b))
	if err == nil {
		*c = cur
	}
	return err
}

func ParseCursor(s string) (Cursor, error) {
	if n, err := strconv.ParseUint(s, 16, 64); err != nil {
		return 0, err
	} else {
		return Cursor(n), nil
	}
}
