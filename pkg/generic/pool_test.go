package generic

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPool(t *testing.T) {
	t.Run("Get generates", func(t *testing.T) {
		calls := 0
		p := NewPool(func() *bytes.Buffer { calls++; return new(bytes.Buffer) }, nil)
		require.NotNil(t, p.Get())
		require.Positive(t, calls)
	})

	t.Run("Put resets", func(t *testing.T) {
		p := NewPool(func() *bytes.Buffer { return new(bytes.Buffer) }, (*bytes.Buffer).Reset)
		buf := p.Get()
		buf.WriteString("frame")
		p.Put(buf)
		require.Zero(t, buf.Len())
	})

	t.Run("Hot pool", func(t *testing.T) {
		p := NewHotPool(func() []int { return make([]int, 0, 8) }, nil, 4)
		require.Equal(t, 8, cap(p.Get()))
	})
}
