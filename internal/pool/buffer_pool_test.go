package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBufferPoolResetsLength(t *testing.T) {
	p := NewBufferPool(16)
	buf := p.Get()
	assert.Equal(t, 0, len(*buf))
	assert.GreaterOrEqual(t, cap(*buf), 16)

	*buf = append(*buf, "hello"...)
	p.Put(buf)

	again := p.Get()
	assert.Equal(t, 0, len(*again))
}

func TestBufferPoolDropsOversized(t *testing.T) {
	p := NewBufferPool(1)
	huge := make([]byte, 0, 1024)
	assert.NotPanics(t, func() { p.Put(&huge) })
	assert.Equal(t, 1024, cap(huge))
}

func TestStringBuilderPool(t *testing.T) {
	p := NewStringBuilderPool(0)
	sb := p.Get()
	sb.WriteString("twelve")
	_ = sb.WriteByte(' ')
	sb.WriteRune('é')
	assert.Equal(t, "twelve é", sb.String())
	assert.Equal(t, len("twelve é"), sb.Len())

	p.Put(sb)
	assert.Equal(t, "", sb.String())
}

func TestStringBuilderPoolDropsOversized(t *testing.T) {
	p := NewStringBuilderPool(8)
	sb := p.Get()
	sb.Grow(64)
	sb.WriteString("one hundred twenty three thousand")
	s := sb.String()
	p.Put(sb)

	// The dropped builder keeps its contents and earlier strings stay valid.
	assert.Equal(t, "one hundred twenty three thousand", s)
	assert.Equal(t, s, sb.String())
	assert.GreaterOrEqual(t, sb.Cap(), 64)
}
