package pool

import (
	"strings"
	"sync"
)

// BufferPool implements a pool of byte slices for efficient memory reuse
type BufferPool struct {
	pool sync.Pool
	size int
}

// NewBufferPool creates a new buffer pool with buffers of the specified size
func NewBufferPool(size int) *BufferPool {
	return &BufferPool{
		pool: sync.Pool{
			New: func() interface{} {
				buffer := make([]byte, 0, size)
				return &buffer
			},
		},
		size: size,
	}
}

// Get retrieves a buffer from the pool or creates a new one if none are available
func (bp *BufferPool) Get() *[]byte {
	return bp.pool.Get().(*[]byte)
}

// Put returns a buffer to the pool for reuse. Buffers that grew far beyond
// the pool size are dropped so one huge input does not pin memory.
func (bp *BufferPool) Put(buffer *[]byte) {
	if cap(*buffer) > 64*bp.size {
		return
	}
	*buffer = (*buffer)[:0]
	bp.pool.Put(buffer)
}

// StringBuilderPool implements a pool of strings.Builder for efficient string building
type StringBuilderPool struct {
	pool   sync.Pool
	maxCap int
}

// NewStringBuilderPool creates a new strings.Builder pool. Builders that grew
// beyond maxCap bytes are not reused; maxCap <= 0 keeps every builder.
func NewStringBuilderPool(maxCap int) *StringBuilderPool {
	return &StringBuilderPool{
		pool: sync.Pool{
			New: func() interface{} {
				return new(StringBuilder)
			},
		},
		maxCap: maxCap,
	}
}

// Get retrieves a StringBuilder from the pool or creates a new one if none are available
func (sbp *StringBuilderPool) Get() *StringBuilder {
	return sbp.pool.Get().(*StringBuilder)
}

// Put returns a StringBuilder to the pool for reuse. Strings returned by
// sb.String before Put stay valid.
func (sbp *StringBuilderPool) Put(sb *StringBuilder) {
	if sbp.maxCap > 0 && sb.Cap() > sbp.maxCap {
		return
	}
	sb.Reset()
	sbp.pool.Put(sb)
}

// StringBuilder wraps strings.Builder for pooling
type StringBuilder struct {
	builder strings.Builder
}

// WriteByte writes a byte to the builder
func (sb *StringBuilder) WriteByte(c byte) error {
	return sb.builder.WriteByte(c)
}

// WriteRune writes a rune to the builder
func (sb *StringBuilder) WriteRune(r rune) {
	sb.builder.WriteRune(r)
}

// WriteString writes a string to the builder
func (sb *StringBuilder) WriteString(s string) {
	sb.builder.WriteString(s)
}

// Grow reserves room for n more bytes
func (sb *StringBuilder) Grow(n int) {
	sb.builder.Grow(n)
}

// Cap returns the capacity of the underlying buffer
func (sb *StringBuilder) Cap() int {
	return sb.builder.Cap()
}

// Len returns the number of accumulated bytes
func (sb *StringBuilder) Len() int {
	return sb.builder.Len()
}

// String returns the accumulated string
func (sb *StringBuilder) String() string {
	return sb.builder.String()
}

// Reset resets the builder for reuse
func (sb *StringBuilder) Reset() {
	sb.builder.Reset()
}
