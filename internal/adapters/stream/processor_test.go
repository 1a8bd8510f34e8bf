package stream

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/baditaflorin/l"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baditaflorin/go_text_normalization/internal/adapters/logger"
	"github.com/baditaflorin/go_text_normalization/internal/ports"
)

type upper struct{}

func (upper) Normalize(text string) string { return strings.ToUpper(text) }

func testLogger(t *testing.T) ports.Logger {
	t.Helper()
	log, err := logger.NewCustomStdLogger(l.Config{Output: io.Discard})
	require.NoError(t, err)
	t.Cleanup(func() { log.Close() })
	return log
}

func TestProcessStreamKeepsOrder(t *testing.T) {
	p, err := NewLineProcessor(testLogger(t), upper{}, Config{BatchSize: 3, Workers: 4})
	require.NoError(t, err)

	var lines []string
	for i := 0; i < 10; i++ {
		lines = append(lines, strings.Repeat(string(rune('a'+i)), i+1))
	}
	var out bytes.Buffer
	stats, err := p.ProcessStream(context.Background(), strings.NewReader(strings.Join(lines, "\n")), &out)
	require.NoError(t, err)

	assert.Equal(t, 10, stats.Lines)
	want := strings.ToUpper(strings.Join(lines, "\n")) + "\n"
	assert.Equal(t, want, out.String())
}

func TestProcessStreamEmpty(t *testing.T) {
	p, err := NewLineProcessor(testLogger(t), upper{}, DefaultConfig())
	require.NoError(t, err)

	var out bytes.Buffer
	stats, err := p.ProcessStream(context.Background(), strings.NewReader(""), &out)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Lines)
	assert.Empty(t, out.String())
}

func TestProcessStreamCancelled(t *testing.T) {
	p, err := NewLineProcessor(testLogger(t), upper{}, Config{BatchSize: 1})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = p.ProcessStream(ctx, strings.NewReader("a\nb\n"), io.Discard)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestProcessStreamNilReader(t *testing.T) {
	p, err := NewLineProcessor(testLogger(t), upper{}, DefaultConfig())
	require.NoError(t, err)
	_, err = p.ProcessStream(context.Background(), nil, io.Discard)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
	assert.Error(t, Config{BatchSize: 0}.Validate())
	assert.Error(t, Config{BatchSize: 1, Workers: -1}.Validate())
}
