package normalizer

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/baditaflorin/l"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baditaflorin/go_text_normalization/internal/core/domain"
	"github.com/baditaflorin/go_text_normalization/internal/metrics"
)

func quietLogger(t *testing.T) l.Logger {
	t.Helper()
	log, err := l.NewStandardFactory().CreateLogger(l.Config{Output: io.Discard})
	require.NoError(t, err)
	return log
}

var (
	sharedMetrics = metrics.New()
	small         = sync.OnceValues(func() (*TextNormalizer, error) {
		log, err := l.NewStandardFactory().CreateLogger(l.Config{Output: io.Discard})
		if err != nil {
			return nil, err
		}
		return New(WithLogger(log), WithMetrics(sharedMetrics), WithStream(2, 2))
	})
)

func TestNormalize(t *testing.T) {
	n, err := small()
	require.NoError(t, err)
	assert.Equal(t, TaggerSetSmall, n.TaggerSet())

	res, err := n.Normalize(context.Background(), "I have 12345 apples")
	require.NoError(t, err)
	assert.Equal(t, "I have twelve thousand three hundred forty five apples", res.Normalized)
	assert.Equal(t, 1, res.Counts[domain.ClassCardinal])

	again, err := n.Normalize(context.Background(), "I have 12345 apples")
	require.NoError(t, err)
	assert.Equal(t, res.Normalized, again.Normalized)

	assert.Equal(t, "only 123 left", n.NormalizeString("only 123 left"))
}

func TestNormalizeStream(t *testing.T) {
	n, err := small()
	require.NoError(t, err)

	in := strings.Join([]string{
		"line one has 10001 words",
		"",
		"the total was 123,456.",
		"nothing here",
		"99999",
	}, "\n")
	var out bytes.Buffer
	stats, err := n.NormalizeStream(context.Background(), strings.NewReader(in), &out)
	require.NoError(t, err)
	assert.Equal(t, 5, stats.Lines)
	assert.Equal(t, strings.Join([]string{
		"line one has ten thousand one words",
		"",
		"the total was one hundred twenty three thousand four hundred fifty six.",
		"nothing here",
		"ninety nine thousand nine hundred ninety nine",
	}, "\n")+"\n", out.String())
}

func TestUnknownOptions(t *testing.T) {
	_, err := New(WithLogger(quietLogger(t)), WithPreprocessor("fastest"))
	assert.ErrorContains(t, err, "unknown preprocessor")

	_, err = New(WithLogger(quietLogger(t)), WithTaggerSet("huge"))
	assert.ErrorContains(t, err, "unknown tagger set")
}

func TestWarmUpBypassesResultCache(t *testing.T) {
	m := metrics.New()
	n, err := New(WithLogger(quietLogger(t)), WithMetrics(m), WithWarmUp(true), WithCacheSize(16))
	require.NoError(t, err)

	assert.Equal(t, 0, n.results.Len())
	lookups, err := testutil.GatherAndCount(m.Registry(), "tnorm_result_cache_lookups_total")
	require.NoError(t, err)
	assert.Zero(t, lookups)
}
