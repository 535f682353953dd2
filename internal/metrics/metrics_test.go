package metrics

import (
	"testing"
	"time"

	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestIntentsTotal(t *testing.T) {
	c := IntentsTotal.WithLabelValues("search", OutcomeSuccess)
	before := promtest.ToFloat64(c)
	c.Inc()
	assert.Equal(t, before+1, promtest.ToFloat64(c))
}

func TestObserveSince(t *testing.T) {
	ObserveSince("test_op", time.Now().Add(-time.Second))
	assert.GreaterOrEqual(t, promtest.CollectAndCount(ExternalCallDuration), 1)
}
