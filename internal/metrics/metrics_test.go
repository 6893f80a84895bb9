package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveImageNormalization(t *testing.T) {
	before := testutil.ToFloat64(ImageNormalizationsTotal.WithLabelValues("failed"))

	ObserveImageNormalization("failed", 30*time.Millisecond)

	after := testutil.ToFloat64(ImageNormalizationsTotal.WithLabelValues("failed"))
	assert.Equal(t, before+1, after)
}

func TestObserveSubmission(t *testing.T) {
	accepted := testutil.ToFloat64(SubmissionsTotal.WithLabelValues("comment", "accepted"))
	rejected := testutil.ToFloat64(SubmissionsTotal.WithLabelValues("comment", "rejected"))

	ObserveSubmission("comment", true)
	ObserveSubmission("comment", false)
	ObserveSubmission("comment", false)

	assert.Equal(t, accepted+1, testutil.ToFloat64(SubmissionsTotal.WithLabelValues("comment", "accepted")))
	assert.Equal(t, rejected+2, testutil.ToFloat64(SubmissionsTotal.WithLabelValues("comment", "rejected")))
}

func TestTimer(t *testing.T) {
	timer := NewTimer()
	time.Sleep(2 * time.Millisecond)
	assert.GreaterOrEqual(t, timer.Elapsed(), 2*time.Millisecond)
}
