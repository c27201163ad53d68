package histogram

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRecordAccumulatesIntoBuckets(t *testing.T) {
	h := New()
	h.Record(50)
	h.Record(150)
	h.Record(250)

	if h.Count() != 3 {
		t.Fatalf("count = %d, want 3", h.Count())
	}

	var sum uint64
	for _, c := range h.buckets {
		sum += c
	}
	if sum != h.Count() {
		t.Fatalf("sum(buckets) = %d, want count %d", sum, h.Count())
	}
}

func TestOverflowBucketCatchesSamplesAtOrAboveOneMillisecond(t *testing.T) {
	h := New()
	h.Record(1_000_000) // exactly 1ms
	h.Record(5_000_000) // well past 1ms
	if h.buckets[OverflowIndex] != 2 {
		t.Fatalf("overflow bucket = %d, want 2", h.buckets[OverflowIndex])
	}
}

func TestReportPercentilesOrdered(t *testing.T) {
	h := New()
	for i := int64(1); i <= 100; i++ {
		h.Record(i * BucketWidthNanos)
	}
	r := h.Report()
	require.EqualValues(t, 100, r.Count)
	require.LessOrEqualf(t, r.MinNs, r.P50Ns, "expected min <= p50, got min=%d p50=%d", r.MinNs, r.P50Ns)
	require.LessOrEqualf(t, r.P50Ns, r.MaxNs, "expected p50 <= max, got p50=%d max=%d", r.P50Ns, r.MaxNs)
	require.GreaterOrEqualf(t, r.P99Ns, r.P50Ns, "expected p99 >= p50, got p99=%d p50=%d", r.P99Ns, r.P50Ns)
}

func TestSpanRecordsElapsedTime(t *testing.T) {
	h := New()
	span := h.Start(1000)
	span.Stop(1500)
	if h.Count() != 1 {
		t.Fatalf("count = %d, want 1", h.Count())
	}
	if h.buckets[5] != 1 { // 500ns / 100ns width = bucket index 5 ([500, 600), upper edge 600)
		t.Fatalf("expected the 500ns sample in bucket index 5")
	}
}

func TestReportOnEmptyHistogram(t *testing.T) {
	h := New()
	r := h.Report()
	if r.Count != 0 {
		t.Fatalf("expected zero-value report on empty histogram, got %+v", r)
	}
}
