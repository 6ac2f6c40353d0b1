package metrics

import (
	"sync/atomic"
	"time"
)

// Collector keeps process-wide counters for console requests and the
// upstream calls made on their behalf.
type Collector struct {
	totalRequests    uint64
	errorRequests    uint64
	rateLimited      uint64
	totalDurationMs  uint64
	upstreamCalls    uint64
	upstreamFailures uint64
	upstreamMs       uint64
	validationFailed uint64
}

func New() *Collector {
	return &Collector{}
}

func (c *Collector) Record(status int, duration time.Duration) {
	if c == nil {
		return
	}
	atomic.AddUint64(&c.totalRequests, 1)
	if status >= 500 {
		atomic.AddUint64(&c.errorRequests, 1)
	}
	if status == 429 {
		atomic.AddUint64(&c.rateLimited, 1)
	}
	atomic.AddUint64(&c.totalDurationMs, uint64(duration.Milliseconds()))
}

// RecordUpstream counts one gateway round trip; failed covers transport
// errors, open-breaker rejections and 5xx answers.
func (c *Collector) RecordUpstream(failed bool, duration time.Duration) {
	if c == nil {
		return
	}
	atomic.AddUint64(&c.upstreamCalls, 1)
	if failed {
		atomic.AddUint64(&c.upstreamFailures, 1)
	}
	atomic.AddUint64(&c.upstreamMs, uint64(duration.Milliseconds()))
}

func (c *Collector) RecordValidationFailure() {
	if c == nil {
		return
	}
	atomic.AddUint64(&c.validationFailed, 1)
}

func (c *Collector) Snapshot() map[string]any {
	total := atomic.LoadUint64(&c.totalRequests)
	totalMs := atomic.LoadUint64(&c.totalDurationMs)
	upstream := atomic.LoadUint64(&c.upstreamCalls)
	upstreamMs := atomic.LoadUint64(&c.upstreamMs)
	return map[string]any{
		"requestsTotal":           total,
		"errorsTotal":             atomic.LoadUint64(&c.errorRequests),
		"rateLimitedTotal":        atomic.LoadUint64(&c.rateLimited),
		"avgDurationMs":           average(totalMs, total),
		"upstreamCallsTotal":      upstream,
		"upstreamFailuresTotal":   atomic.LoadUint64(&c.upstreamFailures),
		"upstreamAvgDurationMs":   average(upstreamMs, upstream),
		"validationFailuresTotal": atomic.LoadUint64(&c.validationFailed),
	}
}

func average(sum, count uint64) float64 {
	if count == 0 {
		return 0
	}
	return float64(sum) / float64(count)
}
