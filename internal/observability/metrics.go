package observability

import (
	"strconv"
	"sync"
	"time"
)

// Metrics provides basic in-memory counters for sweep cycles and HTTP
// traffic.
type Metrics struct {
	mu           sync.Mutex
	requestCount map[string]int64
	errorCount   map[string]int64

	evaluated int64
	breached  int64
	escalated int64
	failed    int64
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requestCount: make(map[string]int64),
		errorCount:   make(map[string]int64),
	}
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := pathKey(path, method, status)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount[key]++
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	key := path + "|" + method + "|" + code
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCount[key]++
}

// RecordEvaluation tallies one ticket evaluation outcome.
func (m *Metrics) RecordEvaluation(breached, escalated bool) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.evaluated++
	if breached {
		m.breached++
	}
	if escalated {
		m.escalated++
	}
}

// RecordEvaluationFailure tallies a failed evaluation.
func (m *Metrics) RecordEvaluationFailure() {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failed++
}

// EvaluationCounts returns sweep totals since startup.
func (m *Metrics) EvaluationCounts() (evaluated, breached, escalated, failed int64) {
	if m == nil {
		return 0, 0, 0, 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.evaluated, m.breached, m.escalated, m.failed
}

func pathKey(path, method string, status int) string {
	return path + "|" + method + "|" + strconv.Itoa(status)
}
