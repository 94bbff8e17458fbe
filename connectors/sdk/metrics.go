// Copyright 2025 BucketFlow
// SPDX-License-Identifier: Apache-2.0
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package sdk

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// ConnectorMetrics tracks in-process counters for a single connector.
// Gateway-wide metrics are exported through Prometheus separately; these
// feed the JSON /metrics summary and health details.
type ConnectorMetrics struct {
	connectorType string

	// Counters
	callsTotal       int64
	errorsTotal      int64
	connectsTotal    int64
	disconnectsTotal int64

	// Durations (nanoseconds)
	callDurationTotal int64
	callCount         int64

	// Current state
	connected int32

	latencies *LatencyHistogram
}

// NewConnectorMetrics creates a new metrics collector
func NewConnectorMetrics(connectorType string) *ConnectorMetrics {
	return &ConnectorMetrics{
		connectorType: connectorType,
		latencies:     NewLatencyHistogram(),
	}
}

// RecordCall records one backend call
func (m *ConnectorMetrics) RecordCall(duration time.Duration, err error) {
	atomic.AddInt64(&m.callsTotal, 1)
	atomic.AddInt64(&m.callDurationTotal, int64(duration))
	atomic.AddInt64(&m.callCount, 1)

	if err != nil {
		atomic.AddInt64(&m.errorsTotal, 1)
	}

	m.latencies.Record(duration)
}

// RecordConnect records a connect operation
func (m *ConnectorMetrics) RecordConnect() {
	atomic.AddInt64(&m.connectsTotal, 1)
	atomic.StoreInt32(&m.connected, 1)
}

// RecordDisconnect records a disconnect operation
func (m *ConnectorMetrics) RecordDisconnect() {
	atomic.AddInt64(&m.disconnectsTotal, 1)
	atomic.StoreInt32(&m.connected, 0)
}

// RecordError records an error not tied to a timed call
func (m *ConnectorMetrics) RecordError() {
	atomic.AddInt64(&m.errorsTotal, 1)
}

// GetStats returns current metrics
func (m *ConnectorMetrics) GetStats() *MetricsSnapshot {
	callCount := atomic.LoadInt64(&m.callCount)

	var avgCallLatency time.Duration
	if callCount > 0 {
		avgCallLatency = time.Duration(atomic.LoadInt64(&m.callDurationTotal) / callCount)
	}

	return &MetricsSnapshot{
		ConnectorType:    m.connectorType,
		CallsTotal:       atomic.LoadInt64(&m.callsTotal),
		ErrorsTotal:      atomic.LoadInt64(&m.errorsTotal),
		ConnectsTotal:    atomic.LoadInt64(&m.connectsTotal),
		DisconnectsTotal: atomic.LoadInt64(&m.disconnectsTotal),
		Connected:        atomic.LoadInt32(&m.connected) == 1,
		AvgCallLatency:   avgCallLatency,
		CallLatencyP50:   m.latencies.Percentile(0.5),
		CallLatencyP95:   m.latencies.Percentile(0.95),
		CallLatencyP99:   m.latencies.Percentile(0.99),
	}
}

// Reset resets all metrics
func (m *ConnectorMetrics) Reset() {
	atomic.StoreInt64(&m.callsTotal, 0)
	atomic.StoreInt64(&m.errorsTotal, 0)
	atomic.StoreInt64(&m.connectsTotal, 0)
	atomic.StoreInt64(&m.disconnectsTotal, 0)
	atomic.StoreInt64(&m.callDurationTotal, 0)
	atomic.StoreInt64(&m.callCount, 0)

	m.latencies.Reset()
}

// MetricsSnapshot represents a point-in-time snapshot of metrics
type MetricsSnapshot struct {
	ConnectorType    string        `json:"connector_type"`
	CallsTotal       int64         `json:"calls_total"`
	ErrorsTotal      int64         `json:"errors_total"`
	ConnectsTotal    int64         `json:"connects_total"`
	DisconnectsTotal int64         `json:"disconnects_total"`
	Connected        bool          `json:"connected"`
	AvgCallLatency   time.Duration `json:"avg_call_latency"`
	CallLatencyP50   time.Duration `json:"call_latency_p50"`
	CallLatencyP95   time.Duration `json:"call_latency_p95"`
	CallLatencyP99   time.Duration `json:"call_latency_p99"`
}

// LatencyHistogram provides simple percentile calculations
type LatencyHistogram struct {
	samples []time.Duration
	maxSize int
	mu      sync.Mutex
}

// NewLatencyHistogram creates a new latency histogram
func NewLatencyHistogram() *LatencyHistogram {
	return &LatencyHistogram{
		samples: make([]time.Duration, 0, 1000),
		maxSize: 10000,
	}
}

// Record adds a latency sample
func (h *LatencyHistogram) Record(d time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.samples) >= h.maxSize {
		// Remove oldest samples
		h.samples = h.samples[len(h.samples)/2:]
	}
	h.samples = append(h.samples, d)
}

// Percentile calculates the given percentile
func (h *LatencyHistogram) Percentile(p float64) time.Duration {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.samples) == 0 {
		return 0
	}

	sorted := make([]time.Duration, len(h.samples))
	copy(sorted, h.samples)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	idx := int(float64(len(sorted)-1) * p)
	return sorted[idx]
}

// Reset clears all samples
func (h *LatencyHistogram) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.samples = h.samples[:0]
}

// Count returns the number of recorded samples
func (h *LatencyHistogram) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.samples)
}
