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

package gateway

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"bucketflow/platform/connectors/registry"
	"bucketflow/platform/connectors/sdk"
	"bucketflow/platform/shared/logger"
	"bucketflow/platform/tools"
)

// Server exposes the tool registry over HTTP
type Server struct {
	toolRegistry *tools.Registry
	connectors   *registry.Registry
	log          *logger.Logger
	startTime    time.Time

	totalCalls  int64
	failedCalls int64
}

// NewServer creates a gateway server over the given registries
func NewServer(toolRegistry *tools.Registry, connectors *registry.Registry) *Server {
	return &Server{
		toolRegistry: toolRegistry,
		connectors:   connectors,
		log:          logger.New("gateway"),
		startTime:    time.Now(),
	}
}

// Router builds the HTTP route table
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", s.handleHealth).Methods("GET")
	r.HandleFunc("/metrics", s.handleMetrics).Methods("GET")
	r.Handle("/prometheus", promhttp.Handler()).Methods("GET")

	r.HandleFunc("/api/v1/tools", s.handleListTools).Methods("GET")
	r.HandleFunc("/api/v1/tools/call", s.handleToolCall).Methods("POST")

	return r
}

// toolCallRequest is the POST /api/v1/tools/call body
type toolCallRequest struct {
	Name       string                 `json:"name"`
	Parameters map[string]interface{} `json:"parameters"`
}

func (s *Server) handleToolCall(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := uuid.New().String()
	atomic.AddInt64(&s.totalCalls, 1)

	var req toolCallRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		atomic.AddInt64(&s.failedCalls, 1)
		promGatewayErrors.Inc()
		s.log.Warn(requestID, "malformed tool call body", map[string]interface{}{"error": err.Error()})
		writeJSON(w, http.StatusBadRequest, tools.Errorf(tools.StatusBadRequest, "invalid request body: %v", err))
		return
	}

	if req.Name == "" {
		atomic.AddInt64(&s.failedCalls, 1)
		promGatewayErrors.Inc()
		writeJSON(w, http.StatusBadRequest, tools.Errorf(tools.StatusBadRequest, "tool name is required"))
		return
	}

	ctx := sdk.WithRequestID(r.Context(), requestID)
	result := s.toolRegistry.Call(ctx, req.Name, req.Parameters)

	durationMS := float64(time.Since(start).Microseconds()) / 1000.0
	promToolCallsTotal.WithLabelValues(req.Name, strconv.Itoa(int(result.Status))).Inc()
	promToolCallDuration.WithLabelValues(req.Name).Observe(durationMS)

	if !result.IsOK() {
		atomic.AddInt64(&s.failedCalls, 1)
	}

	s.log.ToolCall(requestID, req.Name, int(result.Status), durationMS, nil)

	// HTTP status mirrors the envelope status
	writeJSON(w, int(result.Status), result)
}

func (s *Server) handleListTools(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"tools": s.toolRegistry.List(),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	healthy := true
	connectorStatus := map[string]interface{}{}

	if s.connectors != nil {
		for name, status := range s.connectors.HealthCheck(r.Context()) {
			connectorStatus[name] = map[string]interface{}{
				"healthy":    status.Healthy,
				"latency_ms": float64(status.Latency.Microseconds()) / 1000.0,
				"error":      status.Error,
			}
			if !status.Healthy {
				healthy = false
			}
		}
	}

	status := "healthy"
	code := http.StatusOK
	if !healthy {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	writeJSON(w, code, map[string]interface{}{
		"status":     status,
		"service":    "bucketflow-gateway",
		"version":    "1.0.0",
		"timestamp":  time.Now().UTC(),
		"connectors": connectorStatus,
	})
}

// handleMetrics returns a JSON performance summary. The Prometheus
// exposition format lives at /prometheus.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	total := atomic.LoadInt64(&s.totalCalls)
	failed := atomic.LoadInt64(&s.failedCalls)
	uptime := time.Since(s.startTime).Seconds()

	successRate := 100.0
	if total > 0 {
		successRate = float64(total-failed) * 100.0 / float64(total)
	}

	payload := map[string]interface{}{
		"uptime_seconds":       uptime,
		"total_calls":          total,
		"failed_calls":         failed,
		"success_rate_percent": successRate,
		"connectors":           s.connectorStats(),
		"timestamp":            time.Now().UTC(),
	}

	writeJSON(w, http.StatusOK, payload)
}

// connectorStats snapshots each registered connector's call counters and
// latency percentiles for the JSON summary.
func (s *Server) connectorStats() map[string]interface{} {
	stats := make(map[string]interface{})
	if s.connectors == nil {
		return stats
	}

	for name, connType := range s.connectors.ListWithTypes() {
		entry := map[string]interface{}{"type": connType}
		if conn, err := s.connectors.Get(name); err == nil {
			if m, ok := conn.(interface{ GetMetrics() *sdk.ConnectorMetrics }); ok {
				entry["stats"] = m.GetMetrics().GetStats()
			}
		}
		stats[name] = entry
	}
	return stats
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}
