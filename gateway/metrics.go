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

import "github.com/prometheus/client_golang/prometheus"

// Prometheus metrics
var (
	promToolCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bucketflow_tool_calls_total",
			Help: "Total number of tool calls by tool name and envelope status",
		},
		[]string{"tool", "status"},
	)
	promToolCallDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bucketflow_tool_call_duration_milliseconds",
			Help:    "Tool call duration in milliseconds",
			Buckets: []float64{1, 2, 5, 10, 20, 50, 100, 200, 500, 1000, 2000},
		},
		[]string{"tool"},
	)
	promGatewayErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bucketflow_gateway_errors_total",
			Help: "Total number of gateway-level request failures",
		},
	)
)

func init() {
	prometheus.MustRegister(promToolCallsTotal)
	prometheus.MustRegister(promToolCallDuration)
	prometheus.MustRegister(promGatewayErrors)
}
