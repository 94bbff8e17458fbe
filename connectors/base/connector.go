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

package base

import (
	"context"
	"time"
)

// Connector defines the lifecycle every storage connector must implement.
// Connectors produce a ready-to-use backend handle at Connect time; the
// tool dispatch layer consumes that handle, never the connector's SDK.
type Connector interface {
	// Lifecycle Management
	Connect(ctx context.Context, config *ConnectorConfig) error
	Disconnect(ctx context.Context) error
	HealthCheck(ctx context.Context) (*HealthStatus, error)

	// Metadata
	Name() string            // Unique connector instance name
	Type() string            // Connector type (minio, s3)
	Version() string         // Connector version
	Capabilities() []string  // List of capabilities (buckets, objects, tags)
}

// ConnectorConfig holds the configuration for a connector instance,
// read once at construction.
type ConnectorConfig struct {
	Name        string                 `json:"name"`        // Unique name for this connector
	Type        string                 `json:"type"`        // Type: minio, s3
	Endpoint    string                 `json:"endpoint"`    // Backend endpoint (host:port or URL)
	Credentials map[string]string      `json:"credentials"` // Access key, secret key
	Options     map[string]interface{} `json:"options"`     // Connector-specific options
	Timeout     time.Duration          `json:"timeout"`     // Connect/health-check timeout (default: 30s)
}

// HealthStatus represents the health of a connector
type HealthStatus struct {
	Healthy   bool              `json:"healthy"`   // Overall health status
	Latency   time.Duration     `json:"latency"`   // Connection latency
	Details   map[string]string `json:"details"`   // Additional diagnostic info
	Timestamp time.Time         `json:"timestamp"` // When health check was performed
	Error     string            `json:"error"`     // Error message if unhealthy
}

// ConnectorError is the single failure shape connector construction and
// lifecycle operations surface. Backend SDK errors are always wrapped,
// never returned raw.
type ConnectorError struct {
	ConnectorName string
	Operation     string
	Message       string
	Cause         error
}

func (e *ConnectorError) Error() string {
	if e.Cause != nil {
		return e.ConnectorName + "." + e.Operation + ": " + e.Message + " (cause: " + e.Cause.Error() + ")"
	}
	return e.ConnectorName + "." + e.Operation + ": " + e.Message
}

func (e *ConnectorError) Unwrap() error {
	return e.Cause
}

// NewConnectorError creates a new ConnectorError
func NewConnectorError(connectorName, operation, message string, cause error) *ConnectorError {
	return &ConnectorError{
		ConnectorName: connectorName,
		Operation:     operation,
		Message:       message,
		Cause:         cause,
	}
}
