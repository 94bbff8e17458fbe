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

package registry

import (
	"context"
	"errors"
	"testing"
	"time"

	"bucketflow/platform/connectors/base"
)

type stubConnector struct {
	name         string
	connectErr   error
	connected    bool
	disconnected bool
	healthy      bool
}

func (s *stubConnector) Connect(ctx context.Context, config *base.ConnectorConfig) error {
	if s.connectErr != nil {
		return s.connectErr
	}
	s.connected = true
	return nil
}

func (s *stubConnector) Disconnect(ctx context.Context) error {
	s.disconnected = true
	return nil
}

func (s *stubConnector) HealthCheck(ctx context.Context) (*base.HealthStatus, error) {
	return &base.HealthStatus{Healthy: s.healthy, Timestamp: time.Now()}, nil
}

func (s *stubConnector) Name() string           { return s.name }
func (s *stubConnector) Type() string           { return "stub" }
func (s *stubConnector) Version() string        { return "1.0.0" }
func (s *stubConnector) Capabilities() []string { return []string{"test"} }

func testConfig(name string) *base.ConnectorConfig {
	return &base.ConnectorConfig{
		Name:    name,
		Type:    "stub",
		Timeout: 5 * time.Second,
	}
}

func TestRegistryRegister(t *testing.T) {
	t.Run("registers and connects", func(t *testing.T) {
		r := NewRegistry()
		conn := &stubConnector{name: "primary"}

		if err := r.Register("primary", conn, testConfig("primary")); err != nil {
			t.Fatalf("Register failed: %v", err)
		}
		if !conn.connected {
			t.Error("expected connector to be connected after Register")
		}
		if r.Count() != 1 {
			t.Errorf("expected count 1, got %d", r.Count())
		}
	})

	t.Run("rejects duplicate name", func(t *testing.T) {
		r := NewRegistry()
		if err := r.Register("primary", &stubConnector{name: "primary"}, testConfig("primary")); err != nil {
			t.Fatalf("first Register failed: %v", err)
		}
		if err := r.Register("primary", &stubConnector{name: "primary"}, testConfig("primary")); err == nil {
			t.Error("expected error registering duplicate name")
		}
	})

	t.Run("propagates connect failure", func(t *testing.T) {
		r := NewRegistry()
		conn := &stubConnector{name: "broken", connectErr: errors.New("dial refused")}

		if err := r.Register("broken", conn, testConfig("broken")); err == nil {
			t.Fatal("expected Register to fail when connect fails")
		}
		if r.Count() != 0 {
			t.Errorf("failed connector should not be registered, count = %d", r.Count())
		}
	})
}

func TestRegistryGet(t *testing.T) {
	r := NewRegistry()
	conn := &stubConnector{name: "primary"}
	if err := r.Register("primary", conn, testConfig("primary")); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	got, err := r.Get("primary")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != conn {
		t.Error("Get returned unexpected connector")
	}

	if _, err := r.Get("missing"); err == nil {
		t.Error("expected error for unknown connector")
	}
}

func TestRegistryUnregister(t *testing.T) {
	r := NewRegistry()
	conn := &stubConnector{name: "primary"}
	if err := r.Register("primary", conn, testConfig("primary")); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if err := r.Unregister("primary"); err != nil {
		t.Fatalf("Unregister failed: %v", err)
	}
	if !conn.disconnected {
		t.Error("expected connector to be disconnected after Unregister")
	}
	if r.Count() != 0 {
		t.Errorf("expected count 0 after Unregister, got %d", r.Count())
	}

	if err := r.Unregister("primary"); err == nil {
		t.Error("expected error unregistering unknown connector")
	}
}

func TestRegistryListWithTypes(t *testing.T) {
	r := NewRegistry()
	if err := r.Register("a", &stubConnector{name: "a"}, testConfig("a")); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := r.Register("b", &stubConnector{name: "b"}, testConfig("b")); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	types := r.ListWithTypes()
	if len(types) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(types))
	}
	if types["a"] != "stub" || types["b"] != "stub" {
		t.Errorf("unexpected type map: %v", types)
	}
}

func TestRegistryHealthCheck(t *testing.T) {
	r := NewRegistry()
	if err := r.Register("healthy", &stubConnector{name: "healthy", healthy: true}, testConfig("healthy")); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := r.Register("unhealthy", &stubConnector{name: "unhealthy"}, testConfig("unhealthy")); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	results := r.HealthCheck(context.Background())
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if !results["healthy"].Healthy {
		t.Error("expected 'healthy' connector to report healthy")
	}
	if results["unhealthy"].Healthy {
		t.Error("expected 'unhealthy' connector to report unhealthy")
	}

	single, err := r.HealthCheckSingle(context.Background(), "healthy")
	if err != nil {
		t.Fatalf("HealthCheckSingle failed: %v", err)
	}
	if !single.Healthy {
		t.Error("expected healthy status")
	}

	if _, err := r.HealthCheckSingle(context.Background(), "missing"); err == nil {
		t.Error("expected error for unknown connector")
	}
}

func TestRegistryDisconnectAll(t *testing.T) {
	r := NewRegistry()
	a := &stubConnector{name: "a"}
	b := &stubConnector{name: "b"}
	if err := r.Register("a", a, testConfig("a")); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := r.Register("b", b, testConfig("b")); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	r.DisconnectAll(context.Background())

	if !a.disconnected || !b.disconnected {
		t.Error("expected all connectors to be disconnected")
	}
}
