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
	"errors"
	"testing"
)

func TestConnectorError(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := NewConnectorError("minio-primary", "Connect", "endpoint is required", nil)

		expected := "minio-primary.Connect: endpoint is required"
		if err.Error() != expected {
			t.Errorf("expected %q, got %q", expected, err.Error())
		}
		if err.Unwrap() != nil {
			t.Error("expected nil unwrap without cause")
		}
	})

	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := NewConnectorError("minio-primary", "Connect", "failed to verify connectivity", cause)

		expected := "minio-primary.Connect: failed to verify connectivity (cause: connection refused)"
		if err.Error() != expected {
			t.Errorf("expected %q, got %q", expected, err.Error())
		}
		if !errors.Is(err, cause) {
			t.Error("expected errors.Is to match the wrapped cause")
		}
	})

	t.Run("errors.As recovers the typed error", func(t *testing.T) {
		var wrapped error = NewConnectorError("minio-primary", "HealthCheck", "backend unreachable", nil)

		var connErr *ConnectorError
		if !errors.As(wrapped, &connErr) {
			t.Fatal("expected errors.As to succeed")
		}
		if connErr.Operation != "HealthCheck" {
			t.Errorf("expected operation HealthCheck, got %s", connErr.Operation)
		}
	})
}
