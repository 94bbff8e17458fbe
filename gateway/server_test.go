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
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bucketflow/platform/connectors/base"
	"bucketflow/platform/connectors/registry"
	"bucketflow/platform/connectors/sdk"
	"bucketflow/platform/storage"
	"bucketflow/platform/tools"
)

// memStore is a minimal in-memory storage.Store for HTTP-level tests
type memStore struct {
	buckets map[string]map[string]int64
}

func newMemStore() *memStore {
	return &memStore{buckets: make(map[string]map[string]int64)}
}

func (m *memStore) ListBuckets(ctx context.Context) ([]storage.BucketInfo, error) {
	out := make([]storage.BucketInfo, 0, len(m.buckets))
	for name := range m.buckets {
		out = append(out, storage.BucketInfo{Name: name, CreationDate: time.Now()})
	}
	return out, nil
}

func (m *memStore) BucketExists(ctx context.Context, bucket string) (bool, error) {
	_, ok := m.buckets[bucket]
	return ok, nil
}

func (m *memStore) MakeBucket(ctx context.Context, bucket string) error {
	m.buckets[bucket] = make(map[string]int64)
	return nil
}

func (m *memStore) RemoveBucket(ctx context.Context, bucket string) error {
	delete(m.buckets, bucket)
	return nil
}

func (m *memStore) GetBucketTagging(ctx context.Context, bucket string) (map[string]string, error) {
	return map[string]string{}, nil
}

func (m *memStore) GetBucketPolicy(ctx context.Context, bucket string) (string, error) {
	return "", storage.ErrNoSuchPolicy
}

func (m *memStore) GetBucketEncryption(ctx context.Context, bucket string) (*storage.SSEConfig, error) {
	return nil, nil
}

func (m *memStore) ListObjects(ctx context.Context, bucket, prefix string) <-chan storage.ObjectEntry {
	entries := make(chan storage.ObjectEntry)
	go func() {
		defer close(entries)
		for key, size := range m.buckets[bucket] {
			if !strings.HasPrefix(key, prefix) {
				continue
			}
			select {
			case entries <- storage.ObjectEntry{ObjectInfo: storage.ObjectInfo{Key: key, Size: size}}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return entries
}

func (m *memStore) StatObject(ctx context.Context, bucket, key string) (*storage.ObjectStat, error) {
	b, ok := m.buckets[bucket]
	if !ok {
		return nil, storage.ErrNoSuchBucket
	}
	size, ok := b[key]
	if !ok {
		return nil, storage.ErrNoSuchKey
	}
	return &storage.ObjectStat{ObjectInfo: storage.ObjectInfo{Key: key, Size: size}}, nil
}

func (m *memStore) RemoveObject(ctx context.Context, bucket, key, versionID string) error {
	b, ok := m.buckets[bucket]
	if !ok {
		return storage.ErrNoSuchBucket
	}
	if _, ok := b[key]; !ok {
		return storage.ErrNoSuchKey
	}
	delete(b, key)
	return nil
}

var _ storage.Store = (*memStore)(nil)

func newTestServer(store storage.Store) *Server {
	return NewServer(tools.NewRegistry(store), nil)
}

func callTool(t *testing.T, server *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tools/call", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)
	return rec
}

func TestToolCallEndpoint(t *testing.T) {
	t.Run("successful call", func(t *testing.T) {
		store := newMemStore()
		require.NoError(t, store.MakeBucket(context.Background(), "data"))
		server := newTestServer(store)

		rec := callTool(t, server, `{"name":"list_buckets","parameters":{}}`)
		assert.Equal(t, http.StatusOK, rec.Code)

		var result tools.Result
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
		assert.Equal(t, tools.StatusOK, result.Status)
		assert.Empty(t, result.Error)
		assert.EqualValues(t, 1, result.Payload["count"])
	})

	t.Run("HTTP status mirrors envelope status", func(t *testing.T) {
		server := newTestServer(newMemStore())

		rec := callTool(t, server, `{"name":"get_bucket_info","parameters":{"bucket_name":"ghost"}}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)

		var result tools.Result
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
		assert.Equal(t, tools.StatusNotFound, result.Status)
		assert.Equal(t, "Bucket 'ghost' does not exist.", result.Error)
	})

	t.Run("unknown tool is bad request", func(t *testing.T) {
		server := newTestServer(newMemStore())

		rec := callTool(t, server, `{"name":"upload_object","parameters":{}}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed body is bad request", func(t *testing.T) {
		server := newTestServer(newMemStore())

		rec := callTool(t, server, `{"name":`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing tool name is bad request", func(t *testing.T) {
		server := newTestServer(newMemStore())

		rec := callTool(t, server, `{"parameters":{}}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var result tools.Result
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
		assert.Contains(t, result.Error, "tool name is required")
	})

	t.Run("create then delete round trip", func(t *testing.T) {
		server := newTestServer(newMemStore())

		rec := callTool(t, server, `{"name":"create_bucket","parameters":{"bucket_name":"fresh"}}`)
		require.Equal(t, http.StatusOK, rec.Code)

		rec = callTool(t, server, `{"name":"create_bucket","parameters":{"bucket_name":"fresh"}}`)
		assert.Equal(t, http.StatusConflict, rec.Code)

		rec = callTool(t, server, `{"name":"delete_bucket","parameters":{"bucket_name":"fresh"}}`)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestListToolsEndpoint(t *testing.T) {
	server := newTestServer(newMemStore())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tools", nil)
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Tools []tools.Definition `json:"tools"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Len(t, body.Tools, 7)
	assert.Equal(t, "list_buckets", body.Tools[0].Name)
}

func TestHealthEndpoint(t *testing.T) {
	server := newTestServer(newMemStore())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "bucketflow-gateway", body["service"])
}

func TestMetricsEndpoint(t *testing.T) {
	store := newMemStore()
	server := newTestServer(store)

	// One success and one failure
	callTool(t, server, `{"name":"list_buckets","parameters":{}}`)
	callTool(t, server, `{"name":"get_bucket_info","parameters":{"bucket_name":"ghost"}}`)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.EqualValues(t, 2, body["total_calls"])
	assert.EqualValues(t, 1, body["failed_calls"])
	assert.EqualValues(t, 50, body["success_rate_percent"])
}

// metricsConnector is a minimal connector whose call metrics back the
// connector section of the /metrics summary.
type metricsConnector struct {
	sdk.BaseConnector
}

func newMetricsConnector() *metricsConnector {
	c := &metricsConnector{}
	c.BaseConnector = *sdk.NewBaseConnector("minio")
	return c
}

func TestMetricsEndpointConnectorStats(t *testing.T) {
	connectors := registry.NewRegistry()
	conn := newMetricsConnector()
	require.NoError(t, connectors.Register("minio-test", conn, &base.ConnectorConfig{
		Name:    "minio-test",
		Type:    "minio",
		Timeout: 5 * time.Second,
	}))

	conn.GetMetrics().RecordCall(12*time.Millisecond, nil)
	conn.GetMetrics().RecordCall(20*time.Millisecond, errors.New("backend unavailable"))

	server := NewServer(tools.NewRegistry(newMemStore()), connectors)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))

	connStats, ok := body["connectors"].(map[string]interface{})
	require.True(t, ok, "connectors section missing from /metrics")
	entry, ok := connStats["minio-test"].(map[string]interface{})
	require.True(t, ok, "registered connector missing from /metrics")
	assert.Equal(t, "minio", entry["type"])

	stats, ok := entry["stats"].(map[string]interface{})
	require.True(t, ok, "connector stats missing from /metrics")
	assert.EqualValues(t, 2, stats["calls_total"])
	assert.EqualValues(t, 1, stats["errors_total"])
}

func TestPrometheusEndpoint(t *testing.T) {
	server := newTestServer(newMemStore())

	req := httptest.NewRequest(http.MethodGet, "/prometheus", nil)
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
