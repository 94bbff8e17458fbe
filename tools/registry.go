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

package tools

import (
	"context"
	"fmt"

	"bucketflow/platform/connectors/sdk"
	"bucketflow/platform/storage"
)

// Definition describes a tool for discovery. InputSchema follows the same
// JSON-Schema shape used for connector configuration.
type Definition struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	InputSchema sdk.ConfigSchema `json:"input_schema"`
}

// Handler executes one tool call against the storage backend
type Handler func(ctx context.Context, store storage.Store, params map[string]interface{}) *Result

type tool struct {
	definition Definition
	handler    Handler
}

// Registry holds the fixed tool set and dispatches calls against a shared
// storage handle. Operations are stateless; the registry is safe for
// concurrent use without locking because the tool table is immutable
// after construction.
type Registry struct {
	store storage.Store
	tools []tool
	index map[string]int
}

// NewRegistry builds the registry over the given backend handle.
// The tool set is fixed at construction.
func NewRegistry(store storage.Store) *Registry {
	r := &Registry{
		store: store,
		index: make(map[string]int),
	}

	r.add(listBucketsDefinition(), listBuckets)
	r.add(getBucketInfoDefinition(), getBucketInfo)
	r.add(listObjectsDefinition(), listObjects)
	r.add(createBucketDefinition(), createBucket)
	r.add(deleteBucketDefinition(), deleteBucket)
	r.add(getObjectInfoDefinition(), getObjectInfo)
	r.add(deleteObjectDefinition(), deleteObject)

	return r
}

func (r *Registry) add(def Definition, handler Handler) {
	r.index[def.Name] = len(r.tools)
	r.tools = append(r.tools, tool{definition: def, handler: handler})
}

// List returns all tool definitions in registration order. The order is
// stable across calls and process restarts.
func (r *Registry) List() []Definition {
	defs := make([]Definition, 0, len(r.tools))
	for _, t := range r.tools {
		defs = append(defs, t.definition)
	}
	return defs
}

// Call dispatches a tool call by name. Unknown names yield a BadRequest
// envelope; a panicking handler yields an Internal envelope. No error
// ever escapes as anything but an envelope.
func (r *Registry) Call(ctx context.Context, name string, params map[string]interface{}) (result *Result) {
	defer func() {
		if rec := recover(); rec != nil {
			result = Errorf(StatusInternal, "tool '%s' panicked: %v", name, rec)
		}
	}()

	i, ok := r.index[name]
	if !ok {
		return Errorf(StatusBadRequest, "unknown tool '%s'", name)
	}

	if params == nil {
		params = map[string]interface{}{}
	}

	return r.tools[i].handler(ctx, r.store, params)
}

// internalError wraps a backend failure into an Internal envelope with the
// backend message preserved verbatim.
func internalError(op string, err error) *Result {
	return Errorf(StatusInternal, "%s: %v", op, err)
}

// bucketNotFound is the shared absent-bucket envelope
func bucketNotFound(bucket string) *Result {
	return Errorf(StatusNotFound, "Bucket '%s' does not exist.", bucket)
}

// checkBucket verifies bucket existence before any object-level call.
// Returns nil when the bucket exists.
func checkBucket(ctx context.Context, store storage.Store, bucket string) *Result {
	exists, err := store.BucketExists(ctx, bucket)
	if err != nil {
		return internalError(fmt.Sprintf("failed to check bucket '%s'", bucket), err)
	}
	if !exists {
		return bucketNotFound(bucket)
	}
	return nil
}
