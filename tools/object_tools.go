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
	"errors"

	"bucketflow/platform/connectors/sdk"
	"bucketflow/platform/storage"
)

func getObjectInfoDefinition() Definition {
	return Definition{
		Name:        "get_object_info",
		Description: "Get metadata about an object without retrieving its content.",
		InputSchema: sdk.ConfigSchema{
			Type: "object",
			Properties: map[string]sdk.PropertySchema{
				"bucket_name": {Type: "string", Description: "Name of the bucket"},
				"object_name": {Type: "string", Description: "Key of the object"},
			},
			Required: []string{"bucket_name", "object_name"},
		},
	}
}

func getObjectInfo(ctx context.Context, store storage.Store, params map[string]interface{}) *Result {
	bucket, err := requireString(params, "bucket_name")
	if err != nil {
		return Errorf(StatusBadRequest, "%v", err)
	}

	object, err := requireString(params, "object_name")
	if err != nil {
		return Errorf(StatusBadRequest, "%v", err)
	}

	// Bucket existence is settled before any object-level call
	if res := checkBucket(ctx, store, bucket); res != nil {
		return res
	}

	stat, err := store.StatObject(ctx, bucket, object)
	if err != nil {
		if errors.Is(err, storage.ErrNoSuchKey) {
			return Errorf(StatusNotFound, "Object '%s' does not exist in bucket '%s'.", object, bucket)
		}
		return internalError("failed to stat object", err)
	}

	payload := map[string]interface{}{
		"bucket_name":   bucket,
		"object_name":   stat.Key,
		"size":          stat.Size,
		"content_type":  stat.ContentType,
		"last_modified": stat.LastModified,
		"etag":          stat.ETag,
		"storage_class": stat.StorageClass,
	}

	if len(stat.Metadata) > 0 {
		payload["metadata"] = stat.Metadata
	}
	if stat.VersionID != "" {
		payload["version_id"] = stat.VersionID
	}
	if stat.IsDeleteMarker {
		payload["is_delete_marker"] = true
	}

	return OK(payload)
}

func deleteObjectDefinition() Definition {
	return Definition{
		Name:        "delete_object",
		Description: "Delete an object from a bucket, optionally targeting a specific version.",
		InputSchema: sdk.ConfigSchema{
			Type: "object",
			Properties: map[string]sdk.PropertySchema{
				"bucket_name": {Type: "string", Description: "Name of the bucket"},
				"object_name": {Type: "string", Description: "Key of the object to delete"},
				"version_id":  {Type: "string", Description: "Version to delete; the latest when omitted", Default: ""},
			},
			Required: []string{"bucket_name", "object_name"},
		},
	}
}

func deleteObject(ctx context.Context, store storage.Store, params map[string]interface{}) *Result {
	bucket, err := requireString(params, "bucket_name")
	if err != nil {
		return Errorf(StatusBadRequest, "%v", err)
	}

	object, err := requireString(params, "object_name")
	if err != nil {
		return Errorf(StatusBadRequest, "%v", err)
	}

	versionID, err := optionalString(params, "version_id", "")
	if err != nil {
		return Errorf(StatusBadRequest, "%v", err)
	}

	if res := checkBucket(ctx, store, bucket); res != nil {
		return res
	}

	if err := store.RemoveObject(ctx, bucket, object, versionID); err != nil {
		if errors.Is(err, storage.ErrNoSuchKey) {
			return Errorf(StatusNotFound, "Object '%s' does not exist in bucket '%s'.", object, bucket)
		}
		return internalError("failed to delete object", err)
	}

	return OK(map[string]interface{}{
		"message": "Object '" + object + "' deleted successfully from bucket '" + bucket + "'.",
	})
}
