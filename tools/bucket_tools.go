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
	"strings"

	"bucketflow/platform/connectors/sdk"
	"bucketflow/platform/storage"
)

// defaultListLimit caps list_objects results when the caller gives no limit
const defaultListLimit = 25

// noPolicySet is the payload value reported when a bucket has no policy.
// Policy absence is a normal condition, unlike tag or encryption lookup
// failures which abort the call.
const noPolicySet = "No policy set"

func listBucketsDefinition() Definition {
	return Definition{
		Name:        "list_buckets",
		Description: "List all buckets with their creation dates.",
		InputSchema: sdk.ConfigSchema{
			Type:       "object",
			Properties: map[string]sdk.PropertySchema{},
			Required:   []string{},
		},
	}
}

func listBuckets(ctx context.Context, store storage.Store, params map[string]interface{}) *Result {
	buckets, err := store.ListBuckets(ctx)
	if err != nil {
		return internalError("failed to list buckets", err)
	}

	rows := make([]map[string]interface{}, 0, len(buckets))
	for _, b := range buckets {
		rows = append(rows, map[string]interface{}{
			"name":          b.Name,
			"creation_date": b.CreationDate,
		})
	}

	return OK(map[string]interface{}{
		"buckets": rows,
		"count":   len(rows),
	})
}

func getBucketInfoDefinition() Definition {
	return Definition{
		Name:        "get_bucket_info",
		Description: "Get detailed information about a bucket: tags, creation date, policy, encryption, object count and total size.",
		InputSchema: sdk.ConfigSchema{
			Type: "object",
			Properties: map[string]sdk.PropertySchema{
				"bucket_name": {Type: "string", Description: "Name of the bucket"},
			},
			Required: []string{"bucket_name"},
		},
	}
}

func getBucketInfo(ctx context.Context, store storage.Store, params map[string]interface{}) *Result {
	bucket, err := requireString(params, "bucket_name")
	if err != nil {
		return Errorf(StatusBadRequest, "%v", err)
	}

	if res := checkBucket(ctx, store, bucket); res != nil {
		return res
	}

	tags, err := store.GetBucketTagging(ctx, bucket)
	if err != nil {
		return internalError("failed to get bucket tags", err)
	}
	if tags == nil {
		tags = map[string]string{}
	}

	// Creation date only comes from the bucket listing
	buckets, err := store.ListBuckets(ctx)
	if err != nil {
		return internalError("failed to list buckets", err)
	}

	var creationDate interface{}
	for _, b := range buckets {
		if b.Name == bucket {
			creationDate = b.CreationDate
			break
		}
	}

	policy, err := store.GetBucketPolicy(ctx, bucket)
	if err != nil {
		if errors.Is(err, storage.ErrNoSuchPolicy) {
			policy = noPolicySet
		} else {
			return internalError("failed to get bucket policy", err)
		}
	}

	encryption, err := store.GetBucketEncryption(ctx, bucket)
	if err != nil {
		return internalError("failed to get bucket encryption", err)
	}

	// Single pass over the object stream folds count and size together
	var objectCount int64
	var totalSize int64
	for entry := range store.ListObjects(ctx, bucket, "") {
		if entry.Err != nil {
			return internalError("failed to enumerate objects", entry.Err)
		}
		objectCount++
		totalSize += entry.Size
	}

	payload := map[string]interface{}{
		"name":          bucket,
		"tags":          tags,
		"creation_date": creationDate,
		"policy":        policy,
		"object_count":  objectCount,
		"total_size":    totalSize,
	}

	if encryption != nil {
		payload["encryption"] = map[string]interface{}{
			"algorithm":  encryption.Algorithm,
			"kms_key_id": encryption.KMSKeyID,
		}
	}

	return OK(payload)
}

func listObjectsDefinition() Definition {
	return Definition{
		Name:        "list_objects",
		Description: "List objects in a bucket, optionally filtered by prefix.",
		InputSchema: sdk.ConfigSchema{
			Type: "object",
			Properties: map[string]sdk.PropertySchema{
				"bucket_name": {Type: "string", Description: "Name of the bucket"},
				"prefix":      {Type: "string", Description: "Only list objects whose keys start with this prefix", Default: ""},
				"limit":       {Type: "integer", Description: "Maximum number of objects to return; -1 returns all", Default: defaultListLimit},
			},
			Required: []string{"bucket_name"},
		},
	}
}

func listObjects(ctx context.Context, store storage.Store, params map[string]interface{}) *Result {
	bucket, err := requireString(params, "bucket_name")
	if err != nil {
		return Errorf(StatusBadRequest, "%v", err)
	}

	prefix, err := optionalString(params, "prefix", "")
	if err != nil {
		return Errorf(StatusBadRequest, "%v", err)
	}

	limit, err := optionalInt(params, "limit", defaultListLimit)
	if err != nil {
		return Errorf(StatusBadRequest, "%v", err)
	}
	if limit < -1 {
		return Errorf(StatusBadRequest, "parameter 'limit' must be -1 or a non-negative integer")
	}

	if res := checkBucket(ctx, store, bucket); res != nil {
		return res
	}

	// Cancel the stream once we have enough so the producer stops paging
	streamCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	objects := make([]map[string]interface{}, 0)
	for entry := range store.ListObjects(streamCtx, bucket, prefix) {
		if entry.Err != nil {
			return internalError("failed to list objects", entry.Err)
		}
		if limit != -1 && len(objects) >= limit {
			cancel()
			break
		}
		objects = append(objects, map[string]interface{}{
			"key":           entry.Key,
			"size":          entry.Size,
			"last_modified": entry.LastModified,
			"etag":          entry.ETag,
			"storage_class": entry.StorageClass,
		})
	}

	return OK(map[string]interface{}{
		"bucket":  bucket,
		"objects": objects,
		"count":   len(objects),
	})
}

func createBucketDefinition() Definition {
	return Definition{
		Name:        "create_bucket",
		Description: "Create a new bucket.",
		InputSchema: sdk.ConfigSchema{
			Type: "object",
			Properties: map[string]sdk.PropertySchema{
				"bucket_name": {Type: "string", Description: "Name of the bucket to create"},
			},
			Required: []string{"bucket_name"},
		},
	}
}

func createBucket(ctx context.Context, store storage.Store, params map[string]interface{}) *Result {
	bucket, err := requireString(params, "bucket_name")
	if err != nil {
		return Errorf(StatusBadRequest, "%v", err)
	}

	// Rejected locally, the backend never sees the malformed name
	if strings.Contains(bucket, "/") {
		return Errorf(StatusBadRequest, "Bucket name cannot contain '/' character.")
	}

	exists, err := store.BucketExists(ctx, bucket)
	if err != nil {
		return internalError("failed to check bucket existence", err)
	}
	if exists {
		return Errorf(StatusConflict, "Bucket '%s' already exists.", bucket)
	}

	if err := store.MakeBucket(ctx, bucket); err != nil {
		return internalError("failed to create bucket", err)
	}

	return OK(map[string]interface{}{
		"message": "Bucket '" + bucket + "' created successfully.",
	})
}

func deleteBucketDefinition() Definition {
	return Definition{
		Name:        "delete_bucket",
		Description: "Delete a bucket. A non-empty bucket is only deleted when force is true.",
		InputSchema: sdk.ConfigSchema{
			Type: "object",
			Properties: map[string]sdk.PropertySchema{
				"bucket_name": {Type: "string", Description: "Name of the bucket to delete"},
				"force":       {Type: "boolean", Description: "Delete all objects first when the bucket is not empty", Default: false},
			},
			Required: []string{"bucket_name"},
		},
	}
}

func deleteBucket(ctx context.Context, store storage.Store, params map[string]interface{}) *Result {
	bucket, err := requireString(params, "bucket_name")
	if err != nil {
		return Errorf(StatusBadRequest, "%v", err)
	}

	force, err := optionalBool(params, "force", false)
	if err != nil {
		return Errorf(StatusBadRequest, "%v", err)
	}

	exists, err := store.BucketExists(ctx, bucket)
	if err != nil {
		return internalError("failed to check bucket existence", err)
	}
	if !exists {
		return bucketNotFound(bucket)
	}

	if force {
		// Enumerate first, then purge. The purge is not atomic: objects
		// written after the enumeration survive and fail the final delete.
		keys := make([]string, 0)
		for entry := range store.ListObjects(ctx, bucket, "") {
			if entry.Err != nil {
				return internalError("failed to enumerate objects", entry.Err)
			}
			keys = append(keys, entry.Key)
		}

		for _, key := range keys {
			if err := store.RemoveObject(ctx, bucket, key, ""); err != nil {
				// Already gone is fine during a purge
				if errors.Is(err, storage.ErrNoSuchKey) {
					continue
				}
				return internalError("failed to delete object '"+key+"'", err)
			}
		}
	} else {
		// Probe the first entry only; cancel so the producer stops paging
		probeCtx, cancel := context.WithCancel(ctx)
		entry, ok := <-store.ListObjects(probeCtx, bucket, "")
		cancel()
		if ok {
			if entry.Err != nil {
				return internalError("failed to enumerate objects", entry.Err)
			}
			return Errorf(StatusBadRequest, "Bucket '%s' is not empty. Use force=true to delete it along with its contents.", bucket)
		}
	}

	if err := store.RemoveBucket(ctx, bucket); err != nil {
		return internalError("failed to delete bucket", err)
	}

	return OK(map[string]interface{}{
		"message": "Bucket '" + bucket + "' deleted successfully.",
	})
}
