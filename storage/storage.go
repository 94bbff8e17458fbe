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

// Package storage defines the backend-neutral object-store contract the
// tool dispatch layer operates against. Connectors (MinIO, any
// S3-compatible service) implement Store; tools never see SDK types.
package storage

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors connectors map backend-specific failures onto.
// Anything not covered by these passes through with the backend's
// original message intact.
var (
	// ErrNoSuchBucket indicates the referenced bucket does not exist.
	ErrNoSuchBucket = errors.New("bucket does not exist")

	// ErrNoSuchKey indicates the referenced object does not exist.
	ErrNoSuchKey = errors.New("object does not exist")

	// ErrNoSuchPolicy indicates the bucket has no policy configured.
	// Policy absence is a normal condition, not a failure.
	ErrNoSuchPolicy = errors.New("no bucket policy set")
)

// BucketInfo describes a bucket as returned by a listing call.
type BucketInfo struct {
	Name         string    `json:"name"`
	CreationDate time.Time `json:"creation_date"`
}

// ObjectInfo describes an object as returned by an enumeration.
type ObjectInfo struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
	ETag         string    `json:"etag"`
	StorageClass string    `json:"storage_class"`
}

// ObjectStat carries the full metadata of a single object lookup.
type ObjectStat struct {
	ObjectInfo
	ContentType    string            `json:"content_type"`
	Metadata       map[string]string `json:"metadata"`
	VersionID      string            `json:"version_id"`
	IsDeleteMarker bool              `json:"is_delete_marker"`
}

// SSEConfig describes a bucket's server-side encryption configuration.
type SSEConfig struct {
	Algorithm string `json:"algorithm"`
	KMSKeyID  string `json:"kms_key_id,omitempty"`
}

// ObjectEntry is one element of an enumeration stream. A failed
// enumeration delivers exactly one trailing entry with Err set before
// the channel closes.
type ObjectEntry struct {
	ObjectInfo
	Err error
}

// Store is the object-storage backend handle. Implementations must be
// safe for concurrent use; the handle carries no client-side mutable
// state beyond its configuration.
type Store interface {
	// ListBuckets enumerates all buckets.
	ListBuckets(ctx context.Context) ([]BucketInfo, error)

	// BucketExists reports whether the bucket exists. Every call is a
	// fresh backend round-trip; results are never cached.
	BucketExists(ctx context.Context, bucket string) (bool, error)

	// MakeBucket creates a bucket.
	MakeBucket(ctx context.Context, bucket string) error

	// RemoveBucket deletes a bucket. The bucket must be empty.
	RemoveBucket(ctx context.Context, bucket string) error

	// GetBucketTagging returns the bucket's tags.
	GetBucketTagging(ctx context.Context, bucket string) (map[string]string, error)

	// GetBucketPolicy returns the bucket's policy document, or
	// ErrNoSuchPolicy when none is configured.
	GetBucketPolicy(ctx context.Context, bucket string) (string, error)

	// GetBucketEncryption returns the bucket's encryption configuration.
	GetBucketEncryption(ctx context.Context, bucket string) (*SSEConfig, error)

	// ListObjects streams every object under prefix, treating the
	// namespace as flat. The returned channel is single-use: consumers
	// fold what they need in one pass. Producers honor ctx cancellation
	// so abandoned enumerations do not leak goroutines.
	ListObjects(ctx context.Context, bucket, prefix string) <-chan ObjectEntry

	// StatObject returns full object metadata, or ErrNoSuchKey when the
	// object is absent.
	StatObject(ctx context.Context, bucket, key string) (*ObjectStat, error)

	// RemoveObject deletes an object. versionID, when non-empty, targets
	// a specific object version. Returns ErrNoSuchKey when the object is
	// absent.
	RemoveObject(ctx context.Context, bucket, key, versionID string) error
}
