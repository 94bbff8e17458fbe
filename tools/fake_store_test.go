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
	"sort"
	"strings"
	"sync"
	"time"

	"bucketflow/platform/storage"
)

// fakeStore is an in-memory storage.Store used by the tool tests. It
// records which operations were invoked so tests can assert that
// validation short-circuits before any backend call.
type fakeStore struct {
	mu       sync.Mutex
	buckets  map[string]fakeBucket
	calls    []string
	failWith map[string]error
}

type fakeBucket struct {
	creationDate time.Time
	tags         map[string]string
	policy       string
	encryption   *storage.SSEConfig
	objects      map[string]storage.ObjectStat
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		buckets:  make(map[string]fakeBucket),
		failWith: make(map[string]error),
	}
}

func (f *fakeStore) addBucket(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.buckets[name] = fakeBucket{
		creationDate: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		objects:      make(map[string]storage.ObjectStat),
	}
}

func (f *fakeStore) addObject(bucket, key string, size int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b := f.buckets[bucket]
	b.objects[key] = storage.ObjectStat{
		ObjectInfo: storage.ObjectInfo{
			Key:          key,
			Size:         size,
			LastModified: time.Date(2025, 6, 2, 8, 30, 0, 0, time.UTC),
			ETag:         "etag-" + key,
			StorageClass: "STANDARD",
		},
		ContentType: "application/octet-stream",
	}
	f.buckets[bucket] = b
}

func (f *fakeStore) record(op string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, op)
}

func (f *fakeStore) called(op string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.calls {
		if c == op {
			return true
		}
	}
	return false
}

func (f *fakeStore) fail(op string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.failWith[op]
}

func (f *fakeStore) ListBuckets(ctx context.Context) ([]storage.BucketInfo, error) {
	f.record("ListBuckets")
	if err := f.fail("ListBuckets"); err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	names := make([]string, 0, len(f.buckets))
	for name := range f.buckets {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]storage.BucketInfo, 0, len(names))
	for _, name := range names {
		out = append(out, storage.BucketInfo{Name: name, CreationDate: f.buckets[name].creationDate})
	}
	return out, nil
}

func (f *fakeStore) BucketExists(ctx context.Context, bucket string) (bool, error) {
	f.record("BucketExists")
	if err := f.fail("BucketExists"); err != nil {
		return false, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.buckets[bucket]
	return ok, nil
}

func (f *fakeStore) MakeBucket(ctx context.Context, bucket string) error {
	f.record("MakeBucket")
	if err := f.fail("MakeBucket"); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.buckets[bucket] = fakeBucket{
		creationDate: time.Now().UTC(),
		objects:      make(map[string]storage.ObjectStat),
	}
	return nil
}

func (f *fakeStore) RemoveBucket(ctx context.Context, bucket string) error {
	f.record("RemoveBucket")
	if err := f.fail("RemoveBucket"); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.buckets[bucket]
	if !ok {
		return storage.ErrNoSuchBucket
	}
	if len(b.objects) > 0 {
		return storage.ErrNoSuchBucket // backend rejects non-empty deletes
	}
	delete(f.buckets, bucket)
	return nil
}

func (f *fakeStore) GetBucketTagging(ctx context.Context, bucket string) (map[string]string, error) {
	f.record("GetBucketTagging")
	if err := f.fail("GetBucketTagging"); err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	return f.buckets[bucket].tags, nil
}

func (f *fakeStore) GetBucketPolicy(ctx context.Context, bucket string) (string, error) {
	f.record("GetBucketPolicy")
	if err := f.fail("GetBucketPolicy"); err != nil {
		return "", err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	b := f.buckets[bucket]
	if b.policy == "" {
		return "", storage.ErrNoSuchPolicy
	}
	return b.policy, nil
}

func (f *fakeStore) GetBucketEncryption(ctx context.Context, bucket string) (*storage.SSEConfig, error) {
	f.record("GetBucketEncryption")
	if err := f.fail("GetBucketEncryption"); err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	return f.buckets[bucket].encryption, nil
}

func (f *fakeStore) ListObjects(ctx context.Context, bucket, prefix string) <-chan storage.ObjectEntry {
	f.record("ListObjects")

	entries := make(chan storage.ObjectEntry)
	go func() {
		defer close(entries)

		if err := f.fail("ListObjects"); err != nil {
			select {
			case entries <- storage.ObjectEntry{Err: err}:
			case <-ctx.Done():
			}
			return
		}

		f.mu.Lock()
		b := f.buckets[bucket]
		keys := make([]string, 0, len(b.objects))
		for key := range b.objects {
			if strings.HasPrefix(key, prefix) {
				keys = append(keys, key)
			}
		}
		sort.Strings(keys)
		infos := make([]storage.ObjectInfo, 0, len(keys))
		for _, key := range keys {
			infos = append(infos, b.objects[key].ObjectInfo)
		}
		f.mu.Unlock()

		for _, info := range infos {
			select {
			case entries <- storage.ObjectEntry{ObjectInfo: info}:
			case <-ctx.Done():
				return
			}
		}
	}()

	return entries
}

func (f *fakeStore) StatObject(ctx context.Context, bucket, key string) (*storage.ObjectStat, error) {
	f.record("StatObject")
	if err := f.fail("StatObject"); err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.buckets[bucket]
	if !ok {
		return nil, storage.ErrNoSuchBucket
	}
	stat, ok := b.objects[key]
	if !ok {
		return nil, storage.ErrNoSuchKey
	}
	return &stat, nil
}

func (f *fakeStore) RemoveObject(ctx context.Context, bucket, key, versionID string) error {
	f.record("RemoveObject")
	if err := f.fail("RemoveObject"); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.buckets[bucket]
	if !ok {
		return storage.ErrNoSuchBucket
	}
	if _, ok := b.objects[key]; !ok {
		return storage.ErrNoSuchKey
	}
	delete(b.objects, key)
	return nil
}

var _ storage.Store = (*fakeStore)(nil)
