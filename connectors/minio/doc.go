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

// Package minio provides the MinIO storage connector. It speaks the S3 API
// through the AWS SDK with path-style addressing, so it also works against
// any S3-compatible service reachable at a custom endpoint.
//
// The connector implements two contracts: base.Connector for lifecycle
// (register, health check, shutdown) and storage.Store for the bucket and
// object operations the tool dispatch layer calls. S3 API failures are
// translated onto the storage package's sentinel errors at this boundary;
// callers never handle SDK error types.
package minio
