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

/*
Command gateway runs the BucketFlow gateway service.

The gateway exposes object-storage management tools over HTTP: bucket
listing and inspection, bucket creation and deletion, object metadata
lookup and object deletion. All tool calls return a uniform JSON envelope
whose status mirrors the HTTP response code.

# Usage

	gateway [flags]

# Environment Variables

Required:
  - MINIO_ENDPOINT: MinIO endpoint, host:port or URL

Optional:
  - PORT: HTTP server port (default: 8080)
  - MINIO_ACCESS_KEY: Access key
  - MINIO_SECRET_KEY: Secret key
  - MINIO_SECURE: Use TLS, "true" or "false" (default: false)
  - MINIO_REGION: Region (default: us-east-1)
  - BUCKETFLOW_CONFIG_FILE: YAML config file path

# Example

	export MINIO_ENDPOINT="localhost:9000"
	export MINIO_ACCESS_KEY="minioadmin"
	export MINIO_SECRET_KEY="minioadmin"
	./gateway
*/
package main
