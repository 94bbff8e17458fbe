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

// Package main is the entry point for the BucketFlow gateway service.
//
// The gateway connects to a MinIO (or any S3-compatible) backend and exposes
// bucket and object management tools over HTTP.
//
// Usage:
//
//	./gateway
//
// Environment Variables:
//
//	PORT - HTTP server port (default: 8080)
//	MINIO_ENDPOINT - MinIO endpoint, host:port or URL (required)
//	MINIO_ACCESS_KEY - Access key
//	MINIO_SECRET_KEY - Secret key
//	MINIO_SECURE - Use TLS, "true" or "false" (default: false)
//	MINIO_REGION - Region (default: us-east-1)
//	BUCKETFLOW_CONFIG_FILE - Optional YAML config file path
package main

import (
	"bucketflow/platform/gateway"
)

func main() {
	gateway.Run()
}
