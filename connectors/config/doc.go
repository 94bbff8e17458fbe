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

// Package config loads connector and gateway configuration.
//
// Configuration priority: config file (BUCKETFLOW_CONFIG_FILE or
// ./bucketflow.yaml) > environment variables. The file is optional; a
// deployment that only sets MINIO_* env vars works unchanged.
package config
