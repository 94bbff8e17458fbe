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

// Package gateway is the HTTP front door of BucketFlow. It exposes tool
// dispatch (POST /api/v1/tools/call), tool discovery (GET /api/v1/tools),
// health and metrics endpoints, and owns process lifecycle: connector
// registration on startup, graceful disconnect on shutdown.
//
// The HTTP status of a tool call response always mirrors the envelope
// status, so clients can route on either.
package gateway
