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

// Package base defines the core connector contract for BucketFlow.
//
// A connector owns exactly one backend handle: it is configured once,
// connected once at startup, shared across concurrent tool invocations
// and disconnected at shutdown. Construction failures are wrapped into
// ConnectorError so callers have a single failure shape to handle
// regardless of which backend SDK produced them.
package base
