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

// Package tools implements the bucket and object management tools exposed
// by the gateway. Every call returns a uniform Result envelope: a payload
// on success, a message and a non-OK status on failure, never a Go error.
//
// Tools operate against the storage.Store contract and hold no state
// between calls. Existence checks always hit the backend; nothing is
// cached, so results reflect the backend at call time.
package tools
