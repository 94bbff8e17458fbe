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

// Package sdk provides the building blocks for BucketFlow storage
// connectors: an embeddable BaseConnector with configuration validation,
// option and credential accessors, per-connector metrics, and an optional
// token-bucket rate limiter.
//
// The schema types (ConfigSchema, PropertySchema) double as the input
// schema format exposed by the tool discovery listing, so connector
// configuration and tool parameters share one description shape.
package sdk
