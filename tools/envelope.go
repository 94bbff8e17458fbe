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

import "fmt"

// Status is the outcome class of a tool call. Values double as HTTP
// status codes so the gateway mirrors them directly.
type Status int

const (
	StatusOK         Status = 200
	StatusBadRequest Status = 400
	StatusNotFound   Status = 404
	StatusConflict   Status = 409
	StatusInternal   Status = 500
)

// String returns the symbolic name of the status
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusBadRequest:
		return "BAD_REQUEST"
	case StatusNotFound:
		return "NOT_FOUND"
	case StatusConflict:
		return "CONFLICT"
	case StatusInternal:
		return "INTERNAL"
	default:
		return fmt.Sprintf("STATUS_%d", int(s))
	}
}

// Result is the uniform envelope every tool call returns. Exactly one of
// Payload and Error carries content: Error is set if and only if Status is
// not StatusOK, and Payload is empty whenever Error is set.
type Result struct {
	Payload map[string]interface{} `json:"payload"`
	Error   string                 `json:"error,omitempty"`
	Status  Status                 `json:"status"`
}

// OK builds a success envelope. A nil payload becomes an empty map so the
// JSON form is always an object.
func OK(payload map[string]interface{}) *Result {
	if payload == nil {
		payload = map[string]interface{}{}
	}
	return &Result{
		Payload: payload,
		Status:  StatusOK,
	}
}

// Errorf builds a failure envelope with an empty payload. Passing StatusOK
// is a programming error and is coerced to StatusInternal to keep the
// envelope invariant intact.
func Errorf(status Status, format string, args ...interface{}) *Result {
	if status == StatusOK {
		status = StatusInternal
	}
	return &Result{
		Payload: map[string]interface{}{},
		Error:   fmt.Sprintf(format, args...),
		Status:  status,
	}
}

// IsOK reports whether the call succeeded
func (r *Result) IsOK() bool {
	return r.Status == StatusOK
}
