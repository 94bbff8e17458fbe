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

package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"bucketflow/platform/connectors/base"
)

// FileConfig is the on-disk configuration shape (bucketflow.yaml).
type FileConfig struct {
	Version    string                         `yaml:"version"`
	Gateway    GatewayFileConfig              `yaml:"gateway,omitempty"`
	Connectors map[string]ConnectorFileConfig `yaml:"connectors,omitempty"`
}

// GatewayFileConfig holds gateway-level settings
type GatewayFileConfig struct {
	Port string `yaml:"port,omitempty"`
}

// ConnectorFileConfig holds per-connector settings from the config file
type ConnectorFileConfig struct {
	Type        string                 `yaml:"type"`
	Enabled     bool                   `yaml:"enabled"`
	DisplayName string                 `yaml:"display_name,omitempty"`
	Endpoint    string                 `yaml:"endpoint,omitempty"`
	Credentials map[string]string      `yaml:"credentials,omitempty"`
	Options     map[string]interface{} `yaml:"options,omitempty"`
	Timeout     string                 `yaml:"timeout,omitempty"`
}

// DefaultConfigFilePaths are checked in order when BUCKETFLOW_CONFIG_FILE
// is not set.
var DefaultConfigFilePaths = []string{
	"./bucketflow.yaml",
	"./config/bucketflow.yaml",
}

// ConfigFilePath returns the config file to use, or "" when none exists.
func ConfigFilePath() string {
	if path := os.Getenv("BUCKETFLOW_CONFIG_FILE"); path != "" {
		return path
	}
	for _, path := range DefaultConfigFilePaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// LoadConfigFile parses a YAML config file
func LoadConfigFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config FileConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

// MinioConnectorConfig converts the file entry named connectorName into a
// ConnectorConfig. Returns false when the file has no enabled entry of
// type minio under that name.
func (f *FileConfig) MinioConnectorConfig(connectorName string) (*base.ConnectorConfig, bool, error) {
	entry, ok := f.Connectors[connectorName]
	if !ok || !entry.Enabled || entry.Type != "minio" {
		return nil, false, nil
	}

	config := &base.ConnectorConfig{
		Name:        connectorName,
		Type:        entry.Type,
		Endpoint:    entry.Endpoint,
		Credentials: make(map[string]string),
		Options:     make(map[string]interface{}),
	}

	for k, v := range entry.Credentials {
		config.Credentials[k] = v
	}
	for k, v := range entry.Options {
		config.Options[k] = v
	}

	if entry.Timeout != "" {
		timeout, err := time.ParseDuration(entry.Timeout)
		if err != nil {
			return nil, true, fmt.Errorf("invalid timeout %q for connector %s: %w", entry.Timeout, connectorName, err)
		}
		config.Timeout = timeout
	}

	return config, true, nil
}
