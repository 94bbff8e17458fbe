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
	"strconv"
	"strings"
	"time"

	"bucketflow/platform/connectors/base"
)

// LoadMinioFromEnv loads the MinIO connector configuration from
// environment variables:
//
//	MINIO_ENDPOINT   (required) host:port or URL of the backend
//	MINIO_ACCESS_KEY access key
//	MINIO_SECRET_KEY secret key
//	MINIO_SECURE     TLS flag, "true"/"false" (default: false)
//	MINIO_REGION     signing region (default: us-east-1)
//	MINIO_TIMEOUT    connect/health-check timeout (default: 30s)
func LoadMinioFromEnv(connectorName string) (*base.ConnectorConfig, error) {
	endpoint := os.Getenv("MINIO_ENDPOINT")
	if endpoint == "" {
		return nil, fmt.Errorf("missing required environment variable: MINIO_ENDPOINT")
	}

	config := &base.ConnectorConfig{
		Name:        connectorName,
		Type:        "minio",
		Endpoint:    endpoint,
		Credentials: make(map[string]string),
		Options:     make(map[string]interface{}),
	}

	// The connector reads its settings through Options
	config.Options["endpoint"] = endpoint

	if accessKey := os.Getenv("MINIO_ACCESS_KEY"); accessKey != "" {
		config.Credentials["access_key"] = accessKey
	}
	if secretKey := os.Getenv("MINIO_SECRET_KEY"); secretKey != "" {
		config.Credentials["secret_key"] = secretKey
	}

	secure, err := parseBoolEnv("MINIO_SECURE", false)
	if err != nil {
		return nil, err
	}
	config.Options["secure"] = secure

	config.Options["region"] = getEnvOrDefault("MINIO_REGION", "us-east-1")

	timeoutStr := os.Getenv("MINIO_TIMEOUT")
	if timeoutStr != "" {
		timeout, err := time.ParseDuration(timeoutStr)
		if err != nil {
			return nil, fmt.Errorf("invalid MINIO_TIMEOUT format: %s", timeoutStr)
		}
		config.Timeout = timeout
	} else {
		config.Timeout = 30 * time.Second
	}

	return config, nil
}

// LoadMinioConfig loads the MinIO connector configuration with the
// standard tiering: config file (when present) overrides environment.
func LoadMinioConfig(connectorName string) (*base.ConnectorConfig, error) {
	envConfig, envErr := LoadMinioFromEnv(connectorName)

	filePath := ConfigFilePath()
	if filePath == "" {
		return envConfig, envErr
	}

	fileConfig, err := LoadConfigFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file %s: %w", filePath, err)
	}

	merged, ok, err := fileConfig.MinioConnectorConfig(connectorName)
	if err != nil {
		return nil, fmt.Errorf("config file %s: %w", filePath, err)
	}
	if !ok {
		return envConfig, envErr
	}

	// File values win; env fills the gaps
	if envErr == nil {
		if merged.Endpoint == "" {
			merged.Endpoint = envConfig.Endpoint
		}
		for k, v := range envConfig.Credentials {
			if _, exists := merged.Credentials[k]; !exists {
				merged.Credentials[k] = v
			}
		}
		for k, v := range envConfig.Options {
			if _, exists := merged.Options[k]; !exists {
				merged.Options[k] = v
			}
		}
		if merged.Timeout == 0 {
			merged.Timeout = envConfig.Timeout
		}
	}

	if merged.Endpoint == "" {
		return nil, fmt.Errorf("no MinIO endpoint configured (set MINIO_ENDPOINT or the config file's endpoint)")
	}
	if merged.Timeout == 0 {
		merged.Timeout = 30 * time.Second
	}
	merged.Options["endpoint"] = merged.Endpoint

	return merged, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.ParseBool(strings.ToLower(v))
	if err != nil {
		return false, fmt.Errorf("invalid boolean for %s: %s", key, v)
	}
	return parsed, nil
}
