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

package gateway

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"

	"bucketflow/platform/connectors/config"
	"bucketflow/platform/connectors/minio"
	"bucketflow/platform/connectors/registry"
	"bucketflow/platform/tools"
)

// defaultConnectorName is the registry key for the single storage backend
const defaultConnectorName = "minio"

// Run is the exported entry point for the gateway service. It wires the
// storage connector, the tool registry and the HTTP server, then blocks
// until SIGINT/SIGTERM and shuts down gracefully.
func Run() {
	port := getEnv("PORT", "8080")

	// Config file may override the port
	if path := config.ConfigFilePath(); path != "" {
		fileCfg, err := config.LoadConfigFile(path)
		if err != nil {
			log.Fatalf("Failed to load config file %s: %v", path, err)
		}
		if fileCfg.Gateway.Port != "" {
			port = fileCfg.Gateway.Port
		}
	}

	connCfg, err := config.LoadMinioConfig(defaultConnectorName)
	if err != nil {
		log.Fatalf("Failed to load connector configuration: %v", err)
	}

	connectors := registry.NewRegistry()
	connector := minio.NewConnector()
	if err := connectors.Register(defaultConnectorName, connector, connCfg); err != nil {
		log.Fatalf("Failed to register storage connector: %v", err)
	}

	toolRegistry := tools.NewRegistry(connector)
	server := NewServer(toolRegistry, connectors)

	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // Configure for production
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	httpServer := &http.Server{
		Addr:         ":" + port,
		Handler:      corsMiddleware.Handler(server.Router()),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	go func() {
		log.Printf("BucketFlow gateway starting on port %s", port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down gateway...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	connectors.DisconnectAll(ctx)
	log.Println("Gateway stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
