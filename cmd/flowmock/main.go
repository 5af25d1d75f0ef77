// Flowmock is an in-process mock of the Airflow REST API for integration
// testing.
//
// The binary starts an HTTP server bound to one instance id. Each instance
// id owns an isolated state store, so parallel test suites pointed at
// different ids never see each other's data.
//
// Usage:
//
//	# Start with defaults (localhost:8080, instance "default")
//	flowmock serve
//
//	# Start a seeded instance on another port
//	flowmock serve --port 9090 --instance-id suite-a --seed
//
//	# Configure via file and environment
//	flowmock serve --config flowmock.yaml
//	SERVER_PORT=9090 flowmock serve
package main

import (
	"os"

	"github.com/spf13/cobra"
)

// Version information (set via ldflags during build)
var (
	version   = "dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flowmock",
	Short: "Mock Airflow REST API server for integration tests",
	Long: `flowmock serves a stateful mock of the Airflow REST API.

It keeps all state in memory, isolated per instance id, and implements
the DAG, DAG run, task instance, XCom, connection, variable, pool, and
provider endpoints that clients exercise in tests.`,
	Version: version,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}
