// Command contentctl runs maintenance jobs against the configured content storage.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/riskibarqy/esports-hub/internal/platform/logging"
)

func main() {
	logger := logging.NewJSONTo(os.Stderr, logging.ParseLevel(os.Getenv("APP_LOG_LEVEL")))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := rootCmd(logger).ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
