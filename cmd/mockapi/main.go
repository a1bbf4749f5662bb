package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Wass76/robotic-card-dashboard/internal/mockapi"
	"github.com/Wass76/robotic-card-dashboard/internal/platform/logging"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	logLevel := flag.String("log-level", "info", "log level")
	flag.Parse()

	logger, err := logging.New(logging.Config{Level: *logLevel})
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "mockapi: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	if err := mockapi.New(logger.Slog()).Run(*addr); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "mockapi: %v\n", err)
		os.Exit(1)
	}
}
