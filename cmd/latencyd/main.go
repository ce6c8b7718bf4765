package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"go.uber.org/zap"

	"github.com/ironsheep/png-squeeze/internal/telemetry"
)

func main() {
	var (
		addr = flag.String("addr", ":8080", "listen address")
		data = flag.String("data", "q-vercel-latency.json", "telemetry collection JSON file")
	)
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(2)
	}
	defer logger.Sync()

	records, err := telemetry.LoadCollection(*data)
	if err != nil {
		logger.Fatal("load_collection_failed", zap.Error(err))
	}

	mux := http.NewServeMux()
	mux.Handle("/api/latency", telemetry.NewHandler(records, logger))

	logger.Info("listening",
		zap.String("addr", *addr),
		zap.Int("records", len(records)))
	if err := http.ListenAndServe(*addr, mux); err != nil {
		logger.Fatal("server_failed", zap.Error(err))
	}
}
