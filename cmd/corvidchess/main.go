// Command corvidchess runs the engine's UCI-style command loop over
// stdin/stdout.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"corvidchess/internal/config"
	"corvidchess/uci"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML configuration file (optional)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "corvidchess: invalid config: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg.DebugLogPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "corvidchess: could not open debug sink: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := uci.Run(os.Stdin, os.Stdout, logger.Sugar(), cfg); err != nil {
		logger.Sugar().Errorw("command loop exited with error", "error", err)
		os.Exit(1)
	}
}

// newLogger opens the zap debug sink. An empty path logs to stderr; any
// other path is a Fatal I/O error per spec §7 if it cannot be opened.
func newLogger(path string) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	zc.Encoding = "console"
	if path == "" {
		zc.OutputPaths = []string{"stderr"}
	} else {
		zc.OutputPaths = []string{path}
	}
	return zc.Build()
}
