package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ironsheep/png-squeeze/internal/budget"
	"github.com/ironsheep/png-squeeze/internal/grid"
	"github.com/ironsheep/png-squeeze/internal/report"
	"github.com/ironsheep/png-squeeze/internal/selector"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("png-squeeze %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		}
	}

	var (
		inPath  = flag.String("in", "", "source image path (png, jpeg, or gif)")
		outPath = flag.String("out", "compressed_lossless.png", "destination path for the winning candidate")
		target  = flag.Int("target", 400, "size budget in bytes the output must come in under")
		scratch = flag.String("scratch", "", "optional directory to dump every candidate into for inspection")
		verbose = flag.Bool("verbose", false, "log per-strategy progress events")
	)
	flag.Parse()

	if *inPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: png-squeeze -in image.png [-out dest.png] [-target bytes]")
		flag.PrintDefaults()
		os.Exit(2)
	}
	if *target <= 0 {
		fmt.Fprintln(os.Stderr, "target must be a positive byte count")
		os.Exit(2)
	}

	logger := newLogger(*verbose)
	defer logger.Sync()

	if err := run(*inPath, *outPath, *target, *scratch, logger); err != nil {
		logger.Error("run_failed", zap.Error(err))
		os.Exit(2)
	}
}

func run(inPath, outPath string, target int, scratchDir string, logger *zap.Logger) error {
	g, info, err := grid.Load(inPath)
	if err != nil {
		return err
	}

	fmt.Printf("Source: %s (%dx%d, %s, %d unique colors, %d bytes)\n",
		info.Path, info.Width, info.Height, info.Mode, info.UniqueColors, info.SizeBytes)
	fmt.Printf("Target: < %d bytes\n", target)

	comp := &report.Compressor{
		Runner: &selector.Runner{Logger: logger},
		Logger: logger,
	}
	if scratchDir != "" {
		s, err := report.NewScratch(scratchDir)
		if err != nil {
			return err
		}
		comp.Scratch = s
	}

	rep, err := comp.Compress(context.Background(), g, info.SizeBytes, target, outPath)
	if err != nil {
		return err
	}

	fmt.Println("\nVerified lossless candidates:")
	for _, c := range rep.Candidates {
		fmt.Printf("  %6d bytes - %s\n", c.SizeBytes, c.Strategy)
	}

	switch rep.Status {
	case budget.StatusSuccess:
		fmt.Printf("\nSuccess: %d bytes via %s (%.1f%% smaller), written to %s\n",
			rep.BestSizeBytes, rep.StrategyName, rep.CompressionRatioPercent, rep.OutputPath)
	case budget.StatusBudgetMissed:
		fmt.Printf("\nBudget missed: best lossless result is %d bytes via %s, %d bytes over the %d-byte target. No file written.\n",
			rep.BestSizeBytes, rep.StrategyName, rep.ShortfallBytes, rep.TargetBytes)
		os.Exit(1)
	}
	return nil
}

// newLogger builds a stderr logger; stdout is reserved for the result
// summary.
func newLogger(verbose bool) *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	if verbose || os.Getenv("PNG_SQUEEZE_LOG_LEVEL") == "debug" {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(2)
	}
	return logger
}
