package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/location-cleaner/app/config"
	"github.com/location-cleaner/internal/location"
	"github.com/location-cleaner/internal/province"
	"go.uber.org/zap"
)

// Worker đọc từng dòng location từ stdin, ghi kết quả ra stdout.
// Dòng không clean được ghi "ERROR: <lý do>" để giữ đúng thứ tự dòng.
func main() {
	// Load configuration
	path := os.Getenv("CLEANER_CONFIG")
	if path == "" {
		path = "config/cleaner.yaml"
	}
	if err := config.Load(path); err != nil {
		log.Fatalf("Cannot load config: %v", err)
	}

	logger := initLogger()
	defer logger.Sync()

	identifier := province.NewIdentifier(province.Config{
		PrimaryThreshold: config.C.PrimaryThreshold,
		Threshold:        config.C.Threshold,
	}, logger)
	cleaner := location.NewCleaner(identifier, logger)

	processed, failed, err := run(cleaner, os.Stdin, os.Stdout)
	if err != nil {
		logger.Fatal("Worker failed", zap.Error(err))
	}

	logger.Info("Worker finished",
		zap.Int("processed", processed),
		zap.Int("failed", failed))
}

func run(cleaner *location.Cleaner, r io.Reader, w io.Writer) (processed, failed int, err error) {
	in := bufio.NewScanner(r)
	out := bufio.NewWriter(w)
	defer out.Flush()

	for in.Scan() {
		processed++

		loc, err := cleaner.Clean(in.Text())
		if err != nil {
			failed++
			fmt.Fprintf(out, "ERROR: %v\n", err)
			continue
		}
		fmt.Fprintln(out, loc.String())
	}
	return processed, failed, in.Err()
}

// initLogger log ra stderr để không lẫn với output
func initLogger() *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	if os.Getenv("APP_ENV") == "production" {
		cfg = zap.NewProductionConfig()
	}
	cfg.OutputPaths = []string{"stderr"}

	logger, err := cfg.Build()
	if err != nil {
		log.Fatal("Cannot initialize logger:", err)
	}
	return logger
}
