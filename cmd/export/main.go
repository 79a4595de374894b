package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/bokdata/isbn-scraper/internal/export"
)

func main() {
	var (
		dir     = flag.String("dir", "./data", "Directory containing per-ISBN JSON records")
		outFile = flag.String("export", "entries.tsv", "Output TSV file")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if err := export.WriteFile(*dir, *outFile, logger); err != nil {
		logger.Error("export failed", "error", err)
		os.Exit(1)
	}

	fmt.Printf("Data successfully written to %s\n", *outFile)
}
