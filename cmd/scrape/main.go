package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/bokdata/isbn-scraper/internal/browser"
	"github.com/bokdata/isbn-scraper/internal/config"
	"github.com/bokdata/isbn-scraper/internal/parser"
	"github.com/bokdata/isbn-scraper/internal/queue"
	"github.com/bokdata/isbn-scraper/internal/ratelimit"
	"github.com/bokdata/isbn-scraper/internal/scraper"
	"github.com/bokdata/isbn-scraper/internal/storage"
)

func main() {
	var (
		isbn      = flag.String("isbn", "", "Single ISBN to scrape")
		inputFile = flag.String("file", "", "File containing ISBNs (one per line)")
		delay     = flag.Duration("delay", 0, "Delay between ISBNs (overrides SCRAPER_DELAY)")
		outDir    = flag.String("out", "", "Directory for JSON records (overrides STORAGE_DATA_DIR)")
		headless  = flag.Bool("headless", true, "Run browser in headless mode")
	)
	flag.Parse()

	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	if *delay > 0 {
		cfg.Scraper.Delay = *delay
	}
	if *outDir != "" {
		cfg.Storage.DataDir = *outDir
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("shutdown signal received")
		cancel()
	}()

	store, err := storage.NewRecordStore(cfg.Storage.DataDir)
	if err != nil {
		logger.Error("failed to initialize record store", "error", err)
		os.Exit(1)
	}

	renderer := browser.NewRenderer(&browser.Options{
		Headless:       headlessSetting(flag.CommandLine, *headless, cfg.Browser.Headless),
		Timeout:        cfg.Browser.Timeout,
		UserAgent:      browser.DefaultOptions().UserAgent,
		ViewportWidth:  cfg.Browser.ViewportWidth,
		ViewportHeight: cfg.Browser.ViewportHeight,
		AcceptLanguage: cfg.Browser.AcceptLanguage,
		TimezoneID:     cfg.Browser.TimezoneID,
		Locale:         cfg.Browser.Locale,
	})

	service := scraper.NewService(renderer, parser.Sites(),
		scraper.WithWaits(cfg.Scraper.ConsentWait, cfg.Scraper.ReadyWait))

	taskQueue := queue.NewInMemoryQueue()

	if err := loadTasks(taskQueue, *isbn, *inputFile); err != nil {
		logger.Error("failed to load tasks", "error", err)
		os.Exit(1)
	}
	taskQueue.Close()

	if taskQueue.Size() == 0 {
		fmt.Println("No ISBNs to process. Use -isbn or -file.")
		flag.Usage()
		os.Exit(1)
	}

	limiter := ratelimit.NewSimpleRateLimiter(cfg.Scraper.Delay, cfg.Scraper.Delay)

	logger.Info("starting batch scrape", "tasks", taskQueue.Size(), "delay", cfg.Scraper.Delay)

	scraped, failed := 0, 0
	for {
		task, err := taskQueue.Pop(ctx)
		if err != nil {
			break
		}

		if err := limiter.Wait(ctx); err != nil {
			break
		}

		record, err := service.Scrape(ctx, task.ISBN)
		if err != nil {
			logger.Error("failed to scrape ISBN", "isbn", task.ISBN, "error", err)
			failed++
			continue
		}

		if err := store.Save(ctx, record); err != nil {
			logger.Error("failed to save record", "isbn", task.ISBN, "error", err)
			failed++
			continue
		}

		logger.Info("processed ISBN", "isbn", task.ISBN, "title", record.Title)
		scraped++
	}

	logger.Info("batch scrape finished", "scraped", scraped, "failed", failed)
}

// headlessSetting resolves the headless mode: an explicitly passed
// -headless flag wins over BROWSER_HEADLESS, otherwise the env value
// applies. The flag default alone is not user intent.
func headlessSetting(fs *flag.FlagSet, flagValue, envValue bool) bool {
	explicit := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "headless" {
			explicit = true
		}
	})
	if explicit {
		return flagValue
	}
	return envValue
}

func loadTasks(q queue.Queue, isbn, inputFile string) error {
	var isbns []string

	if isbn != "" {
		isbns = append(isbns, isbn)
	}

	if inputFile != "" {
		data, err := os.ReadFile(inputFile)
		if err != nil {
			return fmt.Errorf("failed to read input file: %w", err)
		}
		for _, line := range strings.Split(string(data), "\n") {
			line = strings.TrimSpace(line)
			if line != "" && !strings.HasPrefix(line, "#") {
				isbns = append(isbns, line)
			}
		}
	}

	for i, value := range isbns {
		q.Push(&queue.Task{
			ID:        fmt.Sprintf("task-%d", i),
			ISBN:      value,
			CreatedAt: time.Now(),
		})
	}

	return nil
}
