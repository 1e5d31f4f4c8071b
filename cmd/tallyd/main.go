// Command tallyd serves the supply/buy statistics pipeline over HTTP and,
// optionally, runs the directory watcher for incoming transaction files.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/remiges-tech/logharbour/logharbour"

	"github.com/remiges-tech/tally/config"
	"github.com/remiges-tech/tally/metrics"
	"github.com/remiges-tech/tally/objstore"
	"github.com/remiges-tech/tally/report"
	"github.com/remiges-tech/tally/reportsvc"
	"github.com/remiges-tech/tally/router"
	"github.com/remiges-tech/tally/service"
	"github.com/remiges-tech/tally/watcher"
	"github.com/remiges-tech/tally/wscutils"
)

// AppConfig is the application's configuration, loaded from a JSON file.
type AppConfig struct {
	Port int `json:"port"`

	// Store selects where transaction logs and reports live: "fs" for a
	// local directory tree, "minio" for a MinIO bucket.
	Store     string `json:"store"`
	StoreRoot string `json:"store_root"` // fs: root directory

	MinioEndpoint  string `json:"minio_endpoint"`
	MinioAccessKey string `json:"minio_access_key"`
	MinioSecretKey string `json:"minio_secret_key"`
	MinioBucket    string `json:"minio_bucket"`
	MinioUseSSL    bool   `json:"minio_use_ssl"`

	// Strict makes malformed source lines fail the read instead of being
	// skipped.
	Strict bool `json:"strict"`

	WatchDirs         []string `json:"watch_dirs"`
	WatchPatterns     []string `json:"watch_patterns"`
	WatchIntervalSecs int      `json:"watch_interval_secs"`
	WatchFileAgeSecs  int      `json:"watch_file_age_secs"`
}

// errorTypesYAML maps the error codes used by the web services to their
// message IDs.
const errorTypesYAML = `
unknown: 1
invalid_json: 2
invalid_request: 3
required: 4
source_read: 10
sink_write: 11
`

func main() {
	configFile := flag.String("config", "./tallyd.json", "Path to the JSON configuration file")
	flag.Parse()

	var appConfig AppConfig
	if err := config.LoadConfigFromFile(*configFile, &appConfig); err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if appConfig.Port == 0 {
		appConfig.Port = 8080
	}

	// Initialize logger
	fallbackWriter := logharbour.NewFallbackWriter(os.Stdout, os.Stdout)
	lctx := logharbour.NewLoggerContext(logharbour.DefaultPriority)
	logger := logharbour.NewLogger(lctx, "tallyd", fallbackWriter)

	// Load error types for the response envelope
	wscutils.LoadErrorTypes(strings.NewReader(errorTypesYAML))

	// Set up metrics
	m := metrics.NewPrometheusMetrics()
	m.Register(report.MetricReportsGenerated, "Counter", "Total reports generated")
	m.RegisterWithLabels(report.MetricReportFailures, "Counter", "Report failures by stage", []string{"stage"})
	m.Register(watcher.MetricFilesProcessed, "Counter", "Transaction files processed by the watcher")

	// Set up object store
	store, err := setupObjectStore(appConfig)
	if err != nil {
		log.Fatalf("Failed to set up object store: %v", err)
	}

	gen := report.NewGenerator(store, logger, m, report.GeneratorConfig{Strict: appConfig.Strict})

	// Create Gin router with recovery and request logging
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(router.LogRequest(router.NewLogHarbourAdapter(logger)))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Create service and register routes
	s := service.NewService(r).
		WithLogger(logger).
		WithDependency(reportsvc.DepGenerator, gen)
	reportsvc.RegisterReportHandlers(s)

	// Start the watcher if watch dirs are configured
	if len(appConfig.WatchDirs) > 0 {
		w := watcher.NewWatcher(watcher.Config{
			WatchDirs:     appConfig.WatchDirs,
			Patterns:      appConfig.WatchPatterns,
			SleepInterval: time.Duration(appConfig.WatchIntervalSecs) * time.Second,
			FileAgeSecs:   appConfig.WatchFileAgeSecs,
			Strict:        appConfig.Strict,
		}, logger, m)
		go func() {
			if err := w.Run(context.Background()); err != nil {
				logger.Error(err).LogActivity("Watcher stopped", nil)
			}
		}()
	}

	serverAddr := fmt.Sprintf(":%d", appConfig.Port)
	if err := r.Run(serverAddr); err != nil {
		log.Fatal("Error starting server: ", err)
	}
}

// setupObjectStore builds the object store named by the configuration.
func setupObjectStore(cfg AppConfig) (objstore.ObjectStore, error) {
	switch cfg.Store {
	case "", "fs":
		root := cfg.StoreRoot
		if root == "" {
			root = "."
		}
		return objstore.NewFSObjectStore(root), nil
	case "minio":
		client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
			Secure: cfg.MinioUseSSL,
		})
		if err != nil {
			return nil, fmt.Errorf("error creating minio client: %w", err)
		}
		return objstore.NewMinioObjectStore(client, cfg.MinioBucket), nil
	default:
		return nil, fmt.Errorf("unknown store kind: %s", cfg.Store)
	}
}
