package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/michaeelnguyen/michaeelnguyen-pep-project/internal/api"
	"github.com/michaeelnguyen/michaeelnguyen-pep-project/internal/config"
	"github.com/michaeelnguyen/michaeelnguyen-pep-project/internal/database"
	"github.com/michaeelnguyen/michaeelnguyen-pep-project/internal/stats"
)

const (
	defaultAddr = "localhost:8080"
	defaultDSN  = "host=localhost user=postgres password=postgres dbname=postgres sslmode=disable"
)

type stringSliceFlag []string

func (s *stringSliceFlag) String() string {
	return strings.Join(*s, ",")
}

func (s *stringSliceFlag) Set(value string) error {
	*s = append(*s, strings.Split(value, ",")...)
	return nil
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

var (
	addr           string
	dsn            string
	envFile        string
	runMigrations  bool
	allowedOrigins stringSliceFlag
)

func main() {
	logger := log.New(os.Stderr, "[social-media] ", log.LstdFlags)

	// the env file has to be read before flag defaults are computed
	envFile = envOr("SOCIAL_ENV_FILE", ".env")
	if err := config.LoadEnvFile(envFile); err != nil {
		logger.Fatal("env:", err)
	}

	flag.StringVar(&addr, "addr", envOr("SOCIAL_ADDR", defaultAddr), "server address")
	flag.StringVar(&dsn, "dsn", envOr("SOCIAL_DSN", defaultDSN), "database connection string")
	flag.BoolVar(&runMigrations, "migrate", true, "create the account and message tables if missing")
	flag.Var(&allowedOrigins, "allowed-origins", "comma-separated list of allowed origins for CORS")
	flag.Parse()

	if len(allowedOrigins) == 0 {
		if v := os.Getenv("SOCIAL_ALLOWED_ORIGINS"); v != "" {
			allowedOrigins.Set(v)
		}
	}

	cfg, err := config.NewConfig(addr, dsn, allowedOrigins)
	if err != nil {
		logger.Fatal("config:", err)
	}

	dbConn, err := database.NewPgSocialMediaRepository(cfg.DatabaseDSN)
	if err != nil {
		logger.Fatal("db open:", err)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Fatal("db close:", err)
		}
	}()

	if runMigrations {
		if err := dbConn.Migrate(); err != nil {
			logger.Fatal("db schema:", err)
		}
	}

	mux := http.NewServeMux()

	statsUpdater := stats.NewStatsUpdater(mux)

	srv := api.NewSocialMediaApp(mux, logger, dbConn, statsUpdater, cfg)

	statsUpdater.Run()
	defer statsUpdater.Stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigs:
		logger.Printf("received signal: %s\n", sig)
	case err := <-errCh:
		logger.Println("server:", err)
	}

	shutDownCtx, cancel := context.WithTimeout(
		context.Background(),
		10*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutDownCtx); err != nil {
		logger.Fatalln("HTTP server shutdown:", err)
	}

	logger.Println("shutdown complete")
}
