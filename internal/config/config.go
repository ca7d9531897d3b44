package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress            string
	TelegramToken         string
	WebhookURL            string
	SpreadsheetID         string
	GoogleCredentialsFile string
	GoogleCredentialsJSON string
	DefaultLanguage       string
	InstanceID            string
	LockTTL               time.Duration
	LockAttempts          int
	LockBackoff           time.Duration
	ReconcileInterval     time.Duration
	ReconcileBatch        int
	WorkerPoolSize        int
	ShutdownTimeout       time.Duration
}

const (
	defaultRunAddress        = ":8080"
	defaultLanguage          = "uz"
	defaultLockTTL           = 30 * time.Second
	defaultLockAttempts      = 3
	defaultLockBackoff       = 500 * time.Millisecond
	defaultReconcileInterval = 5 * time.Minute
	defaultReconcileBatch    = 20
	defaultWorkerPoolSize    = 4
	defaultShutdownTimeout   = 10 * time.Second
)

// Load parses configuration from a .env file when present, then environment
// variables, then flags.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:            getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		TelegramToken:         getString(lookup, "TELEGRAM_BOT_TOKEN", ""),
		WebhookURL:            getString(lookup, "TELEGRAM_WEBHOOK_URL", ""),
		SpreadsheetID:         getString(lookup, "SPREADSHEET_ID", ""),
		GoogleCredentialsFile: getString(lookup, "GOOGLE_APPLICATION_CREDENTIALS", ""),
		GoogleCredentialsJSON: getString(lookup, "GOOGLE_CREDENTIALS", ""),
		DefaultLanguage:       getString(lookup, "DEFAULT_LANGUAGE", defaultLanguage),
		InstanceID:            getString(lookup, "INSTANCE_ID", ""),
		LockTTL:               getDuration(lookup, "LOCK_TTL", defaultLockTTL),
		LockAttempts:          getInt(lookup, "LOCK_ATTEMPTS", defaultLockAttempts),
		LockBackoff:           getDuration(lookup, "LOCK_BACKOFF", defaultLockBackoff),
		ReconcileInterval:     getDuration(lookup, "RECONCILE_INTERVAL", defaultReconcileInterval),
		ReconcileBatch:        getInt(lookup, "RECONCILE_BATCH", defaultReconcileBatch),
		WorkerPoolSize:        getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
		ShutdownTimeout:       getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	fs := flag.NewFlagSet("dokonbot", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		lockTTLStr           = cfg.LockTTL.String()
		reconcileIntervalStr = cfg.ReconcileInterval.String()
		shutdownTimeoutStr   = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.TelegramToken, "token", cfg.TelegramToken, "Telegram bot token")
	fs.StringVar(&cfg.WebhookURL, "webhook", cfg.WebhookURL, "Public webhook URL, empty means long polling")
	fs.StringVar(&cfg.SpreadsheetID, "spreadsheet", cfg.SpreadsheetID, "Ledger spreadsheet id")
	fs.StringVar(&cfg.DefaultLanguage, "lang", cfg.DefaultLanguage, "Default interface language")
	fs.StringVar(&cfg.InstanceID, "instance", cfg.InstanceID, "Lease owner id of this process")
	fs.StringVar(&lockTTLStr, "lock-ttl", lockTTLStr, "Mutation lease lifetime")
	fs.IntVar(&cfg.LockAttempts, "lock-attempts", cfg.LockAttempts, "Lease acquisition attempts before giving up")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent reconcile workers")
	fs.StringVar(&reconcileIntervalStr, "reconcile-interval", reconcileIntervalStr, "Interval between reconciliation sweeps")
	fs.IntVar(&cfg.ReconcileBatch, "reconcile-batch", cfg.ReconcileBatch, "Maximum orders per reconciliation sweep")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.LockTTL, err = time.ParseDuration(lockTTLStr); err != nil {
		return nil, fmt.Errorf("invalid lock ttl: %w", err)
	}

	if cfg.ReconcileInterval, err = time.ParseDuration(reconcileIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid reconcile interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if cfg.InstanceID == "" {
		host, _ := os.Hostname()
		if host == "" {
			host = "dokonbot"
		}
		cfg.InstanceID = fmt.Sprintf("%s-%d", host, os.Getpid())
	}

	if cfg.LockTTL <= 0 {
		cfg.LockTTL = defaultLockTTL
	}

	if cfg.LockAttempts <= 0 {
		cfg.LockAttempts = defaultLockAttempts
	}

	if cfg.LockBackoff < 0 {
		cfg.LockBackoff = defaultLockBackoff
	}

	if cfg.ReconcileInterval <= 0 {
		cfg.ReconcileInterval = defaultReconcileInterval
	}

	if cfg.ReconcileBatch <= 0 {
		cfg.ReconcileBatch = defaultReconcileBatch
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("telegram bot token must be provided")
	}

	if cfg.SpreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet id must be provided")
	}

	if cfg.GoogleCredentialsFile == "" && cfg.GoogleCredentialsJSON == "" {
		return nil, fmt.Errorf("google credentials must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
