package config

import (
	"strings"
	"testing"
	"time"
)

func baseEnv() map[string]string {
	return map[string]string{
		"TELEGRAM_BOT_TOKEN": "123:abc",
		"SPREADSHEET_ID":     "sheet-id",
		"GOOGLE_CREDENTIALS": `{"type":"service_account"}`,
	}
}

func lookupFrom(env map[string]string) envLookup {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestLoadDefaults(t *testing.T) {
	_, err := load(nil, func(string) (string, bool) { return "", false })
	if err == nil {
		t.Fatalf("expected error due to missing required envs, got nil")
	}

	cfg, err := load(nil, lookupFrom(baseEnv()))
	if err != nil {
		t.Fatalf("load returned unexpected error: %v", err)
	}

	if cfg.RunAddress != defaultRunAddress {
		t.Errorf("expected default run address %q, got %q", defaultRunAddress, cfg.RunAddress)
	}
	if cfg.DefaultLanguage != defaultLanguage {
		t.Errorf("expected default language %q, got %q", defaultLanguage, cfg.DefaultLanguage)
	}
	if cfg.LockTTL != defaultLockTTL {
		t.Errorf("expected default lock ttl %v, got %v", defaultLockTTL, cfg.LockTTL)
	}
	if cfg.LockAttempts != defaultLockAttempts {
		t.Errorf("expected default lock attempts %d, got %d", defaultLockAttempts, cfg.LockAttempts)
	}
	if cfg.ReconcileInterval != defaultReconcileInterval {
		t.Errorf("expected default reconcile interval %v, got %v", defaultReconcileInterval, cfg.ReconcileInterval)
	}
	if cfg.WorkerPoolSize != defaultWorkerPoolSize {
		t.Errorf("expected default worker pool %d, got %d", defaultWorkerPoolSize, cfg.WorkerPoolSize)
	}
	if cfg.InstanceID == "" {
		t.Errorf("expected generated instance id")
	}
}

func TestLoadWithFlagOverrides(t *testing.T) {
	args := []string{
		"-a", ":9090",
		"-token", "456:def",
		"-spreadsheet", "other-sheet",
		"-lang", "en",
		"-instance", "node-1",
		"--lock-ttl", "45s",
		"--lock-attempts", "5",
		"--reconcile-interval", "2m",
		"--reconcile-batch", "7",
		"--worker-pool", "9",
		"--shutdown-timeout", "20s",
	}

	cfg, err := load(args, lookupFrom(baseEnv()))
	if err != nil {
		t.Fatalf("load returned unexpected error: %v", err)
	}

	if cfg.RunAddress != ":9090" {
		t.Errorf("expected run address :9090, got %q", cfg.RunAddress)
	}
	if cfg.TelegramToken != "456:def" {
		t.Errorf("expected token override, got %q", cfg.TelegramToken)
	}
	if cfg.SpreadsheetID != "other-sheet" {
		t.Errorf("expected spreadsheet override, got %q", cfg.SpreadsheetID)
	}
	if cfg.DefaultLanguage != "en" {
		t.Errorf("expected language en, got %q", cfg.DefaultLanguage)
	}
	if cfg.InstanceID != "node-1" {
		t.Errorf("expected instance node-1, got %q", cfg.InstanceID)
	}
	if cfg.LockTTL != 45*time.Second {
		t.Errorf("expected lock ttl 45s, got %v", cfg.LockTTL)
	}
	if cfg.LockAttempts != 5 {
		t.Errorf("expected lock attempts 5, got %d", cfg.LockAttempts)
	}
	if cfg.ReconcileInterval != 2*time.Minute {
		t.Errorf("expected reconcile interval 2m, got %v", cfg.ReconcileInterval)
	}
	if cfg.ReconcileBatch != 7 {
		t.Errorf("expected reconcile batch 7, got %d", cfg.ReconcileBatch)
	}
	if cfg.WorkerPoolSize != 9 {
		t.Errorf("expected worker pool 9, got %d", cfg.WorkerPoolSize)
	}
	if cfg.ShutdownTimeout != 20*time.Second {
		t.Errorf("expected shutdown timeout 20s, got %v", cfg.ShutdownTimeout)
	}
}

func TestLoadValidationErrors(t *testing.T) {
	_, err := load([]string{"--lock-ttl", "bad"}, lookupFrom(baseEnv()))
	if err == nil || !strings.Contains(err.Error(), "invalid lock ttl") {
		t.Fatalf("expected lock ttl error, got %v", err)
	}

	_, err = load([]string{"--reconcile-interval", "bad"}, lookupFrom(baseEnv()))
	if err == nil || !strings.Contains(err.Error(), "invalid reconcile interval") {
		t.Fatalf("expected reconcile interval error, got %v", err)
	}

	env := baseEnv()
	delete(env, "TELEGRAM_BOT_TOKEN")
	if _, err := load(nil, lookupFrom(env)); err == nil || !strings.Contains(err.Error(), "telegram bot token") {
		t.Fatalf("expected token error, got %v", err)
	}

	env = baseEnv()
	delete(env, "SPREADSHEET_ID")
	if _, err := load(nil, lookupFrom(env)); err == nil || !strings.Contains(err.Error(), "spreadsheet id") {
		t.Fatalf("expected spreadsheet error, got %v", err)
	}

	env = baseEnv()
	delete(env, "GOOGLE_CREDENTIALS")
	if _, err := load(nil, lookupFrom(env)); err == nil || !strings.Contains(err.Error(), "google credentials") {
		t.Fatalf("expected credentials error, got %v", err)
	}
}

func TestLoadNormalizesNonPositiveValues(t *testing.T) {
	env := baseEnv()
	env["WORKER_POOL_SIZE"] = "-1"
	env["RECONCILE_BATCH"] = "0"
	env["RECONCILE_INTERVAL"] = "0"
	env["SHUTDOWN_TIMEOUT"] = "0"
	env["LOCK_ATTEMPTS"] = "0"

	cfg, err := load(nil, lookupFrom(env))
	if err != nil {
		t.Fatalf("load returned unexpected error: %v", err)
	}

	if cfg.WorkerPoolSize != defaultWorkerPoolSize {
		t.Errorf("expected default worker pool %d, got %d", defaultWorkerPoolSize, cfg.WorkerPoolSize)
	}
	if cfg.ReconcileBatch != defaultReconcileBatch {
		t.Errorf("expected default reconcile batch %d, got %d", defaultReconcileBatch, cfg.ReconcileBatch)
	}
	if cfg.ReconcileInterval != defaultReconcileInterval {
		t.Errorf("expected default reconcile interval %v, got %v", defaultReconcileInterval, cfg.ReconcileInterval)
	}
	if cfg.ShutdownTimeout != defaultShutdownTimeout {
		t.Errorf("expected default shutdown timeout %v, got %v", defaultShutdownTimeout, cfg.ShutdownTimeout)
	}
	if cfg.LockAttempts != defaultLockAttempts {
		t.Errorf("expected default lock attempts %d, got %d", defaultLockAttempts, cfg.LockAttempts)
	}
}
