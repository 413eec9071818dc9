package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrMissingCredentials is returned when the hosted store URL or key is not configured.
var ErrMissingCredentials = errors.New("missing Supabase credentials")

type StoreBackend string

const (
	StoreBackendSupabase StoreBackend = "supabase" // Hosted PostgREST store (default)
	StoreBackendSQLite   StoreBackend = "sqlite"   // Local gorm/SQLite store for offline work
)

type (
	Config struct {
		HTTP
		Supabase
		Store
		Database
		Import
		Cleanup
		Audit
		Admin
		Global
		UI
		Tasks
	}

	HTTP struct {
		Port int32
		Host string
	}
	Supabase struct {
		URL     string
		AnonKey string
		Table   string
		Timeout time.Duration
	}
	Store struct {
		Backend StoreBackend
	}
	Database struct {
		Path        string
		PostgresDSN string // Direct connection used by check-policies when set
	}
	Import struct {
		DataFile         string
		RawFile          string
		BatchSize        int
		RunRetentionDays int // Days to keep import run history (default: 90)
	}
	Cleanup struct {
		Enabled  bool
		Schedule string // Cron format: "0 3 * * *" = daily at 03:00
	}
	Audit struct {
		Dir           string // Raw payloads of API imports
		RetentionDays int    // Days to keep audit events (default: 30)
	}
	Admin struct {
		Token string // Empty disables the admin token check
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	UI struct {
		StaticPath string // Built SPA; empty disables static serving
	}
	Tasks struct {
		Enabled         bool
		DatabasePath    string // Empty derives "<database>-tasks.db"
		Workers         int
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
	}
)

// Validate reports which credential variables are missing.
func (s Supabase) Validate() error {
	var missing []string
	if strings.TrimSpace(s.URL) == "" {
		missing = append(missing, EnvSupabaseURL)
	}
	if strings.TrimSpace(s.AnonKey) == "" {
		missing = append(missing, EnvSupabaseAnonKey)
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingCredentials, strings.Join(missing, ", "))
	}
	return nil
}

// CredentialsHint is printed next to ErrMissingCredentials.
func CredentialsHint() string {
	return fmt.Sprintf("set %s and %s in the environment or in .env.local", EnvSupabaseURL, EnvSupabaseAnonKey)
}

// LoadEnvFiles loads dotenv files into the process environment. Earlier files win,
// variables already present in the environment are never overridden, and missing
// files are skipped.
func LoadEnvFiles(files ...string) error {
	if len(files) == 0 {
		files = []string{".env.local", ".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// firstOf returns the first non-empty value among keys.
func firstOf(v *viper.Viper, keys ...string) string {
	for _, k := range keys {
		if val := v.GetString(k); val != "" {
			return val
		}
	}
	return ""
}

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8188)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("supabase_table", DefaultTable)
	v.SetDefault("supabase_timeout", "30s")
	v.SetDefault("store_backend", string(StoreBackendSupabase))
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("database_url", "")
	v.SetDefault("import_data_file", DefaultDataFile)
	v.SetDefault("import_raw_file", DefaultRawFile)
	v.SetDefault("import_batch_size", 100)
	v.SetDefault("import_run_retention_days", 90)
	v.SetDefault("cleanup_enabled", true)
	v.SetDefault("cleanup_schedule", "0 3 * * *") // Daily at 03:00
	v.SetDefault("audit_dir", "./audit")
	v.SetDefault("audit_retention_days", 30)
	v.SetDefault("admin_token", "")
	v.SetDefault("static_path", "")

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("tasks_database_path", "")
	v.SetDefault("task_workers", 2)
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Supabase: Supabase{
			URL:     firstOf(v, EnvSupabaseURL, EnvSupabaseURLAlias),
			AnonKey: firstOf(v, EnvSupabaseAnonKey, EnvSupabaseAnonKeyAlias),
			Table:   v.GetString("SUPABASE_TABLE"),
			Timeout: v.GetDuration("SUPABASE_TIMEOUT"),
		},
		Store: Store{
			Backend: StoreBackend(strings.ToLower(v.GetString("STORE_BACKEND"))),
		},
		Database: Database{
			Path:        v.GetString("DATABASE_PATH"),
			PostgresDSN: v.GetString("DATABASE_URL"),
		},
		Import: Import{
			DataFile:         v.GetString("IMPORT_DATA_FILE"),
			RawFile:          v.GetString("IMPORT_RAW_FILE"),
			BatchSize:        v.GetInt("IMPORT_BATCH_SIZE"),
			RunRetentionDays: v.GetInt("IMPORT_RUN_RETENTION_DAYS"),
		},
		Cleanup: Cleanup{
			Enabled:  v.GetBool("CLEANUP_ENABLED"),
			Schedule: v.GetString("CLEANUP_SCHEDULE"),
		},
		Audit: Audit{
			Dir:           v.GetString("AUDIT_DIR"),
			RetentionDays: v.GetInt("AUDIT_RETENTION_DAYS"),
		},
		Admin: Admin{
			Token: v.GetString("ADMIN_TOKEN"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		UI: UI{
			StaticPath: v.GetString("STATIC_PATH"),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			DatabasePath:    v.GetString("TASKS_DATABASE_PATH"),
			Workers:         v.GetInt("TASK_WORKERS"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
		},
	}
}
