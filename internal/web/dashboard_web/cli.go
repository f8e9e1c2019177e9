package dashboard_web

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"tarediiran-industries.com/rail-dss/internal/audittrail"
	"tarediiran-industries.com/rail-dss/internal/common"
	"tarediiran-industries.com/rail-dss/internal/session"
)

const (
	DefaultLiveMapURL       = "https://raw.githubusercontent.com/Yathivarun/SIH-Section-Throughput-of-Railway/refs/heads/main/railway_control_dashboard_SIH/Live_map.jpg"
	DefaultSimulationMapURL = "https://raw.githubusercontent.com/Yathivarun/SIH-Section-Throughput-of-Railway/refs/heads/main/railway_control_dashboard_SIH/Simulation_map.png"
)

type ConfigFile struct {
	ListenAddress      string   `toml:"listen"`
	TelemetryAddress   string   `toml:"telemetry"`
	LogLevel           string   `toml:"log_level"`
	LogFormat          string   `toml:"log_format"`
	AuditBackend       string   `toml:"audit_backend"`
	SQLitePath         string   `toml:"sqlite_path"`
	DatabaseConnection string   `toml:"database"`
	SessionBackend     string   `toml:"session_backend"`
	RedisURL           string   `toml:"redis_url"`
	SessionTTL         string   `toml:"session_ttl"`
	SimulationDelay    string   `toml:"simulation_delay"`
	PollSeconds        int      `toml:"poll_seconds"`
	LiveMapURL         string   `toml:"live_map_url"`
	SimulationMapURL   string   `toml:"simulation_map_url"`
	StaticDir          string   `toml:"static_dir"`
	AllowedOrigins     []string `toml:"allowed_origins"`
}

type Config struct {
	Version        bool
	TomlConfigPath string

	ListenAddress    string
	TelemetryAddress string
	LogLevel         string
	LogFormat        string

	AuditBackend       string
	SQLitePath         string
	DatabaseConnection string

	SessionBackend string
	RedisURL       string
	SessionTTL     time.Duration

	SimulationDelay time.Duration
	PollSeconds     int

	LiveMapURL       string
	SimulationMapURL string
	StaticDir        string
	AllowedOrigins   []string
}

func DefaultConfig() Config {
	return Config{
		ListenAddress:    ":8080",
		LogLevel:         "info",
		LogFormat:        "text",
		AuditBackend:     audittrail.BackendStatic,
		SQLitePath:       "data/audit.db",
		SessionBackend:   session.BackendMemory,
		SessionTTL:       12 * time.Hour,
		SimulationDelay:  3 * time.Second,
		PollSeconds:      5,
		LiveMapURL:       DefaultLiveMapURL,
		SimulationMapURL: DefaultSimulationMapURL,
		AllowedOrigins:   []string{"http://localhost:5173"},
	}
}

func LoadConfigFromToml(path string) (ConfigFile, error) {
	var cfg ConfigFile
	_, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return ConfigFile{}, err
	}

	return cfg, nil
}

func (cfg *Config) applyFile(file ConfigFile) error {
	setString(&cfg.ListenAddress, file.ListenAddress)
	setString(&cfg.TelemetryAddress, file.TelemetryAddress)
	setString(&cfg.LogLevel, file.LogLevel)
	setString(&cfg.LogFormat, file.LogFormat)
	setString(&cfg.AuditBackend, file.AuditBackend)
	setString(&cfg.SQLitePath, file.SQLitePath)
	setString(&cfg.DatabaseConnection, file.DatabaseConnection)
	setString(&cfg.SessionBackend, file.SessionBackend)
	setString(&cfg.RedisURL, file.RedisURL)
	setString(&cfg.LiveMapURL, file.LiveMapURL)
	setString(&cfg.SimulationMapURL, file.SimulationMapURL)
	setString(&cfg.StaticDir, file.StaticDir)
	if file.PollSeconds != 0 {
		cfg.PollSeconds = file.PollSeconds
	}
	if len(file.AllowedOrigins) > 0 {
		cfg.AllowedOrigins = file.AllowedOrigins
	}
	if err := setDuration(&cfg.SessionTTL, file.SessionTTL); err != nil {
		return fmt.Errorf("session_ttl: %w", err)
	}
	if err := setDuration(&cfg.SimulationDelay, file.SimulationDelay); err != nil {
		return fmt.Errorf("simulation_delay: %w", err)
	}
	return nil
}

func (cfg *Config) applyEnv(getenv func(string) string) error {
	setString(&cfg.ListenAddress, getenv("RAILDSS_LISTEN"))
	setString(&cfg.TelemetryAddress, getenv("RAILDSS_TELEMETRY"))
	setString(&cfg.LogLevel, getenv("RAILDSS_LOG_LEVEL"))
	setString(&cfg.LogFormat, getenv("RAILDSS_LOG_FORMAT"))
	setString(&cfg.AuditBackend, getenv("RAILDSS_AUDIT_BACKEND"))
	setString(&cfg.SQLitePath, getenv("RAILDSS_SQLITE_PATH"))
	setString(&cfg.DatabaseConnection, getenv("DATABASE_URL"))
	setString(&cfg.DatabaseConnection, getenv("RAILDSS_DATABASE"))
	setString(&cfg.SessionBackend, getenv("RAILDSS_SESSION_BACKEND"))
	setString(&cfg.RedisURL, getenv("RAILDSS_REDIS_URL"))
	setString(&cfg.LiveMapURL, getenv("RAILDSS_LIVE_MAP_URL"))
	setString(&cfg.SimulationMapURL, getenv("RAILDSS_SIMULATION_MAP_URL"))
	setString(&cfg.StaticDir, getenv("RAILDSS_STATIC_DIR"))
	if origins := getenv("RAILDSS_ALLOWED_ORIGINS"); origins != "" {
		cfg.AllowedOrigins = splitList(origins)
	}
	if raw := getenv("RAILDSS_POLL_SECONDS"); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("RAILDSS_POLL_SECONDS: %w", err)
		}
		cfg.PollSeconds = seconds
	}
	if err := setDuration(&cfg.SessionTTL, getenv("RAILDSS_SESSION_TTL")); err != nil {
		return fmt.Errorf("RAILDSS_SESSION_TTL: %w", err)
	}
	if err := setDuration(&cfg.SimulationDelay, getenv("RAILDSS_SIMULATION_DELAY")); err != nil {
		return fmt.Errorf("RAILDSS_SIMULATION_DELAY: %w", err)
	}
	return nil
}

func ParseArgs(programName string, args []string, errOut io.Writer) (Config, error) {
	return parseArgs(programName, args, errOut, os.Getenv)
}

// parseArgs layers defaults, the TOML file, environment, then explicitly set flags.
func parseArgs(programName string, args []string, errOut io.Writer, getenv func(string) string) (Config, error) {
	var flags Config
	var origins string
	defaults := DefaultConfig()

	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errOut)

	fs.Usage = func() {
		fmt.Fprintf(errOut, "Usage: %s [options]\n\n", programName)
		fmt.Fprintln(errOut, "Options")
		fs.PrintDefaults()
	}

	fs.BoolVar(&flags.Version, "version", false, "Prints CLI version")
	fs.StringVar(&flags.TomlConfigPath, "toml", "", "Configuration file")
	fs.StringVar(&flags.ListenAddress, "listen", defaults.ListenAddress, "Dashboard listen address")
	fs.StringVar(&flags.TelemetryAddress, "telemetry", "", "Telemetry (metrics + pprof) listen address; empty disables")
	fs.StringVar(&flags.LogLevel, "log-level", defaults.LogLevel, "debug, info, warn or error")
	fs.StringVar(&flags.LogFormat, "log-format", defaults.LogFormat, "text or json")
	fs.StringVar(&flags.AuditBackend, "audit-backend", defaults.AuditBackend, "static, sqlite or postgres")
	fs.StringVar(&flags.SQLitePath, "sqlite", defaults.SQLitePath, "SQLite file for the sqlite audit backend")
	fs.StringVar(&flags.DatabaseConnection, "database", "", "Postgres connection string for the postgres audit backend")
	fs.StringVar(&flags.SessionBackend, "session-backend", defaults.SessionBackend, "memory or redis")
	fs.StringVar(&flags.RedisURL, "redis", "", "Redis URL for the redis session backend")
	fs.DurationVar(&flags.SessionTTL, "session-ttl", defaults.SessionTTL, "Session lifetime")
	fs.DurationVar(&flags.SimulationDelay, "simulation-delay", defaults.SimulationDelay, "Artificial delay before a simulation run completes")
	fs.IntVar(&flags.PollSeconds, "poll-seconds", defaults.PollSeconds, "Train table refresh interval")
	fs.StringVar(&flags.LiveMapURL, "live-map", defaults.LiveMapURL, "Network visualization image URL")
	fs.StringVar(&flags.SimulationMapURL, "simulation-map", defaults.SimulationMapURL, "Visual simulation image URL")
	fs.StringVar(&flags.StaticDir, "static-dir", "", "Directory served under /assets/")
	fs.StringVar(&origins, "allowed-origins", "", "Comma-separated CORS origins for /api")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if flags.Version {
		fmt.Fprintf(errOut, "%s: version %s (%s)\n", programName, common.Version, common.GitCommit)
		return Config{}, flag.ErrHelp
	}

	cfg := defaults
	cfg.TomlConfigPath = flags.TomlConfigPath

	if cfg.TomlConfigPath != "" {
		tomlCfg, err := LoadConfigFromToml(cfg.TomlConfigPath)
		if err != nil {
			return Config{}, fmt.Errorf("LoadConfigFromToml: %w", err)
		}
		if err := cfg.applyFile(tomlCfg); err != nil {
			return Config{}, err
		}
	}

	if err := cfg.applyEnv(getenv); err != nil {
		return Config{}, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "listen":
			cfg.ListenAddress = flags.ListenAddress
		case "telemetry":
			cfg.TelemetryAddress = flags.TelemetryAddress
		case "log-level":
			cfg.LogLevel = flags.LogLevel
		case "log-format":
			cfg.LogFormat = flags.LogFormat
		case "audit-backend":
			cfg.AuditBackend = flags.AuditBackend
		case "sqlite":
			cfg.SQLitePath = flags.SQLitePath
		case "database":
			cfg.DatabaseConnection = flags.DatabaseConnection
		case "session-backend":
			cfg.SessionBackend = flags.SessionBackend
		case "redis":
			cfg.RedisURL = flags.RedisURL
		case "session-ttl":
			cfg.SessionTTL = flags.SessionTTL
		case "simulation-delay":
			cfg.SimulationDelay = flags.SimulationDelay
		case "poll-seconds":
			cfg.PollSeconds = flags.PollSeconds
		case "live-map":
			cfg.LiveMapURL = flags.LiveMapURL
		case "simulation-map":
			cfg.SimulationMapURL = flags.SimulationMapURL
		case "static-dir":
			cfg.StaticDir = flags.StaticDir
		case "allowed-origins":
			cfg.AllowedOrigins = splitList(origins)
		}
	})

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (cfg Config) Validate() error {
	if cfg.ListenAddress == "" {
		return fmt.Errorf("Missing required argument: listen")
	}

	switch cfg.AuditBackend {
	case audittrail.BackendStatic:
	case audittrail.BackendSQLite:
		if cfg.SQLitePath == "" {
			return fmt.Errorf("The sqlite audit backend needs -sqlite")
		}
	case audittrail.BackendPostgres:
		if cfg.DatabaseConnection == "" {
			return fmt.Errorf("The postgres audit backend needs -database")
		}
	default:
		return fmt.Errorf("Unknown audit backend %q", cfg.AuditBackend)
	}

	switch cfg.SessionBackend {
	case session.BackendMemory:
	case session.BackendRedis:
		if cfg.RedisURL == "" {
			return fmt.Errorf("The redis session backend needs -redis")
		}
	default:
		return fmt.Errorf("Unknown session backend %q", cfg.SessionBackend)
	}

	if cfg.SessionTTL <= 0 {
		return fmt.Errorf("session ttl must be positive")
	}
	if cfg.SimulationDelay < 0 {
		return fmt.Errorf("simulation delay must not be negative")
	}
	if cfg.PollSeconds <= 0 {
		return fmt.Errorf("poll seconds must be positive")
	}
	if _, err := common.ParseLogLevel(cfg.LogLevel); err != nil {
		return err
	}
	if err := common.ValidateLogFormat(cfg.LogFormat); err != nil {
		return err
	}

	return nil
}

// loadDotEnv reads .env then lets .env.local override it. Both are optional.
func loadDotEnv() {
	_ = godotenv.Load(".env")
	_ = godotenv.Overload(".env.local")
}

func Main(programName string, args []string, stdOut, errOut io.Writer) int {
	loadDotEnv()

	cfg, err := ParseArgs(programName, args, errOut)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(errOut, "Error:", err)
		return -1
	}

	return Run(cfg, stdOut, errOut)
}

func setString(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

func setDuration(dst *time.Duration, value string) error {
	if value == "" {
		return nil
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return err
	}
	*dst = parsed
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
