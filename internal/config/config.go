package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/wground/wground-api/internal/platform/logging"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                     string
	ServiceName                string
	ServiceVersion             string
	HTTPAddr                   string
	DBURL                      string
	DBDisablePreparedBinary    bool
	CORSAllowedOrigins         []string
	ReadTimeout                time.Duration
	WriteTimeout               time.Duration
	PprofEnabled               bool
	PprofAddr                  string
	UptraceEnabled             bool
	UptraceDSN                 string
	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration
	GroqAPIKey                 string
	GroqBaseURL                string
	GroqModel                  string
	GroqTimeout                time.Duration
	GroqTemperature            float64
	GroqMaxTokens              int
	GroqCircuitEnabled         bool
	GroqCircuitFailureCount    int
	GroqCircuitOpenTimeout     time.Duration
	GroqCircuitHalfOpenMaxReq  int
	LogLevel                   logging.Level
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	groqTimeout, err := time.ParseDuration(getEnv("GROQ_TIMEOUT", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse GROQ_TIMEOUT: %w", err)
	}
	if groqTimeout <= 0 {
		return Config{}, fmt.Errorf("GROQ_TIMEOUT must be > 0")
	}
	groqTemperature, err := getEnvAsFloat("GROQ_TEMPERATURE", 0.1)
	if err != nil {
		return Config{}, fmt.Errorf("parse GROQ_TEMPERATURE: %w", err)
	}
	if groqTemperature < 0 || groqTemperature > 2 {
		return Config{}, fmt.Errorf("GROQ_TEMPERATURE must be between 0 and 2")
	}
	groqMaxTokens, err := getEnvAsInt("GROQ_MAX_TOKENS", 4096)
	if err != nil {
		return Config{}, fmt.Errorf("parse GROQ_MAX_TOKENS: %w", err)
	}
	if groqMaxTokens < 1 {
		return Config{}, fmt.Errorf("GROQ_MAX_TOKENS must be >= 1")
	}
	groqCircuitEnabled, err := strconv.ParseBool(getEnv("GROQ_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse GROQ_CIRCUIT_ENABLED: %w", err)
	}
	groqCircuitFailureCount, err := getEnvAsInt("GROQ_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse GROQ_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if groqCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("GROQ_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	groqCircuitOpenTimeout, err := time.ParseDuration(getEnv("GROQ_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse GROQ_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if groqCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("GROQ_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	groqCircuitHalfOpenMaxReq, err := getEnvAsInt("GROQ_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse GROQ_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if groqCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("GROQ_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}
	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "45s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	dbDisablePreparedBinary, err := strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}

	cfg := Config{
		AppEnv:                     appEnv,
		ServiceName:                getEnv("APP_SERVICE_NAME", "wground-api"),
		ServiceVersion:             getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                   getEnv("APP_HTTP_ADDR", ":8080"),
		DBURL:                      strings.TrimSpace(getEnv("DB_URL", "")),
		DBDisablePreparedBinary:    dbDisablePreparedBinary,
		CORSAllowedOrigins:         splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		ReadTimeout:                readTimeout,
		WriteTimeout:               writeTimeout,
		PprofEnabled:               pprofEnabled,
		PprofAddr:                  pprofAddr,
		UptraceEnabled:             uptraceEnabled,
		UptraceDSN:                 uptraceDSN,
		PyroscopeEnabled:           pyroscopeEnabled,
		PyroscopeServerAddress:     pyroscopeServerAddress,
		PyroscopeAuthToken:         strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:     strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword: strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:        pyroscopeUploadRate,
		GroqAPIKey:                 strings.TrimSpace(getEnv("GROQ_API_KEY", "")),
		GroqBaseURL:                strings.TrimSpace(getEnv("GROQ_BASE_URL", "https://api.groq.com/openai/v1")),
		GroqModel:                  strings.TrimSpace(getEnv("GROQ_MODEL", "meta-llama/llama-4-maverick-17b-128e-instruct")),
		GroqTimeout:                groqTimeout,
		GroqTemperature:            groqTemperature,
		GroqMaxTokens:              groqMaxTokens,
		GroqCircuitEnabled:         groqCircuitEnabled,
		GroqCircuitFailureCount:    groqCircuitFailureCount,
		GroqCircuitOpenTimeout:     groqCircuitOpenTimeout,
		GroqCircuitHalfOpenMaxReq:  groqCircuitHalfOpenMaxReq,
		LogLevel:                   parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	return cfg, nil
}

// GroqConfigured reports whether a usable API key is present. Tutorial
// placeholders left in .env files count as absent.
func (c Config) GroqConfigured() bool {
	key := strings.TrimSpace(c.GroqAPIKey)
	if key == "" {
		return false
	}
	return !strings.EqualFold(key, "your_groq_api_key")
}

// DBConfigured reports whether a database URL is present. A placeholder
// value keeps the service on the in-memory store.
func (c Config) DBConfigured() bool {
	url := strings.TrimSpace(c.DBURL)
	if url == "" {
		return false
	}
	return !strings.EqualFold(url, "your_database_url")
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func getEnvAsFloat(key string, fallback float64) (float64, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
