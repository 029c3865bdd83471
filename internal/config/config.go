package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// RunLogDisabled em RUN_LOG_PATH desliga o log de execuções.
const RunLogDisabled = "off"

// Config guarda a configuração da aplicação.
type Config struct {
	AppEnv          string
	APISecretKey    string
	HTTPPort        string
	BillingTimezone string
	RunLogPath      string
	AllowedOrigins  []string
	LogLevel        string
	RequestTimeout  time.Duration

	// Location é BillingTimezone já carregado.
	Location *time.Location
}

// IsDev informa se estamos em APP_ENV=dev.
func (c *Config) IsDev() bool {
	return c.AppEnv == "dev"
}

// RunLogEnabled informa se as execuções devem ser gravadas.
func (c *Config) RunLogEnabled() bool {
	return c.RunLogPath != "" && !strings.EqualFold(c.RunLogPath, RunLogDisabled)
}

// LoadConfig carrega a configuração das variáveis de ambiente, lendo antes um .env
// do diretório atual ou de algum diretório acima dele, se existir.
// Variáveis já definidas no ambiente têm prioridade sobre o .env.
func LoadConfig() (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	cfg := &Config{}
	vars := []struct {
		target *string
		envVar string
		def    string
	}{
		{&cfg.AppEnv, "APP_ENV", "prod"},
		{&cfg.APISecretKey, "API_SECRET_KEY", ""},
		{&cfg.HTTPPort, "PORT", "8080"},
		{&cfg.BillingTimezone, "BILLING_TIMEZONE", "UTC"},
		{&cfg.RunLogPath, "RUN_LOG_PATH", "./billing-runs.db"},
		{&cfg.LogLevel, "LOG_LEVEL", "info"},
	}
	for _, v := range vars {
		value := strings.TrimSpace(os.Getenv(v.envVar))
		if value == "" {
			value = v.def
		}
		*v.target = value
	}

	// Sem segredo embutido: fora de dev a aplicação não sobe sem API_SECRET_KEY.
	if cfg.APISecretKey == "" && !cfg.IsDev() {
		return nil, fmt.Errorf("missing required environment variable: API Secret Key (APP_ENV=%s)", cfg.AppEnv)
	}

	loc, err := time.LoadLocation(cfg.BillingTimezone)
	if err != nil {
		return nil, fmt.Errorf("invalid BILLING_TIMEZONE %q: %w", cfg.BillingTimezone, err)
	}
	cfg.Location = loc

	cfg.AllowedOrigins = parseCSV(os.Getenv("CORS_ALLOWED_ORIGINS"))
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"*"}
	}

	cfg.RequestTimeout = 60 * time.Second
	if v := os.Getenv("REQUEST_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid REQUEST_TIMEOUT: %w", err)
		}
		cfg.RequestTimeout = d
	}

	return cfg, nil
}

func loadDotEnv() error {
	currentDir, err := os.Getwd()
	if err != nil {
		return nil
	}
	for {
		envPath := filepath.Join(currentDir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return fmt.Errorf("failed to load .env file: %w", err)
			}
			return nil
		}
		parent := filepath.Dir(currentDir)
		if parent == currentDir {
			return nil
		}
		currentDir = parent
	}
}

func parseCSV(csv string) []string {
	var out []string
	for _, part := range strings.Split(csv, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
