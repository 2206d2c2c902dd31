package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config representa a configuração completa da aplicação
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Metrics  MetricsConfig
	Logging  LoggingConfig
	Tracing  TracingConfig
}

// ServerConfig contém configurações do servidor HTTP
type ServerConfig struct {
	Port            int
	Host            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	TLS             bool
	CertFile        string
	KeyFile         string
	Domains         []string
}

// DatabaseConfig contém configurações do banco de dados
type DatabaseConfig struct {
	Driver          string
	DSN             string
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	SlowThreshold   time.Duration
	// TestMode troca o banco configurado por um sqlite em memória
	TestMode bool
}

// AuthConfig contém configurações da validação de tokens
type AuthConfig struct {
	// UsersURL é a URL base do serviço de usuários que valida tokens
	UsersURL string
	// Timeout limita cada chamada de validação de token
	Timeout time.Duration
}

// MetricsConfig contém configurações de métricas
type MetricsConfig struct {
	Enabled        bool
	PrometheusPath string
}

// LoggingConfig contém configurações de logging
type LoggingConfig struct {
	Level      string
	Format     string // json, console
	Production bool
}

// TracingConfig contém configurações de rastreamento
type TracingConfig struct {
	Enabled       bool
	Endpoint      string
	ServiceName   string
	SamplingRatio float64
}

// LoadConfig carrega a configuração de diversas fontes (arquivo, env, defaults)
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if configPath != "" {
		v.AddConfigPath(configPath)
	}
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/routes-service")

	if err := v.ReadInConfig(); err != nil {
		// Ignorar se o arquivo não for encontrado
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("erro ao ler arquivo de configuração: %w", err)
		}
	}

	// Ler variáveis de ambiente com prefixo ROUTES
	v.SetEnvPrefix("ROUTES")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Variáveis herdadas do ambiente de implantação original
	_ = v.BindEnv("auth.usersurl", "ROUTES_AUTH_USERSURL", "USERS_PATH")
	_ = v.BindEnv("database.testmode", "ROUTES_DATABASE_TESTMODE", "IS_TEST")
	_ = v.BindEnv("database.host", "ROUTES_DATABASE_HOST", "DB_HOST")
	_ = v.BindEnv("database.port", "ROUTES_DATABASE_PORT", "DB_PORT")
	_ = v.BindEnv("database.user", "ROUTES_DATABASE_USER", "DB_USER")
	_ = v.BindEnv("database.password", "ROUTES_DATABASE_PASSWORD", "DB_PASSWORD")
	_ = v.BindEnv("database.name", "ROUTES_DATABASE_NAME", "DB_NAME")

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("erro ao mapear configuração: %w", err)
	}

	applyTestMode(&config)

	if config.Database.DSN == "" {
		config.Database.DSN = buildDSN(&config.Database)
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// setDefaults define valores padrão para a configuração
func setDefaults(v *viper.Viper) {
	// Servidor
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.readTimeout", "5s")
	v.SetDefault("server.writeTimeout", "10s")
	v.SetDefault("server.idleTimeout", "30s")
	v.SetDefault("server.shutdownTimeout", "10s")
	v.SetDefault("server.tls", false)

	// Banco de dados
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.name", "routes")
	v.SetDefault("database.sslMode", "disable")
	v.SetDefault("database.maxIdleConns", 10)
	v.SetDefault("database.maxOpenConns", 50)
	v.SetDefault("database.connMaxLifetime", "1h")
	v.SetDefault("database.slowThreshold", "200ms")
	v.SetDefault("database.testMode", false)

	// Autenticação
	v.SetDefault("auth.timeout", "5s")

	// Métricas
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.prometheusPath", "/metrics")

	// Logging
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.production", true)

	// Tracing
	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.samplingRatio", 0.1)
	v.SetDefault("tracing.serviceName", "routes-service")
}

// applyTestMode troca o banco configurado por um sqlite em memória
func applyTestMode(config *Config) {
	if !config.Database.TestMode {
		return
	}
	config.Database.Driver = "sqlite"
	config.Database.DSN = "file::memory:?cache=shared"
}

// buildDSN monta o DSN a partir dos parâmetros de conexão individuais
func buildDSN(db *DatabaseConfig) string {
	switch db.Driver {
	case "postgres":
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
			db.Host, db.User, db.Password, db.Name, db.Port, db.SSLMode)
	case "mysql":
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&loc=UTC",
			db.User, db.Password, db.Host, db.Port, db.Name)
	default:
		return ""
	}
}

// validateConfig valida a configuração
func validateConfig(config *Config) error {
	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("porta do servidor inválida: %d", config.Server.Port)
	}

	if config.Database.DSN == "" {
		return fmt.Errorf("DSN do banco de dados não configurado para o driver %s", config.Database.Driver)
	}

	if config.Auth.UsersURL == "" {
		return fmt.Errorf("URL do serviço de usuários não configurada (ROUTES_AUTH_USERSURL ou USERS_PATH)")
	}

	if config.Tracing.Enabled && config.Tracing.Endpoint == "" {
		return fmt.Errorf("tracing habilitado sem endpoint do coletor")
	}

	return nil
}
