package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App         App         `mapstructure:",squash"`
	Server      Server      `mapstructure:",squash"`
	Database    Database    `mapstructure:",squash"`
	Storage     Storage     `mapstructure:",squash"`
	Cache       Cache       `mapstructure:",squash"`
	Business    Business    `mapstructure:",squash"`
	Stock       Stock       `mapstructure:",squash"`
	Auth        Auth        `mapstructure:",squash"`
	Cors        Cors        `mapstructure:",squash"`
	Reconnect   Reconnect   `mapstructure:",squash"`
	CacheSweep  CacheSweep  `mapstructure:",squash"`
	OfflineSync OfflineSync `mapstructure:",squash"`
	Demo        Demo        `mapstructure:",squash"`
	SecretKey   string      `mapstructure:"secret_key"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
	Env      string `mapstructure:"app_env"`
	Version  string `mapstructure:"app_version"`
	Name     string `mapstructure:"app_name"`
}

type Database struct {
	DSN          string        `mapstructure:"-"`
	Enabled      bool          `mapstructure:"database_enabled"`
	Driver       string        `mapstructure:"database_driver"`
	Password     string        `mapstructure:"database_password"`
	URL          string        `mapstructure:"database_url"`
	User         string        `mapstructure:"database_user"`
	MaxOpenConns int           `mapstructure:"database_max_open_conns"`
	PingTimeout  time.Duration `mapstructure:"database_ping_timeout"`
}

type Storage struct {
	Driver     string `mapstructure:"storage_driver"`
	Path       string `mapstructure:"storage_path"`
	Prefix     string `mapstructure:"storage_prefix"`
	QuotaBytes int64  `mapstructure:"storage_quota_bytes"`
}

type Cache struct {
	DefaultTTL  time.Duration `mapstructure:"cache_default_ttl"`
	UserDataTTL time.Duration `mapstructure:"cache_user_data_ttl"`
	ReportsTTL  time.Duration `mapstructure:"cache_reports_ttl"`
}

type Business struct {
	MinStockDefault int    `mapstructure:"business_min_stock_default"`
	Currency        string `mapstructure:"business_currency"`
	Timezone        string `mapstructure:"business_timezone"`
}

// Stock guarda as políticas do ajuste de estoque
type Stock struct {
	RestoreOnCancel   bool `mapstructure:"stock_restore_on_cancel"`
	RollbackOnFailure bool `mapstructure:"stock_rollback_on_failure"`
}

type Auth struct {
	Required bool          `mapstructure:"auth_required"`
	TokenTTL time.Duration `mapstructure:"auth_token_ttl"`
}

type Cors struct {
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type Reconnect struct {
	Interval time.Duration `mapstructure:"reconnect_interval"`
	Enabled  bool          `mapstructure:"reconnect_enabled"`
}

type CacheSweep struct {
	Interval time.Duration `mapstructure:"cache_sweep_interval"`
	Enabled  bool          `mapstructure:"cache_sweep_enabled"`
}

type OfflineSync struct {
	CronSchedule string `mapstructure:"offline_sync_cron"`
	Enabled      bool   `mapstructure:"offline_sync_enabled"`
}

type Demo struct {
	SeedOnStart bool `mapstructure:"demo_seed_on_start"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_VERSION", "1.0.0")
	viper.SetDefault("APP_NAME", "C4 App")

	viper.SetDefault("DATABASE_ENABLED", false)
	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/c4app?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("DATABASE_MAX_OPEN_CONNS", 10)
	viper.SetDefault("DATABASE_PING_TIMEOUT", "5s")

	viper.SetDefault("STORAGE_DRIVER", "file")            // file ou memory
	viper.SetDefault("STORAGE_PATH", "./data/c4app.json") // arquivo do armazenamento local
	viper.SetDefault("STORAGE_PREFIX", "c4app_")          // namespace das chaves
	viper.SetDefault("STORAGE_QUOTA_BYTES", 5*1024*1024)  // 5 MiB, como o limite do navegador

	viper.SetDefault("CACHE_DEFAULT_TTL", "5m")
	viper.SetDefault("CACHE_USER_DATA_TTL", "10m")
	viper.SetDefault("CACHE_REPORTS_TTL", "3m")

	viper.SetDefault("BUSINESS_MIN_STOCK_DEFAULT", 5)
	viper.SetDefault("BUSINESS_CURRENCY", "BRL")
	viper.SetDefault("BUSINESS_TIMEZONE", "America/Sao_Paulo")

	// Políticas de estoque
	viper.SetDefault("STOCK_RESTORE_ON_CANCEL", false)   // Cancelar venda não devolve estoque
	viper.SetDefault("STOCK_ROLLBACK_ON_FAILURE", false) // Falha em um item não desfaz os anteriores

	viper.SetDefault("SECRET_KEY", "your_secret_key")
	viper.SetDefault("AUTH_REQUIRED", false)
	viper.SetDefault("AUTH_TOKEN_TTL", "24h")

	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")

	// Defaults para as rotinas agendadas
	viper.SetDefault("RECONNECT_INTERVAL", "30s")        // Verifica o backend remoto a cada 30 segundos
	viper.SetDefault("RECONNECT_ENABLED", true)          // Habilitar reconexão automática
	viper.SetDefault("CACHE_SWEEP_INTERVAL", "1m")       // Remove entradas de cache expiradas a cada minuto
	viper.SetDefault("CACHE_SWEEP_ENABLED", true)        // Habilitar limpeza de cache
	viper.SetDefault("OFFLINE_SYNC_CRON", "*/5 * * * *") // A cada 5 minutos
	viper.SetDefault("OFFLINE_SYNC_ENABLED", true)       // Habilitar envio das alterações offline

	viper.SetDefault("DEMO_SEED_ON_START", true)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	// Configurar valores padrão
	SetDefaults()

	// Configurar o Viper
	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv() // Isso permite que o Viper leia variáveis de ambiente

	// Tentar ler o arquivo .env com o Viper (opcional, já que usamos godotenv)
	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Location retorna o fuso do negócio, usando o local quando o nome é inválido
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Business.Timezone)
	if err != nil {
		logrus.WithError(err).Warn("Fuso horário inválido, usando o fuso local")
		return time.Local
	}
	return loc
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	// Obter diretório atual
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		logrus.Debug("Tentando carregar .env de:", location)
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
