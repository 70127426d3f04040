package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App            App            `mapstructure:",squash"`
	Server         Server         `mapstructure:",squash"`
	Dataset        Dataset        `mapstructure:",squash"`
	DatasetRefresh DatasetRefresh `mapstructure:",squash"`
	Warehouse      Warehouse      `mapstructure:",squash"`
	Notifier       Notifier       `mapstructure:",squash"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

// Dataset aponta para o diretório com os CSVs que alimentam a API
type Dataset struct {
	Dir string `mapstructure:"dataset_dir"`
}

// DatasetRefresh controla a recarga periódica dos CSVs em memória
type DatasetRefresh struct {
	CronSchedule string `mapstructure:"dataset_refresh_cron"`
	Enabled      bool   `mapstructure:"dataset_refresh_enabled"`
}

// Warehouse controla o espelhamento do dataset em Postgres. O espelho é
// somente escrita, a API nunca lê de volta do banco.
type Warehouse struct {
	DSN          string `mapstructure:"-"`
	Driver       string `mapstructure:"warehouse_driver"`
	URL          string `mapstructure:"warehouse_url"`
	User         string `mapstructure:"warehouse_user"`
	Password     string `mapstructure:"warehouse_password"`
	MaxOpenConns int    `mapstructure:"warehouse_max_open_conns"`
	CronSchedule string `mapstructure:"warehouse_sync_cron"`
	Enabled      bool   `mapstructure:"warehouse_sync_enabled"`
}

// Notifier controla o envio do digest de alertas executivos via webhook
type Notifier struct {
	WebhookURL   string `mapstructure:"alert_webhook_url"`
	Token        string `mapstructure:"alert_webhook_token"`
	CronSchedule string `mapstructure:"alert_digest_cron"`
	Enabled      bool   `mapstructure:"alert_digest_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATASET_DIR", "data")

	// Defaults para recarga do dataset
	viper.SetDefault("DATASET_REFRESH_CRON", "0 * * * *") // A cada hora
	viper.SetDefault("DATASET_REFRESH_ENABLED", false)    // Habilitar recarga periódica

	// Defaults para espelhamento no warehouse
	viper.SetDefault("WAREHOUSE_DRIVER", "postgres")
	viper.SetDefault("WAREHOUSE_URL", "localhost:5432/executive")
	viper.SetDefault("WAREHOUSE_USER", "postgres")
	viper.SetDefault("WAREHOUSE_PASSWORD", "root")
	viper.SetDefault("WAREHOUSE_MAX_OPEN_CONNS", 5)
	viper.SetDefault("WAREHOUSE_SYNC_CRON", "0 2 * * *") // Todos os dias às 2h da manhã
	viper.SetDefault("WAREHOUSE_SYNC_ENABLED", false)    // Habilitar espelhamento no warehouse

	// Defaults para digest de alertas
	viper.SetDefault("ALERT_WEBHOOK_URL", "")
	viper.SetDefault("ALERT_WEBHOOK_TOKEN", "")
	viper.SetDefault("ALERT_DIGEST_CRON", "0 7 * * 1-5") // Dias úteis às 7h da manhã
	viper.SetDefault("ALERT_DIGEST_ENABLED", false)      // Habilitar envio do digest

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

	config.Warehouse.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Warehouse.Driver,
		config.Warehouse.User,
		config.Warehouse.Password,
		config.Warehouse.URL,
	)

	return config, nil
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
		filepath.Join(cwd, "../.env"),            // Diretório acima
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		logrus.Info("Tentando carregar .env de:", location)
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
