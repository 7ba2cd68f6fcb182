package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	env "github.com/caarlos0/env/v7"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort         int    `env:"HTTP_PORT" envDefault:"3333"`
	PostgresDSN      string `env:"POSTGRES_DSN"`
	PostgresMaxConns int32  `env:"POSTGRES_MAX_CONNS" envDefault:"10"`
	LogLevel         string `env:"LOG_LEVEL" envDefault:"info"`

	// Static key that grants the admin role without provider verification.
	// Empty disables the bypass.
	AdminAPIKey string `env:"ADMIN_API_KEY"`

	IdentityProvider IdentityProviderConfig
	Kafka            KafkaConfig
	Mailer           MailerConfig

	// TLS / mTLS
	ServerCert  string `env:"TLS_SERVER_CERT"`
	ServerKey   string `env:"TLS_SERVER_KEY"`
	CACert      string `env:"TLS_CA_CERT"`
	MTLSEnabled bool   `env:"MTLS_ENABLED" envDefault:"false"`
}

type IdentityProviderConfig struct {
	BaseURL       string        `env:"IDP_BASE_URL"`
	APIKey        string        `env:"IDP_API_KEY"`
	Timeout       time.Duration `env:"IDP_TIMEOUT" envDefault:"5s"`
	RetryAttempts int           `env:"IDP_RETRY_ATTEMPTS" envDefault:"2"`
}

type KafkaConfig struct {
	Brokers           []string `env:"KAFKA_BROKERS" envSeparator:","`
	NotificationTopic string   `env:"KAFKA_NOTIFICATION_TOPIC" envDefault:"notifications"`
	ConsumerID        string   `env:"KAFKA_CONSUMER_ID" envDefault:"roster-notifier"`
}

type MailerConfig struct {
	Host     string `env:"MAILER_HOST"`
	Port     int    `env:"MAILER_PORT" envDefault:"465"`
	Login    string `env:"MAILER_LOGIN"`
	Password string `env:"MAILER_PASSWORD"`
	From     string `env:"MAILER_FROM"`
	FromName string `env:"MAILER_FROM_NAME" envDefault:"Station Roster"`
}

func New(envPath string) (Config, error) {
	var c Config

	err := godotenv.Load(envPath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, err
	}

	err = env.Parse(&c)
	if err != nil {
		return Config{}, err
	}

	err = c.checkTLSFiles()
	if err != nil {
		return Config{}, err
	}

	return c, nil
}

// TLSEnabled reports whether the HTTP server should terminate TLS itself.
// Both the cert and the key must be configured.
func (c Config) TLSEnabled() bool {
	return c.ServerCert != "" && c.ServerKey != ""
}

func (c Config) checkTLSFiles() error {
	files := []struct {
		name string
		val  string
	}{
		{"TLS_SERVER_CERT", c.ServerCert},
		{"TLS_SERVER_KEY", c.ServerKey},
	}

	if c.MTLSEnabled {
		if !c.TLSEnabled() {
			return errors.New("MTLS_ENABLED requires TLS_SERVER_CERT and TLS_SERVER_KEY")
		}

		files = append(files, struct{ name, val string }{"TLS_CA_CERT", c.CACert})
	}

	for _, f := range files {
		if f.val == "" {
			continue
		}

		if _, err := os.Stat(f.val); os.IsNotExist(err) {
			return fmt.Errorf("missing TLS file for %s: %s", f.name, f.val)
		}
	}

	return nil
}
