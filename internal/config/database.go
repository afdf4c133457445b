package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/gorilla/schema"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Database struct {
	URL          string `schema:"DATABASE_URL"`
	Username     string `schema:"POSTGRES_USER"`
	Password     string `schema:"POSTGRES_PASSWORD"`
	PasswordFile string `schema:"POSTGRES_PASSWORD_FILE"`
	Host         string `schema:"POSTGRES_HOST"`
	Port         uint16 `schema:"POSTGRES_PORT"`
	DBName       string `schema:"POSTGRES_DB"`
	SSLMode      string `schema:"POSTGRES_SSLMODE"`
}

func (c *Database) loadPassword() error {
	if c.Password != "" {
		return nil
	}
	if c.PasswordFile == "" {
		return fmt.Errorf("no POSTGRES_PASSWORD or POSTGRES_PASSWORD_FILE env variable set")
	}
	data, err := os.ReadFile(c.PasswordFile)
	if err != nil {
		return fmt.Errorf("unable to read from password file: %w", err)
	}
	c.Password = strings.TrimSpace(string(data))
	return nil
}

func (c *Database) validate() error {
	if c.URL != "" {
		return nil
	}
	missing := make([]string, 0)
	if c.Username == "" {
		missing = append(missing, "POSTGRES_USER")
	}
	if c.Host == "" {
		missing = append(missing, "POSTGRES_HOST")
	}
	if c.Port == 0 {
		missing = append(missing, "POSTGRES_PORT")
	}
	if c.DBName == "" {
		missing = append(missing, "POSTGRES_DB")
	}
	if len(missing) > 0 {
		return fmt.Errorf("no DATABASE_URL set; missing %s", strings.Join(missing, ", "))
	}
	if c.SSLMode == "" {
		c.SSLMode = "disable"
	}
	return c.loadPassword()
}

func decodeDatabase(env []string) (*Database, error) {
	var cfg Database
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	if err := dec.Decode(&cfg, environ(env)); err != nil {
		return nil, fmt.Errorf("unable to decode environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func NewDatabase() (*Database, error) {
	return decodeDatabase(os.Environ())
}

// ConnString returns DATABASE_URL when set, otherwise a URL assembled from
// the POSTGRES_* variables. Both pgx and golang-migrate accept it.
func (c Database) ConnString() string {
	if c.URL != "" {
		return c.URL
	}
	u := url.URL{
		Scheme:   "postgresql",
		User:     url.UserPassword(c.Username, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: url.Values{"sslmode": {c.SSLMode}}.Encode(),
	}
	return u.String()
}

func (c Database) PgxpoolConfig() (*pgxpool.Config, error) {
	return pgxpool.ParseConfig(c.ConnString())
}
