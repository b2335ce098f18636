package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Debug            bool   `envconfig:"debug"`
	Port             int    `envconfig:"port"`
	Env              string `envconfig:"env"`
	BaseUrl          string `envconfig:"base_url"`
	PostgresHost     string `envconfig:"postgres_host"`
	PostgresUser     string `envconfig:"postgres_user"`
	PostgresDB       string `envconfig:"postgres_db"`
	PostgresPort     int    `envconfig:"postgres_port"`
	PostgresPassword string `envconfig:"postgres_password"`
	JWTSecret        string `envconfig:"jwt_secret"`
	MailgunApiKey    string `envconfig:"mg_public_api_key"`
	MgDomain         string `envconfig:"mg_domain"`
	MgEmailFrom      string `envconfig:"email_from"`
	AwsRegion        string `envconfig:"aws_region"`
	AwsBucket        string `envconfig:"aws_bucket"`
	CacheTTLSeconds  int    `envconfig:"cache_ttl_seconds"`
	TemplateGlob     string `envconfig:"template_glob"`
}

func Load() (*Config, error) {
	env := os.Getenv("GIN_MODE")
	if env != "release" {
		if err := godotenv.Load("./.env"); err != nil {
			log.Printf("couldn't load env vars: %v", err)
		}
	}

	c := &Config{}
	err := envconfig.Process("quill", c)
	if err != nil {
		return nil, err
	}
	if c.Port == 0 {
		c.Port = 8080
	}
	if c.CacheTTLSeconds == 0 {
		c.CacheTTLSeconds = 20
	}
	if c.TemplateGlob == "" {
		c.TemplateGlob = "server/templates/*.html"
	}
	return c, nil
}
