package appconfig

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"text/template"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v2"
)

const (
	BackendJSON     = "json"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendS3       = "s3"
	BackendMemory   = "memory"
)

// Config holds all configuration details
type Config struct {
	// Host is the address serve binds to unless --host is given
	Host        string            `yaml:"host"`
	BasePath    string            `yaml:"basePath"`
	Errors      ErrorsConfig      `yaml:"errors"`
	Store       StoreConfig       `yaml:"store"`
	Collections CollectionsConfig `yaml:"collections"`
	Pulsar      PulsarConfig      `yaml:"pulsar"`
	CORS        CORSConfig        `yaml:"cors"`
}

// ErrorsConfig controls how much diagnostic detail error responses carry
type ErrorsConfig struct {
	IncludeStackTrace bool `yaml:"includeStackTrace"`
}

// StoreConfig selects and configures the collection store backend
type StoreConfig struct {
	Backend         string         `yaml:"backend"`
	DataDir         string         `yaml:"dataDir"`
	SerializeWrites bool           `yaml:"serializeWrites"`
	Database        DatabaseConfig `yaml:"database"`
	S3              S3Config       `yaml:"s3"`
}

// DatabaseConfig defines the database connection details
type DatabaseConfig struct {
	Source      string `yaml:"source"`
	AutoMigrate bool   `yaml:"autoMigrate"`
}

// S3Config locates the bucket for the s3 backend. RoleArn, when set, is
// assumed through STS for all bucket access.
type S3Config struct {
	Bucket   string `yaml:"bucket"`
	Prefix   string `yaml:"prefix"`
	Region   string `yaml:"region"`
	Endpoint string `yaml:"endpoint"`
	RoleArn  string `yaml:"roleArn"`
}

// CollectionsConfig names the collection backing each resource
type CollectionsConfig struct {
	Users    string `yaml:"users"`
	Products string `yaml:"products"`
}

// PulsarConfig defines the messaging system connection details
type PulsarConfig struct {
	URL           string `yaml:"url"`
	TopicProducer string `yaml:"topicProducer"`
	TopicConsumer string `yaml:"topicConsumer"`
	Subscription  string `yaml:"subscription"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowedOrigins"`
}

// Default returns the configuration used when no config file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// LoadConfig loads and parses the configuration from a given file path
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		err := errors.New("config file path is required")
		log.Error().Err(err).Msg("config file not provided")
		return nil, err
	}

	// Parse the template file
	tmpl, err := template.ParseFiles(path)
	if err != nil {
		log.Error().Err(err).Msg("error parsing config file template")
		return nil, err
	}

	// Unset variables expand to an empty string rather than "<no value>"
	tmpl.Option("missingkey=zero")

	return parse(tmpl, loadEnvVars())
}

func parse(tmpl *template.Template, envVars map[string]string) (*Config, error) {
	// Execute the template with environment variables
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, envVars); err != nil {
		log.Error().Err(err).Msg("error executing config file template")
		return nil, err
	}

	// Load and unmarshal the YAML
	var config Config
	if err := yaml.Unmarshal(buf.Bytes(), &config); err != nil {
		log.Error().Err(err).Msg("failed to unmarshal config YAML")
		return nil, err
	}

	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/"
	}
	if c.Store.Backend == "" {
		c.Store.Backend = BackendJSON
	}
	if c.Store.DataDir == "" {
		c.Store.DataDir = "./data"
	}
	if c.Collections.Users == "" {
		c.Collections.Users = "users"
	}
	if c.Collections.Products == "" {
		c.Collections.Products = "products"
	}
	if len(c.CORS.AllowedOrigins) == 0 {
		c.CORS.AllowedOrigins = []string{"*"}
	}
}

// loadEnvVars loads environment variables into a map
func loadEnvVars() map[string]string {
	envVars := make(map[string]string)
	for _, env := range os.Environ() {
		kv := strings.SplitN(env, "=", 2)
		if len(kv) == 2 {
			envVars[kv[0]] = kv[1]
		}
	}
	return envVars
}
