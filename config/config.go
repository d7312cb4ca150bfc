// config/config.go
package config

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Configuration stores all the configurations
type Configuration struct {
	Server        ServerConfiguration
	API           APIConfiguration
	Cache         CacheConfiguration
	Confirmation  ConfirmationConfiguration
	Elasticsearch ElasticsearchConfiguration
}

// ServerConfiguration stores the port and other web server settings
type ServerConfiguration struct {
	Port string
}

// APIConfiguration stores the upstream HR platform connection settings
type APIConfiguration struct {
	Key        string
	BaseURL    string
	Version    string
	Timeout    time.Duration
	MaxRetries int
	Debug      bool
}

// CacheConfiguration stores the in-memory cache settings
type CacheConfiguration struct {
	CleanupInterval time.Duration
}

// ConfirmationConfiguration stores the two-phase confirmation settings
type ConfirmationConfiguration struct {
	TTL time.Duration
}

// ElasticsearchConfiguration stores data for the audit trail connection
type ElasticsearchConfiguration struct {
	URL string
}

var config *Configuration

func InitConfig() error {
	viper.AddConfigPath("config") // path to look for the config file in
	viper.SetConfigName("config") // name of the config file (without extension)
	viper.SetConfigType("yaml")

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match (api.key -> API_KEY)

	// Set default configurations
	viper.SetDefault("server.port", "8090")
	viper.SetDefault("api.baseURL", "https://api.hrplatform.example")
	viper.SetDefault("api.version", "v1")
	viper.SetDefault("api.timeout", "30s")
	viper.SetDefault("api.maxRetries", 3)
	viper.SetDefault("api.debug", false)
	viper.SetDefault("cache.cleanupInterval", "60s")
	viper.SetDefault("confirmation.ttl", "5m")
	viper.SetDefault("elasticsearch.url", "http://localhost:9200")
	viper.SetDefault("ratelimit.limit", 100)
	viper.SetDefault("ratelimit.window", "1m")
	viper.SetDefault("log.dir", "logging")

	// Attempt to read the config file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("No config file found. Using default settings and environment variables.")
		} else {
			return err
		}
	}

	// Unmarshal the configuration into the Configuration struct
	err := viper.Unmarshal(&config)
	if err != nil {
		return err
	}

	return nil
}

// GetConfig returns the loaded configuration
func GetConfig() *Configuration {
	return config
}

// GetString retrieves a string value from the configuration
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt retrieves an integer value from the configuration
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool retrieves a boolean value from the configuration
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetDuration retrieves a duration value from the configuration
func GetDuration(key string) time.Duration {
	return viper.GetDuration(key)
}
