// api/config/config.go
package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Configuration stores all the configurations
type Configuration struct {
	Server        ServerConfiguration
	Neo4j         DatabaseConfiguration
	Redis         RedisConfiguration
	Elasticsearch ElasticsearchConfiguration
	JWT           JWTConfiguration
	Admin         AdminConfiguration
	Audit         AuditConfiguration
}

// ServerConfiguration stores the port and other web server settings
type ServerConfiguration struct {
	Port string
}

// DatabaseConfiguration stores data for database connection
type DatabaseConfiguration struct {
	URI      string
	Username string
	Password string
}

// RedisConfiguration stores data for Redis connection
type RedisConfiguration struct {
	Addr            string
	DefaultCacheTTL string
}

// ElasticsearchConfiguration stores data for Elasticsearch connection
type ElasticsearchConfiguration struct {
	URL string
}

// JWTConfiguration stores the token signing secret and lifetimes.
// It is built once at startup and injected into the token manager;
// nothing below this package reads these keys from viper directly.
type JWTConfiguration struct {
	Secret           string
	ExpiresIn        time.Duration
	RefreshExpiresIn time.Duration
}

// AdminConfiguration stores the seed credentials for the bootstrap super admin.
type AdminConfiguration struct {
	Email    string
	Password string
}

// AuditConfiguration stores the audit pipeline knobs.
type AuditConfiguration struct {
	QueueSize     int
	WriteTimeout  time.Duration
	RetentionDays int
}

var config *Configuration

func InitConfig() error {
	viper.AddConfigPath("config") // path to look for the config file in
	viper.SetConfigName("config") // name of the config file (without extension)
	viper.SetConfigType("yaml")   // REQUIRED if the config file does not have the extension in the name

	viper.AutomaticEnv() // read in environment variables that match

	// Set default configurations
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("neo4j.uri", "bolt://localhost:7687")
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("elasticsearch.url", "http://localhost:9200")
	viper.SetDefault("redis.defaultCacheTTL", "10m")
	viper.SetDefault("log.dir", "logs")
	viper.SetDefault("jwt.expiresIn", "168h")        // 7 days
	viper.SetDefault("jwt.refreshExpiresIn", "720h") // 30 days
	viper.SetDefault("admin.email", "admin@assistly.local")
	viper.SetDefault("audit.queueSize", 1024)
	viper.SetDefault("audit.writeTimeout", "5s")
	viper.SetDefault("audit.retentionDays", 0) // 0 = keep forever
	viper.SetDefault("rateLimit.requests", 100)
	viper.SetDefault("rateLimit.window", "1m")

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

// JWT returns the token configuration as an injectable value.
func JWT() JWTConfiguration {
	return JWTConfiguration{
		Secret:           viper.GetString("jwt.secret"),
		ExpiresIn:        viper.GetDuration("jwt.expiresIn"),
		RefreshExpiresIn: viper.GetDuration("jwt.refreshExpiresIn"),
	}
}

// Admin returns the seed admin credentials as an injectable value.
func Admin() AdminConfiguration {
	return AdminConfiguration{
		Email:    viper.GetString("admin.email"),
		Password: viper.GetString("admin.password"),
	}
}

// Audit returns the audit pipeline configuration as an injectable value.
func Audit() AuditConfiguration {
	return AuditConfiguration{
		QueueSize:     viper.GetInt("audit.queueSize"),
		WriteTimeout:  viper.GetDuration("audit.writeTimeout"),
		RetentionDays: viper.GetInt("audit.retentionDays"),
	}
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
