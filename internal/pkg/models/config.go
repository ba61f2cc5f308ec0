package models

// Config represents application configuration
type Config struct {
	App         AppConfig
	Server      ServerConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	NATS        NATSConfig
	JWT         JWTConfig
	PayMongo    PayMongoConfig
	Logger      LoggerConfig
	Maintenance MaintenanceConfig
}

// AppConfig contains application-specific configuration
type AppConfig struct {
	Name        string
	Environment string
	Debug       bool
	Version     string
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

// DatabaseConfig contains database connection configuration
type DatabaseConfig struct {
	Driver    string
	Host      string
	Port      int
	Username  string
	Password  string
	Database  string
	SSLMode   string
	MaxConns  int
	IdleConns int
}

// RedisConfig contains Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int
}

// NATSConfig contains NATS connection configuration
type NATSConfig struct {
	URL string
}

// JWTConfig contains JWT authentication configuration
type JWTConfig struct {
	Secret     string
	Expiration int // in minutes
	Issuer     string
}

// PayMongoConfig contains upstream payment provider configuration.
// SecretKey authenticates outbound calls; WebhookSecret verifies
// inbound notifications. Neither value may ever be logged.
type PayMongoConfig struct {
	BaseURL        string
	SecretKey      string
	WebhookSecret  string
	SuccessURL     string
	FailedURL      string
	Currency       string
	RequestTimeout int // in seconds
}

// LoggerConfig contains logger configuration
type LoggerConfig struct {
	Level    string
	FilePath string
}

// MaintenanceConfig controls the maintenance-mode gate
type MaintenanceConfig struct {
	Enabled bool
	Message string
}
