package config

import (
	"orderdesk_server/structs"
	"sync"
	"time"
)

var (
	configInstance *structs.Config
	configOnce     sync.Once
)

func GetConfig() *structs.Config {
	configOnce.Do(func() {
		configInstance = &structs.Config{
			Server: &structs.ServerConfig{
				AppName:        getEnvAsString("APP_NAME", "Orderdesk"),
				Environment:    getEnvAsString("APP_ENV", "development"),
				Port:           getEnvAsString("APP_PORT", ":9000"),
				ReadTimeout:    getEnvAsSeconds("SERVER_READ_TIME_OUT", 15*time.Second),
				WriteTimeout:   getEnvAsSeconds("SERVER_WRITE_TIME_OUT", 30*time.Second),
				IdleTimeout:    getEnvAsSeconds("SERVER_IDLE_TIME_OUT", 60*time.Second),
				MaxHeaderBytes: getEnvAsInt("SERVER_MAX_HEADER_BYTES", 1<<20), // 1 MB
			},
			Cors: &structs.CorsConfig{
				AllowedOrigins:   getEnvAsSlice("CORS_ALLOW_ORIGINS", []string{"*"}),
				AllowedMethods:   getEnvAsSlice("CORS_ALLOW_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
				AllowedHeaders:   getEnvAsSlice("CORS_ALLOW_HEADERS", []string{"Origin", "Content-Type", "Accept"}),
				ExposedHeaders:   getEnvAsSlice("CORS_EXPOSED_HEADERS", []string{"Content-Length"}),
				AllowCredentials: getEnvAsBool("CORS_ALLOW_CREDENTIALS", false),
				MaxAge:           getEnvAsInt("CORS_MAX_AGE", 300),
			},
			Database: &structs.DatabaseConfig{
				Host:         getEnvAsString("DB_HOST", "localhost"),
				Port:         getEnvAsInt("DB_PORT", 5432),
				User:         getEnvAsString("DB_USER", "postgres"),
				Password:     getEnvAsString("DB_PASSWORD", "password"),
				Name:         getEnvAsString("DB_NAME", "orderdesk_db"),
				SSL:          getEnvAsBool("DB_SSL", false),
				MaxConns:     getEnvAsInt("DB_MAX_CONNS", 10),
				MinConns:     getEnvAsInt("DB_MIN_CONNS", 2),
				MaxLifetime:  getEnvAsSeconds("DB_MAX_LIFETIME", 30*time.Minute),
				MaxIdleTime:  getEnvAsSeconds("DB_MAX_IDLE_TIME", 5*time.Minute),
				ReadTimeout:  getEnvAsSeconds("DB_READ_TIMEOUT", 5*time.Second),
				WriteTimeout: getEnvAsSeconds("DB_WRITE_TIMEOUT", 5*time.Second),
			},
			Upload: &structs.UploadConfig{
				Dir:     getEnvAsString("UPLOAD_FOLDER", "uploads"),
				MaxSize: getEnvAsInt64("MAX_UPLOAD_SIZE", 16<<20), // 16 MiB
			},
			Mail: &structs.MailConfig{
				Host:       getEnvAsString("MAIL_SERVER", "smtp.gmail.com"),
				Port:       getEnvAsInt("MAIL_PORT", 587),
				Username:   getEnvAsString("MAIL_USERNAME", ""),
				Password:   getEnvAsString("MAIL_PASSWORD", ""),
				From:       getEnvAsString("MAIL_DEFAULT_SENDER", ""),
				AdminEmail: getEnvAsString("ADMIN_EMAIL", ""),
			},
			Cache: &structs.CacheConfig{
				Enabled:      getEnvAsBool("CACHE_ENABLED", true),
				Address:      getEnvAsString("CACHE_ADDRESS", "localhost:6379"),
				Username:     getEnvAsString("CACHE_USERNAME", ""),
				Password:     getEnvAsString("CACHE_PASSWORD", ""),
				DB:           getEnvAsInt("CACHE_DB", 0),
				PoolSize:     getEnvAsInt("CACHE_POOL_SIZE", 10),
				MinIdleConns: getEnvAsInt("CACHE_MIN_IDLE_CONNS", 2),
				DialTimeout:  getEnvAsSeconds("CACHE_DIAL_TIMEOUT", 5*time.Second),
				ReadTimeout:  getEnvAsSeconds("CACHE_READ_TIMEOUT", 3*time.Second),
				WriteTimeout: getEnvAsSeconds("CACHE_WRITE_TIMEOUT", 3*time.Second),
				OrderTTL:     getEnvAsSeconds("CACHE_ORDER_TTL", 5*time.Minute),
			},
		}
	})
	return configInstance
}

func GetLogLevel() string {
	if GetConfig().Server.Environment == "production" {
		return "info"
	}
	return "debug"
}

func IsProduction() bool {
	return GetConfig().Server.Environment == "production"
}
