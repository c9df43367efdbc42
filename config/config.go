package config

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server         Server
	Database       Database
	Log            Log
	QuestionSupply QuestionSupply
	Notification   Notification
	GeminiApiKey   string
}

type Server struct {
	Port    string
	GinMode string
}

type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type Log struct {
	Level string
}

// QuestionSupply selects where per-skill questions come from: "gemini", "http" or "none".
type QuestionSupply struct {
	Provider         string
	GeminiModel      string
	ServiceURL       string
	Timeout          time.Duration
	RecentHashWindow int
}

type Notification struct {
	RabbitMQURL string
	Queue       string
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("GIN_MODE", "debug")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("DATABASE_SSLMODE", "disable")
	viper.SetDefault("QUESTION_SUPPLY", "gemini")
	viper.SetDefault("GEMINI_MODEL", "gemini-1.5-flash")
	viper.SetDefault("QUESTION_SERVICE_TIMEOUT", "20s")
	viper.SetDefault("RECENT_HASH_WINDOW", 5)
	viper.SetDefault("NOTIFICATION_QUEUE", "talentgate_events")

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Server.GinMode = viper.GetString("GIN_MODE")
	config.Log.Level = viper.GetString("LOG_LEVEL")

	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")
	config.Database.SSLMode = viper.GetString("DATABASE_SSLMODE")

	config.QuestionSupply.Provider = viper.GetString("QUESTION_SUPPLY")
	config.QuestionSupply.GeminiModel = viper.GetString("GEMINI_MODEL")
	config.QuestionSupply.ServiceURL = viper.GetString("QUESTION_SERVICE_URL")
	config.QuestionSupply.Timeout = viper.GetDuration("QUESTION_SERVICE_TIMEOUT")
	config.QuestionSupply.RecentHashWindow = viper.GetInt("RECENT_HASH_WINDOW")

	config.Notification.RabbitMQURL = viper.GetString("RABBITMQ_URL")
	config.Notification.Queue = viper.GetString("NOTIFICATION_QUEUE")

	config.GeminiApiKey = viper.GetString("GEMINI_API_KEY")

	log.Info().
		Str("port", config.Server.Port).
		Str("dbHost", config.Database.Host).
		Str("dbName", config.Database.Name).
		Str("questionSupply", config.QuestionSupply.Provider).
		Bool("rabbitmq", config.Notification.RabbitMQURL != "").
		Msg("Config loaded")
	return &config, nil
}
