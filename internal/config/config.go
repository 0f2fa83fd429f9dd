package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App struct {
		Env  string `mapstructure:"env"`
		Port string `mapstructure:"port"`
	} `mapstructure:"app"`
	DB struct {
		DSN string `mapstructure:"dsn"`
	} `mapstructure:"db"`
	Redis struct {
		Addr     string `mapstructure:"addr"`
		Password string `mapstructure:"password"`
	} `mapstructure:"redis"`
	Kafka struct {
		Brokers []string `mapstructure:"brokers"`
	} `mapstructure:"kafka"`
	Auth struct {
		JWTSecret       string        `mapstructure:"jwt_secret"`
		TokenLifespan   time.Duration `mapstructure:"token_lifespan"`
		RefreshLifespan time.Duration `mapstructure:"refresh_lifespan"`
		RefreshCookie   string        `mapstructure:"refresh_cookie"`
	} `mapstructure:"auth"`
	Cloudinary struct {
		CloudName string `mapstructure:"cloud_name"`
		ApiKey    string `mapstructure:"api_key"`
		ApiSecret string `mapstructure:"api_secret"`
	} `mapstructure:"cloudinary"`
	Search struct {
		// Empirical constants carried over from production. Changing either
		// one changes ranking output and needs new golden tests.
		SimilarityFloor float64 `mapstructure:"similarity_floor"`
		PositionDecay   float64 `mapstructure:"position_decay"`
	} `mapstructure:"search"`
}

func LoadConfig() (cfg Config, err error) {

	err = godotenv.Load()
	if err != nil {
		log.Println("warning: .env file not found, use default.")
	}

	viper.AddConfigPath(".")
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	if err = viper.ReadInConfig(); err != nil {
		log.Printf("note: config.yaml not found, read .env only. Error: %v", err)
	}

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("app.env", "development")
	viper.SetDefault("app.port", "8080")
	viper.SetDefault("auth.token_lifespan", "2h")
	viper.SetDefault("auth.refresh_lifespan", "336h")
	viper.SetDefault("auth.refresh_cookie", "feedgram_refresh")
	viper.SetDefault("search.similarity_floor", 0.72)
	viper.SetDefault("search.position_decay", 0.4)

	viper.BindEnv("app.env", "APP_ENV")
	viper.BindEnv("app.port", "APP_PORT")
	viper.BindEnv("db.dsn", "DB_DSN")
	viper.BindEnv("redis.addr", "REDIS_ADDR")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")
	viper.BindEnv("kafka.brokers", "KAFKA_BROKERS")
	viper.BindEnv("auth.jwt_secret", "JWT_SECRET")
	viper.BindEnv("auth.token_lifespan", "TOKEN_LIFESPAN")
	viper.BindEnv("auth.refresh_lifespan", "REFRESH_LIFESPAN")
	viper.BindEnv("auth.refresh_cookie", "REFRESH_COOKIE")

	viper.BindEnv("cloudinary.cloud_name", "CLOUDINARY_CLOUD_NAME")
	viper.BindEnv("cloudinary.api_key", "CLOUDINARY_API_KEY")
	viper.BindEnv("cloudinary.api_secret", "CLOUDINARY_API_SECRET")

	viper.BindEnv("search.similarity_floor", "SEARCH_SIMILARITY_FLOOR")
	viper.BindEnv("search.position_decay", "SEARCH_POSITION_DECAY")

	err = viper.Unmarshal(&cfg)
	return
}
