package config

import "time"

type Config struct {
	Environment  Environment
	Log          Log
	HTTP         HTTPServer
	DatabasePath string `env:"DATABASE_PATH" envDefault:"checkout.db"`
	RedisAddr    string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	JWTSecret    string `env:"JWT_SECRET"`

	Storage Storage `envPrefix:"STORAGE_"`
	Payment Payment `envPrefix:"PAYMENT_"`
}

type Storage struct {
	Root          string `env:"ROOT" envDefault:"./data/objects"`
	PublicBaseURL string `env:"PUBLIC_BASE_URL" envDefault:"http://localhost:8080/objects"`
}

type Payment struct {
	SettlementDelay time.Duration `env:"SETTLEMENT_DELAY" envDefault:"2s"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}
