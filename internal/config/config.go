package config

import (
	"fmt"

	"github.com/coworkhq/booking-services/bookinggateway/pkg/mq"
	"github.com/coworkhq/booking-services/bookinggateway/pkg/mysql"
	"github.com/coworkhq/booking-services/bookinggateway/pkg/razorpay"
	"github.com/spf13/viper"
)

type Config struct {
	API      API             `mapstructure:"api"`
	Database mysql.Config    `mapstructure:"database"`
	RabbitMQ mq.Config       `mapstructure:"rabbitmq"`
	Razorpay razorpay.Config `mapstructure:"razorpay"`
	Coins    Coins           `mapstructure:"coins"`
}

type API struct {
	Port      string `mapstructure:"port"`
	JWTSecret string `mapstructure:"jwt_secret"`
}

type Coins struct {
	// MaxCoins is the balance every customer is reset to on the first
	// booking attempt of a new calendar month.
	MaxCoins int64 `mapstructure:"max_coins"`
}

func Load() (cfg *Config, err error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AddConfigPath("./config")

	err = viper.ReadInConfig()
	if err != nil {
		return cfg, fmt.Errorf("failed to load config: %w", err)
	}

	err = viper.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}
