package config

import (
	"github.com/spf13/viper"
)

// Limits holds every field-length bound and the image-size ceiling used by
// the validation engine. Values come from the environment with sensible
// defaults; nothing in the engine hardcodes a number.
type Limits struct {
	MaxUsernameLength             int
	MaxNameLength                 int
	MaxEmailLength                int
	MaxCityLength                 int
	MaxAddressLength              int
	MaxProductNameLength          int
	MaxProductBrandLength         int
	MaxProductDescriptionLength   int
	MaxProductSpecificationLength int
	MaxProductPriceLength         int
	MaxReviewLength               int
	MaxImageSizeMB                float64
}

// Config is the full application configuration.
type Config struct {
	AppPort        string
	DatabaseDriver string
	DatabaseDSN    string
	JWTSecret      string
	RabbitMQURL    string
	UploadDir      string
	Limits         Limits
}

// Load reads configuration from environment variables via Viper,
// falling back to the defaults below.
func Load() Config {
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DATABASE_DRIVER", "sqlite")
	viper.SetDefault("DATABASE_DSN", "storefront.db")
	viper.SetDefault("JWT_SECRET", "dev_secret_change_me")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.SetDefault("UPLOAD_DIR", "public/uploads/img/products")

	viper.SetDefault("MAX_USERNAME_LENGTH", 30)
	viper.SetDefault("MAX_NAME_LENGTH", 30)
	viper.SetDefault("MAX_EMAIL_LENGTH", 50)
	viper.SetDefault("MAX_CITY_LENGTH", 50)
	viper.SetDefault("MAX_ADDRESS_LENGTH", 100)
	viper.SetDefault("MAX_PRODUCT_NAME_LENGTH", 100)
	viper.SetDefault("MAX_PRODUCT_BRAND_LENGTH", 50)
	viper.SetDefault("MAX_PRODUCT_DESCRIPTION_LENGTH", 1000)
	viper.SetDefault("MAX_PRODUCT_SPECIFICATION_LENGTH", 2000)
	viper.SetDefault("MAX_PRODUCT_PRICE_LENGTH", 10)
	viper.SetDefault("MAX_REVIEW_LENGTH", 500)
	viper.SetDefault("MAX_IMAGE_SIZE", 2.0)

	viper.AutomaticEnv()

	return Config{
		AppPort:        viper.GetString("APP_PORT"),
		DatabaseDriver: viper.GetString("DATABASE_DRIVER"),
		DatabaseDSN:    viper.GetString("DATABASE_DSN"),
		JWTSecret:      viper.GetString("JWT_SECRET"),
		RabbitMQURL:    viper.GetString("RABBITMQ_URL"),
		UploadDir:      viper.GetString("UPLOAD_DIR"),
		Limits: Limits{
			MaxUsernameLength:             viper.GetInt("MAX_USERNAME_LENGTH"),
			MaxNameLength:                 viper.GetInt("MAX_NAME_LENGTH"),
			MaxEmailLength:                viper.GetInt("MAX_EMAIL_LENGTH"),
			MaxCityLength:                 viper.GetInt("MAX_CITY_LENGTH"),
			MaxAddressLength:              viper.GetInt("MAX_ADDRESS_LENGTH"),
			MaxProductNameLength:          viper.GetInt("MAX_PRODUCT_NAME_LENGTH"),
			MaxProductBrandLength:         viper.GetInt("MAX_PRODUCT_BRAND_LENGTH"),
			MaxProductDescriptionLength:   viper.GetInt("MAX_PRODUCT_DESCRIPTION_LENGTH"),
			MaxProductSpecificationLength: viper.GetInt("MAX_PRODUCT_SPECIFICATION_LENGTH"),
			MaxProductPriceLength:         viper.GetInt("MAX_PRODUCT_PRICE_LENGTH"),
			MaxReviewLength:               viper.GetInt("MAX_REVIEW_LENGTH"),
			MaxImageSizeMB:                viper.GetFloat64("MAX_IMAGE_SIZE"),
		},
	}
}
