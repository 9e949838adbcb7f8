package config

import (
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"

	"paysquare/output"
)

const envPrefix = "PAYSQUARE"

type Config struct {
	StorePath     string `envconfig:"STORE_PATH"`
	LogLevel      string `envconfig:"LOG_LEVEL" default:"info"`
	QRImageURL    string `envconfig:"QR_IMAGE_URL" default:"https://api.qrserver.com/v1/create-qr-code/"`
	QRImageSize   string `envconfig:"QR_IMAGE_SIZE" default:"150x150"`
	PNGSize       int    `envconfig:"PNG_SIZE" default:"256"`
	SmallTerminal bool   `envconfig:"SMALL_TERMINAL" default:"true"`
}

// Load reads PAYSQUARE_* variables. StorePath stays empty without
// PAYSQUARE_STORE_PATH; the store then falls back to the home directory.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return Config{}, errors.Wrap(err, "parse environment variables")
	}

	if cfg.PNGSize <= 0 {
		cfg.PNGSize = output.DefaultPNGSize
	}
	return cfg, nil
}
