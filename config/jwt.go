package config

import (
	"time"
)

// JWTConfig signs the bearer tokens that bind a caller to one project.
type JWTConfig struct {
	Secret     string        `koanf:"secret"`
	Expiration time.Duration `koanf:"expiration"`
}

func (c JWTConfig) Key() []byte {
	return []byte(c.Secret)
}
