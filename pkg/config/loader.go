package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	cache sync.Map // reflect.Type -> any (T)
	mu    sync.Mutex

	defaultEnvLoaded sync.Once
)

// Load fills v from environment variables using `env` struct tags.
// The default .env file is read once per process if present. Each config type is
// parsed once; later calls for the same type receive the cached copy.
//
// Example:
//
//	type ImageConfig struct {
//		Backend string `env:"IMAGE_BACKEND" envDefault:"auto"`
//		Quality int    `env:"IMAGE_WEBP_QUALITY" envDefault:"80"`
//	}
//
//	var cfg ImageConfig
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}
	defaultEnvLoaded.Do(func() {
		// The .env file is optional.
		_ = godotenv.Load()
	})

	key := reflect.TypeFor[T]()
	if cached, ok := cache.Load(key); ok {
		*v = cached.(T)
		return nil
	}

	mu.Lock()
	defer mu.Unlock()

	if cached, ok := cache.Load(key); ok {
		*v = cached.(T)
		return nil
	}

	parsed, err := Parse[T]()
	if err != nil {
		return err
	}
	cache.Store(key, parsed)
	*v = parsed
	return nil
}

// MustLoad works like Load but panics if configuration loading fails.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

// Parse reads T from the current environment without touching the cache.
func Parse[T any]() (T, error) {
	var v T
	if err := env.Parse(&v); err != nil {
		return v, errors.Join(ErrParsingConfig, err)
	}
	return v, nil
}

// LoadEnvFiles loads the given .env files into the process environment.
// Variables already set are not overridden.
func LoadEnvFiles(paths ...string) error {
	if len(paths) == 0 {
		return nil
	}
	if err := godotenv.Load(paths...); err != nil {
		return errors.Join(ErrEnvFile, err)
	}
	return nil
}
