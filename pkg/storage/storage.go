// Package storage persists small string values (the bearer credential)
// across process runs, the way a browser keeps them in local storage.
package storage

import (
	"context"
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("storage: key not found")

// Storage is a string key/value store.
type Storage interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

const (
	DriverMemory = "memory"
	DriverFile   = "file"
	DriverRedis  = "redis"
)

type Config struct {
	Driver        string
	FilePath      string
	RedisURL      string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
}

// Open builds the backend named by cfg.Driver.
func Open(ctx context.Context, cfg Config) (Storage, error) {
	switch cfg.Driver {
	case "", DriverMemory:
		return NewMemory(), nil
	case DriverFile:
		if cfg.FilePath == "" {
			return nil, errors.New("storage: file driver requires a path")
		}
		return NewFile(cfg.FilePath), nil
	case DriverRedis:
		return NewRedis(ctx, cfg.RedisURL, cfg.RedisPassword, cfg.RedisDB, cfg.RedisPrefix)
	default:
		return nil, fmt.Errorf("storage: unknown driver %q", cfg.Driver)
	}
}
