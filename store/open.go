package store

import (
	"context"
	"fmt"
)

// Options select and configure a backend.
type Options struct {
	Type     string `json:"type" yaml:"type"` // "memory", "sqlite" or "redis"
	Path     string `json:"path,omitempty" yaml:"path,omitempty"`
	Addr     string `json:"addr,omitempty" yaml:"addr,omitempty"`
	Password string `json:"password,omitempty" yaml:"password,omitempty"`
	DB       int    `json:"db,omitempty" yaml:"db,omitempty"`
	Prefix   string `json:"prefix,omitempty" yaml:"prefix,omitempty"`
}

func (o Options) Validate() error {
	switch o.Type {
	case "memory":
	case "sqlite":
		if o.Path == "" {
			return fmt.Errorf("store path required for sqlite")
		}
	case "redis":
		if o.Addr == "" {
			return fmt.Errorf("store addr required for redis")
		}
	default:
		return fmt.Errorf("store type must be 'memory', 'sqlite' or 'redis' (got %q)", o.Type)
	}
	return nil
}

// Open returns the configured backend. Redis connections are checked with a
// ping before returning.
func Open(ctx context.Context, o Options) (Store, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	switch o.Type {
	case "sqlite":
		return NewSQLite(o.Path)
	case "redis":
		r := NewRedis(o.Addr, o.Password, o.DB, o.Prefix)
		if err := r.Ping(ctx); err != nil {
			_ = r.Close()
			return nil, err
		}
		return r, nil
	default:
		return NewMemory(), nil
	}
}
