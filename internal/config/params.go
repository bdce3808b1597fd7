// Package config resolves AI parameters across the parameter table, the
// config file and the OS keyring.
package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/nhle/daedaly/internal/model"
)

// ParamStore is the subset of the entity store that holds parameters.
type ParamStore interface {
	GetParam(ctx context.Context, key string) (string, bool, error)
}

// SecretStore holds API keys outside the database.
type SecretStore interface {
	Secret(key string) (string, error)
}

// Layered reads a parameter from the store first, then from the config
// file (or DAEDALY_* env), then falls back to the caller's default. A
// blank value at any layer counts as unset.
type Layered struct {
	store   ParamStore
	app     *model.AppConfig
	secrets SecretStore
}

// NewLayered builds a Layered reader. app and secrets may be nil.
func NewLayered(store ParamStore, app *model.AppConfig, secrets SecretStore) *Layered {
	return &Layered{store: store, app: app, secrets: secrets}
}

// Param returns the effective value for key.
func (l *Layered) Param(ctx context.Context, key, def string) (string, error) {
	if l.store != nil {
		v, ok, err := l.store.GetParam(ctx, key)
		if err != nil {
			return "", fmt.Errorf("reading parameter %s: %w", key, err)
		}
		if ok && strings.TrimSpace(v) != "" {
			return v, nil
		}
	}
	if v, ok := l.app.AIParam(key); ok && strings.TrimSpace(v) != "" {
		return v, nil
	}
	return def, nil
}

// Secret returns the keyring value for key, or "" when no keyring is
// attached.
func (l *Layered) Secret(key string) (string, error) {
	if l.secrets == nil {
		return "", nil
	}
	return l.secrets.Secret(key)
}

// Source reports which layer currently provides key: "store", "config",
// or "default".
func (l *Layered) Source(ctx context.Context, key string) (string, error) {
	if l.store != nil {
		v, ok, err := l.store.GetParam(ctx, key)
		if err != nil {
			return "", fmt.Errorf("reading parameter %s: %w", key, err)
		}
		if ok && strings.TrimSpace(v) != "" {
			return "store", nil
		}
	}
	if v, ok := l.app.AIParam(key); ok && strings.TrimSpace(v) != "" {
		return "config", nil
	}
	return "default", nil
}
