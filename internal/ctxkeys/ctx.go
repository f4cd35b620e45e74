package ctxkeys

import (
	"context"

	"github.com/fitstudio/reassess/internal/config"
)

// contextKey is a type for context keys to avoid collisions
type contextKey string

const (
	AuthenticatedKey contextKey = "authenticated"
	ConfigKey        contextKey = "config"
	RequestIDKey     contextKey = "request_id"
)

// Authenticated reports whether the request carries a valid admin session.
func Authenticated(ctx context.Context) bool {
	authed, _ := ctx.Value(AuthenticatedKey).(bool)
	return authed
}

func WithAuthenticated(ctx context.Context) context.Context {
	return context.WithValue(ctx, AuthenticatedKey, true)
}

func Config(ctx context.Context) *config.Config {
	cfg, _ := ctx.Value(ConfigKey).(*config.Config)
	return cfg
}

func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, ConfigKey, cfg)
}

func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}
