package ctxkeys

import (
	"context"

	"github.com/steiza/a2docstore/internal/config"
)

// contextKey is a type for context keys to avoid collisions
type contextKey string

const (
	AuthorizedKey contextKey = "authorized"
	ConfigKey     contextKey = "config"
	RequestIDKey  contextKey = "request_id"
	CSRFTokenKey  contextKey = "csrf_token"
)

func Authorized(ctx context.Context) bool {
	authorized, _ := ctx.Value(AuthorizedKey).(bool)
	return authorized
}

func WithAuthorized(ctx context.Context, authorized bool) context.Context {
	return context.WithValue(ctx, AuthorizedKey, authorized)
}

func Config(ctx context.Context) *config.Config {
	cfg, _ := ctx.Value(ConfigKey).(*config.Config)
	return cfg
}

func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, ConfigKey, cfg)
}

func CSRFToken(ctx context.Context) string {
	token, _ := ctx.Value(CSRFTokenKey).(string)
	return token
}

func WithCSRFToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, CSRFTokenKey, token)
}

func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}
