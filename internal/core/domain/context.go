package domain

import "context"

type configPathKey struct{}

// WithConfigPath returns a context carrying an explicit config file path.
func WithConfigPath(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, configPathKey{}, path)
}

// ConfigPathFromContext returns the explicit config path, or "" when none was set.
func ConfigPathFromContext(ctx context.Context) string {
	path, _ := ctx.Value(configPathKey{}).(string)
	return path
}
