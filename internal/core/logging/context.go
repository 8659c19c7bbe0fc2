package logging

import "context"

type contextKey string

const (
	versionIDKey contextKey = "version_id"
	pathKey      contextKey = "path"
)

// WithVersionID adds the browsed version ID to the context.
func WithVersionID(ctx context.Context, versionID int) context.Context {
	return context.WithValue(ctx, versionIDKey, versionID)
}

// WithPath adds the selected file path to the context.
func WithPath(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, pathKey, path)
}

// GetVersionID retrieves the version ID from the context.
// Returns false if not present.
func GetVersionID(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(versionIDKey).(int)
	return id, ok
}

// GetPath retrieves the file path from the context.
// Returns empty string if not present.
func GetPath(ctx context.Context) string {
	if p, ok := ctx.Value(pathKey).(string); ok {
		return p
	}
	return ""
}
