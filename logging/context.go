package logging

import (
	"context"

	"github.com/google/uuid"
)

type debugKeyType int

const debugKeyID = debugKeyType(iota)

// EnableDebugMode returns a context whose CDebug entries are logged regardless of the logger's
// level. Each such entry carries `key` so the lines of one request can be picked out. An empty
// `key` is replaced with a short random one.
func EnableDebugMode(ctx context.Context, key string) context.Context {
	if key == "" {
		key = uuid.NewString()[:8]
	}
	return context.WithValue(ctx, debugKeyID, key)
}

// IsDebugMode returns whether the context has debug logging enabled.
func IsDebugMode(ctx context.Context) bool {
	return debugKey(ctx) != ""
}

func debugKey(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	key, _ := ctx.Value(debugKeyID).(string)
	return key
}
