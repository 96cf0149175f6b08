package settings

import (
	"context"
)

type settingsContextKey struct{}

// IntoContext attaches the Run settings of one CLI invocation to ctx.
func IntoContext(ctx context.Context, run *Run) context.Context {
	return context.WithValue(ctx, settingsContextKey{}, run)
}

// FromContext returns the Run settings attached by IntoContext. ok is false
// when ctx carries none or carries a nil Run.
func FromContext(ctx context.Context) (*Run, bool) {
	run, ok := ctx.Value(settingsContextKey{}).(*Run)
	return run, ok && run != nil
}
