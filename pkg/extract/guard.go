package extract

import (
	"fmt"
	"log/slog"
)

var discardLogger = slog.New(slog.DiscardHandler)

// attempt runs one extraction step. A panic inside fn is logged and reported
// as a miss so the cascade moves on to the next source.
func attempt[T any](log *slog.Logger, step string, fn func() (T, bool)) (v T, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Warn("extraction step panicked",
				"step", step,
				"panic", fmt.Sprint(r),
			)
			var zero T
			v, ok = zero, false
		}
	}()
	return fn()
}
