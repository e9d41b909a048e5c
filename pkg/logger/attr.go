package logger

import (
	"log/slog"
	"strconv"
	"time"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Errors groups multiple non-nil errors under the key "errors".
// If all errors are nil, it returns an empty Attr.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Duration records a duration under the key "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// BuildID records the identifier of a single build invocation under the key "build_id".
// If id is nil, it returns an empty Attr.
func BuildID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("build_id", id)
}

// Builder records the concrete builder type under the key "builder".
func Builder(name string) slog.Attr {
	return slog.String("builder", name)
}

// Mode records the build mode ("sync" or "async") under the key "mode".
func Mode(mode string) slog.Attr {
	return slog.String("mode", mode)
}

// Step records a zero-based modification step index under the key "step".
func Step(index int) slog.Attr {
	return slog.Int("step", index)
}

// Steps records the number of queued modification steps under the key "steps".
func Steps(n int) slog.Attr {
	return slog.Int("steps", n)
}
