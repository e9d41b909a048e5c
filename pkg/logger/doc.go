// Package logger builds *slog.Logger instances for buildkit components and
// provides consistently named attribute helpers.
//
// New creates a logger configured by functional options:
//
//   • WithFormat – text or json output (ParseFormat converts config strings)
//   • WithLevel – minimum level (ParseLevel converts config strings)
//   • WithOutput – destination writer
//   • WithAttr – static attributes applied to every record
//   • WithContextExtractors / WithContextValue – attributes pulled from the
//     context passed to the *Context logging methods
//
// Discard returns a logger that drops every record; it is the default logger of
// a builder.Context so that building objects stays silent unless a caller opts in.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithFormat(logger.FormatText),
//	    logger.WithLevel(slog.LevelDebug),
//	    logger.WithAttr(logger.Component("fixtures")),
//	)
//	bc := builder.NewContext(ctx, builder.WithLogger(log))
//
// # Attributes
//
// Helpers such as Error, BuildID, Step and Mode keep key names stable across
// packages. Error and Errors return an empty attribute for nil errors, so
//
//	log.Debug("build finished", logger.Error(err))
//
// needs no nil check.
package logger
