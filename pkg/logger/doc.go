// Package logger builds configured log/slog loggers for the entitlement
// engine and its host application.
//
// The factory is option-based:
//
//	log := logger.New(
//	    logger.WithProduction("polylingo-entitlements"),
//	    logger.WithAttr(slog.String("component", "reconciler")),
//	)
//
// WithDevelopment and WithProduction bundle sensible defaults; individual
// options override them when applied later in the option list.
package logger
