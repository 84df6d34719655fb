// Package logger provides the structured logger used by the tracing packages.
//
// It wraps go.uber.org/zap with a small, uniform API: every method takes a message,
// an optional error and any number of field maps.
//
//	log := logger.NewLoggerClient(logger.Config{Level: logger.Info, ServiceName: "ingest"})
//	log.Info("Call s3.getObject is missing the sub/segment context", nil, map[string]interface{}{
//		"service":   "s3",
//		"operation": "getObject",
//	})
//
// Packages in this module never depend on *Logger directly; each declares the
// subset it needs as a Logger interface, which *Logger satisfies.
//
// # FX Module Integration
//
//	app := fx.New(
//		logger.FXModule,
//		fx.Supply(logger.Config{Level: logger.Debug}),
//	)
package logger
