// Package logger builds *slog.Logger instances from functional options and
// provides attribute helpers with consistent keys.
//
//	log := logger.New(
//		logger.WithEnvironment(cfg.Env, "productattach"),
//		logger.WithContextExtractors(productattach.LogRequestID),
//	)
//	log.InfoContext(ctx, "attachment uploaded",
//		logger.Filename("/m/a/manual.pdf"),
//		logger.StoreID(1),
//	)
//
// Error returns an empty attribute for a nil error, so it can be passed
// without a nil check.
package logger
