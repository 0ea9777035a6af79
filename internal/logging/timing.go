package logging

import (
	"time"

	"go.uber.org/zap"
)

// Time logs the duration of an operation when the returned func is deferred.
// Pass a pointer to the surrounding function's named error return so the
// final log line records whether the operation failed.
func Time(log *zap.Logger, op string) func(errp *error) {
	start := time.Now()

	return func(errp *error) {
		fields := []zap.Field{
			zap.String(FieldOperation, op),
			zap.Int64(FieldDurationMS, time.Since(start).Milliseconds()),
		}

		if errp != nil && *errp != nil {
			log.Warn("operation failed", append(fields, zap.Error(*errp))...)
			return
		}
		log.Debug("operation complete", fields...)
	}
}
