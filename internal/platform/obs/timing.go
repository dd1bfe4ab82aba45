package obs

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

type ctxKey string

const RequestIDKey ctxKey = "req_id"

// Time measures the named operation until the returned func runs, logging
// duration and error state. Intended as `defer obs.Time(ctx, "op")(&err)`.
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()

	reqID, _ := ctx.Value(RequestIDKey).(string)

	return func(errp *error) {
		fields := logrus.Fields{
			"req_id": reqID,
			"op":     name,
			"dur_ms": time.Since(start).Milliseconds(),
		}

		if errp != nil && *errp != nil {
			logrus.WithFields(fields).WithError(*errp).Warn("operation failed")
			return
		}
		logrus.WithFields(fields).Debug("operation complete")
	}
}
