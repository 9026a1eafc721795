package gesture

import "log/slog"

// Option configures a TouchHandler during creation.
//
// Example:
//
//	h := gesture.NewTouchHandler(
//		gesture.WithDeviceScale(2),
//		gesture.WithLogger(slog.Default()),
//	)
type Option func(*handlerOptions)

type handlerOptions struct {
	logger      *slog.Logger
	deviceScale float64
}

func defaultOptions() handlerOptions {
	return handlerOptions{deviceScale: 1}
}

// WithLogger sets a logger for this handler only. Without it the handler
// logs through the package logger (see [SetLogger]).
func WithLogger(l *slog.Logger) Option {
	return func(o *handlerOptions) {
		o.logger = l
	}
}

// WithDeviceScale sets the number of device pixels per device-independent
// pixel. Touch coordinates arrive in device pixels while the pan threshold
// is defined in device-independent pixels, so the threshold is multiplied
// by this factor before comparison. Non-positive values are ignored.
func WithDeviceScale(scale float64) Option {
	return func(o *handlerOptions) {
		if scale > 0 {
			o.deviceScale = scale
		}
	}
}
