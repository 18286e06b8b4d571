package runtime

// TrackOption customizes a single tracking call.
type TrackOption func(*trackSettings)

type trackSettings struct {
	params        map[string]any
	onError       func(error)
	debug         bool
	transportHint string
	immediate     bool
}

func applyTrackOptions(opts []TrackOption) trackSettings {
	var s trackSettings
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}
	return s
}

// WithParams merges extra parameters into the event. Caller values win over
// the computed fields of the tracking method.
func WithParams(params map[string]any) TrackOption {
	return func(s *trackSettings) {
		if s.params == nil {
			s.params = make(map[string]any, len(params))
		}
		for k, v := range params {
			s.params[k] = v
		}
	}
}

// WithOnError installs a callback invoked on its own goroutine when the
// dispatch fails after the tracking method has already returned.
func WithOnError(fn func(error)) TrackOption {
	return func(s *trackSettings) { s.onError = fn }
}

// WithDebug forces debug logging for this call even when the tracker's
// config does not enable it.
func WithDebug(debug bool) TrackOption {
	return func(s *trackSettings) { s.debug = debug }
}

// WithTransportHint attaches a transport_type parameter advising the
// collecting side how to forward the event.
func WithTransportHint(hint string) TrackOption {
	return func(s *trackSettings) { s.transportHint = hint }
}

// WithImmediate bypasses the batching queue for this call when batching is
// enabled. The event is published in one outbound call before dispatch
// returns to the absorbing path.
func WithImmediate() TrackOption {
	return func(s *trackSettings) { s.immediate = true }
}
