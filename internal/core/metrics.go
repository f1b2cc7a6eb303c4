package core

// Metrics receives counters from the hub. Implementations must be safe for
// concurrent use.
type Metrics interface {
	ConnectionOpened()
	ConnectionClosed()
	RoomsLive(n int)
	PresenceLive(n int)
	IntentHandled(intent string)
	IntentRejected(code string)
	EventDropped(event string)
	RatingApplied()
}

// NopMetrics discards everything.
type NopMetrics struct{}

func (NopMetrics) ConnectionOpened()     {}
func (NopMetrics) ConnectionClosed()     {}
func (NopMetrics) RoomsLive(int)         {}
func (NopMetrics) PresenceLive(int)      {}
func (NopMetrics) IntentHandled(string)  {}
func (NopMetrics) IntentRejected(string) {}
func (NopMetrics) EventDropped(string)   {}
func (NopMetrics) RatingApplied()        {}
