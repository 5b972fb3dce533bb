package events

// Aggregator collects events while a step is computed and publishes the whole
// batch at once. The in-progress queue belongs to whoever is computing; the
// published batch belongs to readers until the next Publish.
type Aggregator struct {
	queue     []Event
	published []Event
}

func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Add appends to the in-progress queue.
func (a *Aggregator) Add(e Event) {
	a.queue = append(a.queue, e)
}

// Pending is the number of events waiting for the next Publish.
func (a *Aggregator) Pending() int { return len(a.queue) }

// Publish makes the in-progress queue the published batch and starts a fresh
// queue. The previous published slice is dropped rather than reused, so
// callers still holding it keep seeing the old contents.
func (a *Aggregator) Publish() []Event {
	a.published = a.queue
	a.queue = nil
	return a.published
}

// Published returns the last published batch. Callers must not modify it.
func (a *Aggregator) Published() []Event { return a.published }

// Reset drops both queues.
func (a *Aggregator) Reset() {
	a.queue = nil
	a.published = nil
}
