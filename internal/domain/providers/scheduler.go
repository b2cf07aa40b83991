package providers

import "time"

// Scheduler runs a callback once after a delay. It stands in for the fixed
// latency the front end shows while "analyzing"; there is no cancellation.
type Scheduler interface {
	After(d time.Duration, fn func())
}
