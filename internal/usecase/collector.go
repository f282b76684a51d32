package usecase

import "tpp-demo/internal/domain"

// Collector holds what a flow's screens gathered until the merge consumes it.
// Later writes overwrite earlier ones. It belongs to one flow session and is
// not safe for concurrent use on its own.
type Collector struct {
	result domain.PendingResult
}

func NewCollector() *Collector {
	return &Collector{result: domain.NoResult()}
}

func (c *Collector) Set(result domain.PendingResult) {
	c.result = result
}

func (c *Collector) Result() domain.PendingResult {
	return c.result
}

func (c *Collector) Reset() {
	c.result = domain.NoResult()
}
