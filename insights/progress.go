// ABOUTME: Cosmetic staged loading messages shown while an audit runs
// ABOUTME: Pure stage lookup plus a stoppable ticker for streaming surfaces
package insights

import (
	"sync"
	"time"
)

// StageInterval is how long each loading message stays up.
const StageInterval = 1200 * time.Millisecond

// Stages are the loading messages in display order.
var Stages = []string{
	"Pruning network meta-data...",
	"Scanning interaction patterns...",
	"Synthesizing persona profiles...",
	"Finalizing flash strategy...",
}

// StageAt returns the stage index for the time elapsed since the audit
// started, holding at the last stage.
func StageAt(elapsed time.Duration) int {
	if elapsed < 0 {
		return 0
	}
	idx := int(elapsed / StageInterval)
	if idx >= len(Stages) {
		return len(Stages) - 1
	}
	return idx
}

// Ticker emits each stage index after the first as it is reached. It
// stops emitting at the last stage and exits when Stop is called.
type Ticker struct {
	C <-chan int

	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// NewTicker starts a stage ticker with the given interval; zero means
// StageInterval.
func NewTicker(interval time.Duration) *Ticker {
	if interval <= 0 {
		interval = StageInterval
	}
	c := make(chan int)
	t := &Ticker{
		C:    c,
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	go t.run(c, interval)
	return t
}

func (t *Ticker) run(c chan<- int, interval time.Duration) {
	defer close(t.done)

	tick := time.NewTicker(interval)
	defer tick.Stop()

	for stage := 1; stage < len(Stages); stage++ {
		select {
		case <-t.stop:
			return
		case <-tick.C:
		}
		select {
		case <-t.stop:
			return
		case c <- stage:
		}
	}
	<-t.stop
}

// Stop ends the ticker and waits for its goroutine. Safe to call twice.
func (t *Ticker) Stop() {
	t.stopOnce.Do(func() { close(t.stop) })
	<-t.done
}
