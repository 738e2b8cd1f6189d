package constellation

import (
	"math"
	"math/rand/v2"
	"time"
)

const (
	// maxQueueDepth bounds the growth queue. Requests beyond it are dropped.
	maxQueueDepth = 3
	// materializeDelay is how long a queued request waits before its node appears.
	materializeDelay = 1200 * time.Millisecond
)

// schedulerState is the lifecycle of a growth scheduler.
type schedulerState uint8

const (
	stateUninitialized schedulerState = iota
	stateRunning
	stateStopped
)

// QueuedNode is a pending growth request.
type QueuedNode struct {
	ParentID   int
	Delay      time.Duration
	EnqueuedAt time.Duration
}

// due reports whether the request may be materialized at now.
func (q QueuedNode) due(now time.Duration) bool {
	return now-q.EnqueuedAt >= q.Delay
}

// growthScheduler paces node creation through a small FIFO of timed requests.
type growthScheduler struct {
	state       schedulerState
	queue       []QueuedNode
	lastEnqueue time.Duration

	// counters for Stats and metrics
	enqueued int
	dropped  int
}

// start moves the scheduler to running and resets the growth timer and
// counters.
func (g *growthScheduler) start(now time.Duration) {
	g.state = stateRunning
	g.queue = g.queue[:0]
	g.lastEnqueue = now
	g.enqueued, g.dropped = 0, 0
}

// stop discards every pending request. Their nodes never appear.
func (g *growthScheduler) stop() {
	g.state = stateStopped
	g.queue = g.queue[:0]
}

func (g *growthScheduler) running() bool {
	return g.state == stateRunning
}

// growthInterval returns the time between growth requests for the given
// rate. Rates too small to represent saturate at the longest Duration.
func growthInterval(rate float64) time.Duration {
	d := float64(time.Second) / rate
	if d >= math.MaxInt64 {
		return math.MaxInt64
	}
	return time.Duration(d)
}

// enqueueResult describes what an enqueue attempt did.
type enqueueResult uint8

const (
	enqueueIdle    enqueueResult = iota // not due, not running, or at capacity
	enqueueAdded                        // a request was queued
	enqueueDropped                      // due, but the queue was full
)

// maybeEnqueue queues a request for a random parent when the growth interval
// has elapsed. The attempt is dropped when the queue is full and the timer is
// left untouched, so the next tick tries again.
func (g *growthScheduler) maybeEnqueue(now time.Duration, nodeCount int, cfg *Config, rng *rand.Rand) enqueueResult {
	if !g.running() || nodeCount == 0 || nodeCount >= cfg.MaxNodes || cfg.NodeGrowthRate <= 0 {
		return enqueueIdle
	}
	if now-g.lastEnqueue < growthInterval(cfg.NodeGrowthRate) {
		return enqueueIdle
	}
	if len(g.queue) >= maxQueueDepth {
		g.dropped++
		return enqueueDropped
	}
	g.queue = append(g.queue, QueuedNode{
		ParentID:   rng.IntN(nodeCount),
		Delay:      materializeDelay,
		EnqueuedAt: now,
	})
	g.lastEnqueue = now
	g.enqueued++
	return enqueueAdded
}

// popDue removes and returns the queue head when its delay has elapsed. At
// most one request is released per call, strictly in FIFO order.
func (g *growthScheduler) popDue(now time.Duration) (QueuedNode, bool) {
	if len(g.queue) == 0 || !g.queue[0].due(now) {
		return QueuedNode{}, false
	}
	head := g.queue[0]
	copy(g.queue, g.queue[1:])
	g.queue = g.queue[:len(g.queue)-1]
	return head, true
}

// depth returns the number of pending requests.
func (g *growthScheduler) depth() int {
	return len(g.queue)
}
