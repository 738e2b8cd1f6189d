package constellation

import (
	"fmt"
	"io"
	"os"
	"time"
)

// debugStats holds per-tick timing and graph counts.
// Only populated when Scene.debug is true.
type debugStats struct {
	tickTime time.Duration
	stats    Stats
}

// debugOut is where debug lines go. Tests replace it.
var debugOut io.Writer = os.Stderr

// debugLog prints timing and graph stats to stderr.
func (s *Scene) debugLog(d debugStats) {
	if !s.debug {
		return
	}
	_, _ = fmt.Fprintf(debugOut,
		"[constellation] tick: %v | nodes: %d | edges: %d | queued: %d | dropped: %d\n",
		d.tickTime, d.stats.Nodes, d.stats.Edges, d.stats.Queued, d.stats.Dropped)
}
