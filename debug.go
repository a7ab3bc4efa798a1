package uix

import (
	"fmt"
	"os"
	"time"
)

// debugStats holds per-frame timing and draw-call metrics.
// Only populated when Scene.debug is true.
type debugStats struct {
	traverseTime time.Duration
	sortTime     time.Duration
	submitTime   time.Duration
	overlayTime  time.Duration
	commandCount int
	batchCount   int
	imageRebuilt int
}

// debugLog prints timing and draw-call stats to stderr.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	total := stats.traverseTime + stats.sortTime + stats.submitTime + stats.overlayTime
	_, _ = fmt.Fprintf(os.Stderr,
		"[uix] traverse: %v | sort: %v | submit: %v | overlay: %v | total: %v\n",
		stats.traverseTime, stats.sortTime, stats.submitTime, stats.overlayTime, total)
	_, _ = fmt.Fprintf(os.Stderr,
		"[uix] commands: %d | draw calls: %d | image rebuilds: %d\n",
		stats.commandCount, stats.batchCount, stats.imageRebuilt)
}

// debugCheckDisposed panics when a disposed node is used in a tree
// operation. Only called in debug mode.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("uix debug: %s on disposed node %q (ID was %d)", op, n.Name, n.ID))
	}
}

const debugMaxTreeDepth = 32

// debugCheckTreeDepth warns on stderr if n sits deeper than debugMaxTreeDepth.
func debugCheckTreeDepth(n *Node) {
	if depth := HierarchyDepth(n) + 1; depth > debugMaxTreeDepth {
		_, _ = fmt.Fprintf(os.Stderr, "[uix] warning: tree depth %d exceeds %d (node %q)\n",
			depth, debugMaxTreeDepth, n.Name)
	}
}

const debugMaxChildCount = 1000

// debugCheckChildCount warns on stderr if n has too many children.
func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		_, _ = fmt.Fprintf(os.Stderr, "[uix] warning: node %q has %d children (threshold %d)\n",
			n.Name, len(n.children), debugMaxChildCount)
	}
}

// countImageRebuilds sums rebuild counters below n and resets them.
func countImageRebuilds(n *Node) int {
	count := 0
	if n.Image != nil {
		count = n.Image.rebuilds
		n.Image.rebuilds = 0
	}
	for _, c := range n.children {
		count += countImageRebuilds(c)
	}
	return count
}
