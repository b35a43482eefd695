package telemetry

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// slowThreshold marks operations highlighted in reports.
const slowThreshold = 100 * time.Millisecond

// TimingCollector collects a forest of timed operations.
type TimingCollector struct {
	mu    sync.Mutex
	roots []*timerNode
	open  []*timerNode // Running timers, innermost last
	count int
	now   func() time.Time
}

type timerNode struct {
	name     string
	start    time.Time
	end      time.Time
	children []*timerNode
}

// NewTimingCollector creates a new timing collector.
func NewTimingCollector() *TimingCollector {
	return &TimingCollector{now: time.Now}
}

// Start begins timing an operation.
func (c *TimingCollector) Start(name string) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	node := &timerNode{name: name, start: c.now()}
	if len(c.open) > 0 {
		parent := c.open[len(c.open)-1]
		parent.children = append(parent.children, node)
	} else {
		c.roots = append(c.roots, node)
	}
	return c.push(node)
}

// Len returns the number of timers started so far.
func (c *TimingCollector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}

// Report outputs the timing tree to a writer.
func (c *TimingCollector) Report(w io.Writer, styles Styler) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, root := range c.roots {
		name := root.name
		if styles != nil {
			name = styles.Keyword(name)
		}
		_, _ = fmt.Fprintf(w, "%s: %s\n", name, formatDuration(root.duration()))

		for i, child := range root.children {
			formatNode(w, child, "", i == len(root.children)-1, styles)
		}
	}
}

func (c *TimingCollector) push(node *timerNode) *timingTimer {
	c.open = append(c.open, node)
	c.count++
	return &timingTimer{collector: c, node: node}
}

func (c *TimingCollector) end(node *timerNode) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !node.end.IsZero() {
		return
	}
	node.end = c.now()

	for i := len(c.open) - 1; i >= 0; i-- {
		if c.open[i] == node {
			c.open = append(c.open[:i], c.open[i+1:]...)
			break
		}
	}
}

func (n *timerNode) duration() time.Duration {
	if n.end.IsZero() {
		return 0
	}
	return n.end.Sub(n.start)
}

type timingTimer struct {
	collector *TimingCollector
	node      *timerNode
}

// End stops the timer. Ending a timer twice keeps the first end time.
func (t *timingTimer) End() {
	t.collector.end(t.node)
}

// Child creates a nested timer.
func (t *timingTimer) Child(name string) Timer {
	c := t.collector
	c.mu.Lock()
	defer c.mu.Unlock()

	node := &timerNode{name: name, start: c.now()}
	t.node.children = append(t.node.children, node)
	return c.push(node)
}
