package telemetry

import (
	"fmt"
	"io"
	"time"
)

// formatNode writes node and its children as tree lines, e.g.
//
//	balance main.kt: 3ms
//	├─ read main.kt: 0ms
//	└─ scan (5120 bytes): 2ms
func formatNode(w io.Writer, node *timerNode, prefix string, isLast bool, styles Styler) {
	duration := node.duration()

	branch, extension := "├─ ", "│  "
	if isLast {
		branch, extension = "└─ ", "   "
	}

	timing := formatDuration(duration)
	if styles != nil {
		if duration >= slowThreshold {
			timing = styles.Warning(timing)
		} else {
			timing = styles.Dim(timing)
		}
		_, _ = fmt.Fprintf(w, "%s%s: %s\n", styles.Dim(prefix+branch), node.name, timing)
	} else {
		_, _ = fmt.Fprintf(w, "%s%s%s: %s\n", prefix, branch, node.name, timing)
	}

	for i, child := range node.children {
		formatNode(w, child, prefix+extension, i == len(node.children)-1, styles)
	}
}

// formatDuration shows milliseconds below one second and seconds above.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.0fms", float64(d)/float64(time.Millisecond))
	}
	return fmt.Sprintf("%.2fs", float64(d)/float64(time.Second))
}
