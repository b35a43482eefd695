// Nested Source File Generator
//
// This tool generates a large Kotlin-like source file for profiling the
// bracket balance scanner. The output is balanced unless a mismatch line is
// requested.
//
// Usage:
//
//	go run main.go > large.kt
//	go run main.go 20000000 > large.kt       # Specify target size in bytes
//	go run main.go 20000000 500 > broken.kt  # Break the bracket balance at line 500
package main

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"
)

const (
	defaultTargetSize = 10 * 1024 * 1024 // 10MB
	maxDepth          = 12
)

var (
	openers = []string{"(", "[", "{"}
	closers = map[string]string{"(": ")", "[": "]", "{": "}"}

	statements = []string{
		`val name = "capstone"`,
		`println('x')`,
		"val raw = `template`",
		`listOf(1, 2, 3).map { it * 2 }`,
		`requests[index] = Request(id, "pending")`,
	}
)

func main() {
	targetSize := defaultTargetSize
	breakAt := 0

	if len(os.Args) > 1 {
		size, err := strconv.Atoi(os.Args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid size: %v\n", err)
			os.Exit(1)
		}
		targetSize = size
	}
	if len(os.Args) > 2 {
		line, err := strconv.Atoi(os.Args[2])
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid line: %v\n", err)
			os.Exit(1)
		}
		breakAt = line
	}

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()

	r := rand.New(rand.NewSource(42))
	var stack []string
	written, line := 0, 1

	emit := func(s string) {
		n, _ := w.WriteString(s)
		written += n
		line += strings.Count(s, "\n")
	}

	for written < targetSize {
		indent := strings.Repeat("    ", len(stack))

		switch {
		case line == breakAt:
			emit(indent + "broken(]\n")
		case len(stack) < maxDepth && r.Intn(3) == 0:
			open := openers[r.Intn(len(openers))]
			stack = append(stack, open)
			emit(fmt.Sprintf("%sblock%d %s\n", indent, line, open))
		case len(stack) > 0 && r.Intn(4) == 0:
			open := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			emit(strings.Repeat("    ", len(stack)) + closers[open] + "\n")
		default:
			emit(indent + statements[r.Intn(len(statements))] + "\n")
		}
	}

	for len(stack) > 0 {
		open := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		emit(strings.Repeat("    ", len(stack)) + closers[open] + "\n")
	}
}
