package balance

import "bytes"

// Scan checks that (), [] and {} in src are balanced and correctly nested.
//
// Scanning stops at the first closing delimiter that does not match the top
// of the stack; the open delimiters at that point, including the unmatched
// top, are left in Report.Stack. Quote and backtick counts always cover the
// whole of src. Scan never fails: invalid UTF-8 sequences are treated as
// ordinary characters, use Decode first to reject them.
func Scan(filename string, src []byte) *Report {
	report := &Report{
		Filename:     filename,
		DoubleQuotes: bytes.Count(src, []byte{'"'}),
		SingleQuotes: bytes.Count(src, []byte{'\''}),
		Backticks:    bytes.Count(src, []byte{'`'}),
	}

	c := newCursor(filename, src)
	var stack []Delimiter

	for {
		ch, pos, ok := c.next()
		if !ok {
			break
		}

		switch {
		case IsOpen(ch):
			stack = append(stack, Delimiter{Char: ch, Pos: pos})

		case IsClose(ch):
			if len(stack) == 0 || stack[len(stack)-1].Char != Opener(ch) {
				mismatch := &Mismatch{Pos: pos, Found: ch}
				if len(stack) > 0 {
					top := stack[len(stack)-1]
					mismatch.Top = &top
				}
				report.Mismatch = mismatch
				report.Stack = stack
				return report
			}
			stack = stack[:len(stack)-1]
		}
	}

	report.Stack = stack
	return report
}

// Delimiters returns every delimiter character in src in source order,
// without matching them against each other.
func Delimiters(filename string, src []byte) []Delimiter {
	var delims []Delimiter

	c := newCursor(filename, src)
	for {
		ch, pos, ok := c.next()
		if !ok {
			return delims
		}
		if IsOpen(ch) || IsClose(ch) {
			delims = append(delims, Delimiter{Char: ch, Pos: pos})
		}
	}
}
