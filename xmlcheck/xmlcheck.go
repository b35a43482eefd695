// Package xmlcheck reports XML files under a directory that are not well-formed.
//
// Every file whose name ends in .xml (any case) is tokenized to the end. Only
// well-formedness is checked: tag nesting, attribute syntax and uniqueness,
// entities, namespace prefix binding and a single document element. Schemas
// are not validated.
package xmlcheck

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html/charset"

	"github.com/robinvdvleuten/devcheck/telemetry"
)

// DefaultRoot is the Android resource directory checked when no root is given.
var DefaultRoot = filepath.Join("app", "src", "main", "res")

// ParseError describes why a single file is not well-formed XML.
type ParseError struct {
	Path       string
	Line       int // 0 when the decoder gave no line
	Message    string
	Underlying error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// Detail is the message prefixed with its line, if known.
func (e *ParseError) Detail() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

func (e *ParseError) Unwrap() error {
	return e.Underlying
}

// Result collects the outcome of checking a directory tree.
type Result struct {
	Root     string
	Files    int           // Number of XML files parsed
	Failures []*ParseError // In walk order
}

// OK reports whether every XML file parsed.
func (r *Result) OK() bool {
	return len(r.Failures) == 0
}

// WriteTo writes the human-readable summary to w.
func (r *Result) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Scanning res directory: %s\n", r.Root)
	for _, f := range r.Failures {
		fmt.Fprintf(&buf, "PARSE ERROR: %s\n", f.Path)
		fmt.Fprintf(&buf, "   %s\n", f.Detail())
	}

	if r.OK() {
		buf.WriteString("All XML files parsed OK\n")
	} else {
		fmt.Fprintf(&buf, "Found %d XML parse errors\n", len(r.Failures))
	}

	return buf.WriteTo(w)
}

// Check walks root and parses every XML file below it. Parse failures are
// collected in the result; the returned error is only set when root cannot
// be walked or ctx is cancelled.
func Check(ctx context.Context, root string) (*Result, error) {
	root = filepath.Clean(root)

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to access %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}

	timer := telemetry.StartTimer(ctx, fmt.Sprintf("xml %s", root))
	defer timer.End()

	result := &Result{Root: root}

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !IsXMLFile(path) {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		result.Files++
		if perr := ParseFile(path); perr != nil {
			result.Failures = append(result.Failures, perr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// IsXMLFile reports whether path names an XML file by extension.
func IsXMLFile(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".xml")
}

// ParseFile checks a single file. Read failures are reported as a ParseError
// too, the same way an unparseable file is.
func ParseFile(path string) *ParseError {
	f, err := os.Open(path)
	if err != nil {
		return &ParseError{Path: path, Message: err.Error(), Underlying: err}
	}
	defer f.Close()

	if err := Parse(f); err != nil {
		perr := &ParseError{Path: path, Message: err.Error(), Underlying: err}

		var syntaxErr *xml.SyntaxError
		if errors.As(err, &syntaxErr) {
			perr.Line = syntaxErr.Line
			perr.Message = syntaxErr.Msg
		}
		return perr
	}

	return nil
}

// Parse reads r to the end and returns the first well-formedness error.
// Tags must nest, attribute names must be unique within an element and every
// namespace prefix must be declared in scope. Encodings other than UTF-8 are
// honoured when the XML declaration names them.
func Parse(r io.Reader) error {
	dec := xml.NewDecoder(r)
	dec.Strict = true
	dec.CharsetReader = charset.NewReaderLabel

	var open []element
	roots := 0

	for {
		tok, err := dec.RawToken()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}

		line, _ := dec.InputPos()

		switch t := tok.(type) {
		case xml.StartElement:
			if len(open) == 0 {
				roots++
				if roots > 1 {
					return &xml.SyntaxError{Msg: "junk after document element", Line: line}
				}
			}

			var parent map[string]string
			if len(open) > 0 {
				parent = open[len(open)-1].ns
			}
			el := element{name: t.Name, ns: declareNamespaces(parent, t.Attr)}
			if err := el.check(t.Attr); err != nil {
				err.Line = line
				return err
			}
			open = append(open, el)

		case xml.EndElement:
			if len(open) == 0 {
				return &xml.SyntaxError{Msg: "unexpected end element </" + qualified(t.Name) + ">", Line: line}
			}
			top := open[len(open)-1]
			if top.name != t.Name {
				return &xml.SyntaxError{Msg: "element <" + qualified(top.name) + "> closed by </" + qualified(t.Name) + ">", Line: line}
			}
			open = open[:len(open)-1]

		case xml.CharData:
			if len(open) == 0 && len(bytes.TrimSpace(t)) > 0 {
				return &xml.SyntaxError{Msg: "text outside of document element", Line: line}
			}
		}
	}

	if len(open) > 0 {
		line, _ := dec.InputPos()
		return &xml.SyntaxError{Msg: "unexpected EOF", Line: line}
	}
	if roots == 0 {
		return &xml.SyntaxError{Msg: "no element found", Line: 1}
	}

	return nil
}

// element is an open tag with the namespace prefixes in scope inside it.
type element struct {
	name xml.Name          // Raw name, Space holds the prefix
	ns   map[string]string // prefix -> namespace URI
}

// check rejects unbound prefixes on the element and its attributes, and
// attributes that share a name after prefix resolution.
func (el element) check(attrs []xml.Attr) *xml.SyntaxError {
	if err := el.bound(el.name); err != nil {
		return err
	}

	seen := make(map[xml.Name]bool, len(attrs))
	for _, attr := range attrs {
		if attr.Name.Space != "xmlns" {
			if err := el.bound(attr.Name); err != nil {
				return err
			}
		}

		key := attr.Name
		if uri, ok := el.ns[key.Space]; ok && key.Space != "" && key.Space != "xmlns" {
			key.Space = uri
		}
		if seen[key] {
			return &xml.SyntaxError{Msg: "duplicate attribute " + qualified(attr.Name)}
		}
		seen[key] = true
	}

	return nil
}

func (el element) bound(name xml.Name) *xml.SyntaxError {
	if name.Space == "" || name.Space == "xml" {
		return nil
	}
	if name.Space == "xmlns" {
		return &xml.SyntaxError{Msg: "reserved prefix xmlns used in " + qualified(name)}
	}
	if _, ok := el.ns[name.Space]; !ok {
		return &xml.SyntaxError{Msg: "unbound prefix " + name.Space + " in " + qualified(name)}
	}
	return nil
}

// declareNamespaces returns the prefix scope of an element: its parent's
// scope plus any xmlns:prefix attributes it declares.
func declareNamespaces(parent map[string]string, attrs []xml.Attr) map[string]string {
	ns := parent
	copied := false
	for _, attr := range attrs {
		if attr.Name.Space != "xmlns" {
			continue
		}
		if !copied {
			ns = make(map[string]string, len(parent)+1)
			for k, v := range parent {
				ns[k] = v
			}
			copied = true
		}
		ns[attr.Name.Local] = attr.Value
	}
	return ns
}

func qualified(name xml.Name) string {
	if name.Space == "" {
		return name.Local
	}
	return name.Space + ":" + name.Local
}
