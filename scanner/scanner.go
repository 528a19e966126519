// Package scanner implements a line classifier for ThethaCore documents.
//
// The scanner walks the source text line by line, skipping blank lines and
// comments, and classifies each remaining line as either a section header
// or a key-value pair. It deliberately avoids regular expressions; each
// shape is recognized with explicit prefix/suffix checks and a validated
// identifier scan, so the exact point of failure is always known.
package scanner

import (
	"fmt"
	"strings"
)

// Class identifies the shape of a scanned line.
type Class int

const (
	// EOF is returned once the source is exhausted.
	EOF Class = iota
	// Header is a section header line, e.g. <database<advanced>>.
	Header
	// KeyValue is a key-value line, e.g. name == "value".
	KeyValue
)

func (c Class) String() string {
	switch c {
	case EOF:
		return "EOF"
	case Header:
		return "header"
	case KeyValue:
		return "key-value"
	}
	return fmt.Sprintf("Class(%d)", int(c))
}

// Line is a single classified line.
type Line struct {
	// Number is the 1-based line number in the source.
	Number int
	Class  Class
	// Path holds the section name segments for a Header line, outermost
	// first; the canonical path is the segments joined with "/".
	Path []string
	// Key and Value hold the identifier and the raw value token for a
	// KeyValue line. Value is trimmed but otherwise undecoded.
	Key   string
	Value string
	// Text is the trimmed source text of the line.
	Text string
}

// CanonicalPath returns the section path segments joined with "/".
func (l Line) CanonicalPath() string {
	return strings.Join(l.Path, "/")
}

// Error is a line classification failure.
type Error struct {
	Line int    // 1-based line number
	Text string // trimmed text of the offending line
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("syntax error on line %d: %s: %q", e.Line, e.Msg, e.Text)
}

// Scanner reads a ThethaCore source text line by line. Use Init to set the
// source and Scan to obtain classified lines. The zero Scanner scans an
// empty source.
type Scanner struct {
	src  string
	off  int // byte offset of the next unread line
	line int // number of the last line handed out
}

// Init prepares the scanner to read src. It may be called on a used
// Scanner to reuse it for a new source.
func (s *Scanner) Init(src string) {
	s.src = src
	s.off = 0
	s.line = 0
}

// nextLine returns the next raw source line without its terminator, and
// reports whether one was available.
func (s *Scanner) nextLine() (string, bool) {
	if s.off >= len(s.src) {
		return "", false
	}
	rest := s.src[s.off:]
	i := strings.IndexByte(rest, '\n')
	var raw string
	if i < 0 {
		raw = rest
		s.off = len(s.src)
	} else {
		raw = rest[:i]
		s.off += i + 1
	}
	s.line++
	return strings.TrimSuffix(raw, "\r"), true
}

// Scan returns the next classified line. At the end of the source it
// returns a Line with Class EOF. A line that is neither ignorable nor a
// recognized shape stops the scan with a *Error.
func (s *Scanner) Scan() (Line, error) {
	for {
		raw, ok := s.nextLine()
		if !ok {
			return Line{Number: s.line, Class: EOF}, nil
		}
		trimmed := strings.TrimSpace(raw)
		if ignorable(trimmed) {
			continue
		}
		if path, ok := headerPath(trimmed); ok {
			if err := checkSegments(path); err != "" {
				return Line{}, &Error{Line: s.line, Text: trimmed, Msg: err}
			}
			return Line{Number: s.line, Class: Header, Path: path, Text: trimmed}, nil
		}
		if key, val, ok := splitKeyValue(trimmed); ok {
			return Line{Number: s.line, Class: KeyValue, Key: key, Value: val, Text: trimmed}, nil
		}
		return Line{}, &Error{Line: s.line, Text: trimmed, Msg: "not a section header or key-value pair"}
	}
}

// ignorable reports whether a trimmed line contributes nothing: empty
// lines and lines starting with "#" or "//".
func ignorable(trimmed string) bool {
	return trimmed == "" ||
		strings.HasPrefix(trimmed, "#") ||
		strings.HasPrefix(trimmed, "//")
}

// headerPath matches the section header shape: the whole line wrapped in
// a single <...> pair with non-empty interior. The interior may open
// nested names with further '<' tokens; <a<b>> denotes the path a/b.
// Trailing '>' characters close the nested opens and carry no content of
// their own.
func headerPath(trimmed string) ([]string, bool) {
	if len(trimmed) < 3 || trimmed[0] != '<' || trimmed[len(trimmed)-1] != '>' {
		return nil, false
	}
	interior := trimmed[1 : len(trimmed)-1]
	// Strip the closers of nested opens so <a<b>> and <a<b> decompose
	// identically.
	interior = strings.TrimRight(interior, ">")
	if strings.TrimSpace(interior) == "" {
		return nil, false
	}
	segs := strings.Split(interior, "<")
	for i, seg := range segs {
		segs[i] = strings.TrimSpace(seg)
	}
	return segs, true
}

// checkSegments validates decomposed header segments, returning a message
// for the first offense or "" if all are well-formed.
func checkSegments(segs []string) string {
	for _, seg := range segs {
		if seg == "" {
			return "empty section name"
		}
		if strings.ContainsAny(seg, ">") {
			return "malformed section nesting"
		}
	}
	return ""
}

// splitKeyValue matches the key-value shape: an identifier, optional
// spaces, "==", optional spaces, and a non-empty remainder.
func splitKeyValue(trimmed string) (key, value string, ok bool) {
	n := identLen(trimmed)
	if n == 0 {
		return "", "", false
	}
	rest := strings.TrimLeft(trimmed[n:], " \t")
	if !strings.HasPrefix(rest, "==") {
		return "", "", false
	}
	val := strings.TrimSpace(rest[2:])
	if val == "" {
		return "", "", false
	}
	return trimmed[:n], val, true
}

// identLen returns the length of the leading identifier (letters, digits,
// underscore), which may be zero.
func identLen(s string) int {
	i := 0
	for i < len(s) && isIdent(s[i]) {
		i++
	}
	return i
}

func isIdent(c byte) bool {
	return c == '_' ||
		'a' <= c && c <= 'z' ||
		'A' <= c && c <= 'Z' ||
		'0' <= c && c <= '9'
}
