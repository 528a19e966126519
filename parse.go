package thethacore

import (
	"io"
	"os"

	"gopkg.in/thethacore.v1/scanner"
)

// Parse parses a ThethaCore document from src.
//
// Parsing is all-or-nothing: the first offending line aborts the parse
// and no partial document is returned. Errors are reported as *ParseError
// with the 1-based line number. Each call owns its own cursor state, so
// independent parses may run concurrently.
func Parse(src string) (*Document, error) {
	doc := newDocument()
	var s scanner.Scanner
	s.Init(src)
	cur := "" // canonical path of the current section; empty until the first header
	for {
		ln, err := s.Scan()
		if err != nil {
			if serr, ok := err.(*scanner.Error); ok {
				return nil, &ParseError{Line: serr.Line, Kind: ErrorSyntax, Text: serr.Text}
			}
			return nil, err
		}
		switch ln.Class {
		case scanner.EOF:
			return doc, nil
		case scanner.Header:
			cur = ln.CanonicalPath()
			doc.open(cur)
		case scanner.KeyValue:
			if cur == "" {
				return nil, &ParseError{Line: ln.Number, Kind: ErrorOutsideSection, Text: ln.Text}
			}
			v, err := decodeValue(ln.Value, ln.Number)
			if err != nil {
				return nil, err
			}
			sect, ok := doc.Section(cur)
			if !ok {
				// Headers open their section before becoming current, so
				// this indicates lost tracking, not a user mistake.
				return nil, &ParseError{Line: ln.Number, Kind: ErrorSectionMissing, Text: cur}
			}
			sect.set(ln.Key, v)
		}
	}
}

// ParseReader reads all of r and parses it as a ThethaCore document.
func ParseReader(r io.Reader) (*Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, &ParseError{Kind: ErrorSource, Text: "reader", Err: err}
	}
	return Parse(string(src))
}

// ParseString parses a ThethaCore document from str.
// It is an alias for Parse kept for symmetry with ReadStringInto.
func ParseString(str string) (*Document, error) {
	return Parse(str)
}

// ParseFile reads the file at path and parses it as a ThethaCore
// document. A read failure is reported as a *ParseError of kind
// ErrorSource wrapping the underlying error.
func ParseFile(path string) (*Document, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, &ParseError{Kind: ErrorSource, Text: path, Err: err}
	}
	return Parse(string(src))
}
