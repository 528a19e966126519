package thethacore

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies the type of a Value.
type Kind int

const (
	// Null is the Null literal.
	Null Kind = iota
	// Bool is a True/False literal.
	Bool
	// Int is a base-10 signed 64-bit integer.
	Int
	// Float is a 64-bit floating-point number.
	Float
	// String is a double-quoted string.
	String
	// List is an ordered sequence of values.
	List
	// Object is a mapping from string keys to values.
	Object
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Int:
		return "int"
	case Float:
		return "float"
	case String:
		return "string"
	case List:
		return "list"
	case Object:
		return "object"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Value is a single typed ThethaCore value. Every element of a List or
// Fields payload is itself a fully decoded Value; no partially parsed
// nodes escape the decoder.
//
// The zero Value is Null.
type Value struct {
	kind Kind
	str  string
	num  int64
	flt  float64
	b    bool
	list []Value
	obj  *Fields
}

// NullValue returns the Null value.
func NullValue() Value { return Value{kind: Null} }

// BoolValue returns a Bool value.
func BoolValue(b bool) Value { return Value{kind: Bool, b: b} }

// IntValue returns an Int value.
func IntValue(n int64) Value { return Value{kind: Int, num: n} }

// FloatValue returns a Float value.
func FloatValue(f float64) Value { return Value{kind: Float, flt: f} }

// StringValue returns a String value.
func StringValue(s string) Value { return Value{kind: String, str: s} }

// ListValue returns a List value holding elems.
func ListValue(elems ...Value) Value {
	if elems == nil {
		elems = []Value{}
	}
	return Value{kind: List, list: elems}
}

// ObjectValue returns an Object value holding fields.
func ObjectValue(fields *Fields) Value {
	if fields == nil {
		fields = NewFields()
	}
	return Value{kind: Object, obj: fields}
}

// Kind returns the kind of the value.
func (v Value) Kind() Kind { return v.kind }

// Str returns the string payload; ok is false if the value is not a String.
func (v Value) Str() (s string, ok bool) { return v.str, v.kind == String }

// Int64 returns the integer payload; ok is false if the value is not an Int.
func (v Value) Int64() (n int64, ok bool) { return v.num, v.kind == Int }

// Float64 returns the float payload; ok is false if the value is not a Float.
func (v Value) Float64() (f float64, ok bool) { return v.flt, v.kind == Float }

// Bool returns the boolean payload; ok is false if the value is not a Bool.
func (v Value) Bool() (b bool, ok bool) { return v.b, v.kind == Bool }

// Elems returns the list payload; ok is false if the value is not a List.
func (v Value) Elems() (elems []Value, ok bool) { return v.list, v.kind == List }

// Fields returns the object payload; ok is false if the value is not an Object.
func (v Value) Fields() (fields *Fields, ok bool) { return v.obj, v.kind == Object }

// String renders the value in source-like form, for diagnostics.
func (v Value) String() string {
	switch v.kind {
	case Null:
		return "Null"
	case Bool:
		if v.b {
			return "True"
		}
		return "False"
	case Int:
		return strconv.FormatInt(v.num, 10)
	case Float:
		return strconv.FormatFloat(v.flt, 'g', -1, 64)
	case String:
		return strconv.Quote(v.str)
	case List:
		parts := make([]string, len(v.list))
		for i, e := range v.list {
			parts[i] = e.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case Object:
		parts := make([]string, 0, v.obj.Len())
		for _, k := range v.obj.Keys() {
			e, _ := v.obj.Get(k)
			parts = append(parts, strconv.Quote(k)+" == "+e.String())
		}
		return "{" + strings.Join(parts, ", ") + "}"
	}
	return fmt.Sprintf("Value(kind=%d)", int(v.kind))
}

// Fields is a mapping from string keys to values that remembers the order
// in which keys were first set. Overwriting a key keeps its original
// position; order is preserved for display and has no bearing on
// equality of the data.
type Fields struct {
	keys []string
	vals map[string]Value
}

// NewFields returns an empty Fields.
func NewFields() *Fields {
	return &Fields{vals: make(map[string]Value)}
}

// Set stores v under key, overwriting any previous value.
func (f *Fields) Set(key string, v Value) {
	if _, dup := f.vals[key]; !dup {
		f.keys = append(f.keys, key)
	}
	f.vals[key] = v
}

// Get returns the value stored under key.
func (f *Fields) Get(key string) (Value, bool) {
	v, ok := f.vals[key]
	return v, ok
}

// Keys returns the keys in the order they were first set. The returned
// slice is shared; callers must not modify it.
func (f *Fields) Keys() []string { return f.keys }

// Len returns the number of keys.
func (f *Fields) Len() int { return len(f.keys) }

// Section is one section of a document: its canonical path and its
// key-value pairs in the order the keys were first assigned.
type Section struct {
	path   string
	fields *Fields
}

// Path returns the canonical section path, e.g. "database/advanced".
func (s *Section) Path() string { return s.path }

// Get returns the value assigned to key.
func (s *Section) Get(key string) (Value, bool) { return s.fields.Get(key) }

// Keys returns the section's keys in first-assignment order.
func (s *Section) Keys() []string { return s.fields.Keys() }

// Len returns the number of keys in the section.
func (s *Section) Len() int { return s.fields.Len() }

func (s *Section) set(key string, v Value) { s.fields.Set(key, v) }

// Document is a parsed ThethaCore configuration: a mapping from canonical
// section path to section, remembering the order in which sections were
// first opened. A Document is fully formed on return from Parse and is
// not modified afterwards.
type Document struct {
	paths    []string
	sections map[string]*Section
}

func newDocument() *Document {
	return &Document{sections: make(map[string]*Section)}
}

// Section returns the section at the given canonical path.
func (d *Document) Section(path string) (*Section, bool) {
	s, ok := d.sections[path]
	return s, ok
}

// Sections returns the canonical section paths in first-open order. The
// returned slice is shared; callers must not modify it.
func (d *Document) Sections() []string { return d.paths }

// Len returns the number of sections.
func (d *Document) Len() int { return len(d.paths) }

// open returns the section at path, creating an empty one on first use.
// Reopening is idempotent: existing keys are kept.
func (d *Document) open(path string) *Section {
	if s, ok := d.sections[path]; ok {
		return s
	}
	s := &Section{path: path, fields: NewFields()}
	d.paths = append(d.paths, path)
	d.sections[path] = s
	return s
}
