package thethacore

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

// doc builds an expected Document. args is a sequence of section paths,
// each followed by alternating key, Value pairs until the next path
// (paths are marked by a leading '<').
func doc(args ...interface{}) *Document {
	d := newDocument()
	var cur *Section
	for i := 0; i < len(args); {
		if s, ok := args[i].(string); ok && strings.HasPrefix(s, "<") {
			cur = d.open(strings.TrimPrefix(s, "<"))
			i++
			continue
		}
		cur.set(args[i].(string), args[i+1].(Value))
		i += 2
	}
	return d
}

type parsetest struct {
	src  string
	exp  *Document
	ok   bool
	line int // expected error line when !ok; 0 to skip the check
}

var parsetests = []struct {
	group string
	tests []parsetest
}{{"sections", []parsetest{
	{"<general>", doc("<general"), true, 0},
	{"<general>\nname == 1", doc("<general", "name", IntValue(1)), true, 0},
	{"<database<advanced>>\npool_size == 10\ntimeout == 30",
		doc("<database/advanced", "pool_size", IntValue(10), "timeout", IntValue(30)), true, 0},
	// reopening merges instead of replacing
	{"<a>\nx == 1\n<b>\ny == 2\n<a>\nz == 3",
		doc("<a", "x", IntValue(1), "z", IntValue(3), "<b", "y", IntValue(2)), true, 0},
	{"<database<advanced>>\nx == 1\n<database<advanced>>\ny == 2",
		doc("<database/advanced", "x", IntValue(1), "y", IntValue(2)), true, 0},
	// duplicate key: last write wins
	{"<a>\nx == 1\nx == 2", doc("<a", "x", IntValue(2)), true, 0},
	// empty section is kept
	{"<a>\n<b>\nx == 1", doc("<a", "<b", "x", IntValue(1)), true, 0},
}}, {"ignorable lines", []parsetest{
	{"", doc(), true, 0},
	{"\n\n   \n", doc(), true, 0},
	{"# comment\n// comment", doc(), true, 0},
	{"<a>\n# c\nx == 1\n\n// c\ny == 2",
		doc("<a", "x", IntValue(1), "y", IntValue(2)), true, 0},
}}, {"values", []parsetest{
	{"<g>\napp_name == \"TestApp\"\nversion == 1.0\nenabled == True",
		doc("<g", "app_name", StringValue("TestApp"),
			"version", FloatValue(1.0), "enabled", BoolValue(true)), true, 0},
	{"<g>\nempty == \"\"\nnothing == Null",
		doc("<g", "empty", StringValue(""), "nothing", NullValue()), true, 0},
	{"<g>\nitems == [\"one\", \"two\", \"three\"]",
		doc("<g", "items", ListValue(StringValue("one"), StringValue("two"),
			StringValue("three"))), true, 0},
	{"<g>\nheaders == { \"Authorization\" == \"Bearer token\", \"Content-Type\" == \"application/json\" }",
		doc("<g", "headers", ObjectValue(obj(
			"Authorization", StringValue("Bearer token"),
			"Content-Type", StringValue("application/json"),
		))), true, 0},
}}, {"syntax errors", []parsetest{
	{"bogus line", nil, false, 1},
	{"<a>\nname = 1", nil, false, 2},
	{"<a>\nname ==", nil, false, 2},
	{"<>", nil, false, 1},
	{"<a>\nx == 1\n<b>\nwat\ny == 2", nil, false, 4},
}}, {"outside section", []parsetest{
	{"name == 1", nil, false, 1},
	{"# comment\nname == 1", nil, false, 2},
	// a later header does not heal an earlier orphan
	{"name == 1\n<a>\nx == 2", nil, false, 1},
}}, {"value errors", []parsetest{
	{"<a>\nx == bogus", nil, false, 2},
	{"<a>\nx == 42x", nil, false, 2},
	{"<a>\nx == [1, nope]", nil, false, 2},
	{"<a>\nx == { \"k\" }", nil, false, 2},
	{"<a>\nok == 1\n\nbad == { == }", nil, false, 4},
}},
}

func TestParse(t *testing.T) {
	for _, tg := range parsetests {
		for i, tt := range tg.tests {
			got, err := Parse(tt.src)
			if tt.ok {
				if err != nil {
					t.Errorf("%s:%d fail: got error %v, wanted ok", tg.group, i, err)
					continue
				}
				if !reflect.DeepEqual(got, tt.exp) {
					t.Errorf("%s:%d fail: got %#v, wanted %#v", tg.group, i, got, tt.exp)
				}
				continue
			}
			if err == nil {
				t.Errorf("%s:%d fail: got %#v, wanted error", tg.group, i, got)
				continue
			}
			if got != nil {
				t.Errorf("%s:%d fail: error with partial document %#v", tg.group, i, got)
			}
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Errorf("%s:%d fail: got %T, wanted *ParseError", tg.group, i, err)
				continue
			}
			if tt.line != 0 && perr.Line != tt.line {
				t.Errorf("%s:%d fail: error %q on line %d, wanted line %d",
					tg.group, i, err, perr.Line, tt.line)
			}
		}
	}
}

func TestParseErrorKinds(t *testing.T) {
	tests := []struct {
		src  string
		kind ErrorKind
	}{
		{"wat", ErrorSyntax},
		{"x == 1", ErrorOutsideSection},
		{"<a>\nx == nope", ErrorValue},
	}
	for _, tt := range tests {
		_, err := Parse(tt.src)
		perr, ok := err.(*ParseError)
		if !ok {
			t.Errorf("%q: got %T, wanted *ParseError", tt.src, err)
			continue
		}
		if perr.Kind != tt.kind {
			t.Errorf("%q: got kind %v, wanted %v", tt.src, perr.Kind, tt.kind)
		}
	}
}

// parsing the same text twice yields structurally equal documents
func TestParseIdempotent(t *testing.T) {
	src := "<a>\nx == [1, {\"k\" == 2.5}]\n<a<b>>\ny == True\n"
	d1, err := Parse(src)
	if err != nil {
		t.Fatal(err)
	}
	d2, err := Parse(src)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(d1, d2) {
		t.Errorf("got %#v and %#v, wanted equal documents", d1, d2)
	}
}

func TestDocumentOrder(t *testing.T) {
	d, err := Parse("<b>\nz == 1\na == 2\n<a>\n<b>\nm == 3\n")
	if err != nil {
		t.Fatal(err)
	}
	if got, want := d.Sections(), []string{"b", "a"}; !reflect.DeepEqual(got, want) {
		t.Errorf("section order: got %v, wanted %v", got, want)
	}
	b, _ := d.Section("b")
	if got, want := b.Keys(), []string{"z", "a", "m"}; !reflect.DeepEqual(got, want) {
		t.Errorf("key order: got %v, wanted %v", got, want)
	}
}

func TestParseReader(t *testing.T) {
	d, err := ParseReader(strings.NewReader("<a>\nx == 1\n"))
	if err != nil {
		t.Fatal(err)
	}
	s, ok := d.Section("a")
	if !ok {
		t.Fatal("section a missing")
	}
	if v, _ := s.Get("x"); !reflect.DeepEqual(v, IntValue(1)) {
		t.Errorf("got %v, wanted 1", v)
	}
}

func TestParseFile(t *testing.T) {
	d, err := ParseFile("testdata/example.thtc")
	if err != nil {
		t.Fatal(err)
	}
	g, ok := d.Section("general")
	if !ok {
		t.Fatal("section general missing")
	}
	if v, _ := g.Get("app_name"); !reflect.DeepEqual(v, StringValue("TestApp")) {
		t.Errorf("app_name: got %v", v)
	}
	adv, ok := d.Section("database/advanced")
	if !ok {
		t.Fatal("section database/advanced missing")
	}
	if v, _ := adv.Get("pool_size"); !reflect.DeepEqual(v, IntValue(10)) {
		t.Errorf("pool_size: got %v", v)
	}
}

func TestParseFileMissing(t *testing.T) {
	_, err := ParseFile("testdata/no_such_file.thtc")
	perr, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("got %T, wanted *ParseError", err)
	}
	if perr.Kind != ErrorSource {
		t.Errorf("got kind %v, wanted %v", perr.Kind, ErrorSource)
	}
	if perr.Unwrap() == nil {
		t.Error("source error does not wrap the underlying cause")
	}
}
