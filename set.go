package thethacore

import (
	"fmt"
	"io"
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"

	"gopkg.in/warnings.v0"
)

type textUnmarshaler interface {
	UnmarshalText(text []byte) error
}

type tag struct {
	ident string
}

func newTag(t string) tag {
	idx := strings.IndexRune(t, ',')
	if idx < 0 {
		idx = len(t)
	}
	id := t[0:idx]
	return tag{ident: id}
}

func fieldFold(v reflect.Value, name string) reflect.Value {
	var n string
	r0, _ := utf8.DecodeRuneInString(name)
	if unicode.IsLetter(r0) && !unicode.IsLower(r0) && !unicode.IsUpper(r0) {
		n = "X"
	}
	n += strings.Replace(name, "-", "_", -1)
	return v.FieldByNameFunc(func(fieldName string) bool {
		if !v.FieldByName(fieldName).CanSet() {
			return false
		}
		f, _ := v.Type().FieldByName(fieldName)
		t := newTag(f.Tag.Get("thetha"))
		if t.ident != "" {
			return strings.EqualFold(t.ident, name)
		}
		return strings.EqualFold(n, fieldName)
	})
}

// assign stores the typed value v into the addressable destination dest.
// Null leaves dest at its zero value. Strings prefer UnmarshalText when
// the destination implements it.
func assign(dest reflect.Value, v Value) error {
	if dest.Kind() == reflect.Ptr {
		if dest.IsNil() {
			dest.Set(reflect.New(dest.Type().Elem()))
		}
		return assign(dest.Elem(), v)
	}
	switch v.Kind() {
	case Null:
		dest.Set(reflect.Zero(dest.Type()))
		return nil
	case String:
		s, _ := v.Str()
		if dest.CanAddr() {
			if tu, ok := dest.Addr().Interface().(textUnmarshaler); ok {
				return tu.UnmarshalText([]byte(s))
			}
		}
		if dest.Kind() == reflect.String {
			dest.SetString(s)
			return nil
		}
	case Int:
		n, _ := v.Int64()
		switch dest.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			if dest.OverflowInt(n) {
				return fmt.Errorf("value %d overflows %v", n, dest.Type())
			}
			dest.SetInt(n)
			return nil
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			if n < 0 || dest.OverflowUint(uint64(n)) {
				return fmt.Errorf("value %d overflows %v", n, dest.Type())
			}
			dest.SetUint(uint64(n))
			return nil
		case reflect.Float32, reflect.Float64:
			dest.SetFloat(float64(n))
			return nil
		}
	case Float:
		f, _ := v.Float64()
		switch dest.Kind() {
		case reflect.Float32, reflect.Float64:
			if dest.OverflowFloat(f) {
				return fmt.Errorf("value %g overflows %v", f, dest.Type())
			}
			dest.SetFloat(f)
			return nil
		}
	case Bool:
		b, _ := v.Bool()
		if dest.Kind() == reflect.Bool {
			dest.SetBool(b)
			return nil
		}
	case List:
		elems, _ := v.Elems()
		if dest.Kind() == reflect.Slice {
			out := reflect.MakeSlice(dest.Type(), len(elems), len(elems))
			for i, e := range elems {
				if err := assign(out.Index(i), e); err != nil {
					return err
				}
			}
			dest.Set(out)
			return nil
		}
	case Object:
		fields, _ := v.Fields()
		switch dest.Kind() {
		case reflect.Map:
			mt := dest.Type()
			if mt.Key().Kind() != reflect.String {
				return fmt.Errorf("map for object value must have string keys, not %v", mt.Key())
			}
			out := reflect.MakeMap(mt)
			for _, k := range fields.Keys() {
				e, _ := fields.Get(k)
				ev := reflect.New(mt.Elem()).Elem()
				if err := assign(ev, e); err != nil {
					return err
				}
				out.SetMapIndex(reflect.ValueOf(k), ev)
			}
			dest.Set(out)
			return nil
		case reflect.Struct:
			for _, k := range fields.Keys() {
				e, _ := fields.Get(k)
				fv := fieldFold(dest, k)
				if !fv.IsValid() {
					return fmt.Errorf("no field for object key %q in %v", k, dest.Type())
				}
				if err := assign(fv, e); err != nil {
					return err
				}
			}
			return nil
		}
	}
	return fmt.Errorf("cannot assign %v value to %v", v.Kind(), dest.Type())
}

// set stores one variable of one section into the config struct.
// Nested section paths use the same model as subsections: the field for
// the first path segment must be a map with string keys and
// pointer-to-struct values, keyed by the remainder of the path.
func set(c *warnings.Collector, cfg interface{}, sect, sub, name string, value Value) error {
	vPCfg := reflect.ValueOf(cfg)
	if vPCfg.Kind() != reflect.Ptr || vPCfg.Elem().Kind() != reflect.Struct {
		panic(fmt.Errorf("config must be a pointer to a struct"))
	}
	vCfg := vPCfg.Elem()
	vSect := fieldFold(vCfg, sect)
	if !vSect.IsValid() {
		err := extraData{section: sect}
		return c.Collect(err)
	}
	if vSect.Kind() == reflect.Map {
		vst := vSect.Type()
		if vst.Key().Kind() != reflect.String ||
			vst.Elem().Kind() != reflect.Ptr ||
			vst.Elem().Elem().Kind() != reflect.Struct {
			panic(fmt.Errorf("map field for section must have string keys and "+
				"pointer-to-struct values: section %q", sect))
		}
		if vSect.IsNil() {
			vSect.Set(reflect.MakeMap(vst))
		}
		k := reflect.ValueOf(sub)
		pv := vSect.MapIndex(k)
		if !pv.IsValid() {
			vType := vSect.Type().Elem().Elem()
			pv = reflect.New(vType)
			vSect.SetMapIndex(k, pv)
		}
		vSect = pv.Elem()
	} else if vSect.Kind() == reflect.Ptr && vSect.Type().Elem().Kind() == reflect.Struct {
		if vSect.IsNil() {
			vSect.Set(reflect.New(vSect.Type().Elem()))
		}
		vSect = vSect.Elem()
		if sub != "" {
			return fmt.Errorf("invalid nested section: section %q path %q", sect, sub)
		}
	} else if vSect.Kind() != reflect.Struct {
		panic(fmt.Errorf("field for section must be a map or a struct: "+
			"section %q", sect))
	} else if sub != "" {
		return fmt.Errorf("invalid nested section: section %q path %q", sect, sub)
	}
	vName := fieldFold(vSect, name)
	if !vName.IsValid() {
		err := extraData{section: joinPath(sect, sub), variable: &name}
		return c.Collect(err)
	}
	if err := assign(vName, value); err != nil {
		return fmt.Errorf("failed to set section %q variable %q: %v",
			joinPath(sect, sub), name, err)
	}
	return nil
}

func joinPath(sect, sub string) string {
	if sub == "" {
		return sect
	}
	return sect + "/" + sub
}

// splitPath splits a canonical section path into its first segment and
// the remainder.
func splitPath(path string) (sect, sub string) {
	if i := strings.IndexByte(path, '/'); i >= 0 {
		return path[:i], path[i+1:]
	}
	return path, ""
}

func readInto(config interface{}, doc *Document) error {
	c := warnings.NewCollector(isFatal)
	for _, path := range doc.Sections() {
		s, _ := doc.Section(path)
		sect, sub := splitPath(path)
		for _, name := range s.Keys() {
			v, _ := s.Get(name)
			if err := set(c, config, sect, sub, name, v); err != nil {
				return err
			}
		}
	}
	return c.Done()
}

// ReadInto parses ThethaCore data from reader and sets the values into
// the corresponding fields in config.
//
// Config must be a pointer to a struct.
// Each section corresponds to a struct field in config, and each variable
// in a section corresponds to a data field in the section struct.
// The name of the field must match the name of the section or variable,
// ignoring case, or be selected with a `thetha:"name"` struct tag.
// Underscores in field names match hyphens or underscores in names.
//
// For nested sections the corresponding field in config must be a map,
// rather than a struct, with string keys and pointer-to-struct values.
// Values for a nested section path are stored in the map with the
// remainder of the path used as the map key: with a field Database, the
// section "database/advanced" is stored at Database["advanced"].
//
// Typed values assign to fields as follows. Strings assign to string
// fields, or to any type implementing encoding.TextUnmarshaler. Integers
// assign to integer and float fields, floats to float fields, booleans
// to bool fields. Arrays assign to slice fields element by element, and
// objects assign to map fields with string keys or to nested struct
// fields. Null leaves the field at its zero value.
//
// Sections or variables without a corresponding field are collected as
// non-fatal errors; use FatalOnly to discard them and keep only fatal
// failures.
func ReadInto(config interface{}, reader io.Reader) error {
	doc, err := ParseReader(reader)
	if err != nil {
		return err
	}
	return readInto(config, doc)
}

// ReadStringInto reads ThethaCore data from str and sets the values into
// the corresponding fields in config.
// See ReadInto for a detailed description of how values are set.
func ReadStringInto(config interface{}, str string) error {
	doc, err := Parse(str)
	if err != nil {
		return err
	}
	return readInto(config, doc)
}

// ReadFileInto reads ThethaCore data from the file filename and sets the
// values into the corresponding fields in config.
// See ReadInto for a detailed description of how values are set.
func ReadFileInto(config interface{}, filename string) error {
	doc, err := ParseFile(filename)
	if err != nil {
		return err
	}
	return readInto(config, doc)
}

// DocumentInto sets the values of an already parsed document into the
// corresponding fields in config, following the same rules as ReadInto.
func DocumentInto(config interface{}, doc *Document) error {
	return readInto(config, doc)
}
