package thethacore

import (
	"errors"
	"strconv"
	"strings"
)

// maxDepth bounds the nesting of arrays and objects. Decoding recurses
// once per level, so unbounded input must not be allowed to exhaust the
// stack.
const maxDepth = 200

var errTooDeep = errors.New("nesting exceeds " + strconv.Itoa(maxDepth) + " levels")

// decodeValue decodes a trimmed, non-empty value token into a Value.
// line is the number of the enclosing key-value line; the format has no
// sub-line positions, so nested failures are attributed to it.
//
// Shapes are tried in a fixed order since they can overlap (a quoted
// "True" must stay a string, digits inside brackets must stay list
// elements): literal, quoted string, integer, float, array, object.
func decodeValue(token string, line int) (Value, error) {
	return decode(token, line, 0)
}

func decode(token string, line int, depth int) (Value, error) {
	if depth > maxDepth {
		return Value{}, &ParseError{Line: line, Kind: ErrorValue, Text: token, Err: errTooDeep}
	}

	switch token {
	case "True":
		return BoolValue(true), nil
	case "False":
		return BoolValue(false), nil
	case "Null":
		return NullValue(), nil
	}

	if len(token) >= 2 && token[0] == '"' && token[len(token)-1] == '"' {
		// Content between the quotes, verbatim; no escape processing.
		return StringValue(token[1 : len(token)-1]), nil
	}

	if n, err := strconv.ParseInt(token, 10, 64); err == nil {
		return IntValue(n), nil
	}

	if f, err := strconv.ParseFloat(token, 64); err == nil {
		return FloatValue(f), nil
	}

	if len(token) >= 2 && token[0] == '[' && token[len(token)-1] == ']' {
		return decodeList(token[1:len(token)-1], line, depth)
	}

	if len(token) >= 2 && token[0] == '{' && token[len(token)-1] == '}' {
		return decodeObject(token[1:len(token)-1], line, depth)
	}

	return Value{}, valueError(line, token)
}

func decodeList(interior string, line, depth int) (Value, error) {
	if strings.TrimSpace(interior) == "" {
		return ListValue(), nil
	}
	var elems []Value
	for _, item := range splitTop(interior, ',') {
		v, err := decode(strings.TrimSpace(item), line, depth+1)
		if err != nil {
			return Value{}, err
		}
		elems = append(elems, v)
	}
	return ListValue(elems...), nil
}

func decodeObject(interior string, line, depth int) (Value, error) {
	fields := NewFields()
	if strings.TrimSpace(interior) == "" {
		return ObjectValue(fields), nil
	}
	for _, pair := range splitTop(interior, ',') {
		k, v, err := decodePair(pair, line, depth)
		if err != nil {
			return Value{}, err
		}
		fields.Set(k, v)
	}
	return ObjectValue(fields), nil
}

// decodePair decodes one "key == value" object member. The pair must
// contain exactly one top-level assignment marker; keys may be wrapped
// in one pair of double quotes, which is stripped.
func decodePair(pair string, line, depth int) (string, Value, error) {
	parts := splitTopAssign(pair)
	if len(parts) != 2 {
		return "", Value{}, &ParseError{
			Line: line,
			Kind: ErrorValue,
			Text: strings.TrimSpace(pair),
			Err:  errors.New("invalid object pair"),
		}
	}
	key := strings.TrimSpace(parts[0])
	if len(key) >= 2 && key[0] == '"' && key[len(key)-1] == '"' {
		key = key[1 : len(key)-1]
	}
	v, err := decode(strings.TrimSpace(parts[1]), line, depth+1)
	if err != nil {
		return "", Value{}, err
	}
	return key, v, nil
}

// splitTop splits s on sep occurring at nesting depth zero. Depth is
// tracked across '[', ']', '{', '}' and a double-quote toggle, so
// separators inside strings or nested composites do not split. On
// unbalanced input the remainder is returned as the final part and the
// recursive decode reports the offending text.
func splitTop(s string, sep byte) []string {
	var parts []string
	depth := 0
	inStr := false
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '"' {
			inStr = !inStr
			continue
		}
		if inStr {
			continue
		}
		switch c {
		case '[', '{':
			depth++
		case ']', '}':
			depth--
		case sep:
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}

// splitTopAssign splits s on each top-level "==" marker.
func splitTopAssign(s string) []string {
	var parts []string
	depth := 0
	inStr := false
	start := 0
	for i := 0; i+1 < len(s); i++ {
		c := s[i]
		if c == '"' {
			inStr = !inStr
			continue
		}
		if inStr {
			continue
		}
		switch c {
		case '[', '{':
			depth++
		case ']', '}':
			depth--
		case '=':
			if depth == 0 && s[i+1] == '=' {
				parts = append(parts, s[start:i])
				start = i + 2
				i++ // skip the second '='
			}
		}
	}
	return append(parts, s[start:])
}
