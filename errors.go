package geojson

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Path locates a value inside a JSON document. Each element is either an
// object key (string) or an array index (int).
type Path []any

// String renders the path as features[2].geometry.coordinates.
func (p Path) String() string {
	b := &strings.Builder{}
	for _, el := range p {
		switch v := el.(type) {
		case int:
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(v))
			b.WriteByte(']')
		default:
			if b.Len() > 0 {
				b.WriteByte('.')
			}
			fmt.Fprint(b, v)
		}
	}
	return b.String()
}

// Pointer renders the path as an RFC 6901 JSON Pointer.
func (p Path) Pointer() string {
	if len(p) == 0 {
		return ""
	}
	b := &strings.Builder{}
	for _, el := range p {
		b.WriteByte('/')
		switch v := el.(type) {
		case int:
			b.WriteString(strconv.Itoa(v))
		case string:
			v = strings.ReplaceAll(v, "~", "~0")
			b.WriteString(strings.ReplaceAll(v, "/", "~1"))
		default:
			fmt.Fprint(b, v)
		}
	}
	return b.String()
}

// DecodeError reports where and why a JSON value could not be decoded.
type DecodeError struct {
	Expected string // description of the accepted shape
	Found    string // kind (and for scalars, value) of what was there
	Path     Path   // location from the decode root
	Cause    error  // optional: the error returned by a properties decoder
}

func (e *DecodeError) Error() string {
	msg := "geojson: expected " + e.Expected + ", found " + e.Found
	if len(e.Path) > 0 {
		msg += " at " + e.Path.String()
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap exposes the properties decoder error, if any.
func (e *DecodeError) Unwrap() error {
	return e.Cause
}

// Is makes every DecodeError match ErrDecode.
func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}

// AsDecodeError extracts a *DecodeError from err.
func AsDecodeError(err error) (*DecodeError, bool) {
	var de *DecodeError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// NewDecodeError returns a DecodeError for value v that did not match the
// expected shape. Properties decoders use it to report their own failures.
func NewDecodeError(expected string, v any, path ...any) *DecodeError {
	return &DecodeError{Expected: expected, Found: describe(v), Path: Path(path)}
}

// at returns err with the given path elements prepended to its path.
// A foreign error is wrapped into a DecodeError located at the elements.
func at(err error, elems ...any) error {
	if err == nil {
		return nil
	}
	if de, ok := err.(*DecodeError); ok {
		path := make(Path, 0, len(elems)+len(de.Path))
		path = append(path, elems...)
		path = append(path, de.Path...)
		return &DecodeError{Expected: de.Expected, Found: de.Found, Path: path, Cause: de.Cause}
	}
	return &DecodeError{Expected: "valid value", Found: "rejected value", Path: Path(elems), Cause: err}
}

// SyntaxError is returned by Unmarshal when the input is not JSON.
type SyntaxError struct {
	Err error
}

func (e *SyntaxError) Error() string {
	return "geojson: invalid JSON text: " + e.Err.Error()
}

func (e *SyntaxError) Unwrap() []error {
	return []error{ErrSyntax, e.Err}
}
