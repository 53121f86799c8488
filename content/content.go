// Package content implements the type-erased, clone-capable value
// container used for node outputs, inputs, and environment entries.
package content

import (
	"fmt"
	"reflect"
)

// Cloner is implemented by values that know how to deep-copy themselves.
// Content.Clone uses it when present; otherwise the stored value is
// copied by value (safe for the comparable/immutable payloads the engine
// expects to cross node boundaries).
type Cloner interface {
	Clone() any
}

// Content stores at most one typed value. The zero value is empty.
type Content struct {
	val any
	typ reflect.Type
}

// New wraps v in a Content.
func New(v any) Content {
	c := Content{}
	c.val = v
	if v != nil {
		c.typ = reflect.TypeOf(v)
	}
	return c
}

// Empty reports whether the Content holds no value.
func (c Content) Empty() bool {
	return c.typ == nil
}

// Put stores v, replacing whatever was previously held. Go has no
// ownership type to enforce a once-only discipline statically; callers
// that need it should construct a fresh Content with New instead of
// reusing one across Puts.
func Put[T any](c *Content, v T) {
	c.val = v
	c.typ = reflect.TypeOf(v)
}

// Get returns the stored value as T. ok is false if the Content is empty
// or holds a different type.
func Get[T any](c Content) (v T, ok bool) {
	if c.typ == nil {
		return v, false
	}
	got, isT := c.val.(T)
	if !isT {
		return v, false
	}
	return got, true
}

// Take returns the stored value as T and clears the Content. ok is false
// under the same conditions as Get, in which case the Content is left
// untouched.
func Take[T any](c *Content) (v T, ok bool) {
	got, isT := Get[T](*c)
	if !isT {
		return v, false
	}
	*c = Content{}
	return got, true
}

// Clone deep-copies the stored value when it implements Cloner;
// otherwise it returns a shallow copy, matching the Go value semantics
// of whatever concrete type is stored.
func (c Content) Clone() Content {
	if c.typ == nil {
		return Content{}
	}
	if cl, ok := c.val.(Cloner); ok {
		return Content{val: cl.Clone(), typ: c.typ}
	}
	return Content{val: c.val, typ: c.typ}
}

// TypeName reports the stored value's type, for diagnostics.
func (c Content) TypeName() string {
	if c.typ == nil {
		return "<empty>"
	}
	return c.typ.String()
}

func (c Content) String() string {
	if c.typ == nil {
		return "Content(<empty>)"
	}
	return fmt.Sprintf("Content(%s: %v)", c.typ, c.val)
}
