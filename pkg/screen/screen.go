package screen

import (
	"context"
	"reflect"
	"sort"
	"strings"
)

// Screen is a navigation destination. Screens are treated as immutable
// values once handed to a router.
type Screen any

// Dialog is an element shown in the overlay slot above the stack.
type Dialog any

// Keyed is implemented by screens that override their type-derived key.
type Keyed interface {
	ScreenKey() string
}

// External is implemented by screens that live outside the back stack, for
// example another process or a system activity. Navigating to one launches
// it instead of pushing it.
type External interface {
	Launch(ctx context.Context) error
}

// Key returns the key used to match s on the back stack. Keyed screens
// supply their own; everything else is identified by its package path and
// type name with pointer indirections removed.
func Key(s Screen) string {
	if k, ok := s.(Keyed); ok {
		return k.ScreenKey()
	}
	return TypeKey(s)
}

// TypeKey returns the type-derived identifier of v, ignoring any override.
func TypeKey(v any) string {
	if v == nil {
		return "<nil>"
	}
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Name() == "" {
		return t.String()
	}
	if t.PkgPath() == "" {
		return t.Name()
	}
	return t.PkgPath() + "." + t.Name()
}

// Keys maps screens to their keys, preserving order.
func Keys(screens []Screen) []string {
	keys := make([]string, len(screens))
	for i, s := range screens {
		keys[i] = Key(s)
	}
	return keys
}

// Route is a generic, data-only screen identified by name. It is what
// navigation scripts and deep links decode into.
type Route struct {
	Name   string
	Params map[string]string
}

// ScreenKey implements Keyed.
func (r Route) ScreenKey() string {
	return r.Name
}

// Param returns the named parameter, or "" when absent.
func (r Route) Param(name string) string {
	return r.Params[name]
}

// String renders the route as name?k=v&k=v with sorted parameters.
func (r Route) String() string {
	if len(r.Params) == 0 {
		return r.Name
	}
	names := make([]string, 0, len(r.Params))
	for k := range r.Params {
		names = append(names, k)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(r.Name)
	for i, k := range names {
		if i == 0 {
			b.WriteByte('?')
		} else {
			b.WriteByte('&')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(r.Params[k])
	}
	return b.String()
}
