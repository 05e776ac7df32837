package component

import (
	"fmt"
	"maps"
	"reflect"
	"slices"
	"unicode"
	"unicode/utf8"
)

// PropertySetter is implemented by instances that accept arbitrary properties
// by key. Inject uses it when no setter method and no exported field match.
type PropertySetter interface {
	SetProperty(key string, value any)
}

// MethodProvider is implemented by instances whose class carries methods as
// behavior fields, e.g. a descriptor field "setAdder" holding a func.
type MethodProvider interface {
	Method(name string) (any, bool)
}

// Inject applies props to target with setter preference. For each key, in
// sorted order:
//
//   - a declared method set<Key> returned by a MethodProvider target is called,
//     either as func(value) or as func(target, value);
//   - otherwise a Go method Set<Key> (key with its first rune upper-cased)
//     taking exactly one argument is called with the value;
//   - otherwise an exported, settable struct field <Key> is assigned;
//   - otherwise target.SetProperty(key, value) is used if target implements
//     PropertySetter.
//
// Keys with a nil value are skipped so existing members are never cleared.
func Inject(target any, props map[string]any) error {
	if target == nil || len(props) == 0 {
		return nil
	}

	v := reflect.ValueOf(target)
	for _, key := range slices.Sorted(maps.Keys(props)) {
		val := props[key]
		if val == nil || key == "" {
			continue
		}
		if err := injectOne(target, v, key, val); err != nil {
			return err
		}
	}
	return nil
}

func injectOne(target any, v reflect.Value, key string, val any) error {
	exported := capitalize(key)
	arg := reflect.ValueOf(val)

	if mp, ok := target.(MethodProvider); ok {
		if m, ok := mp.Method("set" + exported); ok {
			if called, err := callDeclared(target, key, m, arg); called {
				return err
			}
		}
	}

	if m := v.MethodByName("Set" + exported); m.IsValid() {
		mt := m.Type()
		if mt.NumIn() == 1 && !mt.IsVariadic() {
			if !arg.Type().AssignableTo(mt.In(0)) {
				return UnassignablePropertyError{Key: key, Type: fmt.Sprintf("%T", target)}
			}
			m.Call([]reflect.Value{arg})
			return nil
		}
	}

	if assignField(v, exported, arg) {
		return nil
	}

	if ps, ok := target.(PropertySetter); ok {
		ps.SetProperty(key, val)
		return nil
	}
	return UnassignablePropertyError{Key: key, Type: fmt.Sprintf("%T", target)}
}

// callDeclared invokes a setter declared as a behavior field. It reports false
// when m is not a func of a supported shape so Inject can fall through. A
// trailing error result is returned to the caller.
func callDeclared(target any, key string, m any, arg reflect.Value) (bool, error) {
	fn := reflect.ValueOf(m)
	if fn.Kind() != reflect.Func || fn.IsNil() || fn.Type().IsVariadic() {
		return false, nil
	}

	ft := fn.Type()
	var in []reflect.Value
	switch ft.NumIn() {
	case 1:
		in = []reflect.Value{arg}
	case 2:
		self := reflect.ValueOf(target)
		if !self.Type().AssignableTo(ft.In(0)) {
			return false, nil
		}
		in = []reflect.Value{self, arg}
	default:
		return false, nil
	}
	if !arg.Type().AssignableTo(ft.In(len(in) - 1)) {
		return true, UnassignablePropertyError{Key: key, Type: fmt.Sprintf("%T", target)}
	}

	out := fn.Call(in)
	if n := len(out); n > 0 && ft.Out(n-1) == errorType && !out[n-1].IsNil() {
		return true, out[n-1].Interface().(error)
	}
	return true, nil
}

var errorType = reflect.TypeFor[error]()

func assignField(v reflect.Value, name string, arg reflect.Value) bool {
	if v.Kind() != reflect.Pointer || v.IsNil() {
		return false
	}
	ev := v.Elem()
	if ev.Kind() != reflect.Struct {
		return false
	}

	sf, ok := ev.Type().FieldByName(name)
	if !ok || !sf.IsExported() {
		return false
	}
	fv, err := ev.FieldByIndexErr(sf.Index)
	if err != nil || !fv.CanSet() || !arg.Type().AssignableTo(fv.Type()) {
		return false
	}
	fv.Set(arg)
	return true
}

// capitalize upper-cases the first rune of s.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
