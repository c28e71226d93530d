// Package assert holds the constructor preconditions, a failed assertion is a
// programming error and panics.
package assert

import (
	"fmt"
	"reflect"
)

// NotNil panics when value is nil, including a typed nil pointer, map, slice,
// func or chan stored in an interface.
func NotNil(name string, value any) {
	if value == nil {
		panic(fmt.Sprintf("%s: expected value to be not nil", name))
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		if v.IsNil() {
			panic(fmt.Sprintf("%s: expected %T to be not nil", name, value))
		}
	}
}

func NotEmpty(name, str string) {
	if str == "" {
		panic(fmt.Sprintf("%s: expected string to be non-empty", name))
	}
}
