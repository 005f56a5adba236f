package assert

import (
	"fmt"
	"reflect"
)

// NotNil panics on nil, a nil pointer or map wrapped in an interface counts
// as nil too since calling through it would panic later anyway.
func NotNil(value any) {
	if isNil(value) {
		panic(fmt.Sprintf("expected a non-nil value, got %T", value))
	}
}

// NonNegative panics when a configured duration or count is below zero.
func NonNegative[T ~int | ~int64 | ~float64](value T, name string) {
	if value < 0 {
		panic(fmt.Sprintf("expected %s to be non-negative, got %v", name, value))
	}
}

func isNil(value any) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}
