package registry

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sort"
)

var (
	contextType = reflect.TypeOf((*context.Context)(nil)).Elem()
	errorType   = reflect.TypeOf((*error)(nil)).Elem()
)

// ErrUnsupportedOperation is returned when a client has no operation with
// the requested name.
var ErrUnsupportedOperation = errors.New("unsupported operation")

// isOperation reports whether a bound method has the SDK operation shape
// (ctx, *XInput, ...func(*Options)) (*XOutput, error).
func isOperation(t reflect.Type) bool {
	if t.NumIn() != 3 || !t.IsVariadic() || t.NumOut() != 2 {
		return false
	}
	if t.In(0) != contextType || t.Out(1) != errorType {
		return false
	}
	in, out := t.In(1), t.Out(0)
	return in.Kind() == reflect.Ptr && in.Elem().Kind() == reflect.Struct &&
		out.Kind() == reflect.Ptr && out.Elem().Kind() == reflect.Struct
}

// Verbs returns the names of all API operations of a client, sorted.
func Verbs(client any) []string {
	v := reflect.ValueOf(client)
	t := v.Type()

	var verbs []string
	for i := 0; i < t.NumMethod(); i++ {
		m := t.Method(i)
		if !m.IsExported() {
			continue
		}
		if isOperation(v.Method(i).Type()) {
			verbs = append(verbs, m.Name)
		}
	}
	sort.Strings(verbs)
	return verbs
}

// Method returns the bound operation method of a client.
func Method(client any, operation string) (reflect.Value, error) {
	m := reflect.ValueOf(client).MethodByName(operation)
	if !m.IsValid() || !isOperation(m.Type()) {
		return reflect.Value{}, fmt.Errorf("%w: %s", ErrUnsupportedOperation, operation)
	}
	return m, nil
}

// NewInput allocates a zero input struct for an operation method and
// returns a pointer to it.
func NewInput(method reflect.Value) reflect.Value {
	return reflect.New(method.Type().In(1).Elem())
}

// Call invokes an operation method with the given input pointer.
func Call(ctx context.Context, method reflect.Value, input reflect.Value) (any, error) {
	out := method.Call([]reflect.Value{reflect.ValueOf(ctx), input})
	if err, ok := out[1].Interface().(error); ok && err != nil {
		return nil, err
	}
	if out[0].IsNil() {
		return nil, nil
	}
	return out[0].Interface(), nil
}
