package execution

import (
	"fmt"
	"reflect"
	"strconv"
)

// IsArray returns true when value can be a target of Add: any slice, or a map
// keyed by strings. Fixed size arrays are excluded since they cannot grow.
func IsArray(value interface{}) bool {
	if value == nil {
		return false
	}
	rType := reflect.TypeOf(value)
	switch rType.Kind() {
	case reflect.Slice:
		return true
	case reflect.Map:
		return rType.Key().Kind() == reflect.String
	}
	return false
}

func (c *Context) addElement(key string, current interface{}, inner *string, data interface{}) (interface{}, error) {
	if !IsArray(current) {
		return nil, &NotArrayError{Key: key, Type: fmt.Sprintf("%T", current)}
	}
	rValue := reflect.ValueOf(current)
	if rValue.Kind() == reflect.Slice {
		return c.addToSlice(key, rValue, inner, data)
	}
	return c.addToMap(key, rValue, inner, data)
}

func (c *Context) addToSlice(key string, slice reflect.Value, inner *string, data interface{}) (interface{}, error) {
	elem, err := c.element(key, slice.Type().Elem(), data)
	if err != nil {
		return nil, err
	}
	if inner == nil {
		return reflect.Append(slice, elem).Interface(), nil
	}
	index, ok := canonicalIndex(*inner)
	if !ok || index > slice.Len() {
		return nil, &IndexError{Key: key, Inner: *inner, Len: slice.Len()}
	}
	if index == slice.Len() {
		return reflect.Append(slice, elem).Interface(), nil
	}
	slice.Index(index).Set(elem)
	return slice.Interface(), nil
}

func (c *Context) addToMap(key string, aMap reflect.Value, inner *string, data interface{}) (interface{}, error) {
	elem, err := c.element(key, aMap.Type().Elem(), data)
	if err != nil {
		return nil, err
	}
	if aMap.IsNil() {
		aMap = reflect.MakeMap(aMap.Type())
	}
	var subKey string
	if inner != nil {
		subKey = *inner
	} else {
		subKey = nextIndex(aMap)
	}
	aMap.SetMapIndex(reflect.ValueOf(subKey).Convert(aMap.Type().Key()), elem)
	return aMap.Interface(), nil
}

// nextIndex returns the auto index for an append without sub-key: one past the
// largest canonical non-negative integer key, or "0".
func nextIndex(aMap reflect.Value) string {
	next := 0
	iter := aMap.MapRange()
	for iter.Next() {
		n, ok := canonicalIndex(iter.Key().String())
		if !ok {
			continue
		}
		if n >= next {
			next = n + 1
		}
	}
	return strconv.Itoa(next)
}

// canonicalIndex parses a non-negative decimal index written without sign or
// leading zeros.
func canonicalIndex(text string) (int, bool) {
	n, err := strconv.Atoi(text)
	if err != nil || n < 0 || strconv.Itoa(n) != text {
		return 0, false
	}
	return n, true
}

// element fits data into the container element type, converting when data is
// not directly assignable.
func (c *Context) element(key string, elemType reflect.Type, data interface{}) (reflect.Value, error) {
	if data == nil {
		switch elemType.Kind() {
		case reflect.Interface, reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			return reflect.Zero(elemType), nil
		}
		return reflect.Value{}, newTypeMismatchError(key, elemType.String(), data, nil)
	}
	value := reflect.ValueOf(data)
	if value.Type().AssignableTo(elemType) {
		return value, nil
	}
	target := reflect.New(elemType)
	if err := c.converter.Convert(data, target.Interface()); err != nil {
		return reflect.Value{}, newTypeMismatchError(key, elemType.String(), data, err)
	}
	return target.Elem(), nil
}
