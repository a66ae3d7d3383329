package l32

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/BenKaponz/PPL-Task2/internal/value"
)

// Symbol marshals to an L32 symbol rather than a string.
type Symbol string

// Pair is an improper pair returned by FromValue.
type Pair struct {
	Car, Cdr interface{}
}

// Marshaller handles conversion between Go and L32 values.
type Marshaller struct{}

func NewMarshaller() *Marshaller {
	return &Marshaller{}
}

// ToValue converts a Go value to an L32 value. Maps with string keys and
// structs become dictionaries; slices and arrays become lists.
func (m *Marshaller) ToValue(val interface{}) (value.Value, error) {
	if val == nil {
		return value.NewEmpty(), nil
	}
	switch v := val.(type) {
	case value.Value:
		return v, nil
	case Symbol:
		return value.NewSymbol(string(v)), nil
	}

	v := reflect.ValueOf(val)
	for v.Kind() == reflect.Interface || v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return value.NewEmpty(), nil
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return value.NewNumber(float64(v.Int())), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return value.NewNumber(float64(v.Uint())), nil
	case reflect.Float32, reflect.Float64:
		return value.NewNumber(v.Float()), nil
	case reflect.Bool:
		return value.NewBool(v.Bool()), nil
	case reflect.String:
		return value.NewString(v.String()), nil
	case reflect.Slice, reflect.Array:
		return m.sliceToList(v)
	case reflect.Map:
		return m.mapToDict(v)
	case reflect.Struct:
		return m.structToDict(v)
	default:
		return nil, fmt.Errorf("cannot marshal %T to an L32 value", val)
	}
}

func (m *Marshaller) sliceToList(v reflect.Value) (value.Value, error) {
	vals := make([]value.Value, v.Len())
	for i := range vals {
		elem, err := m.ToValue(v.Index(i).Interface())
		if err != nil {
			return nil, err
		}
		vals[i] = elem
	}
	return value.List(vals...), nil
}

// Map keys are sorted so the dictionary's entry order is stable.
func (m *Marshaller) mapToDict(v reflect.Value) (value.Value, error) {
	if v.Type().Key().Kind() != reflect.String {
		return nil, fmt.Errorf("cannot marshal map with %s keys; dictionary keys are symbols", v.Type().Key())
	}
	keys := make([]string, 0, v.Len())
	for _, k := range v.MapKeys() {
		keys = append(keys, k.String())
	}
	sort.Strings(keys)

	entries := make([]value.DictEntry, 0, len(keys))
	for _, k := range keys {
		val, err := m.ToValue(v.MapIndex(reflect.ValueOf(k).Convert(v.Type().Key())).Interface())
		if err != nil {
			return nil, err
		}
		entries = append(entries, value.DictEntry{Key: value.NewSymbol(k), Val: val})
	}
	return value.NewDict(entries)
}

// Exported fields in declaration order; an l32 tag renames the key and
// "-" skips the field.
func (m *Marshaller) structToDict(v reflect.Value) (value.Value, error) {
	t := v.Type()
	var entries []value.DictEntry
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		name := field.Name
		if tag, ok := field.Tag.Lookup("l32"); ok {
			if tag == "-" {
				continue
			}
			name = tag
		}
		val, err := m.ToValue(v.Field(i).Interface())
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", field.Name, err)
		}
		entries = append(entries, value.DictEntry{Key: value.NewSymbol(name), Val: val})
	}
	return value.NewDict(entries)
}

// FromValue converts an L32 value to a Go value: float64, bool, string,
// Symbol, []interface{} for proper lists, Pair for improper ones and
// map[string]interface{} for dictionaries. Procedures are returned as
// value.Value so they can be passed back to Call.
func (m *Marshaller) FromValue(v value.Value) (interface{}, error) {
	switch v := v.(type) {
	case *value.Number:
		return v.Value, nil
	case *value.Bool:
		return v.Value, nil
	case *value.String:
		return v.Value, nil
	case *value.Symbol:
		return Symbol(v.Name), nil
	case *value.Empty:
		return []interface{}{}, nil
	case *value.Pair:
		return m.pairToGo(v)
	case *value.Dict:
		out := make(map[string]interface{}, len(v.Entries))
		for _, e := range v.Entries {
			val, err := m.FromValue(e.Val)
			if err != nil {
				return nil, err
			}
			out[e.Key.Name] = val
		}
		return out, nil
	case nil:
		return nil, nil
	default:
		return v, nil
	}
}

func (m *Marshaller) pairToGo(p *value.Pair) (interface{}, error) {
	if items, ok := value.ListToSlice(p); ok {
		out := make([]interface{}, len(items))
		for i, item := range items {
			val, err := m.FromValue(item)
			if err != nil {
				return nil, err
			}
			out[i] = val
		}
		return out, nil
	}
	car, err := m.FromValue(p.Car)
	if err != nil {
		return nil, err
	}
	cdr, err := m.FromValue(p.Cdr)
	if err != nil {
		return nil, err
	}
	return Pair{Car: car, Cdr: cdr}, nil
}
