package cson

import (
	"encoding"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode"
)

// Unmarshal parses data and stores the result in the value pointed to by v.
// v should be a non-nil pointer to a struct, map, slice, or interface.
// Unmarshal acts similarly to json.Unmarshal.
//
// For struct fields, Unmarshal first looks for the name in a `cson:"name"`
// tag, then in a `json:"name"` tag, and finally matches the field name
// itself or its snake_case form. Keys in the document with no matching
// field are ignored; Boostnote wrote fields this package has no use for.
//
// When unmarshalling into an interface, maps become map[string]any, lists
// become []any, strings become string, numbers float64, booleans bool, and
// null becomes nil.
func Unmarshal(data []byte, v any) error {
	doc, err := Parse(string(data))
	if err != nil {
		return err
	}
	target := reflect.ValueOf(v)
	if target.Kind() != reflect.Ptr || target.IsNil() {
		return fmt.Errorf("invalid target, must be a non-nil pointer")
	}
	return unmarshalValue(doc, target.Elem())
}

func unmarshalValue(val *Value, v reflect.Value) error {
	if !v.CanSet() {
		panic(fmt.Errorf("cannot set value of type: %v", v.Type()))
	}

	if tu, ok := v.Addr().Interface().(encoding.TextUnmarshaler); ok {
		switch val.Kind {
		case String, Number:
			return tu.UnmarshalText([]byte(val.Str))
		case Null:
			return nil
		}
		return fmt.Errorf("cannot unmarshal %s into %v", val.Kind, v.Type())
	}

	switch v.Kind() {
	case reflect.Struct:
		return unmarshalStruct(val, v)
	case reflect.Map:
		return unmarshalMap(val, v)
	case reflect.Interface:
		if val.Kind == Null {
			v.SetZero()
			return nil
		}
		v.Set(reflect.ValueOf(val.Interface()))
		return nil
	case reflect.Ptr:
		if val.Kind == Null {
			v.SetZero()
			return nil
		}
		if v.IsNil() {
			v.Set(reflect.New(v.Type().Elem()))
		}
		return unmarshalValue(val, v.Elem())
	case reflect.Slice:
		return unmarshalSlice(val, v)
	case reflect.String:
		if val.Kind != String {
			return fmt.Errorf("cannot unmarshal %s into %v", val.Kind, v.Type())
		}
		v.SetString(val.Str)
		return nil
	case reflect.Bool:
		if val.Kind != Boolean {
			return fmt.Errorf("cannot unmarshal %s into %v", val.Kind, v.Type())
		}
		v.SetBool(val.Bool)
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if val.Kind != Number {
			return fmt.Errorf("cannot unmarshal %s into %v", val.Kind, v.Type())
		}
		i, err := strconv.ParseInt(val.Str, 10, 64)
		if err != nil || v.OverflowInt(i) {
			return fmt.Errorf("invalid %s: %s", v.Type(), val.Str)
		}
		v.SetInt(i)
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if val.Kind != Number {
			return fmt.Errorf("cannot unmarshal %s into %v", val.Kind, v.Type())
		}
		u, err := strconv.ParseUint(val.Str, 10, 64)
		if err != nil || v.OverflowUint(u) {
			return fmt.Errorf("invalid %s: %s", v.Type(), val.Str)
		}
		v.SetUint(u)
		return nil
	case reflect.Float32, reflect.Float64:
		if val.Kind != Number {
			return fmt.Errorf("cannot unmarshal %s into %v", val.Kind, v.Type())
		}
		if v.OverflowFloat(val.Num) {
			return fmt.Errorf("invalid %s: %s", v.Type(), val.Str)
		}
		v.SetFloat(val.Num)
		return nil
	}

	return fmt.Errorf("unsupported type: %v", v.Type())
}

// Interface returns the tree as plain Go values: map[string]any for maps
// (insertion order is lost), []any for lists, and string/float64/bool/nil
// for leaves.
func (val *Value) Interface() any {
	switch val.Kind {
	case Null:
		return nil
	case Boolean:
		return val.Bool
	case Number:
		return val.Num
	case String:
		return val.Str
	case List:
		items := make([]any, len(val.Items))
		for i, item := range val.Items {
			items[i] = item.Interface()
		}
		return items
	case Map:
		m := make(map[string]any, val.Map.Len())
		for key, value := range val.Map.All() {
			m[key] = value.Interface()
		}
		return m
	default:
		panic("Unknown Kind")
	}
}

func unmarshalStruct(val *Value, v reflect.Value) error {
	if val.Kind != Map {
		return fmt.Errorf("cannot unmarshal %s into %v", val.Kind, v.Type())
	}

	t := v.Type()
	fieldMap := make(map[string]reflect.Value)

	for i := 0; i < t.NumField(); i++ {
		field := v.Field(i)
		fieldType := t.Field(i)

		if fieldType.PkgPath != "" {
			continue
		}

		if tag, ok := fieldType.Tag.Lookup("cson"); ok {
			if tag == "-" {
				continue
			}
			name, _, _ := strings.Cut(tag, ",")
			fieldMap[name] = field
			continue
		}

		if tag, ok := fieldType.Tag.Lookup("json"); ok {
			if tag == "-" {
				continue
			}
			name, _, _ := strings.Cut(tag, ",")
			fieldMap[name] = field
			continue
		}

		fieldMap[fieldType.Name] = field
		fieldMap[toSnakeCase(fieldType.Name)] = field
	}

	for key, value := range val.Map.All() {
		field, ok := fieldMap[key]
		if !ok {
			continue
		}
		if err := unmarshalValue(value, field); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}
	return nil
}

func toSnakeCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) {
			result.WriteRune('_')
		}
		result.WriteRune(unicode.ToLower(r))
	}
	return result.String()
}

func unmarshalMap(val *Value, v reflect.Value) error {
	if val.Kind != Map {
		return fmt.Errorf("cannot unmarshal %s into %v", val.Kind, v.Type())
	}
	if v.Type().Key().Kind() != reflect.String {
		return fmt.Errorf("unsupported map key type: %v", v.Type().Key())
	}
	if v.IsNil() {
		v.Set(reflect.MakeMapWithSize(v.Type(), val.Map.Len()))
	}

	valueType := v.Type().Elem()
	for key, value := range val.Map.All() {
		elem := reflect.New(valueType).Elem()
		if err := unmarshalValue(value, elem); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		v.SetMapIndex(reflect.ValueOf(key).Convert(v.Type().Key()), elem)
	}
	return nil
}

func unmarshalSlice(val *Value, v reflect.Value) error {
	if val.Kind != List {
		return fmt.Errorf("cannot unmarshal %s into %v", val.Kind, v.Type())
	}

	elemType := v.Type().Elem()
	out := reflect.MakeSlice(v.Type(), 0, len(val.Items))
	for i, item := range val.Items {
		elem := reflect.New(elemType).Elem()
		if err := unmarshalValue(item, elem); err != nil {
			return fmt.Errorf("%d: %w", i, err)
		}
		out = reflect.Append(out, elem)
	}
	v.Set(out)
	return nil
}
