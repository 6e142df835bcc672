package typecheck

import (
	"reflect"
	"strconv"
	"strings"
)

// StructKey resolves the external key of a struct field.
// Priority: json tag name > field name; "-" disables the field.
func StructKey(sf reflect.StructField) string {
	if jt := sf.Tag.Get("json"); jt != "" {
		if jt == "-" {
			return "-"
		}
		if i := strings.IndexByte(jt, ','); i >= 0 {
			if jt[:i] != "" {
				return jt[:i]
			}
			return sf.Name
		}
		return jt
	}
	return sf.Name
}

// Member looks up key on a map with string keys or on a struct (by json tag or
// exported field name). Pointers and interfaces are followed.
func Member(v any, key string) (any, bool) {
	cur := reflect.ValueOf(v)
	for cur.IsValid() && (cur.Kind() == reflect.Pointer || cur.Kind() == reflect.Interface) {
		if cur.IsNil() {
			return nil, false
		}
		cur = cur.Elem()
	}
	if !cur.IsValid() {
		return nil, false
	}
	switch cur.Kind() {
	case reflect.Map:
		if cur.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		mv := cur.MapIndex(reflect.ValueOf(key).Convert(cur.Type().Key()))
		if !mv.IsValid() {
			return nil, false
		}
		return mv.Interface(), true
	case reflect.Struct:
		rt := cur.Type()
		for i := 0; i < rt.NumField(); i++ {
			sf := rt.Field(i)
			if !sf.IsExported() {
				continue
			}
			if StructKey(sf) == key {
				return cur.Field(i).Interface(), true
			}
		}
	}
	return nil, false
}

// ValueAt resolves a JSON Pointer like "/server/ports/0" against v.
// Sequences are indexed by decimal position.
func ValueAt(v any, pointer string) (any, bool) {
	rel := strings.TrimPrefix(pointer, "/")
	if rel == "" {
		return v, true
	}
	cur := v
	for _, seg := range strings.Split(rel, "/") {
		seg = strings.ReplaceAll(strings.ReplaceAll(seg, "~1", "/"), "~0", "~")
		if next, ok := Member(cur, seg); ok {
			cur = next
			continue
		}
		idx, ok := index(seg)
		if !ok {
			return nil, false
		}
		elems := Elements(cur)
		if idx >= len(elems) {
			return nil, false
		}
		cur = elems[idx]
	}
	return cur, true
}

func index(seg string) (int, bool) {
	if seg == "" || seg[0] < '0' || seg[0] > '9' {
		return 0, false
	}
	n, err := strconv.Atoi(seg)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
