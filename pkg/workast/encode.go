package workast

import (
	"encoding/json"
	"fmt"
	"net/url"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"
)

// field is one flattened key/value pair, e.g. {"tags[0]", "urgent"}.
type field struct {
	key   string
	value string
}

// flattenParams flattens p into bracket-notation pairs with keys sorted at
// every level: {"a": {"b": 1}, "c": ["x", "y"]} gives a[b]=1, c[0]=x, c[1]=y.
// Nil values yield an empty value; empty slices and maps yield nothing.
func flattenParams(p Params) ([]field, error) {
	var out []field
	for _, k := range sortedKeys(p) {
		var err error
		if out, err = flattenValue(k, p[k], out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func flattenValue(prefix string, v any, out []field) ([]field, error) {
	switch t := v.(type) {
	case nil:
		return append(out, field{prefix, ""}), nil
	case string:
		return append(out, field{prefix, t}), nil
	case []byte:
		return append(out, field{prefix, string(t)}), nil
	case bool:
		return append(out, field{prefix, strconv.FormatBool(t)}), nil
	case time.Time:
		return append(out, field{prefix, t.UTC().Format("2006-01-02T15:04:05.000Z")}), nil
	case json.Number:
		return append(out, field{prefix, t.String()}), nil
	case fmt.Stringer:
		return append(out, field{prefix, t.String()}), nil
	case Params:
		return flattenMap(prefix, map[string]any(t), out)
	case map[string]any:
		return flattenMap(prefix, t, out)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return append(out, field{prefix, ""}), nil
		}
		return flattenValue(prefix, rv.Elem().Interface(), out)
	case reflect.String:
		return append(out, field{prefix, rv.String()}), nil
	case reflect.Bool:
		return append(out, field{prefix, strconv.FormatBool(rv.Bool())}), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return append(out, field{prefix, strconv.FormatInt(rv.Int(), 10)}), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return append(out, field{prefix, strconv.FormatUint(rv.Uint(), 10)}), nil
	case reflect.Float32, reflect.Float64:
		return append(out, field{prefix, strconv.FormatFloat(rv.Float(), 'f', -1, 64)}), nil
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return out, nil
		}
		for i := 0; i < rv.Len(); i++ {
			var err error
			key := prefix + "[" + strconv.Itoa(i) + "]"
			if out, err = flattenValue(key, rv.Index(i).Interface(), out); err != nil {
				return nil, err
			}
		}
		return out, nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, fmt.Errorf("%s: map keys must be strings", prefix)
		}
		m := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			m[iter.Key().String()] = iter.Value().Interface()
		}
		return flattenMap(prefix, m, out)
	case reflect.Struct:
		// Structs flatten through their JSON form so field tags apply.
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", prefix, err)
		}
		var generic any
		if err := json.Unmarshal(raw, &generic); err != nil {
			return nil, fmt.Errorf("%s: %w", prefix, err)
		}
		return flattenValue(prefix, generic, out)
	}
	return nil, fmt.Errorf("%s: unsupported value of type %T", prefix, v)
}

func flattenMap(prefix string, m map[string]any, out []field) ([]field, error) {
	for _, k := range sortedKeys(m) {
		var err error
		if out, err = flattenValue(prefix+"["+k+"]", m[k], out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func sortedKeys[M ~map[string]any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// encodeQuery renders fields as a URL query string, escaping keys and values.
func encodeQuery(fields []field) string {
	var b strings.Builder
	for i, f := range fields {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(f.key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(f.value))
	}
	return b.String()
}
