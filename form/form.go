package form

import (
	"fmt"
	"net/url"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/google/go-querystring/query"
)

// Key builds a bracketed key such as courses[0][visible]
func Key(name string, parts ...any) string {
	var b strings.Builder
	b.WriteString(name)
	for _, p := range parts {
		b.WriteByte('[')
		b.WriteString(scalar(p))
		b.WriteByte(']')
	}
	return b.String()
}

// Fields returns the wire names of v's url-tagged fields in declaration order.
// It is the whitelist of an options struct or record type.
func Fields(v any) []string {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}
	return fields(t)
}

func fields(t reflect.Type) []string {
	var names []string
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.PkgPath != "" && !sf.Anonymous {
			continue
		}

		tag := sf.Tag.Get("url")
		if tag == "-" {
			continue
		}
		name, _, _ := strings.Cut(tag, ",")

		// Untagged embedded structs contribute their own fields
		if name == "" && sf.Anonymous {
			et := sf.Type
			if et.Kind() == reflect.Ptr {
				et = et.Elem()
			}
			if et.Kind() == reflect.Struct {
				names = append(names, fields(et)...)
				continue
			}
		}

		if name == "" {
			name = sf.Name
		}
		names = append(names, name)
	}
	return names
}

// Validate checks option names against the allowed whitelist
func Validate(opts map[string]any, allowed []string) error {
	permitted := make(map[string]struct{}, len(allowed))
	for _, name := range allowed {
		permitted[name] = struct{}{}
	}

	var invalid []string
	for name := range opts {
		if _, ok := permitted[name]; !ok {
			invalid = append(invalid, name)
		}
	}
	if len(invalid) == 0 {
		return nil
	}

	sort.Strings(invalid)
	return &InvalidOptionError{Options: invalid}
}

// Require reports every argument whose value is empty
func Require(args map[string]any) error {
	var missing []string
	for name, v := range args {
		if isEmpty(v) {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	sort.Strings(missing)
	return &MissingRequiredError{Fields: missing}
}

func isEmpty(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String, reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() == 0
	}
	return rv.IsZero()
}

// Record flattens the set fields of v into dst under prefix, so a field
// visible becomes prefix[visible]. An empty prefix leaves keys bare.
func Record(dst url.Values, prefix string, v any) error {
	vals, err := query.Values(v)
	if err != nil {
		return fmt.Errorf("failed to encode %T: %w", v, err)
	}

	for key, vs := range vals {
		dst[nest(prefix, key)] = vs
	}
	return nil
}

// Records flattens each record under name[i], indexed from 0 in input order
func Records[T any](dst url.Values, name string, records []T) error {
	for i, r := range records {
		if err := Record(dst, Key(name, i), r); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
	}
	return nil
}

// List encodes a bare list as name[i]
func List[T any](dst url.Values, name string, items []T) {
	for i, item := range items {
		dst.Set(Key(name, i), scalar(item))
	}
}

// NameValues encodes the set fields of v as name[i][name] / name[i][value]
// pairs, indexed in the struct's declaration order.
func NameValues(dst url.Values, name string, v any) error {
	vals, err := query.Values(v)
	if err != nil {
		return fmt.Errorf("failed to encode %T: %w", v, err)
	}

	i := 0
	for _, field := range Fields(v) {
		value, ok := vals[field]
		if !ok || len(value) == 0 {
			continue
		}
		dst.Set(Key(name, i, "name"), field)
		dst.Set(Key(name, i, "value"), value[0])
		i++
	}
	return nil
}

// nest places key under prefix, keeping any brackets key already carries:
// nest("courses[0]", "opts[1][name]") is courses[0][opts][1][name].
func nest(prefix, key string) string {
	if prefix == "" {
		return key
	}
	if i := strings.IndexByte(key, '['); i > 0 {
		return prefix + "[" + key[:i] + "]" + key[i:]
	}
	return prefix + "[" + key + "]"
}

// Bool encodes b the way Moodle expects booleans, as 1 or 0
func Bool(b bool) string {
	return scalar(b)
}

func scalar(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case bool:
		if x {
			return "1"
		}
		return "0"
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	}
	return fmt.Sprint(v)
}

// Pair is a name/value entry, used for lists such as course format options
type Pair struct {
	Name  string `json:"name" url:"name"`
	Value string `json:"value" url:"value"`
}

// Pairs encodes as key[i][name] / key[i][value]
type Pairs []Pair

// EncodeValues implements query.Encoder
func (p Pairs) EncodeValues(key string, v *url.Values) error {
	for i, pair := range p {
		v.Set(Key(key, i, "name"), pair.Name)
		v.Set(Key(key, i, "value"), pair.Value)
	}
	return nil
}
