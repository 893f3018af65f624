package form

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
)

var (
	timeType  = reflect.TypeOf(time.Time{})
	pairsType = reflect.TypeOf(Pairs{})
)

// Decode checks opts against the fields of out and decodes them into out,
// which must be a pointer to an options struct. Values may be given as
// strings ("1", "true", "2024-02-01") the way they arrive from a command line.
// Name/value lists take "name=value,name=value" or a JSON list of
// {"name": ..., "value": ...} objects.
func Decode(opts map[string]any, out any) error {
	if err := Validate(opts, Fields(out)); err != nil {
		return err
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "url",
		Squash:           true,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook:       mapstructure.ComposeDecodeHookFunc(timeHook, pairsHook),
		Result:           out,
	})
	if err != nil {
		return fmt.Errorf("failed to create options decoder: %w", err)
	}

	if err := dec.Decode(opts); err != nil {
		return fmt.Errorf("failed to decode options: %w", err)
	}
	return nil
}

// timeHook accepts unix seconds, RFC 3339 or a plain date for time fields
func timeHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to != timeType {
		return data, nil
	}

	switch v := data.(type) {
	case string:
		if secs, err := strconv.ParseInt(v, 10, 64); err == nil {
			return time.Unix(secs, 0), nil
		}
		for _, layout := range []string{time.RFC3339, time.DateOnly} {
			if t, err := time.Parse(layout, v); err == nil {
				return t, nil
			}
		}
		return nil, fmt.Errorf("cannot parse %q as a time", v)
	case int:
		return time.Unix(int64(v), 0), nil
	case int64:
		return time.Unix(v, 0), nil
	case float64:
		return time.Unix(int64(v), 0), nil
	}
	return data, nil
}

// pairsHook parses a name/value list given as a single string
func pairsHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	s, ok := data.(string)
	if to != pairsType || !ok {
		return data, nil
	}

	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "[") {
		var pairs Pairs
		if err := json.Unmarshal([]byte(s), &pairs); err != nil {
			return nil, fmt.Errorf("cannot parse %q as a name/value list: %w", s, err)
		}
		return pairs, nil
	}

	pairs := Pairs{}
	if s == "" {
		return pairs, nil
	}
	for _, item := range strings.Split(s, ",") {
		name, value, found := strings.Cut(item, "=")
		name = strings.TrimSpace(name)
		if !found || name == "" {
			return nil, fmt.Errorf("expected name=value in %q", item)
		}
		pairs = append(pairs, Pair{Name: name, Value: value})
	}
	return pairs, nil
}
