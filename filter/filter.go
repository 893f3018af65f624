// Package filter selects records from web-service results with expr-lang
// expressions such as
//
//	visible == 1 and istartsWith(shortname, "math") and startdate > daysAgo(365)
//
// Every JSON field of a record is a variable. Times are unix seconds.
// The infix operators contains, startsWith and endsWith are case-sensitive;
// icontains, istartsWith and iendsWith ignore case.
package filter

import (
	"context"
	"encoding/json"
	"fmt"
)

var defaultCompiler = NewExprCompiler(WithCache(32))

// CompileFilter compiles expression with the shared caching compiler
func CompileFilter(expression string) (CompiledFilter, error) {
	return defaultCompiler.Compile(expression)
}

// ToRecords converts a decoded result into records by way of its JSON form.
// A list yields one record per item and an object yields a single record.
func ToRecords(v any) ([]Record, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode result: %w", err)
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err == nil {
		return records, nil
	}

	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("result is neither a list nor an object: %w", err)
	}
	return []Record{record}, nil
}

// Apply returns the items of result matching expression. An empty expression
// matches everything.
func Apply(ctx context.Context, expression string, result any) ([]Record, error) {
	records, err := ToRecords(result)
	if err != nil {
		return nil, err
	}
	if expression == "" {
		return records, nil
	}

	filter, err := CompileFilter(expression)
	if err != nil {
		return nil, err
	}
	return NewConcurrentEvaluator().Evaluate(ctx, filter, records)
}
