package filter

import (
	"fmt"
	"maps"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// exprFilter implements CompiledFilter using the expr language
type exprFilter struct {
	expression string
	program    *vm.Program
	helpers    map[string]any
}

// ExprCompilerOption configures an expr compiler
type ExprCompilerOption func(*exprCompiler)

// WithCache enables filter caching with the specified size
func WithCache(size int) ExprCompilerOption {
	return func(c *exprCompiler) {
		if size > 0 {
			c.cache = newLRUCache(size)
		}
	}
}

// WithCustomFunctions adds custom helper functions
func WithCustomFunctions(funcs map[string]any) ExprCompilerOption {
	return func(c *exprCompiler) {
		maps.Copy(c.helperFuncs, funcs)
	}
}

// NewExprCompiler creates a new expr-based filter compiler
func NewExprCompiler(opts ...ExprCompilerOption) Compiler {
	c := &exprCompiler{
		helperFuncs: createHelperFunctions(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// exprCompiler implements Compiler for expr-based filters
type exprCompiler struct {
	helperFuncs map[string]any
	cache       *lruCache
}

// Compile compiles an expression into an executable filter
func (c *exprCompiler) Compile(expression string) (CompiledFilter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	// Check cache if enabled
	if c.cache != nil {
		if cached, ok := c.cache.Get(expression); ok {
			return cached, nil
		}
	}

	// Record fields are only known at run time
	program, err := expr.Compile(expression,
		expr.Env(c.helperFuncs),
		expr.AllowUndefinedVariables(),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	filter := &exprFilter{
		expression: expression,
		program:    program,
		helpers:    c.helperFuncs,
	}

	// Cache if enabled
	if c.cache != nil {
		c.cache.Put(expression, filter)
	}

	return filter, nil
}

// Clear removes all cached filters
func (c *exprCompiler) Clear() {
	if c.cache != nil {
		c.cache.Clear()
	}
}

// Size returns the number of cached filters
func (c *exprCompiler) Size() int {
	if c.cache != nil {
		return c.cache.Size()
	}
	return 0
}

// Evaluate evaluates the filter against a record
func (f *exprFilter) Evaluate(record Record) (bool, error) {
	result, err := expr.Run(f.program, createRuntimeEnvironment(f.helpers, record))
	if err != nil {
		return false, err
	}

	// AsBool guarantees a bool unless the result depends on an undefined field
	matched, ok := result.(bool)
	if !ok {
		return false, fmt.Errorf("expression returned %T, not bool", result)
	}
	return matched, nil
}

// Expression returns the original expression
func (f *exprFilter) Expression() string {
	return f.expression
}

// createHelperFunctions creates the static helper functions used during compilation.
// Moodle reports times as unix seconds, so the date helpers work in seconds too.
func createHelperFunctions() map[string]any {
	funcs := make(map[string]any, 16)

	// Date helpers
	funcs["now"] = func() int64 {
		return time.Now().Unix()
	}
	funcs["daysSince"] = func(ts any) int {
		return int(time.Since(time.Unix(toInt64(ts), 0)).Hours() / 24)
	}
	funcs["daysAgo"] = func(days int) int64 {
		return time.Now().AddDate(0, 0, -days).Unix()
	}
	funcs["monthsAgo"] = func(months int) int64 {
		return time.Now().AddDate(0, -months, 0).Unix()
	}
	funcs["yearsAgo"] = func(years int) int64 {
		return time.Now().AddDate(-years, 0, 0).Unix()
	}
	funcs["parseDate"] = func(dateStr string) (int64, error) {
		t, err := time.Parse(time.DateOnly, dateStr)
		if err != nil {
			return 0, fmt.Errorf("parseDate: %w", err)
		}
		return t.Unix(), nil
	}
	funcs["date"] = func(ts any) string {
		return time.Unix(toInt64(ts), 0).UTC().Format(time.DateOnly)
	}

	// Case-insensitive string helpers. contains, startsWith and endsWith are
	// expr operators and stay case-sensitive.
	funcs["icontains"] = func(str, substr string) bool {
		return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
	}
	funcs["istartsWith"] = func(str, prefix string) bool {
		return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
	}
	funcs["iendsWith"] = func(str, suffix string) bool {
		return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
	}
	funcs["lower"] = strings.ToLower
	funcs["upper"] = strings.ToUpper

	// Field helpers, bound to the record at run time
	funcs["has"] = func(field string) bool {
		return false
	}

	return funcs
}

// createRuntimeEnvironment exposes the record's fields as top-level variables
// and as Record. Helpers take precedence over fields of the same name.
func createRuntimeEnvironment(helpers map[string]any, record Record) map[string]any {
	env := make(map[string]any, len(record)+len(helpers)+2)
	maps.Copy(env, record)
	maps.Copy(env, helpers)

	env["Record"] = record
	env["has"] = func(field string) bool {
		v, ok := record[field]
		return ok && v != nil && v != "" && v != false
	}

	return env
}

func toInt64(v any) int64 {
	switch n := v.(type) {
	case int:
		return int64(n)
	case int64:
		return n
	case float64:
		return int64(n)
	}
	return 0
}
