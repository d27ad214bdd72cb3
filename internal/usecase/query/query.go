// Package query evaluates JSONPath expressions against the JSON form of an
// evaluation, so scripts can pull single figures out of `skein calc`.
package query

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PaesslerAG/jsonpath"
)

// Result is the outcome of one expression.
type Result struct {
	Expr    string
	Value   string
	OK      bool
	Message string
}

// Apply runs every expression against v. A failing expression is reported
// in its Result; the others still run.
//
// Policy:
// - If v cannot be encoded as JSON, every expression fails.
// - Single-element arrays are unwrapped; scalars print with fmt.Sprint.
func Apply(v any, exprs []string) []Result {
	if len(exprs) == 0 {
		return []Result{}
	}

	doc, err := toDocument(v)
	if err != nil {
		out := make([]Result, 0, len(exprs))
		for _, expr := range exprs {
			out = append(out, Result{
				Expr:    expr,
				Message: fmt.Sprintf("query %q: value is not JSON-encodable: %v", expr, err),
			})
		}
		return out
	}

	results := make([]Result, 0, len(exprs))
	for _, raw := range exprs {
		expr := strings.TrimSpace(raw)
		if expr == "" {
			results = append(results, Result{Expr: raw, Message: "query: empty jsonpath expression"})
			continue
		}

		val, getErr := jsonpath.Get(expr, doc)
		if getErr != nil {
			results = append(results, Result{
				Expr:    expr,
				Message: fmt.Sprintf("query %q: jsonpath error: %v", expr, getErr),
			})
			continue
		}

		if isEmptyValue(val) {
			results = append(results, Result{
				Expr:    expr,
				Message: fmt.Sprintf("query %q: no value found", expr),
			})
			continue
		}

		s, convErr := toString(val)
		if convErr != nil {
			results = append(results, Result{
				Expr:    expr,
				Message: fmt.Sprintf("query %q: cannot convert value to string: %v", expr, convErr),
			})
			continue
		}

		results = append(results, Result{Expr: expr, Value: s, OK: true})
	}

	return results
}

// Failed counts results that did not produce a value.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if !r.OK {
			n++
		}
	}
	return n
}

func toDocument(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var doc any
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func isEmptyValue(v any) bool {
	if v == nil {
		return true
	}
	switch t := v.(type) {
	case string:
		return t == ""
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	default:
		return false
	}
}

func toString(v any) (string, error) {
	// jsonpath wildcard/filter results come back as slices.
	if arr, ok := v.([]any); ok {
		if len(arr) == 0 {
			return "", fmt.Errorf("empty array")
		}
		if len(arr) == 1 {
			return toString(arr[0])
		}
		b, err := json.Marshal(arr)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	switch t := v.(type) {
	case string:
		return t, nil
	case float64, bool:
		return fmt.Sprint(t), nil
	case map[string]any:
		b, err := json.Marshal(t)
		if err != nil {
			return "", err
		}
		return string(b), nil
	default:
		return fmt.Sprint(t), nil
	}
}
