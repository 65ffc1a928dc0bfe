// Package attribute turns configured attribute templates into the concrete
// work attributes attached to a worklog.
package attribute

import (
	"fmt"
	"strconv"

	"github.com/alexanderramin/jt/internal/domain"
	"github.com/cockroachdb/errors"
	"github.com/go-openapi/jsonpointer"
)

var (
	// ErrPathNotFound indicates a dynamic attribute path did not resolve to any value.
	ErrPathNotFound = errors.New("path not found")

	// ErrNotAString indicates a dynamic attribute path resolved to a non-string value.
	ErrNotAString = errors.New("value is not a string")
)

// ResolutionError reports which dynamic attribute failed and why.
type ResolutionError struct {
	Attribute string
	Path      string
	Err       error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolving attribute %q at %q: %v", e.Attribute, e.Path, e.Err)
}

func (e *ResolutionError) Unwrap() error { return e.Err }

// Resolve extracts every dynamic template's value from fields and appends the
// static templates unchanged. Dynamic attributes come first, both groups in
// template order.
func Resolve(fields map[string]any, dynamic, static []domain.WorkAttribute) ([]domain.WorkAttribute, error) {
	out := make([]domain.WorkAttribute, 0, len(dynamic)+len(static))
	for _, tmpl := range dynamic {
		value, err := Extract(fields, tmpl.Value)
		if err != nil {
			return nil, &ResolutionError{Attribute: tmpl.Key, Path: tmpl.Value, Err: err}
		}
		resolved := tmpl
		resolved.Value = value
		out = append(out, resolved)
	}
	return append(out, static...), nil
}

// ForTask resolves the attributes for a single task. Static tasks carry
// their own attribute list and skip resolution.
func ForTask(task domain.Task, dynamic, static []domain.WorkAttribute) ([]domain.WorkAttribute, error) {
	switch t := task.(type) {
	case *domain.StaticTask:
		return domain.CloneAttributes(t.Attributes), nil
	case *domain.Issue:
		return Resolve(t.Fields, dynamic, static)
	default:
		return nil, errors.AssertionFailedf("unhandled task type %T", task)
	}
}

// Extract follows the JSON pointer path through fields and returns the
// string found there.
func Extract(fields map[string]any, path string) (string, error) {
	ptr, err := jsonpointer.New(path)
	if err != nil {
		return "", errors.Mark(errors.Wrap(err, "invalid pointer"), ErrPathNotFound)
	}

	var node any = fields
	for _, token := range ptr.DecodedTokens() {
		node, err = step(node, token)
		if err != nil {
			return "", err
		}
	}

	s, ok := node.(string)
	if !ok {
		return "", errors.Wrapf(ErrNotAString, "found %s", jsonKind(node))
	}
	return s, nil
}

func step(node any, token string) (any, error) {
	switch n := node.(type) {
	case map[string]any:
		v, ok := n[token]
		if !ok {
			return nil, errors.Wrapf(ErrPathNotFound, "no key %q", token)
		}
		return v, nil
	case []any:
		idx, err := strconv.Atoi(token)
		if err != nil || idx < 0 || idx >= len(n) {
			return nil, errors.Wrapf(ErrPathNotFound, "no index %q in array of %d", token, len(n))
		}
		return n[idx], nil
	default:
		return nil, errors.Wrapf(ErrPathNotFound, "cannot descend into %s with %q", jsonKind(node), token)
	}
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, int, int64:
		return "number"
	default:
		return fmt.Sprintf("%T", v)
	}
}
