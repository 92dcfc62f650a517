package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"

	errx "github.com/decision-agent-poc-v1/agent/internal/core/error"
)

// ErrNotFound is returned by Resolve for an unregistered tool name.
var ErrNotFound = errors.New("tool not found")

// ValidationError reports a parameter object that failed structural
// validation against the tool's declared schema.
type ValidationError struct {
	Tool   string
	Param  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Param == "" {
		return fmt.Sprintf("tool %q: %s", e.Tool, e.Reason)
	}
	return fmt.Sprintf("tool %q: parameter %q %s", e.Tool, e.Param, e.Reason)
}

// Entry pairs a tool's declared schema with its invokable implementation.
type Entry struct {
	Info   *schema.ToolInfo
	Params map[string]*schema.ParameterInfo
	Tool   tool.InvokableTool
}

// Registry is a closed map from tool name to schema-validated invokable.
// It is read-mostly after startup and safe to share across runs.
// Validation is structural only; it knows nothing about tool semantics.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*Entry
	order   []string
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*Entry)}
}

// Register adds a tool under its declared name. Duplicate names are rejected
// so the registry stays a closed, unambiguous dispatch table.
func (r *Registry) Register(info *schema.ToolInfo, params map[string]*schema.ParameterInfo, t tool.InvokableTool) error {
	if info == nil || strings.TrimSpace(info.Name) == "" {
		return fmt.Errorf("tool info with a name is required")
	}
	if t == nil {
		return fmt.Errorf("tool %q: implementation is nil", info.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.entries[info.Name]; exists {
		return fmt.Errorf("tool %q already registered", info.Name)
	}
	r.entries[info.Name] = &Entry{Info: info, Params: params, Tool: t}
	r.order = append(r.order, info.Name)
	return nil
}

// Resolve returns the entry for name or ErrNotFound.
func (r *Registry) Resolve(name string) (*Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return e, nil
}

// Names returns the registered tool names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// Validate checks params structurally against the tool's declared schema and
// returns a sanitized copy: required parameters must be present, enum values
// must match, scalars are coerced to the declared type where unambiguous,
// and undeclared keys are dropped.
func (r *Registry) Validate(name string, params map[string]any) (map[string]any, error) {
	entry, err := r.Resolve(name)
	if err != nil {
		return nil, err
	}

	clean := make(map[string]any, len(params))
	for pname, pinfo := range entry.Params {
		raw, present := params[pname]
		if !present || raw == nil {
			if pinfo.Required {
				return nil, &ValidationError{Tool: name, Param: pname, Reason: "is required"}
			}
			continue
		}
		v, cerr := coerceValue(raw, pinfo)
		if cerr != nil {
			return nil, &ValidationError{Tool: name, Param: pname, Reason: cerr.Error()}
		}
		if len(pinfo.Enum) > 0 {
			s, _ := v.(string)
			if !containsString(pinfo.Enum, s) {
				return nil, &ValidationError{
					Tool:   name,
					Param:  pname,
					Reason: fmt.Sprintf("must be one of %v", pinfo.Enum),
				}
			}
		}
		clean[pname] = v
	}
	return clean, nil
}

// Invoke validates params and dispatches to the tool synchronously.
// The returned string is the tool's raw JSON result.
func (r *Registry) Invoke(ctx context.Context, name string, params map[string]any) (string, error) {
	entry, err := r.Resolve(name)
	if err != nil {
		return "", err
	}
	clean, err := r.Validate(name, params)
	if err != nil {
		return "", err
	}
	args, err := json.Marshal(clean)
	if err != nil {
		return "", errx.New(err, http.StatusInternalServerError, "marshal tool arguments")
	}
	out, err := entry.Tool.InvokableRun(ctx, string(args))
	if err != nil {
		return "", errx.NewKind(errx.KindTool, err, fmt.Sprintf("tool %q failed", name))
	}
	return out, nil
}

// Describe renders a compact catalog of every registered tool and its
// parameters for inclusion in oracle prompts.
func (r *Registry) Describe() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var b strings.Builder
	for _, name := range r.order {
		e := r.entries[name]
		fmt.Fprintf(&b, "%s - %s\n", name, e.Info.Desc)

		pnames := make([]string, 0, len(e.Params))
		for pname := range e.Params {
			pnames = append(pnames, pname)
		}
		sort.Strings(pnames)
		for _, pname := range pnames {
			p := e.Params[pname]
			req := ""
			if p.Required {
				req = ", required"
			}
			enum := ""
			if len(p.Enum) > 0 {
				enum = fmt.Sprintf(", one of %v", p.Enum)
			}
			fmt.Fprintf(&b, "  - %s (%s%s%s): %s\n", pname, p.Type, req, enum, p.Desc)
		}
	}
	return b.String()
}

// coerceValue converts raw into the declared parameter type. JSON decoding
// hands us float64 for every number and []any for arrays, so coercion stays
// small and deterministic.
func coerceValue(raw any, pinfo *schema.ParameterInfo) (any, error) {
	switch pinfo.Type {
	case schema.String:
		switch v := raw.(type) {
		case string:
			return strings.TrimSpace(v), nil
		case float64, bool:
			return strings.TrimSpace(fmt.Sprint(v)), nil
		default:
			return nil, fmt.Errorf("must be a string")
		}
	case schema.Number:
		switch v := raw.(type) {
		case float64:
			return v, nil
		case string:
			n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				return nil, fmt.Errorf("must be a number")
			}
			return n, nil
		default:
			return nil, fmt.Errorf("must be a number")
		}
	case schema.Integer:
		switch v := raw.(type) {
		case float64:
			return int(v), nil
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				return nil, fmt.Errorf("must be an integer")
			}
			return n, nil
		default:
			return nil, fmt.Errorf("must be an integer")
		}
	case schema.Boolean:
		if v, ok := raw.(bool); ok {
			return v, nil
		}
		return nil, fmt.Errorf("must be a boolean")
	case schema.Array:
		arr, ok := raw.([]any)
		if !ok {
			// a bare scalar where a list is expected becomes a one-element list
			if s, sok := raw.(string); sok {
				return []any{strings.TrimSpace(s)}, nil
			}
			return nil, fmt.Errorf("must be an array")
		}
		if pinfo.ElemInfo == nil {
			return arr, nil
		}
		out := make([]any, 0, len(arr))
		for _, item := range arr {
			cv, err := coerceValue(item, pinfo.ElemInfo)
			if err != nil {
				return nil, fmt.Errorf("array element %v", err)
			}
			out = append(out, cv)
		}
		return out, nil
	default:
		return raw, nil
	}
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
