package render

import (
	"fmt"
	"strconv"
	"strings"

	"forge-backend/internal/billing"
)

// Scope is one level of the variable stack templates resolve against.
// Lookups fall through to the parent, so fields like currency stay visible
// inside {{#each}} blocks.
type Scope struct {
	values map[string]any
	parent *Scope
}

// NewScope creates a root scope over the given values
func NewScope(values map[string]any) *Scope {
	return &Scope{values: values}
}

func (s *Scope) child(values map[string]any) *Scope {
	return &Scope{values: values, parent: s}
}

func (s *Scope) lookup(name string) (any, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if v, ok := cur.values[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Expand substitutes the placeholder grammar against the scope:
// {{field}} scalar interpolation (never HTML-escaped, so templates can carry
// markup in data fields), {{#each items}}...{{/each}} iteration, and
// {{money amount [currency]}} delegating to billing.FormatMoney. The grammar
// is frozen; templates stored by existing installations must keep expanding
// identically.
func Expand(tpl string, scope *Scope) (string, error) {
	var out strings.Builder
	rest := tpl

	for {
		open := strings.Index(rest, "{{")
		if open < 0 {
			out.WriteString(rest)
			return out.String(), nil
		}
		out.WriteString(rest[:open])
		rest = rest[open:]

		end := strings.Index(rest, "}}")
		if end < 0 {
			return "", fmt.Errorf("unterminated placeholder near %q", snippet(rest))
		}
		tag := strings.TrimSpace(rest[2:end])
		rest = rest[end+2:]

		switch {
		case strings.HasPrefix(tag, "#each"):
			listName := strings.TrimSpace(strings.TrimPrefix(tag, "#each"))
			if listName == "" {
				return "", fmt.Errorf("each block is missing a list name")
			}
			body, after, err := splitEachBody(rest)
			if err != nil {
				return "", err
			}
			expanded, err := expandEach(listName, body, scope)
			if err != nil {
				return "", err
			}
			out.WriteString(expanded)
			rest = after

		case tag == "/each":
			return "", fmt.Errorf("unexpected {{/each}}")

		case strings.HasPrefix(tag, "money ") || tag == "money":
			formatted, err := expandMoney(tag, scope)
			if err != nil {
				return "", err
			}
			out.WriteString(formatted)

		case strings.ContainsAny(tag, " \t"):
			return "", fmt.Errorf("unknown helper in placeholder {{%s}}", tag)

		default:
			if v, ok := scope.lookup(tag); ok {
				out.WriteString(stringify(v))
			}
			// unknown fields expand to nothing, mustache style
		}
	}
}

// splitEachBody returns the block body up to the matching {{/each}} and the
// remainder after it, honoring nested each blocks
func splitEachBody(s string) (body, after string, err error) {
	depth := 1
	pos := 0
	for {
		next := strings.Index(s[pos:], "{{")
		if next < 0 {
			return "", "", fmt.Errorf("unclosed {{#each}} block")
		}
		tagStart := pos + next
		tagEnd := strings.Index(s[tagStart:], "}}")
		if tagEnd < 0 {
			return "", "", fmt.Errorf("unterminated placeholder near %q", snippet(s[tagStart:]))
		}
		tag := strings.TrimSpace(s[tagStart+2 : tagStart+tagEnd])
		if strings.HasPrefix(tag, "#each") {
			depth++
		} else if tag == "/each" {
			depth--
			if depth == 0 {
				return s[:tagStart], s[tagStart+tagEnd+2:], nil
			}
		}
		pos = tagStart + tagEnd + 2
	}
}

func expandEach(listName, body string, scope *Scope) (string, error) {
	raw, ok := scope.lookup(listName)
	if !ok {
		return "", nil
	}
	list, ok := raw.([]map[string]any)
	if !ok {
		return "", fmt.Errorf("cannot iterate over %q", listName)
	}

	var out strings.Builder
	for _, item := range list {
		expanded, err := Expand(body, scope.child(item))
		if err != nil {
			return "", err
		}
		out.WriteString(expanded)
	}
	return out.String(), nil
}

func expandMoney(tag string, scope *Scope) (string, error) {
	args := splitArgs(strings.TrimPrefix(tag, "money"))
	if len(args) < 1 || len(args) > 2 {
		return "", fmt.Errorf("money helper takes one or two arguments, got %d", len(args))
	}

	amount, err := resolveAmount(args[0], scope)
	if err != nil {
		return "", err
	}

	currency := ""
	if len(args) == 2 {
		currency = resolveString(args[1], scope)
	} else if v, ok := scope.lookup("currency"); ok {
		currency = stringify(v)
	}

	return billing.FormatMoney(amount, currency), nil
}

func resolveAmount(arg string, scope *Scope) (float64, error) {
	if v, ok := scope.lookup(arg); ok {
		switch n := v.(type) {
		case float64:
			return n, nil
		case int:
			return float64(n), nil
		default:
			return 0, fmt.Errorf("money: field %q is not numeric", arg)
		}
	}
	if n, err := strconv.ParseFloat(arg, 64); err == nil {
		return n, nil
	}
	return 0, fmt.Errorf("money: cannot resolve amount %q", arg)
}

func resolveString(arg string, scope *Scope) string {
	if unquoted, ok := stripQuotes(arg); ok {
		return unquoted
	}
	if v, ok := scope.lookup(arg); ok {
		return stringify(v)
	}
	return arg
}

// splitArgs splits helper arguments on whitespace, keeping quoted strings
// intact
func splitArgs(s string) []string {
	var args []string
	s = strings.TrimSpace(s)
	for s != "" {
		if s[0] == '"' || s[0] == '\'' {
			quote := s[0]
			end := strings.IndexByte(s[1:], quote)
			if end < 0 {
				args = append(args, s)
				return args
			}
			args = append(args, s[:end+2])
			s = strings.TrimSpace(s[end+2:])
			continue
		}
		cut := strings.IndexAny(s, " \t")
		if cut < 0 {
			args = append(args, s)
			return args
		}
		args = append(args, s[:cut])
		s = strings.TrimSpace(s[cut:])
	}
	return args
}

func stripQuotes(s string) (string, bool) {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1], true
	}
	return s, false
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case bool:
		return strconv.FormatBool(t)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprintf("%v", t)
	}
}

func snippet(s string) string {
	if len(s) > 24 {
		return s[:24] + "..."
	}
	return s
}
