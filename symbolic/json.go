package symbolic

import (
	"encoding/json"
	"fmt"
	"math/big"
)

// ============================================================
// JSON tree encoding
// ============================================================

// ToJSON encodes e as a JSON object tree.
func ToJSON(e Expr) (string, error) {
	b, err := json.Marshal(e.toJSON())
	return string(b), err
}

// Tree returns the JSON-ready map form of e.
func Tree(e Expr) map[string]interface{} { return e.toJSON() }

// FromJSON decodes a tree produced by ToJSON.
func FromJSON(data map[string]interface{}) (Expr, error) {
	if data == nil {
		return nil, fmt.Errorf("expression must be an object")
	}
	typ, ok := data["type"].(string)
	if !ok || typ == "" {
		return nil, fmt.Errorf("field 'type' must be a non-empty string")
	}

	child := func(field string) (Expr, error) {
		m, ok := data[field].(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%s: %q must be an object", typ, field)
		}
		e, err := FromJSON(m)
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", typ, field, err)
		}
		return e, nil
	}

	childList := func(field string) ([]Expr, error) {
		raw, ok := data[field].([]interface{})
		if !ok {
			return nil, fmt.Errorf("%s: %q must be an array", typ, field)
		}
		out := make([]Expr, len(raw))
		for i, it := range raw {
			m, ok := it.(map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("%s: %q[%d] must be an object", typ, field, i)
			}
			e, err := FromJSON(m)
			if err != nil {
				return nil, fmt.Errorf("%s: %s[%d]: %w", typ, field, i, err)
			}
			out[i] = e
		}
		return out, nil
	}

	str := func(field string) (string, error) {
		s, ok := data[field].(string)
		if !ok || s == "" {
			return "", fmt.Errorf("%s: %q must be a non-empty string", typ, field)
		}
		return s, nil
	}

	switch typ {
	case "num":
		val, err := str("value")
		if err != nil {
			return nil, err
		}
		r, ok := new(big.Rat).SetString(val)
		if !ok {
			return nil, fmt.Errorf("invalid num value: %s", val)
		}
		approx, _ := data["approx"].(bool)
		return &Num{val: r, approx: approx}, nil

	case "sym":
		name, err := str("name")
		if err != nil {
			return nil, err
		}
		return S(name), nil

	case "const":
		name, err := str("name")
		if err != nil {
			return nil, err
		}
		c, ok := constants[name]
		if !ok {
			return nil, fmt.Errorf("const: unknown constant %q", name)
		}
		return c, nil

	case "add", "mul":
		field := "terms"
		if typ == "mul" {
			field = "factors"
		}
		parts, err := childList(field)
		if err != nil {
			return nil, err
		}
		if typ == "add" {
			return AddOf(parts...), nil
		}
		return MulOf(parts...), nil

	case "pow":
		base, err := child("base")
		if err != nil {
			return nil, err
		}
		exp, err := child("exp")
		if err != nil {
			return nil, err
		}
		return PowOf(base, exp), nil

	case "func":
		name, err := str("name")
		if err != nil {
			return nil, err
		}
		if !IsFunction(name) {
			return nil, fmt.Errorf("func: unknown function %q", name)
		}
		arg, err := child("arg")
		if err != nil {
			return nil, err
		}
		return Fn(name, arg), nil

	case "rel":
		op, err := str("op")
		if err != nil {
			return nil, err
		}
		switch op {
		case OpEq, OpNe, OpLt, OpGt, OpLe, OpGe:
		default:
			return nil, fmt.Errorf("rel: unknown operator %q", op)
		}
		lhs, err := child("lhs")
		if err != nil {
			return nil, err
		}
		rhs, err := child("rhs")
		if err != nil {
			return nil, err
		}
		return Rel(op, lhs, rhs), nil

	case "derivative", "integral":
		v, err := str("var")
		if err != nil {
			return nil, err
		}
		body, err := child("expr")
		if err != nil {
			return nil, err
		}
		if typ == "derivative" {
			return DerivativeOf(body, v), nil
		}
		return IntegralOf(body, v), nil
	}
	return nil, fmt.Errorf("unknown expression type: %s", typ)
}
