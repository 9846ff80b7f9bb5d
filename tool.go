package mathsolve

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/njchilds90/mathsolve/notation"
	"github.com/njchilds90/mathsolve/symbolic"
)

// ============================================================
// Tool interface
// ============================================================

type ToolRequest struct {
	Tool   string                 `json:"tool"`
	Params map[string]interface{} `json:"params"`
}

type ToolResponse struct {
	Result interface{} `json:"result,omitempty"`
	LaTeX  string      `json:"latex,omitempty"`
	String string      `json:"string,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// TraceResult is the JSON form of a processed request.
type TraceResult struct {
	ID          string   `json:"id"`
	Input       string   `json:"input"`
	Normalized  string   `json:"normalized,omitempty"`
	Category    Category `json:"category,omitempty"`
	Simplified  string   `json:"simplified,omitempty"`
	Strategy    Strategy `json:"strategy,omitempty"`
	Numeric     string   `json:"numeric,omitempty"`
	Markup      string   `json:"latex,omitempty"`
	Pretty      string   `json:"pretty,omitempty"`
	Success     bool     `json:"success"`
	Error       string   `json:"error,omitempty"`
	Diagnostics []string `json:"diagnostics,omitempty"`
}

// Result summarizes the trace for JSON output.
func (t *SessionTrace) Result() TraceResult {
	r := TraceResult{
		ID:          t.ID.String(),
		Input:       t.Input,
		Category:    t.Category,
		Success:     t.Success,
		Diagnostics: t.Diagnostics(),
	}
	if p := t.Parse(); p != nil {
		r.Normalized = p.Normalized
	}
	for _, st := range t.Stages {
		if s, ok := st.(*SimplifyStage); ok {
			r.Simplified = s.Chosen.String()
			r.Strategy = s.Strategy
		}
	}
	if t.Output != nil {
		r.Numeric, r.Markup, r.Pretty = t.Output.Numeric, t.Output.Markup, t.Output.Pretty
	}
	if t.Err != nil {
		r.Error = t.Err.Error()
	}
	return r
}

// HandleToolCall dispatches a JSON tool call.
func (p *Processor) HandleToolCall(ctx context.Context, req ToolRequest) ToolResponse {
	getString := func(key string) (string, error) {
		v, ok := req.Params[key]
		if !ok {
			return "", fmt.Errorf("missing param: %s", key)
		}
		s, ok := v.(string)
		if !ok {
			return "", fmt.Errorf("param %s must be a string", key)
		}
		return s, nil
	}
	// expr accepts the expression as text or as a tree in the ToJSON form.
	expr := func() (string, symbolic.Expr, error) {
		v, ok := req.Params["expr"]
		if !ok {
			return "", nil, fmt.Errorf("missing param: expr")
		}
		switch v := v.(type) {
		case string:
			return v, nil, nil
		case map[string]interface{}:
			e, err := symbolic.FromJSON(v)
			if err != nil {
				return "", nil, fmt.Errorf("param expr: %w", err)
			}
			return e.String(), e, nil
		}
		return "", nil, fmt.Errorf("param expr must be a string or an expression tree")
	}
	parse := func() (symbolic.Expr, error) {
		s, tree, err := expr()
		if err != nil {
			return nil, err
		}
		if tree != nil {
			return tree, nil
		}
		st, err := p.parser.Parse(s)
		if err != nil {
			return nil, err
		}
		return st.Parsed.Expr, nil
	}
	respond := func(e symbolic.Expr) ToolResponse {
		return ToolResponse{Result: symbolic.Tree(e), LaTeX: e.LaTeX(), String: e.String()}
	}

	switch req.Tool {
	case "solve":
		s, _, err := expr()
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		tr := p.Process(ctx, s)
		resp := ToolResponse{Result: tr.Result()}
		if tr.Output != nil {
			resp.LaTeX, resp.String = tr.Output.Markup, tr.Output.Numeric
		}
		if tr.Err != nil {
			resp.Error = tr.Err.Error()
		}
		return resp

	case "parse":
		e, err := parse()
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		return respond(e)

	case "normalize":
		s, err := getString("text")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		return ToolResponse{String: notation.Normalize(s)}

	case "resolve":
		s, err := getString("text")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		out, err := p.parser.resolver.Resolve(notation.Normalize(s))
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		return ToolResponse{String: out}

	case "classify_input":
		s, err := getString("text")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		return ToolResponse{String: notation.ClassifyInput(s).String()}

	case "simplify":
		e, err := parse()
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		st := p.simplifier.Simplify(Parsed(e))
		cands := make([]map[string]interface{}, len(st.Candidates))
		for i, c := range st.Candidates {
			cands[i] = map[string]interface{}{
				"strategy": c.Strategy,
				"tag":      c.Tag,
				"expr":     c.Expr.String(),
				"ops":      c.Ops,
			}
		}
		return ToolResponse{
			Result: map[string]interface{}{"chosen": st.Chosen.String(), "strategy": st.Strategy, "candidates": cands},
			LaTeX:  st.Chosen.LaTeX(),
			String: st.Chosen.String(),
		}

	case "latex":
		e, err := parse()
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		tex, err := p.engine.LaTeX(e)
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		return ToolResponse{LaTeX: tex, String: e.String()}

	case "schema":
		return ToolResponse{Result: ToolSpec(), String: "tool specification"}
	}

	return ToolResponse{Error: fmt.Sprintf("unknown tool: %s", req.Tool)}
}

// ToolSpec returns the JSON schema of every tool.
func ToolSpec() string {
	tools := []map[string]interface{}{
		ts("solve", "Run the full pipeline: parse, simplify, classify, solve and format", []string{"expr"}, exprProp),
		ts("parse", "Parse free-form or LaTeX input into an expression tree", []string{"expr"}, exprProp),
		ts("normalize", "Apply the lexical rewrites (aliases, homoglyphs, symbols)", []string{"text"}, map[string]interface{}{"text": "string"}),
		ts("resolve", "Normalize and resolve notation (implicit multiplication, |x|, sin^2(x))", []string{"text"}, map[string]interface{}{"text": "string"}),
		ts("classify_input", "Report whether input is plain text or LaTeX-like", []string{"text"}, map[string]interface{}{"text": "string"}),
		ts("simplify", "List simplification candidates and the chosen one", []string{"expr"}, exprProp),
		ts("latex", "Render input as LaTeX", []string{"expr"}, exprProp),
		ts("schema", "Return this tool schema", []string{}, map[string]interface{}{}),
	}
	spec := map[string]interface{}{"tools": tools}
	b, _ := json.MarshalIndent(spec, "", "  ")
	return string(b)
}

// exprProp types the expr parameter: text or an expression tree.
var exprProp = map[string]interface{}{"expr": []string{"string", "object"}}

func ts(name, description string, required []string, props map[string]interface{}) map[string]interface{} {
	properties := map[string]interface{}{}
	for k, typ := range props {
		properties[k] = map[string]interface{}{"type": typ}
	}
	return map[string]interface{}{
		"name":        name,
		"description": description,
		"inputSchema": map[string]interface{}{
			"type":       "object",
			"properties": properties,
			"required":   required,
		},
	}
}
