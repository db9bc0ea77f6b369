package kry

// ReactiveInfo reports which reactive variables an expression syntactically
// reads. Derived per expression, never stored on the AST.
type ReactiveInfo struct {
	// Dependencies holds the referenced signal names, deduplicated in
	// first-seen order.
	Dependencies []string
	// HasGetCalls is true when at least one value-access call was found.
	HasGetCalls bool
}

// Analyze inspects one property-value expression and returns the reactive
// variables it depends on: every `x.get()` where x is a bare identifier.
//
// This is a syntactic heuristic, not dataflow analysis. A dependency read
// only inside a nested formatting call on another value (`a.b.get()`,
// `f().get()`) is attributed to nothing, and a dependency hidden behind
// further host-side expansion is invisible entirely. That limitation is
// documented behavior, not something to compensate for here.
func Analyze(e Expr) ReactiveInfo {
	var info ReactiveInfo
	if e.Kind != ExprOpaque {
		return info
	}

	seen := make(map[string]bool)
	toks := e.Tokens
	for i := 0; i+4 < len(toks); i++ {
		if toks[i].Kind != TokenIdent ||
			toks[i+1].Kind != TokenDot ||
			toks[i+2].Kind != TokenIdent || toks[i+2].Text != "get" ||
			toks[i+3].Kind != TokenLParen ||
			toks[i+4].Kind != TokenRParen {
			continue
		}
		// The receiver must be a bare variable reference, not the tail of a
		// field access or call chain.
		if i > 0 {
			prev := toks[i-1].Kind
			if prev == TokenDot || prev == TokenRParen || prev == TokenRBracket {
				continue
			}
		}
		info.HasGetCalls = true
		name := toks[i].Text
		if !seen[name] {
			seen[name] = true
			info.Dependencies = append(info.Dependencies, name)
		}
	}
	return info
}
