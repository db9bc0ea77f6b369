package kry

import (
	"strconv"
)

// Parser is a recursive descent parser for .kry blocks. It consumes the
// token stream of one compilation unit and produces a single top-level
// ComponentBlock. Parsing is pure: no side effects, and failures are
// positioned diagnostics rather than panics.
type Parser struct {
	tokens   []Token
	pos      int
	source   string
	filename string
}

// NewParser lexes the source and returns a parser over its tokens.
func NewParser(filename, source string) (*Parser, error) {
	tokens, err := NewLexer(filename, source).Lex()
	if err != nil {
		return nil, err
	}
	return &Parser{tokens: tokens, source: source, filename: filename}, nil
}

// Parse is a convenience wrapper: lex and parse one top-level block.
func Parse(filename, source string) (*ComponentBlock, error) {
	p, err := NewParser(filename, source)
	if err != nil {
		return nil, err
	}
	return p.Parse()
}

// Parse parses exactly one top-level block. Unconsumed tokens after the
// matching closing brace are an error.
func (p *Parser) Parse() (*ComponentBlock, error) {
	block, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.Kind != TokenEOF {
		return nil, errorAt(tok.Pos, "unexpected %s after top-level block", tok.Kind)
	}
	return block, nil
}

func (p *Parser) parseBlock() (*ComponentBlock, error) {
	name := p.peek()
	if name.Kind != TokenIdent {
		return nil, errorAt(name.Pos, "expected component name, found %s", name.Kind)
	}
	p.advance()

	if tok := p.peek(); tok.Kind != TokenLBrace {
		return nil, errorAt(tok.Pos, "expected '{' after %q, found %s", name.Text, tok.Kind)
	}
	p.advance()

	block := &ComponentBlock{Name: name.Text, NamePos: name.Pos}

	for {
		tok := p.peek()
		switch tok.Kind {
		case TokenRBrace:
			p.advance()
			return block, nil
		case TokenEOF:
			return nil, errorAt(tok.Pos, "unexpected end of input, expected '}' to close %q", name.Text)
		}

		// Lookahead decides property vs child: an identifier immediately
		// followed by ':' is a property; an identifier followed by '{' is a
		// nested block; anything else is an opaque expression child.
		if tok.Kind == TokenIdent && p.peekAt(1).Kind == TokenColon {
			p.advance()
			p.advance()
			value, err := p.parseValue()
			if err != nil {
				return nil, err
			}
			block.Properties = append(block.Properties, Property{
				Name:  tok.Text,
				Pos:   tok.Pos,
				Value: value,
			})
		} else if tok.Kind == TokenIdent && p.peekAt(1).Kind == TokenLBrace {
			child, err := p.parseBlock()
			if err != nil {
				return nil, err
			}
			block.Children = append(block.Children, Child{Block: child})
		} else {
			expr, err := p.parseValue()
			if err != nil {
				return nil, err
			}
			block.Children = append(block.Children, Child{Expr: &expr})
		}

		// Trailing separators between entries are optional.
		if p.peek().Kind == TokenComma {
			p.advance()
		}
	}
}

// parseValue collects one expression term: every token up to the next
// separator, closing brace or start of a sibling entry at nesting depth
// zero, then classifies it as a literal or leaves it opaque.
//
// Separators between entries are optional, so collection also stops when
// the last collected token can end an expression and the lookahead begins a
// new entry: an identifier followed by ':' (next property) or '{' (nested
// block), or any term-starting token on a later line.
func (p *Parser) parseValue() (Expr, error) {
	start := p.peek()
	if start.Kind == TokenEOF {
		return Expr{}, errorAt(start.Pos, "expected value, found end of input")
	}

	var collected []Token
	depth := 0
	for {
		tok := p.peek()
		if tok.Kind == TokenEOF {
			return Expr{}, errorAt(start.Pos, "unexpected end of input in expression")
		}
		if depth == 0 && (tok.Kind == TokenComma || tok.Kind == TokenRBrace) {
			break
		}
		if depth == 0 && len(collected) > 0 && canEndTerm(collected[len(collected)-1].Kind) {
			if tok.Kind == TokenIdent {
				if k := p.peekAt(1).Kind; k == TokenColon || k == TokenLBrace {
					break
				}
			}
			if tok.Pos.Line > collected[len(collected)-1].Pos.Line && canStartTerm(tok.Kind) {
				break
			}
		}
		switch tok.Kind {
		case TokenLBrace, TokenLParen, TokenLBracket:
			depth++
		case TokenRBrace, TokenRParen, TokenRBracket:
			depth--
			if depth < 0 {
				return Expr{}, errorAt(tok.Pos, "unbalanced %s in expression", tok.Kind)
			}
		}
		collected = append(collected, tok)
		p.advance()
	}
	if len(collected) == 0 {
		return Expr{}, errorAt(start.Pos, "expected value, found %s", p.peek().Kind)
	}

	raw := p.source[collected[0].Start:collected[len(collected)-1].End]
	expr := Expr{Raw: raw, Tokens: collected, Pos: start.Pos}

	// Classify single-token (and negated-number) literals; everything else
	// stays opaque.
	if len(collected) == 1 {
		tok := collected[0]
		switch tok.Kind {
		case TokenString:
			s, err := strconv.Unquote(tok.Text)
			if err != nil {
				return Expr{}, errorAt(tok.Pos, "invalid string literal %s", tok.Text)
			}
			expr.Kind = ExprString
			expr.Str = s
			return expr, nil
		case TokenNumber:
			n, err := strconv.ParseFloat(tok.Text, 64)
			if err != nil {
				return Expr{}, errorAt(tok.Pos, "invalid number literal %q", tok.Text)
			}
			expr.Kind = ExprNumber
			expr.Num = n
			return expr, nil
		case TokenIdent:
			switch tok.Text {
			case "true", "false":
				expr.Kind = ExprBool
				expr.Bool = tok.Text == "true"
			default:
				expr.Kind = ExprIdent
				expr.Ident = tok.Text
			}
			return expr, nil
		}
	}
	if len(collected) == 2 && collected[0].Kind == TokenOp && collected[0].Text == "-" &&
		collected[1].Kind == TokenNumber {
		n, err := strconv.ParseFloat(collected[1].Text, 64)
		if err != nil {
			return Expr{}, errorAt(collected[1].Pos, "invalid number literal %q", collected[1].Text)
		}
		expr.Kind = ExprNumber
		expr.Num = -n
		return expr, nil
	}

	expr.Kind = ExprOpaque
	return expr, nil
}

// canEndTerm reports whether an expression can be syntactically complete
// after a token of this kind. A trailing operator, dot or opening bracket
// means the expression continues across separators and line breaks.
func canEndTerm(k TokenKind) bool {
	switch k {
	case TokenIdent, TokenString, TokenNumber, TokenRParen, TokenRBracket, TokenRBrace:
		return true
	}
	return false
}

// canStartTerm reports whether a token of this kind can begin a new entry
// rather than continue the current expression.
func canStartTerm(k TokenKind) bool {
	switch k {
	case TokenIdent, TokenString, TokenNumber:
		return true
	}
	return false
}

func (p *Parser) peek() Token {
	return p.peekAt(0)
}

func (p *Parser) peekAt(n int) Token {
	if p.pos+n >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // EOF
	}
	return p.tokens[p.pos+n]
}

func (p *Parser) advance() {
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
}
