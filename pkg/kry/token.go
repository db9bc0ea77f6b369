package kry

import "fmt"

// TokenKind classifies one lexical token of the block grammar.
type TokenKind uint8

const (
	TokenEOF TokenKind = iota
	TokenIdent
	TokenString
	TokenNumber
	TokenLBrace
	TokenRBrace
	TokenLParen
	TokenRParen
	TokenLBracket
	TokenRBracket
	TokenColon
	TokenComma
	TokenDot
	// TokenOp carries any other run of symbol characters verbatim. The
	// grammar never interprets these; they only occur inside opaque
	// expressions, which are passed through to the host.
	TokenOp
)

func (k TokenKind) String() string {
	switch k {
	case TokenEOF:
		return "end of input"
	case TokenIdent:
		return "identifier"
	case TokenString:
		return "string"
	case TokenNumber:
		return "number"
	case TokenLBrace:
		return "'{'"
	case TokenRBrace:
		return "'}'"
	case TokenLParen:
		return "'('"
	case TokenRParen:
		return "')'"
	case TokenLBracket:
		return "'['"
	case TokenRBracket:
		return "']'"
	case TokenColon:
		return "':'"
	case TokenComma:
		return "','"
	case TokenDot:
		return "'.'"
	default:
		return "operator"
	}
}

// Position is a source location.
type Position struct {
	File string
	Line int
	Col  int
}

func (p Position) String() string {
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Col)
}

// Token is one lexical token. Text is the exact source text (strings keep
// their quotes); Start and End are byte offsets into the source, so token
// runs can be sliced back out verbatim for opaque expressions.
type Token struct {
	Kind  TokenKind
	Text  string
	Pos   Position
	Start int
	End   int
}

// Error is a positioned compile diagnostic.
type Error struct {
	Pos Position
	Msg string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

func errorAt(pos Position, format string, args ...any) *Error {
	return &Error{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}
