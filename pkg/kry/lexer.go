package kry

import (
	"strings"
	"unicode"
)

// Lexer turns .kry source into a token stream.
type Lexer struct {
	input    string
	pos      int
	line     int
	col      int
	filename string
}

// NewLexer creates a lexer over one compilation unit.
func NewLexer(filename, input string) *Lexer {
	return &Lexer{
		input:    input,
		pos:      0,
		line:     1,
		col:      1,
		filename: filename,
	}
}

// Lex tokenizes the whole input. The returned slice always ends with a
// TokenEOF carrying the final position.
func (l *Lexer) Lex() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == TokenEOF {
			return tokens, nil
		}
	}
}

func (l *Lexer) next() (Token, error) {
	l.skipSpaceAndComments()

	pos := l.position()
	start := l.pos

	if l.pos >= len(l.input) {
		return Token{Kind: TokenEOF, Pos: pos, Start: start, End: start}, nil
	}

	ch := rune(l.input[l.pos])
	switch {
	case ch == '{':
		l.advance()
		return l.token(TokenLBrace, pos, start), nil
	case ch == '}':
		l.advance()
		return l.token(TokenRBrace, pos, start), nil
	case ch == '(':
		l.advance()
		return l.token(TokenLParen, pos, start), nil
	case ch == ')':
		l.advance()
		return l.token(TokenRParen, pos, start), nil
	case ch == '[':
		l.advance()
		return l.token(TokenLBracket, pos, start), nil
	case ch == ']':
		l.advance()
		return l.token(TokenRBracket, pos, start), nil
	case ch == ':':
		l.advance()
		return l.token(TokenColon, pos, start), nil
	case ch == ',':
		l.advance()
		return l.token(TokenComma, pos, start), nil
	case ch == '.':
		// A dot starting a number ( .5 ) is lexed as a number.
		if l.pos+1 < len(l.input) && unicode.IsDigit(rune(l.input[l.pos+1])) {
			return l.lexNumber(pos, start)
		}
		l.advance()
		return l.token(TokenDot, pos, start), nil
	case ch == '"':
		return l.lexString(pos, start)
	case unicode.IsDigit(ch):
		return l.lexNumber(pos, start)
	case unicode.IsLetter(ch) || ch == '_':
		l.lexIdent()
		return l.token(TokenIdent, pos, start), nil
	default:
		// Everything else is an operator run, carried verbatim for opaque
		// expressions.
		for l.pos < len(l.input) && isOpChar(rune(l.input[l.pos])) {
			l.advance()
		}
		if l.pos == start {
			return Token{}, errorAt(pos, "unexpected character %q", ch)
		}
		return l.token(TokenOp, pos, start), nil
	}
}

func (l *Lexer) lexString(pos Position, start int) (Token, error) {
	l.advance() // opening quote
	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		if ch == '\\' && l.pos+1 < len(l.input) {
			l.advance()
			l.advance()
			continue
		}
		if ch == '"' {
			l.advance()
			return l.token(TokenString, pos, start), nil
		}
		if ch == '\n' {
			return Token{}, errorAt(pos, "unterminated string literal")
		}
		l.advance()
	}
	return Token{}, errorAt(pos, "unterminated string literal")
}

func (l *Lexer) lexNumber(pos Position, start int) (Token, error) {
	seenDot := false
	for l.pos < len(l.input) {
		ch := rune(l.input[l.pos])
		if unicode.IsDigit(ch) {
			l.advance()
			continue
		}
		if ch == '.' && !seenDot && l.pos+1 < len(l.input) && unicode.IsDigit(rune(l.input[l.pos+1])) {
			seenDot = true
			l.advance()
			continue
		}
		break
	}
	return l.token(TokenNumber, pos, start), nil
}

func (l *Lexer) lexIdent() {
	for l.pos < len(l.input) {
		ch := rune(l.input[l.pos])
		if !unicode.IsLetter(ch) && !unicode.IsDigit(ch) && ch != '_' {
			break
		}
		l.advance()
	}
}

func (l *Lexer) skipSpaceAndComments() {
	for l.pos < len(l.input) {
		ch := rune(l.input[l.pos])
		if unicode.IsSpace(ch) {
			l.advance()
			continue
		}
		if ch == '/' && l.pos+1 < len(l.input) && l.input[l.pos+1] == '/' {
			for l.pos < len(l.input) && l.input[l.pos] != '\n' {
				l.advance()
			}
			continue
		}
		break
	}
}

func (l *Lexer) token(kind TokenKind, pos Position, start int) Token {
	return Token{
		Kind:  kind,
		Text:  l.input[start:l.pos],
		Pos:   pos,
		Start: start,
		End:   l.pos,
	}
}

func (l *Lexer) position() Position {
	return Position{File: l.filename, Line: l.line, Col: l.col}
}

func (l *Lexer) advance() {
	if l.pos < len(l.input) {
		if l.input[l.pos] == '\n' {
			l.line++
			l.col = 1
		} else {
			l.col++
		}
		l.pos++
	}
}

func isOpChar(ch rune) bool {
	return strings.ContainsRune("+-*/%<>=!&|?^~", ch)
}
