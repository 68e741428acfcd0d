package filter

import (
	"strings"
)

// TokenType distinguishes text from the combining operators.
type TokenType int

const (
	TEXT TokenType = iota
	AND
	OR
)

// Token is a lexed piece of a filter query.
type Token struct {
	Type     TokenType
	Literal  string // unescaped text
	Position int    // start offset in the query
	End      int    // end offset in the query
}

// blank reports whether a text token holds only whitespace.
func (tok Token) blank() bool {
	return tok.Type == TEXT && strings.TrimSpace(tok.Literal) == ""
}

// Lexer splits a filter query on unescaped '&' and '|'.
type Lexer struct {
	input        string
	position     int  // current char
	readPosition int  // after current char
	ch           byte // 0 at end of input
}

// NewLexer creates a Lexer for input.
func NewLexer(input string) *Lexer {
	lx := &Lexer{input: input}
	lx.readChar()

	return lx
}

// Tokens lexes the whole input.
func (lx *Lexer) Tokens() (tokens []Token) {

	for lx.position < len(lx.input) {
		tokens = append(tokens, lx.NextToken())
	}
	return
}

// NextToken reads the next operator or run of text.
func (lx *Lexer) NextToken() Token {

	start := lx.position

	switch lx.ch {
	case '&':
		lx.readChar()
		return Token{Type: AND, Literal: "&", Position: start, End: lx.position}
	case '|':
		lx.readChar()
		return Token{Type: OR, Literal: "|", Position: start, End: lx.position}
	}

	var sb strings.Builder
	for lx.position < len(lx.input) && lx.ch != '&' && lx.ch != '|' {
		if lx.ch == '\\' && isEscapable(lx.peekChar()) {
			lx.readChar()
		}
		sb.WriteByte(lx.ch)
		lx.readChar()
	}

	return Token{Type: TEXT, Literal: sb.String(), Position: start, End: lx.position}
}

func (lx *Lexer) readChar() {

	if lx.readPosition >= len(lx.input) {
		lx.ch = 0
	} else {
		lx.ch = lx.input[lx.readPosition]
	}

	lx.position = lx.readPosition
	lx.readPosition++
}

func (lx *Lexer) peekChar() byte {

	if lx.readPosition >= len(lx.input) {
		return 0
	}
	return lx.input[lx.readPosition]
}

func isEscapable(ch byte) bool {
	return ch == '&' || ch == '|' || ch == '\\'
}

// escape backslash-escapes the characters the lexer treats specially.
func escape(text string) string {

	if !strings.ContainsAny(text, `&|\`) {
		return text
	}

	var sb strings.Builder
	for i := 0; i < len(text); i++ {
		if isEscapable(text[i]) {
			sb.WriteByte('\\')
		}
		sb.WriteByte(text[i])
	}
	return sb.String()
}
