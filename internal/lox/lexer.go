package lox

import (
	"strconv"

	"github.com/sdecook/golox/internal/diagnostic"
)

// Lexer turns source bytes into a token stream. Single pass, constant
// lookahead (peek one byte ahead, two for the fractional part of a number).
type Lexer struct {
	source []byte
	line   int
	idx    int  // index of the current character in source
	ch     byte // current character
}

// NewLexer prepares a Lexer over source. Call Scan to run it.
func NewLexer(source []byte) *Lexer {
	return &Lexer{
		source: source,
		line:   1,
		idx:    -1,
	}
}

// next advances to the next byte and reports whether one was available.
func (l *Lexer) next() bool {
	if l.idx >= len(l.source)-1 {
		return false
	}
	l.idx++
	l.ch = l.source[l.idx]
	return true
}

// peek returns the next byte without advancing, or 0 at EOF.
func (l *Lexer) peek() byte {
	if l.idx >= len(l.source)-1 {
		return 0
	}
	return l.source[l.idx+1]
}

func (l *Lexer) peekTwo() byte {
	if l.idx >= len(l.source)-2 {
		return 0
	}
	return l.source[l.idx+2]
}

// comment consumes a line comment up to (not including) the newline or EOF.
func (l *Lexer) comment() {
	for l.peek() != '\n' && l.peek() != 0 {
		l.next()
	}
}

// stringLiteral scans the rest of a `"..."` literal, the opening quote
// already consumed. Embedded newlines advance the line counter.
func (l *Lexer) stringLiteral(errs *diagnostic.Bag) (string, bool) {
	start := l.idx
	openLine := l.line

	for {
		if !l.next() {
			errs.Add(diagnostic.Diagnostic{
				Kind: diagnostic.Syntax, Code: "UnterminatedString",
				Line: openLine, Message: "Unterminated string.",
			})
			return "", false
		}
		if l.ch == '\n' {
			l.line++
		}
		if l.ch == '"' {
			break
		}
	}

	return string(l.source[start+1 : l.idx]), true
}

// numberLiteral scans digits, an optional '.' fraction (only when followed
// by at least one digit), and more digits.
func (l *Lexer) numberLiteral() (lexeme string, value float64) {
	start := l.idx

	for isDigit(l.peek()) {
		l.next()
	}
	if l.peek() == '.' && isDigit(l.peekTwo()) {
		l.next()
		for isDigit(l.peek()) {
			l.next()
		}
	}

	lexeme = string(l.source[start : l.idx+1])
	value, _ = strconv.ParseFloat(lexeme, 64)
	return lexeme, value
}

func (l *Lexer) identifier() string {
	start := l.idx
	for isAlphaNumeric(l.peek()) {
		l.next()
	}
	return string(l.source[start : l.idx+1])
}

// Scan runs the lexer to completion, returning the token stream (always
// terminated by a single EOF token) and any syntax diagnostics collected
// along the way.
func (l *Lexer) Scan() ([]Token, *diagnostic.Bag) {
	errs := &diagnostic.Bag{}
	toks := make([]Token, 0, len(l.source)/4+1)

	for l.next() {
		switch l.ch {
		case ' ', '\t', '\r':
			// skip whitespace
		case '\n':
			l.line++
		case '(':
			toks = append(toks, Token{Type: LEFT_PAREN, Lexeme: "(", Line: l.line})
		case ')':
			toks = append(toks, Token{Type: RIGHT_PAREN, Lexeme: ")", Line: l.line})
		case '{':
			toks = append(toks, Token{Type: LEFT_BRACE, Lexeme: "{", Line: l.line})
		case '}':
			toks = append(toks, Token{Type: RIGHT_BRACE, Lexeme: "}", Line: l.line})
		case ',':
			toks = append(toks, Token{Type: COMMA, Lexeme: ",", Line: l.line})
		case '.':
			toks = append(toks, Token{Type: DOT, Lexeme: ".", Line: l.line})
		case '-':
			toks = append(toks, Token{Type: MINUS, Lexeme: "-", Line: l.line})
		case '+':
			toks = append(toks, Token{Type: PLUS, Lexeme: "+", Line: l.line})
		case ';':
			toks = append(toks, Token{Type: SEMICOLON, Lexeme: ";", Line: l.line})
		case '*':
			toks = append(toks, Token{Type: STAR, Lexeme: "*", Line: l.line})
		case '/':
			if l.peek() == '/' {
				l.comment()
			} else {
				toks = append(toks, Token{Type: SLASH, Lexeme: "/", Line: l.line})
			}
		case '=':
			if l.peek() == '=' {
				l.next()
				toks = append(toks, Token{Type: EQUAL_EQUAL, Lexeme: "==", Line: l.line})
			} else {
				toks = append(toks, Token{Type: EQUAL, Lexeme: "=", Line: l.line})
			}
		case '!':
			if l.peek() == '=' {
				l.next()
				toks = append(toks, Token{Type: BANG_EQUAL, Lexeme: "!=", Line: l.line})
			} else {
				toks = append(toks, Token{Type: BANG, Lexeme: "!", Line: l.line})
			}
		case '<':
			if l.peek() == '=' {
				l.next()
				toks = append(toks, Token{Type: LESS_EQUAL, Lexeme: "<=", Line: l.line})
			} else {
				toks = append(toks, Token{Type: LESS, Lexeme: "<", Line: l.line})
			}
		case '>':
			if l.peek() == '=' {
				l.next()
				toks = append(toks, Token{Type: GREATER_EQUAL, Lexeme: ">=", Line: l.line})
			} else {
				toks = append(toks, Token{Type: GREATER, Lexeme: ">", Line: l.line})
			}
		case '"':
			line := l.line
			str, ok := l.stringLiteral(errs)
			if ok {
				toks = append(toks, Token{Type: STRING, Lexeme: `"` + str + `"`, Literal: str, Line: line})
			}
		default:
			switch {
			case isDigit(l.ch):
				lexeme, value := l.numberLiteral()
				toks = append(toks, Token{Type: NUMBER, Lexeme: lexeme, Literal: value, Line: l.line})
			case isAlpha(l.ch):
				ident := l.identifier()
				typ, ok := keywords[ident]
				if !ok {
					typ = IDENTIFIER
				}
				toks = append(toks, Token{Type: typ, Lexeme: ident, Line: l.line})
			default:
				errs.Add(diagnostic.Diagnostic{
					Kind: diagnostic.Syntax, Code: "UnexpectedCharacter",
					Line: l.line, Message: "Unexpected character: " + string(l.ch),
				})
			}
		}
	}

	toks = append(toks, Token{Type: EOF, Lexeme: "", Line: l.line})
	return toks, errs
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isAlphaNumeric(c byte) bool { return isAlpha(c) || isDigit(c) }
