package lox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexerPunctuationAndOperators(t *testing.T) {
	toks, errs := NewLexer([]byte("(){},.-+;*!= == <= >=")).Scan()
	require.True(t, errs.Empty())

	want := []TokenType{
		LEFT_PAREN, RIGHT_PAREN, LEFT_BRACE, RIGHT_BRACE, COMMA, DOT, MINUS,
		PLUS, SEMICOLON, STAR, BANG_EQUAL, EQUAL_EQUAL, LESS_EQUAL,
		GREATER_EQUAL, EOF,
	}
	require.Len(t, toks, len(want))
	for i, tt := range want {
		assert.Equal(t, tt, toks[i].Type, "token %d", i)
	}
}

func TestLexerComment(t *testing.T) {
	toks, errs := NewLexer([]byte("1 // a comment\n2")).Scan()
	require.True(t, errs.Empty())
	require.Len(t, toks, 3)
	assert.Equal(t, NUMBER, toks[0].Type)
	assert.Equal(t, NUMBER, toks[1].Type)
	assert.Equal(t, 2, toks[1].Line)
}

func TestLexerNumberBoundaries(t *testing.T) {
	toks, errs := NewLexer([]byte("123.456 123. .456")).Scan()
	require.True(t, errs.Empty())
	// "123." does not consume the trailing dot as a fraction (no digit follows).
	require.Len(t, toks, 6)
	assert.Equal(t, 123.456, toks[0].Literal)
	assert.Equal(t, "123.456", toks[0].Lexeme)
	assert.Equal(t, NUMBER, toks[1].Type)
	assert.Equal(t, "123", toks[1].Lexeme)
	assert.Equal(t, DOT, toks[2].Type)
}

func TestLexerStringLiteral(t *testing.T) {
	toks, errs := NewLexer([]byte(`"hello world"`)).Scan()
	require.True(t, errs.Empty())
	require.Len(t, toks, 2)
	assert.Equal(t, STRING, toks[0].Type)
	assert.Equal(t, "hello world", toks[0].Literal)
}

func TestLexerUnterminatedStringReportsOpeningLine(t *testing.T) {
	_, errs := NewLexer([]byte("\n\n\"unterminated")).Scan()
	require.False(t, errs.Empty())
	diags := errs.Diagnostics()
	require.Len(t, diags, 1)
	assert.Equal(t, 3, diags[0].Line)
	assert.Equal(t, "UnterminatedString", diags[0].Code)
}

func TestLexerKeywordsAndIdentifiers(t *testing.T) {
	toks, errs := NewLexer([]byte("and_ class and")).Scan()
	require.True(t, errs.Empty())
	require.Len(t, toks, 4)
	assert.Equal(t, IDENTIFIER, toks[0].Type)
	assert.Equal(t, "and_", toks[0].Lexeme)
	assert.Equal(t, CLASS, toks[1].Type)
	assert.Equal(t, AND, toks[2].Type)
}

func TestLexerUnexpectedCharacter(t *testing.T) {
	_, errs := NewLexer([]byte("@")).Scan()
	require.False(t, errs.Empty())
	assert.Equal(t, "UnexpectedCharacter", errs.Diagnostics()[0].Code)
}
