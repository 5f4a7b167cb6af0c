package lox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvironmentDefineGetAssign(t *testing.T) {
	env := NewEnvironment()
	env.Define("a", 1.0)

	v, err := env.Get(Token{Lexeme: "a"})
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)

	require.NoError(t, env.Assign(Token{Lexeme: "a"}, 2.0))
	v, err = env.Get(Token{Lexeme: "a"})
	require.NoError(t, err)
	assert.Equal(t, 2.0, v)
}

func TestEnvironmentGetUndefinedIsError(t *testing.T) {
	env := NewEnvironment()
	_, err := env.Get(Token{Lexeme: "missing"})
	require.Error(t, err)
}

func TestEnvironmentAncestorChain(t *testing.T) {
	global := NewEnvironment()
	global.Define("a", "global")
	inner := NewEnclosedEnvironment(global)
	inner.Define("a", "inner")

	v, err := inner.GetAt(0, "a")
	require.NoError(t, err)
	assert.Equal(t, "inner", v)

	v, err = inner.GetAt(1, "a")
	require.NoError(t, err)
	assert.Equal(t, "global", v)
}

func TestEnvironmentAssignToEnclosing(t *testing.T) {
	global := NewEnvironment()
	global.Define("a", 1.0)
	inner := NewEnclosedEnvironment(global)

	require.NoError(t, inner.Assign(Token{Lexeme: "a"}, 9.0))
	v, err := global.Get(Token{Lexeme: "a"})
	require.NoError(t, err)
	assert.Equal(t, 9.0, v)
}
