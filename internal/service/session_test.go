package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// -- SessionRegistry tests --

func TestSessionRegistry_CreateResolve(t *testing.T) {
	registry := NewSessionRegistry()

	session := registry.Create("alice")

	assert.NotEmpty(t, session.Token)
	assert.Equal(t, "alice", session.Login)
	assert.False(t, session.CreatedAt.IsZero())

	resolved, ok := registry.Resolve(session.Token)
	assert.True(t, ok)
	assert.Same(t, session, resolved)
}

func TestSessionRegistry_TokensAreUnique(t *testing.T) {
	registry := NewSessionRegistry()

	first := registry.Create("alice")
	second := registry.Create("alice")

	assert.NotEqual(t, first.Token, second.Token)
}

func TestSessionRegistry_Remove(t *testing.T) {
	registry := NewSessionRegistry()
	session := registry.Create("alice")

	assert.True(t, registry.Remove(session.Token))
	assert.False(t, registry.Remove(session.Token))

	_, ok := registry.Resolve(session.Token)
	assert.False(t, ok)
}

func TestSessionRegistry_ResolveUnknownToken(t *testing.T) {
	registry := NewSessionRegistry()

	_, ok := registry.Resolve("no-such-token")

	assert.False(t, ok)
}
