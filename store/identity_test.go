package store

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var identityPattern = regexp.MustCompile(`^user_\d+_[0-9a-f]{9}$`)

func TestIdentityFormat(t *testing.T) {
	p := NewIdentityProvider(NewFileStore(t.TempDir()))
	assert.Regexp(t, identityPattern, p.Identity())
}

func TestIdentityStableAcrossProviders(t *testing.T) {
	kv := NewFileStore(t.TempDir())

	first := NewIdentityProvider(kv).Identity()
	second := NewIdentityProvider(kv).Identity()
	assert.Equal(t, first, second)
}

func TestIdentityIgnoresForeignValue(t *testing.T) {
	kv := NewFileStore(t.TempDir())
	require.NoError(t, kv.Set(KeyIdentity, "something else entirely"))

	token := NewIdentityProvider(kv).Identity()
	assert.Regexp(t, identityPattern, token)

	persisted, ok := kv.Get(KeyIdentity)
	require.True(t, ok)
	assert.Equal(t, token, persisted)
}
