package shellmenu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreIsCaseInsensitive(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.CreateKey(`Software\Classes\Directory\Shell`))

	exists, err := s.KeyExists(`software\classes\directory\shell`)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, s.SetString(`SOFTWARE\Classes\Directory\shell`, "SubCommands", "x"))
	v, ok := s.Value(`Software\Classes\Directory\Shell`, "subcommands")
	assert.True(t, ok)
	assert.Equal(t, "x", v)

	names, err := s.SubKeys(`Software\Classes\Directory`)
	require.NoError(t, err)
	assert.Equal(t, []string{"Shell"}, names)
}

func TestMemoryStoreDeleteKey(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.CreateKey(`a\b\c`))

	err := s.DeleteKey(`a\b`)
	assert.True(t, errors.Is(err, ErrKeyHasChildren))

	require.NoError(t, s.DeleteKey(`a\b\c`))
	require.NoError(t, s.DeleteKey(`a\b`))

	err = s.DeleteKey(`a\b`)
	assert.True(t, IsNotFound(err))
	err = s.DeleteKey(`x\y`)
	assert.True(t, IsNotFound(err))
}

func TestMemoryStoreValues(t *testing.T) {
	s := NewMemoryStore()

	assert.True(t, IsNotFound(s.SetString(`missing`, "", "v")))

	require.NoError(t, s.CreateKey(`k`))
	assert.True(t, IsNotFound(s.DeleteValue(`k`, "Icon")))
	require.NoError(t, s.SetString(`k`, "Icon", "i"))
	require.NoError(t, s.DeleteValue(`k`, "icon"))
	_, ok := s.Value(`k`, "Icon")
	assert.False(t, ok)
}

func TestMemoryStoreMutationLog(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.CreateKey(`k`))
	require.NoError(t, s.SetString(`k`, "", "cmd"))
	assert.Error(t, s.DeleteKey(`nope`))
	require.NoError(t, s.DeleteKey(`k`))

	assert.Equal(t, []Mutation{
		{Op: OpCreateKey, Path: `k`},
		{Op: OpSetString, Path: `k`, Name: "", Value: "cmd"},
		{Op: OpDeleteKey, Path: `k`},
	}, s.Mutations())

	s.ResetMutations()
	assert.Empty(t, s.Mutations())
}

func TestMemoryStoreFailOn(t *testing.T) {
	s := NewMemoryStore()
	s.FailOn = func(op, path string) error {
		if op == OpCreateKey {
			return ErrAccessDenied
		}
		return nil
	}
	assert.True(t, errors.Is(s.CreateKey(`k`), ErrAccessDenied))
	assert.Empty(t, s.Keys())
	assert.Empty(t, s.Mutations())
}
