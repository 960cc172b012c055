package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ice_ai_server/internal/types"
)

func sampleProject() *types.GeneratedProject {
	return &types.GeneratedProject{Files: []types.GeneratedFile{
		{Filename: "index.html", Language: "html", Content: "<h1>Hi</h1>"},
	}}
}

func TestMemoryStoreSaveAndGet(t *testing.T) {
	s := NewMemoryStore()

	saved, err := s.Save("alice", "Coffee shop", "a coffee shop site", sampleProject())
	require.NoError(t, err)
	require.NotEmpty(t, saved.ID)

	got, err := s.Get("alice", saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Coffee shop", got.Name)
	assert.Len(t, got.Project.Files, 1)
}

func TestMemoryStoreOwnership(t *testing.T) {
	s := NewMemoryStore()
	saved, _ := s.Save("alice", "Site", "prompt", sampleProject())

	_, err := s.Get("bob", saved.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	assert.ErrorIs(t, s.Delete("bob", saved.ID), ErrForbidden)
}

func TestMemoryStoreListByUser(t *testing.T) {
	s := NewMemoryStore()
	s.Save("alice", "One", "p1", sampleProject())
	s.Save("alice", "Two", "p2", sampleProject())
	s.Save("bob", "Theirs", "p3", sampleProject())

	list, err := s.ListByUser("alice")
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestMemoryStoreShareAndGetShared(t *testing.T) {
	s := NewMemoryStore()
	saved, _ := s.Save("alice", "Site", "prompt", sampleProject())

	rec, err := s.Share("alice", saved.ID)
	require.NoError(t, err)
	require.NotEmpty(t, rec.Token)

	shared, err := s.GetShared(rec.Token)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, shared.ID)
}

func TestMemoryStoreDeleteRemovesShares(t *testing.T) {
	s := NewMemoryStore()
	saved, _ := s.Save("alice", "Site", "prompt", sampleProject())
	rec, _ := s.Share("alice", saved.ID)

	require.NoError(t, s.Delete("alice", saved.ID))

	_, err := s.GetShared(rec.Token)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.Get("alice", saved.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
