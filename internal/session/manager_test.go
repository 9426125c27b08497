package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ugaemi/citypursuit/internal/game"
	"github.com/ugaemi/citypursuit/internal/store"
)

func TestManager_CreateAndFind(t *testing.T) {
	m, _ := setupTestManager(t, false)

	s := m.CreateSession()
	require.NotNil(t, s)
	assert.Len(t, s.Code, codeLength)
	assert.Same(t, s, m.GetSession(s.Code))
	assert.Equal(t, 1, m.SessionCount())

	s.AddClient(mockClient("c1"))
	assert.Same(t, s, m.FindSessionByClientID("c1"))
	assert.Nil(t, m.FindSessionByClientID("nobody"))
	assert.Nil(t, m.GetSession("ZZZZ0"))
}

func TestManager_RemoveSession(t *testing.T) {
	m, _ := setupTestManager(t, false)
	s := m.CreateSession()
	s.Start()

	m.RemoveSession(s.Code)
	assert.Nil(t, m.GetSession(s.Code))
	assert.Equal(t, StateEnded, s.Info().State)
	assert.Equal(t, 0, m.SessionCount())

	// removing twice is harmless
	m.RemoveSession(s.Code)
}

func TestManager_StopAll(t *testing.T) {
	m, _ := setupTestManager(t, false)
	a, b := m.CreateSession(), m.CreateSession()
	a.Start()

	m.StopAll()
	assert.Equal(t, 0, m.SessionCount())
	assert.Equal(t, StateEnded, a.Info().State)
	assert.Equal(t, StateEnded, b.Info().State)
}

func TestManager_InvalidLayout(t *testing.T) {
	settings := DefaultSettings()
	settings.Layout = &game.Layout{}

	_, err := NewManager(settings, store.NewMemoryStore())
	assert.ErrorIs(t, err, game.ErrInvalidLayout)
}

func TestManager_GeneratedLayoutReplays(t *testing.T) {
	m, err := NewManager(DefaultSettings(), store.NewMemoryStore())
	require.NoError(t, err)

	a, b := m.newWorld("ABCD"), m.newWorld("ABCD")
	other := m.newWorld("WXYZ")

	assert.Equal(t, a.Layout().Origin, b.Layout().Origin)
	assert.NotEqual(t, a.Layout().Origin, other.Layout().Origin)
	assert.Len(t, a.Layout().Parked, game.DefaultParked)
}
