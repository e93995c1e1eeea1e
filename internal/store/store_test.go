package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_SetGetRoundTrip(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.Set("k", []byte("hello")))

	got, err := s.Get("k")
	require.NoError(t, err)
	require.Equal(t, []byte("hello"), got)
}

func TestStore_GetMissingKeyIsNilNil(t *testing.T) {
	s := openTestStore(t)

	got, err := s.Get("absent")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestStore_SetOverwrites(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.Set("k", []byte("first")))
	require.NoError(t, s.Set("k", []byte("second")))

	got, err := s.Get("k")
	require.NoError(t, err)
	require.Equal(t, []byte("second"), got)
}

func TestStore_Delete(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.Set("k", []byte("v")))
	require.NoError(t, s.Delete("k"))

	got, err := s.Get("k")
	require.NoError(t, err)
	require.Nil(t, got)

	// Deleting an absent key is fine.
	require.NoError(t, s.Delete("k"))
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Set("k", []byte("durable")))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.Get("k")
	require.NoError(t, err)
	require.Equal(t, []byte("durable"), got)
}

func TestDefaultDBPath_EnvOverride(t *testing.T) {
	custom := filepath.Join(t.TempDir(), "nested", "study.db")
	t.Setenv("STUDY_DB", custom)

	p, err := DefaultDBPath()
	require.NoError(t, err)
	require.Equal(t, custom, p)

	// The parent directory is created eagerly.
	_, err = os.Stat(filepath.Dir(custom))
	require.NoError(t, err)
}

func TestDefaultDBPath_XDGDataHome(t *testing.T) {
	dataHome := t.TempDir()
	t.Setenv("STUDY_DB", "")
	t.Setenv("XDG_DATA_HOME", dataHome)

	p, err := DefaultDBPath()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dataHome, "study", "study.db"), p)
}
