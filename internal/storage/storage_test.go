package storage

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "todo.db")
	s, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s, path
}

func TestOpenRejectsEmptyPath(t *testing.T) {
	_, err := Open("")
	assert.Error(t, err)
}

func TestGetMissingKey(t *testing.T) {
	s, _ := openTemp(t)
	v, ok, err := s.Get("todos")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, v)
}

func TestPutOverwrites(t *testing.T) {
	s, _ := openTemp(t)
	require.NoError(t, s.Put("todos", `[]`))
	require.NoError(t, s.Put("todos", `[{"id":"1","text":"a","completed":false}]`))
	require.NoError(t, s.Put("theme", "dark"))

	v, ok, err := s.Get("todos")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"1","text":"a","completed":false}]`, v)

	v, _, err = s.Get("theme")
	require.NoError(t, err)
	assert.Equal(t, "dark", v)
}

func TestValuesSurviveReopen(t *testing.T) {
	s, path := openTemp(t)
	require.NoError(t, s.Put("todos", "payload"))
	require.NoError(t, s.Close())

	again, err := Open(path)
	require.NoError(t, err)
	defer again.Close()
	v, ok, err := again.Get("todos")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "payload", v)
}

func TestSqliteDSN(t *testing.T) {
	assert.Equal(t, "file:mem.db?mode=memory", sqliteDSN("file:mem.db?mode=memory"))

	dsn := sqliteDSN(filepath.Join(t.TempDir(), "x.db"))
	assert.True(t, strings.HasPrefix(dsn, "file://"), dsn)
	assert.Contains(t, dsn, "mode=rwc")
	assert.Contains(t, dsn, "busy_timeout")
}
