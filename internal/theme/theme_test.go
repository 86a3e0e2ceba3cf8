package theme

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memKV struct {
	data    map[string]string
	failPut bool
}

func (m *memKV) Get(key string) (string, bool, error) {
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memKV) Put(key, value string) error {
	if m.failPut {
		return errors.New("read-only")
	}
	m.data[key] = value
	return nil
}

func TestProviderUsesFallbackWithoutStoredTheme(t *testing.T) {
	p := NewProvider(&memKV{data: map[string]string{}}, Dark, nil)
	assert.Equal(t, Dark, p.Theme())
}

func TestProviderPrefersStoredTheme(t *testing.T) {
	kv := &memKV{data: map[string]string{Key: "dark"}}
	p := NewProvider(kv, Light, nil)
	assert.Equal(t, Dark, p.Theme())
}

func TestProviderIgnoresInvalidStoredTheme(t *testing.T) {
	kv := &memKV{data: map[string]string{Key: "purple"}}
	p := NewProvider(kv, Light, nil)
	assert.Equal(t, Light, p.Theme())
}

func TestToggleFlipsAndPersists(t *testing.T) {
	kv := &memKV{data: map[string]string{}}
	p := NewProvider(kv, Light, nil)

	next, err := p.Toggle()
	require.NoError(t, err)
	assert.Equal(t, Dark, next)
	assert.Equal(t, "dark", kv.data[Key])

	next, err = p.Toggle()
	require.NoError(t, err)
	assert.Equal(t, Light, next)
	assert.Equal(t, "light", kv.data[Key])
}

func TestSetThemeKeepsChoiceWhenWriteFails(t *testing.T) {
	kv := &memKV{data: map[string]string{}, failPut: true}
	p := NewProvider(kv, Light, nil)

	err := p.SetTheme(Dark)
	assert.Error(t, err)
	assert.Equal(t, Dark, p.Theme())
}

func TestSetThemeRejectsUnknown(t *testing.T) {
	p := NewProvider(&memKV{data: map[string]string{}}, Light, nil)
	assert.ErrorIs(t, p.SetTheme("sepia"), ErrUnknownTheme)
	assert.Equal(t, Light, p.Theme())
}

func TestParse(t *testing.T) {
	got, err := Parse(" DARK ")
	require.NoError(t, err)
	assert.Equal(t, Dark, got)
	assert.Equal(t, Light, got.Opposite())

	_, err = Parse("")
	assert.ErrorIs(t, err, ErrUnknownTheme)
}
