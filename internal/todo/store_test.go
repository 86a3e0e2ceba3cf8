package todo

import (
	"bytes"
	"errors"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memKV struct {
	data    map[string]string
	puts    int
	failPut error
	failGet error
}

func newMemKV() *memKV { return &memKV{data: map[string]string{}} }

func (m *memKV) Get(key string) (string, bool, error) {
	if m.failGet != nil {
		return "", false, m.failGet
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memKV) Put(key, value string) error {
	if m.failPut != nil {
		return m.failPut
	}
	m.puts++
	m.data[key] = value
	return nil
}

type recorder struct{ notices []Notice }

func (r *recorder) Notify(n Notice) { r.notices = append(r.notices, n) }

func TestStoreStartsEmptyWithoutSnapshot(t *testing.T) {
	kv := newMemKV()
	s := NewStore(kv)
	require.NoError(t, s.Load())
	assert.Empty(t, s.State().Todos)
	assert.Equal(t, FilterAll, s.State().Filter)
	assert.Zero(t, kv.puts)
}

func TestStorePersistsEveryMutation(t *testing.T) {
	kv := newMemKV()
	rec := &recorder{}
	s := NewStore(kv, WithIDFunc(seqIDs()), WithNotifier(rec))

	require.NoError(t, s.Add("a"))
	require.NoError(t, s.Add("b"))
	s.Toggle("id-1")
	s.SetFilter(FilterCompleted)
	s.BeginEdit("id-2")
	s.SetEditText("bee")
	require.NoError(t, s.SaveEdit())
	s.Delete("id-1")

	assert.Equal(t, 5, kv.puts)
	assert.JSONEq(t, `[{"id":"id-2","text":"bee","completed":false}]`, kv.data[DefaultKey])

	titles := make([]string, 0, len(rec.notices))
	for _, n := range rec.notices {
		titles = append(titles, n.Title)
	}
	assert.Equal(t, []string{"Todo added", "Todo added", "Todo updated", "Todo deleted"}, titles)
}

func TestStoreMissingIDStillPersists(t *testing.T) {
	kv := newMemKV()
	rec := &recorder{}
	s := NewStore(kv, WithIDFunc(seqIDs()), WithNotifier(rec))
	require.NoError(t, s.Add("a"))

	s.Toggle("gone")
	s.Delete("gone")

	assert.Equal(t, 3, kv.puts)
	assert.Len(t, s.State().Todos, 1)
	require.Len(t, rec.notices, 2)
	assert.Equal(t, "Todo deleted", rec.notices[1].Title)
}

func TestStoreValidationNotices(t *testing.T) {
	kv := newMemKV()
	rec := &recorder{}
	s := NewStore(kv, WithIDFunc(seqIDs()), WithNotifier(rec))

	err := s.Add("   ")
	assert.True(t, IsValidation(err, CodeEmptyAdd))
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, CodeEmptyAdd, ve.Code)
	assert.Zero(t, kv.puts)

	require.NoError(t, s.Add("a"))
	s.BeginEdit("id-1")
	s.SetEditText("")
	assert.True(t, IsValidation(s.SaveEdit(), CodeEmptyEdit))
	assert.True(t, s.State().Editing("id-1"))
	assert.Equal(t, "a", s.State().Todos[0].Text)

	require.Len(t, rec.notices, 3)
	assert.Equal(t, VariantDestructive, rec.notices[0].Variant)
	assert.Equal(t, VariantNormal, rec.notices[1].Variant)
	assert.Equal(t, VariantDestructive, rec.notices[2].Variant)
}

func TestStoreReloadsFromSameKV(t *testing.T) {
	kv := newMemKV()
	first := NewStore(kv, WithKey("custom"))
	require.NoError(t, first.Add("a"))
	require.NoError(t, first.Add("b"))
	first.Toggle(first.State().Todos[1].ID)
	first.SetFilter(FilterActive)

	second := NewStore(kv, WithKey("custom"))
	require.NoError(t, second.Load())
	assert.Equal(t, first.State().Todos, second.State().Todos)
	assert.Equal(t, FilterAll, second.State().Filter)
	_, ok := kv.data[DefaultKey]
	assert.False(t, ok)
}

func TestStoreKeepsStateWhenPersistFails(t *testing.T) {
	kv := newMemKV()
	kv.failPut = errors.New("quota exceeded")
	var buf bytes.Buffer
	s := NewStore(kv, WithLogger(log.New(&buf)))

	require.NoError(t, s.Add("a"))
	assert.Len(t, s.State().Todos, 1)
	assert.Contains(t, buf.String(), "quota exceeded")
}

func TestStoreLoadBacksUpUnreadableSnapshot(t *testing.T) {
	kv := newMemKV()
	kv.data[DefaultKey] = "{broken"
	s := NewStore(kv)

	err := s.Load()
	require.Error(t, err)
	assert.Equal(t, "{broken", kv.data[DefaultKey+".bak"])
	assert.Empty(t, s.State().Todos)
}

func TestStoreLoadReadError(t *testing.T) {
	kv := newMemKV()
	kv.failGet = errors.New("disk gone")
	s := NewStore(kv)
	assert.ErrorContains(t, s.Load(), "disk gone")
}

func TestStoreCountsAndVisible(t *testing.T) {
	s := NewStore(newMemKV(), WithIDFunc(seqIDs()))
	for _, text := range []string{"a", "b", "c"} {
		require.NoError(t, s.Add(text))
	}
	s.Toggle("id-2")
	s.ClearCompleted()

	active, completed := s.Counts()
	assert.Equal(t, 2, active)
	assert.Zero(t, completed)
	require.Len(t, s.Visible(), 2)
	assert.Equal(t, "c", s.Visible()[1].Text)
}
