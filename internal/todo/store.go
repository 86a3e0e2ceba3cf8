package todo

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// KV is the key-value storage the collection is persisted to.
type KV interface {
	Get(key string) (string, bool, error)
	Put(key, value string) error
}

// Notifier receives the notices produced by store operations.
type Notifier interface {
	Notify(Notice)
}

type NotifierFunc func(Notice)

func (f NotifierFunc) Notify(n Notice) { f(n) }

// Store owns the todo state and applies actions to it through the pure
// reducer, writing the collection to kv after every change.
type Store struct {
	kv       KV
	key      string
	reducer  Reducer
	notifier Notifier
	logger   *log.Logger
	state    State
}

type Option func(*Store)

func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

func WithIDFunc(fn IDFunc) Option {
	return func(s *Store) { s.reducer.NewID = fn }
}

func WithNotifier(n Notifier) Option {
	return func(s *Store) { s.notifier = n }
}

func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewStore builds a store holding the default state. Call Load to apply the
// persisted snapshot.
func NewStore(kv KV, opts ...Option) *Store {
	s := &Store{
		kv:      kv,
		key:     DefaultKey,
		reducer: Reducer{NewID: NewID},
		logger:  log.New(io.Discard),
		state:   NewState(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads the snapshot once. A missing key leaves the collection empty.
// An unreadable snapshot is copied to "<key>.bak" and the store starts
// empty; the returned error describes what was skipped.
func (s *Store) Load() error {
	raw, ok, err := s.kv.Get(s.key)
	if err != nil {
		return fmt.Errorf("read %s: %w", s.key, err)
	}
	if !ok {
		s.logger.Debug("no snapshot stored", "key", s.key)
		return nil
	}
	todos, err := DecodeSnapshot(raw, s.reducer.NewID)
	if err != nil {
		backup := BackupKey(s.key)
		if berr := s.kv.Put(backup, raw); berr != nil {
			s.logger.Error("backup unreadable snapshot", "key", backup, "err", berr)
		}
		return fmt.Errorf("decode %s (kept copy in %s): %w", s.key, backup, err)
	}
	s.state = s.reducer.Reduce(s.state, Load{Todos: todos}).State
	s.logger.Info("snapshot loaded", "key", s.key, "todos", len(todos))
	return nil
}

// Dispatch applies a to the current state. Persistence failures are logged;
// the in-memory state stays authoritative.
func (s *Store) Dispatch(a Action) Result {
	res := s.reducer.Reduce(s.state, a)
	s.state = res.State
	if res.Err != nil {
		s.logger.Debug("action rejected", "action", fmt.Sprintf("%T", a), "err", res.Err)
	}
	if res.Persist {
		if err := s.persist(); err != nil {
			s.logger.Error("persist todos", "key", s.key, "err", err)
		}
	}
	if res.Notice != nil && s.notifier != nil {
		s.notifier.Notify(*res.Notice)
	}
	return res
}

func (s *Store) persist() error {
	raw, err := EncodeSnapshot(s.state.Todos)
	if err != nil {
		return err
	}
	if err := s.kv.Put(s.key, raw); err != nil {
		return err
	}
	s.logger.Debug("todos saved", "key", s.key, "todos", len(s.state.Todos))
	return nil
}

func (s *Store) State() State { return s.state }

func (s *Store) Visible() []Todo { return s.state.Visible() }

func (s *Store) Counts() (active, completed int) { return s.state.Counts() }

func (s *Store) Add(text string) error { return s.Dispatch(Add{Text: text}).Err }

func (s *Store) Toggle(id string) { s.Dispatch(Toggle{ID: id}) }

func (s *Store) Delete(id string) { s.Dispatch(Delete{ID: id}) }

func (s *Store) BeginEdit(id string) { s.Dispatch(BeginEdit{ID: id}) }

func (s *Store) SetEditText(text string) { s.Dispatch(SetEditText{Text: text}) }

func (s *Store) SaveEdit() error { return s.Dispatch(SaveEdit{}).Err }

func (s *Store) CancelEdit() { s.Dispatch(CancelEdit{}) }

func (s *Store) SetFilter(f Filter) { s.Dispatch(SetFilter{Filter: f}) }

func (s *Store) ClearCompleted() { s.Dispatch(ClearCompleted{}) }
