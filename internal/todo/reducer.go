package todo

import "strings"

// Action is a state transition request handled by Reducer.Reduce.
type Action interface {
	action()
}

type (
	Add            struct{ Text string }
	Toggle         struct{ ID string }
	Delete         struct{ ID string }
	BeginEdit      struct{ ID string }
	SetEditText    struct{ Text string }
	SaveEdit       struct{}
	CancelEdit     struct{}
	SetFilter      struct{ Filter Filter }
	ClearCompleted struct{}
	// Load replaces the collection with a snapshot read at startup.
	Load struct{ Todos []Todo }
)

func (Add) action()            {}
func (Toggle) action()         {}
func (Delete) action()         {}
func (BeginEdit) action()      {}
func (SetEditText) action()    {}
func (SaveEdit) action()       {}
func (CancelEdit) action()     {}
func (SetFilter) action()      {}
func (ClearCompleted) action() {}
func (Load) action()           {}

// Result is the outcome of one transition. Persist is set whenever a
// collection operation completes, even when it left the list unchanged
// (toggle or delete of an absent id, ClearCompleted with nothing done).
type Result struct {
	State   State
	Notice  *Notice
	Persist bool
	Err     error
}

var (
	noticeAdded = Notice{
		Title:       "Todo added",
		Description: "Your new task has been added.",
		Variant:     VariantNormal,
	}

	noticeAddEmpty = Notice{
		Title:       "Can't add empty todo",
		Description: "Please enter some text for your todo.",
		Variant:     VariantDestructive,
	}

	noticeDeleted = Notice{
		Title:       "Todo deleted",
		Description: "Your task has been removed.",
		Variant:     VariantNormal,
	}

	noticeUpdated = Notice{
		Title:       "Todo updated",
		Description: "Your task has been updated.",
		Variant:     VariantNormal,
	}

	noticeEditEmpty = Notice{
		Title:       "Can't save empty todo",
		Description: "Please enter some text or delete the todo instead.",
		Variant:     VariantDestructive,
	}

	noticeCleared = Notice{
		Title:       "Completed todos cleared",
		Description: "All completed tasks have been removed.",
		Variant:     VariantNormal,
	}
)

type Reducer struct {
	NewID IDFunc
}

// Reduce computes the next state. It never mutates s; slices are copied
// before modification.
func (r Reducer) Reduce(s State, a Action) Result {
	switch a := a.(type) {
	case Add:
		text := strings.TrimSpace(a.Text)
		if text == "" {
			return reject(s, noticeAddEmpty, CodeEmptyAdd)
		}
		next := s
		next.Todos = append(clone(s.Todos), Todo{ID: r.freshID(s), Text: text})
		return changed(next, noticeAdded)

	case Toggle:
		i := s.index(a.ID)
		if i < 0 {
			return Result{State: s, Persist: true}
		}
		next := s
		next.Todos = clone(s.Todos)
		next.Todos[i].Completed = !next.Todos[i].Completed
		return Result{State: next, Persist: true}

	case Delete:
		i := s.index(a.ID)
		if i < 0 {
			return changed(s, noticeDeleted)
		}
		next := s
		next.Todos = append(clone(s.Todos[:i]), s.Todos[i+1:]...)
		if s.Edit.EditingID == a.ID {
			next.Edit = EditState{}
		}
		return changed(next, noticeDeleted)

	case BeginEdit:
		t, ok := s.Find(a.ID)
		if !ok {
			return Result{State: s}
		}
		next := s
		next.Edit = EditState{EditingID: t.ID, EditText: t.Text}
		return Result{State: next}

	case SetEditText:
		if !s.Edit.Active() {
			return Result{State: s}
		}
		next := s
		next.Edit.EditText = a.Text
		return Result{State: next}

	case SaveEdit:
		i := s.index(s.Edit.EditingID)
		if !s.Edit.Active() || i < 0 {
			next := s
			next.Edit = EditState{}
			return Result{State: next}
		}
		text := strings.TrimSpace(s.Edit.EditText)
		if text == "" {
			return reject(s, noticeEditEmpty, CodeEmptyEdit)
		}
		next := s
		next.Todos = clone(s.Todos)
		next.Todos[i].Text = text
		next.Edit = EditState{}
		return changed(next, noticeUpdated)

	case CancelEdit:
		next := s
		next.Edit = EditState{}
		return Result{State: next}

	case SetFilter:
		next := s
		if f, err := ParseFilter(string(a.Filter)); err == nil {
			next.Filter = f
		}
		return Result{State: next}

	case ClearCompleted:
		next := s
		next.Todos = make([]Todo, 0, len(s.Todos))
		for _, t := range s.Todos {
			if !t.Completed {
				next.Todos = append(next.Todos, t)
			}
		}
		if s.Edit.Active() && next.index(s.Edit.EditingID) < 0 {
			next.Edit = EditState{}
		}
		return changed(next, noticeCleared)

	case Load:
		next := NewState()
		next.Filter = s.Filter
		next.Todos = clone(a.Todos)
		return Result{State: next}
	}
	return Result{State: s}
}

// maxIDAttempts bounds how often an injected IDFunc is asked for an unused
// id before falling back to NewID.
const maxIDAttempts = 8

// freshID draws ids until one is unused in s.
func (r Reducer) freshID(s State) string {
	return uniqueID(r.NewID, func(id string) bool { return s.index(id) >= 0 })
}

// uniqueID asks gen for a non-empty id not rejected by taken. After
// maxIDAttempts misses it switches to NewID.
func uniqueID(gen IDFunc, taken func(string) bool) string {
	if gen == nil {
		gen = NewID
	}
	for i := 0; ; i++ {
		if i == maxIDAttempts {
			gen = NewID
		}
		id := gen()
		if id != "" && !taken(id) {
			return id
		}
	}
}

func changed(s State, n Notice) Result {
	return Result{State: s, Notice: &n, Persist: true}
}

func reject(s State, n Notice, code ValidationCode) Result {
	return Result{State: s, Notice: &n, Err: &ValidationError{Code: code}}
}

func clone(todos []Todo) []Todo {
	out := make([]Todo, len(todos), len(todos)+1)
	copy(out, todos)
	return out
}
