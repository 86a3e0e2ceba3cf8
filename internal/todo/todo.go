package todo

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type Todo struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

var ErrUnknownFilter = errors.New("unknown filter")

// Filters lists every filter in display order.
func Filters() []Filter {
	return []Filter{FilterAll, FilterActive, FilterCompleted}
}

func ParseFilter(v string) (Filter, error) {
	switch Filter(strings.ToLower(strings.TrimSpace(v))) {
	case FilterAll:
		return FilterAll, nil
	case FilterActive:
		return FilterActive, nil
	case FilterCompleted:
		return FilterCompleted, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFilter, v)
}

// Next returns the filter after f, wrapping around.
func (f Filter) Next() Filter {
	all := Filters()
	for i, cur := range all {
		if cur == f {
			return all[(i+1)%len(all)]
		}
	}
	return FilterAll
}

func (f Filter) Match(t Todo) bool {
	switch f {
	case FilterActive:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	default:
		return true
	}
}

// EditState is the single global edit slot. An empty EditingID means no
// todo is being edited.
type EditState struct {
	EditingID string
	EditText  string
}

func (e EditState) Active() bool { return e.EditingID != "" }

type State struct {
	Todos  []Todo
	Filter Filter
	Edit   EditState
}

// NewState returns the deterministic default state: no todos, filter all,
// nothing being edited.
func NewState() State {
	return State{Todos: []Todo{}, Filter: FilterAll}
}

func (s State) Find(id string) (Todo, bool) {
	if i := s.index(id); i >= 0 {
		return s.Todos[i], true
	}
	return Todo{}, false
}

func (s State) index(id string) int {
	for i, t := range s.Todos {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (s State) Editing(id string) bool {
	return s.Edit.Active() && s.Edit.EditingID == id
}

// Visible returns the todos matching the current filter in collection order.
func (s State) Visible() []Todo {
	out := make([]Todo, 0, len(s.Todos))
	for _, t := range s.Todos {
		if s.Filter.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

func (s State) Counts() (active, completed int) {
	for _, t := range s.Todos {
		if t.Completed {
			completed++
		} else {
			active++
		}
	}
	return
}

// IDFunc produces a fresh todo id.
type IDFunc func() string

// NewID returns a time-ordered UUID.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

type Variant string

const (
	VariantNormal      Variant = "normal"
	VariantDestructive Variant = "destructive"
)

// Notice is a transient message reporting the outcome of an operation.
type Notice struct {
	Title       string
	Description string
	Variant     Variant
}

type ValidationCode string

const (
	CodeEmptyAdd  ValidationCode = "empty-add"
	CodeEmptyEdit ValidationCode = "empty-edit"
)

type ValidationError struct {
	Code ValidationCode
}

func (e *ValidationError) Error() string {
	return "validation failed: " + string(e.Code)
}

// IsValidation reports whether err is a ValidationError with the given code.
func IsValidation(err error, code ValidationCode) bool {
	var ve *ValidationError
	return errors.As(err, &ve) && ve.Code == code
}
