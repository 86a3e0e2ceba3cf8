package todo

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DefaultKey is the slot the collection is stored under.
const DefaultKey = "todos"

// BackupKey is where an unreadable snapshot stored under key is copied.
func BackupKey(key string) string { return key + ".bak" }

// EncodeSnapshot serializes the collection as a JSON array of
// {id, text, completed} records.
func EncodeSnapshot(todos []Todo) (string, error) {
	if todos == nil {
		todos = []Todo{}
	}
	b, err := json.Marshal(todos)
	if err != nil {
		return "", fmt.Errorf("json marshal: %w", err)
	}
	return string(b), nil
}

type snapshotRecord struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// DecodeSnapshot parses a stored collection. Unknown fields are ignored,
// records with blank text are dropped, duplicate ids keep their first
// occurrence and missing ids are regenerated with newID. Generated ids never
// collide with an explicit id anywhere in the snapshot.
func DecodeSnapshot(raw string, newID IDFunc) ([]Todo, error) {
	if strings.TrimSpace(raw) == "" {
		return []Todo{}, nil
	}
	var recs []snapshotRecord
	if err := json.Unmarshal([]byte(raw), &recs); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}

	seen := make(map[string]struct{}, len(recs))
	out := make([]Todo, 0, len(recs))
	for _, r := range recs {
		text := strings.TrimSpace(r.Text)
		if text == "" {
			continue
		}
		id := strings.TrimSpace(r.ID)
		if id != "" {
			if has(seen, id) {
				continue
			}
			seen[id] = struct{}{}
		}
		out = append(out, Todo{ID: id, Text: text, Completed: r.Completed})
	}

	taken := func(id string) bool { return has(seen, id) }
	for i := range out {
		if out[i].ID != "" {
			continue
		}
		out[i].ID = uniqueID(newID, taken)
		seen[out[i].ID] = struct{}{}
	}
	return out, nil
}

func has(set map[string]struct{}, k string) bool {
	_, ok := set[k]
	return ok
}
