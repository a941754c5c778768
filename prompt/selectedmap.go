package prompt

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"

	"gopkg.in/yaml.v3"
)

// SelectedMap is a string-keyed map with a currently selected entry. Only
// the entries are serialized; the selection and the pending new-entry name
// are editing state.
type SelectedMap[T any] struct {
	entries  map[string]T
	selected string
	hasSel   bool
	newName  string
}

// Map returns the underlying map, allocating it when needed.
func (m *SelectedMap[T]) Map() map[string]T {
	if m.entries == nil {
		m.entries = make(map[string]T)
	}
	return m.entries
}

// Keys returns the keys in sorted order.
func (m *SelectedMap[T]) Keys() []string {
	return slices.Sorted(maps.Keys(m.entries))
}

// Len returns the number of entries.
func (m *SelectedMap[T]) Len() int { return len(m.entries) }

// Get returns the entry stored under key.
func (m *SelectedMap[T]) Get(key string) (T, bool) {
	v, ok := m.entries[key]
	return v, ok
}

// Set stores v under key.
func (m *SelectedMap[T]) Set(key string, v T) { m.Map()[key] = v }

// Delete removes key, clearing the selection if it pointed there.
func (m *SelectedMap[T]) Delete(key string) {
	delete(m.entries, key)
	if m.hasSel && m.selected == key {
		m.Deselect()
	}
}

// Selection returns the selected key.
func (m *SelectedMap[T]) Selection() (string, bool) { return m.selected, m.hasSel }

// Select selects key and reports whether it exists.
func (m *SelectedMap[T]) Select(key string) bool {
	if _, ok := m.entries[key]; !ok {
		return false
	}
	m.selected, m.hasSel = key, true
	return true
}

// Deselect clears the selection.
func (m *SelectedMap[T]) Deselect() { m.selected, m.hasSel = "", false }

// Prompt reads key/value pairs until a blank key. The map is replaced only
// when the whole loop succeeds.
func (m *SelectedMap[T]) Prompt(s *Session, label, comment string) error {
	entries := make(map[string]T)
	err := s.Entries(label, comment, func(key string) error {
		v, err := Ask[T](s, key, "")
		if err != nil {
			return err
		}
		entries[key] = v
		return nil
	})
	if err != nil {
		return err
	}
	m.entries = entries
	m.Deselect()
	return nil
}

// BuildForm draws the new-entry editor, the entry selector and the
// selected entry.
func (m *SelectedMap[T]) BuildForm(f *Form, label, comment string) error {
	f.Comment(comment)
	f.Heading(label)

	noun, title := "entry", "Select an entry!"
	if label != "" {
		noun, title = label, fmt.Sprintf("Select a %s entry!", label)
	}
	f.Label("Name for new " + noun)
	f.TextEdit(&m.newName)
	if f.Button("Add new entry") && m.newName != "" {
		if _, ok := m.entries[m.newName]; !ok {
			var zero T
			m.Set(m.newName, zero)
		}
		m.Select(m.newName)
	}

	keys := m.Keys()
	shown := "Selection"
	if m.hasSel {
		shown = m.selected
	}
	if i, ok := f.ComboBox(title, shown, keys); ok {
		m.Select(keys[i])
	}
	if !m.hasSel {
		return nil
	}

	var errs []error
	if v, ok := m.entries[m.selected]; ok {
		owner := "item"
		if label != "" {
			owner = label
		}
		errs = append(errs, f.Value(&v, fmt.Sprintf("Entry %s for %s", m.selected, owner), ""))
		m.entries[m.selected] = v
	}
	if f.Button("Delete this entry") {
		m.Delete(m.selected)
	}
	return errors.Join(errs...)
}

func (m SelectedMap[T]) MarshalJSON() ([]byte, error) {
	if m.entries == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(m.entries)
}

func (m *SelectedMap[T]) UnmarshalJSON(b []byte) error {
	var entries map[string]T
	if err := json.Unmarshal(b, &entries); err != nil {
		return err
	}
	*m = SelectedMap[T]{entries: entries}
	return nil
}

func (m SelectedMap[T]) MarshalYAML() (any, error) {
	if m.entries == nil {
		return map[string]T{}, nil
	}
	return m.entries, nil
}

func (m *SelectedMap[T]) UnmarshalYAML(node *yaml.Node) error {
	var entries map[string]T
	if err := node.Decode(&entries); err != nil {
		return err
	}
	*m = SelectedMap[T]{entries: entries}
	return nil
}
