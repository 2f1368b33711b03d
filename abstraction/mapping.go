package abstraction

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

type Entry struct {
	Original    string
	Placeholder string
	Category    Category
}

// Mapping is the flat original → placeholder table of a run, keyed by
// original spelling and ordered by first insertion.
type Mapping struct {
	entries []Entry
	index   map[string]int
}

// Export flattens per-category entries in category order. A spelling that
// appears in more than one category keeps the position of its first entry and
// takes the placeholder of the last one, so the flat view is lossy for such
// spellings. Use Result.Entries for the complete picture.
func Export(byCategory [][]Entry) *Mapping {
	m := &Mapping{index: make(map[string]int)}
	for _, entries := range byCategory {
		for _, e := range entries {
			if i, ok := m.index[e.Original]; ok {
				m.entries[i].Placeholder = e.Placeholder
				m.entries[i].Category = e.Category
				continue
			}
			m.index[e.Original] = len(m.entries)
			m.entries = append(m.entries, e)
		}
	}
	return m
}

func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}

func (m *Mapping) Entries() []Entry {
	if m == nil {
		return nil
	}
	return append([]Entry(nil), m.entries...)
}

// Lookup returns the placeholder recorded for original.
func (m *Mapping) Lookup(original string) (string, bool) {
	if m == nil {
		return "", false
	}
	i, ok := m.index[original]
	if !ok {
		return "", false
	}
	return m.entries[i].Placeholder, true
}

func (m *Mapping) Keys() []string {
	keys := make([]string, 0, m.Len())
	for _, e := range m.Entries() {
		keys = append(keys, e.Original)
	}
	return keys
}

func (m *Mapping) Values() []string {
	values := make([]string, 0, m.Len())
	for _, e := range m.Entries() {
		values = append(values, e.Placeholder)
	}
	return values
}

// WriteSidecar writes the two-line persisted form: originals joined by commas,
// then placeholders joined by commas, positionally aligned.
func (m *Mapping) WriteSidecar(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, strings.Join(m.Keys(), ","))
	fmt.Fprintln(bw, strings.Join(m.Values(), ","))
	return bw.Flush()
}
