package abstraction

import "strconv"

// Category tags a placeholder with the syntactic role of the spelling it
// replaces. The declaration order is the mapping export order.
type Category int

const (
	Type Category = iota
	Method
	Variable
	Annotation
	Char
	Float
	Int
	String

	numCategories
)

var categoryPrefixes = [numCategories]string{
	Type:       "TYPE",
	Method:     "METHOD",
	Variable:   "VAR",
	Annotation: "ANNOTATION",
	Char:       "CHAR",
	Float:      "FLOAT",
	Int:        "INT",
	String:     "STRING",
}

var categoryNames = [numCategories]string{
	Type:       "type",
	Method:     "method",
	Variable:   "variable",
	Annotation: "annotation",
	Char:       "char",
	Float:      "float",
	Int:        "int",
	String:     "string",
}

// Categories returns every category in export order.
func Categories() []Category {
	all := make([]Category, numCategories)
	for i := range all {
		all[i] = Category(i)
	}
	return all
}

func (c Category) String() string {
	if c < 0 || c >= numCategories {
		return "unknown"
	}
	return categoryNames[c]
}

// Prefix is the placeholder prefix, for example VAR for Variable.
func (c Category) Prefix() string {
	if c < 0 || c >= numCategories {
		return ""
	}
	return categoryPrefixes[c]
}

// Placeholder formats the n-th placeholder of the category.
func (c Category) Placeholder(n int) string {
	return c.Prefix() + "_" + strconv.Itoa(n)
}

// categoryMap assigns placeholders for one category within one run.
// Entries are append-only and the first assignment of a spelling wins.
type categoryMap struct {
	category Category
	ids      map[string]string
	order    []string
}

func newCategoryMap(c Category) *categoryMap {
	return &categoryMap{
		category: c,
		ids:      make(map[string]string),
	}
}

// id returns the placeholder for text, allocating the next one on first sight.
func (m *categoryMap) id(text string) string {
	if id, ok := m.ids[text]; ok {
		return id
	}
	id := m.category.Placeholder(len(m.order) + 1)
	m.ids[text] = id
	m.order = append(m.order, text)
	return id
}

func (m *categoryMap) entries() []Entry {
	entries := make([]Entry, len(m.order))
	for i, text := range m.order {
		entries[i] = Entry{
			Original:    text,
			Placeholder: m.ids[text],
			Category:    m.category,
		}
	}
	return entries
}
