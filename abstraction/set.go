package abstraction

import "sort"

// Set is a set of spellings. The nil Set is empty and ready to use for lookups.
type Set map[string]struct{}

func NewSet(items ...string) Set {
	s := make(Set, len(items))
	for _, item := range items {
		s[item] = struct{}{}
	}
	return s
}

func (s Set) Has(item string) bool {
	_, ok := s[item]
	return ok
}

func (s Set) Add(item string) {
	s[item] = struct{}{}
}

// Sorted returns the members in lexical order.
func (s Set) Sorted() []string {
	items := make([]string, 0, len(s))
	for item := range s {
		items = append(items, item)
	}
	sort.Strings(items)
	return items
}

// Declarations are the names an extractor found declared or referenced at the
// chosen granularity.
type Declarations struct {
	Types       Set
	Methods     Set
	Annotations Set
}
