package manifest

// Kind classifies the structural shape of an item.
type Kind int

const (
	// KindString is a string value with an addressable literal.
	KindString Kind = iota

	// KindInlineTable is a `key = { ... }` value.
	KindInlineTable

	// KindTable is a `[name]` header table (or a dotted-key intermediate).
	KindTable

	// KindArrayTable is a `[[name]]` array-of-tables header.
	KindArrayTable

	// KindValue is any other value (integer, float, boolean, array, ...).
	KindValue
)

// Item is one named entry in the document tree.
type Item struct {
	Kind Kind

	// Type is the concrete kind name ("String", "Integer", "Table", ...),
	// used in error messages.
	Type string

	// Str is the decoded string content for KindString items.
	Str string

	// Span is the raw range of the string literal for KindString items.
	Span Span

	// Table holds the entries of KindTable and KindInlineTable items.
	Table *Table
}

// Table is an ordered collection of key -> item pairs.
type Table struct {
	keys  []string
	items map[string]*Item
}

func newTable() *Table {
	return &Table{items: make(map[string]*Item)}
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.keys)
}

// Keys returns the entry keys in source order.
func (t *Table) Keys() []string {
	return t.keys
}

// Get returns the item for key, or nil.
func (t *Table) Get(key string) *Item {
	return t.items[key]
}

func (t *Table) set(key string, item *Item) {
	if _, exists := t.items[key]; !exists {
		t.keys = append(t.keys, key)
	}
	t.items[key] = item
}
