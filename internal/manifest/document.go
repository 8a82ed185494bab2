// Package manifest provides a lossless view over a TOML manifest.
//
// The stable go-toml API re-marshals documents and loses comments,
// ordering, and quoting. This package instead keeps the raw bytes and
// indexes them with the go-toml low-level parser, so a single value can
// be rewritten in place while every other byte of the file survives
// untouched.
package manifest

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/pelletier/go-toml/v2/unstable"
)

// Span is a byte range into the document's raw contents.
type Span struct {
	Offset int
	Length int
}

type edit struct {
	span Span
	text string
}

// Document is an in-memory view of a parsed manifest. It retains the
// original bytes; mutations are queued as span edits and applied by
// Bytes. A Document must not be shared across goroutines.
type Document struct {
	src   []byte
	root  *Table
	edits []edit
}

// Parse parses TOML data into a Document.
func Parse(data []byte) (*Document, error) {
	doc := &Document{src: data, root: newTable()}

	p := &unstable.Parser{}
	p.Reset(data)

	// Table the next key/value expressions belong to. Entries under an
	// array-of-tables header are collected into a detached table, since
	// per-element contents are not addressable through the tree.
	current := doc.root

	for p.NextExpression() {
		// Node pointers are invalidated by the next NextExpression call,
		// so everything is copied into the tree right away.
		e := p.Expression()
		switch e.Kind {
		case unstable.Table:
			current = doc.openTable(keyParts(e), KindTable, "Table")
		case unstable.ArrayTable:
			doc.openTable(keyParts(e), KindArrayTable, "ArrayOfTables")
			current = newTable()
		case unstable.KeyValue:
			insertKeyValue(current, keyParts(e), e.Value())
		}
	}
	if err := p.Error(); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}

	return doc, nil
}

// Lookup returns the top-level item with the given name, or nil.
func (d *Document) Lookup(name string) *Item {
	return d.root.Get(name)
}

// SetString queues an in-place rewrite of the string literal at span.
// The literal's original delimiters are preserved; only the content
// between them is replaced. The change becomes visible in Bytes.
func (d *Document) SetString(span Span, s string) {
	raw := d.src[span.Offset : span.Offset+span.Length]
	prefix, suffix := stringDelimiters(raw)
	d.edits = append(d.edits, edit{span: span, text: prefix + s + suffix})
}

// Bytes serializes the document: the original bytes with all queued
// edits applied. Every handle into the document must be released before
// calling it.
func (d *Document) Bytes() []byte {
	if len(d.edits) == 0 {
		return bytes.Clone(d.src)
	}

	edits := make([]edit, len(d.edits))
	copy(edits, d.edits)
	sort.Slice(edits, func(i, j int) bool {
		return edits[i].span.Offset < edits[j].span.Offset
	})

	var buf bytes.Buffer
	buf.Grow(len(d.src))
	last := 0
	for _, e := range edits {
		buf.Write(d.src[last:e.span.Offset])
		buf.WriteString(e.text)
		last = e.span.Offset + e.span.Length
	}
	buf.Write(d.src[last:])
	return buf.Bytes()
}

// openTable walks (and creates as needed) the table at the given key
// path, marking the final item with the header's kind. It returns the
// table subsequent key/values land in.
func (d *Document) openTable(parts []string, kind Kind, typeName string) *Table {
	table := d.root
	for i, part := range parts {
		item := table.Get(part)
		if item == nil {
			item = &Item{Kind: KindTable, Type: "Table", Table: newTable()}
			table.set(part, item)
		}
		if item.Table == nil {
			// Redefinition of a non-table key; malformed input, but kind
			// validation is the engine's job, not the parser adapter's.
			item.Table = newTable()
		}
		if i == len(parts)-1 {
			item.Kind = kind
			item.Type = typeName
		}
		table = item.Table
	}
	return table
}

// insertKeyValue places a key/value expression into table, creating
// intermediate tables for dotted keys.
func insertKeyValue(table *Table, parts []string, value *unstable.Node) {
	for _, part := range parts[:len(parts)-1] {
		item := table.Get(part)
		if item == nil {
			item = &Item{Kind: KindTable, Type: "Table", Table: newTable()}
			table.set(part, item)
		}
		if item.Table == nil {
			item.Table = newTable()
		}
		table = item.Table
	}
	table.set(parts[len(parts)-1], itemFromValue(value))
}

// itemFromValue copies a value node into an Item.
func itemFromValue(node *unstable.Node) *Item {
	switch node.Kind {
	case unstable.String:
		return &Item{
			Kind: KindString,
			Type: "String",
			Str:  string(node.Data),
			Span: Span{Offset: int(node.Raw.Offset), Length: int(node.Raw.Length)},
		}
	case unstable.InlineTable:
		t := newTable()
		it := node.Children()
		for it.Next() {
			kv := it.Node()
			insertKeyValue(t, keyParts(kv), kv.Value())
		}
		return &Item{Kind: KindInlineTable, Type: "InlineTable", Table: t}
	default:
		return &Item{Kind: KindValue, Type: valueTypeName(node.Kind)}
	}
}

// valueTypeName maps a scalar value kind to its display name.
func valueTypeName(kind unstable.Kind) string {
	switch kind {
	case unstable.Integer:
		return "Integer"
	case unstable.Float:
		return "Float"
	case unstable.Bool:
		return "Boolean"
	case unstable.Array:
		return "Array"
	default:
		return "Datetime"
	}
}

// keyParts collects the (possibly dotted) key of a key/value or table
// header expression.
func keyParts(node *unstable.Node) []string {
	var parts []string
	it := node.Key()
	for it.Next() {
		parts = append(parts, string(it.Node().Data))
	}
	return parts
}

// stringDelimiters splits the delimiters off a raw string literal. The
// low-level parser reports string ranges including their quotes; the
// bare-content case is handled anyway so a rewrite never corrupts the
// document.
func stringDelimiters(raw []byte) (prefix, suffix string) {
	if len(raw) == 0 {
		return "", ""
	}
	q := raw[0]
	if q != '"' && q != '\'' {
		return "", ""
	}
	n := 1
	if len(raw) >= 6 && raw[1] == q && raw[2] == q {
		n = 3
	}
	return string(raw[:n]), string(raw[len(raw)-n:])
}
