package model

import (
	"strings"
	"unicode"
)

// FieldType is the application-level type of a model field.
type FieldType string

const (
	// TypeString is an untokenized string.
	TypeString FieldType = "string"
	// TypeText is a tokenized, full-text searchable string.
	TypeText FieldType = "text"
	// TypeInteger is a 32-bit integer.
	TypeInteger FieldType = "integer"
	// TypeLong is a 64-bit integer.
	TypeLong FieldType = "long"
	// TypeFloat is a 32-bit floating point number.
	TypeFloat FieldType = "float"
	// TypeDouble is a 64-bit floating point number.
	TypeDouble FieldType = "double"
	// TypeBoolean is a boolean.
	TypeBoolean FieldType = "boolean"
	// TypeDate is a calendar date.
	TypeDate FieldType = "date"
	// TypeDateTime is a date with time of day.
	TypeDateTime FieldType = "datetime"
	// TypeTimestamp is a point in time set by the store.
	TypeTimestamp FieldType = "timestamp"
)

// NodeKind distinguishes embedded sub-structures from repeated ones.
type NodeKind int

const (
	// Embedded is a single nested sub-structure.
	Embedded NodeKind = iota
	// List is a repeated nested sub-structure.
	List
)

// Field is a leaf member of a model or node.
type Field struct {
	// Name is the declared name of the field.
	Name string
	// Title is the human-readable name of the field.
	Title string
	// Type is the application-level type of the field.
	Type FieldType
	// Index marks the field as searchable.
	Index bool
	// Store marks the field as retrievable from the search index.
	Store bool
}

// Link is a reference to another model.
type Link struct {
	// Name is the declared name of the link.
	Name string
	// Model is the name of the referenced model.
	Model string
	// Index makes the referenced key searchable.
	Index bool
}

// Node is a nested sub-structure of a model.
type Node struct {
	Name   string
	Kind   NodeKind
	Fields []Field
	Nodes  []Node
	Links  []Link
}

// Definition describes a model and everything nested in it.
type Definition struct {
	Name   string
	Fields []Field
	Nodes  []Node
	Links  []Link
}

// BucketName returns the name of the storage bucket holding documents of the model.
func (d *Definition) BucketName() string {
	return UnCamel(d.Name)
}

// FieldOption configures a Field.
type FieldOption func(*Field)

// NoIndex keeps the field out of the search index.
func NoIndex() FieldOption {
	return func(f *Field) {
		f.Index = false
	}
}

// Stored makes the field value retrievable from the search index.
func Stored() FieldOption {
	return func(f *Field) {
		f.Store = true
	}
}

// Titled sets the human-readable name of the field.
func Titled(title string) FieldOption {
	return func(f *Field) {
		f.Title = title
	}
}

// NewField returns an indexed, non-stored field.
func NewField(name string, typ FieldType, opts ...FieldOption) Field {
	f := Field{
		Name:  name,
		Type:  typ,
		Index: true,
	}
	for _, opt := range opts {
		opt(&f)
	}

	return f
}

// String returns a string field.
func String(name string, opts ...FieldOption) Field { return NewField(name, TypeString, opts...) }

// Text returns a full-text field.
func Text(name string, opts ...FieldOption) Field { return NewField(name, TypeText, opts...) }

// Integer returns an integer field.
func Integer(name string, opts ...FieldOption) Field { return NewField(name, TypeInteger, opts...) }

// Float returns a float field.
func Float(name string, opts ...FieldOption) Field { return NewField(name, TypeFloat, opts...) }

// Boolean returns a boolean field.
func Boolean(name string, opts ...FieldOption) Field { return NewField(name, TypeBoolean, opts...) }

// Date returns a date field.
func Date(name string, opts ...FieldOption) Field { return NewField(name, TypeDate, opts...) }

// DateTime returns a date-time field.
func DateTime(name string, opts ...FieldOption) Field { return NewField(name, TypeDateTime, opts...) }

// UnCamel converts a CamelCase identifier to snake_case.
// Runs of capitals are kept together, so "HTTPServer" becomes "http_server".
func UnCamel(s string) string {
	runes := []rune(s)

	var b strings.Builder
	b.Grow(len(s) + 4)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 && runes[i-1] != '_' {
				prev := runes[i-1]
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
					b.WriteByte('_')
				}
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}

	return b.String()
}
