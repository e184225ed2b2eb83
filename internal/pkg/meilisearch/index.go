package meilisearch

import (
	"encoding/xml"
	"fmt"
	"strings"
)

const (
	// PrimaryKey is the document field holding the key of the stored object.
	PrimaryKey = "_yz_rk"

	reservedFieldPrefix = "_yz"
)

// Index represents the configuration for a MeiliSearch index, including its name, primary key,
// and lists of searchable, filterable, sortable and displayed attributes.
type Index struct {
	// Name is the unique name of the MeiliSearch index.
	Name string
	// PrimaryKey is the field used as the primary key for documents in the index.
	PrimaryKey string
	// Searchable is a list of attributes that are searchable in the index.
	Searchable []string
	// Filterable is a list of attributes that can be used for filtering queries.
	Filterable []any
	// Sortable is a list of attributes that can be used for sorting results.
	Sortable []string
	// Displayed is a list of attributes returned with search hits.
	Displayed []string
}

type schemaDocument struct {
	XMLName xml.Name      `xml:"schema"`
	Fields  []schemaField `xml:"fields>field"`
}

type schemaField struct {
	Name        string `xml:"name,attr"`
	Type        string `xml:"type,attr"`
	Indexed     bool   `xml:"indexed,attr"`
	Stored      bool   `xml:"stored,attr"`
	MultiValued bool   `xml:"multiValued,attr"`
}

// ParseSchema derives the index settings from a compiled Solr schema.
// Reserved _yz fields are skipped.
func ParseSchema(name string, schema []byte) (*Index, error) {
	var doc schemaDocument
	if err := xml.Unmarshal(schema, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse schema %s: %w", name, err)
	}

	index := &Index{
		Name:       name,
		PrimaryKey: PrimaryKey,
		Searchable: []string{},
		Filterable: []any{},
		Sortable:   []string{},
		Displayed:  []string{PrimaryKey},
	}

	for _, f := range doc.Fields {
		if f.Name == "" || strings.HasPrefix(f.Name, reservedFieldPrefix) {
			continue
		}

		if f.Indexed {
			if f.Type == "string" || f.Type == "text_general" {
				index.Searchable = append(index.Searchable, f.Name)
			}
			index.Filterable = append(index.Filterable, f.Name)
			if !f.MultiValued {
				index.Sortable = append(index.Sortable, f.Name)
			}
		}
		if f.Stored {
			index.Displayed = append(index.Displayed, f.Name)
		}
	}

	return index, nil
}
