package searchschema

import (
	"errors"
	"fmt"

	"github.com/hitesh22rana/searchsync/internal/model"
)

var (
	// ErrUnknownFieldType is returned when a field type has no search engine equivalent.
	ErrUnknownFieldType = errors.New("unknown field type")

	// ErrDuplicateField is returned when two fields share the same qualified name.
	ErrDuplicateField = errors.New("duplicate field")
)

// linkType is the search engine type of a stored model reference.
const linkType = "string"

// solrTypes maps application field types to the search engine type vocabulary.
var solrTypes = map[model.FieldType]string{
	model.TypeString:    "string",
	model.TypeText:      "text_general",
	model.TypeInteger:   "int",
	model.TypeLong:      "long",
	model.TypeFloat:     "float",
	model.TypeDouble:    "double",
	model.TypeBoolean:   "boolean",
	model.TypeDate:      "date",
	model.TypeDateTime:  "date",
	model.TypeTimestamp: "date",
}

// Descriptor declares one field of a search index.
type Descriptor struct {
	Name    string
	Type    string
	Indexed bool
	Stored  bool
	Multi   bool
}

// SolrType returns the search engine type for t.
func SolrType(t model.FieldType) (string, bool) {
	st, ok := solrTypes[t]
	return st, ok
}

// Classify collects the descriptors of every field of def that takes part in indexing.
// Nested nodes are walked depth-first in declaration order and their fields are
// qualified with the node path, e.g. "time_tables.confirmed".
func Classify(def *model.Definition) ([]Descriptor, error) {
	c := &classifier{
		model: def.Name,
		seen:  make(map[string]struct{}),
	}

	if err := c.collect("", def.Fields, def.Nodes, def.Links, false); err != nil {
		return nil, err
	}

	return c.out, nil
}

type classifier struct {
	model string
	seen  map[string]struct{}
	out   []Descriptor
}

func (c *classifier) collect(path string, fields []model.Field, nodes []model.Node, links []model.Link, multi bool) error {
	for _, f := range fields {
		if !f.Index && !f.Store {
			continue
		}

		st, ok := solrTypes[f.Type]
		if !ok {
			return fmt.Errorf("model %s: field %s: %w %q", c.model, qualify(path, f.Name), ErrUnknownFieldType, f.Type)
		}

		if err := c.add(Descriptor{
			Name:    qualify(path, f.Name),
			Type:    st,
			Indexed: f.Index,
			Stored:  f.Store,
			Multi:   multi,
		}); err != nil {
			return err
		}
	}

	for _, n := range nodes {
		if err := c.collect(qualify(path, n.Name), n.Fields, n.Nodes, n.Links, multi || n.Kind == model.List); err != nil {
			return err
		}
	}

	for _, l := range links {
		if !l.Index {
			continue
		}

		if err := c.add(Descriptor{
			Name:    qualify(path, l.Name+"_id"),
			Type:    linkType,
			Indexed: true,
			Stored:  true,
			Multi:   multi,
		}); err != nil {
			return err
		}
	}

	return nil
}

func (c *classifier) add(d Descriptor) error {
	if _, ok := c.seen[d.Name]; ok {
		return fmt.Errorf("model %s: %w %s", c.model, ErrDuplicateField, d.Name)
	}

	c.seen[d.Name] = struct{}{}
	c.out = append(c.out, d)
	return nil
}

// qualify joins a node path and a member name.
func qualify(path, name string) string {
	name = model.UnCamel(name)
	if path == "" {
		return name
	}

	return path + "." + name
}
