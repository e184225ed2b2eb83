package searchschema

import (
	"bytes"
	_ "embed"
	"encoding/xml"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Placeholder marks where field declarations are inserted into the base template.
const Placeholder = "{{FIELDS}}"

// ErrInvalidTemplate is returned when a base template does not contain exactly one placeholder.
var ErrInvalidTemplate = errors.New("invalid schema template")

//go:embed templates/solr_schema_template.xml
var defaultTemplate []byte

// Compiler renders field descriptors into a base schema template.
type Compiler struct {
	head []byte
	tail []byte
}

// NewCompiler creates a compiler for the given base template.
func NewCompiler(template []byte) (*Compiler, error) {
	if n := bytes.Count(template, []byte(Placeholder)); n != 1 {
		return nil, fmt.Errorf("%w: expected exactly one %s placeholder, found %d", ErrInvalidTemplate, Placeholder, n)
	}

	head, tail, _ := bytes.Cut(template, []byte(Placeholder))
	return &Compiler{
		head: bytes.Clone(head),
		tail: bytes.Clone(tail),
	}, nil
}

// DefaultCompiler returns a compiler for the embedded base template.
func DefaultCompiler() *Compiler {
	c, err := NewCompiler(defaultTemplate)
	if err != nil {
		panic(err)
	}

	return c
}

// LoadCompiler reads the base template at path, or uses the embedded one if path is empty.
func LoadCompiler(path string) (*Compiler, error) {
	if path == "" {
		return DefaultCompiler(), nil
	}

	template, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema template: %w", err)
	}

	return NewCompiler(template)
}

// Compile returns the base template with one declaration per descriptor, in order.
func (c *Compiler) Compile(fields []Descriptor) ([]byte, error) {
	lines := make([]string, 0, len(fields))
	for _, f := range fields {
		line, err := RenderField(f)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	body := strings.Join(lines, "\n")

	out := make([]byte, 0, len(c.head)+len(body)+len(c.tail))
	out = append(out, c.head...)
	out = append(out, body...)
	out = append(out, c.tail...)
	return out, nil
}

// RenderField renders a single field declaration.
func RenderField(d Descriptor) (string, error) {
	if d.Name == "" || d.Type == "" {
		return "", fmt.Errorf("field declaration needs a name and a type: %+v", d)
	}

	var b strings.Builder
	b.WriteString(`<field type="`)
	escape(&b, d.Type)
	b.WriteString(`" name="`)
	escape(&b, d.Name)
	b.WriteString(`" indexed="`)
	b.WriteString(strconv.FormatBool(d.Indexed))
	b.WriteString(`" stored="`)
	b.WriteString(strconv.FormatBool(d.Stored))
	b.WriteString(`" multiValued="`)
	b.WriteString(strconv.FormatBool(d.Multi))
	b.WriteString(`" />`)
	return b.String(), nil
}

func escape(b *strings.Builder, s string) {
	//nolint:errcheck // strings.Builder never fails
	xml.EscapeText(b, []byte(s))
}
