package searchschema_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hitesh22rana/searchsync/internal/model/catalog"
	"github.com/hitesh22rana/searchsync/internal/pkg/searchschema"
)

func TestRenderField(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      searchschema.Descriptor
		want    string
		wantErr bool
	}{
		{
			name: "success",
			in:   searchschema.Descriptor{Name: "name", Type: "string", Indexed: true},
			want: `<field type="string" name="name" indexed="true" stored="false" multiValued="false" />`,
		},
		{
			name: "success: multi-valued stored field",
			in:   searchschema.Descriptor{Name: "time_tables.confirmed", Type: "boolean", Stored: true, Multi: true},
			want: `<field type="boolean" name="time_tables.confirmed" indexed="false" stored="true" multiValued="true" />`,
		},
		{
			name: "success: attribute values are escaped",
			in:   searchschema.Descriptor{Name: `a"b<c`, Type: "string"},
			want: `<field type="string" name="a&#34;b&lt;c" indexed="false" stored="false" multiValued="false" />`,
		},
		{
			name:    "error: missing name",
			in:      searchschema.Descriptor{Type: "string"},
			wantErr: true,
		},
		{
			name:    "error: missing type",
			in:      searchschema.Descriptor{Name: "name"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := searchschema.RenderField(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompiler_Compile(t *testing.T) {
	c, err := searchschema.NewCompiler([]byte("<schema>\n  <fields>\n{{FIELDS}}\n  </fields>\n</schema>\n"))
	require.NoError(t, err)

	got, err := c.Compile([]searchschema.Descriptor{
		{Name: "lecture", Type: "string", Indexed: true},
		{Name: "week_day", Type: "int", Indexed: true, Stored: true},
	})
	require.NoError(t, err)

	want := "<schema>\n  <fields>\n" +
		`<field type="string" name="lecture" indexed="true" stored="false" multiValued="false" />` + "\n" +
		`<field type="int" name="week_day" indexed="true" stored="true" multiValued="false" />` +
		"\n  </fields>\n</schema>\n"
	assert.Equal(t, want, string(got))

	empty, err := c.Compile(nil)
	require.NoError(t, err)
	assert.Equal(t, "<schema>\n  <fields>\n\n  </fields>\n</schema>\n", string(empty))
}

func TestCompiler_PreservesTemplate(t *testing.T) {
	descs, err := searchschema.Classify(catalog.Scholar)
	require.NoError(t, err)

	out, err := searchschema.DefaultCompiler().Compile(descs)
	require.NoError(t, err)

	assert.NotContains(t, string(out), searchschema.Placeholder)
	// Template declarations put the name first, rendered ones the type.
	assert.Equal(t, len(descs), strings.Count(string(out), `<field type=`))
	assert.Contains(t, string(out), `<dynamicField name="*"`)
	assert.Contains(t, string(out), `<uniqueKey>_yz_id</uniqueKey>`)
	assert.True(t, bytes.HasPrefix(out, []byte(`<?xml version="1.0" encoding="UTF-8" ?>`)))
}

func TestNewCompiler_InvalidTemplate(t *testing.T) {
	t.Parallel()

	for _, tmpl := range []string{
		"<schema></schema>",
		"<schema>{{FIELDS}}{{FIELDS}}</schema>",
	} {
		_, err := searchschema.NewCompiler([]byte(tmpl))
		assert.True(t, errors.Is(err, searchschema.ErrInvalidTemplate), tmpl)
	}
}

func TestLoadCompiler(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "schema.xml")
	require.NoError(t, os.WriteFile(path, []byte("<s>{{FIELDS}}</s>"), 0o600))

	c, err := searchschema.LoadCompiler(path)
	require.NoError(t, err)
	out, err := c.Compile([]searchschema.Descriptor{{Name: "n", Type: "string"}})
	require.NoError(t, err)
	assert.Equal(t, `<s><field type="string" name="n" indexed="false" stored="false" multiValued="false" /></s>`, string(out))

	_, err = searchschema.LoadCompiler(filepath.Join(dir, "missing.xml"))
	assert.Error(t, err)

	c, err = searchschema.LoadCompiler("")
	require.NoError(t, err)
	assert.NotNil(t, c)
}

func TestProperty_CompileIsDeterministic(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	descriptorGen := gen.Struct(reflectDescriptor, map[string]gopter.Gen{
		"Name":    gen.Identifier(),
		"Type":    gen.OneConstOf("string", "text_general", "int", "long", "boolean", "date"),
		"Indexed": gen.Bool(),
		"Stored":  gen.Bool(),
		"Multi":   gen.Bool(),
	})

	c := searchschema.DefaultCompiler()

	properties.Property("same input yields identical bytes", prop.ForAll(
		func(descs []searchschema.Descriptor) bool {
			first, err := c.Compile(descs)
			if err != nil {
				return false
			}
			second, err := c.Compile(descs)
			if err != nil {
				return false
			}
			return bytes.Equal(first, second)
		},
		gen.SliceOf(descriptorGen),
	))

	properties.Property("booleans are lowercase literals", prop.ForAll(
		func(d searchschema.Descriptor) bool {
			line, err := searchschema.RenderField(d)
			if err != nil {
				return false
			}
			attrs := map[string]bool{
				"indexed":     d.Indexed,
				"stored":      d.Stored,
				"multiValued": d.Multi,
			}
			for attr, v := range attrs {
				want := attr + `="` + strconv.FormatBool(v) + `"`
				if !strings.Contains(line, want) {
					return false
				}
			}
			return !strings.Contains(line, `"True"`) && !strings.Contains(line, `"False"`)
		},
		descriptorGen,
	))

	properties.TestingRun(t)
}
