package testcases

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwiater/promptlab/internal/aspects"
)

func TestBuiltinCatalogOrderAndContent(t *testing.T) {
	c := Builtin()
	cases := c.Cases()
	require.Len(t, cases, 5)

	keys := make([]string, 0, len(cases))
	for _, tc := range cases {
		keys = append(keys, tc.Key)
		assert.NotEmpty(t, tc.Label, tc.Key)
		assert.NotEmpty(t, tc.Example, tc.Key)
		assert.Contains(t, tc.Templates.User, InputPlaceholder, tc.Key)
	}
	assert.Equal(t, []string{"test1", "test2", "test3", "test4", "test5"}, keys)

	tc, err := c.Lookup("test3")
	require.NoError(t, err)
	assert.Equal(t, "✨ Creative Tales", tc.Label)
	assert.Equal(t, "imaginative_story", tc.TemplateType)
	assert.Equal(t, []string{"creativity", "structure", "engagement", "humor", "uniqueness"}, tc.Aspects)
}

func TestBuiltinAspectsMostlyKnown(t *testing.T) {
	// "meaning preservation" has no parameter entry and is ignored by blending.
	for _, tc := range Builtin().Cases() {
		for _, a := range tc.Aspects {
			if a == "meaning preservation" {
				assert.False(t, aspects.Known(a))
				continue
			}
			assert.True(t, aspects.Known(a), "%s: %s", tc.Key, a)
		}
	}
}

func TestLookupUnknown(t *testing.T) {
	_, err := Builtin().Lookup("test9")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownTestCase))
	assert.Contains(t, err.Error(), "test9")
}

func TestRenderUser(t *testing.T) {
	tc, err := Builtin().Lookup("test2")
	require.NoError(t, err)
	assert.Equal(t, "Please summarize this text: hello", tc.RenderUser("hello"))

	passthrough, err := Builtin().Lookup("test1")
	require.NoError(t, err)
	assert.Equal(t, "what is {x}?", passthrough.RenderUser("what is {x}?"))
}

func TestCasesReturnsCopy(t *testing.T) {
	c := Builtin()
	cases := c.Cases()
	cases[0].Label = "mutated"
	tc, _ := c.Lookup("test1")
	assert.Equal(t, "🧩 OOP Concepts", tc.Label)
}

func TestNewCatalogRejectsDuplicatesAndBlankKeys(t *testing.T) {
	_, err := NewCatalog([]TestCase{{Key: "a"}, {Key: " a "}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")

	_, err = NewCatalog([]TestCase{{Key: "  ", Label: "x"}})
	require.Error(t, err)
}

const validCatalog = `
cases:
  - key: haiku
    label: "🌸 Haiku"
    description: Short poems
    template: haiku
    aspects: [creativity, conciseness]
    example: autumn rain
    templates:
      system: You are a poet.
      user: "Write a haiku about: {input}"
  - key: plain
    label: Plain
    templates:
      system: You are terse.
      user: "{input}"
`

func TestParseValidCatalog(t *testing.T) {
	c, err := Parse([]byte(validCatalog))
	require.NoError(t, err)
	require.Equal(t, 2, c.Len())

	tc, err := c.Lookup("haiku")
	require.NoError(t, err)
	assert.Equal(t, "🌸 Haiku", tc.Label)
	assert.Equal(t, []string{"creativity", "conciseness"}, tc.Aspects)
	assert.Equal(t, "Write a haiku about: leaves", tc.RenderUser("leaves"))
	assert.Equal(t, "plain", c.Cases()[1].Key)
}

func TestParseRejectsInvalidCatalogs(t *testing.T) {
	cases := map[string]string{
		"missing placeholder": `
cases:
  - key: a
    label: A
    templates: {system: s, user: "no placeholder"}
`,
		"missing label": `
cases:
  - key: a
    templates: {system: s, user: "{input}"}
`,
		"missing templates": `
cases:
  - key: a
    label: A
`,
		"empty list": `cases: []`,
		"empty doc":  ``,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			require.Error(t, err)
		})
	}
}

func TestParseReportsValidationDetails(t *testing.T) {
	_, err := Parse([]byte("cases:\n  - key: a\n    label: A\n    templates: {system: s, user: nope}\n"))
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "catalog failed validation"), err.Error())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(validCatalog), 0o644))

	c, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
