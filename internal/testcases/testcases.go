// Package testcases holds the catalog of comparison scenarios. Each case pairs
// a specialized prompt with the aspects it claims to evaluate.
package testcases

import (
	"errors"
	"fmt"
	"strings"
)

// InputPlaceholder is substituted with the user input in a user template.
const InputPlaceholder = "{input}"

// ErrUnknownTestCase is returned when a key does not name a catalog entry.
var ErrUnknownTestCase = errors.New("unknown test case")

// Templates are the specialized prompt pair of a test case.
type Templates struct {
	System string `yaml:"system" json:"system"`
	User   string `yaml:"user" json:"user"`
}

// TestCase is one predefined comparison scenario.
type TestCase struct {
	Key          string    `yaml:"key" json:"key"`
	Label        string    `yaml:"label" json:"label"`
	Description  string    `yaml:"description" json:"description"`
	TemplateType string    `yaml:"template" json:"template"`
	Aspects      []string  `yaml:"aspects" json:"aspects"`
	Example      string    `yaml:"example" json:"example"`
	Templates    Templates `yaml:"templates" json:"templates"`
}

// RenderUser substitutes input into the user template.
func (tc TestCase) RenderUser(input string) string {
	return strings.ReplaceAll(tc.Templates.User, InputPlaceholder, input)
}

// Catalog is an ordered, read-only set of test cases.
type Catalog struct {
	cases []TestCase
	index map[string]int
}

// NewCatalog builds a catalog preserving the order of cases. Keys must be
// non-empty and unique.
func NewCatalog(cases []TestCase) (*Catalog, error) {
	c := &Catalog{
		cases: make([]TestCase, 0, len(cases)),
		index: make(map[string]int, len(cases)),
	}
	for _, tc := range cases {
		key := strings.TrimSpace(tc.Key)
		if key == "" {
			return nil, fmt.Errorf("test case %q: key is required", tc.Label)
		}
		if _, dup := c.index[key]; dup {
			return nil, fmt.Errorf("test case %q: duplicate key", key)
		}
		tc.Key = key
		tc.Aspects = append([]string(nil), tc.Aspects...)
		c.index[key] = len(c.cases)
		c.cases = append(c.cases, tc)
	}
	return c, nil
}

// Cases returns the test cases in catalog order.
func (c *Catalog) Cases() []TestCase {
	out := make([]TestCase, len(c.cases))
	copy(out, c.cases)
	return out
}

// Len reports the number of cases.
func (c *Catalog) Len() int { return len(c.cases) }

// Lookup returns the case registered under key.
func (c *Catalog) Lookup(key string) (TestCase, error) {
	i, ok := c.index[strings.TrimSpace(key)]
	if !ok {
		return TestCase{}, fmt.Errorf("%w: %q", ErrUnknownTestCase, key)
	}
	return c.cases[i], nil
}
