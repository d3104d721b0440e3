package lint_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdstyle/pkg/document"
	"github.com/yaklabco/mdstyle/pkg/lint"
)

// literalRule returns a definition that reports every match of pattern with
// message msg.
func literalRule(id, name, pattern, msg string) lint.Definition {
	return lint.Definition{
		Descriptor: lint.Descriptor{
			ID:          id,
			Name:        name,
			Description: "test rule " + id,
			Pattern:     regexp.MustCompile(pattern),
		},
		New: func(any, lint.Env) lint.Checker {
			return lint.CheckerFunc(func(_ *document.Document, start, _ int) ([]lint.Finding, error) {
				return []lint.Finding{{Offset: start, Message: msg}}, nil
			})
		},
	}
}

func TestRegistry_RegisterKeepsOrder(t *testing.T) {
	reg := lint.NewRegistry()
	require.NoError(t, reg.Register(literalRule("MD010", "no-hard-tabs", `\t`, "tab")))
	require.NoError(t, reg.Register(literalRule("MD001", "heading-increment", `#`, "hash")))

	assert.Equal(t, []string{"MD010", "MD001"}, reg.IDs())
	assert.Equal(t, 2, reg.Len())

	defs := reg.Definitions()
	require.Len(t, defs, 2)
	assert.Equal(t, "no-hard-tabs", defs[0].Name)
}

func TestRegistry_RegisterRejects(t *testing.T) {
	tests := []struct {
		name string
		def  lint.Definition
	}{
		{"duplicate id", literalRule("md001", "other", `x`, "")},
		{"duplicate name", literalRule("MD002", "Heading-Increment", `x`, "")},
		{"missing pattern", lint.Definition{Descriptor: lint.Descriptor{ID: "MD003"}}},
		{
			"group out of range",
			func() lint.Definition {
				def := literalRule("MD004", "ul-style", `(a)`, "")
				def.Group = 2
				return def
			}(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := lint.NewRegistry()
			reg.MustRegister(literalRule("MD001", "heading-increment", `#`, ""))

			assert.Error(t, reg.Register(tt.def))
			assert.Equal(t, 1, reg.Len())
		})
	}
}

func TestRegistry_MustRegisterPanics(t *testing.T) {
	reg := lint.NewRegistry()
	assert.Panics(t, func() {
		reg.MustRegister(lint.Definition{})
	})
}

func TestRegistry_Resolve(t *testing.T) {
	reg := lint.NewRegistry()
	def := literalRule("MD009", "no-trailing-spaces", ` +$`, "")
	def.Aliases = []string{"trailing-spaces"}
	reg.MustRegister(def)
	reg.RegisterAlias("ws", "md009")

	tests := []struct {
		key   string
		found bool
	}{
		{"MD009", true},
		{"md009", true},
		{" Md009 ", true},
		{"no-trailing-spaces", true},
		{"NO-TRAILING-SPACES", true},
		{"trailing-spaces", true},
		{"ws", true},
		{"MD010", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, ok := reg.Resolve(tt.key)
			assert.Equal(t, tt.found, ok)
			if tt.found {
				assert.Equal(t, "MD009", got.ID)
			}
		})
	}
}
