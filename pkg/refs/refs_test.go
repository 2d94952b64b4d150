package refs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/dllup/pkg/refs"
)

func TestNormalizeLabel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{"label", "label"},
		{"LaBeL", "label"},
		{"  my   Label ", "my label"},
		{"Straße", "strasse"},
		{"", ""},
	}

	for _, testCase := range tests {
		t.Run(testCase.input, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, testCase.expected, refs.NormalizeLabel(testCase.input))
		})
	}
}

func TestTable_LastWins(t *testing.T) {
	t.Parallel()

	table := refs.NewTable(refs.LastWins)

	_, dup := table.Define("site", "https://one.test", "", 1)
	assert.False(t, dup)

	ref, dup := table.Define("SITE", "https://two.test", "Two", 4)
	assert.True(t, dup)
	assert.Equal(t, "https://two.test", ref.URL)

	found, ok := table.Lookup("Site")
	require.True(t, ok)
	assert.Equal(t, "https://two.test", found.URL)
	assert.Equal(t, "Two", found.Title)
	assert.Equal(t, 4, found.Line)
	assert.Equal(t, 1, table.Len())
}

func TestTable_FirstWins(t *testing.T) {
	t.Parallel()

	table := refs.NewTable(refs.FirstWins)
	table.Define("site", "https://one.test", "", 1)

	ref, dup := table.Define("site", "https://two.test", "", 2)
	assert.True(t, dup)
	assert.Equal(t, "https://one.test", ref.URL)

	found, ok := table.Lookup("site")
	require.True(t, ok)
	assert.Equal(t, "https://one.test", found.URL)
}

func TestTable_ReferencesOrderAndClone(t *testing.T) {
	t.Parallel()

	table := refs.NewTable("")
	assert.Equal(t, refs.LastWins, table.Policy())

	table.Define("b", "https://b.test", "", 1)
	table.Define("a", "https://a.test", "", 2)

	clone := table.Clone()
	assert.True(t, table.Equal(clone))

	clone.Define("c", "https://c.test", "", 3)
	assert.Equal(t, 2, table.Len())
	assert.False(t, table.Equal(clone))

	ids := []string{}
	for _, ref := range table.References() {
		ids = append(ids, ref.ID)
	}
	assert.Equal(t, []string{"b", "a"}, ids)
}

func TestParsePolicy(t *testing.T) {
	t.Parallel()

	policy, err := refs.ParsePolicy("")
	require.NoError(t, err)
	assert.Equal(t, refs.LastWins, policy)

	policy, err = refs.ParsePolicy("First")
	require.NoError(t, err)
	assert.Equal(t, refs.FirstWins, policy)

	_, err = refs.ParsePolicy("random")
	assert.Error(t, err)
}
