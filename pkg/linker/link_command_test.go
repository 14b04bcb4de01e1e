package linker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFunctionSectionsDropsSiblings(t *testing.T) {
	cmd := scenario1().FunctionSections()

	res, err := Resolve(cmd)
	require.NoError(t, err)

	// with one section per symbol, staticLib1b no longer rides along
	assert.Equal(t, []string{"main", "staticLib1a"}, res.IncludedSymbols())
	assert.True(t, res.HasSection("staticLib1.text.staticLib1a"))
	assert.False(t, res.HasSection("staticLib1.text.staticLib1b"))
}

func TestFunctionSectionsLeavesOriginalIntact(t *testing.T) {
	cmd := scenario1()
	split := cmd.FunctionSections()

	res, err := Resolve(cmd)
	require.NoError(t, err)
	assert.Equal(t, []string{"main", "staticLib1a", "staticLib1b"}, res.IncludedSymbols())

	// single-symbol sections keep their ids in the split copy
	assert.True(t, split.Units[0].(*RawObject).Sections[0].ID == "main.text")
}

func TestFunctionSectionsSharesArchiveCopies(t *testing.T) {
	cmd := transitiveScenario(true)
	split := cmd.FunctionSections()

	// deps must point at the split copy, not the original archive
	withChild := split.Units[1].(*ArchiveRef).Archive
	require.Len(t, withChild.Deps, 1)
	child := withChild.Deps[0]
	assert.Equal(t, "StaticLibChild", child.Name)
	assert.NotSame(t, cmd.Units[1].(*ArchiveRef).Archive.Deps[0], child)

	res, err := Resolve(split)
	require.NoError(t, err)
	assert.Equal(t,
		[]string{"sharedLib", "staticLibChild1a", "staticLibWithChild1a"},
		res.IncludedSymbols())
}
