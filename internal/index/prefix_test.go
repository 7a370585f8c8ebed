package index

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAutocompletePrefix(t *testing.T) {
	idx := NewPrefixIndex()
	idx.Insert("laptop")
	idx.Insert("lamp")
	idx.Insert("charger")

	assert.Equal(t, []string{"lamp", "laptop"}, idx.Autocomplete("la"))
	assert.Equal(t, []string{"charger"}, idx.Autocomplete("CH"))
	assert.Empty(t, idx.Autocomplete("lx"))
}

func TestAutocompleteEmptyPrefixReturnsEverything(t *testing.T) {
	names := []string{"Mouse", "Keyboard", "Monitor", "Microphone", "Webcam"}
	idx := NewPrefixIndex()
	for _, n := range names {
		idx.Insert(n)
	}

	assert.ElementsMatch(t, names, idx.Autocomplete(""))
	assert.ElementsMatch(t, names, idx.Autocomplete("  -- 42"))
	assert.Equal(t, len(names), idx.Len())
}

func TestAutocompleteResultsStartWithPrefix(t *testing.T) {
	names := []string{"Apple", "Apricot", "Avocado", "banana", "Blueberry", "apex", "APPLIANCE"}
	idx := NewPrefixIndex()
	for _, n := range names {
		idx.Insert(n)
	}

	for _, prefix := range []string{"a", "ap", "APP", "b", "bl", "z", ""} {
		t.Run(prefix, func(t *testing.T) {
			for _, got := range idx.Autocomplete(prefix) {
				assert.True(t, strings.HasPrefix(strings.ToLower(got), strings.ToLower(prefix)),
					"%q does not start with %q", got, prefix)
			}
		})
	}
}

func TestAutocompleteOrderIsAlphabetical(t *testing.T) {
	idx := NewPrefixIndex()
	for _, n := range []string{"Zebra", "apple", "Mango", "banana"} {
		idx.Insert(n)
	}

	assert.Equal(t, []string{"apple", "banana", "Mango", "Zebra"}, idx.Autocomplete(""))
}

func TestInsertIsIdempotent(t *testing.T) {
	idx := NewPrefixIndex()
	idx.Insert("Apple iPhone 15")
	before := idx.Autocomplete("apple")

	idx.Insert("Apple iPhone 15")

	assert.Equal(t, before, idx.Autocomplete("apple"))
	assert.Equal(t, []string{"Apple iPhone 15"}, idx.Autocomplete(""))
	assert.Equal(t, 1, idx.Len())
}

func TestNonLettersAreSkipped(t *testing.T) {
	idx := NewPrefixIndex()
	idx.Insert("Boat Type-C Cable")

	require.True(t, idx.Search("boattypeccable"))
	assert.True(t, idx.Search("BOAT TYPE C CABLE"))
	assert.Equal(t, []string{"Boat Type-C Cable"}, idx.Autocomplete("boat type"))
	assert.Equal(t, []string{"Boat Type-C Cable"}, idx.Autocomplete("boattype"))
}

func TestSearch(t *testing.T) {
	idx := NewPrefixIndex()
	idx.Insert("Charger")

	assert.True(t, idx.Search("charger"))
	assert.False(t, idx.Search("charge"))
	assert.False(t, idx.Search("chargers"))
	assert.False(t, NewPrefixIndex().Search("anything"))
}
