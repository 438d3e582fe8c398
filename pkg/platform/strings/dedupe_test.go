package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeAndTrim(t *testing.T) {
	assert.Equal(t, []string{"read:foo", "write:foo"}, DedupeAndTrim([]string{"  read:foo ", "write:foo", "read:foo", "", "  "}))
	assert.Empty(t, DedupeAndTrim(nil))
}

func TestSortedKeys(t *testing.T) {
	set := map[string]struct{}{"b": {}, "a": {}, "c": {}}
	assert.Equal(t, []string{"a", "b", "c"}, SortedKeys(set))
}
