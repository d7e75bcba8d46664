package orderedmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type testEntry struct {
	key   string
	value int
}

func TestMap_SetIfAbsent(t *testing.T) {
	testCases := map[string]struct {
		entries        []testEntry
		expectedKeys   []string
		expectedValues []int
		expectedStored []bool
	}{
		"should keep insertion order": {
			entries:        []testEntry{{"b", 1}, {"a", 2}, {"c", 3}},
			expectedKeys:   []string{"b", "a", "c"},
			expectedValues: []int{1, 2, 3},
			expectedStored: []bool{true, true, true},
		},

		"should keep first value for duplicate keys": {
			entries:        []testEntry{{"a", 1}, {"b", 2}, {"a", 3}, {"b", 4}},
			expectedKeys:   []string{"a", "b"},
			expectedValues: []int{1, 2},
			expectedStored: []bool{true, true, false, false},
		},

		"should return empty slices when nothing was set": {
			expectedKeys:   []string{},
			expectedValues: []int{},
			expectedStored: []bool{},
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			m := New[string, int]()
			stored := make([]bool, 0, len(tc.entries))

			for _, e := range tc.entries {
				stored = append(stored, m.SetIfAbsent(e.key, e.value))
			}

			assert.Equal(t, tc.expectedStored, stored)
			assert.Equal(t, tc.expectedKeys, m.Keys())
			assert.Equal(t, tc.expectedValues, m.Values())
			assert.Equal(t, len(tc.expectedKeys), m.Len())
		})
	}
}

func TestMap_Set(t *testing.T) {
	m := New[string, int]()
	m.Set("a", 1)
	m.Set("b", 2)
	m.Set("a", 3)

	value, ok := m.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 3, value)
	assert.Equal(t, []string{"a", "b"}, m.Keys())

	_, ok = m.Get("missing")
	assert.False(t, ok)
}

func TestMap_ValuesAreCopies(t *testing.T) {
	m := New[string, int]()
	m.Set("a", 1)

	values := m.Values()
	values[0] = 42

	value, _ := m.Get("a")
	assert.Equal(t, 1, value)
}
