package maputils

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapMap(t *testing.T) {
	got := MapMap(map[string]int{"a": 1, "b": 2}, func(k string, v int) (string, string) {
		return strings.ToUpper(k), strconv.Itoa(v)
	})
	assert.Equal(t, map[string]string{"A": "1", "B": "2"}, got)
}

func TestMapValues(t *testing.T) {
	got := MapValues(map[string]int{"a": 1, "b": 2}, func(k string, v int) int {
		return v * 10
	})
	assert.Equal(t, map[string]int{"a": 10, "b": 20}, got)
}

func TestFilterMap(t *testing.T) {
	got := FilterMap(map[string]int{"a": 1, "b": 2, "c": 3}, func(k string, v int) bool {
		return v%2 == 1
	})
	assert.Equal(t, map[string]int{"a": 1, "c": 3}, got)
}

func TestInvertMap(t *testing.T) {
	got := InvertMap(map[string]int{"a": 1, "b": 2})
	assert.Equal(t, map[int]string{1: "a", 2: "b"}, got)
}

func TestEntriesRoundTrip(t *testing.T) {
	m := map[string]int{"b": 2, "a": 1}
	es := EntriesOf(m)
	assert.Equal(t, []Pair[string, int]{{Key: "a", Value: 1}, {Key: "b", Value: 2}}, es)
	assert.Equal(t, m, FromEntriesOf(es))
}

func TestFromEntriesLastWins(t *testing.T) {
	got := FromEntriesOf([]Pair[string, int]{{Key: "a", Value: 1}, {Key: "a", Value: 2}})
	assert.Equal(t, map[string]int{"a": 2}, got)
}

func TestMapSlice(t *testing.T) {
	got := MapSlice([]int{1, 2, 3}, strconv.Itoa)
	assert.Equal(t, []string{"1", "2", "3"}, got)
}
