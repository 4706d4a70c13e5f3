package id

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequence(t *testing.T) {
	s := NewSequence("txn", 0)
	assert.Equal(t, "txn-0001", s.Next())
	assert.Equal(t, "txn-0002", s.Next())

	s = NewSequence("bill", 41)
	assert.Equal(t, "bill-0042", s.Next())
}

func TestSequence_Concurrent(t *testing.T) {
	s := NewSequence("txn", 0)
	var (
		mu   sync.Mutex
		seen = map[string]bool{}
		wg   sync.WaitGroup
	)
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				v := s.Next()
				mu.Lock()
				seen[v] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Len(t, seen, 800)
}

func TestUUID(t *testing.T) {
	var a UUID
	first, second := a.Next(), a.Next()
	assert.NotEqual(t, first, second)
	_, err := uuid.Parse(first)
	require.NoError(t, err)
}

func TestFunc(t *testing.T) {
	f := Func(func() string { return "fixed" })
	assert.Equal(t, "fixed", f.Next())
}

func TestFormatParse(t *testing.T) {
	tests := []struct {
		prefix string
		seq    int
		want   string
	}{
		{"txn", 1, "txn-0001"},
		{"rule", 123, "rule-0123"},
		{"bill-x", 10000, "bill-x-10000"},
	}
	for _, tt := range tests {
		got := Format(tt.prefix, tt.seq)
		assert.Equal(t, tt.want, got)

		prefix, seq, err := Parse(got)
		require.NoError(t, err, "input: %s", got)
		assert.Equal(t, tt.prefix, prefix)
		assert.Equal(t, tt.seq, seq)
	}
}

func TestParse_Errors(t *testing.T) {
	for _, in := range []string{"", "txn", "-0001", "txn-", "txn-abc"} {
		_, _, err := Parse(in)
		assert.Error(t, err, "expected error for input: %s", in)
	}
}

func TestSlug(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Food & Dining", "food-dining"},
		{"Uncategorized", "uncategorized"},
		{"  Bills / Utilities  ", "bills-utilities"},
		{"Kids' 529", "kids-529"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slug(tt.input), "Slug(%q)", tt.input)
	}
}

func TestSlugs_Unique(t *testing.T) {
	u := NewSlugs()
	assert.Equal(t, "food", u.Unique("food"))
	assert.Equal(t, "food-2", u.Unique("food"))
	assert.Equal(t, "food-3", u.Unique("food"))
	assert.Equal(t, "category", u.Unique(""))
	assert.False(t, u.Claim("food-2"))
	assert.True(t, u.Claim("rent"))
}
