// Package id allocates record identifiers.
package id

import (
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
)

// Allocator hands out identifiers that are unique for its lifetime.
type Allocator interface {
	Next() string
}

// Sequence allocates "prefix-0001", "prefix-0002", ... It is safe for concurrent use.
type Sequence struct {
	prefix string
	n      atomic.Int64
}

// NewSequence returns a Sequence whose first ID has seq start+1.
func NewSequence(prefix string, start int) *Sequence {
	s := &Sequence{prefix: prefix}
	s.n.Store(int64(start))
	return s
}

// Next returns the next ID.
func (s *Sequence) Next() string {
	return Format(s.prefix, int(s.n.Add(1)))
}

// UUID allocates random v4 UUIDs.
type UUID struct{}

// Next returns a new UUID string.
func (UUID) Next() string { return uuid.NewString() }

// Func adapts a function to an Allocator.
type Func func() string

// Next calls f.
func (f Func) Next() string { return f() }

// Format returns an ID like "txn-0042".
func Format(prefix string, seq int) string {
	return fmt.Sprintf("%s-%04d", prefix, seq)
}

// Parse splits "txn-0042" into prefix and sequence.
func Parse(s string) (prefix string, seq int, err error) {
	i := strings.LastIndexByte(s, '-')
	if i <= 0 || i == len(s)-1 {
		return "", 0, fmt.Errorf("invalid sequence ID format: %q", s)
	}
	seq, err = strconv.Atoi(s[i+1:])
	if err != nil {
		return "", 0, fmt.Errorf("invalid sequence in ID %q: %w", s, err)
	}
	return s[:i], seq, nil
}

// Slug lowercases name and collapses runs of non-alphanumerics to '-'.
// "Food & Dining" -> "food-dining".
func Slug(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// Slugs hands out unique slugs, suffixing "-2", "-3", ... on collision.
type Slugs struct {
	seen map[string]bool
}

// NewSlugs returns an empty Slugs.
func NewSlugs() *Slugs {
	return &Slugs{seen: make(map[string]bool)}
}

// Claim reserves s as-is, reporting false if it was already taken.
func (u *Slugs) Claim(s string) bool {
	if u.seen[s] {
		return false
	}
	u.seen[s] = true
	return true
}

// Unique returns base, or base with the smallest free numeric suffix.
func (u *Slugs) Unique(base string) string {
	if base == "" {
		base = "category"
	}
	if u.Claim(base) {
		return base
	}
	for n := 2; ; n++ {
		s := base + "-" + strconv.Itoa(n)
		if u.Claim(s) {
			return s
		}
	}
}
