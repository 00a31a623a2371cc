package ecs

import (
	"strconv"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// ComponentSet is an unordered set of component ids. It is used both as the
// signature of an archetype and as the declared access of a query. The zero
// value is the empty set. Sets are treated as values: With and Without copy.
type ComponentSet struct {
	bits *bitset.BitSet
}

// NewComponentSet builds a set holding ids.
func NewComponentSet(ids ...ComponentId) ComponentSet {
	s := ComponentSet{bits: bitset.New(64)}
	for _, id := range ids {
		s.bits.Set(uint(id))
	}
	return s
}

// Insert adds id in place. Only use it while building a set that has not been shared yet.
func (s *ComponentSet) Insert(id ComponentId) {
	if s.bits == nil {
		s.bits = bitset.New(64)
	}
	s.bits.Set(uint(id))
}

// Contains reports whether id is in the set.
func (s ComponentSet) Contains(id ComponentId) bool {
	if s.bits == nil {
		return false
	}
	return s.bits.Test(uint(id))
}

// With returns a copy of s that also holds id.
func (s ComponentSet) With(id ComponentId) ComponentSet {
	c := s.clone()
	c.bits.Set(uint(id))
	return c
}

// Without returns a copy of s without id.
func (s ComponentSet) Without(id ComponentId) ComponentSet {
	c := s.clone()
	c.bits.Clear(uint(id))
	return c
}

// Len returns the number of ids in the set.
func (s ComponentSet) Len() int {
	if s.bits == nil {
		return 0
	}
	return int(s.bits.Count())
}

// IsSuperset reports whether every id of other is in s.
func (s ComponentSet) IsSuperset(other ComponentSet) bool {
	if other.Len() == 0 {
		return true
	}
	if s.bits == nil {
		return false
	}
	return s.bits.IsSuperSet(other.bits)
}

// IsDisjoint reports whether s and other share no id.
func (s ComponentSet) IsDisjoint(other ComponentSet) bool {
	return !s.Intersects(other)
}

// Intersects reports whether s and other share at least one id.
func (s ComponentSet) Intersects(other ComponentSet) bool {
	if s.bits == nil || other.bits == nil {
		return false
	}
	return s.bits.IntersectionCardinality(other.bits) > 0
}

// Equal reports whether both sets hold exactly the same ids.
func (s ComponentSet) Equal(other ComponentSet) bool {
	return s.Len() == other.Len() && s.IsSuperset(other)
}

// Ids returns the members in ascending order.
func (s ComponentSet) Ids() []ComponentId {
	if s.bits == nil {
		return nil
	}
	ids := make([]ComponentId, 0, s.bits.Count())
	for i, ok := s.bits.NextSet(0); ok; i, ok = s.bits.NextSet(i + 1) {
		ids = append(ids, ComponentId(i))
	}
	return ids
}

func (s ComponentSet) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, id := range s.Ids() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.FormatUint(uint64(id), 10))
	}
	b.WriteByte('}')
	return b.String()
}

// key is the canonical map key of the set: member ids, ascending, 4 bytes each.
func (s ComponentSet) key() string {
	ids := s.Ids()
	buf := make([]byte, 0, len(ids)*4)
	for _, id := range ids {
		buf = append(buf, byte(id), byte(id>>8), byte(id>>16), byte(id>>24))
	}
	return string(buf)
}

func (s ComponentSet) clone() ComponentSet {
	if s.bits == nil {
		return ComponentSet{bits: bitset.New(64)}
	}
	return ComponentSet{bits: s.bits.Clone()}
}
