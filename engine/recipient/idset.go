package recipient

import (
	"sort"

	"github.com/stepwire/stepwire/engine/core"
)

// UserIDSet is a deduplicated set of recipient identifiers. Only strictly
// positive ids are ever stored; Add silently drops everything else.
type UserIDSet map[int64]struct{}

func NewUserIDSet(ids ...int64) UserIDSet {
	set := make(UserIDSet, len(ids))
	set.AddAll(ids)
	return set
}

func (s UserIDSet) Add(id int64) {
	if !core.IsPositiveID(id) {
		return
	}
	s[id] = struct{}{}
}

func (s UserIDSet) AddAll(ids []int64) {
	for _, id := range ids {
		s.Add(id)
	}
}

func (s UserIDSet) Union(other UserIDSet) {
	for id := range other {
		s.Add(id)
	}
}

func (s UserIDSet) Contains(id int64) bool {
	_, ok := s[id]
	return ok
}

func (s UserIDSet) Len() int {
	return len(s)
}

// Values returns the ids in ascending order. The set itself is unordered;
// sorting just keeps downstream output deterministic.
func (s UserIDSet) Values() []int64 {
	values := make([]int64, 0, len(s))
	for id := range s {
		values = append(values, id)
	}
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })
	return values
}
