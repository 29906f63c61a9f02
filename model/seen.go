package model

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// SeenSet holds the ids of every video a notification was attempted for. Ids
// are only ever added.
type SeenSet map[YoutubeVideoID]struct{}

func NewSeenSet(ids ...YoutubeVideoID) SeenSet {
	s := make(SeenSet, len(ids))
	for _, id := range ids {
		s.Add(id)
	}

	return s
}

func (s SeenSet) Has(id YoutubeVideoID) bool {
	_, ok := s[id]
	return ok
}

func (s SeenSet) Add(id YoutubeVideoID) {
	s[id] = struct{}{}
}

func (s SeenSet) Merge(other SeenSet) {
	for id := range other {
		s.Add(id)
	}
}

func (s SeenSet) Len() int {
	return len(s)
}

// IDs returns the members sorted, so that serialized sets are stable.
func (s SeenSet) IDs() []YoutubeVideoID {
	ids := maps.Keys(s)
	slices.Sort(ids)

	return ids
}
