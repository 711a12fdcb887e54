package tamp

// BodySet is a set of body handles.
type BodySet map[Body]struct{}

// NewBodySet creates a BodySet from the given bodies.
func NewBodySet(bodies ...Body) BodySet {
	set := make(BodySet, len(bodies))
	for _, b := range bodies {
		set[b] = struct{}{}
	}
	return set
}

// Add inserts a body into the set.
func (s BodySet) Add(b Body) {
	s[b] = struct{}{}
}

// AddSet inserts every body of other into the set.
func (s BodySet) AddSet(other BodySet) {
	for b := range other {
		s[b] = struct{}{}
	}
}

// SubtractSet removes every body of other from the set.
func (s BodySet) SubtractSet(other BodySet) {
	for b := range other {
		delete(s, b)
	}
}

// Contains reports whether the set contains the given body.
func (s BodySet) Contains(b Body) bool {
	_, ok := s[b]
	return ok
}

// Clone returns a copy of the set.
func (s BodySet) Clone() BodySet {
	clone := make(BodySet, len(s))
	for b := range s {
		clone[b] = struct{}{}
	}
	return clone
}

// bodiesFromModels returns the union of the bodies of the given models.
func bodiesFromModels(scene Scene, models ...string) BodySet {
	set := BodySet{}
	for _, model := range models {
		for _, b := range scene.ModelBodies(model) {
			set[b] = struct{}{}
		}
	}
	return set
}

// pairProduct returns the cross product of two body sets as collision pairs.
func pairProduct(a, b BodySet) []BodyPair {
	pairs := make([]BodyPair, 0, len(a)*len(b))
	for first := range a {
		for second := range b {
			pairs = append(pairs, BodyPair{first, second})
		}
	}
	return pairs
}
