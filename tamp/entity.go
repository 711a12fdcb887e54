package tamp

// Placeable is the capability shared by continuous planning values that
// occupy bodies in the scene and can be written into a simulation State. Pose
// and Configuration implement it as peers; there is deliberately no type
// hierarchy between them.
type Placeable interface {
	// Bodies returns the set of rigid bodies the value occupies.
	Bodies() BodySet
	// Assign writes the value into the given state. Assignments are
	// destructive to prior state.
	Assign(state State) error
}
