package tamp

// Predicate names a fluent fact kind. The set understood by PlanFreeMotion is
// closed; any other predicate is a caller contract breach.
type Predicate string

// The fluent vocabulary.
const (
	// AtConf asserts a model is at a joint configuration; its bodies become
	// obstacles.
	AtConf Predicate = "atconf"
	// AtPose asserts a model is at a pose; its bodies become obstacles.
	AtPose Predicate = "atpose"
	// AtGrasp asserts a robot rigidly holds a model at a grasp; the grasp
	// travels with the gripper and its bodies join the moving set.
	AtGrasp Predicate = "atgrasp"
)

// Fluent is a typed fact describing the hypothetical world state at planning
// time, used to scope moving and obstacle sets.
type Fluent struct {
	Predicate Predicate
	// Name identifies the model the fact is about.
	Name string
	// Robot identifies the holding robot for AtGrasp facts.
	Robot string
	// Conf is set for AtConf facts.
	Conf *Configuration
	// Pose is set for AtPose and AtGrasp facts.
	Pose *Pose
}

// NewAtConfFluent asserts that the named model is at the given configuration.
func NewAtConfFluent(name string, conf *Configuration) Fluent {
	return Fluent{Predicate: AtConf, Name: name, Conf: conf}
}

// NewAtPoseFluent asserts that the named model is at the given pose.
func NewAtPoseFluent(name string, pose *Pose) Fluent {
	return Fluent{Predicate: AtPose, Name: name, Pose: pose}
}

// NewAtGraspFluent asserts that the named robot holds the named model at the
// given grasp.
func NewAtGraspFluent(robot, name string, grasp *Pose) Fluent {
	return Fluent{Predicate: AtGrasp, Name: name, Robot: robot, Pose: grasp}
}
