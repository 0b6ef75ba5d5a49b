package optimize

// None is an optimizer which computes the initial likelihood and
// exits.
type None struct {
	BaseOptimizer
}

// NewNone creates an optimizer which computes initial likelihood
// only.
func NewNone() *None {
	return &None{}
}

// Run computes the likelihood for the starting point.
func (n *None) Run(iterations int) {
	n.SaveStart()
	n.PrintHeader(n.parameters)
	n.PrintLine(n.parameters, n.l, 1)
	n.SaveCheckpoint(true)
	n.saveDeltaT()
}
