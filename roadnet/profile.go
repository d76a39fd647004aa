package roadnet

// RoadClass is the concrete EdgeProfile a persisted MemGraph stores: a single
// byte tag describing the kind of way an edge represents. A real router's
// profile would be far richer (surface, incline, one-way flags); this is
// enough to let access-mode FactorFuncs make a passable/impassable decision
// without pulling in a router-specific profile format.
type RoadClass uint8

const (
	RoadClassStreet RoadClass = iota
	RoadClassPath
	RoadClassSteps
	RoadClassPlatform
)
