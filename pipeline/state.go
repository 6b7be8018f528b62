package pipeline

// State is a step of a run. A run goes through the steps in order and never
// comes back; it ends in Done or Aborted.
type State int

const (
	Init State = iota
	ValidateConfig
	ReadSources
	LoadRegistry
	ResolveKeys
	LoadReturns
	LoadCosts
	Done
	Aborted
)

var stateNames = [...]string{
	Init:           "Init",
	ValidateConfig: "ValidateConfig",
	ReadSources:    "ReadSources",
	LoadRegistry:   "LoadRegistry",
	ResolveKeys:    "ResolveKeys",
	LoadReturns:    "LoadReturns",
	LoadCosts:      "LoadCosts",
	Done:           "Done",
	Aborted:        "Aborted",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "Unknown"
	}
	return stateNames[s]
}

// Terminal reports whether s ends a run.
func (s State) Terminal() bool { return s == Done || s == Aborted }
