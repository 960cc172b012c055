package generate

// StepStatus is the display state of one generation step.
type StepStatus string

const (
	StepPending    StepStatus = "pending"
	StepInProgress StepStatus = "in-progress"
	StepCompleted  StepStatus = "completed"
	StepError      StepStatus = "error"
)

// Step is one entry in the progress indicator shown while a generation runs.
type Step struct {
	ID     string     `json:"id"`
	Label  string     `json:"label"`
	Status StepStatus `json:"status"`
}

// Step identifiers, in display order.
const (
	StepInit       = "init"
	StepHTML       = "html"
	StepCSS        = "css"
	StepJS         = "js"
	StepComponents = "components"
	StepImages     = "images"
	StepFinalize   = "finalize"
)

// NewSteps returns the full step sequence with every step pending.
func NewSteps() []Step {
	return []Step{
		{ID: StepInit, Label: "Initializing generation...", Status: StepPending},
		{ID: StepHTML, Label: "Generating HTML structure", Status: StepPending},
		{ID: StepCSS, Label: "Creating styles & themes", Status: StepPending},
		{ID: StepJS, Label: "Building JavaScript logic", Status: StepPending},
		{ID: StepComponents, Label: "Creating components", Status: StepPending},
		{ID: StepImages, Label: "Generating AI images", Status: StepPending},
		{ID: StepFinalize, Label: "Finalizing project", Status: StepPending},
	}
}

// advance moves the sequence so that the step with the given id carries
// status. Everything before it becomes completed, everything after stays
// pending unless already completed. Explicit errors are never overridden.
// Unknown ids leave the sequence unchanged.
func advance(steps []Step, id string, status StepStatus) {
	target := -1
	for i := range steps {
		if steps[i].ID == id {
			target = i
			break
		}
	}
	if target == -1 {
		return
	}

	for i := range steps {
		if steps[i].Status == StepError {
			continue
		}
		switch {
		case i < target:
			steps[i].Status = StepCompleted
		case i == target:
			steps[i].Status = status
		default:
			if steps[i].Status != StepCompleted {
				steps[i].Status = StepPending
			}
		}
	}
}

// failCurrent marks the in-progress step as errored. Completed steps are
// preserved and nothing past the failure changes.
func failCurrent(steps []Step) {
	for i := range steps {
		if steps[i].Status == StepInProgress {
			steps[i].Status = StepError
		}
	}
}

// completeAll marks every non-error step completed; the terminal visual state
// after a successful generation.
func completeAll(steps []Step) {
	for i := range steps {
		if steps[i].Status != StepError {
			steps[i].Status = StepCompleted
		}
	}
}

func cloneSteps(steps []Step) []Step {
	out := make([]Step, len(steps))
	copy(out, steps)
	return out
}
