package zoom

import "fmt"

// Action is a suggested expansion point embedded in packed output so
// the reader knows how to request more detail.
type Action struct {
	Target          Target
	SuggestedBudget int
	Description     string
	Command         string
}

// ForFunction builds the action that expands a function.
func ForFunction(name string, budget int) Action {
	target := Target{Kind: KindFunction, Name: name}
	return Action{
		Target:          target,
		SuggestedBudget: budget,
		Description:     fmt.Sprintf("Expand function '%s' (%d tokens)", name, budget),
		Command:         target.Command(budget),
	}
}

// ForClass builds the action that expands a class or struct.
func ForClass(name string, budget int) Action {
	target := Target{Kind: KindClass, Name: name}
	return Action{
		Target:          target,
		SuggestedBudget: budget,
		Description:     fmt.Sprintf("Expand class '%s' (%d tokens)", name, budget),
		Command:         target.Command(budget),
	}
}

// ForFile builds the action that expands a whole file.
func ForFile(path string, budget int) Action {
	target := Target{Kind: KindFile, Path: path}
	return Action{
		Target:          target,
		SuggestedBudget: budget,
		Description:     fmt.Sprintf("Expand file '%s' (%d tokens)", path, budget),
		Command:         target.Command(budget),
	}
}

// AffordanceComment renders the action as the comment embedded next to
// truncated content.
func (a Action) AffordanceComment() string {
	return fmt.Sprintf("/* ZOOM_AFFORDANCE: %s */", a.Command)
}

// XML renders the action as a machine-readable element.
func (a Action) XML() string {
	return fmt.Sprintf(`<action type="expand" target="%s" budget="%d" cmd="%s" />`,
		a.Target, a.SuggestedBudget, a.Command)
}
