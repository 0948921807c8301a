package main

// SynthesizeDecisions concatenates the runbook actions for the given
// subtypes in input order, deduplicating by exact action text while keeping
// first-occurrence positions.
func SynthesizeDecisions(subtypes []string) []string {
	var actions []string
	seen := make(map[string]bool)
	for _, s := range subtypes {
		for _, a := range actionMap[s] {
			if seen[a] {
				continue
			}
			seen[a] = true
			actions = append(actions, a)
		}
	}
	return actions
}
