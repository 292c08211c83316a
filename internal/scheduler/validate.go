// internal/scheduler/validate.go
// Post-hoc invariant checking (spec §3, §8): a schedule is valid iff
// no round double-books a player and no match id repeats globally.

package scheduler

import "fmt"

// ValidateSchedule checks a generated Schedule against invariants I1
// (per-round player disjointness) and I5/P6 (global match id
// uniqueness). It reports every violation found rather than stopping
// at the first.
func ValidateSchedule(s Schedule) (bool, []string) {
	var problems []string
	seenIDs := make(map[string]string)

	for _, round := range s.Rounds {
		seenPlayers := make(map[string]string)
		for _, m := range round.Matches {
			if prior, ok := seenIDs[m.ID]; ok {
				problems = append(problems, fmt.Sprintf("match id %q reused (round %s, previously round %s)", m.ID, round.ID, prior))
			}
			seenIDs[m.ID] = round.ID

			for _, p := range m.players() {
				if _, ok := seenPlayers[p]; ok {
					problems = append(problems, fmt.Sprintf("round %s: player %q appears in more than one match", round.ID, p))
					continue
				}
				seenPlayers[p] = m.ID
			}
		}
		for _, p := range round.Resting {
			if _, ok := seenPlayers[p]; ok {
				problems = append(problems, fmt.Sprintf("round %s: player %q is both resting and playing", round.ID, p))
			}
		}
	}

	return len(problems) == 0, problems
}
