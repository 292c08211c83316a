// internal/scheduler/pack.go
// Two-pass round packing (spec §4.5): Pass A forces matches containing
// an urgent player, Pass B fills with the best-scored remaining
// candidates, both bounded by disjointness and `courts`.

package scheduler

// urgentPlayers returns the set of players whose wait has reached the
// critical-rotation threshold T (spec glossary: "urgent player").
func urgentPlayers(s *state, allPlayers []string, t int) map[string]struct{} {
	urgent := make(map[string]struct{})
	for _, p := range allPlayers {
		if s.wait(p) >= t {
			urgent[p] = struct{}{}
		}
	}
	return urgent
}

func disjointFrom(players []string, used map[string]struct{}) bool {
	for _, p := range players {
		if _, ok := used[p]; ok {
			return false
		}
	}
	return true
}

func markUsed(players []string, used map[string]struct{}) {
	for _, p := range players {
		used[p] = struct{}{}
	}
}

// packRound runs the two-pass selection over an ordered candidate
// list, returning the matches chosen and the set of players they use.
func packRound(ordered []candidate, courts int, urgent map[string]struct{}) ([]matchSeed, map[string]struct{}) {
	selected := make([]matchSeed, 0, courts)
	used := make(map[string]struct{})

	// Pass A: force matches containing an urgent player.
	for _, c := range ordered {
		if len(selected) >= courts {
			break
		}
		players := append(append([]string(nil), c.seed.a.Players...), c.seed.b.Players...)
		if !disjointFrom(players, used) {
			continue
		}
		if !containsUrgent(players, urgent) {
			continue
		}
		selected = append(selected, c.seed)
		markUsed(players, used)
	}

	// Pass B: fill remaining court slots with the best-scored matches.
	for _, c := range ordered {
		if len(selected) >= courts {
			break
		}
		players := append(append([]string(nil), c.seed.a.Players...), c.seed.b.Players...)
		if !disjointFrom(players, used) {
			continue
		}
		if alreadySelected(selected, c.seed) {
			continue
		}
		selected = append(selected, c.seed)
		markUsed(players, used)
	}

	return selected, used
}

func containsUrgent(players []string, urgent map[string]struct{}) bool {
	for _, p := range players {
		if _, ok := urgent[p]; ok {
			return true
		}
	}
	return false
}

func alreadySelected(selected []matchSeed, seed matchSeed) bool {
	target := matchKey(seed.a, seed.b)
	for _, s := range selected {
		if matchKey(s.a, s.b) == target {
			return true
		}
	}
	return false
}
