// internal/scheduler/repair.go
// Urgency repair (spec §4.6): when packing still omits an urgent
// player, re-enumerate the full match set — ignoring the remaining
// pool, so previously-scheduled pairings are fair game again — and
// append matches covering the missing urgent players.

package scheduler

// urgencyRepair appends matches to `selected` until every urgent
// player is seated or no more candidates are available. It never
// mutates the `remaining` pool: matches it introduces may duplicate an
// earlier logical match, which stays wherever it already was in
// `remaining` (spec §4.6, §9 "repair-mode id semantics").
func urgencyRepair(selected []matchSeed, used map[string]struct{}, allSeeds []matchSeed, urgent map[string]struct{}, courts int) []matchSeed {
	if len(urgent) == 0 || len(selected) >= courts {
		return selected
	}

	missing := missingUrgent(urgent, used)
	if len(missing) == 0 {
		return selected
	}

	for _, seed := range allSeeds {
		if len(selected) >= courts {
			break
		}
		players := append(append([]string(nil), seed.a.Players...), seed.b.Players...)
		if !containsAnyOf(players, missing) {
			continue
		}
		if !disjointFrom(players, used) {
			continue
		}
		selected = append(selected, seed)
		markUsed(players, used)
		removeSeated(missing, players)
	}

	return selected
}

func missingUrgent(urgent map[string]struct{}, used map[string]struct{}) map[string]struct{} {
	missing := make(map[string]struct{}, len(urgent))
	for p := range urgent {
		if _, seated := used[p]; !seated {
			missing[p] = struct{}{}
		}
	}
	return missing
}

func containsAnyOf(players []string, set map[string]struct{}) bool {
	for _, p := range players {
		if _, ok := set[p]; ok {
			return true
		}
	}
	return false
}

func removeSeated(missing map[string]struct{}, players []string) {
	for _, p := range players {
		delete(missing, p)
	}
}

// anyRemainingContainsUrgent implements the safety gate check (spec
// §4.7): true iff some match still in the remaining pool would seat an
// urgent player.
func anyRemainingContainsUrgent(remaining []matchSeed, urgent map[string]struct{}) bool {
	for _, seed := range remaining {
		if containsAnyOf(seed.a.Players, urgent) || containsAnyOf(seed.b.Players, urgent) {
			return true
		}
	}
	return false
}
