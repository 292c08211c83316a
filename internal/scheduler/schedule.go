// internal/scheduler/schedule.go
// The scheduling driver (spec §4.8): the safety-gated loop that ties
// normalisation, enumeration, scoring, packing, repair, and state
// tracking together into GenerateSchedule.

package scheduler

import (
	"fmt"
	"sort"
)

// MaxRounds is the hard safety cap on scheduling iterations (spec
// §4.8, §9). Exceeding it for a legitimate input indicates a bug in
// the scoring or packing logic, not a policy to tune.
const MaxRounds = 1000

// GenerateSchedule produces an ordered sequence of player-disjoint
// rounds for the given roster, court count, and match format. It is a
// pure function of its inputs and the id generator: no I/O, no hidden
// state, deterministic for a fixed input and id sequence (spec §5).
func GenerateSchedule(players []string, courts int, matchType MatchType, ids IDGenerator) (Schedule, error) {
	normalised, err := normalisePlayers(players, courts)
	if err != nil {
		return Schedule{}, err
	}

	teams := generateTeams(normalised, matchType)
	allSeeds := generateAllMatches(teams)
	remaining := append([]matchSeed(nil), allSeeds...)

	st := newState(normalised)
	t := maxConsecutiveRests(len(normalised))
	u := urgencyThreshold(t)

	var rounds []Round

	for len(remaining) > 0 && st.round < MaxRounds {
		urgent := urgentPlayers(st, normalised, t)

		// Safety gate (spec §4.7): stop before breaking I6.
		if len(urgent) > 0 && !anyRemainingContainsUrgent(remaining, urgent) {
			break
		}

		ordered := orderCandidates(st, remaining, t, u)
		selected, used := packRound(ordered, courts, urgent)
		packedCount := len(selected)

		selected = urgencyRepair(selected, used, allSeeds, urgent, courts)

		if len(selected) == 0 {
			break
		}

		matches := make([]Match, 0, len(selected))
		for _, seed := range selected {
			matches = append(matches, newMatch(ids.NewID(), seed.a, seed.b))
		}

		round := Round{
			ID:      fmt.Sprintf("r%d", st.round+1),
			Matches: matches,
			Resting: restingPlayers(normalised, matches),
		}
		rounds = append(rounds, round)

		remaining = removePacked(remaining, selected[:packedCount])
		st.commit(matches, normalised)
	}

	sched := Schedule{Rounds: rounds}
	if len(normalised) > largeRosterThreshold {
		sched.Warning = WarningLargeRoster
	}
	return sched, nil
}

// orderCandidates scores every remaining match against the current
// state and sorts it per the lexicographic rule (spec §4.4). Ties fall
// through to enumeration order, which is preserved by Go's stable sort.
func orderCandidates(s *state, remaining []matchSeed, t, u int) []candidate {
	candidates := make([]candidate, len(remaining))
	for i, seed := range remaining {
		candidates[i] = scoreCandidate(s, seed)
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return less(candidates[i], candidates[j], t, u)
	})
	return candidates
}

// restingPlayers returns the players covered by no match this round,
// in roster order (spec I2).
func restingPlayers(all []string, matches []Match) []string {
	playing := make(map[string]struct{})
	for _, m := range matches {
		for _, p := range m.players() {
			playing[p] = struct{}{}
		}
	}
	resting := make([]string, 0, len(all)-len(playing))
	for _, p := range all {
		if _, ok := playing[p]; !ok {
			resting = append(resting, p)
		}
	}
	return resting
}

// removePacked drops the pack-sourced seeds of this round from the
// remaining pool by their logical match key. Repair-sourced seeds are
// never removed here (spec §4.6, §9): whatever state `remaining`
// already held for that logical match is left untouched.
func removePacked(remaining []matchSeed, packed []matchSeed) []matchSeed {
	if len(packed) == 0 {
		return remaining
	}
	drop := make(map[string]struct{}, len(packed))
	for _, seed := range packed {
		drop[matchKey(seed.a, seed.b)] = struct{}{}
	}

	out := remaining[:0:0]
	for _, seed := range remaining {
		if _, gone := drop[matchKey(seed.a, seed.b)]; gone {
			continue
		}
		out = append(out, seed)
	}
	return out
}
