// internal/scheduler/score.go
// Candidate scoring and the six-level lexicographic ordering rule
// (spec §4.4, §4.4.1).

package scheduler

import "math"

// maxConsecutiveRests (T) caps consecutive rests per player: 1 when
// the roster is small, else 2 (spec §3).
func maxConsecutiveRests(numPlayers int) int {
	if numPlayers <= 7 {
		return 1
	}
	return 2
}

// urgencyThreshold (U) is the "approaching threshold" warning level.
func urgencyThreshold(t int) int {
	if t-1 > 1 {
		return t - 1
	}
	return 1
}

// candidate bundles a match seed with the wait/rest metrics needed to
// rank it, computed against the state at round r.
type candidate struct {
	seed    matchSeed
	maxWait int
	sumWait int
	minWait int
	avgRest float64
	fresh   float64
}

func scoreCandidate(s *state, seed matchSeed) candidate {
	players := append(append([]string(nil), seed.a.Players...), seed.b.Players...)

	maxWait, minWait, sumWait := math.MinInt, math.MaxInt, 0
	restSum := 0
	for _, p := range players {
		w := s.wait(p)
		if w > maxWait {
			maxWait = w
		}
		if w < minWait {
			minWait = w
		}
		sumWait += w
		restSum += s.players[p].restCount
	}

	return candidate{
		seed:    seed,
		maxWait: maxWait,
		sumWait: sumWait,
		minWait: minWait,
		avgRest: float64(restSum) / float64(len(players)),
		fresh:   freshness(s, seed.a, seed.b),
	}
}

// freshness implements spec §4.4.1: lower is fresher (less repeated,
// less recently played together).
func freshness(s *state, a, b Team) float64 {
	ka, kb := a.key(), b.key()
	usage := 0
	if ts, ok := s.teams[ka]; ok {
		usage += ts.usageCount
	}
	if ts, ok := s.teams[kb]; ok {
		usage += ts.usageCount
	}

	sinceA := s.round - lastUsedRound(s, ka)
	sinceB := s.round - lastUsedRound(s, kb)

	penalty := recencyPenalty(sinceA) + recencyPenalty(sinceB)

	minSince := sinceA
	if sinceB < minSince {
		minSince = sinceB
	}

	return float64(usage)*100 + penalty + (10 - float64(minSince))
}

func lastUsedRound(s *state, key string) int {
	if ts, ok := s.teams[key]; ok {
		return ts.lastUsedRound
	}
	return neverUsedSentinel
}

func recencyPenalty(since int) float64 {
	switch {
	case since <= 1:
		return 100
	case since <= 2:
		return 50
	default:
		return 0
	}
}

// restBalanceTieThreshold: avg_rest differences below this are treated
// as ties (spec §4.4 rule 4, Open Questions #1). Preserved unchanged.
const restBalanceTieThreshold = 0.3

// less implements the ordering rule of spec §4.4: ascending by the
// first non-zero comparator (so the "earlier" candidate is the one
// that should be scheduled sooner). T is maxConsecutiveRests for the
// current roster, U is the approaching-threshold level.
func less(a, b candidate, t, u int) bool {
	aCritical := a.maxWait >= t
	bCritical := b.maxWait >= t
	if aCritical || bCritical {
		if a.maxWait != b.maxWait {
			return a.maxWait > b.maxWait
		}
	}

	aApproaching := a.maxWait >= u
	bApproaching := b.maxWait >= u
	if aApproaching || bApproaching {
		if a.maxWait != b.maxWait {
			return a.maxWait > b.maxWait
		}
	}

	if a.sumWait != b.sumWait {
		return a.sumWait > b.sumWait
	}

	if math.Abs(a.avgRest-b.avgRest) > restBalanceTieThreshold {
		return a.avgRest > b.avgRest
	}

	if a.minWait != b.minWait {
		return a.minWait > b.minWait
	}

	return a.fresh < b.fresh
}
