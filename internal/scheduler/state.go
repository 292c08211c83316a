// internal/scheduler/state.go
// Per-player and per-team statistics tracked across the scheduling run
// (spec §4.3).

package scheduler

// neverPlayedSentinel marks a player who has not yet played a round.
const neverPlayedSentinel = -1

// neverUsedSentinel marks a team that has not yet been used. It must
// stay at or below -(maxConsecutiveRests + recencyWindow) so it never
// spuriously triggers the recency penalty in the freshness score
// (spec §3, Open Questions #2). With maxConsecutiveRests <= 2 and a
// recency window of 2, -10 leaves ample margin.
const neverUsedSentinel = -10

type playerStats struct {
	playCount       int
	restCount       int
	lastPlayedRound int
}

type teamStats struct {
	usageCount    int
	lastUsedRound int
}

// state owns the two stat maps and the round index, updated atomically
// after each committed round.
type state struct {
	players map[string]*playerStats
	teams   map[string]*teamStats
	round   int
}

func newState(players []string) *state {
	s := &state{
		players: make(map[string]*playerStats, len(players)),
		teams:   make(map[string]*teamStats),
		round:   0,
	}
	for _, p := range players {
		s.players[p] = &playerStats{lastPlayedRound: neverPlayedSentinel}
	}
	return s
}

// teamStatsFor lazily creates stats for a team seen for the first time.
func (s *state) teamStatsFor(key string) *teamStats {
	ts, ok := s.teams[key]
	if !ok {
		ts = &teamStats{lastUsedRound: neverUsedSentinel}
		s.teams[key] = ts
	}
	return ts
}

func (s *state) wait(player string) int {
	return s.round - s.players[player].lastPlayedRound
}

// commit applies the end-of-round update: players(selected) get their
// play count bumped and their last-played round set to the current
// round, everyone else rests, and every team that played this round
// has its usage bumped.
func (s *state) commit(selected []Match, allPlayers []string) {
	played := make(map[string]struct{})
	for _, m := range selected {
		for _, p := range m.players() {
			played[p] = struct{}{}
		}
		for _, t := range []Team{m.teamA(), m.teamB()} {
			ts := s.teamStatsFor(t.key())
			ts.usageCount++
			ts.lastUsedRound = s.round
		}
	}

	for _, p := range allPlayers {
		ps := s.players[p]
		if _, didPlay := played[p]; didPlay {
			ps.playCount++
			ps.lastPlayedRound = s.round
		} else {
			ps.restCount++
		}
	}

	s.round++
}
