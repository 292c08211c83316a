// internal/scheduler/types.go
// Core data model for the round-robin scheduling engine.

package scheduler

import "sort"

// MatchType selects how teams are formed from the player roster.
type MatchType string

const (
	Singles MatchType = "singles"
	Doubles MatchType = "doubles"
)

// teamSize returns the number of players on one team for the format.
func (m MatchType) teamSize() int {
	if m == Doubles {
		return 2
	}
	return 1
}

// Team is an unordered set of players, canonicalised as a sorted tuple
// for use as a map key.
type Team struct {
	Players []string `json:"players"`
}

// key returns the canonical, order-independent identity of the team.
func (t Team) key() string {
	sorted := append([]string(nil), t.Players...)
	sort.Strings(sorted)
	out := ""
	for i, p := range sorted {
		if i > 0 {
			out += "\x00"
		}
		out += p
	}
	return out
}

func (t Team) sharesPlayerWith(other Team) bool {
	seen := make(map[string]struct{}, len(t.Players))
	for _, p := range t.Players {
		seen[p] = struct{}{}
	}
	for _, p := range other.Players {
		if _, ok := seen[p]; ok {
			return true
		}
	}
	return false
}

// Match is an unordered pair of distinct teams sharing no player.
type Match struct {
	ID    string   `json:"id"`
	TeamA []string `json:"teamA"`
	TeamB []string `json:"teamB"`
}

func newMatch(id string, a, b Team) Match {
	return Match{ID: id, TeamA: a.Players, TeamB: b.Players}
}

func (m Match) teamA() Team { return Team{Players: m.TeamA} }
func (m Match) teamB() Team { return Team{Players: m.TeamB} }

// players returns all players involved in the match.
func (m Match) players() []string {
	out := make([]string, 0, len(m.TeamA)+len(m.TeamB))
	out = append(out, m.TeamA...)
	out = append(out, m.TeamB...)
	return out
}

// matchKey canonicalises a match as the unordered pair of team keys,
// used to recognise logically-identical matches during repair.
func matchKey(a, b Team) string {
	ka, kb := a.key(), b.key()
	if ka > kb {
		ka, kb = kb, ka
	}
	return ka + "||" + kb
}

// Round is one time-slice: up to `courts` player-disjoint matches plus
// the players resting that round.
type Round struct {
	ID        string   `json:"id"`
	Matches   []Match  `json:"matches"`
	Resting   []string `json:"resting"`
	Completed bool     `json:"completed"`
}

// Schedule is the full output of GenerateSchedule.
type Schedule struct {
	Rounds  []Round `json:"rounds"`
	Warning string  `json:"warning,omitempty"`
}

// WarningLargeRoster is attached when the roster exceeds the size at
// which the engine's combinatorial cost becomes notable (spec §4.1, §5).
const WarningLargeRoster = "large_n; fallback_to_greedy"

const largeRosterThreshold = 16

// RestStats is the output of ComputeRestStats.
type RestStats struct {
	RestCounts map[string]int `json:"restCounts"`
	MaxDiff    int            `json:"maxDiff"`
}

// IDGenerator is the injected collaborator producing unique opaque
// strings for matches and schedules (spec §6). The core never
// generates randomness itself.
type IDGenerator interface {
	NewID() string
}
