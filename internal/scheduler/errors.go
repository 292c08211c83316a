package scheduler

import "errors"

// Validation failures from the input normaliser (spec §4.1, §7).
var (
	ErrInvalidPlayers = errors.New("fewer than 5 unique players remain after deduplication")
	ErrInvalidCourts  = errors.New("At least 1 court required")
)

const minPlayers = 5
