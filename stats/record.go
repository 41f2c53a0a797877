package stats

// Record holds the all-time counters for one player.
type Record struct {
	MatchesWon   int `json:"matches_won"`
	MatchesLost  int `json:"matches_lost"`
	TotalMatches int `json:"total_matches"`
	RoundsWon    int `json:"rounds_won"`
	RoundsLost   int `json:"rounds_lost"`
	RoundsTied   int `json:"rounds_tied"`
	TotalRounds  int `json:"total_rounds"`
}

func (r *Record) AddRoundWon() {
	r.RoundsWon++
	r.TotalRounds++
}

func (r *Record) AddRoundLost() {
	r.RoundsLost++
	r.TotalRounds++
}

func (r *Record) AddRoundTied() {
	r.RoundsTied++
	r.TotalRounds++
}

func (r *Record) AddMatchWon() {
	r.MatchesWon++
	r.TotalMatches++
}

func (r *Record) AddMatchLost() {
	r.MatchesLost++
	r.TotalMatches++
}

// WinRate is the percentage of matches won, or 0 before the first match.
func (r Record) WinRate() float64 {
	if r.TotalMatches <= 0 {
		return 0
	}

	return float64(r.MatchesWon) / float64(r.TotalMatches) * 100
}

// sanitize zeroes any negative counter.
func (r Record) sanitize() Record {
	for _, c := range []*int{
		&r.MatchesWon, &r.MatchesLost, &r.TotalMatches,
		&r.RoundsWon, &r.RoundsLost, &r.RoundsTied, &r.TotalRounds,
	} {
		if *c < 0 {
			*c = 0
		}
	}

	return r
}
