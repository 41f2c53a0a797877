package game

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// WinningScore is the number of round wins that takes a match.
const WinningScore = 2

var ErrMatchOver = errors.New("match is over, start a new match to play again")

// MatchState is a snapshot of a match. Round is the number of the next round
// to be played.
type MatchState struct {
	ID              uuid.UUID
	ChallengerScore int
	OpponentScore   int
	Round           int
}

func (s MatchState) Over() bool {
	return s.ChallengerScore >= WinningScore || s.OpponentScore >= WinningScore
}

// Winner reports who took the match. The boolean is false while the match is
// still undecided.
func (s MatchState) Winner() (RoundOutcome, bool) {
	switch {
	case s.ChallengerScore >= WinningScore:
		return ChallengerWins, true
	case s.OpponentScore >= WinningScore:
		return OpponentWins, true
	}

	return Tie, false
}

type RoundResult struct {
	Round      int
	Challenger Choice
	Opponent   Choice
	Outcome    RoundOutcome
	State      MatchState
}

func (r RoundResult) MatchOver() bool {
	return r.State.Over()
}

// Match is a best-of-three between a challenger and an opponent.
type Match struct {
	state MatchState
}

func NewMatch() *Match {
	return &Match{state: MatchState{ID: uuid.New(), Round: 1}}
}

func (m *Match) State() MatchState {
	return m.state
}

func (m *Match) Over() bool {
	return m.state.Over()
}

func (m *Match) Play(challenger, opponent Choice) (RoundResult, error) {
	if m.Over() {
		return RoundResult{}, ErrMatchOver
	}

	for _, c := range []Choice{challenger, opponent} {
		if !c.Valid() {
			return RoundResult{}, fmt.Errorf("%w: %v", ErrInvalidChoice, c)
		}
	}

	outcome := Resolve(challenger, opponent)
	switch outcome {
	case ChallengerWins:
		m.state.ChallengerScore++
	case OpponentWins:
		m.state.OpponentScore++
	}

	round := m.state.Round
	m.state.Round++

	return RoundResult{
		Round:      round,
		Challenger: challenger,
		Opponent:   opponent,
		Outcome:    outcome,
		State:      m.state,
	}, nil
}

// Reset starts a fresh match under a new ID.
func (m *Match) Reset() {
	m.state = MatchState{ID: uuid.New(), Round: 1}
}
