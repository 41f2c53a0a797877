package game

import (
	"errors"
	"fmt"
	"sync"

	"github.com/deadloct/rps-championship-bot/stats"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// ErrStaleMatch is returned when a request names a match that has since been
// replaced by a newer one.
var ErrStaleMatch = errors.New("that match is no longer current")

type SessionConfig struct {
	Name   string // used in logs only
	Picker Picker
	Store  stats.Store
}

// Session is one player's running match and all-time statistics. Statistics
// are saved whenever a match concludes and when the session is closed.
type Session struct {
	SessionConfig

	match  *Match
	record stats.Record

	sync.Mutex
}

func NewSession(cfg SessionConfig) *Session {
	if cfg.Picker == nil {
		cfg.Picker = RandomPicker{}
	}

	if cfg.Store == nil {
		cfg.Store = &stats.MemoryStore{}
	}

	s := &Session{
		SessionConfig: cfg,
		match:         NewMatch(),
		record:        cfg.Store.Load(),
	}

	log.Debugf("loaded stats for %v: %+v", cfg.Name, s.record)
	return s
}

// Play plays the challenger's choice against the computer's pick.
func (s *Session) Play(choice Choice) (RoundResult, error) {
	s.Lock()
	defer s.Unlock()

	return s.play(choice)
}

// PlayMatch is Play, restricted to the match with the given ID.
func (s *Session) PlayMatch(id uuid.UUID, choice Choice) (RoundResult, error) {
	s.Lock()
	defer s.Unlock()

	if s.match.State().ID != id {
		return RoundResult{}, ErrStaleMatch
	}

	return s.play(choice)
}

func (s *Session) play(choice Choice) (RoundResult, error) {
	if s.match.Over() {
		return RoundResult{}, ErrMatchOver
	}

	if !choice.Valid() {
		return RoundResult{}, fmt.Errorf("%w: %v", ErrInvalidChoice, choice)
	}

	opponent, err := s.Picker.Pick()
	if err != nil {
		return RoundResult{}, fmt.Errorf("could not pick the computer's choice: %w", err)
	}

	result, err := s.match.Play(choice, opponent)
	if err != nil {
		return RoundResult{}, err
	}

	switch result.Outcome {
	case ChallengerWins:
		s.record.AddRoundWon()
	case OpponentWins:
		s.record.AddRoundLost()
	default:
		s.record.AddRoundTied()
	}

	log.Debugf("%v round %v of match %v: %v vs %v (%v)",
		s.Name, result.Round, result.State.ID, choice, opponent, result.Outcome)

	if winner, over := result.State.Winner(); over {
		if winner == ChallengerWins {
			s.record.AddMatchWon()
		} else {
			s.record.AddMatchLost()
		}

		log.Infof("%v match %v finished %v-%v", s.Name, result.State.ID,
			result.State.ChallengerScore, result.State.OpponentScore)
		s.Store.Save(s.record)
	}

	return result, nil
}

// NewMatch abandons the current match. Statistics already recorded for its
// rounds are kept.
func (s *Session) NewMatch() MatchState {
	s.Lock()
	defer s.Unlock()

	s.match.Reset()
	return s.match.State()
}

// ReplaceMatch starts a new match only if the match with the given ID is
// still the current one.
func (s *Session) ReplaceMatch(id uuid.UUID) (MatchState, error) {
	s.Lock()
	defer s.Unlock()

	if s.match.State().ID != id {
		return MatchState{}, ErrStaleMatch
	}

	s.match.Reset()
	return s.match.State(), nil
}

func (s *Session) Match() MatchState {
	s.Lock()
	defer s.Unlock()

	return s.match.State()
}

func (s *Session) Stats() stats.Record {
	s.Lock()
	defer s.Unlock()

	return s.record
}

func (s *Session) Close() {
	s.Lock()
	defer s.Unlock()

	s.Store.Save(s.record)
}
