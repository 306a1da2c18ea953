package arena

import (
	"fmt"

	"github.com/utttsim/uttt/game"
)

// Stats tallies episode outcomes across a run.
type Stats struct {
	XWins    int
	OWins    int
	Draws    int
	Episodes int
}

// Add counts one finished episode.
func (s *Stats) Add(r Result) {
	s.Episodes++
	switch r.Winner {
	case game.MarkX:
		s.XWins++
	case game.MarkO:
		s.OWins++
	default:
		s.Draws++
	}
}

func (s Stats) String() string {
	return fmt.Sprintf("%d games: X wins %d, O wins %d, draws %d",
		s.Episodes, s.XWins, s.OWins, s.Draws)
}
