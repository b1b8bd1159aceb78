package game

import "github.com/mitchelldurbincs/IntoTheBreach/internal/game/core"

// Stats is a summary of a level used by front-ends and events
type Stats struct {
	FriendlyAlive     int
	HostileAlive      int
	ActiveMechs       int
	BuildingsStanding int
	BuildingHealth    int // sum over all buildings
	FriendlyHealth    int
	HostileHealth     int
}

func computeStats(board *core.Board, entities []core.Entity) Stats {
	var s Stats
	for _, e := range entities {
		if !e.IsAlive() {
			continue
		}
		if e.IsFriendly() {
			s.FriendlyAlive++
			s.FriendlyHealth += e.Health()
			if f, ok := e.(core.Friendly); ok && f.IsActive() {
				s.ActiveMechs++
			}
		} else {
			s.HostileAlive++
			s.HostileHealth += e.Health()
		}
	}
	for _, b := range board.Buildings() {
		s.BuildingHealth += b.Health()
		if !b.IsDestroyed() {
			s.BuildingsStanding++
		}
	}
	return s
}
