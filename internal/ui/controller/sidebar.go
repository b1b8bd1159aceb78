package controller

import "github.com/mitchelldurbincs/IntoTheBreach/internal/game/core"

// SidebarHeadings are the column titles of the unit table
var SidebarHeadings = [4]string{"Unit", "Coord", "Hp", "Dmg"}

// SidebarRow describes one living unit
type SidebarRow struct {
	Unit     string
	Coord    string
	Health   int
	Damage   int
	Friendly bool
	Active   bool
}

// Sidebar lists the units in priority order. Damage is negative for healers.
func (c *Controller) Sidebar() []SidebarRow {
	entities := c.model.Entities()
	rows := make([]SidebarRow, 0, len(entities))
	for _, e := range entities {
		row := SidebarRow{
			Unit:     e.Name(),
			Coord:    e.Position().String(),
			Health:   e.Health(),
			Damage:   e.Strength(),
			Friendly: e.IsFriendly(),
		}
		if f, ok := e.(core.Friendly); ok {
			row.Active = f.IsActive()
		}
		rows = append(rows, row)
	}
	return rows
}
