package targeting

import "github.com/mitchelldurbincs/bridgefront/internal/game/rules"

// EligiblePlayers returns the player ids passing spec in seating order
func EligiblePlayers(v rules.View, spec PlayerSpec) []string {
	if v.Board == nil || v.PlayerID == "" {
		return nil
	}
	var out []string
	for _, p := range v.Board.Players {
		switch spec.Owner {
		case rules.OwnerSelf:
			if p.ID != v.PlayerID {
				continue
			}
		case rules.OwnerEnemy:
			if p.ID == v.PlayerID {
				continue
			}
		}
		out = append(out, p.ID)
	}
	return out
}
