package game

// Layout holds the table coordinates cards are animated to. Each side
// has a base position for its first card; later cards step left by the
// side's spacing.
type Layout struct {
	PlayerX       float64
	PlayerY       float64
	DealerX       float64
	DealerY       float64
	PlayerSpacing float64
	DealerSpacing float64
	SpawnX        float64 // where new cards appear before being dealt
	SpawnY        float64
}

// DefaultLayout returns the standard table layout
func DefaultLayout() Layout {
	return Layout{
		PlayerX:       120,
		PlayerY:       -150,
		DealerX:       120,
		DealerY:       150,
		PlayerSpacing: 120,
		DealerSpacing: 120,
		SpawnX:        400,
		SpawnY:        400,
	}
}

// Position returns where the handSize-th card of role lands. handSize
// counts the card being placed.
func (l Layout) Position(role Role, handSize int) (x, y float64) {
	index := float64(handSize - 1)
	if role == RoleDealer {
		return l.DealerX - l.DealerSpacing*index, l.DealerY
	}
	return l.PlayerX - l.PlayerSpacing*index, l.PlayerY
}
