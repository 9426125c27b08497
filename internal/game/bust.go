package game

// BustEvent represents the player being caught on foot by a pursuit unit.
type BustEvent struct {
	UnitID    string
	LevelFrom int
	LevelTo   int
	Retired   []string
	Penalty   int
}

// InCaptureRange checks if a pursuit unit is close enough to arrest the player.
func InCaptureRange(u *PursuitUnit, p *Player) bool {
	return Distance(u.Position.Horizontal(), p.Position.Horizontal()) <= CaptureRadius
}

// FindCaptor returns the first active unit within capture range of the
// player, or nil. Drivers cannot be busted and neither can a player who is
// not wanted.
func FindCaptor(t *Threat, p *Player) *PursuitUnit {
	if !t.Wanted() || p.IsDriving() {
		return nil
	}
	for _, u := range t.units {
		if InCaptureRange(u, p) {
			return u
		}
	}
	return nil
}

// ProcessBust checks for a capture and applies the threat's capture policy.
// At most one bust happens per frame.
func ProcessBust(t *Threat, p *Player) *BustEvent {
	captor := FindCaptor(t, p)
	if captor == nil {
		return nil
	}
	from := t.Level()
	_, retired := t.Capture()
	ev := &BustEvent{
		UnitID:    captor.ID,
		LevelFrom: from,
		LevelTo:   t.Level(),
		Penalty:   BustPenalty,
	}
	for _, u := range retired {
		ev.Retired = append(ev.Retired, u.ID)
	}
	return ev
}
