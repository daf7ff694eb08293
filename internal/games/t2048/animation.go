package t2048

import "github.com/vovakirdan/tui-2048/internal/games/t2048/core"

// TileAnimation represents an animated tile.
type TileAnimation struct {
	Value    int            // Shown tile value while animating
	From     core.TileIndex // Start cell
	To       core.TileIndex // End cell
	Progress float64        // 0.0 → 1.0
	Merged   bool           // Lands on an equal tile
	IsNew    bool           // New tile (for pop effect)
}

// AnimationPhase represents the current phase of animation.
type AnimationPhase int

const (
	PhaseNone AnimationPhase = iota
	PhaseSlide
	PhasePop
)

// startSlideAnimation builds slide animations from a move's transitions and
// brings the shown grid up to date. Values are read from the shown grid, so
// it must still hold the position before the move.
func (g *Game) startSlideAnimation(transitions []core.TileTransition) {
	g.animations = make([]TileAnimation, 0, len(transitions))
	g.moveTargets = make(map[core.TileIndex]bool, len(transitions))

	for _, t := range transitions {
		exp := g.view.Get(t.From)
		g.animations = append(g.animations, TileAnimation{
			Value:  core.TileNumber(exp),
			From:   t.From,
			To:     t.To,
			Merged: t.Merged(),
		})

		g.view[t.From.Row][t.From.Col] = core.Empty
		if t.Merged() {
			exp++
		}
		g.view[t.To.Row][t.To.Col] = exp
		g.moveTargets[t.To] = true
	}

	g.animating = true
	g.animationPhase = PhaseSlide
	g.animationTicks = 0
}

// startPopAnimation highlights freshly placed tiles.
func (g *Game) startPopAnimation(cells []core.TileIndex) {
	g.animations = make([]TileAnimation, 0, len(cells))
	for _, idx := range cells {
		g.animations = append(g.animations, TileAnimation{
			Value: core.TileNumber(g.view.Get(idx)),
			From:  idx,
			To:    idx,
			IsNew: true,
		})
	}
	g.animating = true
	g.animationPhase = PhasePop
	g.animationTicks = 0
}

// updateAnimation advances the animation state.
// Returns true if animation is still in progress.
func (g *Game) updateAnimation() bool {
	if !g.animating {
		return false
	}

	g.animationTicks++

	var duration int
	switch g.animationPhase {
	case PhaseSlide:
		duration = g.cfg.Animation.SlideTicks
	case PhasePop:
		duration = g.cfg.Animation.PopTicks
	default:
		g.clearAnimation()
		return false
	}

	progress := float64(g.animationTicks) / float64(duration)
	if progress > 1.0 {
		progress = 1.0
	}
	for i := range g.animations {
		g.animations[i].Progress = progress
	}

	if g.animationTicks >= duration {
		g.finishAnimation()
		return false
	}
	return true
}

// finishAnimation completes the current animation phase. The end of a
// slide resolves the turn, whose placements start the pop phase.
func (g *Game) finishAnimation() {
	phase := g.animationPhase
	g.clearAnimation()

	if phase == PhaseSlide {
		g.ctrl.ResolveTurn()
	}
}

func (g *Game) clearAnimation() {
	g.animating = false
	g.animationPhase = PhaseNone
	g.animationTicks = 0
	g.animations = nil
	g.moveTargets = nil
}

// easeOutQuad provides smooth deceleration for animation.
func easeOutQuad(t float64) float64 {
	return t * (2 - t)
}

// interpolatePosition calculates the current cell position during animation.
func (a *TileAnimation) interpolatePosition() (row, col float64) {
	t := easeOutQuad(a.Progress)
	row = float64(a.From.Row) + float64(a.To.Row-a.From.Row)*t
	col = float64(a.From.Col) + float64(a.To.Col-a.From.Col)*t
	return row, col
}
