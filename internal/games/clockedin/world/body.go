package world

import (
	"github.com/vovakirdan/clocked-in/internal/config"
	"github.com/vovakirdan/clocked-in/internal/core"
)

// Player is the single avatar shared by both timelines.
type Player struct {
	Rect        core.Rect
	VX, VY      float64
	OnGround    bool
	Climbing    bool
	Dead        bool
	FacingRight bool
	Spawn       core.Vec
}

// NewPlayer creates a player standing at spawn.
func NewPlayer(spawn core.Vec, width, height float64) *Player {
	return &Player{
		Rect:        core.NewRect(spawn.X, spawn.Y, width, height),
		FacingRight: true,
		Spawn:       spawn,
	}
}

// Respawn moves the player back to spawn and clears motion and death.
// Facing is kept.
func (p *Player) Respawn() {
	p.Rect.X = p.Spawn.X
	p.Rect.Y = p.Spawn.Y
	p.VX = 0
	p.VY = 0
	p.Dead = false
	p.Climbing = false
}

// Update advances the player one frame against the active solids and
// climbables. The step order is fixed: climb detection, input, gravity,
// horizontal move and resolve, vertical move and resolve, world bounds.
// Dead players are frozen.
func (p *Player) Update(in core.InputFrame, solids, climbables []core.Rect, phys config.Physics, bounds core.Rect) {
	if p.Dead {
		return
	}
	p.checkClimb(climbables)
	p.handleInput(in, phys)
	p.applyGravity(phys)
	p.move(solids, bounds)
}

// checkClimb sets Climbing iff the player overlaps a climbable while airborne.
func (p *Player) checkClimb(climbables []core.Rect) {
	inClimbable := false
	for _, c := range climbables {
		if p.Rect.Intersects(c) {
			inClimbable = true
			break
		}
	}
	p.Climbing = inClimbable && !p.OnGround
}

func (p *Player) handleInput(in core.InputFrame, phys config.Physics) {
	p.VX = 0
	if in.Has(core.ActionLeft) {
		p.VX = -phys.MoveSpeed
		p.FacingRight = false
	}
	if in.Has(core.ActionRight) {
		p.VX = phys.MoveSpeed
		p.FacingRight = true
	}

	if in.Has(core.ActionUp) && p.OnGround && !p.Climbing {
		p.VY = phys.JumpImpulse
		p.OnGround = false
	}

	if p.Climbing {
		if in.Has(core.ActionUp) {
			p.VY = -phys.ClimbSpeed
		} else {
			p.VY = phys.SlideSpeed
		}
	}
}

func (p *Player) applyGravity(phys config.Physics) {
	if p.Climbing {
		return
	}
	p.VY += phys.Gravity
	if p.VY > phys.MaxFallSpeed {
		p.VY = phys.MaxFallSpeed
	}
}

func (p *Player) move(solids []core.Rect, bounds core.Rect) {
	p.Rect = ResolveHorizontal(p.Rect.Translate(p.VX, 0), p.VX, solids)

	var grounded bool
	p.Rect, p.VY, grounded = ResolveVertical(p.Rect.Translate(0, p.VY), p.VY, solids)
	p.OnGround = grounded

	// World bounds
	p.Rect.X = core.ClampF(p.Rect.X, bounds.X, bounds.Right()-p.Rect.W)
	if p.Rect.Y < bounds.Y {
		p.Rect.Y = bounds.Y
	}
	if p.Rect.Bottom() > bounds.Bottom() {
		p.Rect.SetBottom(bounds.Bottom())
		p.OnGround = true
		p.VY = 0
	}
}

// ResolveHorizontal pushes an already displaced rectangle out of every
// overlapping solid along the direction of travel: moving right clamps the
// right edge to the solid's left edge, moving left clamps the left edge to
// the solid's right edge. Velocity is not changed by horizontal hits.
func ResolveHorizontal(r core.Rect, vx float64, solids []core.Rect) core.Rect {
	for _, s := range solids {
		if !r.Intersects(s) {
			continue
		}
		if vx > 0 {
			r.SetRight(s.X)
		} else if vx < 0 {
			r.X = s.Right()
		}
	}
	return r
}

// ResolveVertical pushes an already displaced rectangle out of overlapping
// solids. Falling lands on the solid's top (zero velocity, grounded);
// rising bumps the solid's bottom (zero velocity). Once velocity is zeroed
// later solids in the list are not resolved in the same pass.
func ResolveVertical(r core.Rect, vy float64, solids []core.Rect) (core.Rect, float64, bool) {
	grounded := false
	for _, s := range solids {
		if !r.Intersects(s) {
			continue
		}
		if vy > 0 {
			r.SetBottom(s.Y)
			vy = 0
			grounded = true
		} else if vy < 0 {
			r.Y = s.Bottom()
			vy = 0
		}
	}
	return r, vy, grounded
}
