package clockedin

import (
	"fmt"
	"math"

	"github.com/vovakirdan/clocked-in/internal/core"
	"github.com/vovakirdan/clocked-in/internal/games/clockedin/world"
)

// Banner texts.
const (
	DeathText   = "You Died! Press R to Respawn"
	VictoryText = "VICTORY!"
	VictoryHint = "Press ESC to quit"
)

const (
	hudRows      = 1
	debugRows    = 1
	defaultGlyph = '█'
)

type glyph struct {
	r rune
	c core.Color
}

// spriteGlyphs maps sprite names to their character look.
var spriteGlyphs = map[string]glyph{
	"ground":        {'▓', core.ColorBrown},
	"cliff":         {'█', core.ColorGray},
	"cliffM":        {'█', core.ColorGray},
	"rocks":         {'▒', core.ColorDarkGray},
	"vaultDoor":     {'▐', core.ColorCyan},
	"bluePlatform":  {'▀', core.ColorBrightBlue},
	"greenPlatform": {'▀', core.ColorBrightGreen},
	"bigTree":       {'█', core.ColorGreen},
	"vines":         {'║', core.ColorGreen},
	"treeTrunk":     {'┃', core.ColorBrown},
	"treeTop":       {'♣', core.ColorGreen},

	world.SproutSprite: {'║', core.ColorBrightGreen},
}

// viewport maps world coordinates inside the camera window to cells of
// the play area.
type viewport struct {
	cam    core.Vec
	sx, sy float64 // world units per cell
	top    int     // first screen row of the play area
	w, h   int     // play area size in cells
}

func newViewport(dst *core.Screen, snap world.Snapshot, debug bool) viewport {
	rows := dst.Height() - hudRows
	if debug {
		rows -= debugRows
	}
	rows = core.Max(rows, 1)
	cols := core.Max(dst.Width(), 1)
	return viewport{
		cam: snap.Camera,
		sx:  snap.Viewport.X / float64(cols),
		sy:  snap.Viewport.Y / float64(rows),
		top: hudRows,
		w:   cols,
		h:   rows,
	}
}

// cells returns the clipped cell span covered by r, or ok=false when r is
// off screen. Non-empty rectangles always cover at least one cell.
func (v viewport) cells(r core.Rect) (x0, y0, x1, y1 int, ok bool) {
	x0 = int(math.Floor((r.X - v.cam.X) / v.sx))
	y0 = int(math.Floor((r.Y - v.cam.Y) / v.sy))
	x1 = core.Max(int(math.Ceil((r.Right()-v.cam.X)/v.sx)), x0+1)
	y1 = core.Max(int(math.Ceil((r.Bottom()-v.cam.Y)/v.sy)), y0+1)

	x0, x1 = core.Clamp(x0, 0, v.w), core.Clamp(x1, 0, v.w)
	y0, y1 = core.Clamp(y0, 0, v.h), core.Clamp(y1, 0, v.h)
	return x0, y0, x1, y1, x0 < x1 && y0 < y1
}

func (v viewport) fill(dst *core.Screen, r core.Rect, g glyph) {
	x0, y0, x1, y1, ok := v.cells(r)
	if !ok {
		return
	}
	dst.FillRect(x0, v.top+y0, x1-x0, y1-y0, g.r, g.c)
}

// Draw renders a snapshot: HUD on the first row, the camera window below
// it and an optional debug line at the bottom.
func Draw(dst *core.Screen, snap world.Snapshot, debug bool) {
	dst.Clear()

	if snap.Victory {
		drawVictory(dst)
		return
	}

	v := newViewport(dst, snap, debug)
	drawBackground(dst, v, snap.Timeline)

	for _, o := range snap.Solids {
		v.fill(dst, o.Rect, lookup(o.Sprite, snap.Timeline))
	}
	for _, t := range snap.Trees {
		v.fill(dst, t.Trunk.Rect, lookup(t.Trunk.Sprite, snap.Timeline))
		if t.Canopy != nil {
			v.fill(dst, t.Canopy.Rect, lookup(t.Canopy.Sprite, snap.Timeline))
		}
	}
	if snap.Star.Visible {
		v.fill(dst, snap.Star.Rect, glyph{'*', core.ColorGold})
	}
	for _, c := range snap.Climbables {
		v.fill(dst, c.Rect, lookup(c.Sprite, snap.Timeline))
	}
	for _, s := range snap.Seeds {
		switch {
		case s.ShowSeed:
			v.fill(dst, s.Rect, glyph{'o', core.ColorYellow})
		case s.ShowMound:
			v.fill(dst, s.Rect, glyph{'∩', core.ColorBrown})
		}
	}
	for _, h := range snap.Hazards {
		drawHazard(dst, v, h)
	}
	drawPlayer(dst, v, snap.Player)
	if snap.Axe.Visible {
		v.fill(dst, snap.Axe.Rect, glyph{'T', core.ColorOrange})
	}

	drawHUD(dst, snap)
	if debug {
		line := fmt.Sprintf("x: %.0f  y: %.0f  timeline: %s  frame: %d",
			snap.Player.Rect.X, snap.Player.Rect.Y, snap.Timeline, snap.Frame)
		dst.DrawText(0, dst.Height()-1, line, core.ColorGray)
	}

	if snap.DeathBanner {
		drawBanner(dst, DeathText, "", core.ColorBrightRed)
	}
}

func lookup(sprite string, tl world.Timeline) glyph {
	if g, ok := spriteGlyphs[sprite]; ok {
		return g
	}
	if tl == world.Past {
		return glyph{defaultGlyph, core.ColorBrown}
	}
	return glyph{defaultGlyph, core.ColorWhite}
}

// drawBackground tints the empty play area so the active timeline is
// obvious at a glance.
func drawBackground(dst *core.Screen, v viewport, tl world.Timeline) {
	r, c := '·', core.ColorDarkGray
	if tl == world.Past {
		r, c = '.', core.ColorBrown
	}
	for y := 0; y < v.h; y += 2 {
		for x := (y / 2) % 4; x < v.w; x += 4 {
			dst.SetCell(x, v.top+y, r, c)
		}
	}
}

func drawHazard(dst *core.Screen, v viewport, h world.HazardView) {
	beam := '─'
	if h.Axis == world.AxisVertical {
		beam = '│'
	}
	switch h.Phase {
	case world.PhaseOn:
		v.fill(dst, h.Rect, glyph{beam, core.ColorBrightRed})
	case world.PhaseWarning:
		c := core.ColorYellow
		if h.Pulse > 0.5 {
			c = core.ColorOrange
		}
		v.fill(dst, h.Rect, glyph{'┊', c})
	}
}

func drawPlayer(dst *core.Screen, v viewport, p world.PlayerView) {
	body := glyph{'@', core.ColorBrightYellow}
	if p.Dead {
		body = glyph{'x', core.ColorRed}
	}
	x0, y0, x1, _, ok := v.cells(p.Rect)
	if !ok {
		return
	}
	v.fill(dst, p.Rect, body)
	if p.Dead {
		return
	}
	face, fx := '>', x1-1
	if !p.FacingRight {
		face, fx = '<', x0
	}
	dst.SetCell(fx, v.top+y0, face, body.c)
}

// drawHUD draws the inventory slots and the active timeline on row 0.
func drawHUD(dst *core.Screen, snap world.Snapshot) {
	x := 1
	for _, slot := range snap.HUD {
		label := fmt.Sprintf("[%-6s]", "")
		c := core.ColorDarkGray
		if slot.Filled {
			label = fmt.Sprintf("[%-6s]", slot.Kind)
			c = core.ColorWhite
		}
		dst.DrawText(x, 0, label, c)
		x += len(label) + 1
	}

	tl := fmt.Sprintf(" %s ", snap.Timeline)
	c := core.ColorCyan
	if snap.Timeline == world.Past {
		c = core.ColorOrange
	}
	dst.DrawText(dst.Width()-len(tl)-1, 0, tl, c)
}

func drawBanner(dst *core.Screen, title, subtitle string, c core.Color) {
	w := core.Max(len(title), len(subtitle)) + 4
	h := 3
	if subtitle != "" {
		h = 5
	}
	x := (dst.Width() - w) / 2
	y := (dst.Height() - h) / 2

	dst.FillRect(x, y, w, h, ' ', core.ColorDefault)
	dst.DrawBox(x, y, w, h, c)
	dst.DrawText(x+(w-len(title))/2, y+1, title, c)
	if subtitle != "" {
		dst.DrawText(x+(w-len(subtitle))/2, y+3, subtitle, core.ColorWhite)
	}
}

func drawVictory(dst *core.Screen) {
	mid := dst.Height() / 2
	dst.DrawTextCentered(mid-1, VictoryText, core.ColorGold)
	dst.DrawTextCentered(mid+1, VictoryHint, core.ColorWhite)
}
