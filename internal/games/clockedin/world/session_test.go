package world

import (
	"errors"
	"reflect"
	"testing"

	"github.com/vovakirdan/clocked-in/internal/config"
	"github.com/vovakirdan/clocked-in/internal/core"
)

type recordingSink struct {
	played []Sound
}

func (r *recordingSink) Play(s Sound) {
	r.played = append(r.played, s)
}

func (r *recordingSink) count(s Sound) int {
	n := 0
	for _, p := range r.played {
		if p == s {
			n++
		}
	}
	return n
}

// testLayout is a flat 2000x1000 world with the player standing on the
// ground at x=100. Items are placed far away unless a test moves them.
func testLayout() Layout {
	both := SetOf(Present, Past)
	return Layout{
		Name:   "test",
		Width:  2000,
		Height: 1000,
		Spawn:  core.Vec{X: 100, Y: 902},
		Blocks: []BlockDef{
			{Rect: core.NewRect(0, 950, 2000, 50), Sprite: "ground", Timelines: both},
		},
		Axe:  core.Vec{X: 1500, Y: 100},
		Star: core.Vec{X: 1900, Y: 100},
	}
}

func newTestSession(t *testing.T, layout Layout) (*Session, *FrameClock, *recordingSink) {
	t.Helper()
	clock := NewFrameClock(16)
	sink := &recordingSink{}
	s, err := NewSession(layout, config.DefaultTuning(), Options{Clock: clock, Sounds: sink})
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}
	return s, clock, sink
}

func step(t *testing.T, s *Session, actions ...core.Action) StepResult {
	t.Helper()
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	res, err := s.Step(in)
	if err != nil {
		t.Fatalf("Step() failed: %v", err)
	}
	return res
}

func TestPlaceWithEmptyInventory(t *testing.T) {
	layout := testLayout()
	layout.Seeds = []core.Vec{{X: 400, Y: 918}}
	s, _, _ := newTestSession(t, layout)
	step(t, s)

	before := *s.Seeds()[0]
	step(t, s, core.ActionUse)

	if s.Inventory().Len() != 0 {
		t.Errorf("inventory len = %d, want 0", s.Inventory().Len())
	}
	if *s.Seeds()[0] != before {
		t.Errorf("seed changed: %+v -> %+v", before, *s.Seeds()[0])
	}
}

func TestAxePickup(t *testing.T) {
	layout := testLayout()
	layout.Axe = core.Vec{X: 100, Y: 880}
	s, _, _ := newTestSession(t, layout)

	res := step(t, s, core.ActionPickup)
	if !s.Axe().PickedUp {
		t.Fatal("axe not picked up")
	}
	if res.Snapshot.Axe.Visible {
		t.Error("picked axe still visible")
	}
	if !reflect.DeepEqual(res.Snapshot.Inventory, []ItemKind{ItemAxe}) {
		t.Errorf("inventory = %v, want [axe]", res.Snapshot.Inventory)
	}

	res = step(t, s, core.ActionPickup)
	if !s.Axe().PickedUp || s.Inventory().Len() != 0 {
		t.Error("second pickup changed state")
	}
	if !reflect.DeepEqual(res.Snapshot.Inventory, []ItemKind{ItemAxe}) {
		t.Errorf("inventory after repeat = %v", res.Snapshot.Inventory)
	}
}

func TestAxePickupOnlyInPresent(t *testing.T) {
	layout := testLayout()
	layout.Axe = core.Vec{X: 100, Y: 880}
	s, _, _ := newTestSession(t, layout)

	step(t, s, core.ActionSwap, core.ActionPickup)
	if s.Axe().PickedUp {
		t.Error("axe picked up in the past")
	}
}

func TestSwapIntoSolidKills(t *testing.T) {
	layout := testLayout()
	layout.Blocks = append(layout.Blocks, BlockDef{
		Rect:      core.NewRect(90, 860, 60, 60),
		Sprite:    "rock",
		Timelines: SetOf(Past),
	})
	s, _, sink := newTestSession(t, layout)
	step(t, s)
	before := s.Player().Rect

	res := step(t, s, core.ActionSwap)

	if !s.Player().Dead || !res.State.Dead || !res.Snapshot.DeathBanner {
		t.Fatal("player survived swapping into a block")
	}
	if s.Player().Rect != before {
		t.Errorf("position changed on death: %v -> %v", before, s.Player().Rect)
	}
	if s.Timeline() != Past {
		t.Errorf("Timeline() = %s, want past", s.Timeline())
	}
	if sink.count(SoundTeleport) != 1 {
		t.Errorf("teleport played %d times, want 1", sink.count(SoundTeleport))
	}

	// Dead players cannot swap or move.
	step(t, s, core.ActionSwap, core.ActionRight)
	if s.Timeline() != Past || s.Player().Rect != before {
		t.Error("dead player swapped or moved")
	}
}

func TestThemePlaysOnce(t *testing.T) {
	s, _, sink := newTestSession(t, testLayout())
	for range 5 {
		step(t, s)
	}
	if sink.count(SoundTheme) != 1 {
		t.Errorf("theme played %d times, want 1", sink.count(SoundTheme))
	}
}

func TestStarVictoryPersists(t *testing.T) {
	layout := testLayout()
	layout.Star = core.Vec{X: 100, Y: 900}
	s, _, _ := newTestSession(t, layout)

	res := step(t, s)
	if !s.Star().Collected || !s.Victory() || !res.State.Victory {
		t.Fatal("star not collected")
	}
	frame := s.Frame()

	s.Player().Rect.X = 1000
	for range 3 {
		res = step(t, s, core.ActionRight)
	}
	if !res.State.Victory || !res.Snapshot.Victory {
		t.Error("victory lost after leaving the star")
	}
	if s.Frame() != frame {
		t.Errorf("simulation advanced after victory: frame %d -> %d", frame, s.Frame())
	}
}

func TestLaserKillsWhenOn(t *testing.T) {
	layout := testLayout()
	layout.Lasers = []LaserDef{{
		Rect:      core.NewRect(110, 800, 10, 150),
		Axis:      AxisVertical,
		Off:       100,
		Warning:   100,
		On:        100,
		Timelines: SetOf(Present),
	}}
	s, clock, _ := newTestSession(t, layout)

	clock.Set(150)
	res := step(t, s)
	if res.State.Dead {
		t.Fatal("killed during warning")
	}
	if len(res.Snapshot.Hazards) != 1 || res.Snapshot.Hazards[0].Phase != PhaseWarning {
		t.Errorf("hazards = %+v, want one warning laser", res.Snapshot.Hazards)
	}

	clock.Set(199)
	if step(t, s).State.Dead {
		t.Fatal("killed one millisecond early")
	}
	clock.Set(200)
	if !step(t, s).State.Dead {
		t.Fatal("survived an active laser")
	}
}

func TestLaserIgnoredInOtherTimeline(t *testing.T) {
	layout := testLayout()
	layout.Lasers = []LaserDef{{
		Rect:      core.NewRect(110, 800, 10, 150),
		Axis:      AxisVertical,
		On:        1000,
		Timelines: SetOf(Present),
	}}
	s, _, _ := newTestSession(t, layout)

	res := step(t, s, core.ActionSwap)
	if res.State.Dead {
		t.Error("present laser killed the player in the past")
	}
	if len(res.Snapshot.Hazards) != 0 {
		t.Errorf("past snapshot has %d hazards", len(res.Snapshot.Hazards))
	}
}

func TestRespawnResetsState(t *testing.T) {
	layout := testLayout()
	layout.Seeds = []core.Vec{{X: 100, Y: 918}}
	layout.Lasers = []LaserDef{{
		Rect:      core.NewRect(110, 800, 10, 150),
		On:        1000,
		Timelines: SetOf(Past),
	}}
	layout.Axe = core.Vec{X: 100, Y: 880}
	s, _, _ := newTestSession(t, layout)

	step(t, s, core.ActionPickup)
	step(t, s, core.ActionRight)
	res := step(t, s, core.ActionSwap, core.ActionPickup)
	if !res.State.Dead {
		t.Fatal("past laser did not kill")
	}
	if s.Inventory().Len() != 1 {
		t.Fatalf("inventory len = %d, want 1", s.Inventory().Len())
	}

	res = step(t, s, core.ActionRespawn)

	p := s.Player()
	if p.Dead || p.Rect.X != 100 || p.Climbing || p.VX != 0 {
		t.Errorf("player not reset: %+v", p)
	}
	if s.Timeline() != Present {
		t.Errorf("Timeline() = %s, want present", s.Timeline())
	}
	if s.Inventory().Len() != 0 {
		t.Error("inventory not cleared")
	}
	if seed := s.Seeds()[0]; seed.PickedUp || seed.Rect.X != 100 {
		t.Errorf("seed not reset: %+v", seed)
	}
	if !s.Axe().PickedUp {
		t.Error("respawn dropped the axe")
	}
	if res.State.Dead {
		t.Error("respawned player reported dead")
	}

	// Respawn while alive is ignored.
	s.Player().Rect.X = 500
	step(t, s, core.ActionRespawn)
	if s.Player().Rect.X == 100 {
		t.Error("respawn while alive moved the player")
	}
}

func TestSeedGrowsAcrossTimelines(t *testing.T) {
	layout := testLayout()
	layout.Seeds = []core.Vec{{X: 100, Y: 918}}
	s, _, _ := newTestSession(t, layout)
	step(t, s)

	// Present: the seed cannot be picked up.
	step(t, s, core.ActionPickup)
	if s.Inventory().Len() != 0 {
		t.Fatal("seed picked up in the present")
	}

	step(t, s, core.ActionSwap, core.ActionPickup)
	if s.Inventory().Len() != 1 || !s.Seeds()[0].PickedUp {
		t.Fatal("seed not picked up in the past")
	}

	res := step(t, s, core.ActionUse)
	seed := s.Seeds()[0]
	if !seed.Placed || !seed.GrownInPresent {
		t.Fatalf("seed not planted: %+v", seed)
	}
	if !res.Snapshot.Seeds[0].ShowMound {
		t.Error("mound not shown in the past")
	}
	if _, ok := seed.Trunk(); ok {
		t.Fatal("trunk grew while the past is active")
	}

	res = step(t, s, core.ActionSwap)
	h, ok := seed.Trunk()
	if !ok {
		t.Fatal("trunk did not grow in the present")
	}
	if !s.Registry().Contains(Present, h) {
		t.Error("trunk not in present climbables")
	}
	found := false
	for _, c := range res.Snapshot.Climbables {
		if c.Sprite == SproutSprite {
			found = true
		}
	}
	if !found {
		t.Error("trunk missing from the snapshot")
	}
}

func TestChopSpecialTreeUnlocksPresent(t *testing.T) {
	layout := testLayout()
	layout.Axe = core.Vec{X: 100, Y: 880}
	layout.Blocks = append(layout.Blocks, BlockDef{
		Rect:      core.NewRect(300, 400, 300, 550),
		Sprite:    "bigTree",
		Timelines: SetOf(Present),
		Unlock:    true,
	})
	layout.Trees = []TreeDef{{X: 150, GroundY: 950, Width: 80, Height: 200, Special: true, Sprite: "bigTree"}}
	s, _, _ := newTestSession(t, layout)

	step(t, s, core.ActionPickup)
	if !s.Axe().PickedUp {
		t.Fatal("axe not picked up")
	}

	res := step(t, s, core.ActionSwap)
	if res.State.Dead {
		t.Fatalf("died swapping next to the tree at %v", s.Player().Rect)
	}
	if len(res.Snapshot.Trees) != 1 {
		t.Fatalf("snapshot has %d trees, want 1", len(res.Snapshot.Trees))
	}

	step(t, s, core.ActionUse)
	tree := s.Trees()[0]
	if tree.Alive {
		t.Fatal("tree not chopped")
	}
	if s.Registry().Contains(Present, s.Unlock()) {
		t.Error("unlock block still in the present")
	}
	for _, h := range tree.Parts() {
		if s.Registry().Contains(Past, h) {
			t.Errorf("tree part %d still in the past", h)
		}
	}
}

func TestQuit(t *testing.T) {
	s, _, _ := newTestSession(t, testLayout())
	res := step(t, s, core.ActionQuit)
	if !res.State.Quit {
		t.Error("quit not reported")
	}
	if s.Frame() != 0 {
		t.Errorf("quit frame simulated: frame = %d", s.Frame())
	}
}

func TestCameraClamp(t *testing.T) {
	s, _, _ := newTestSession(t, testLayout())

	res := step(t, s)
	if res.Snapshot.Camera != (core.Vec{X: 0, Y: 400}) {
		t.Errorf("camera at spawn = %v, want (0, 400)", res.Snapshot.Camera)
	}

	s.Player().Rect.X = 1900
	res = step(t, s)
	if res.Snapshot.Camera.X != 1200 {
		t.Errorf("camera x at right edge = %g, want 1200", res.Snapshot.Camera.X)
	}

	s.Player().Rect.X = 1000
	res = step(t, s)
	want := s.Player().Rect.Center().X - 400
	if res.Snapshot.Camera.X != want {
		t.Errorf("camera x = %g, want %g", res.Snapshot.Camera.X, want)
	}
}

func TestCameraWorldSmallerThanViewport(t *testing.T) {
	layout := testLayout()
	layout.Width = 500
	layout.Blocks[0].Rect = core.NewRect(0, 950, 500, 50)
	s, _, _ := newTestSession(t, layout)

	s.Player().Rect.X = 400
	res := step(t, s)
	if res.Snapshot.Camera.X != 0 {
		t.Errorf("camera x = %g, want 0", res.Snapshot.Camera.X)
	}
}

func TestSeedInventoryIsFIFO(t *testing.T) {
	layout := testLayout()
	layout.Seeds = []core.Vec{{X: 100, Y: 918}, {X: 104, Y: 918}}
	s, _, _ := newTestSession(t, layout)

	step(t, s, core.ActionSwap)
	step(t, s, core.ActionPickup)
	step(t, s, core.ActionPickup)
	if got := s.Inventory().Seeds(); !reflect.DeepEqual(got, []int{0, 1}) {
		t.Fatalf("inventory = %v, want [0 1]", got)
	}

	res := step(t, s, core.ActionUse)
	first, second := s.Seeds()[0], s.Seeds()[1]
	if !first.Placed || first.PickedUp {
		t.Errorf("first seed placed=%v pickedUp=%v, want placed", first.Placed, first.PickedUp)
	}
	if second.Placed || !second.PickedUp {
		t.Errorf("second seed placed=%v pickedUp=%v, want held", second.Placed, second.PickedUp)
	}
	if got := s.Inventory().Seeds(); !reflect.DeepEqual(got, []int{1}) {
		t.Errorf("inventory after place = %v, want [1]", got)
	}
	if !reflect.DeepEqual(res.Snapshot.Inventory, []ItemKind{ItemSeed}) {
		t.Errorf("snapshot inventory = %v, want [seed]", res.Snapshot.Inventory)
	}

	step(t, s, core.ActionUse)
	if !second.Placed || s.Inventory().Len() != 0 {
		t.Errorf("second use: placed=%v inventory=%d", second.Placed, s.Inventory().Len())
	}
}

func TestPlaceRefusedWhileAirborne(t *testing.T) {
	layout := testLayout()
	layout.Seeds = []core.Vec{{X: 100, Y: 918}}
	s, _, _ := newTestSession(t, layout)

	step(t, s, core.ActionSwap, core.ActionPickup)
	if s.Inventory().Len() != 1 {
		t.Fatalf("inventory = %d, want 1", s.Inventory().Len())
	}

	s.Player().OnGround = false
	step(t, s, core.ActionUse)

	if s.Inventory().Len() != 1 {
		t.Errorf("inventory = %d, want 1", s.Inventory().Len())
	}
	if s.Seeds()[0].Placed {
		t.Error("seed placed while airborne")
	}
}

func TestActionsIgnoredWhileDead(t *testing.T) {
	tests := []struct {
		name    string
		setup   []core.Action // performed alive, one step each
		actions []core.Action // performed dead in one step
		wantInv int
	}{
		{"pickup axe in present", nil, []core.Action{core.ActionPickup}, 0},
		{"pickup seed in past", []core.Action{core.ActionSwap}, []core.Action{core.ActionPickup}, 0},
		{"place held seed", []core.Action{core.ActionSwap, core.ActionPickup}, []core.Action{core.ActionUse}, 1},
		{"pickup then use", []core.Action{core.ActionSwap, core.ActionPickup}, []core.Action{core.ActionPickup, core.ActionUse}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			layout := testLayout()
			layout.Axe = core.Vec{X: 100, Y: 880}
			layout.Seeds = []core.Vec{{X: 100, Y: 918}, {X: 104, Y: 918}}
			s, _, _ := newTestSession(t, layout)

			for _, a := range tt.setup {
				step(t, s, a)
			}
			s.Player().Dead = true
			seeds := []Seed{*s.Seeds()[0], *s.Seeds()[1]}

			step(t, s, tt.actions...)

			if s.Axe().PickedUp {
				t.Error("axe picked up while dead")
			}
			if s.Inventory().Len() != tt.wantInv {
				t.Errorf("inventory = %d, want %d", s.Inventory().Len(), tt.wantInv)
			}
			for i, want := range seeds {
				if got := *s.Seeds()[i]; got != want {
					t.Errorf("seed %d changed: %+v -> %+v", i, want, got)
				}
			}
		})
	}
}

func TestSnapshotHUD(t *testing.T) {
	layout := testLayout()
	layout.Seeds = []core.Vec{{X: 100, Y: 918}}
	s, _, _ := newTestSession(t, layout)

	res := step(t, s, core.ActionSwap, core.ActionPickup)
	want := []HUDSlot{{ItemSeed, true}, {ItemAxe, false}, {ItemBucket, false}}
	if !reflect.DeepEqual(res.Snapshot.HUD, want) {
		t.Errorf("HUD = %v, want %v", res.Snapshot.HUD, want)
	}
	if res.Snapshot.Seeds[0].ShowSeed {
		t.Error("held seed drawn in the world")
	}
}

func TestDeterministicReplay(t *testing.T) {
	script := [][]core.Action{
		{core.ActionRight}, {core.ActionRight}, {core.ActionUp},
		{core.ActionSwap}, {core.ActionLeft, core.ActionUp}, {core.ActionPickup},
		{core.ActionUse}, {core.ActionSwap}, {}, {core.ActionRight},
	}

	run := func() []Snapshot {
		layout := testLayout()
		layout.Seeds = []core.Vec{{X: 120, Y: 918}}
		layout.Lasers = []LaserDef{{Rect: core.NewRect(300, 800, 10, 150), Off: 40, Warning: 40, On: 40, Timelines: SetOf(Present)}}
		s, clock, _ := newTestSession(t, layout)
		var snaps []Snapshot
		for i := range 30 {
			clock.Advance()
			snaps = append(snaps, step(t, s, script[i%len(script)]...).Snapshot)
		}
		return snaps
	}

	a, b := run(), run()
	if !reflect.DeepEqual(a, b) {
		t.Error("two runs of the same script diverged")
	}
}

func TestNewSessionErrors(t *testing.T) {
	bad := testLayout()
	bad.Width = 0
	if _, err := NewSession(bad, config.DefaultTuning(), Options{}); !errors.Is(err, ErrInvalidLayout) {
		t.Errorf("zero width: err = %v", err)
	}

	lonely := testLayout()
	lonely.Trees = []TreeDef{{X: 10, GroundY: 950, Width: 10, Height: 10, Special: true}}
	if _, err := NewSession(lonely, config.DefaultTuning(), Options{}); !errors.Is(err, ErrInvalidLayout) {
		t.Errorf("special tree without unlock block: err = %v", err)
	}

	laser := testLayout()
	laser.Lasers = []LaserDef{{Rect: core.NewRect(0, 0, 1, 1)}}
	if _, err := NewSession(laser, config.DefaultTuning(), Options{}); !errors.Is(err, ErrCycleLength) {
		t.Errorf("zero laser cycle: err = %v", err)
	}

	tuning := config.DefaultTuning()
	tuning.Player.Width = 0
	if _, err := NewSession(testLayout(), tuning, Options{}); !errors.Is(err, config.ErrInvalidTuning) {
		t.Errorf("zero player width: err = %v", err)
	}
}
