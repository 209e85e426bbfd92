package skyraid

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/vovakirdan/skyraid/internal/core"
	"github.com/vovakirdan/skyraid/internal/games/skyraid/sim"
)

// Visual characters for rendering
const (
	ShipChar      = '▲'
	GuardianChar  = '✦'
	ForceChar     = '·'
	SatelliteChar = '◆'
	BossChar      = '█'
	StealthChar   = '░'
	BarrelChar    = '▒'
	RockChar      = '█'
	PuffChar      = '░'
	GateChar      = '═'
	BeamChar      = '█'
	WarningChar   = '┆'
	BorderChar    = '│'
)

var enemyGlyphs = map[sim.EnemyKind]rune{
	sim.EnemyChaser: 'V',
	sim.EnemyWave:   '~',
	sim.EnemySniper: 'Y',
}

var bulletGlyphs = map[sim.BulletKind]rune{
	sim.BulletNormal:    '•',
	sim.BulletLaser:     '┃',
	sim.BulletRipple:    'o',
	sim.BulletMissile:   '^',
	sim.BulletBubble:    'O',
	sim.BulletBallistic: '◉',
}

var particleGlyphs = map[sim.ParticleKind]rune{
	sim.ParticleExplosion: '*',
	sim.ParticleSpark:     '.',
	sim.ParticleSmoke:     '░',
	sim.ParticleTrail:     '·',
}

// cellAspect is how many columns match the height of one row.
const cellAspect = 2.0

// fieldLayout maps world units onto the cells of the play field.
type fieldLayout struct {
	x0, y0 int // top-left cell of the field
	w, h   int // field size in cells

	worldW, worldH float64
}

// computeLayout fits the world under the HUD row, keeping its aspect when
// the screen is wide enough.
func computeLayout(screenW, screenH int, worldW, worldH float64) fieldLayout {
	h := core.Max(1, screenH-1)
	w := h
	if worldH > 0 {
		w = int(float64(h) * worldW / worldH * cellAspect)
	}
	w = core.Max(1, core.Min(w, screenW-2))
	return fieldLayout{
		x0:     (screenW - w) / 2,
		y0:     1,
		w:      w,
		h:      h,
		worldW: worldW,
		worldH: worldH,
	}
}

func (l fieldLayout) cellX(wx float64) int {
	if l.worldW <= 0 {
		return l.x0
	}
	return l.x0 + int(math.Floor(wx*float64(l.w)/l.worldW))
}

func (l fieldLayout) cellY(wy float64) int {
	if l.worldH <= 0 {
		return l.y0
	}
	return l.y0 + int(math.Floor(wy*float64(l.h)/l.worldH))
}

// worldX converts a screen column to a world x at the center of that column.
func (l fieldLayout) worldX(col int) (float64, bool) {
	if l.w <= 0 || l.worldW <= 0 {
		return 0, false
	}
	rel := float64(col-l.x0) + 0.5
	return core.ClampF(rel*l.worldW/float64(l.w), 0, l.worldW), true
}

// cellRect converts a world box to cells, at least one cell in each direction.
func (l fieldLayout) cellRect(b core.Box) core.Rect {
	x1, y1 := l.cellX(b.X), l.cellY(b.Y)
	x2, y2 := l.cellX(b.X+b.W), l.cellY(b.Y+b.H)
	return core.NewRect(x1, y1, core.Max(1, x2-x1), core.Max(1, y2-y1))
}

// rect is the field in cells.
func (l fieldLayout) rect() core.Rect {
	return core.NewRect(l.x0, l.y0, l.w, l.h)
}

// canvas draws world entities clipped to the field.
type canvas struct {
	dst  *core.Screen
	clip fieldLayout // fixed field bounds
	view fieldLayout // field shifted by screen shake
}

func (c canvas) put(x, y int, r rune, col core.Color) {
	if c.clip.rect().Contains(x, y) {
		c.dst.SetColor(x, y, r, col)
	}
}

func (c canvas) point(wx, wy float64, r rune, col core.Color) {
	c.put(c.view.cellX(wx), c.view.cellY(wy), r, col)
}

func (c canvas) fill(b core.Box, r rune, col core.Color) {
	rect := c.view.cellRect(b)
	if !rect.Intersects(c.clip.rect()) {
		return
	}
	for y := rect.Y; y < rect.Bottom(); y++ {
		for x := rect.X; x < rect.Right(); x++ {
			c.put(x, y, r, col)
		}
	}
}

func (c canvas) text(x, y int, s string, col core.Color) {
	for i, r := range []rune(s) {
		c.put(x+i, y, r, col)
	}
}

// label centers text on a world box.
func (c canvas) label(b core.Box, s string, col core.Color) {
	rect := c.view.cellRect(b)
	cx, cy := rect.Center()
	c.text(cx-utf8.RuneCountInString(s)/2, cy, s, col)
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.screenTooSmall {
		msg := "Window too small"
		hint := fmt.Sprintf("Need %dx%d", minScreenW, minScreenH)
		dst.DrawTextCentered(dst.Height()/2-1, msg)
		dst.DrawTextCentered(dst.Height()/2+1, hint)
		return
	}
	if g.session == nil {
		return
	}

	c := canvas{dst: dst, clip: g.layout, view: g.layout}
	c.view.x0 += g.shakeOffset()

	g.renderBorder(dst)
	g.renderStars(c)
	g.renderParticles(c)
	g.renderHazards(c)
	g.renderEnemies(c)
	g.renderBosses(c)
	g.renderBullets(c)
	g.renderPlayer(c)

	g.renderHUD(dst)
	g.renderBossBar(c)
	g.renderNotifications(c)
	g.renderOverlay(dst)
}

// shakeOffset returns the horizontal jitter for the current frame.
func (g *Game) shakeOffset() int {
	d, m := g.session.Shake()
	if d <= 0 || m <= 0 {
		return 0
	}
	j := core.Max(1, m/5)
	if g.session.Frame()%2 == 0 {
		return j
	}
	return -j
}

func (g *Game) renderBorder(dst *core.Screen) {
	l := g.layout
	dst.DrawVLine(l.x0-1, l.y0, l.h, BorderChar, core.ColorDarkGray)
	dst.DrawVLine(l.x0+l.w, l.y0, l.h, BorderChar, core.ColorDarkGray)
}

func (g *Game) renderStars(c canvas) {
	for _, layer := range g.stars.Layers {
		for _, s := range layer.Stars {
			c.point(s.X, s.Y, layer.Glyph, layer.Color)
		}
	}
}

func (g *Game) renderParticles(c canvas) {
	for _, p := range g.session.Particles {
		col := p.Color
		if p.Fade() < 0.3 {
			col = core.ColorDarkGray
		}
		c.point(p.CenterX(), p.CenterY(), particleGlyphs[p.Kind], col)
	}
}

func (g *Game) renderHazards(c canvas) {
	s := g.session
	for _, gt := range s.Gates {
		c.fill(gt.Box(), GateChar, gt.Color())
		c.label(gt.Box(), gt.Modifier, core.ColorBrightWhite)
	}
	for _, o := range s.Obstacles {
		switch {
		case o.Puff:
			c.fill(o.Box(), PuffChar, core.ColorWhite)
		case o.HitTimer > 0:
			c.fill(o.Box(), RockChar, core.ColorWhite)
		default:
			c.fill(o.Box(), RockChar, core.ColorGray)
		}
	}
	for _, b := range s.Barrels {
		col := core.ColorGray
		if b.HitTimer > 0 {
			col = core.ColorBrightWhite
		}
		c.fill(b.Box(), BarrelChar, col)
		c.label(b.Box(), fmt.Sprintf("%d", b.HP), core.ColorBrightYellow)
	}
	for _, u := range s.PowerUps {
		c.label(u.Box(), "["+u.Kind.Glyph()+"]", u.Kind.Color())
	}
}

func (g *Game) renderEnemies(c canvas) {
	for _, e := range g.session.Enemies {
		c.fill(e.Box(), enemyGlyphs[e.Kind], e.Color())
	}
}

func (g *Game) renderBosses(c canvas) {
	frame := g.session.Frame()
	for _, b := range g.session.Bosses {
		switch {
		case b.Kind == sim.BossDesarium && b.Stealth:
			c.fill(b.Box(), StealthChar, b.Color())
		case b.HitTimer > 0:
			c.fill(b.Box(), BossChar, core.ColorBrightWhite)
		default:
			c.fill(b.Box(), BossChar, b.Color())
		}

		for i := range b.Satellites {
			x, y := b.SatellitePos(i)
			c.point(x, y, SatelliteChar, core.ColorBrightWhite)
		}

		if b.Charging() && frame%4 < 2 {
			x := c.view.cellX(b.CenterX())
			for y := c.view.cellY(b.Y + b.H); y < c.view.y0+c.view.h; y++ {
				c.put(x, y, WarningChar, core.ColorBrightMagenta)
			}
		}
	}
}

func (g *Game) renderBullets(c canvas) {
	for _, b := range g.session.Bullets {
		if b.Kind == sim.BulletBeam {
			c.fill(b.Box(), BeamChar, b.Color())
			continue
		}
		c.point(b.CenterX(), b.CenterY(), bulletGlyphs[b.Kind], b.Color())
	}
}

func (g *Game) renderPlayer(c canvas) {
	p := g.session.Player
	blink := p.Invulnerable > 0 && (g.session.Frame()/4)%2 == 0

	if !blink || g.session.GameOver() {
		for _, off := range p.Offsets() {
			c.point(p.CX+off.DX, p.CY+off.DY, ShipChar, core.ColorBrightCyan)
		}
	}

	if p.Barrier {
		rect := c.view.cellRect(p.Box())
		_, cy := rect.Center()
		c.put(rect.X-1, cy, '(', core.ColorBrightBlue)
		c.put(rect.Right(), cy, ')', core.ColorBrightBlue)
	}

	for _, box := range p.GuardianBoxes() {
		x, y := box.Center()
		c.point(x, y, GuardianChar, core.ColorPurple)
	}

	if p.Force {
		for i := 0; i < 8; i++ {
			a := float64(i) / 8 * 2 * math.Pi
			c.point(p.CX+math.Cos(a)*sim.ForceRadius, p.CY+math.Sin(a)*sim.ForceRadius, ForceChar, core.ColorSky)
		}
	}
}

// renderHUD draws score, fleet size and equipment on the top row.
func (g *Game) renderHUD(dst *core.Screen) {
	s := g.session
	p := s.Player

	dst.DrawTextColor(1, 0, fmt.Sprintf("SCORE %d", s.Score()), core.ColorBrightWhite)

	fleet := fmt.Sprintf("FLEET %d/%d", p.FirePower, sim.MaxFirePower)
	fleetColor := core.ColorBrightCyan
	if p.FirePower <= 1 {
		fleetColor = core.ColorBrightRed
	}
	dst.DrawTextColor((dst.Width()-len(fleet))/2, 0, fleet, fleetColor)

	gear := []string{strings.ToUpper(p.Weapon.String())}
	if p.SpeedLevel > 0 {
		gear = append(gear, fmt.Sprintf("SPD%d", p.SpeedLevel))
	}
	if p.BallisticCharges > 0 {
		gear = append(gear, fmt.Sprintf("BM%d", p.BallisticCharges))
	}
	if p.Barrier {
		gear = append(gear, fmt.Sprintf("B%d", p.BarrierHP))
	}
	if p.Guardian {
		gear = append(gear, "G")
	}
	if p.Force {
		gear = append(gear, "F")
	}
	right := strings.Join(gear, " ")
	dst.DrawTextColor(dst.Width()-utf8.RuneCountInString(right)-1, 0, right, core.ColorBrightYellow)
}

// renderBossBar shows the health of the first boss that has arrived.
func (g *Game) renderBossBar(c canvas) {
	for _, b := range g.session.Bosses {
		if b.Deleted || b.Intro {
			continue
		}
		name := b.Kind.String()
		width := core.Min(20, c.clip.w-len(name)-3)
		if width <= 0 {
			return
		}
		filled := 0
		if b.MaxHP > 0 {
			filled = int(math.Ceil(float64(b.HP) / float64(b.MaxHP) * float64(width)))
		}
		bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
		line := name + " " + bar
		x := c.clip.x0 + (c.clip.w-utf8.RuneCountInString(line))/2
		c.text(x, c.clip.y0, line, b.Color())
		return
	}
}

func (g *Game) renderNotifications(c canvas) {
	for i, n := range g.notes.Active() {
		line := n.Viewer + " ▸ " + n.Message
		runes := []rune(line)
		if len(runes) > c.clip.w {
			runes = runes[:c.clip.w]
		}
		x := c.clip.x0 + (c.clip.w-len(runes))/2
		c.text(x, c.clip.y0+2+i, string(runes), n.Color)
	}
}

// renderOverlay draws game state messages.
func (g *Game) renderOverlay(dst *core.Screen) {
	switch {
	case g.session.GameOver() && g.mode == ModeStream:
		secs := (g.restartIn + 47) / 48
		g.drawCenteredBox(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  Next run in %ds", g.session.Score(), secs))
	case g.session.GameOver():
		g.drawCenteredBox(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  Press R to restart", g.session.Score()))
	case g.paused:
		g.drawCenteredBox(dst, "PAUSED", "Press P to resume")
	}
}

// drawCenteredBox draws a centered message box.
func (g *Game) drawCenteredBox(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBoxColor(core.NewRect(boxX, boxY, boxW, boxH), core.ColorBrightCyan)

	dst.DrawHLine(boxX+1, boxY+2, boxW-2, '─', core.ColorDarkGray)

	dst.DrawTextColor(boxX+(boxW-len(title))/2, boxY+1, title, core.ColorBrightWhite)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}
