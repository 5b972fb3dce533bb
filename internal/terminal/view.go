package terminal

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/zeusync/skyloop/internal/core/buffer"
	"github.com/zeusync/skyloop/internal/core/geom"
	"github.com/zeusync/skyloop/internal/core/render"
)

// PanelWidth is the number of columns reserved for the HUD on the right.
const PanelWidth = 28

var (
	styleText  = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleDim   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleAlert = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)

	categoryStyles = map[render.Category]tcell.Style{
		render.CategoryPlayer:     tcell.StyleDefault.Foreground(tcell.ColorGreen),
		render.CategoryFriendly:   tcell.StyleDefault.Foreground(tcell.ColorBlue),
		render.CategoryUnfriendly: tcell.StyleDefault.Foreground(tcell.ColorYellow),
		render.CategoryHostile:    tcell.StyleDefault.Foreground(tcell.ColorRed),
		render.CategoryInactive:   tcell.StyleDefault.Foreground(tcell.ColorGray),
		render.CategorySelected:   tcell.StyleDefault.Foreground(tcell.ColorWhite).Reverse(true),
		render.CategoryAnomaly:    tcell.StyleDefault.Foreground(tcell.ColorPurple),
	}
	categoryGlyphs = map[render.Category]rune{
		render.CategoryPlayer:     '@',
		render.CategoryFriendly:   'f',
		render.CategoryUnfriendly: 'o',
		render.CategoryHostile:    'x',
		render.CategoryInactive:   '.',
		render.CategorySelected:   'X',
		render.CategoryAnomaly:    '*',
	}
)

// View draws the radar and HUD of each frame onto a tcell screen.
type View struct {
	screen tcell.Screen

	mu       sync.Mutex
	radarW   int
	radarH   int
	rangeLen float64
}

func New(screen tcell.Screen) *View {
	return &View{screen: screen}
}

// Render implements the engine's renderer.
func (v *View) Render(slot *buffer.Slot) {
	w, h := v.screen.Size()
	radarW := max(w-PanelWidth, 1)

	v.mu.Lock()
	v.radarW, v.radarH, v.rangeLen = radarW, h, slot.Radar.Range
	v.mu.Unlock()

	v.screen.Clear()
	if slot.Flash > 0.5 {
		v.fill(radarW, h, tcell.StyleDefault.Background(tcell.ColorWhite))
	}
	for _, b := range slot.Radar.Blips {
		x, y, ok := v.toCell(b.Offset, radarW, h, slot.Radar.Range)
		if !ok {
			continue
		}
		v.screen.SetContent(x, y, categoryGlyphs[b.Category], nil, categoryStyles[b.Category])
	}
	v.screen.SetContent(radarW/2, h/2, '^', nil, categoryStyles[render.CategoryPlayer].Bold(true))

	v.panel(slot, radarW+1, h)
	v.screen.Show()
}

// ClickPoint converts a terminal cell on the radar into a click in viewport
// coordinates. Cells in the HUD panel are not clicks.
func (v *View) ClickPoint(x, y int) (geom.Point, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.rangeLen <= 0 || x < 0 || x >= v.radarW || y < 0 || y >= v.radarH {
		return geom.Point{}, false
	}
	return geom.P(
		(float64(x)/float64(v.radarW)*2-1)*v.rangeLen,
		(float64(y)/float64(v.radarH)*2-1)*v.rangeLen,
	), true
}

func (v *View) toCell(offset geom.Point, w, h int, rangeLen float64) (int, int, bool) {
	if rangeLen <= 0 {
		return 0, 0, false
	}
	x := int((offset.X/rangeLen + 1) * float64(w) / 2)
	y := int((offset.Y/rangeLen + 1) * float64(h) / 2)
	return x, y, x >= 0 && x < w && y >= 0 && y < h
}

func (v *View) panel(slot *buffer.Slot, left, h int) {
	row := 0
	line := func(style tcell.Style, format string, args ...any) {
		if row < h {
			v.print(left, row, style, fmt.Sprintf(format, args...))
		}
		row++
	}

	hud := slot.HUD
	line(styleText, "%s", hud.System)
	line(styleDim, "step %d  load %3.0f%%", slot.Step, slot.Load*100)
	line(styleText, "shields %3.0f%%", hud.FlagshipShields*100)
	line(hullStyle(hud.FlagshipHull), "hull    %3.0f%%", hud.FlagshipHull*100)
	row++
	if hud.TargetName != "" {
		line(styleText, "target %s", hud.TargetName)
		line(styleDim, "  %s", hud.TargetGov)
		line(styleText, "  shields %3.0f%%", hud.TargetShields*100)
		line(hullStyle(hud.TargetHull), "  hull    %3.0f%%", hud.TargetHull*100)
		row++
	}
	for _, a := range slot.Ammo {
		line(styleText, "%-18s %5d", a.Outfit, a.Count)
	}
	for _, e := range slot.Escorts {
		switch {
		case e.IsDestroyed:
			line(styleDim, "%s (lost)", e.Name)
		case !e.IsHere:
			line(styleDim, "%s (away)", e.Name)
		default:
			line(hullStyle(e.Hull), "%s %3.0f%%", e.Name, e.Hull*100)
		}
	}
	row = max(row+1, h-len(slot.Messages))
	for _, msg := range slot.Messages {
		line(styleText, "%s", msg)
	}
}

func (v *View) print(x, y int, style tcell.Style, s string) {
	for i, r := range []rune(s) {
		if i >= PanelWidth-1 {
			return
		}
		v.screen.SetContent(x+i, y, r, nil, style)
	}
}

func (v *View) fill(w, h int, style tcell.Style) {
	for y := range h {
		for x := range w {
			v.screen.SetContent(x, y, ' ', nil, style)
		}
	}
}

func hullStyle(hull float64) tcell.Style {
	if hull < 0.25 {
		return styleAlert
	}
	return styleText
}
