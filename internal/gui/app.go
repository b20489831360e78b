// Package gui is the windowed front-end, drawn with Ebitengine.
package gui

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/san-kum/genlab/internal/export"
	"github.com/san-kum/genlab/internal/generators/gradient"
	"github.com/san-kum/genlab/internal/logx"
	"github.com/san-kum/genlab/internal/pattern"
	"github.com/san-kum/genlab/internal/session"
)

const (
	screenW    = 1280
	screenH    = 720
	panelW     = 320
	lineH      = 18
	poleRadius = 24.0
	maxTelem   = 200
)

var (
	ColBg      = color.RGBA{10, 10, 10, 255}
	ColAccent  = color.RGBA{180, 180, 180, 255}
	ColSelect  = color.RGBA{255, 255, 255, 255}
	ColText    = color.RGBA{140, 140, 140, 255}
	ColTextDim = color.RGBA{60, 60, 60, 255}
	ColAlert   = color.RGBA{255, 80, 80, 255}
)

var face = text.NewGoXFace(basicfont.Face7x13)

// errQuit ends the game loop without reporting a failure.
var errQuit = errors.New("quit")

type Options struct {
	Scale       int // the surface is (screen - panel) / Scale pixels
	Interactive bool
	OutDir      string
}

type App struct {
	sess *session.Session
	reg  *pattern.Registry
	opts Options

	InMenu   bool
	InConfig bool
	Selected int

	surface   *image.RGBA
	tex       *ebiten.Image
	telemetry []float64
	rec       *export.Recorder
	dragPole  int
	status    string
}

func NewApp(sess *session.Session, reg *pattern.Registry, opts Options) *App {
	if opts.Scale <= 0 {
		opts.Scale = 2
	}
	a := &App{
		sess:      sess,
		reg:       reg,
		opts:      opts,
		InMenu:    opts.Interactive,
		dragPole:  -1,
		telemetry: make([]float64, 0, maxTelem),
	}
	a.Selected = indexOf(reg.IDs(), sess.Descriptor().ID)
	a.allocSurface()
	return a
}

// Run opens the window and blocks until it is closed or q is pressed.
func Run(sess *session.Session, reg *pattern.Registry, opts Options) error {
	ebiten.SetWindowSize(screenW, screenH)
	ebiten.SetWindowTitle("genlab")
	err := ebiten.RunGame(NewApp(sess, reg, opts))
	if errors.Is(err, errQuit) {
		return nil
	}
	return err
}

func (a *App) allocSurface() {
	w, h := (screenW-panelW)/a.opts.Scale, screenH/a.opts.Scale
	a.surface = image.NewRGBA(image.Rect(0, 0, w, h))
	a.tex = nil
	if r, ok := a.sess.Generator().(pattern.Resizer); ok {
		r.Resize(w, h)
	}
}

func (a *App) Layout(outW, outH int) (int, int) { return screenW, screenH }

func (a *App) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		a.stopRecording()
		return errQuit
	}
	if a.InMenu {
		a.updateMenu()
		return nil
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		a.InMenu, a.InConfig = true, false
		return nil
	}
	a.updateControls()
	if a.InConfig {
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
			a.InConfig = false
			a.sess.Paused = false
		}
		return nil
	}
	a.updateRunning()
	return nil
}

func (a *App) updateMenu() {
	ids := a.reg.IDs()
	if inpututil.IsKeyJustPressed(ebiten.KeyDown) || inpututil.IsKeyJustPressed(ebiten.KeyJ) {
		a.Selected = (a.Selected + 1) % len(ids)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyUp) || inpututil.IsKeyJustPressed(ebiten.KeyK) {
		a.Selected = (a.Selected - 1 + len(ids)) % len(ids)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		a.report(a.sess.Select(ids[a.Selected]), "")
		a.allocSurface()
		a.telemetry = a.telemetry[:0]
		a.InMenu, a.InConfig = false, true
		a.sess.Paused = true
	}
}

// updateControls handles the control panel keys shared by the config and
// running states.
func (a *App) updateControls() {
	coarse := ebiten.IsKeyPressed(ebiten.KeyShift)
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyDown), inpututil.IsKeyJustPressed(ebiten.KeyJ), inpututil.IsKeyJustPressed(ebiten.KeyTab):
		a.sess.Focus(1)
	case inpututil.IsKeyJustPressed(ebiten.KeyUp), inpututil.IsKeyJustPressed(ebiten.KeyK):
		a.sess.Focus(-1)
	case inpututil.IsKeyJustPressed(ebiten.KeyRight), inpututil.IsKeyJustPressed(ebiten.KeyL):
		a.report(a.sess.Nudge(1, coarse), "")
	case inpututil.IsKeyJustPressed(ebiten.KeyLeft), inpututil.IsKeyJustPressed(ebiten.KeyH):
		a.report(a.sess.Nudge(-1, coarse), "")
	}
}

func (a *App) updateRunning() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		a.sess.Paused = !a.sess.Paused
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter):
		a.report(a.sess.Activate(), "")
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		a.report(a.sess.Reset(), "defaults restored")
		a.allocSurface()
	case inpututil.IsKeyJustPressed(ebiten.KeyN):
		delta := 1
		if ebiten.IsKeyPressed(ebiten.KeyShift) {
			delta = -1
		}
		a.report(a.sess.Cycle(delta), "")
		a.Selected = indexOf(a.reg.IDs(), a.sess.Descriptor().ID)
		a.allocSurface()
		a.telemetry = a.telemetry[:0]
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		path := filepath.Join(a.opts.OutDir, "genlab_"+a.sess.Descriptor().ID+".png")
		a.report(export.WritePNG(path, a.surface), "saved "+path)
	case inpututil.IsKeyJustPressed(ebiten.KeyG):
		if a.rec == nil {
			a.rec = export.NewRecorder(ebiten.TPS())
			a.status = "recording"
		} else {
			a.stopRecording()
		}
	}

	a.updateDrag()

	a.sess.Step()
	a.sess.Generator().Draw(a.surface)
	if a.rec != nil && !a.sess.Paused {
		a.rec.Add(a.surface)
	}
	a.telemetry = append(a.telemetry, meanBrightness(a.surface))
	if len(a.telemetry) > maxTelem {
		a.telemetry = a.telemetry[1:]
	}
}

// updateDrag lets the mouse move gradient poles.
func (a *App) updateDrag() {
	g, ok := a.sess.Generator().(*gradient.Generator)
	if !ok {
		a.dragPole = -1
		return
	}
	mx, my := ebiten.CursorPosition()
	sx, sy := toSurface(mx, my, a.opts.Scale)
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		a.dragPole = nearestPole(g.Poles(), sx, sy, poleRadius/float64(a.opts.Scale))
	}
	if !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		a.dragPole = -1
		return
	}
	if a.dragPole >= 0 {
		a.report(g.MovePole(a.dragPole, sx, sy), "")
	}
}

func (a *App) stopRecording() {
	if a.rec == nil || a.rec.Len() == 0 {
		a.rec = nil
		return
	}
	path := filepath.Join(a.opts.OutDir, "genlab_"+a.sess.Descriptor().ID+".gif")
	a.report(a.rec.Save(path), fmt.Sprintf("saved %d frames to %s", a.rec.Len(), path))
	a.rec = nil
}

func (a *App) report(err error, ok string) {
	if err != nil {
		logx.Logger().Warn("gui action failed", "err", err)
		a.status = err.Error()
		return
	}
	if ok != "" {
		a.status = ok
	}
}

func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(ColBg)
	switch {
	case a.InMenu:
		a.drawMenu(screen)
	case a.InConfig:
		a.drawConfig(screen)
	default:
		a.drawSim(screen)
		a.DrawHUD(screen)
	}
}

func drawText(dst *ebiten.Image, s string, x, y int, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(c)
	op.LineSpacing = lineH
	text.Draw(dst, s, face, op)
}

func (a *App) drawSim(screen *ebiten.Image) {
	b := a.surface.Bounds()
	if a.tex == nil {
		a.tex = ebiten.NewImage(b.Dx(), b.Dy())
	}
	a.tex.WritePixels(a.surface.Pix)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(a.opts.Scale), float64(a.opts.Scale))
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(a.tex, op)

	if g, ok := a.sess.Generator().(*gradient.Generator); ok {
		s := float32(a.opts.Scale)
		for i, p := range g.Poles() {
			c := ColTextDim
			if i == a.dragPole {
				c = ColSelect
			}
			vector.StrokeCircle(screen, float32(p.X)*s, float32(p.Y)*s, poleRadius, 2, c, true)
		}
	}
}

func (a *App) DrawHUD(screen *ebiten.Image) {
	x := screenW - panelW + 16
	d := a.sess.Descriptor()
	drawText(screen, "genlab", x, 20, ColSelect)
	drawText(screen, ":: "+d.Name, x, 20+lineH, ColText)

	status, col := "RUNNING", color.Color(ColSelect)
	if a.sess.Paused {
		status, col = "PAUSED", ColTextDim
	}
	if a.rec != nil {
		status, col = fmt.Sprintf("REC %d", a.rec.Len()), ColAlert
	}
	drawText(screen, status, x, 20+2*lineH, col)

	a.drawControls(screen, x, 20+4*lineH)
	a.DrawTelemetry(screen, x, screenH-140, panelW-32, 50)

	if a.status != "" {
		drawText(screen, a.status, x, screenH-70, ColAccent)
	}
	drawText(screen, fmt.Sprintf("%.0f FPS", ebiten.ActualFPS()), x, screenH-50, ColTextDim)
	drawText(screen, "SPC PAUSE  N NEXT  P PNG  G GIF\nR RESET  ESC MENU  Q QUIT", x, screenH-32, ColTextDim)
}

func (a *App) drawControls(screen *ebiten.Image, x, y int) {
	for i, line := range panelLines(a.sess) {
		c := ColText
		if line.focused {
			c = ColSelect
		}
		drawText(screen, line.text, x, y+i*lineH, c)
	}
}

// DrawTelemetry plots recent frame brightness as a line strip.
func (a *App) DrawTelemetry(screen *ebiten.Image, x, y, w, h int) {
	pts := telemetryPoints(a.telemetry, float32(x), float32(y), float32(w), float32(h))
	for i := 1; i < len(pts); i++ {
		vector.StrokeLine(screen, pts[i-1][0], pts[i-1][1], pts[i][0], pts[i][1], 1, ColAccent, true)
	}
	if n := len(a.telemetry); n > 0 {
		drawText(screen, fmt.Sprintf("L: %.3f", a.telemetry[n-1]), x, y+h+4, ColText)
	}
}

func (a *App) drawMenu(screen *ebiten.Image) {
	drawText(screen, "genlab", 50, 50, ColSelect)
	drawText(screen, "Select Pattern", 50, 80, ColTextDim)
	y := 130
	for i, d := range a.reg.List() {
		if i == a.Selected {
			drawText(screen, "> "+d.Name, 50, y, ColSelect)
			drawText(screen, d.Description, 300, y, ColText)
		} else {
			drawText(screen, "  "+d.Name, 50, y, ColText)
		}
		y += 28
	}
	drawText(screen, "ARROWS: NAVIGATE  ENTER: SELECT  Q: QUIT", 850, 680, ColTextDim)
}

func (a *App) drawConfig(screen *ebiten.Image) {
	drawText(screen, "genlab", 50, 50, ColTextDim)
	drawText(screen, "configure", 110, 50, ColSelect)
	drawText(screen, "Target: "+a.sess.Descriptor().Name, 50, 90, ColAccent)
	a.drawControls(screen, 50, 140)
	drawText(screen, "ARROWS: ADJUST  ENTER: RUN  ESC: BACK", 880, 680, ColTextDim)
}

type panelLine struct {
	text    string
	focused bool
}

func panelLines(s *session.Session) []panelLine {
	values := s.Values()
	_, focus := s.Focused()
	d := s.Descriptor()
	lines := make([]panelLine, 0, len(d.Controls))
	for i, c := range d.Controls {
		prefix := "  "
		if i == focus {
			prefix = "> "
		}
		lines = append(lines, panelLine{
			text:    fmt.Sprintf("%s%-18s %s", prefix, c.Label, session.FormatValue(c, values[c.ID])),
			focused: i == focus,
		})
	}
	return lines
}

// toSurface maps window coordinates to surface pixels.
func toSurface(mx, my, scale int) (float64, float64) {
	return float64(mx) / float64(scale), float64(my) / float64(scale)
}

// nearestPole returns the index of the pole closest to (x, y) within
// radius, or -1.
func nearestPole(poles []gradient.Pole, x, y, radius float64) int {
	best, bestD := -1, radius
	for i, p := range poles {
		if d := math.Hypot(p.X-x, p.Y-y); d <= bestD {
			best, bestD = i, d
		}
	}
	return best
}

func telemetryPoints(values []float64, x, y, w, h float32) [][2]float32 {
	if len(values) < 2 {
		return nil
	}
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}
	if hi == lo {
		hi = lo + 1
	}
	pts := make([][2]float32, len(values))
	for i, v := range values {
		px := x + float32(i)/float32(len(values)-1)*w
		py := y + h - float32((v-lo)/(hi-lo))*h
		pts[i] = [2]float32{px, py}
	}
	return pts
}

func meanBrightness(img *image.RGBA) float64 {
	sum := 0
	for i := 0; i < len(img.Pix); i += 4 {
		sum += int(img.Pix[i]) + int(img.Pix[i+1]) + int(img.Pix[i+2])
	}
	n := len(img.Pix) / 4 * 3
	if n == 0 {
		return 0
	}
	return float64(sum) / float64(n) / 255
}

func indexOf(ids []string, id string) int {
	for i, s := range ids {
		if s == id {
			return i
		}
	}
	return 0
}
