package viz

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/genlab/internal/catalog"
	"github.com/san-kum/genlab/internal/content"
	"github.com/san-kum/genlab/internal/generators/automaton"
	"github.com/san-kum/genlab/internal/pattern"
	"github.com/san-kum/genlab/internal/preset"
	"github.com/san-kum/genlab/internal/session"
)

func newModel(t *testing.T, withStore bool) Model {
	t.Helper()
	reg := catalog.New()
	sess, err := session.New(reg, automaton.ID, nil, 30)
	if err != nil {
		t.Fatal(err)
	}
	opts := Options{Content: content.Default(), GIFDir: t.TempDir(), Scale: 1}
	if withStore {
		st, err := preset.Open(filepath.Join(t.TempDir(), "presets.json"), reg)
		if err != nil {
			t.Fatal(err)
		}
		opts.Store = st
	}
	m := NewModel(sess, reg, opts)
	out, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return out.(Model)
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		case " ":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		out, _ := m.Update(msg)
		m = out.(Model)
	}
	return m
}

func tick(m Model, n int) Model {
	for i := 0; i < n; i++ {
		out, _ := m.Update(TickMsg(time.Now()))
		m = out.(Model)
	}
	return m
}

func TestTickRendersFrame(t *testing.T) {
	m := tick(newModel(t, false), 3)
	if m.frame == "" {
		t.Fatal("no frame rendered")
	}
	if len(m.lum) != 3 {
		t.Errorf("luminance samples = %d", len(m.lum))
	}
	if !strings.Contains(m.View(), "RUNNING") {
		t.Error("panel should show the run state")
	}
}

func TestPauseAndCycle(t *testing.T) {
	m := press(newModel(t, false), " ")
	if !m.sess.Paused {
		t.Fatal("space should pause")
	}
	first := m.sess.Descriptor().ID
	m = press(m, "n")
	if m.sess.Descriptor().ID == first {
		t.Error("n should switch pattern")
	}
	m = press(m, "N")
	if m.sess.Descriptor().ID != first {
		t.Error("N should switch back")
	}
}

func TestPickerSelects(t *testing.T) {
	m := press(newModel(t, false), "p")
	if m.mode != modePicker {
		t.Fatal("p should open the picker")
	}
	if !strings.Contains(m.View(), "select pattern") {
		t.Error("picker view missing title")
	}
	m = press(m, "down", "enter")
	if m.mode != modeRun || m.sess.Descriptor().ID != m.reg.IDs()[1] {
		t.Errorf("mode %v pattern %s", m.mode, m.sess.Descriptor().ID)
	}
}

func TestSaveAndLoadPreset(t *testing.T) {
	m := press(newModel(t, true), "s", "M", "i", "n", "e", "enter")
	if m.mode != modeRun {
		t.Fatal("enter should close the save prompt")
	}
	list := m.opts.Store.List()
	if len(list) != 1 || list[0].Name != "Mine" {
		t.Fatalf("presets = %+v", list)
	}

	m = press(m, "s", "M", "i", "n", "e", "enter")
	if !strings.Contains(m.status, "already saved as Mine") {
		t.Errorf("status = %q", m.status)
	}

	m = press(m, "o")
	if !strings.Contains(m.View(), "Mine") {
		t.Error("preset list should show the saved preset")
	}
	m = press(m, "d")
	if len(m.opts.Store.List()) != 0 {
		t.Error("d should delete")
	}
	m = press(m, "esc")
	if m.mode != modeRun {
		t.Error("esc should return to run mode")
	}
}

func TestSaveWithoutStore(t *testing.T) {
	m := press(newModel(t, false), "s")
	if m.mode != modeRun || !m.statusErr {
		t.Errorf("mode %v status %q", m.mode, m.status)
	}
}

func TestLearnLevels(t *testing.T) {
	m := press(newModel(t, false), "i")
	if m.mode != modeLearn {
		t.Fatal("i should open the learn view")
	}
	m = press(m, "3")
	if m.level != 2 {
		t.Errorf("level = %d", m.level)
	}
	if strings.Contains(m.View(), content.NotFound) {
		t.Error("built-in docs should cover the automaton")
	}
	m = press(m, "esc")
	if m.mode != modeRun {
		t.Error("esc should leave the learn view")
	}
}

func TestNudgeFocusedControl(t *testing.T) {
	m := newModel(t, false)
	m = press(m, "right")
	if got := m.sess.Values().Float("rule", 0); got != 31 {
		t.Errorf("rule = %v", got)
	}
	m = press(m, "down", "right")
	if got := m.sess.Values().Float("cellSize", 0); got != 5 {
		t.Errorf("cellSize = %v", got)
	}
}

func TestRecordGIF(t *testing.T) {
	m := press(newModel(t, false), "g")
	if m.rec == nil {
		t.Fatal("g should start recording")
	}
	m = tick(m, 4)
	m = press(m, "g")
	if m.rec != nil {
		t.Fatal("g should stop recording")
	}
	path := filepath.Join(m.opts.GIFDir, "genlab_"+automaton.ID+".gif")
	if _, err := os.Stat(path); err != nil {
		t.Errorf("gif not written: %v (status %q)", err, m.status)
	}
}

func TestBrailleAndThemeToggle(t *testing.T) {
	m := tick(press(newModel(t, false), "b", "t"), 1)
	if !m.braille || m.theme.Name == ThemeNeon.Name {
		t.Errorf("braille %v theme %s", m.braille, m.theme.Name)
	}
}

func TestDownsampleAverages(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	pattern.FillRect(img, image.Rect(0, 0, 2, 2), color.RGBA{200, 0, 0, 255})
	out := Downsample(img, 1, 1)
	if got := out.RGBAAt(0, 0).R; got != 100 {
		t.Errorf("averaged red = %d", got)
	}
}

func TestCanvasPlot(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 4))
	pattern.Fill(img, color.RGBA{255, 255, 255, 255})
	c := NewCanvas(1, 1)
	c.Plot(img, 0.5)
	if c.String() != "⣿\n" {
		t.Errorf("canvas = %q", c.String())
	}
}
