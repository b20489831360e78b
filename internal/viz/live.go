package viz

import (
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/genlab/internal/content"
	"github.com/san-kum/genlab/internal/export"
	"github.com/san-kum/genlab/internal/logx"
	"github.com/san-kum/genlab/internal/pattern"
	"github.com/san-kum/genlab/internal/preset"
	"github.com/san-kum/genlab/internal/session"
)

const (
	panelWidth     = 44
	lumCapacity    = 120
	brailleCutoff  = 0.35
	defaultCols    = 60
	defaultRows    = 22
	defaultScale   = 2
	defaultFPS     = 30
	minCols        = 16
	minRows        = 6
	recordingLimit = 600
)

type mode int

const (
	modeRun mode = iota
	modePicker
	modePresets
	modeSave
	modeLearn
)

type TickMsg time.Time

type Options struct {
	Store   *preset.Store    // nil disables saving and loading presets
	Content *content.Library // nil hides the learn view
	FPS     int
	Scale   int // supersampling factor for the canvas
	Theme   string
	GIFDir  string
	Braille bool
}

// Model is the Bubble Tea model for a live session.
type Model struct {
	sess *session.Session
	reg  *pattern.Registry
	opts Options

	mode       mode
	cols, rows int
	surface    *image.RGBA
	frame      string
	braille    bool
	theme      Theme
	st         styles
	lum        []float64
	rec        *export.Recorder
	status     string
	statusErr  bool
	cursor     int
	nameBuf    string
	level      int
	showHelp   bool
}

func NewModel(sess *session.Session, reg *pattern.Registry, opts Options) Model {
	if opts.FPS <= 0 {
		opts.FPS = defaultFPS
	}
	if opts.Scale <= 0 {
		opts.Scale = defaultScale
	}
	th := GetTheme(opts.Theme)
	m := Model{
		sess:    sess,
		reg:     reg,
		opts:    opts,
		theme:   th,
		st:      newStyles(th),
		lum:     make([]float64, 0, lumCapacity),
		braille: opts.Braille,
	}
	m.resize(defaultCols, defaultRows)
	return m
}

// Run starts the program on the alternate screen and blocks until it quits.
func Run(sess *session.Session, reg *pattern.Registry, opts Options) error {
	_, err := tea.NewProgram(NewModel(sess, reg, opts), tea.WithAltScreen()).Run()
	return err
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.opts.FPS), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd { return m.tick() }

func (m *Model) resize(cols, rows int) {
	m.cols, m.rows = max(cols, minCols), max(rows, minRows)
	k := m.opts.Scale
	m.surface = image.NewRGBA(image.Rect(0, 0, m.cols*2*k, m.rows*4*k))
	if r, ok := m.sess.Generator().(pattern.Resizer); ok {
		r.Resize(m.surface.Bounds().Dx(), m.surface.Bounds().Dy())
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width-panelWidth-4, msg.Height-2)
		return m, nil
	case TickMsg:
		m.step()
		return m, m.tick()
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// step advances the session and redraws the canvas.
func (m *Model) step() {
	m.sess.Step()
	m.sess.Generator().Draw(m.surface)

	if m.braille {
		small := Downsample(m.surface, m.cols*2, m.rows*4)
		c := NewCanvas(m.cols, m.rows)
		c.Plot(small, brailleCutoff)
		m.frame = lipgloss.NewStyle().Foreground(m.theme.Text).Render(c.String())
	} else {
		m.frame = HalfBlocks(Downsample(m.surface, m.cols, m.rows*2))
	}

	m.lum = append(m.lum, Luminance(m.surface))
	if len(m.lum) > lumCapacity {
		m.lum = m.lum[1:]
	}
	if m.rec != nil && !m.sess.Paused {
		m.rec.Add(m.surface)
		if m.rec.Len() >= recordingLimit {
			m.stopRecording()
		}
	}
}

func (m *Model) setStatus(err error, format string, args ...any) {
	if err != nil {
		m.status, m.statusErr = err.Error(), true
		logx.Logger().Debug("tui action failed", "err", err)
		return
	}
	m.status, m.statusErr = fmt.Sprintf(format, args...), false
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.stopRecording()
		return m, tea.Quit
	}
	switch m.mode {
	case modePicker:
		return m.pickerKey(msg)
	case modePresets:
		return m.presetsKey(msg)
	case modeSave:
		return m.saveKey(msg)
	case modeLearn:
		return m.learnKey(msg)
	}
	return m.runKey(msg)
}

func (m Model) runKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var err error
	switch msg.String() {
	case "q":
		m.stopRecording()
		return m, tea.Quit
	case " ":
		m.sess.Paused = !m.sess.Paused
	case "tab", "down", "j":
		m.sess.Focus(1)
	case "shift+tab", "up", "k":
		m.sess.Focus(-1)
	case "right", "l":
		err = m.sess.Nudge(1, false)
	case "shift+right", "L":
		err = m.sess.Nudge(1, true)
	case "left", "h":
		err = m.sess.Nudge(-1, false)
	case "shift+left", "H":
		err = m.sess.Nudge(-1, true)
	case "enter":
		err = m.sess.Activate()
	case "n":
		err = m.switchPattern(1)
	case "N":
		err = m.switchPattern(-1)
	case "R":
		err = m.sess.Reset()
		m.resize(m.cols, m.rows)
		m.setStatus(err, "defaults restored")
	case "p":
		m.mode, m.cursor = modePicker, indexOf(m.reg.IDs(), m.sess.Descriptor().ID)
	case "s":
		if m.opts.Store == nil {
			err = errors.New("no preset store")
		} else {
			m.mode, m.nameBuf = modeSave, ""
		}
	case "o":
		if m.opts.Store == nil {
			err = errors.New("no preset store")
		} else {
			m.mode, m.cursor = modePresets, 0
		}
	case "i":
		if m.opts.Content != nil {
			m.mode, m.level = modeLearn, 0
		}
	case "g":
		if m.rec == nil {
			m.rec = export.NewRecorder(m.opts.FPS)
			m.setStatus(nil, "recording")
		} else {
			m.stopRecording()
		}
	case "b":
		m.braille = !m.braille
	case "t":
		m.theme = NextTheme(m.theme)
		m.st = newStyles(m.theme)
		m.setStatus(nil, "theme %s", m.theme.Name)
	case "?":
		m.showHelp = !m.showHelp
	}
	if err != nil {
		m.setStatus(err, "")
	}
	return m, nil
}

func (m *Model) switchPattern(delta int) error {
	if err := m.sess.Cycle(delta); err != nil {
		return err
	}
	m.resize(m.cols, m.rows)
	m.lum = m.lum[:0]
	return nil
}

func (m *Model) stopRecording() {
	if m.rec == nil {
		return
	}
	rec := m.rec
	m.rec = nil
	if rec.Len() == 0 {
		return
	}
	path := filepath.Join(m.opts.GIFDir, "genlab_"+m.sess.Descriptor().ID+".gif")
	err := rec.Save(path)
	m.setStatus(err, "saved %d frames to %s", rec.Len(), path)
}

func indexOf(ids []string, id string) int {
	for i, s := range ids {
		if s == id {
			return i
		}
	}
	return 0
}

// View renders the current mode.
func (m Model) View() string {
	switch m.mode {
	case modePicker:
		return m.pickerView()
	case modePresets:
		return m.presetsView()
	case modeSave:
		return m.saveView()
	case modeLearn:
		return m.learnView()
	}

	main := lipgloss.JoinHorizontal(lipgloss.Top, m.frame, m.panelView())
	if m.showHelp {
		return m.st.panel.Render(helpText) + "\n" + main
	}
	return main
}

const helpText = `KEYBOARD SHORTCUTS
Space        pause / resume
Tab ↑↓ j k   select control
← → h l      adjust (shift: coarse)
Enter        press button / advance
n N          next / previous pattern
p            pattern picker
s o          save / open presets
i            learn about this pattern
g            toggle GIF recording
b            toggle Braille rendering
t            cycle theme
R            restore defaults
q            quit`

func (m Model) panelView() string {
	d := m.sess.Descriptor()
	var s strings.Builder
	s.WriteString(GradientText(d.Name, m.theme.Title, m.theme.Accent) + "\n")

	state := m.st.running.Render("RUNNING")
	if m.sess.Paused {
		state = m.st.paused.Render("PAUSED")
	}
	if m.rec != nil {
		state += " " + m.st.alert.Render(fmt.Sprintf("REC %d", m.rec.Len()))
	}
	s.WriteString(state + "\n")
	s.WriteString(m.st.muted.Width(panelWidth-4).Render(d.Description) + "\n\n")

	values := m.sess.Values()
	_, focus := m.sess.Focused()
	for i, c := range d.Controls {
		val := session.FormatValue(c, values[c.ID])
		if c.Type == pattern.Range && c.Min != nil && c.Max != nil && *c.Max > *c.Min {
			f := (values.Float(c.ID, 0) - *c.Min) / (*c.Max - *c.Min)
			val = ProgressBar(f, 8) + " " + val
		}
		if i == focus {
			s.WriteString(m.st.selected.Render("> "+fmt.Sprintf("%-16s %s", c.Label, val)) + "\n")
		} else {
			s.WriteString("  " + m.st.label.Render(c.Label) + m.st.value.Render(val) + "\n")
		}
	}

	s.WriteString("\n" + m.st.muted.Render("luminance ") + Sparkline(m.lum, 24) + "\n")
	if m.status != "" {
		st := m.st.value
		if m.statusErr {
			st = m.st.alert
		}
		s.WriteString(st.Width(panelWidth-4).Render(m.status) + "\n")
	}
	s.WriteString(m.st.help.Render("SP:Pause ←→:Adjust ⏎:Press\np:Patterns s:Save o:Open ?:Help"))
	return m.st.panel.Width(panelWidth).Render(s.String())
}
