package viz

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/genlab/internal/clip"
	"github.com/san-kum/genlab/internal/content"
	"github.com/san-kum/genlab/internal/preset"
)

func (m Model) pickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ids := m.reg.IDs()
	switch msg.String() {
	case "esc", "q":
		m.mode = modeRun
	case "up", "k":
		m.cursor = (m.cursor - 1 + len(ids)) % len(ids)
	case "down", "j":
		m.cursor = (m.cursor + 1) % len(ids)
	case "enter":
		err := m.sess.Select(ids[m.cursor])
		if err == nil {
			m.resize(m.cols, m.rows)
			m.lum = m.lum[:0]
		}
		m.setStatus(err, "switched to %s", ids[m.cursor])
		m.mode = modeRun
	}
	return m, nil
}

func (m Model) pickerView() string {
	var s strings.Builder
	s.WriteString(m.st.header.Render("genlab") + "  " + m.st.muted.Render("select pattern") + "\n\n")
	for i, d := range m.reg.List() {
		line := fmt.Sprintf("%-22s %s", d.Name, m.st.muted.Render(d.Description))
		if i == m.cursor {
			s.WriteString(m.st.selected.Render("> "+d.Name) + strings.Repeat(" ", max(1, 23-len(d.Name))) + m.st.muted.Render(d.Description) + "\n")
		} else {
			s.WriteString("  " + m.st.value.Render(line) + "\n")
		}
	}
	s.WriteString(m.st.help.Render("↑↓: navigate  enter: select  esc: back"))
	return m.st.panel.Render(s.String())
}

func (m Model) presetList() []preset.Preset {
	return m.opts.Store.List()
}

func (m Model) presetsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	list := m.presetList()
	if msg.String() == "esc" || msg.String() == "q" {
		m.mode = modeRun
		return m, nil
	}
	if len(list) == 0 {
		return m, nil
	}
	m.cursor = min(m.cursor, len(list)-1)
	p := list[m.cursor]
	switch msg.String() {
	case "up", "k":
		m.cursor = (m.cursor - 1 + len(list)) % len(list)
	case "down", "j":
		m.cursor = (m.cursor + 1) % len(list)
	case "enter":
		err := m.sess.Load(p)
		if err == nil {
			m.resize(m.cols, m.rows)
		}
		m.setStatus(err, "loaded %s", p.Name)
		m.mode = modeRun
	case "d", "x":
		err := m.opts.Store.Delete(p.ID)
		m.setStatus(err, "deleted %s", p.Name)
	case "c":
		_, data, err := m.opts.Store.ExportOne(p.ID)
		if err == nil {
			err = clip.WriteText(string(data))
		}
		m.setStatus(err, "copied %s to clipboard", p.Name)
	}
	return m, nil
}

func (m Model) presetsView() string {
	var s strings.Builder
	s.WriteString(m.st.header.Render("presets") + "\n\n")
	list := m.presetList()
	if len(list) == 0 {
		s.WriteString(m.st.muted.Render("  (none saved)") + "\n")
	}
	for i, p := range list {
		line := fmt.Sprintf("%-24s %s", p.Name, m.st.muted.Render(p.GeneratorType))
		if i == m.cursor {
			s.WriteString(m.st.selected.Render("> "+p.Name) + strings.Repeat(" ", max(1, 25-len(p.Name))) + m.st.muted.Render(p.GeneratorType) + "\n")
		} else {
			s.WriteString("  " + m.st.value.Render(line) + "\n")
		}
	}
	if m.status != "" {
		s.WriteString("\n" + m.st.value.Render(m.status) + "\n")
	}
	s.WriteString(m.st.help.Render("enter: load  d: delete  c: copy  esc: back"))
	return m.st.panel.Render(s.String())
}

func (m Model) saveKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = modeRun
	case tea.KeyEnter:
		p, err := m.sess.Save(m.opts.Store, m.nameBuf)
		if errors.Is(err, preset.ErrDuplicate) {
			m.setStatus(nil, "already saved as %s", p.Name)
		} else {
			m.setStatus(err, "saved %s", p.Name)
		}
		m.mode = modeRun
	case tea.KeyBackspace:
		if r := []rune(m.nameBuf); len(r) > 0 {
			m.nameBuf = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		m.nameBuf += " "
	case tea.KeyRunes:
		m.nameBuf += string(msg.Runes)
	}
	return m, nil
}

func (m Model) saveView() string {
	body := m.st.header.Render("save preset") + "\n\n" +
		m.st.label.Render("pattern") + m.st.value.Render(m.sess.Descriptor().Name) + "\n" +
		m.st.label.Render("name") + m.st.selected.Render(m.nameBuf+"▏") + "\n" +
		m.st.help.Render("enter: save  esc: cancel")
	return m.st.panel.Render(body)
}

func (m Model) learnKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "i":
		m.mode = modeRun
	case "1", "2", "3":
		m.level = int(msg.Runes[0] - '1')
	case "right", "l", "tab":
		m.level = (m.level + 1) % len(content.Levels)
	case "left", "h":
		m.level = (m.level + len(content.Levels) - 1) % len(content.Levels)
	}
	return m, nil
}

func (m Model) learnView() string {
	c := m.opts.Content.Load(m.sess.Descriptor().ID)
	var tabs []string
	for i, lv := range content.Levels {
		l := c.Layer(lv)
		if i == m.level {
			tabs = append(tabs, m.st.selected.Render("["+l.Title+"]"))
		} else {
			tabs = append(tabs, m.st.muted.Render(" "+l.Title+" "))
		}
	}
	layer := c.Layer(content.Levels[m.level])
	width := max(40, m.cols*2)
	body := m.st.header.Render(m.sess.Descriptor().Name) + "\n" +
		lipgloss.JoinHorizontal(lipgloss.Top, tabs...) + "\n\n" +
		m.st.value.Width(width).Render(layer.Markdown) + "\n" +
		m.st.help.Render("1 2 3 / ←→: level  esc: back")
	return m.st.panel.Render(body)
}
