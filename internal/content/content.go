// Package content loads the three-layer educational text for each pattern.
//
// Each pattern has a markdown document <pattern-id>.md whose level-2
// headings name the layers: "## Intuitive", "## Conceptual" and
// "## Technical", optionally followed by ": Title". Loading never fails;
// missing documents and layers come back as placeholders.
package content

import (
	"bytes"
	"embed"
	"io/fs"
	"os"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"github.com/san-kum/genlab/internal/logx"
)

// Level is one depth of explanation.
type Level string

const (
	Intuitive  Level = "intuitive"
	Conceptual Level = "conceptual"
	Technical  Level = "technical"
)

// Levels in reading order.
var Levels = []Level{Intuitive, Conceptual, Technical}

// NotFound is the body of a layer that could not be loaded.
const NotFound = "Content not found"

type Layer struct {
	Level    Level  `json:"level"`
	Title    string `json:"title"`
	Markdown string `json:"markdown"`
	HTML     string `json:"html"`
	Missing  bool   `json:"missing,omitempty"`
}

type Content struct {
	PatternID string  `json:"patternId"`
	Layers    []Layer `json:"layers"`
}

// Layer returns the layer at lv.
func (c Content) Layer(lv Level) Layer {
	for _, l := range c.Layers {
		if l.Level == lv {
			return l
		}
	}
	return placeholder(lv)
}

//go:embed docs/*.md
var docs embed.FS

var md = goldmark.New(goldmark.WithExtensions(extension.GFM))

// Library reads pattern documents from a file system.
type Library struct {
	fsys fs.FS
}

func New(fsys fs.FS) *Library {
	return &Library{fsys: fsys}
}

// Default serves the documents compiled into the binary.
func Default() *Library {
	sub, err := fs.Sub(docs, "docs")
	if err != nil {
		panic(err)
	}
	return New(sub)
}

// FromDir reads documents from dir, falling back to the built-in set when
// dir is empty.
func FromDir(dir string) *Library {
	if dir == "" {
		return Default()
	}
	return New(os.DirFS(dir))
}

// Load returns the content for a pattern. An unreadable document yields
// placeholders for every layer.
func (l *Library) Load(patternID string) Content {
	src, err := fs.ReadFile(l.fsys, patternID+".md")
	if err != nil {
		logx.Logger().Debug("content missing", "pattern", patternID, "err", err)
		c := Content{PatternID: patternID}
		for _, lv := range Levels {
			c.Layers = append(c.Layers, placeholder(lv))
		}
		return c
	}
	return Parse(patternID, src)
}

func placeholder(lv Level) Layer {
	return Layer{Level: lv, Title: titleCase(string(lv)), Markdown: NotFound, HTML: "<p>" + NotFound + "</p>\n", Missing: true}
}

// Parse splits a document at its level-2 headings and renders each known
// layer.
func Parse(patternID string, src []byte) Content {
	doc := md.Parser().Parse(text.NewReader(src))

	type section struct {
		level      Level
		title      string
		start, end int
	}
	var sections []section
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		h, ok := n.(*ast.Heading)
		if !ok || h.Level != 2 || h.Lines().Len() == 0 {
			continue
		}
		seg := h.Lines().At(0)
		lineStart := bytes.LastIndexByte(src[:seg.Start], '\n') + 1
		bodyStart := len(src)
		if i := bytes.IndexByte(src[seg.Stop:], '\n'); i >= 0 {
			bodyStart = seg.Stop + i + 1
		}
		if len(sections) > 0 {
			sections[len(sections)-1].end = lineStart
		}
		lv, title := parseHeading(string(seg.Value(src)))
		sections = append(sections, section{level: lv, title: title, start: bodyStart, end: len(src)})
	}

	found := map[Level]Layer{}
	for _, s := range sections {
		if s.level == "" {
			continue
		}
		if _, dup := found[s.level]; dup {
			continue
		}
		body := strings.TrimSpace(string(src[s.start:s.end]))
		var html bytes.Buffer
		if err := md.Convert([]byte(body), &html); err != nil {
			logx.Logger().Warn("content render failed", "pattern", patternID, "layer", s.level, "err", err)
			continue
		}
		found[s.level] = Layer{Level: s.level, Title: s.title, Markdown: body, HTML: html.String()}
	}

	c := Content{PatternID: patternID}
	for _, lv := range Levels {
		l, ok := found[lv]
		if !ok {
			l = placeholder(lv)
		}
		c.Layers = append(c.Layers, l)
	}
	return c
}

// parseHeading reads "Level" or "Level: Title". Unknown levels return "".
func parseHeading(h string) (Level, string) {
	name, title, _ := strings.Cut(h, ":")
	lv := Level(strings.ToLower(strings.TrimSpace(name)))
	switch lv {
	case Intuitive, Conceptual, Technical:
	default:
		return "", ""
	}
	title = strings.TrimSpace(title)
	if title == "" {
		title = titleCase(string(lv))
	}
	return lv, title
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
