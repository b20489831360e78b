package preset_test

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/genlab/internal/catalog"
	"github.com/san-kum/genlab/internal/pattern"
	"github.com/san-kum/genlab/internal/preset"
)

var fixedNow = time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC)

func openStore(path string) *preset.Store {
	s, err := preset.Open(path, catalog.New())
	Expect(err).NotTo(HaveOccurred())
	s.SetClock(func() time.Time { return fixedNow })
	return s
}

var _ = Describe("Store", func() {
	var (
		path  string
		store *preset.Store
	)

	BeforeEach(func() {
		path = filepath.Join(GinkgoT().TempDir(), "presets.json")
		store = openStore(path)
	})

	It("starts empty when the file is missing", func() {
		Expect(store.List()).To(BeEmpty())
	})

	It("saves complete, normalised parameters and persists them", func() {
		p, err := store.Save("Chunky", "pixelated-noise", pattern.Values{"pixelSize": 8, "colorIntensity": 0.7, "enabled": true})
		Expect(err).NotTo(HaveOccurred())
		Expect(p.ID).NotTo(BeEmpty())
		Expect(p.CreatedAt).To(Equal(fixedNow))
		Expect(p.Parameters).To(HaveKeyWithValue("pixelSize", 8.0))
		Expect(p.Parameters).To(HaveKey("tint"))
		Expect(p.ContentHash).To(Equal(preset.ContentHash("Chunky", "pixelated-noise", p.Parameters)))

		reopened := openStore(path)
		Expect(reopened.List()).To(HaveLen(1))
		got, err := reopened.Get(p.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(got.Parameters).To(Equal(p.Parameters))
	})

	It("rejects empty names, unknown patterns and unknown controls", func() {
		_, err := store.Save("  ", "quadtree", nil)
		Expect(err).To(MatchError(preset.ErrEmptyName))

		_, err = store.Save("x", "mandelbrot", nil)
		Expect(errors.Is(err, pattern.ErrUnknownPattern)).To(BeTrue())

		_, err = store.Save("x", "quadtree", pattern.Values{"zoom": 2})
		Expect(errors.Is(err, pattern.ErrUnknownControl)).To(BeTrue())
		Expect(store.List()).To(BeEmpty())
	})

	It("refuses to save identical content twice", func() {
		first, err := store.Save("Spiral", "quadtree", nil)
		Expect(err).NotTo(HaveOccurred())
		again, err := store.Save("Spiral", "quadtree", nil)
		Expect(err).To(MatchError(preset.ErrDuplicate))
		Expect(again.ID).To(Equal(first.ID))
		Expect(store.List()).To(HaveLen(1))
	})

	It("deletes and clears", func() {
		a, _ := store.Save("A", "quadtree", nil)
		_, _ = store.Save("B", "quadtree", pattern.Values{"maxDepth": 3})

		Expect(store.Delete(a.ID)).To(Succeed())
		Expect(store.List()).To(HaveLen(1))
		Expect(errors.Is(store.Delete(a.ID), preset.ErrNotFound)).To(BeTrue())

		Expect(store.Clear()).To(Succeed())
		Expect(openStore(path).List()).To(BeEmpty())
	})

	It("lists presets per pattern", func() {
		_, _ = store.Save("A", "quadtree", nil)
		_, _ = store.Save("B", "attractor", nil)
		Expect(store.ForPattern("attractor")).To(HaveLen(1))
		Expect(store.ForPattern("curl-flow")).To(BeEmpty())
	})

	It("returns copies that callers cannot mutate", func() {
		p, _ := store.Save("A", "quadtree", nil)
		p.Parameters["maxDepth"] = 1.0
		got, _ := store.Get(p.ID)
		Expect(got.Parameters["maxDepth"]).To(Equal(6.0))
	})

	It("fails to open a corrupt file", func() {
		Expect(os.WriteFile(path, []byte("{nope"), 0644)).To(Succeed())
		_, err := preset.Open(path, catalog.New())
		Expect(errors.Is(err, preset.ErrMalformed)).To(BeTrue())
	})
})

var _ = Describe("Import and export", func() {
	var (
		dir   string
		store *preset.Store
	)

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
		store = openStore(filepath.Join(dir, "presets.json"))
	})

	It("round-trips a preset through export and import", func() {
		p, err := store.Save("Chunky", "pixelated-noise", pattern.Values{
			"pixelSize":      8.0,
			"colorIntensity": 0.7,
			"enabled":        false,
			"palette":        "ocean",
			"tint":           "#ff8800",
		})
		Expect(err).NotTo(HaveOccurred())

		name, data, err := store.ExportOne(p.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(name).To(Equal("preset_chunky.json"))

		var f preset.File
		Expect(json.Unmarshal(data, &f)).To(Succeed())
		Expect(f.Version).To(Equal("1.0"))
		Expect(f.Presets).To(HaveLen(1))

		other := openStore(filepath.Join(dir, "other.json"))
		res, err := other.Import(data)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Imported).To(HaveLen(1))

		got := res.Imported[0]
		Expect(got.Name).To(Equal("Chunky"))
		Expect(got.GeneratorType).To(Equal("pixelated-noise"))
		Expect(got.Parameters).To(Equal(p.Parameters))
		Expect(got.Parameters).To(HaveKeyWithValue("palette", "ocean"))
		Expect(got.Parameters).To(HaveKeyWithValue("tint", "#ff8800"))
		Expect(got.Parameters).To(HaveKeyWithValue("enabled", false))
		Expect(got.ContentHash).To(Equal(p.ContentHash))
	})

	It("skips presets whose content hash already exists", func() {
		_, _ = store.Save("A", "quadtree", nil)
		_, data, err := store.ExportAll()
		Expect(err).NotTo(HaveOccurred())

		res, err := store.Import(data)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Imported).To(BeEmpty())
		Expect(res.Skipped).To(HaveLen(1))
		Expect(store.List()).To(HaveLen(1))
	})

	It("renames on collision and does not re-import the renamed copy", func() {
		_, _ = store.Save("Mine", "quadtree", pattern.Values{"maxDepth": 2})
		data, err := preset.Encode([]preset.Preset{{
			Name: "Mine", GeneratorType: "quadtree", Parameters: pattern.Values{"maxDepth": 9.0},
		}}, fixedNow)
		Expect(err).NotTo(HaveOccurred())

		res, err := store.Import(data)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Imported).To(HaveLen(1))
		Expect(res.Imported[0].Name).To(Equal("Mine (2)"))
		Expect(res.Renamed).To(HaveKeyWithValue("Mine (2)", "Mine"))

		res, err = store.Import(data)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Imported).To(BeEmpty())
		Expect(res.Skipped).To(HaveLen(1))
		Expect(store.List()).To(HaveLen(2))
	})

	It("fills missing parameters with defaults", func() {
		data := []byte(`{"version":"1.0","presets":[{"name":"Bare","generatorType":"attractor","parameters":{"a":0.5}}]}`)
		res, err := store.Import(data)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Imported[0].Parameters).To(HaveKeyWithValue("a", 0.5))
		Expect(res.Imported[0].Parameters).To(HaveKeyWithValue("b", 0.175))
		Expect(res.Imported[0].CreatedAt).To(Equal(fixedNow))
	})

	DescribeTable("aborts without writing on invalid input",
		func(body, field string) {
			_, _ = store.Save("Keep", "quadtree", nil)
			_, err := store.Import([]byte(body))
			var ie *preset.ImportError
			Expect(errors.As(err, &ie)).To(BeTrue())
			Expect(ie.Field).To(Equal(field))
			Expect(store.List()).To(HaveLen(1))
		},
		Entry("malformed json", `{"version":`, "json"),
		Entry("wrong version", `{"version":"2.0","presets":[]}`, "version"),
		Entry("missing presets", `{"version":"1.0"}`, "presets"),
		Entry("unknown generator",
			`{"version":"1.0","presets":[{"name":"a","generatorType":"quadtree","parameters":{}},{"name":"b","generatorType":"julia","parameters":{}}]}`,
			"generatorType"),
		Entry("unknown control",
			`{"version":"1.0","presets":[{"name":"a","generatorType":"quadtree","parameters":{"zoom":1}}]}`,
			"parameters.zoom"),
		Entry("empty name",
			`{"version":"1.0","presets":[{"name":" ","generatorType":"quadtree","parameters":{}}]}`,
			"name"),
	)

	It("names bulk exports by date", func() {
		name, _, err := store.ExportAll()
		Expect(err).NotTo(HaveOccurred())
		Expect(name).To(Equal("presets_20240309.json"))
	})
})
