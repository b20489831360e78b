package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Series is a sampled trajectory or scalar time series with the settings
// that produced it.
type Series struct {
	Pattern    string             `json:"pattern"`
	System     string             `json:"system,omitempty"`
	Integrator string             `json:"integrator,omitempty"`
	Dt         float64            `json:"dt"`
	Steps      int                `json:"steps"`
	Times      []float64          `json:"times"`
	States     [][]float64        `json:"states"`
	Metrics    map[string]float64 `json:"metrics,omitempty"`
}

// Add appends one sample.
func (s *Series) Add(t float64, state []float64) {
	s.Times = append(s.Times, t)
	s.States = append(s.States, append([]float64(nil), state...))
	s.Steps = len(s.Times)
}

func (s *Series) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// WriteCSV writes a time column followed by x0..xn.
func (s *Series) WriteCSV(w io.Writer) error {
	if len(s.States) == 0 {
		return fmt.Errorf("no data to export")
	}
	cw := csv.NewWriter(w)

	header := []string{"time"}
	for i := range s.States[0] {
		header = append(header, fmt.Sprintf("x%d", i))
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for i := range s.States {
		row := []string{strconv.FormatFloat(s.Times[i], 'f', 6, 64)}
		for _, v := range s.States[i] {
			row = append(row, strconv.FormatFloat(v, 'f', 6, 64))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Save writes JSON or CSV depending on the extension of path.
func (s *Series) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	write := s.WriteJSON
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		write = s.WriteCSV
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
