package preset

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"unicode"

	"github.com/san-kum/genlab/internal/pattern"
)

type hashInput struct {
	Name          string         `json:"name"`
	GeneratorType string         `json:"generatorType"`
	Parameters    pattern.Values `json:"parameters"`
}

// ContentHash is the hex SHA-256 of the canonical JSON of name, generator
// and parameters. encoding/json sorts map keys, so equal records hash equally
// regardless of insertion order.
func ContentHash(name, generatorType string, params pattern.Values) string {
	if params == nil {
		params = pattern.Values{}
	}
	data, err := json.Marshal(hashInput{Name: name, GeneratorType: generatorType, Parameters: params})
	if err != nil {
		// values are scalars produced by Control.Coerce
		panic("preset: hash input not encodable: " + err.Error())
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// paramsHash identifies a generator and parameter set independent of name.
func paramsHash(generatorType string, params pattern.Values) string {
	return ContentHash("", generatorType, params)
}

// Sanitize lowercases name and replaces every character that is not a
// letter a–z or digit with an underscore.
func Sanitize(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}

// ExportFilename is the suggested file name for a single exported preset.
func ExportFilename(name string) string {
	return "preset_" + Sanitize(name) + ".json"
}

// isRenameOf reports whether candidate is base or base with a " (n)" suffix
// as produced by import collision handling.
func isRenameOf(candidate, base string) bool {
	if candidate == base {
		return true
	}
	rest, ok := strings.CutPrefix(candidate, base+" (")
	if !ok {
		return false
	}
	digits, ok := strings.CutSuffix(rest, ")")
	if !ok || digits == "" {
		return false
	}
	for _, r := range digits {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
