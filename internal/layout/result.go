package layout

import (
	"encoding/hex"
	"encoding/json"
	"slices"

	"golang.org/x/crypto/sha3"
)

// Result is the output of a render: the page count and every draw
// instruction ordered by page, each page's content followed by its footer.
type Result struct {
	Pages        int           `json:"pages"`
	Instructions []Instruction `json:"instructions"`
}

// Fingerprint returns the hex SHA3-256 digest of the result's JSON
// encoding. Two renders of the same report with the same configuration
// have equal fingerprints.
func (r *Result) Fingerprint() (string, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return "", err
	}
	sum := sha3.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// OnPage returns the instructions of the 0-based page i.
func (r *Result) OnPage(i int) []Instruction {
	var out []Instruction
	for _, in := range r.Instructions {
		if in.Page == i {
			out = append(out, in)
		}
	}
	return out
}

// Sections returns the distinct section names in order of first appearance.
func (r *Result) Sections() []string {
	var out []string
	for _, in := range r.Instructions {
		if !slices.Contains(out, in.Section) {
			out = append(out, in.Section)
		}
	}
	return out
}

// Blocks returns the distinct block numbers of a section in emission order.
func (r *Result) Blocks(section string) []int {
	var out []int
	for _, in := range r.Instructions {
		if in.Section == section && !slices.Contains(out, in.Block) {
			out = append(out, in.Block)
		}
	}
	return out
}
