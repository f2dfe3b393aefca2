package format

import (
	"bytes"
	"sort"
)

// Edit replaces Content[Start:End] with Data.
type Edit struct {
	Start int
	End   int
	Data  []byte
}

// ApplyEdits returns a copy of content with the edits spliced in. Edits are
// applied right-to-left so earlier offsets stay valid; out-of-range edits
// and no-op edits are skipped.
func ApplyEdits(content []byte, edits []Edit) []byte {
	out := append([]byte(nil), content...)
	if len(edits) == 0 {
		return out
	}
	sorted := append([]Edit(nil), edits...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start > sorted[j].Start
	})
	for _, e := range sorted {
		if e.Start < 0 || e.Start > e.End || e.End > len(out) {
			continue
		}
		if bytes.Equal(out[e.Start:e.End], e.Data) {
			continue
		}
		out = append(out[:e.Start], append(append([]byte(nil), e.Data...), out[e.End:]...)...)
	}
	return out
}
