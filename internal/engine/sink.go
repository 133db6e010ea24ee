package engine

import "strings"

// PreviewBreak terminates every preview entry in place of a newline.
const PreviewBreak = "<br/>\n"

// maxGrowItems bounds the up-front buffer reservation for very large runs.
const maxGrowItems = 1 << 16

// sinks accumulates the output of one generation run.
//
// raw receives every item followed by a newline. preview receives only the
// first previewLimit items, each followed by PreviewBreak.
type sinks struct {
	raw          strings.Builder
	preview      strings.Builder
	previewLimit int
	previewItems int
}

func newSinks(previewLimit int, n uint, maxItemLen int) *sinks {
	s := &sinks{previewLimit: previewLimit}

	items := maxGrowItems
	if n < uint(items) {
		items = int(n)
	}
	s.raw.Grow(items * (maxItemLen + 1))

	if items > previewLimit {
		items = previewLimit
	}
	s.preview.Grow(items * (maxItemLen + len(PreviewBreak)))
	return s
}

// write appends one item to raw and, while under the cap, to preview.
func (s *sinks) write(item []byte) {
	s.raw.Write(item)
	s.raw.WriteByte('\n')

	if s.previewItems < s.previewLimit {
		s.preview.Write(item)
		s.preview.WriteString(PreviewBreak)
		s.previewItems++
	}
}
