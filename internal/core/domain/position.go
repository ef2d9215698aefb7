package domain

// Position locates a span of text by byte offsets into the analysed content.
// Line and Column are 1-based and refer to Start.
type Position struct {
	Start  int `json:"start"`
	End    int `json:"end"`
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Len returns the number of bytes covered by the span.
func (p Position) Len() int {
	return p.End - p.Start
}

// IsValid reports whether the span fits inside content of the given length.
func (p Position) IsValid(contentLen int) bool {
	return p.Start >= 0 && p.Start <= p.End && p.End <= contentLen
}

// PositionAt builds a Position for text[start:end], computing line and column.
// Offsets are clamped into the bounds of text.
func PositionAt(text string, start, end int) Position {
	if start < 0 {
		start = 0
	}
	if end > len(text) {
		end = len(text)
	}
	if start > end {
		start = end
	}

	line, col := 1, 1
	for i := 0; i < start; i++ {
		if text[i] == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}

	return Position{Start: start, End: end, Line: line, Column: col}
}
