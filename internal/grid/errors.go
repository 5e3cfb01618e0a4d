package grid

import "fmt"

// MalformedInputError reports input that cannot be turned into a grid.
// Col is -1 when the problem concerns a whole row.
type MalformedInputError struct {
	Row    int
	Col    int
	Reason string
}

func (e *MalformedInputError) Error() string {
	if e.Col < 0 {
		return fmt.Sprintf("malformed input at row %d: %s", e.Row, e.Reason)
	}
	return fmt.Sprintf("malformed input at row %d, col %d: %s", e.Row, e.Col, e.Reason)
}
