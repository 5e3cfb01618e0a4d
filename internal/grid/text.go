package grid

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ReadLines splits r into rows of runes, one per line. Carriage returns are
// dropped and trailing blank lines are ignored.
func ReadLines(r io.Reader) ([][]rune, error) {
	var lines [][]rune
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, []rune(strings.TrimRight(scanner.Text(), "\r")))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read grid lines: %w", err)
	}
	for len(lines) > 0 && len(lines[len(lines)-1]) == 0 {
		lines = lines[:len(lines)-1]
	}
	return lines, nil
}

// FromText builds a symbol grid from line-based text. Any symbol is accepted.
func FromText(r io.Reader) (*Grid[rune], error) {
	lines, err := ReadLines(r)
	if err != nil {
		return nil, err
	}
	return New(lines)
}
