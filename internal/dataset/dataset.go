// Package dataset loads input arrays from flags and files.
package dataset

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// MaxLength caps inputs so they stay readable in a terminal.
const MaxLength = 64

// ParseInts reads integers separated by commas and/or whitespace.
func ParseInts(input string) ([]int, error) {
	fields := strings.FieldsFunc(input, isSeparator)
	if len(fields) == 0 {
		return nil, fmt.Errorf("no values given")
	}
	values := make([]int, 0, len(fields))
	for _, field := range fields {
		v, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q", field)
		}
		values = append(values, v)
	}
	if len(values) > MaxLength {
		return nil, fmt.Errorf("too many values: %d (max %d)", len(values), MaxLength)
	}
	return values, nil
}

// LoadInts reads integers from a file. Blank lines and lines starting with
// '#' are skipped.
func LoadInts(path string) ([]int, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only input.
			_ = cerr
		}
	}()

	var values []int
	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parsed, err := ParseInts(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		values = append(values, parsed...)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("input file is empty")
	}
	if len(values) > MaxLength {
		return nil, fmt.Errorf("too many values: %d (max %d)", len(values), MaxLength)
	}
	return values, nil
}

func isSeparator(r rune) bool {
	return r == ',' || r == ';' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
