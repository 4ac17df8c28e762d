package model

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// LineContext is an input line together with up to two lines on each side.
type LineContext struct {
	Before2    string
	Before1    string
	Target     string
	After1     string
	After2     string
	LineNumber int
	HasBefore2 bool
	HasBefore1 bool
	HasAfter1  bool
	HasAfter2  bool
	ErrorMsg   string // set when the line could not be shown
}

// GetLineContext returns the raw CSV row behind a parse error and its
// neighbours. Reading stops once the window is complete.
func GetLineContext(filePath string, lineNumber int) LineContext {
	result := LineContext{LineNumber: lineNumber}
	if lineNumber < 1 {
		result.ErrorMsg = fmt.Sprintf("Line %d out of range", lineNumber)
		return result
	}

	file, err := os.Open(filePath)
	if err != nil {
		result.ErrorMsg = fmt.Sprintf("Could not read file: %v", err)
		return result
	}
	defer file.Close()

	window := make(map[int]string, 5)
	total := 0
	lr := NewLineReader(file, MaxLineLength)
	for total < lineNumber+2 {
		text, err := lr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if errors.Is(err, ErrLineTooLong) {
			text = fmt.Sprintf("[line longer than %d bytes]", MaxLineLength)
		} else if err != nil {
			result.ErrorMsg = fmt.Sprintf("Error reading file: %v", err)
			return result
		}
		total++
		if total >= lineNumber-2 {
			window[total] = text
		}
	}

	if lineNumber > total {
		result.ErrorMsg = fmt.Sprintf("Line %d out of range (file has %d lines)", lineNumber, total)
		return result
	}

	result.Target = window[lineNumber]
	result.Before2, result.HasBefore2 = window[lineNumber-2]
	result.Before1, result.HasBefore1 = window[lineNumber-1]
	result.After1, result.HasAfter1 = window[lineNumber+1]
	result.After2, result.HasAfter2 = window[lineNumber+2]
	return result
}
