package lsp

import (
	"bytes"
	"unicode/utf16"
	"unicode/utf8"
)

// lineAt returns the content of the 1-based line, without its newline.
func lineAt(text []byte, line int) []byte {
	for i := 1; i < line; i++ {
		nl := bytes.IndexByte(text, '\n')
		if nl < 0 {
			return nil
		}
		text = text[nl+1:]
	}
	if nl := bytes.IndexByte(text, '\n'); nl >= 0 {
		text = text[:nl]
	}
	return text
}

// byteColumn converts an LSP character offset, counted in UTF-16 code units,
// into the 1-based byte column used by token positions.
func byteColumn(text []byte, line, character int) int {
	content := lineAt(text, line)
	units := 0
	for i := 0; i < len(content); {
		if units >= character {
			return i + 1
		}
		r, size := utf8.DecodeRune(content[i:])
		units += utf16.RuneLen(r)
		i += size
	}
	return len(content) + 1 + (character - units)
}

// utf16Column converts a 1-based byte column into an LSP character offset.
func utf16Column(text []byte, line, column int) int {
	content := lineAt(text, line)
	end := column - 1
	if end > len(content) {
		end = len(content)
	}
	units := 0
	for i := 0; i < end; {
		r, size := utf8.DecodeRune(content[i:])
		units += utf16.RuneLen(r)
		i += size
	}
	return units + (column - 1 - end)
}
