// Package idiom loads the idiom file: one token per line that the abstraction
// engine must leave verbatim.
package idiom

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dhamidi/src2abs/abstraction"
)

// Load reads one idiom per line. Surrounding whitespace is trimmed and blank
// lines are skipped.
func Load(r io.Reader) (abstraction.Set, error) {
	set := abstraction.NewSet()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		set.Add(line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read idioms: %w", err)
	}
	return set, nil
}

func LoadFile(path string) (abstraction.Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open idioms file: %w", err)
	}
	defer f.Close()

	set, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return set, nil
}
