package cpu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/afero"
)

// Program is the ordered sequence of raw program lines
type Program []string

// Returns the text of the line at the given 0-based index, without surrounding whitespace
func (p Program) Line(index int) string {
	return strings.TrimSpace(p[index])
}

// Splits program text into lines of any length. A trailing newline does not add an empty line.
func ParseProgram(r io.Reader) (Program, error) {
	reader := bufio.NewReader(r)
	program := Program{}

	for {
		line, err := reader.ReadString('\n')

		if len(line) > 0 {
			program = append(program, strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r"))
		}

		if errors.Is(err, io.EOF) {
			return program, nil
		} else if err != nil {
			return nil, err
		}
	}
}

// Reads a program file
func ReadProgram(fs afero.Fs, path string) (Program, error) {
	file, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open program: %w", err)
	}
	defer file.Close()

	program, err := ParseProgram(file)
	if err != nil {
		return nil, fmt.Errorf("could not read program '%s': %w", path, err)
	}

	return program, nil
}
