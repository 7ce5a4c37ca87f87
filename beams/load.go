// Copyright 2026 Fabian Jankowski
// SPDX-License-Identifier: MIT

package beams

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/fjankowsk/meertrap-misc/skycoord"
)

// Load reads beam positions from a tab-delimited text file, one "x<TAB>y"
// pair per record, and assigns stable ids in read order starting at 0. The
// returned Set is ungrouped. Either the full file parses or an error is
// returned; malformed rows are never dropped silently.
func Load(filename string) (Set, error) {
	f, err := os.Open(filepath.Clean(filename))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &Error{
				Type:    ErrorTypeNotFound,
				Message: fmt.Sprintf("input file does not exist: %s", filename),
				Err:     err,
			}
		}

		return nil, fmt.Errorf("opening beam position file: %w", err)
	}

	defer f.Close()

	reader := csv.NewReader(bufio.NewReader(f))
	reader.Comma = '\t'

	lines, err := reader.ReadAll()
	if err != nil {
		return nil, &Error{
			Type:    ErrorTypeParse,
			Message: fmt.Sprintf("malformed record in %s", filename),
			Err:     err,
		}
	}

	set := make(Set, 0, len(lines))

	for i, line := range lines {
		if len(line) != 2 {
			return nil, &Error{
				Type:    ErrorTypeParse,
				Message: fmt.Sprintf("%s:%d: expected 2 fields, got %d", filename, i+1, len(line)),
			}
		}

		x, err := strconv.ParseFloat(line[0], 64)
		if err != nil {
			return nil, &Error{
				Type:    ErrorTypeParse,
				Message: fmt.Sprintf("%s:%d: bad x value %q", filename, i+1, line[0]),
				Err:     err,
			}
		}

		y, err := strconv.ParseFloat(line[1], 64)
		if err != nil {
			return nil, &Error{
				Type:    ErrorTypeParse,
				Message: fmt.Sprintf("%s:%d: bad y value %q", filename, i+1, line[1]),
				Err:     err,
			}
		}

		set = append(set, Beam{
			ID:    i,
			Point: skycoord.Point{X: x, Y: y},
			Group: GroupUnassigned,
		})
	}

	return set, nil
}
