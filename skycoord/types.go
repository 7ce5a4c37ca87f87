// Copyright 2026 Fabian Jankowski
// SPDX-License-Identifier: MIT

// Package skycoord holds the planar on-sky coordinate type shared by the
// beam packing pipeline and its persistence layer.
package skycoord

import (
	"database/sql/driver"
	"fmt"
	"math"
)

// Point represents an on-sky position in the tangent-plane projection, with
// x the horizontal and y the vertical coordinate in degrees.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// String returns a string representation of the Point.
func (p Point) String() string {
	return fmt.Sprintf("POINT(%f %f)", p.X, p.Y)
}

// Value implements the driver.Valuer interface for database serialization.
func (p Point) Value() (driver.Value, error) {
	return p.String(), nil
}

// Scan implements the sql.Scanner interface for database deserialization.
func (p *Point) Scan(value interface{}) error {
	if value == nil {
		p.X, p.Y = 0, 0

		return nil
	}

	switch v := value.(type) {
	case []byte:
		// The format from DuckDB is "POINT (x y)"
		_, err := fmt.Sscanf(string(v), "POINT (%f %f)", &p.X, &p.Y)

		return err
	case string:
		_, err := fmt.Sscanf(v, "POINT (%f %f)", &p.X, &p.Y)

		return err
	case map[string]interface{}:
		x, okX := v["x"].(float64)
		y, okY := v["y"].(float64)

		if !okX || !okY {
			return fmt.Errorf("skycoord: invalid map for point: expected 'x' and 'y' float64 fields, got %+v", v)
		}

		p.X = x
		p.Y = y

		return nil
	default:
		return fmt.Errorf("skycoord: unsupported type for Point scan: %T", value)
	}
}

// Distance calculates the Euclidean distance between two points in degrees.
// The beam pattern covers a fraction of a degree, so the flat-sky
// approximation holds.
func (p Point) Distance(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y

	return math.Sqrt(dx*dx + dy*dy)
}
