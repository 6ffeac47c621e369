// Package export serializes a floorplan.Layout to JSON (the contract to a
// downstream visualisation layer) and to SVG for human inspection.
package export
