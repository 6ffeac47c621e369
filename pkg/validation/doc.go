// Package validation checks a produced floorplan.Layout against the
// invariants a conforming pipeline run must satisfy: ilot containment and
// separation, corridor containment and width bounds, and network
// connectivity.
package validation
