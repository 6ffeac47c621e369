package floorplan

import "github.com/archiplan/floorplan/pkg/geomkernel"

// Point is a JSON-friendly 2D coordinate in meters.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Segment is an ordered pair of points, optionally carrying a wall
// thickness.
type Segment struct {
	A         Point   `json:"a" yaml:"a"`
	B         Point   `json:"b" yaml:"b"`
	Thickness float64 `json:"thickness,omitempty" yaml:"thickness,omitempty"`
}

// Polygon is an ordered, implicitly-closed ring of points.
type Polygon []Point

// ToKernel converts p to the geometry kernel's internal representation.
func (p Polygon) ToKernel() geomkernel.Polygon {
	out := make(geomkernel.Polygon, len(p))
	for i, v := range p {
		out[i] = geomkernel.Point{X: v.X, Y: v.Y}
	}
	return out
}

// PolygonFromKernel converts a kernel polygon back to the JSON-friendly
// representation.
func PolygonFromKernel(p geomkernel.Polygon) Polygon {
	out := make(Polygon, len(p))
	for i, v := range p {
		out[i] = Point{X: v.X, Y: v.Y}
	}
	return out
}

// Rect is an axis-aligned rectangle: either the optional input bounds, or
// derived from an Ilot's center/width/height.
type Rect struct {
	MinX float64 `json:"min_x" yaml:"min_x"`
	MinY float64 `json:"min_y" yaml:"min_y"`
	MaxX float64 `json:"max_x" yaml:"max_x"`
	MaxY float64 `json:"max_y" yaml:"max_y"`
}

// Door is an entrance point with an optional orientation in degrees.
type Door struct {
	Position    Point   `json:"position" yaml:"position"`
	Orientation float64 `json:"orientation,omitempty" yaml:"orientation,omitempty"`
}

// Window is a softer-constraint opening point.
type Window struct {
	Position Point `json:"position" yaml:"position"`
}

// FloorPlan is the pipeline's sole input.
type FloorPlan struct {
	Boundary  Polygon   `json:"boundary,omitempty" yaml:"boundary,omitempty"`
	Bounds    *Rect     `json:"bounds,omitempty" yaml:"bounds,omitempty"`
	Walls     []Segment `json:"walls,omitempty" yaml:"walls,omitempty"`
	Doors     []Door    `json:"doors,omitempty" yaml:"doors,omitempty"`
	Windows   []Window  `json:"windows,omitempty" yaml:"windows,omitempty"`
	RedZones  []Polygon `json:"red_zones,omitempty" yaml:"red_zones,omitempty"`
	BlueZones []Polygon `json:"blue_zones,omitempty" yaml:"blue_zones,omitempty"`
	Entrances []Point   `json:"entrances,omitempty" yaml:"entrances,omitempty"`
}

// IlotKind enumerates the semantic kinds an Ilot may take.
type IlotKind string

const (
	KindWorkspace     IlotKind = "workspace"
	KindMeeting       IlotKind = "meeting"
	KindSocial        IlotKind = "social"
	KindStorage       IlotKind = "storage"
	KindBreak         IlotKind = "break"
	KindFocus         IlotKind = "focus"
	KindCollaboration IlotKind = "collaboration"
)

// AllKinds lists every IlotKind in a stable order, used for round-robin kind
// assignment during placement.
var AllKinds = []IlotKind{
	KindWorkspace, KindMeeting, KindSocial, KindStorage,
	KindBreak, KindFocus, KindCollaboration,
}

// Ilot is a single placed workstation island.
type Ilot struct {
	ID         string   `json:"id" yaml:"id"`
	Kind       IlotKind `json:"kind" yaml:"kind"`
	Center     Point    `json:"center" yaml:"center"`
	Width      float64  `json:"width" yaml:"width"`
	Height     float64  `json:"height" yaml:"height"`
	Polygon    Polygon  `json:"polygon" yaml:"polygon"`
	Capacity   int      `json:"capacity" yaml:"capacity"`
	Equipment  []string `json:"equipment,omitempty" yaml:"equipment,omitempty"`
	Score      float64  `json:"score" yaml:"score"`
	Valid      bool     `json:"valid" yaml:"valid"`
}

// Rectangle returns the axis-aligned bbox of the ilot's footprint.
func (i Ilot) Rectangle() Rect {
	hw, hh := i.Width/2, i.Height/2
	return Rect{
		MinX: i.Center.X - hw, MinY: i.Center.Y - hh,
		MaxX: i.Center.X + hw, MaxY: i.Center.Y + hh,
	}
}

// MakeIlotPolygon derives the axis-aligned rectangle polygon for a center,
// width and height, consistent with the Ilot.Polygon invariant.
func MakeIlotPolygon(center Point, width, height float64) Polygon {
	hw, hh := width/2, height/2
	return Polygon{
		{X: center.X - hw, Y: center.Y - hh},
		{X: center.X + hw, Y: center.Y - hh},
		{X: center.X + hw, Y: center.Y + hh},
		{X: center.X - hw, Y: center.Y + hh},
	}
}

// Corridor is a uniform-width polygonal strip connecting two key points
//.
type Corridor struct {
	ID         string   `json:"id" yaml:"id"`
	Centerline []Point  `json:"centerline" yaml:"centerline"`
	Width      float64  `json:"width" yaml:"width"`
	Polygon    Polygon  `json:"polygon" yaml:"polygon"`
	Length     float64  `json:"length" yaml:"length"`
	Area       float64  `json:"area" yaml:"area"`
	Endpoints  [2]string `json:"endpoints" yaml:"endpoints"`
}

// RunStats collects per-stage statistics, timings and warnings.
type RunStats struct {
	KernelMode      string   `json:"kernel_mode" yaml:"kernel_mode"`
	KernelScale     float64  `json:"kernel_scale" yaml:"kernel_scale"`
	KernelErrors    int      `json:"kernel_errors" yaml:"kernel_errors"`
	CandidatesTried int      `json:"candidates_tried" yaml:"candidates_tried"`
	IlotsAccepted   int      `json:"ilots_accepted" yaml:"ilots_accepted"`
	InvalidIlots    int      `json:"invalid_ilots" yaml:"invalid_ilots"`
	PathsFound      int      `json:"paths_found" yaml:"paths_found"`
	PathsDropped    int      `json:"paths_dropped" yaml:"paths_dropped"`
	Coverage        float64  `json:"coverage" yaml:"coverage"`
	ConstraintMs    int64    `json:"constraint_ms" yaml:"constraint_ms"`
	PlacementMs     int64    `json:"placement_ms" yaml:"placement_ms"`
	CorridorMs      int64    `json:"corridor_ms" yaml:"corridor_ms"`
	Cancelled       bool     `json:"cancelled" yaml:"cancelled"`
	TimedOut        bool     `json:"timed_out" yaml:"timed_out"`
	Warnings        []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Layout is the pipeline's sole output. RunID tags the invocation for log
// correlation and is itself derived from the same seed/config-hash inputs
// as every stage RNG, so two runs of ProduceLayout with identical inputs
// serialise to a byte-identical Layout (wall-clock fields in Stats aside).
type Layout struct {
	RunID     string     `json:"run_id" yaml:"run_id"`
	Ilots     []Ilot     `json:"ilots" yaml:"ilots"`
	Corridors []Corridor `json:"corridors" yaml:"corridors"`
	Stats     RunStats   `json:"stats" yaml:"stats"`
}
