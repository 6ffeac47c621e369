package export

import (
	"bytes"
	"fmt"
	"os"

	svg "github.com/ajstarks/svgo"

	"github.com/archiplan/floorplan/pkg/floorplan"
	"github.com/archiplan/floorplan/pkg/geomkernel"
)

// SVGOptions configures the floor-plan visualisation export.
type SVGOptions struct {
	Width      int
	Height     int
	Margin     int
	ShowLabels bool
	Title      string
}

// DefaultSVGOptions returns sensible default export options.
func DefaultSVGOptions() SVGOptions {
	return SVGOptions{Width: 1200, Height: 900, Margin: 40, ShowLabels: true, Title: "Floor plan layout"}
}

var kindColor = map[floorplan.IlotKind]string{
	floorplan.KindWorkspace:     "#6fa8dc",
	floorplan.KindMeeting:       "#f6b26b",
	floorplan.KindSocial:        "#93c47d",
	floorplan.KindStorage:       "#b4a7d6",
	floorplan.KindBreak:         "#ffd966",
	floorplan.KindFocus:         "#76a5af",
	floorplan.KindCollaboration: "#e06666",
}

type transform struct {
	minX, minY float64
	scale      float64
	marginX    int
	marginY    int
	height     int
}

func (t transform) point(p floorplan.Point) (int, int) {
	x := t.marginX + int((p.X-t.minX)*t.scale)
	y := t.height - t.marginY - int((p.Y-t.minY)*t.scale)
	return x, y
}

func (t transform) polygon(poly floorplan.Polygon) ([]int, []int) {
	xs := make([]int, len(poly))
	ys := make([]int, len(poly))
	for i, p := range poly {
		xs[i], ys[i] = t.point(p)
	}
	return xs, ys
}

func boundaryBBox(plan *floorplan.FloorPlan) (geomkernel.BBox, error) {
	if len(plan.Boundary) >= 3 {
		return geomkernel.BBoxOf(plan.Boundary.ToKernel())
	}
	if plan.Bounds != nil {
		b := plan.Bounds
		return geomkernel.BBox{MinX: b.MinX, MinY: b.MinY, MaxX: b.MaxX, MaxY: b.MaxY}, nil
	}
	return geomkernel.BBox{}, fmt.Errorf("export: floorplan has no boundary or bounds")
}

// ExportSVG renders the input plan and the produced Layout onto a single
// canvas: boundary, walls, red/blue forbidden zones, doors/windows, ilots
// colored by kind, and corridors.
func ExportSVG(plan *floorplan.FloorPlan, layout *floorplan.Layout, opts SVGOptions) ([]byte, error) {
	if opts.Width <= 0 {
		opts.Width = 1200
	}
	if opts.Height <= 0 {
		opts.Height = 900
	}
	if opts.Margin <= 0 {
		opts.Margin = 40
	}

	bb, err := boundaryBBox(plan)
	if err != nil {
		return nil, err
	}

	usableW := float64(opts.Width - 2*opts.Margin)
	usableH := float64(opts.Height - 2*opts.Margin)
	scale := 1.0
	if bb.Width() > 0 && bb.Height() > 0 {
		scaleX := usableW / bb.Width()
		scaleY := usableH / bb.Height()
		if scaleX < scaleY {
			scale = scaleX
		} else {
			scale = scaleY
		}
	}

	t := transform{minX: bb.MinX, minY: bb.MinY, scale: scale, marginX: opts.Margin, marginY: opts.Margin, height: opts.Height}

	buf := new(bytes.Buffer)
	canvas := svg.New(buf)
	canvas.Start(opts.Width, opts.Height)
	canvas.Rect(0, 0, opts.Width, opts.Height, "fill:#ffffff")

	if len(plan.Boundary) >= 3 {
		xs, ys := t.polygon(plan.Boundary)
		canvas.Polygon(xs, ys, "fill:none;stroke:#333333;stroke-width:2")
	}

	for _, w := range plan.Walls {
		ax, ay := t.point(w.A)
		bx, by := t.point(w.B)
		canvas.Line(ax, ay, bx, by, "stroke:#555555;stroke-width:3")
	}

	for _, z := range plan.RedZones {
		xs, ys := t.polygon(z)
		canvas.Polygon(xs, ys, "fill:#f4cccc;stroke:#cc0000;stroke-width:1")
	}
	for _, z := range plan.BlueZones {
		xs, ys := t.polygon(z)
		canvas.Polygon(xs, ys, "fill:#cfe2f3;stroke:#3d85c6;stroke-width:1")
	}

	for _, c := range layout.Corridors {
		xs, ys := t.polygon(c.Polygon)
		canvas.Polygon(xs, ys, "fill:#eeeeee;stroke:#bbbbbb;stroke-width:1")
	}

	for _, ilot := range layout.Ilots {
		color := kindColor[ilot.Kind]
		if color == "" {
			color = "#cccccc"
		}
		style := fmt.Sprintf("fill:%s;stroke:#333333;stroke-width:1", color)
		if !ilot.Valid {
			style = fmt.Sprintf("fill:%s;stroke:#cc0000;stroke-width:2;stroke-dasharray:4,2", color)
		}
		xs, ys := t.polygon(ilot.Polygon)
		canvas.Polygon(xs, ys, style)
		if opts.ShowLabels {
			cx, cy := t.point(ilot.Center)
			canvas.Text(cx, cy, string(ilot.Kind), "font-size:10;text-anchor:middle;fill:#111111")
		}
	}

	for _, d := range plan.Doors {
		x, y := t.point(d.Position)
		canvas.Circle(x, y, 5, "fill:#8b4513")
	}
	for _, w := range plan.Windows {
		x, y := t.point(w.Position)
		canvas.Rect(x-4, y-4, 8, 8, "fill:#87ceeb")
	}

	if opts.Title != "" {
		canvas.Text(opts.Margin, opts.Margin/2, opts.Title, "font-size:16;fill:#111111")
	}

	canvas.End()
	return buf.Bytes(), nil
}

// SaveSVGToFile renders plan and layout to filepath with 0644 permissions.
func SaveSVGToFile(plan *floorplan.FloorPlan, layout *floorplan.Layout, filepath string, opts SVGOptions) error {
	data, err := ExportSVG(plan, layout, opts)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath, data, 0644)
}
