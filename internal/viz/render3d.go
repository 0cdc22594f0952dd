package viz

import (
	"math"
)

type Vec3 struct {
	X, Y, Z float64
}

// Vec3 methods.
func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Length() float64      { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }

// Camera rotates 3D points before an orthographic projection onto the
// screen plane.
type Camera struct {
	RotX, RotY, RotZ float64
	Zoom             float64
}

// NewCamera returns a camera looking down the diagonal so that all three
// axes are visible.
func NewCamera() *Camera {
	return &Camera{RotX: -math.Pi / 6, RotY: math.Pi / 4, Zoom: 1.0}
}

func (c *Camera) RotateX(a float64) { c.RotX += a }
func (c *Camera) RotateY(a float64) { c.RotY += a }
func (c *Camera) RotateZ(a float64) { c.RotZ += a }
func (c *Camera) ZoomIn()           { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut()          { c.Zoom = math.Max(0.1, c.Zoom/1.2) }

// RotatePoint rotates a point around the camera's axes.
func (c *Camera) RotatePoint(p Vec3) Vec3 {
	cx, sx := math.Cos(c.RotX), math.Sin(c.RotX)
	p.Y, p.Z = p.Y*cx-p.Z*sx, p.Y*sx+p.Z*cx
	cy, sy := math.Cos(c.RotY), math.Sin(c.RotY)
	p.X, p.Z = p.X*cy+p.Z*sy, -p.X*sy+p.Z*cy
	cz, sz := math.Cos(c.RotZ), math.Sin(c.RotZ)
	p.X, p.Y = p.X*cz-p.Y*sz, p.X*sz+p.Y*cz
	return p
}

// Project returns the screen-plane coordinates of p.
func (c *Camera) Project(p Vec3) (x, y float64) {
	r := c.RotatePoint(p).Scale(c.Zoom)
	return r.X, r.Y
}

// ProjectPath centers pts on their centroid and projects every point.
func (c *Camera) ProjectPath(pts []Vec3) (xs, ys []float64) {
	if len(pts) == 0 {
		return nil, nil
	}
	var centre Vec3
	for _, p := range pts {
		centre = centre.Add(p)
	}
	centre = centre.Scale(1 / float64(len(pts)))

	xs = make([]float64, len(pts))
	ys = make([]float64, len(pts))
	for i, p := range pts {
		xs[i], ys[i] = c.Project(p.Sub(centre))
	}
	return xs, ys
}

// DrawPath3D projects pts and draws them on the canvas. The view box is
// square and shrinks as the camera zooms in.
func DrawPath3D(cv *Canvas, pts []Vec3, cam *Camera) [][2]int {
	if cv == nil || cam == nil || len(pts) == 0 {
		return nil
	}
	xs, ys := cam.ProjectPath(pts)
	lim := 0.0
	for i := range xs {
		lim = math.Max(lim, math.Max(math.Abs(xs[i]), math.Abs(ys[i])))
	}
	if lim == 0 {
		lim = 1
	}
	lim /= cam.Zoom
	// Two corner points fix the view box; they are not drawn.
	xs = append(xs, -lim, lim)
	ys = append(ys, -lim, lim)
	px := cv.pathPixels(xs, ys)[:len(pts)]
	cv.drawPixels(px)
	return px
}
