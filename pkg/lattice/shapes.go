package lattice

import "math"

// Shape reports whether a site lies inside a region.
type Shape func(s Site) bool

// Rectangle includes x0 <= x <= x1 and y0 <= y <= y1.
func Rectangle(x0, y0, x1, y1 int) Shape {
	return func(s Site) bool {
		return s.X >= x0 && s.X <= x1 && s.Y >= y0 && s.Y <= y1
	}
}

func Disk(cx, cy, radius float64) Shape {
	return func(s Site) bool {
		return math.Hypot(float64(s.X)-cx, float64(s.Y)-cy) <= radius
	}
}

// Band is a lead cross-section: y0 <= y <= y1 for horizontal leads.
func Band(y0, y1 int) Shape {
	return func(s Site) bool {
		return s.Y >= y0 && s.Y <= y1
	}
}

// Column is a lead cross-section for vertical leads.
func Column(x0, x1 int) Shape {
	return func(s Site) bool {
		return s.X >= x0 && s.X <= x1
	}
}

func Union(shapes ...Shape) Shape {
	return func(s Site) bool {
		for _, sh := range shapes {
			if sh(s) {
				return true
			}
		}
		return false
	}
}

// Fill flood-fills from start over nearest neighbors, collecting sites for
// which inside holds. When sym is not nil the fill runs in its fundamental
// domain.
func (l *Lattice) Fill(inside Shape, start Site, sym *Symmetry) ([]Site, error) {
	norm := func(s Site) Site {
		if sym != nil {
			return sym.ToFD(s)
		}
		return s
	}

	start = norm(start)
	if !l.Contains(start) || !inside(start) {
		return nil, ErrOutside
	}

	var steps []Vec
	for _, v := range l.prims {
		steps = append(steps, v, v.Neg())
	}

	seen := map[Site]bool{start: true}
	queue := []Site{start}
	out := []Site{}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		out = append(out, cur)
		if len(out) > MaxFillSites {
			return nil, ErrTooLarge
		}

		for _, v := range steps {
			next := norm(cur.Add(v))
			if seen[next] || !l.Contains(next) || !inside(next) {
				continue
			}
			seen[next] = true
			queue = append(queue, next)
		}
	}

	return out, nil
}
