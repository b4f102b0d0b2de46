package octree

import (
	"github.com/phil-mansfield/bhtree/geom"
)

// Octant codes pack one bit per axis. A bit is set when the point lies
// strictly above the cell center along that axis.
const (
	XHigh = 1 << iota
	YHigh
	ZHigh

	OctantCount = 8
)

// Octant classifies x into one of the eight sub-cells of the cube with the
// given center and side length. It returns the octant code along with the
// center of that sub-cell. A coordinate equal to the center counts as low.
func Octant(center *geom.Vec, sideLength float64, x *geom.Vec) (int, geom.Vec) {
	code, sub := 0, geom.Vec{}
	q := sideLength / 4

	for i := 0; i < 3; i++ {
		if x[i] <= center[i] {
			sub[i] = center[i] - q
		} else {
			code |= 1 << uint(i)
			sub[i] = center[i] + q
		}
	}

	return code, sub
}

// OctantCenter returns the center of the sub-cell with the given code.
func OctantCenter(center *geom.Vec, sideLength float64, code int) geom.Vec {
	if code < 0 || code >= OctantCount {
		panic("octant code out of range.")
	}

	sub := geom.Vec{}
	q := sideLength / 4
	for i := 0; i < 3; i++ {
		if code&(1<<uint(i)) == 0 {
			sub[i] = center[i] - q
		} else {
			sub[i] = center[i] + q
		}
	}
	return sub
}

// Octant classifies a point relative to the cell of n.
func (n *Node) Octant(x *geom.Vec) (int, geom.Vec) {
	return Octant(&n.CellCenter, n.SideLength, x)
}
