// Package cag provides constructive area geometry: boolean operations
// (union, intersection, difference, symmetric difference) on 2D planar
// regions bounded by lines, quadratic and cubic Bezier curves, and
// circular arcs.
//
// # Quick Start
//
//	import "github.com/gogpu/cag"
//
//	a := cag.NewBuilder().
//		MoveTo(10, 10).LineTo(90, 10).LineTo(50, 90).Close().
//		Shape()
//	b := cag.NewBuilder().Circle(50, 50, 30).Shape()
//
//	result, err := cag.Union(a, b)
//
// # Architecture
//
// Input shapes are resolved into a planar subdivision: a half-edge graph
// of vertices, edges and faces. Segment intersections and overlaps are
// eliminated, faces are extracted from the sorted half-edge incidence at
// each vertex, each face receives a per-input winding map, and the faces
// selected by a winding filter are re-emitted as a new Shape.
//
// The library is organized into:
//   - Public API: Shape, Subpath, Segment (Line, Quadratic, Cubic, Arc),
//     Builder, and the boolean entry points Union/Intersect/Subtract/Xor
//   - Graph: the planar-subdivision pipeline behind BinaryResult
//   - internal/raster: coverage masks for tests and the demo binary
//
// # Coordinate System
//
// Coordinates are plain float64 pairs; no axis orientation is assumed.
// Signed areas follow the shoelace convention: a cycle traversed
// counter-clockwise (in the mathematical sense) has positive area.
// Angles are in radians.
//
// # Limits
//
// Arithmetic is floating point with epsilon-based snapping, not exact.
// Inputs with non-finite coordinates are rejected. Performance targets
// interactive use, on the order of thousands of segments.
package cag
