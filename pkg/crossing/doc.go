// Package crossing reports how many routing nodes cross the boundaries
// between neighbouring placement regions of an FPGA design.
//
// The counting itself runs inside the RapidWright toolkit, reached through
// package jvm. This package names the toolkit entry points, sends the
// arguments, and copies the returned Java maps into native Go maps at a
// fixed depth:
//
//	ClockRegion      → DirectionCounts  (direction → count)
//	AllClockRegions  → GridCounts       (column → row → direction → count)
//	AllPBlocks       → GridCounts
//
// Directions pointing off the grid are absent (column 0 has no W, row 0 has
// no S, and likewise E and N on the far edges). The toolkit produces that
// shape and the copy keeps it exactly.
//
// SimDevice answers the same calls from a synthetic grid so the rest of the
// stack can be exercised without a JVM.
package crossing
