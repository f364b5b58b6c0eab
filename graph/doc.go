// Package graph defines the Vertex/Edge capability contracts and the Graph
// container that assembler, linalg, and solver operate on.
//
// Unlike a conventional graph library, vertices here are manifold-valued
// unknowns (an SE(3) pose, an SE(2) pose, a Euclidean landmark, ...) rather
// than opaque string-keyed nodes, so Vertex and Edge are small capability
// interfaces instead of concrete structs: Dim/Update for vertices,
// Arity/Link/Information/Kernel/Residual for edges. Concrete
// implementations live in sibling packages (pose3, pose2) and are never
// imported here.
//
// Graph keeps vertices and edges in insertion order and tracks, per vertex,
// whether it is free (estimated) or constant (held fixed), plus its offset
// into the flattened parameter vector. Offsets are recomputed lazily after
// SetConstant calls so AddVertex/SetConstant remain O(1) amortized.
//
// Graph carries no internal mutex. The intended scheduling model is
// single-threaded and synchronous, and concurrent calls against the same
// Graph are undefined, so this package does not assert a safety property
// it cannot deliver — unlike lvlath's core.Graph, which is built for
// concurrent callers. Callers needing concurrent construction should
// serialize their own calls.
package graph
