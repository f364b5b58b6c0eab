// Package pose2 provides the SE(2) analogue of pose3: a planar pose vertex
// and a between-edge constraining the relative transform between two such
// vertices, using the same closed-form Jacobian pattern as
// pose3.BetweenEdge, generalized to a 3-dimensional tangent space (scalar
// rotation generator instead of a 3-vector).
package pose2
