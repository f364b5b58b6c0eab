// Package pose3 provides SE(3) pose vertices and three edge types (prior,
// between, and landmark) as concrete graph.Vertex/graph.Edge
// implementations, ported from the Python pose-graph demo this module's
// domain is drawn from.
//
// Vertex stores a manifold.SE3 and retracts via right composition with the
// exponential of the tangent increment: x <- x . Exp(delta). PriorEdge
// anchors a single vertex to a fixed measurement; BetweenEdge constrains
// the relative transform between two vertices (the workhorse of
// pose-graph SLAM); LandmarkEdge constrains a pose's relative-position
// measurement to a 3-vector Euclidean landmark vertex, exercising a
// mixed-dimension edge (6 and 3) beyond the uniform-dimension chain.
package pose3
