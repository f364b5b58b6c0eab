package assembler

import "errors"

// ErrResidualDimMismatch indicates an edge's Residual returned a Jacobian
// block whose row count did not match the residual length.
var ErrResidualDimMismatch = errors.New("assembler: jacobian row count does not match residual length")

// ErrJacobianColMismatch indicates an edge's Jacobian block width did not
// match the corresponding vertex's tangent dimension.
var ErrJacobianColMismatch = errors.New("assembler: jacobian column count does not match vertex dimension")
