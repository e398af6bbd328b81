package editor

import "errors"

// Validation and policy errors surfaced to the user as warnings. None of
// them leave the canvas in a changed state.
var (
	ErrNodeNotFound      = errors.New("node not found")
	ErrEdgeNotFound      = errors.New("edge not found")
	ErrMissingEndpoint   = errors.New("invalid connection: missing source or target")
	ErrSelfConnection    = errors.New("cannot connect a node to itself")
	ErrDuplicateEdge     = errors.New("connection already exists between these nodes")
	ErrOutgoingForbidden = errors.New("node does not allow outgoing connections")
	ErrIncomingForbidden = errors.New("node does not allow incoming connections")
	ErrNotDeletable      = errors.New("start and end nodes cannot be deleted")
	ErrNameRequired      = errors.New("node name is required")
	ErrLinkRequired      = errors.New("a linked resource must be selected for this node kind")
)
