package z80

import "errors"

// ErrNoMemory is returned by New when no Memory collaborator is supplied.
var ErrNoMemory = errors.New("z80: memory collaborator is nil")

// ErrNoPorts is returned by New when no Ports collaborator is supplied.
var ErrNoPorts = errors.New("z80: ports collaborator is nil")
