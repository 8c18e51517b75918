package logseq

import "errors"

// ErrInvalidGraphStructure indicates an export payload that carries
// neither pages nor standalone blocks, or is not valid JSON.
var ErrInvalidGraphStructure = errors.New("invalid graph structure")
