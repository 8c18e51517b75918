package ai

import "errors"

// ErrModelUnavailable indicates the language model call failed or
// returned no usable completion.
var ErrModelUnavailable = errors.New("model unavailable")
