package risk

import "errors"

var ErrEmptySummary = errors.New("empty risk summary")
