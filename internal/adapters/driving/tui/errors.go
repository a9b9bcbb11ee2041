package tui

import "errors"

// ErrMissingRankJobService is returned when the rank job service is not provided.
var ErrMissingRankJobService = errors.New("tui: rank job service is required")

// ErrMissingSessionService is returned when the session service is not provided.
var ErrMissingSessionService = errors.New("tui: session service is required")

// ErrViewClosed is returned by the progress sink once the view has exited.
var ErrViewClosed = errors.New("tui: progress view closed")

// ErrJobAborted is reported when the job stops without a result.
var ErrJobAborted = errors.New("tui: rank job ended without a result")
