package app

import "errors"

// ErrInvalidBoardConfig reports board settings or seed notes that cannot build a board.
var ErrInvalidBoardConfig = errors.New("invalid board config")
