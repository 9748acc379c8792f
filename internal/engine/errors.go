package engine

import "errors"

var (
	ErrCatalogUnavailable = errors.New("card catalog unavailable")
	ErrDeckEmpty          = errors.New("deck not loaded")
	ErrInvalidSpreadType  = errors.New("invalid spread type")
	ErrNothingToPersist   = errors.New("no drawn cards to persist")
	ErrInvalidSessionID   = errors.New("session id is required")
	ErrPersistenceFailure = errors.New("persisting session cards failed")
)
