package match

import "errors"

var (
	ErrInvalidParam     = errors.New("the param is invalid")
	ErrNotFound         = errors.New("not found")
	ErrDuplicateOrderID = errors.New("order id is already registered")
	ErrNotImportable    = errors.New("order type cannot rest in the book")
	ErrMarketExists     = errors.New("market already exists")
	ErrSequenceGap      = errors.New("book log sequence gap")
)

// Programmer errors. These are raised with panic: they signal a broken caller
// contract, not a market condition.
var (
	ErrUnknownSide          = errors.New("unrecognized order side")
	ErrNegativeSize         = errors.New("order size must not be negative")
	ErrDiminishExceeded     = errors.New("cannot diminish size below zero")
	ErrNoVolumeLimit        = errors.New("cannot diminish available volume: the order does not have volume limit")
	ErrVolumeLimitExhausted = errors.New("cannot diminish available volume: limit already exceeded")
	ErrUnexpectedOrder      = errors.New("unexpected order in container")
)
