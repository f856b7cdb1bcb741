package match

import (
	"github.com/google/uuid"
	"github.com/rs/xid"
)

// IDGenerator produces order ids for orders constructed without one.
// Generated ids must never repeat for the life of a book, otherwise
// ID_CONFLICT detection breaks.
type IDGenerator interface {
	NewID() string
}

// XIDGenerator generates globally unique, sortable 20-character ids.
type XIDGenerator struct{}

func (XIDGenerator) NewID() string {
	return xid.New().String()
}

// UUIDGenerator generates random (v4) UUIDs.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}

var idGenerator IDGenerator = XIDGenerator{}

// SetIDGenerator replaces the generator used for orders without an explicit id.
func SetIDGenerator(g IDGenerator) {
	idGenerator = g
}
