package match

// containerResolver maps a side to a named container and its sort direction.
// Resting limit orders: bids descending, asks ascending. Stop containers are
// reversed because a stop is released by the price moving past it.
type containerResolver struct {
	prefix  string
	reverse bool
}

var (
	limitResolver = containerResolver{prefix: "LIMIT."}
	stopResolver  = containerResolver{prefix: "STOP.", reverse: true}
)

func (r containerResolver) name(side Side) string {
	switch side {
	case Buy:
		return r.prefix + "BIDS"
	case Sell:
		return r.prefix + "ASKS"
	}
	panic(ErrUnknownSide)
}

func (r containerResolver) sortOrder(side Side) SortOrder {
	descending := false
	switch side {
	case Buy:
		descending = true
	case Sell:
	default:
		panic(ErrUnknownSide)
	}

	if r.reverse {
		descending = !descending
	}

	if descending {
		return Descending
	}
	return Ascending
}

// resolve fetches or creates the container for side.
func (r containerResolver) resolve(state *BookState, side Side) *BinContainer {
	return state.Container(r.name(side), r.sortOrder(side))
}

func oppositeSide(side Side) Side {
	switch side {
	case Buy:
		return Sell
	case Sell:
		return Buy
	}
	panic(ErrUnknownSide)
}
