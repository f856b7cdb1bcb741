package match

// Notifier receives book events. Calls are synchronous and one-way; an
// implementation must not call back into the book that notified it.
type Notifier interface {
	OnAccept(order Order)
	OnReject(order Order, code ErrorCode)
	// OnCancel is called with ErrorCodeNone for a cancellation requested by the caller.
	OnCancel(order Order, code ErrorCode)
	OnPlace(order Order)
	OnDisplace(order Order)
	OnFill(fill *OrderFill)
	OnTrade(trade *Trade)
}

// Dispatcher fans events out to its subscribers in registration order.
type Dispatcher struct {
	subscribers []Notifier
}

func NewDispatcher(subscribers ...Notifier) *Dispatcher {
	return &Dispatcher{subscribers: subscribers}
}

// Subscribe appends n to the subscriber list.
func (d *Dispatcher) Subscribe(n Notifier) {
	d.subscribers = append(d.subscribers, n)
}

func (d *Dispatcher) OnAccept(order Order) {
	for _, s := range d.subscribers {
		s.OnAccept(order)
	}
}

func (d *Dispatcher) OnReject(order Order, code ErrorCode) {
	for _, s := range d.subscribers {
		s.OnReject(order, code)
	}
}

func (d *Dispatcher) OnCancel(order Order, code ErrorCode) {
	for _, s := range d.subscribers {
		s.OnCancel(order, code)
	}
}

func (d *Dispatcher) OnPlace(order Order) {
	for _, s := range d.subscribers {
		s.OnPlace(order)
	}
}

func (d *Dispatcher) OnDisplace(order Order) {
	for _, s := range d.subscribers {
		s.OnDisplace(order)
	}
}

func (d *Dispatcher) OnFill(fill *OrderFill) {
	for _, s := range d.subscribers {
		s.OnFill(fill)
	}
}

func (d *Dispatcher) OnTrade(trade *Trade) {
	for _, s := range d.subscribers {
		s.OnTrade(trade)
	}
}

// NotifierFuncs adapts plain functions to Notifier. Nil fields are skipped.
type NotifierFuncs struct {
	Accept   func(order Order)
	Reject   func(order Order, code ErrorCode)
	Cancel   func(order Order, code ErrorCode)
	Place    func(order Order)
	Displace func(order Order)
	Fill     func(fill *OrderFill)
	Trade    func(trade *Trade)
}

func (f NotifierFuncs) OnAccept(order Order) {
	if f.Accept != nil {
		f.Accept(order)
	}
}

func (f NotifierFuncs) OnReject(order Order, code ErrorCode) {
	if f.Reject != nil {
		f.Reject(order, code)
	}
}

func (f NotifierFuncs) OnCancel(order Order, code ErrorCode) {
	if f.Cancel != nil {
		f.Cancel(order, code)
	}
}

func (f NotifierFuncs) OnPlace(order Order) {
	if f.Place != nil {
		f.Place(order)
	}
}

func (f NotifierFuncs) OnDisplace(order Order) {
	if f.Displace != nil {
		f.Displace(order)
	}
}

func (f NotifierFuncs) OnFill(fill *OrderFill) {
	if f.Fill != nil {
		f.Fill(fill)
	}
}

func (f NotifierFuncs) OnTrade(trade *Trade) {
	if f.Trade != nil {
		f.Trade(trade)
	}
}

// DiscardNotifier drops every event.
type DiscardNotifier struct{}

func (DiscardNotifier) OnAccept(Order)            {}
func (DiscardNotifier) OnReject(Order, ErrorCode) {}
func (DiscardNotifier) OnCancel(Order, ErrorCode) {}
func (DiscardNotifier) OnPlace(Order)             {}
func (DiscardNotifier) OnDisplace(Order)          {}
func (DiscardNotifier) OnFill(*OrderFill)         {}
func (DiscardNotifier) OnTrade(*Trade)            {}
