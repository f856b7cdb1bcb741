package match

import (
	"slices"
	"sync"
)

// PublishLog receives the book log stream of a LogNotifier.
//
// Publish is called synchronously from the matching path and the BookLog
// records go back to a pool once it returns. Implementations that keep or
// forward a record must copy it first.
type PublishLog interface {
	Publish(...*BookLog)
}

// MemoryPublishLog keeps a copy of every published record in sequence order.
// It backs tests and AggregatedBook replays.
type MemoryPublishLog struct {
	mu   sync.RWMutex
	logs []*BookLog
}

func NewMemoryPublishLog() *MemoryPublishLog {
	return &MemoryPublishLog{}
}

func (m *MemoryPublishLog) Publish(logs ...*BookLog) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, log := range logs {
		cpy := *log
		m.logs = append(m.logs, &cpy)
	}
}

func (m *MemoryPublishLog) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.logs)
}

// Get returns the record at index. It panics when index is out of range.
func (m *MemoryPublishLog) Get(index int) *BookLog {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.logs[index]
}

// Logs returns every stored record.
func (m *MemoryPublishLog) Logs() []*BookLog {
	return m.collect(func(*BookLog) bool { return true })
}

// Filter returns the stored records of the given event types, in sequence
// order.
func (m *MemoryPublishLog) Filter(types ...LogType) []*BookLog {
	return m.collect(func(l *BookLog) bool { return slices.Contains(types, l.Type) })
}

// OrderLogs returns the history of one order: every record where it is the
// subject, including maker fills. Trade records are attributed to the
// aggressor only.
func (m *MemoryPublishLog) OrderLogs(orderID string) []*BookLog {
	return m.collect(func(l *BookLog) bool { return l.OrderID == orderID })
}

// Since returns the records whose sequence id is greater than seqID, which is
// what a consumer needs to catch up after a snapshot.
func (m *MemoryPublishLog) Since(seqID uint64) []*BookLog {
	return m.collect(func(l *BookLog) bool { return l.SequenceID > seqID })
}

func (m *MemoryPublishLog) collect(keep func(*BookLog) bool) []*BookLog {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var logs []*BookLog
	for _, l := range m.logs {
		if keep(l) {
			logs = append(logs, l)
		}
	}
	return logs
}

// Types returns the type of every stored record.
func (m *MemoryPublishLog) Types() []LogType {
	m.mu.RLock()
	defer m.mu.RUnlock()

	types := make([]LogType, len(m.logs))
	for i, log := range m.logs {
		types[i] = log.Type
	}
	return types
}

func (m *MemoryPublishLog) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logs = m.logs[:0]
}

// DiscardPublishLog drops every record.
type DiscardPublishLog struct{}

func NewDiscardPublishLog() *DiscardPublishLog {
	return &DiscardPublishLog{}
}

func (DiscardPublishLog) Publish(...*BookLog) {}
