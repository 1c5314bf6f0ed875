package shipping

import "sync/atomic"

// Holder publishes the active Table. Readers never see a partially built
// table: a reload replaces the pointer in one step.
type Holder struct {
	table atomic.Pointer[Table]
}

func NewHolder(table *Table) *Holder {
	h := &Holder{}
	if table != nil {
		h.table.Store(table)
	}
	return h
}

// Load returns the active table, or nil before the first Store.
func (h *Holder) Load() *Table {
	return h.table.Load()
}

// Swap installs table and returns the previous one.
func (h *Holder) Swap(table *Table) *Table {
	return h.table.Swap(table)
}
