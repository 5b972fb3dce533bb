package buffer

import "sync"

// Double holds two slots and which one each side owns. One side writes a slot
// while the other reads the other; Swap flips the roles. The mutex guards
// only the role indices, never the slot contents.
type Double struct {
	mu    sync.Mutex
	slots [2]Slot
	calc  int
	draw  int
}

func NewDouble() *Double {
	return &Double{calc: 0, draw: 1}
}

// Write returns the slot the producer fills. Only the producer may call it
// between two swaps.
func (d *Double) Write() *Slot {
	d.mu.Lock()
	defer d.mu.Unlock()
	return &d.slots[d.calc]
}

// Read returns the slot last completed by the producer.
func (d *Double) Read() *Slot {
	d.mu.Lock()
	defer d.mu.Unlock()
	return &d.slots[d.draw]
}

// Swap publishes the write slot and hands the old read slot to the producer.
func (d *Double) Swap() {
	d.mu.Lock()
	d.draw = d.calc
	d.calc = 1 - d.calc
	d.mu.Unlock()
}
