package holly

import "sync"

// Sim is a sparse, word addressable memory implementing Port. Unaligned
// addresses are truncated to the containing word. Unwritten words read as
// zero. The zero value is ready to use and Sim is safe for concurrent use.
type Sim struct {
	mtx    sync.Mutex
	words  map[Addr]uint32
	writes int
}

func (m *Sim) ReadWord(addr Addr) uint32 {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	return m.words[addr&^0x3]
}

func (m *Sim) WriteWord(addr Addr, v uint32) {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	if m.words == nil {
		m.words = make(map[Addr]uint32)
	}
	m.words[addr&^0x3] = v
	m.writes++
}

// Writes returns the number of word writes seen so far.
func (m *Sim) Writes() int {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	return m.writes
}
