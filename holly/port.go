package holly

// Addr is an address in the SH4's 32-bit address space.
type Addr uintptr

// Some well known areas of the address space.
const (
	P2 Addr = 0xa000_0000 // uncached mirror of the external area
	P4 Addr = 0xe000_0000 // store queues and on-chip registers

	StoreQueues Addr = P4
	TAFIFO      Addr = 0x1000_0000 // tile accelerator polygon FIFO
)

// Port gives word access to a memory mapped bus. Implementations must not
// reorder accesses.
type Port interface {
	ReadWord(addr Addr) uint32
	WriteWord(addr Addr, v uint32)
}

var port Port = defaultPort()

// DefaultPort returns the port used by ReadWord, WriteWord and registers that
// weren't bound to a port.
func DefaultPort() Port { return port }

// SetPort replaces the default port and returns the previous one. It must be
// called before any hardware is used, usually only from tests.
func SetPort(p Port) (old Port) {
	old, port = port, p
	return old
}

// ReadWord reads the 32-bit word at addr from the default port.
func ReadWord(addr Addr) uint32 { return port.ReadWord(addr) }

// WriteWord writes v to addr using the default port.
func WriteWord(addr Addr, v uint32) { port.WriteWord(addr, v) }

// Reg32 is a typed 32-bit register. The zero port means the default port at
// the time of access.
type Reg32[T ~uint32] struct {
	port Port
	addr Addr
}

// R32 returns the register at addr on the default port.
func R32[T ~uint32](addr Addr) Reg32[T] { return Reg32[T]{addr: addr} }

// PortR32 returns the register at addr on port p.
func PortR32[T ~uint32](p Port, addr Addr) Reg32[T] { return Reg32[T]{port: p, addr: addr} }

func (r Reg32[T]) bus() Port {
	if r.port != nil {
		return r.port
	}
	return port
}

func (r Reg32[T]) Addr() Addr { return r.addr }
func (r Reg32[T]) Load() T    { return T(r.bus().ReadWord(r.addr)) }
func (r Reg32[T]) Store(v T)  { r.bus().WriteWord(r.addr, uint32(v)) }

// LoadBits returns the register's value masked by mask.
func (r Reg32[T]) LoadBits(mask T) T { return r.Load() & mask }

// SetBits sets the bits in mask with a read-modify-write cycle.
func (r Reg32[T]) SetBits(mask T) { r.Store(r.Load() | mask) }

// ClearBits clears the bits in mask with a read-modify-write cycle.
func (r Reg32[T]) ClearBits(mask T) { r.Store(r.Load() &^ mask) }
