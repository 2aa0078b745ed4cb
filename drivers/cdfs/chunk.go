package cdfs

// Chunk holds the bytes of a single read.
type Chunk struct {
	buf [ChunkSize]byte
	n   int
}

func (c *Chunk) Len() int      { return c.n }
func (c *Chunk) Cap() int      { return len(c.buf) }
func (c *Chunk) Bytes() []byte { return c.buf[:c.n] }

func (c *Chunk) String() string {
	return string(c.buf[:c.n])
}

// Byte returns the i-th byte read, or 0 if i is out of range.
func (c *Chunk) Byte(i int) byte {
	if i < 0 || i >= c.n {
		return 0
	}
	return c.buf[i]
}

// Char returns the i-th byte read as a rune, or 0 if i is out of range.
func (c *Chunk) Char(i int) rune { return rune(c.Byte(i)) }
