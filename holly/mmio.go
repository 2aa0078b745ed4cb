package holly

// WriteIO copies p to busAddr on port using word writes only. The SH4 is
// little endian, so p[0] ends up in the lowest byte of the first word. If p's
// start or end isn't 4 byte aligned, the partial words are read first and
// merged. This might lead to unexpected behaviour on write-only ranges.
func WriteIO(port Port, busAddr Addr, p []byte) {
	end := busAddr + Addr(len(p))
	for w := busAddr &^ 0x3; w < end; w += 4 {
		var data, mask uint32
		for a := max(w, busAddr); a < min(w+4, end); a++ {
			shift := (a - w) << 3
			data |= uint32(p[a-busAddr]) << shift
			mask |= 0xff << shift
		}
		if mask != 0xffff_ffff { // read data before writing
			data |= port.ReadWord(w) &^ mask
		}
		port.WriteWord(w, data)
	}
}

// ReadIO copies from busAddr on port into p using word reads only.
func ReadIO(port Port, busAddr Addr, p []byte) {
	end := busAddr + Addr(len(p))
	for w := busAddr &^ 0x3; w < end; w += 4 {
		data := port.ReadWord(w)
		for a := max(w, busAddr); a < min(w+4, end); a++ {
			p[a-busAddr] = byte(data >> ((a - w) << 3))
		}
	}
}
