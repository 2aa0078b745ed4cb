package pvr

// Block is a single 32-byte TA parameter, the unit in which the TA FIFO
// accepts data.
type Block [8]uint32

// Parameter control word, the first word of every parameter.
const (
	paraEndOfList = 0 << 29
	paraPolygon   = 4 << 29 // also the global parameter of modifier volumes
	paraVertex    = 7 << 29

	pcwEndOfStrip    = 1 << 28
	pcwListTypeShift = 24
	pcwGroupEnable   = 1 << 23
	pcwGouraud       = 1 << 1
)

// ISP/TSP instruction word
const (
	ispDepthGreaterEqual = 6 << 29
	ispCullNone          = 0 << 27
	ispZWriteDisable     = 1 << 26
)

// TSP control word
const (
	tspSrcOne         = 1 << 29
	tspSrcAlpha       = 4 << 29
	tspDstZero        = 0 << 26
	tspDstInvSrcAlpha = 5 << 26
	tspFogDisable     = 2 << 22
	tspUseAlpha       = 1 << 20
)

// modifier volume instruction
const volumeNormal = 0 << 27

// polygonHeader returns the global parameter for a non-textured, packed color,
// gouraud shaded polygon in list t.
func polygonHeader(t ListType) Block {
	isp := uint32(ispDepthGreaterEqual | ispCullNone)
	tsp := uint32(tspSrcOne | tspDstZero | tspFogDisable)
	switch t {
	case ListTranslucent:
		isp |= ispZWriteDisable
		tsp = tspSrcAlpha | tspDstInvSrcAlpha | tspFogDisable | tspUseAlpha
	case ListPunchThrough:
		tsp |= tspUseAlpha
	}
	return Block{
		paraPolygon | uint32(t)<<pcwListTypeShift | pcwGroupEnable | pcwGouraud,
		isp,
		tsp,
		0, // texture control
	}
}

// modifierHeader returns the global parameter for a modifier volume in list t.
func modifierHeader(t ListType, instr uint32) Block {
	return Block{
		paraPolygon | uint32(t)<<pcwListTypeShift | pcwGroupEnable,
		instr | ispCullNone,
	}
}

// polygonVertex returns a type 0 vertex parameter, i.e. position and packed
// ARGB8888 color.
func polygonVertex(v Vertex, argb uint32, endOfStrip bool) Block {
	pcw := uint32(paraVertex)
	if endOfStrip {
		pcw |= pcwEndOfStrip
	}
	x, y, z := v.words()
	return Block{pcw, x, y, z, 0, 0, argb, 0}
}

// modifierTriangle returns the 64-byte vertex parameter of a modifier volume
// triangle, spanning two blocks.
func modifierTriangle(a, b, c Vertex, last bool) [2]Block {
	pcw := uint32(paraVertex)
	if last {
		pcw |= pcwEndOfStrip
	}
	ax, ay, az := a.words()
	bx, by, bz := b.words()
	cx, cy, cz := c.words()
	return [2]Block{
		{pcw, ax, ay, az, bx, by, bz, cx},
		{cy, cz},
	}
}

func endOfList() Block { return Block{paraEndOfList} }
