package cdfs

import (
	"errors"
	"fmt"
)

// DiscDriver is implemented by drivers that control the drive itself.
type DiscDriver interface {
	Driver
	Init() int
	Reinit() int
	// DiskChanges returns the number of times the disc was swapped since
	// Init.
	DiskChanges() int
	VolumeID() (string, int)
	ReadTOC(toc *RawTOC) int
}

// AudioDriver is implemented by drivers that can play CD audio.
type AudioDriver interface {
	Driver
	PlayTracks(first, last, loops int) int
	PlaySectors(start, end, loops int) int
	StopAudio() int
}

func discDriver(op string) (DiscDriver, error) {
	if d, ok := driver.(DiscDriver); ok {
		return d, nil
	}
	return nil, fmt.Errorf("%s: %w", op, ErrUnsupported)
}

func audioDriver(op string) (AudioDriver, error) {
	if d, ok := driver.(AudioDriver); ok {
		return d, nil
	}
	return nil, fmt.Errorf("%s: %w", op, ErrUnsupported)
}

func status(op string, rc int) error {
	if rc < 0 {
		return fmt.Errorf("%s: %w (%d)", op, ErrIO, rc)
	}
	return nil
}

// Init initializes the drive and reads the disc's filesystem.
func Init() error {
	d, err := discDriver("init")
	if err != nil {
		return err
	}
	return status("init", d.Init())
}

// Reinit rereads the filesystem, e.g. after the disc was swapped.
func Reinit() error {
	d, err := discDriver("reinit")
	if err != nil {
		return err
	}
	return status("reinit", d.Reinit())
}

// DiskChanges returns how often the disc was swapped since Init.
func DiskChanges() (int, error) {
	d, err := discDriver("diskchanges")
	if err != nil {
		return 0, err
	}
	n := d.DiskChanges()
	return n, status("diskchanges", n)
}

// VolumeID returns the volume identifier of the disc's filesystem.
func VolumeID() (string, error) {
	d, err := discDriver("volumeid")
	if err != nil {
		return "", err
	}
	id, rc := d.VolumeID()
	return id, status("volumeid", rc)
}

// PlayTracks plays the audio tracks first through last. With loops > 0 the
// range is repeated that many times.
func PlayTracks(first, last, loops int) error {
	d, err := audioDriver("playtracks")
	if err != nil {
		return err
	}
	return status("playtracks", d.PlayTracks(first, last, loops))
}

// PlaySectors plays audio from sector start up to end.
func PlaySectors(start, end, loops int) error {
	d, err := audioDriver("playsectors")
	if err != nil {
		return err
	}
	return status("playsectors", d.PlaySectors(start, end, loops))
}

// StopAudio stops audio playback.
func StopAudio() error {
	d, err := audioDriver("stopaudio")
	if err != nil {
		return err
	}
	return status("stopaudio", d.StopAudio())
}

// RawTOC is the table of contents as the drive reports it. Each entry packs
// control and address type into the upper byte and the track's start address
// into the lower 24 bits. First and Last carry the track number in bits 16-23.
type RawTOC struct {
	Entry   [99]uint32
	First   uint32
	Last    uint32
	LeadOut uint32
}

// Track is a decoded table of contents entry.
type Track struct {
	Number int
	LBA    uint32
	Ctrl   uint8
	ADR    uint8
}

// Data reports whether t is a data track.
func (t Track) Data() bool { return t.Ctrl&0x4 != 0 }

// TOC is a decoded table of contents.
type TOC struct {
	Tracks  []Track
	LeadOut uint32
}

var errBadTOC = errors.New("cdfs: malformed table of contents")

func lba(e uint32) uint32     { return e & 0x00ffffff }
func adr(e uint32) uint8      { return uint8(e >> 24 & 0xf) }
func ctrl(e uint32) uint8     { return uint8(e >> 28) }
func trackNo(e uint32) int    { return int(e >> 16 & 0xff) }
func entryUsed(e uint32) bool { return e != 0xffffffff }

// Decode converts the raw entries to a TOC.
func (raw *RawTOC) Decode() (*TOC, error) {
	first, last := trackNo(raw.First), trackNo(raw.Last)
	if first < 1 || last < first || last > len(raw.Entry) {
		return nil, fmt.Errorf("%w: tracks %d-%d", errBadTOC, first, last)
	}
	toc := &TOC{LeadOut: lba(raw.LeadOut)}
	for n := first; n <= last; n++ {
		e := raw.Entry[n-1]
		if !entryUsed(e) {
			return nil, fmt.Errorf("%w: track %d missing", errBadTOC, n)
		}
		toc.Tracks = append(toc.Tracks, Track{
			Number: n,
			LBA:    lba(e),
			Ctrl:   ctrl(e),
			ADR:    adr(e),
		})
	}
	return toc, nil
}

// ReadTOC reads and decodes the disc's table of contents.
func ReadTOC() (*TOC, error) {
	d, err := discDriver("readtoc")
	if err != nil {
		return nil, err
	}
	var raw RawTOC
	if err := status("readtoc", d.ReadTOC(&raw)); err != nil {
		return nil, err
	}
	return raw.Decode()
}
