//go:build !dreamcast

package cdfs

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"strings"
	"sync"

	"github.com/diskfs/go-diskfs/filesystem"
	"github.com/diskfs/go-diskfs/filesystem/iso9660"
)

const (
	sectorSize = 2048
	// Start of the data track, after the two second pregap
	dataTrackLBA = 150
)

var errNoImage = errors.New("cdfs: no disc image")

// ImageDriver implements all driver interfaces on top of an ISO9660 image. The
// image is opened on first use and reopened by Reinit, which counts as a disc
// change. It is safe for concurrent use.
type ImageDriver struct {
	name string

	mu      sync.Mutex
	img     *os.File
	iso     *iso9660.FileSystem
	sectors uint32
	err     error
	cwd     string
	files   map[int]*imageFile
	nextFd  int
	changes int
}

type imageFile struct {
	f    filesystem.File
	size int64
	dir  []Dirent
}

var (
	_ DirDriver   = (*ImageDriver)(nil)
	_ DiscDriver  = (*ImageDriver)(nil)
	_ PreadDriver = (*ImageDriver)(nil)
)

// NewImageDriver returns a driver for the image file name. The image isn't
// accessed until the driver is used.
func NewImageDriver(name string) *ImageDriver {
	return &ImageDriver{name: name, cwd: "/", files: make(map[int]*imageFile)}
}

// OpenImage is like NewImageDriver, but opens the image immediately.
func OpenImage(name string) (*ImageDriver, error) {
	d := NewImageDriver(name)
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.load(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *ImageDriver) load() error {
	if d.iso != nil || d.err != nil {
		return d.err
	}
	d.err = d.open()
	return d.err
}

func (d *ImageDriver) open() error {
	if d.name == "" {
		return errNoImage
	}
	f, err := os.Open(d.name)
	if err != nil {
		return err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return err
	}
	iso, err := iso9660.Read(f, info.Size(), 0, sectorSize)
	if err != nil {
		f.Close()
		return fmt.Errorf("cdfs: %s: %w", d.name, err)
	}
	d.img, d.iso = f, iso
	d.sectors = uint32((info.Size() + sectorSize - 1) / sectorSize)
	return nil
}

// Err returns the error that occurred while opening the image, if any.
func (d *ImageDriver) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.load()
}

// CloseImage closes all files and the image.
func (d *ImageDriver) CloseImage() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.unload()
}

func (d *ImageDriver) unload() error {
	clear(d.files)
	d.iso, d.err = nil, nil
	if d.img == nil {
		return nil
	}
	err := d.img.Close()
	d.img = nil
	return err
}

func isoName(info fs.FileInfo) string {
	name, _ := strings.CutSuffix(info.Name(), ";1")
	return strings.TrimSuffix(name, ".")
}

// resolve finds the entry for p. Path elements are matched case insensitively
// after folding them like CreateImage does.
func (d *ImageDriver) resolve(p string) (string, fs.FileInfo, error) {
	if !path.IsAbs(p) {
		p = path.Join(d.cwd, p)
	}
	p = path.Clean(p)
	if p == "/" {
		return p, nil, nil
	}

	cur := "/"
	var found fs.FileInfo
	for _, elem := range strings.Split(p[1:], "/") {
		if found != nil && !found.IsDir() {
			return "", nil, fs.ErrNotExist
		}
		ents, err := d.iso.ReadDir(cur)
		if err != nil {
			return "", nil, err
		}
		want := FoldName(elem)
		found = nil
		for _, e := range ents {
			if strings.EqualFold(isoName(e), want) {
				found = e
				cur = path.Join(cur, isoName(e))
				break
			}
		}
		if found == nil {
			return "", nil, fs.ErrNotExist
		}
	}
	return cur, found, nil
}

func (d *ImageDriver) Open(p string, mode Mode) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.load() != nil {
		return -1
	}
	actual, info, err := d.resolve(p)
	if errors.Is(err, fs.ErrNotExist) {
		return OpenNotExist
	}
	if err != nil {
		return -1
	}
	isDir := info == nil || info.IsDir()
	if isDir != (mode&Directory != 0) {
		return OpenWrongMode
	}

	var file imageFile
	if isDir {
		ents, err := d.iso.ReadDir(actual)
		if err != nil {
			return -1
		}
		for _, e := range ents {
			name := isoName(e)
			if name == "" || name == "." || name == ".." || name == "\x00" || name == "\x01" {
				continue
			}
			size := e.Size()
			if e.IsDir() {
				size = -1
			}
			file.dir = append(file.dir, Dirent{Name: name, Size: size})
		}
	} else {
		f, err := d.iso.OpenFile(actual, os.O_RDONLY)
		if err != nil {
			return -1
		}
		file.f, file.size = f, info.Size()
	}
	d.nextFd++
	d.files[d.nextFd] = &file
	return d.nextFd
}

// file returns the open regular file fd. d.mu must be held, the shared
// position of the underlying file is only touched under it.
func (d *ImageDriver) file(fd int) *imageFile {
	f := d.files[fd]
	if f == nil || f.f == nil {
		return nil
	}
	return f
}

func (d *ImageDriver) Read(fd int, p []byte) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	f := d.file(fd)
	if f == nil {
		return -1
	}
	return readFull(f.f, p)
}

func (d *ImageDriver) Pread(fd int, p []byte, offset int64) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	f := d.file(fd)
	if f == nil || offset < 0 {
		return -1
	}
	if offset >= f.size {
		return 0
	}
	pos, err := f.f.Seek(0, io.SeekCurrent)
	if err != nil {
		return -1
	}
	defer f.f.Seek(pos, io.SeekStart)
	if _, err := f.f.Seek(offset, io.SeekStart); err != nil {
		return -1
	}
	return readFull(f.f, p)
}

func readFull(r io.Reader, p []byte) int {
	n, err := io.ReadFull(r, p)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return -1
	}
	return n
}

func (d *ImageDriver) Seek(fd int, offset int64, whence int) int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	f := d.file(fd)
	if f == nil {
		return -1
	}
	pos, err := f.f.Seek(offset, whence)
	if err != nil || pos < 0 {
		return -1
	}
	return pos
}

func (d *ImageDriver) FileSize(fd int) int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	f := d.file(fd)
	if f == nil {
		return -1
	}
	return f.size
}

func (d *ImageDriver) Close(fd int) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	f, ok := d.files[fd]
	if !ok {
		return -1
	}
	delete(d.files, fd)
	if f.f != nil {
		f.f.Close()
	}
	return 0
}

func (d *ImageDriver) ReadDir(fd int) (Dirent, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	f := d.files[fd]
	if f == nil || len(f.dir) == 0 {
		return Dirent{}, false
	}
	e := f.dir[0]
	f.dir = f.dir[1:]
	return e, true
}

func (d *ImageDriver) Chdir(p string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.load() != nil {
		return -1
	}
	actual, info, err := d.resolve(p)
	if err != nil || (info != nil && !info.IsDir()) {
		return -1
	}
	d.cwd = actual
	return 0
}

func (d *ImageDriver) Init() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.load() != nil {
		return -1
	}
	return 0
}

func (d *ImageDriver) Reinit() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.unload()
	d.cwd = "/"
	if d.load() != nil {
		return -1
	}
	d.changes++
	return 0
}

func (d *ImageDriver) DiskChanges() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.changes
}

func (d *ImageDriver) VolumeID() (string, int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.load() != nil {
		return "", -1
	}
	return strings.TrimSpace(d.iso.Label()), 0
}

// ReadTOC reports the image as a single data track.
func (d *ImageDriver) ReadTOC(toc *RawTOC) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.load() != nil {
		return -1
	}
	for i := range toc.Entry {
		toc.Entry[i] = 0xffffffff
	}
	toc.Entry[0] = 0x4<<28 | 0x1<<24 | dataTrackLBA
	toc.First = 1 << 16
	toc.Last = 1 << 16
	toc.LeadOut = dataTrackLBA + d.sectors
	return 0
}
