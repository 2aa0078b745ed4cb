package cdfs_test

import (
	"errors"
	"io"
	"io/fs"
	"path"
	"strings"
	"testing"

	"github.com/anzen-go/anzen/drivers/cdfs"
	dctesting "github.com/anzen-go/anzen/testing"
)

func TestMain(m *testing.M) { dctesting.TestMain(m) }

// memDriver serves files from memory and counts driver calls.
type memDriver struct {
	files map[string]string
	open  map[int]*memFile
	next  int
	reads int
	fail  bool
}

type memFile struct {
	data string
	off  int64
	dir  []cdfs.Dirent
}

func newMemDriver(files map[string]string) *memDriver {
	return &memDriver{files: files, open: make(map[int]*memFile)}
}

func (d *memDriver) Open(p string, mode cdfs.Mode) int {
	if d.fail {
		return -1
	}
	p = path.Clean(p)
	f := &memFile{}
	if mode&cdfs.Directory != 0 {
		if _, ok := d.files[p]; ok {
			return cdfs.OpenWrongMode
		}
		seen := map[string]bool{}
		for name, data := range d.files {
			rel, ok := strings.CutPrefix(name, strings.TrimSuffix(p, "/")+"/")
			if !ok {
				continue
			}
			elem, _, isDir := strings.Cut(rel, "/")
			if seen[elem] {
				continue
			}
			seen[elem] = true
			size := int64(len(data))
			if isDir {
				size = -1
			}
			f.dir = append(f.dir, cdfs.Dirent{Name: elem, Size: size})
		}
		if len(seen) == 0 {
			return cdfs.OpenNotExist
		}
	} else {
		data, ok := d.files[p]
		if !ok {
			if d.isDir(p) {
				return cdfs.OpenWrongMode
			}
			return cdfs.OpenNotExist
		}
		f.data = data
	}
	d.next++
	d.open[d.next] = f
	return d.next
}

func (d *memDriver) isDir(p string) bool {
	for name := range d.files {
		if strings.HasPrefix(name, strings.TrimSuffix(p, "/")+"/") {
			return true
		}
	}
	return false
}

func (d *memDriver) Read(fd int, p []byte) int {
	d.reads++
	f := d.open[fd]
	if d.fail || f == nil {
		return -1
	}
	n := copy(p, f.data[min(f.off, int64(len(f.data))):])
	f.off += int64(n)
	return n
}

func (d *memDriver) Pread(fd int, p []byte, offset int64) int {
	d.reads++
	f := d.open[fd]
	if d.fail || f == nil {
		return -1
	}
	return copy(p, f.data[min(offset, int64(len(f.data))):])
}

func (d *memDriver) Seek(fd int, offset int64, whence int) int64 {
	f := d.open[fd]
	switch whence {
	case cdfs.SeekCur:
		offset += f.off
	case cdfs.SeekEnd:
		offset += int64(len(f.data))
	}
	if offset < 0 {
		return -1
	}
	f.off = offset
	return offset
}

func (d *memDriver) FileSize(fd int) int64 {
	if d.fail {
		return -1
	}
	return int64(len(d.open[fd].data))
}

func (d *memDriver) Close(fd int) int {
	delete(d.open, fd)
	return 0
}

func (d *memDriver) ReadDir(fd int) (cdfs.Dirent, bool) {
	f := d.open[fd]
	if len(f.dir) == 0 {
		return cdfs.Dirent{}, false
	}
	e := f.dir[0]
	f.dir = f.dir[1:]
	return e, true
}

func (d *memDriver) Chdir(string) int { return 0 }

func withDriver(t *testing.T, d cdfs.Driver) {
	old := cdfs.SetDriver(d)
	t.Cleanup(func() { cdfs.SetDriver(old) })
}

var testFiles = map[string]string{
	"/hello.txt":       "hello, world\n",
	"/data/ken.txt":    "If a program is too slow, it must have a loop.\n",
	"/data/big.bin":    strings.Repeat("0123456789abcdef", 200),
	"/data/sub/x.txt":  "x",
	"/data/sub/yy.txt": "yy",
}

func TestReadTooLarge(t *testing.T) {
	d := newMemDriver(testFiles)
	withDriver(t, d)

	f, err := cdfs.Open("/data/big.bin")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	_, err = f.ReadChunk(2000)
	if !errors.Is(err, cdfs.ErrReadTooLarge) {
		t.Fatalf("expected ErrReadTooLarge, got %v", err)
	}
	if d.reads != 0 {
		t.Errorf("driver was called %d times", d.reads)
	}

	c, err := f.ReadChunk(cdfs.ChunkSize)
	if err != nil {
		t.Fatal(err)
	}
	if c.Len() != cdfs.ChunkSize || c.Cap() != cdfs.ChunkSize {
		t.Errorf("chunk len %d cap %d", c.Len(), c.Cap())
	}
}

func TestReadChunks(t *testing.T) {
	withDriver(t, newMemDriver(testFiles))

	f, err := cdfs.Open("/hello.txt")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	c, err := f.ReadChunk(5)
	if err != nil {
		t.Fatal(err)
	}
	if c.String() != "hello" || c.Char(1) != 'e' || c.Byte(4) != 'o' {
		t.Errorf("unexpected chunk %q", c.Bytes())
	}
	if c.Byte(5) != 0 || c.Byte(-1) != 0 {
		t.Error("out of range access not zero")
	}

	if _, err := f.Seek(0, cdfs.SeekEnd); err != nil {
		t.Fatal(err)
	}
	if _, err := f.ReadChunk(10); err != io.EOF {
		t.Errorf("expected io.EOF, got %v", err)
	}
}

func TestReaderClampsToChunk(t *testing.T) {
	withDriver(t, newMemDriver(testFiles))

	f, err := cdfs.Open("/data/big.bin")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	buf := make([]byte, 3000)
	n, err := f.Read(buf)
	if err != nil || n != cdfs.ChunkSize {
		t.Fatalf("read %d, %v", n, err)
	}

	f.Seek(0, cdfs.SeekSet)
	all, err := io.ReadAll(f)
	if err != nil {
		t.Fatal(err)
	}
	if string(all) != testFiles["/data/big.bin"] {
		t.Error("content mismatch")
	}
	if size, err := f.Size(); err != nil || size != int64(len(all)) {
		t.Errorf("size %d, %v", size, err)
	}
}

func TestReadAt(t *testing.T) {
	d := newMemDriver(testFiles)
	withDriver(t, d)

	f, err := cdfs.Open("/data/big.bin")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	buf := make([]byte, 2500)
	n, err := f.ReadAt(buf, 16)
	if err != nil || n != len(buf) {
		t.Fatalf("read %d, %v", n, err)
	}
	if string(buf) != testFiles["/data/big.bin"][16:16+2500] {
		t.Error("content mismatch")
	}
	if d.reads != 3 {
		t.Errorf("%d driver reads, want 3 chunks", d.reads)
	}

	n, err = f.ReadAt(buf, 3000)
	if err != io.EOF || n != 200 {
		t.Errorf("read at end: %d, %v", n, err)
	}
	if pos, _ := f.Seek(0, cdfs.SeekCur); pos != 0 {
		t.Errorf("position moved to %d", pos)
	}
}

func TestIOErrors(t *testing.T) {
	d := newMemDriver(testFiles)
	withDriver(t, d)

	_, err := cdfs.Open("/missing")
	var perr *fs.PathError
	if !errors.As(err, &perr) || !errors.Is(err, fs.ErrNotExist) || perr.Op != "open" {
		t.Errorf("open missing: unexpected error %v", err)
	}
	if _, err := cdfs.Open("/data"); !errors.Is(err, cdfs.ErrWrongMode) {
		t.Errorf("open directory as file: unexpected error %v", err)
	}
	if _, err := cdfs.OpenMode("/hello.txt", cdfs.Directory); !errors.Is(err, cdfs.ErrWrongMode) {
		t.Errorf("open file as directory: unexpected error %v", err)
	}
	d.fail = true
	if _, err := cdfs.Open("/hello.txt"); !errors.Is(err, cdfs.ErrIO) {
		t.Errorf("open: expected ErrIO, got %v", err)
	}
	d.fail = false

	f, err := cdfs.Open("/hello.txt")
	if err != nil {
		t.Fatal(err)
	}
	d.fail = true
	if _, err := f.ReadChunk(1); !errors.Is(err, cdfs.ErrIO) {
		t.Errorf("read: expected ErrIO, got %v", err)
	}
	if _, err := f.Size(); !errors.Is(err, cdfs.ErrIO) {
		t.Errorf("size: expected ErrIO, got %v", err)
	}
	if _, err := f.Seek(-1, cdfs.SeekSet); !errors.Is(err, cdfs.ErrIO) {
		t.Errorf("seek: expected ErrIO, got %v", err)
	}
}

func TestCloseTwice(t *testing.T) {
	withDriver(t, newMemDriver(testFiles))

	f, err := cdfs.Open("/hello.txt")
	if err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); !errors.Is(err, fs.ErrClosed) {
		t.Errorf("expected fs.ErrClosed, got %v", err)
	}
	if _, err := f.ReadChunk(1); !errors.Is(err, fs.ErrClosed) {
		t.Errorf("expected fs.ErrClosed, got %v", err)
	}
}

func TestReadDir(t *testing.T) {
	withDriver(t, newMemDriver(testFiles))

	ents, err := cdfs.ReadDir("/data/sub")
	if err != nil {
		t.Fatal(err)
	}
	if len(ents) != 2 {
		t.Fatalf("got %v", ents)
	}
	if err := cdfs.Chdir("/data"); err != nil {
		t.Error(err)
	}
}

type plainDriver struct{ cdfs.Driver }

func TestUnsupported(t *testing.T) {
	withDriver(t, plainDriver{newMemDriver(testFiles)})

	f, err := cdfs.Open("/hello.txt")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if _, err := f.ReadAt(make([]byte, 4), 0); !errors.Is(err, cdfs.ErrUnsupported) {
		t.Errorf("readat: expected ErrUnsupported, got %v", err)
	}
	if _, err := cdfs.ReadDir("/data"); !errors.Is(err, cdfs.ErrUnsupported) {
		t.Errorf("readdir: expected ErrUnsupported, got %v", err)
	}
	if err := cdfs.Chdir("/data"); !errors.Is(err, cdfs.ErrUnsupported) {
		t.Errorf("chdir: expected ErrUnsupported, got %v", err)
	}
	if err := cdfs.PlayTracks(1, 2, 0); !errors.Is(err, cdfs.ErrUnsupported) {
		t.Errorf("playtracks: expected ErrUnsupported, got %v", err)
	}
	if _, err := cdfs.ReadTOC(); !errors.Is(err, cdfs.ErrUnsupported) {
		t.Errorf("readtoc: expected ErrUnsupported, got %v", err)
	}
}

func TestDecodeTOC(t *testing.T) {
	var raw cdfs.RawTOC
	for i := range raw.Entry {
		raw.Entry[i] = 0xffffffff
	}
	raw.Entry[0] = 0x41<<24 | 150
	raw.Entry[1] = 0x01<<24 | 11700
	raw.First = 1 << 16
	raw.Last = 2 << 16
	raw.LeadOut = 0x01<<24 | 20000

	toc, err := raw.Decode()
	if err != nil {
		t.Fatal(err)
	}
	if len(toc.Tracks) != 2 || toc.LeadOut != 20000 {
		t.Fatalf("unexpected toc %+v", toc)
	}
	if tr := toc.Tracks[0]; !tr.Data() || tr.LBA != 150 || tr.Number != 1 || tr.ADR != 1 {
		t.Errorf("track 1: %+v", tr)
	}
	if tr := toc.Tracks[1]; tr.Data() || tr.LBA != 11700 {
		t.Errorf("track 2: %+v", tr)
	}

	raw.Last = 3 << 16
	if _, err := raw.Decode(); err == nil {
		t.Error("expected error for missing track")
	}
}
