// Package cdfs reads files from the GD-ROM drive.
//
// Files are read in chunks of at most ChunkSize bytes, which is the largest
// transfer the drive's support library accepts in one call. Larger requests
// are rejected with ErrReadTooLarge before the drive is accessed.
//
// On other targets the disc is an ISO9660 image, see ImageDriver.
package cdfs

import (
	"errors"
	"io"
	"io/fs"
)

// ChunkSize is the largest number of bytes a single read transfers.
const ChunkSize = 1024

// Mode selects how a path is opened.
type Mode int

const (
	ReadOnly  Mode = 0
	Directory Mode = 4
)

// Whence values for Seek, identical to the io package's.
const (
	SeekSet = io.SeekStart
	SeekCur = io.SeekCurrent
	SeekEnd = io.SeekEnd
)

var (
	ErrReadTooLarge = errors.New("cdfs: read exceeds chunk size")
	ErrIO           = errors.New("cdfs: i/o error")
	ErrUnsupported  = errors.New("cdfs: not supported by driver")
	ErrWrongMode    = errors.New("cdfs: file type doesn't match open mode")
)

// Results of Driver.Open that identify the failure. Any other negative result
// is reported as ErrIO.
const (
	OpenNotExist  = -2
	OpenWrongMode = -3
)

// Driver is implemented by the drive's support library. All methods report
// failure with a negative return value.
type Driver interface {
	Open(path string, mode Mode) (fd int)
	Read(fd int, p []byte) (n int)
	Seek(fd int, offset int64, whence int) (pos int64)
	FileSize(fd int) (size int64)
	Close(fd int) int
}

// Dirent is a directory entry as returned by a DirDriver.
type Dirent struct {
	Name string
	Size int64 // negative for directories
}

// DirDriver is implemented by drivers that can list directories.
type DirDriver interface {
	Driver
	// ReadDir returns the next entry of the directory opened as fd. It
	// returns false at the end of the directory.
	ReadDir(fd int) (Dirent, bool)
	Chdir(path string) int
}

// PreadDriver is implemented by drivers that can read at an offset without
// moving the file position.
type PreadDriver interface {
	Driver
	Pread(fd int, p []byte, offset int64) (n int)
}

var driver Driver = defaultDriver()

// SetDriver replaces the drive's driver and returns the previous one.
func SetDriver(d Driver) (old Driver) {
	old, driver = driver, d
	return old
}

// File is a file or directory opened on the disc. It's not safe for concurrent
// use, except for parallel ReadAt calls when the driver's Pread is.
type File struct {
	fd     int
	name   string
	mode   Mode
	closed bool
}

// Open opens the named file for reading.
func Open(name string) (*File, error) { return OpenMode(name, ReadOnly) }

// OpenMode opens the named file or, with mode Directory, directory.
func OpenMode(name string, mode Mode) (*File, error) {
	fd := driver.Open(name, mode)
	switch {
	case fd == OpenNotExist:
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	case fd == OpenWrongMode:
		return nil, &fs.PathError{Op: "open", Path: name, Err: ErrWrongMode}
	case fd < 0:
		return nil, &fs.PathError{Op: "open", Path: name, Err: ErrIO}
	}
	return &File{fd: fd, name: name, mode: mode}, nil
}

// Name returns the name the file was opened with.
func (f *File) Name() string { return f.name }

func (f *File) check(op string) error {
	if f.closed {
		return &fs.PathError{Op: op, Path: f.name, Err: fs.ErrClosed}
	}
	return nil
}

// ReadChunk reads up to n bytes into a new Chunk. It returns io.EOF at the end
// of the file. Requests for more than ChunkSize bytes fail with
// ErrReadTooLarge and don't access the drive.
func (f *File) ReadChunk(n int) (*Chunk, error) {
	if err := f.check("read"); err != nil {
		return nil, err
	}
	if n > ChunkSize {
		return nil, &fs.PathError{Op: "read", Path: f.name, Err: ErrReadTooLarge}
	}
	if n < 0 {
		return nil, &fs.PathError{Op: "read", Path: f.name, Err: fs.ErrInvalid}
	}
	c := &Chunk{}
	r := driver.Read(f.fd, c.buf[:n])
	switch {
	case r < 0:
		return nil, &fs.PathError{Op: "read", Path: f.name, Err: ErrIO}
	case r == 0 && n > 0:
		return nil, io.EOF
	}
	c.n = r
	return c, nil
}

// Read implements io.Reader. It transfers at most ChunkSize bytes per call.
func (f *File) Read(p []byte) (int, error) {
	if err := f.check("read"); err != nil {
		return 0, err
	}
	if len(p) == 0 {
		return 0, nil
	}
	if len(p) > ChunkSize {
		p = p[:ChunkSize]
	}
	r := driver.Read(f.fd, p)
	switch {
	case r < 0:
		return 0, &fs.PathError{Op: "read", Path: f.name, Err: ErrIO}
	case r == 0:
		return 0, io.EOF
	}
	return r, nil
}

// ReadAt implements io.ReaderAt. It reads in chunks of at most ChunkSize
// bytes and doesn't change the file position.
func (f *File) ReadAt(p []byte, off int64) (n int, err error) {
	if err := f.check("read"); err != nil {
		return 0, err
	}
	pd, ok := driver.(PreadDriver)
	if !ok {
		return 0, &fs.PathError{Op: "read", Path: f.name, Err: ErrUnsupported}
	}
	for n < len(p) {
		chunk := p[n:min(len(p), n+ChunkSize)]
		r := pd.Pread(f.fd, chunk, off+int64(n))
		if r < 0 {
			return n, &fs.PathError{Op: "read", Path: f.name, Err: ErrIO}
		}
		if r == 0 {
			return n, io.EOF
		}
		n += r
	}
	return n, nil
}

// Seek implements io.Seeker.
func (f *File) Seek(offset int64, whence int) (int64, error) {
	if err := f.check("seek"); err != nil {
		return 0, err
	}
	pos := driver.Seek(f.fd, offset, whence)
	if pos < 0 {
		return 0, &fs.PathError{Op: "seek", Path: f.name, Err: ErrIO}
	}
	return pos, nil
}

// Size returns the size of the file in bytes.
func (f *File) Size() (int64, error) {
	if err := f.check("size"); err != nil {
		return 0, err
	}
	size := driver.FileSize(f.fd)
	if size < 0 {
		return 0, &fs.PathError{Op: "size", Path: f.name, Err: ErrIO}
	}
	return size, nil
}

// ReadDir returns up to n entries of a directory opened with mode Directory,
// or all remaining entries if n <= 0. Like os.File.ReadDir it returns io.EOF
// once the directory is exhausted and n > 0.
func (f *File) ReadDir(n int) ([]Dirent, error) {
	if err := f.check("readdir"); err != nil {
		return nil, err
	}
	dd, ok := driver.(DirDriver)
	if !ok {
		return nil, &fs.PathError{Op: "readdir", Path: f.name, Err: ErrUnsupported}
	}
	var list []Dirent
	for n <= 0 || len(list) < n {
		d, ok := dd.ReadDir(f.fd)
		if !ok {
			break
		}
		list = append(list, d)
	}
	if n > 0 && len(list) == 0 {
		return nil, io.EOF
	}
	return list, nil
}

// Close releases the file. Closing twice returns an error wrapping
// fs.ErrClosed.
func (f *File) Close() error {
	if err := f.check("close"); err != nil {
		return err
	}
	f.closed = true
	if driver.Close(f.fd) < 0 {
		return &fs.PathError{Op: "close", Path: f.name, Err: ErrIO}
	}
	return nil
}

// ReadDir lists the named directory.
func ReadDir(name string) ([]Dirent, error) {
	f, err := OpenMode(name, Directory)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return f.ReadDir(-1)
}

// Chdir changes the directory relative paths are resolved against.
func Chdir(path string) error {
	dd, ok := driver.(DirDriver)
	if !ok {
		return &fs.PathError{Op: "chdir", Path: path, Err: ErrUnsupported}
	}
	if dd.Chdir(path) < 0 {
		return &fs.PathError{Op: "chdir", Path: path, Err: ErrIO}
	}
	return nil
}
