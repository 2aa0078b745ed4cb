package cdfs

import (
	"errors"
	"io"
	"io/fs"
	"path"
	"slices"
	"strings"
	"time"
)

// FS exposes the disc, or a directory on it, as an fs.FS.
type FS struct {
	root string
}

var (
	_ fs.FS         = FS{}
	_ fs.ReadDirFS  = FS{}
	_ fs.ReadFileFS = FS{}
	_ fs.StatFS     = FS{}
)

// Sub returns an FS rooted at dir, an absolute path on the disc.
func Sub(dir string) FS { return FS{root: path.Clean("/" + dir)} }

// Root is the root directory of the disc.
var Root = Sub("/")

func (f FS) path(op, name string) (string, error) {
	if !fs.ValidPath(name) {
		return "", &fs.PathError{Op: op, Path: name, Err: fs.ErrInvalid}
	}
	return path.Join(f.root, name), nil
}

// rename reports a driver error against the name passed to the FS.
func rename(err error, name string) error {
	var perr *fs.PathError
	if errors.As(err, &perr) {
		return &fs.PathError{Op: perr.Op, Path: name, Err: perr.Err}
	}
	return err
}

// Open implements fs.FS. Directories are listed completely on open.
func (f FS) Open(name string) (fs.File, error) {
	p, err := f.path("open", name)
	if err != nil {
		return nil, err
	}
	file, err := Open(p)
	if err == nil {
		size, err := file.Size()
		if err != nil {
			file.Close()
			return nil, err
		}
		return &openFile{file, &fileInfo{name: path.Base(name), size: size}}, nil
	}
	if !errors.Is(err, ErrWrongMode) {
		return nil, rename(err, name)
	}

	dir, err := OpenMode(p, Directory)
	if err != nil {
		return nil, rename(err, name)
	}
	defer dir.Close()
	ents, err := dir.ReadDir(-1)
	if err != nil {
		return nil, err
	}
	d := &openDir{f: &fileInfo{name: path.Base(name), size: -1}}
	for _, e := range ents {
		if e.Name == "." || e.Name == ".." {
			continue
		}
		d.files = append(d.files, fileInfo{name: e.Name, size: e.Size})
	}
	slices.SortFunc(d.files, func(a, b fileInfo) int { return strings.Compare(a.name, b.name) })
	return d, nil
}

// ReadFile implements fs.ReadFileFS.
func (f FS) ReadFile(name string) ([]byte, error) {
	file, err := f.Open(name)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	info, err := file.Stat()
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, &fs.PathError{Op: "read", Path: name, Err: errors.New("is a directory")}
	}
	buf := make([]byte, info.Size())
	_, err = io.ReadFull(file, buf)
	return buf, err
}

// ReadDir implements fs.ReadDirFS.
func (f FS) ReadDir(name string) ([]fs.DirEntry, error) {
	file, err := f.Open(name)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	dir, ok := file.(*openDir)
	if !ok {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: errors.New("not a directory")}
	}
	return dir.ReadDir(-1)
}

// Stat implements fs.StatFS.
func (f FS) Stat(name string) (fs.FileInfo, error) {
	file, err := f.Open(name)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return file.Stat()
}

// fileInfo describes a file or directory, directories have a negative size.
type fileInfo struct {
	name string
	size int64
}

var (
	_ fs.FileInfo = (*fileInfo)(nil)
	_ fs.DirEntry = (*fileInfo)(nil)
)

func (f *fileInfo) Name() string               { return f.name }
func (f *fileInfo) ModTime() time.Time         { return time.Time{} }
func (f *fileInfo) IsDir() bool                { return f.size < 0 }
func (f *fileInfo) Sys() any                   { return nil }
func (f *fileInfo) Type() fs.FileMode          { return f.Mode().Type() }
func (f *fileInfo) Info() (fs.FileInfo, error) { return f, nil }

func (f *fileInfo) Size() int64 {
	if f.size < 0 {
		return 0
	}
	return f.size
}

func (f *fileInfo) Mode() fs.FileMode {
	if f.IsDir() {
		return fs.ModeDir | 0555
	}
	return 0444
}

func (f *fileInfo) String() string {
	return fs.FormatFileInfo(f)
}

// An openFile is a regular file open for reading.
type openFile struct {
	*File
	info *fileInfo
}

func (f *openFile) Stat() (fs.FileInfo, error) { return f.info, nil }

// An openDir is a directory open for reading.
type openDir struct {
	f      *fileInfo  // the directory itself
	files  []fileInfo // the directory contents
	offset int        // the read offset, an index into the files slice
}

func (d *openDir) Close() error               { return nil }
func (d *openDir) Stat() (fs.FileInfo, error) { return d.f, nil }

func (d *openDir) Read([]byte) (int, error) {
	return 0, &fs.PathError{Op: "read", Path: d.f.name, Err: errors.New("is a directory")}
}

func (d *openDir) ReadDir(count int) ([]fs.DirEntry, error) {
	n := len(d.files) - d.offset
	if n == 0 {
		if count <= 0 {
			return nil, nil
		}
		return nil, io.EOF
	}
	if count > 0 && n > count {
		n = count
	}
	list := make([]fs.DirEntry, n)
	for i := range list {
		list[i] = &d.files[d.offset+i]
	}
	d.offset += n
	return list, nil
}
