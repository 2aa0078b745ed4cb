//go:build dreamcast

package cdfs

/*
#cgo LDFLAGS: -lronin
#include <stdlib.h>
#include <string.h>
#include <ronin/cdfs.h>

static int cdfs_readdir(DIR *dir, char *name, int len, int *size) {
	struct dirent *d = readdir(dir);
	if (d == NULL)
		return 0;
	strncpy(name, d->d_name, len-1);
	name[len-1] = '\0';
	*size = d->d_size;
	return 1;
}

static void cdfs_copytoc(unsigned int *dst) {
	memcpy(dst, cdfs_gettoc(), 102*sizeof(unsigned int));
}
*/
import "C"

import (
	"sync"
	"unsafe"
)

// nativeDriver calls into libronin. Directories are opened with opendir and
// tracked by their descriptor. libronin doesn't tell a missing file from other
// failures, so only a mismatched open mode gets its own result.
type nativeDriver struct{}

var (
	_ DirDriver   = nativeDriver{}
	_ DiscDriver  = nativeDriver{}
	_ AudioDriver = nativeDriver{}
	_ PreadDriver = nativeDriver{}
)

var dirs struct {
	sync.Mutex
	open map[int]*C.DIR
}

func defaultDriver() Driver { return nativeDriver{} }

func (nativeDriver) Open(path string, mode Mode) int {
	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))
	if mode&Directory == 0 {
		fd := int(C.open(cpath, C.int(mode)))
		if fd < 0 {
			if dir := C.opendir(cpath); dir != nil {
				C.closedir(dir)
				return OpenWrongMode
			}
			return -1
		}
		return fd
	}

	dir := C.opendir(cpath)
	if dir == nil {
		if fd := C.open(cpath, C.int(ReadOnly)); fd >= 0 {
			C.close(fd)
			return OpenWrongMode
		}
		return -1
	}
	fd := int(dir.dd_fd)
	dirs.Lock()
	if dirs.open == nil {
		dirs.open = make(map[int]*C.DIR)
	}
	dirs.open[fd] = dir
	dirs.Unlock()
	return fd
}

func (nativeDriver) Read(fd int, p []byte) int {
	if len(p) == 0 {
		return 0
	}
	return int(C.read(C.int(fd), unsafe.Pointer(&p[0]), C.uint(len(p))))
}

func (nativeDriver) Pread(fd int, p []byte, offset int64) int {
	if len(p) == 0 {
		return 0
	}
	return int(C.pread(C.int(fd), unsafe.Pointer(&p[0]), C.uint(len(p)), C.long(offset)))
}

func (nativeDriver) Seek(fd int, offset int64, whence int) int64 {
	return int64(C.lseek(C.int(fd), C.long(offset), C.int(whence)))
}

func (nativeDriver) FileSize(fd int) int64 { return int64(C.file_size(C.int(fd))) }

func (nativeDriver) Close(fd int) int {
	dirs.Lock()
	dir, ok := dirs.open[fd]
	delete(dirs.open, fd)
	dirs.Unlock()
	if ok {
		return int(C.closedir(dir))
	}
	return int(C.close(C.int(fd)))
}

func (nativeDriver) ReadDir(fd int) (Dirent, bool) {
	dirs.Lock()
	dir := dirs.open[fd]
	dirs.Unlock()
	if dir == nil {
		return Dirent{}, false
	}
	var name [256]C.char
	var size C.int
	if C.cdfs_readdir(dir, &name[0], C.int(len(name)), &size) == 0 {
		return Dirent{}, false
	}
	return Dirent{Name: C.GoString(&name[0]), Size: int64(size)}, true
}

func (nativeDriver) Chdir(path string) int {
	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))
	return int(C.chdir(cpath))
}

func (nativeDriver) Init() int   { C.cdfs_init(); return 0 }
func (nativeDriver) Reinit() int { C.cdfs_reinit(); return 0 }

func (nativeDriver) DiskChanges() int { return int(C.cdfs_diskchanges()) }

func (nativeDriver) VolumeID() (string, int) {
	var buf [33]C.char
	rc := int(C.cdfs_get_volume_id((*C.uchar)(unsafe.Pointer(&buf[0])), C.uint(len(buf)-1)))
	return C.GoString(&buf[0]), rc
}

func (nativeDriver) ReadTOC(toc *RawTOC) int {
	C.cdfs_copytoc((*C.uint)(unsafe.Pointer(toc)))
	return 0
}

func (nativeDriver) PlayTracks(first, last, loops int) int {
	return int(C.play_cdda_tracks(C.int(first), C.int(last), C.int(loops)))
}

func (nativeDriver) PlaySectors(start, end, loops int) int {
	return int(C.play_cdda_sectors(C.int(start), C.int(end), C.int(loops)))
}

func (nativeDriver) StopAudio() int { C.stop_cdda(); return 0 }
