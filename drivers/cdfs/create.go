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
	"unicode"

	diskfs "github.com/diskfs/go-diskfs"
	"github.com/diskfs/go-diskfs/disk"
	"github.com/diskfs/go-diskfs/filesystem"
	"github.com/diskfs/go-diskfs/filesystem/iso9660"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldChain strips diacritics and uppercases, "Café.txt" becomes "CAFE.TXT".
func foldChain() transform.Transformer {
	return transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		norm.NFC,
		cases.Upper(language.Und),
		runes.Map(func(r rune) rune {
			switch {
			case r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '_':
				return r
			}
			return '_'
		}),
	)
}

// FoldName maps a file name to the character set of ISO9660 file identifiers.
// Characters outside of it are replaced by an underscore.
func FoldName(name string) string {
	folded, _, err := transform.String(foldChain(), name)
	if err != nil {
		return name
	}
	return folded
}

// CreateImage writes an ISO9660 image with all files of src to dst. File names
// are folded with FoldName. An existing dst is replaced.
func CreateImage(dst, label string, src fs.FS) error {
	var size int64
	var dirs, files []string
	err := fs.WalkDir(src, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil || p == "." {
			return err
		}
		if d.IsDir() {
			dirs = append(dirs, p)
			size += sectorSize
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		files = append(files, p)
		size += (info.Size()/sectorSize + 2) * sectorSize
		return nil
	})
	if err != nil {
		return err
	}

	if err := os.Remove(dst); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	// Leave room for the volume descriptors and path tables
	size += 1 << 20
	size = (size + sectorSize - 1) / sectorSize * sectorSize
	img, err := diskfs.Create(dst, size, diskfs.Raw, diskfs.SectorSizeDefault)
	if err != nil {
		return err
	}
	img.LogicalBlocksize = sectorSize
	fsys, err := img.CreateFilesystem(disk.FilesystemSpec{
		Partition:   0,
		FSType:      filesystem.TypeISO9660,
		VolumeLabel: label,
	})
	if err != nil {
		return err
	}

	isoPath := func(p string) string {
		elems := strings.Split(p, "/")
		for i := range elems {
			elems[i] = FoldName(elems[i])
		}
		return "/" + strings.Join(elems, "/")
	}
	for _, dir := range dirs {
		if err := fsys.Mkdir(isoPath(dir)); err != nil {
			return fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	for _, name := range files {
		if err := copyFile(fsys, isoPath(name), src, name); err != nil {
			return err
		}
	}

	iso, ok := fsys.(*iso9660.FileSystem)
	if !ok {
		return fmt.Errorf("cdfs: unexpected filesystem %T", fsys)
	}
	return iso.Finalize(iso9660.FinalizeOptions{VolumeIdentifier: label})
}

func copyFile(fsys filesystem.FileSystem, dst string, src fs.FS, name string) error {
	r, err := src.Open(name)
	if err != nil {
		return err
	}
	defer r.Close()
	w, err := fsys.OpenFile(dst, os.O_CREATE|os.O_RDWR)
	if err != nil {
		return fmt.Errorf("create %s: %w", path.Base(dst), err)
	}
	defer w.Close()
	_, err = io.Copy(w, r)
	return err
}
