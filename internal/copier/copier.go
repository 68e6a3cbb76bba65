// Package copier copies one file onto a fixed destination name.
//
// The destination is written in place: there is no temporary file and no
// rename, so a reader of the destination can see a partially written file
// while a copy is running.
package copier

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/crypto/blake2b"
)

// Result describes a finished copy.
type Result struct {
	Source      string
	Destination string
	Bytes       int64
	Checksum    [32]byte
}

// Copy reads sourcePath in full and writes it to destinationFolder/targetFileName,
// replacing any existing file. destinationFolder must already exist.
func Copy(sourcePath, destinationFolder, targetFileName string) (Result, error) {
	res := Result{
		Source:      sourcePath,
		Destination: filepath.Join(destinationFolder, targetFileName),
	}

	info, err := os.Stat(sourcePath)
	if err != nil {
		return res, fmt.Errorf("%w: %v", ErrSourceUnreadable, err)
	}
	if !info.Mode().IsRegular() {
		return res, fmt.Errorf("%w: %s", ErrNotRegularFile, sourcePath)
	}

	// truncating the destination would wipe the source before it is read
	if dstInfo, err := os.Stat(res.Destination); err == nil && os.SameFile(info, dstInfo) {
		return res, fmt.Errorf("%w: %s", ErrSameFile, sourcePath)
	}

	src, err := os.Open(sourcePath)
	if err != nil {
		return res, fmt.Errorf("%w: %v", ErrSourceUnreadable, err)
	}
	defer src.Close()

	dst, err := os.OpenFile(res.Destination, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return res, fmt.Errorf("%w: %v", ErrDestinationUnwritable, err)
	}

	hasher, err := blake2b.New256(nil)
	if err != nil {
		dst.Close()
		return res, fmt.Errorf("failed to create hasher: %w", err)
	}

	n, err := io.Copy(io.MultiWriter(dst, hasher), src)
	res.Bytes = n
	if err != nil {
		dst.Close()
		return res, fmt.Errorf("copy %s to %s: %w", sourcePath, res.Destination, err)
	}

	if err := dst.Close(); err != nil {
		return res, fmt.Errorf("%w: %v", ErrDestinationUnwritable, err)
	}

	copy(res.Checksum[:], hasher.Sum(nil))

	return res, nil
}
