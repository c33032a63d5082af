// Package fileutil holds the copy primitives used when placing media files.
package fileutil

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"io"
	"os"
)

// CopyFile copies src to dst with 0o644 permissions.
func CopyFile(src, dst string) error {
	return CopyFileMode(src, dst, 0o644)
}

// CopyFileMode copies src to dst, creating or truncating dst with mode.
func CopyFileMode(src, dst string, mode os.FileMode) error {
	_, err := copyContents(src, dst, mode, nil)
	return err
}

// CopyFileVerified copies src to dst and then re-reads dst, comparing its
// size and SHA256 against what was read from the source. A mismatch removes
// dst before returning the error.
func CopyFileVerified(src, dst string) error {
	want := sha256.New()
	written, err := copyContents(src, dst, 0o644, want)
	if err != nil {
		return err
	}

	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}
	if written != info.Size() {
		os.Remove(dst)
		return fmt.Errorf("verify %s: wrote %d bytes, source has %d", dst, written, info.Size())
	}

	got, err := hashFile(dst)
	if err != nil {
		os.Remove(dst)
		return fmt.Errorf("verify %s: %w", dst, err)
	}
	if !bytes.Equal(got, want.Sum(nil)) {
		os.Remove(dst)
		return fmt.Errorf("verify %s: checksum mismatch", dst)
	}
	return nil
}

// copyContents streams src into dst. When hasher is non-nil the source bytes
// are fed through it as they are read.
func copyContents(src, dst string, mode os.FileMode, hasher io.Writer) (int64, error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return 0, err
	}

	var reader io.Reader = in
	if hasher != nil {
		reader = io.TeeReader(in, hasher)
	}

	written, err := io.Copy(out, reader)
	if err != nil {
		out.Close()
		return written, err
	}
	return written, out.Close()
}

func hashFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return nil, err
	}
	return h.Sum(nil), nil
}
