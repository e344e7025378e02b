// Package filex handles transient files for uploaded payloads. A payload is
// spooled to a temp file for the duration of one upload request and removed
// exactly once when released.
package filex

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Payload is a short-lived reference to uploaded bytes spooled on disk.
// It is owned by the single request that created it.
type Payload struct {
	path    string
	size    int64
	release sync.Once
}

// Path returns the location of the spooled file.
func (p *Payload) Path() string {
	return p.path
}

// Size returns the number of bytes spooled.
func (p *Payload) Size() int64 {
	return p.size
}

// Release removes the backing file. It is safe to call more than once;
// only the first call has any effect.
func (p *Payload) Release() {
	p.release.Do(func() {
		_ = os.Remove(p.path)
	})
}

// Exists reports whether the backing file is still on disk.
func (p *Payload) Exists() bool {
	_, err := os.Stat(p.path)
	return err == nil
}

// Spool copies r into a new temp file in dir (os.TempDir if empty) and
// returns a Payload for it. On any error the partial file is removed.
func Spool(r io.Reader, dir string) (*Payload, error) {
	f, err := os.CreateTemp(dir, "upload-*.video")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}

	size, err := io.Copy(f, r)
	closeErr := f.Close()

	if err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(f.Name())
		return nil, fmt.Errorf("spool payload: %w", err)
	}

	return &Payload{path: f.Name(), size: size}, nil
}
