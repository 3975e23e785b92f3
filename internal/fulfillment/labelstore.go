package fulfillment

import (
	"fmt"
	"os"
	"path/filepath"
)

// labelExt is the extension of stored label documents.
const labelExt = ".html"

// DirLabelStore stores label documents under a single directory, one file
// per tracking number. Writes replace any existing file with the same key,
// so writing the same label twice leaves exactly one artifact. The directory
// is append-only otherwise; uniqueness of keys is the carrier's guarantee,
// no local locking is performed.
type DirLabelStore struct {
	dir string
}

var _ LabelStore = (*DirLabelStore)(nil)

// NewDirLabelStore creates the directory if needed and returns a store
// rooted at it.
func NewDirLabelStore(dir string) (*DirLabelStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: create labels dir %q: %v", ErrArtifactWriteFailed, dir, err)
	}
	return &DirLabelStore{dir: dir}, nil
}

// Path returns the file path a tracking number maps to. Deterministic:
// the same tracking number always yields the same path.
func (s *DirLabelStore) Path(trackingNumber string) string {
	return filepath.Join(s.dir, trackingNumber+labelExt)
}

// Write persists the label document exactly as returned by the Shipping
// service, byte for byte.
func (s *DirLabelStore) Write(trackingNumber, html string) error {
	path := s.Path(trackingNumber)
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		return fmt.Errorf("%w: write %q: %v", ErrArtifactWriteFailed, path, err)
	}
	return nil
}
