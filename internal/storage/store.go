package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/ZiroWagner/TaskManager/internal/models"

	"github.com/google/uuid"
)

// URLPrefix is the public prefix the API layer serves the uploads root under.
const URLPrefix = "/uploads/"

const (
	avatarsDir     = "avatars"
	attachmentsDir = "attachments"
)

// Store persists uploaded files under a local uploads root. Attachment paths
// are derived from sanitized owner names (see Sanitize); note that renaming a
// project or task does not move files already written under the old name.
type Store struct {
	root string
}

// New creates a Store rooted at dir and makes sure the avatars and
// attachments directories exist.
func New(dir string) (*Store, error) {
	for _, sub := range []string{avatarsDir, attachmentsDir} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0o755); err != nil {
			return nil, fmt.Errorf("create uploads dir %s: %w", sub, err)
		}
	}
	return &Store{root: dir}, nil
}

// Root returns the uploads root directory.
func (s *Store) Root() string {
	return s.root
}

// SavedFile describes a stored attachment.
type SavedFile struct {
	URL      string
	Type     models.AttachmentType
	Filename string
}

// SaveAttachment writes the file bytes verbatim under
// attachments/<sanitized segments...>/ with a uuid-prefixed filename, so
// repeated uploads of the same name never collide. Classification is IMAGE
// for image/* MIME types and FILE otherwise; images are not re-encoded here.
func (s *Store) SaveAttachment(data []byte, mimeType, originalName string, segments []string) (SavedFile, error) {
	kind := models.AttachmentFile
	if strings.HasPrefix(mimeType, "image/") {
		kind = models.AttachmentImage
	}

	parts := sanitizeAll(segments)
	dir := filepath.Join(append([]string{s.root, attachmentsDir}, parts...)...)
	// MkdirAll tolerates the directory already existing, including one
	// created concurrently by a sibling request.
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return SavedFile{}, fmt.Errorf("create attachment dir: %w", err)
	}

	filename := uuid.NewString() + "-" + originalName
	if err := os.WriteFile(filepath.Join(dir, filename), data, 0o644); err != nil {
		return SavedFile{}, fmt.Errorf("write attachment: %w", err)
	}

	// URLs use forward slashes regardless of OS
	url := URLPrefix + path.Join(append(append([]string{attachmentsDir}, parts...), filename)...)

	return SavedFile{
		URL:      url,
		Type:     kind,
		Filename: originalName,
	}, nil
}

// DeleteFile removes the single file behind a public URL. It is best-effort:
// a missing file is a silent no-op and any other failure is logged and
// swallowed, so callers never block a record deletion on storage cleanup.
func (s *Store) DeleteFile(fileURL string) {
	rel := strings.TrimPrefix(fileURL, URLPrefix)
	if rel == fileURL || rel == "" {
		log.Printf("storage: delete file: not an uploads URL: %q", fileURL)
		return
	}
	full := filepath.Join(s.root, filepath.FromSlash(rel))
	if err := os.Remove(full); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("storage: delete file %s: %v", fileURL, err)
	}
}

// DeleteFolder recursively removes the attachment directory for the given raw
// path segments. Same best-effort contract as DeleteFile: already-absent
// directories are a no-op and failures are logged and swallowed.
func (s *Store) DeleteFolder(segments []string) {
	parts := sanitizeAll(segments)
	dir := filepath.Join(append([]string{s.root, attachmentsDir}, parts...)...)
	if err := os.RemoveAll(dir); err != nil {
		log.Printf("storage: delete folder %s: %v", strings.Join(segments, "/"), err)
	}
}

func sanitizeAll(segments []string) []string {
	out := make([]string, 0, len(segments))
	for _, seg := range segments {
		out = append(out, Sanitize(seg))
	}
	return out
}
