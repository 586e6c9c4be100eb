package handlers

import (
	"github.com/ZiroWagner/TaskManager/internal/storage"
)

// uploads is the process-wide file store, wired at startup (and swapped for
// a temp-dir store in tests, the same way tests swap database.DB).
var uploads *storage.Store

// SetUploads wires the file store used by the upload and cleanup handlers.
func SetUploads(s *storage.Store) {
	uploads = s
}
