package storage

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const avatarSize = 256

// SaveAvatar normalizes any raster image to a 256x256 center-cropped square,
// re-encodes it as JPEG under avatars/ with a random filename and returns the
// public URL. It never touches the caller's previous avatar; replacing the
// old file is the caller's job.
func (s *Store) SaveAvatar(r io.Reader) (string, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("decode avatar image: %w", err)
	}

	img = imaging.Fill(img, avatarSize, avatarSize, imaging.Center, imaging.Lanczos)

	filename := "avatar-" + uuid.NewString() + ".jpg"
	full := filepath.Join(s.root, avatarsDir, filename)
	if err := imaging.Save(img, full, imaging.JPEGQuality(85)); err != nil {
		return "", fmt.Errorf("write avatar: %w", err)
	}

	return URLPrefix + avatarsDir + "/" + filename, nil
}
