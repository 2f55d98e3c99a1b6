package cover

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

const (
	coverFile = "cover.jpg"
	thumbFile = "thumbnail.jpg"

	dirPerm  = 0o750
	filePerm = 0o640
)

// Storage persists derivative pairs on disk under a group-scoped path,
// <base>/groups/<id>/. Saving overwrites the previous pair.
type Storage struct {
	base string
}

// NewStorage creates a Storage rooted at the uploads base directory.
func NewStorage(base string) *Storage {
	return &Storage{base: base}
}

// Save writes both derivatives for the group, replacing earlier ones.
func (s *Storage) Save(groupID uint, coverImg, thumb []byte) error {
	dir := s.groupDir(groupID)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return errors.Wrap(err, "failed to create group storage directory")
	}

	if err := os.WriteFile(filepath.Join(dir, coverFile), coverImg, filePerm); err != nil {
		return errors.Wrap(err, "failed to write cover")
	}

	if err := os.WriteFile(filepath.Join(dir, thumbFile), thumb, filePerm); err != nil {
		return errors.Wrap(err, "failed to write thumbnail")
	}

	return nil
}

// CoverPath returns the on-disk location of the group's cover.
func (s *Storage) CoverPath(groupID uint) string {
	return filepath.Join(s.groupDir(groupID), coverFile)
}

// ThumbnailPath returns the on-disk location of the group's thumbnail.
func (s *Storage) ThumbnailPath(groupID uint) string {
	return filepath.Join(s.groupDir(groupID), thumbFile)
}

// HasCover reports whether derivatives exist for the group.
func (s *Storage) HasCover(groupID uint) bool {
	_, err := os.Stat(s.CoverPath(groupID))
	return err == nil
}

func (s *Storage) groupDir(groupID uint) string {
	return filepath.Join(s.base, "groups", fmt.Sprintf("%d", groupID))
}
