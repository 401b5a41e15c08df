// file: storage/media_store.go

package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"venue-review-api/logger"
	"venue-review-api/metrics"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// Owner selects the media subtree a file belongs to.
type Owner string

const (
	Users  Owner = "users"
	Venues Owner = "venues"
)

// ErrInvalidName is returned for file names that are empty or would leave the owner's directory.
var ErrInvalidName = errors.New("invalid media file name")

// ErrNotFound is returned when the requested file does not exist.
var ErrNotFound = fs.ErrNotExist

// MediaStore keeps uploaded photos under <root>/<owner>/<id>/<name>.
type MediaStore struct {
	fs   afero.Fs
	root string
}

// NewMediaStore creates a store on the given filesystem. Tests pass afero.NewMemMapFs().
func NewMediaStore(fsys afero.Fs, root string) (*MediaStore, error) {
	for _, owner := range []Owner{Users, Venues} {
		if err := fsys.MkdirAll(filepath.Join(root, string(owner)), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create media directory: %w", err)
		}
	}
	return &MediaStore{fs: fsys, root: root}, nil
}

// NewOSMediaStore creates a store on the local disk.
func NewOSMediaStore(root string) (*MediaStore, error) {
	return NewMediaStore(afero.NewOsFs(), root)
}

func (s *MediaStore) path(owner Owner, id int, name string) (string, error) {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) || path.Base(name) != name {
		return "", ErrInvalidName
	}
	return filepath.Join(s.root, string(owner), strconv.Itoa(id), name), nil
}

// Save writes data under name, replacing any existing file. The file is written
// to a temporary name first and renamed into place.
func (s *MediaStore) Save(owner Owner, id int, name string, data []byte) error {
	target, err := s.path(owner, id, name)
	if err != nil {
		return err
	}
	log := logger.Log.WithFields(logrus.Fields{
		"owner": owner,
		"id":    id,
		"name":  name,
		"bytes": len(data),
	})

	dir := filepath.Dir(target)
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		log.WithError(err).Error("Failed to create media directory")
		return err
	}

	tmp, err := afero.TempFile(s.fs, dir, ".upload-*.tmp")
	if err != nil {
		log.WithError(err).Error("Failed to create temporary media file")
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		_ = s.fs.Remove(tmpName)
		log.WithError(err).Error("Failed to write media file")
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = s.fs.Remove(tmpName)
		return err
	}
	if err := s.fs.Rename(tmpName, target); err != nil {
		_ = s.fs.Remove(tmpName)
		log.WithError(err).Error("Failed to move media file into place")
		return err
	}

	metrics.PhotosStored.WithLabelValues(string(owner)).Inc()
	log.Info("Media file stored")
	return nil
}

// Open returns the stored file. Missing files yield an error matching ErrNotFound.
func (s *MediaStore) Open(owner Owner, id int, name string) (afero.File, error) {
	target, err := s.path(owner, id, name)
	if err != nil {
		return nil, err
	}
	return s.fs.Open(target)
}

// Remove deletes the file. Removing a missing file is not an error.
func (s *MediaStore) Remove(owner Owner, id int, name string) error {
	target, err := s.path(owner, id, name)
	if err != nil {
		return err
	}
	if err := s.fs.Remove(target); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Log.WithError(err).WithField("path", target).Error("Failed to remove media file")
		return err
	}
	return nil
}
