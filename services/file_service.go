package services

import (
	"errors"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/bako110/Sonaby/config"
	"github.com/bako110/Sonaby/internal/error/code"
	"github.com/bako110/Sonaby/models"
	"github.com/bako110/Sonaby/store"
)

// InterfaceFileService owns uploaded documents
type InterfaceFileService interface {
	Upload(header *multipart.FileHeader, uploadedBy uint) (*models.File, error)
	GetByID(id uint) (*models.File, error)
	Delete(id uint) error
	List(search string, p models.PaginationQuery) ([]models.File, int64, error)
}

// FileService stores uploaded bytes on disk under the upload directory
// and their metadata in the files table.
type FileService struct {
	store     store.Store
	uploadDir string
	maxBytes  int64
}

// NewFileService creates a new file service
func NewFileService(s store.Store, cfg *config.Config) InterfaceFileService {
	return &FileService{
		store:     s,
		uploadDir: cfg.UploadDir,
		maxBytes:  int64(cfg.MaxUploadSizeMB) << 20,
	}
}

var allowedMimePrefixes = []string{"image/", "application/pdf"}

func mimeAllowed(mimeType string) bool {
	for _, prefix := range allowedMimePrefixes {
		if strings.HasPrefix(mimeType, prefix) {
			return true
		}
	}
	return false
}

// Upload stores the file on disk under a uuid name and records its
// metadata. The original name is kept only as metadata.
func (s *FileService) Upload(header *multipart.FileHeader, uploadedBy uint) (*models.File, error) {
	if header.Size > s.maxBytes {
		return nil, code.Validation("file exceeds the %d byte limit", s.maxBytes)
	}
	mimeType := header.Header.Get("Content-Type")
	if !mimeAllowed(mimeType) {
		return nil, code.Validation("unsupported file type %q", mimeType)
	}

	if err := os.MkdirAll(s.uploadDir, 0755); err != nil {
		return nil, code.Internal(err)
	}

	storedName := uuid.NewString() + strings.ToLower(filepath.Ext(header.Filename))
	path := filepath.Join(s.uploadDir, storedName)

	src, err := header.Open()
	if err != nil {
		return nil, code.Internal(err)
	}
	defer src.Close()

	dst, err := os.Create(path)
	if err != nil {
		return nil, code.Internal(err)
	}
	defer dst.Close()

	written, err := io.Copy(dst, src)
	if err != nil {
		os.Remove(path)
		return nil, code.Internal(err)
	}

	file := &models.File{
		OriginalName: filepath.Base(header.Filename),
		StoredName:   storedName,
		MimeType:     mimeType,
		Size:         written,
		Path:         path,
		UploadedBy:   uploadedBy,
	}
	if err := s.store.Files().Create(file); err != nil {
		os.Remove(path)
		return nil, code.Internal(err)
	}
	return file, nil
}

// GetByID returns file metadata
func (s *FileService) GetByID(id uint) (*models.File, error) {
	file, err := s.store.Files().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, code.NotFound("file %d not found", id)
		}
		return nil, code.Internal(err)
	}
	return file, nil
}

// Delete removes the metadata row and the bytes on disk. A missing
// disk file is logged, not fatal: the row is the source of truth.
func (s *FileService) Delete(id uint) error {
	file, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if err := s.store.Files().Delete(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return code.NotFound("file %d not found", id)
		}
		return code.Internal(err)
	}
	if err := os.Remove(file.Path); err != nil && !os.IsNotExist(err) {
		config.Warning("could not remove %s from disk: %v", file.Path, err)
	}
	return nil
}

// List pages through uploaded files
func (s *FileService) List(search string, p models.PaginationQuery) ([]models.File, int64, error) {
	p.Normalize()
	files, total, err := s.store.Files().List(search, p)
	if err != nil {
		return nil, 0, code.Internal(err)
	}
	return files, total, nil
}
