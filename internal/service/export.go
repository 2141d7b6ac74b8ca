package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"strconv"
	"time"

	"github.com/google/uuid"

	"personapi/internal/dto"
	"personapi/internal/model"
	"personapi/internal/repository"
	"personapi/internal/storage"
)

const (
	exportPrefix = "exports"
	exportExpiry = 15 * time.Minute
)

var (
	ErrExportNotFound    = errors.New("export not found")
	ErrInvalidExportName = errors.New("invalid export name")
)

// ExportResult describes a snapshot written to object storage.
type ExportResult struct {
	Name      string    `json:"name"`
	Key       string    `json:"key"`
	Count     int       `json:"count"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ExportService writes and reads JSON snapshots of every stored person.
type ExportService interface {
	// ExportPersons uploads all persons as a JSON array of transfer objects
	// and returns a presigned download URL. The object is removed again if
	// the URL cannot be issued.
	ExportPersons(ctx context.Context) (*ExportResult, error)

	// OpenExport streams a snapshot previously written by ExportPersons.
	OpenExport(ctx context.Context, name string) (io.ReadCloser, storage.ObjectInfo, error)
}

type exportService struct {
	store storage.Storage
	tx    repository.Transactor
	now   func() time.Time
}

// NewExportService constructs a new ExportService.
func NewExportService(store storage.Storage, tx repository.Transactor) ExportService {
	return &exportService{store: store, tx: tx, now: time.Now}
}

func (s *exportService) ExportPersons(ctx context.Context) (*ExportResult, error) {
	var persons []model.Person
	err := s.tx.RunInTx(ctx, readOnly, func(repo repository.PersonRepository) error {
		var err error
		persons, err = repository.Collect(repo.FindAll(ctx))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("read persons: %w", err)
	}

	items := make([]dto.Transfer, 0, len(persons))
	for _, p := range persons {
		items = append(items, dto.FromEntity(p))
	}
	body, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}

	name := "persons-" + uuid.New().String() + ".json"
	key := path.Join(exportPrefix, name)

	objInfo, err := s.store.Put(ctx, key, bytes.NewReader(body), storage.PutObjectOptions{
		Size:        int64(len(body)),
		ContentType: "application/json",
		Metadata: map[string]string{
			"record-count": strconv.Itoa(len(items)),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	url, err := s.store.PresignGet(ctx, objInfo.Key, exportExpiry)
	if err != nil {
		// Rollback: an export nobody can download is removed
		if delErr := s.store.Delete(ctx, objInfo.Key); delErr != nil {
			return nil, fmt.Errorf("presign failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("presign failed: %w", err)
	}

	return &ExportResult{
		Name:      name,
		Key:       objInfo.Key,
		Count:     len(items),
		URL:       url,
		ExpiresAt: s.now().Add(exportExpiry).UTC(),
	}, nil
}

func (s *exportService) OpenExport(ctx context.Context, name string) (io.ReadCloser, storage.ObjectInfo, error) {
	if name == "" || name != path.Base(name) || path.Ext(name) != ".json" {
		return nil, storage.ObjectInfo{}, ErrInvalidExportName
	}
	rc, info, err := s.store.Get(ctx, path.Join(exportPrefix, name))
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, storage.ObjectInfo{}, ErrExportNotFound
		}
		return nil, storage.ObjectInfo{}, err
	}
	return rc, info, nil
}
