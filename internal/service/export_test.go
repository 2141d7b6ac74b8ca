package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"personapi/internal/repository"
	repoMocks "personapi/internal/repository/mocks"
	"personapi/internal/storage"
	storeMocks "personapi/internal/storage/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestExportService() (*exportService, *storeMocks.MockStorage, *repoMocks.MockTransactor, *repoMocks.MockPersonRepository) {
	mStore := new(storeMocks.MockStorage)
	mRepo := new(repoMocks.MockPersonRepository)
	mTx := &repoMocks.MockTransactor{Repo: mRepo}
	svc := NewExportService(mStore, mTx).(*exportService)
	svc.now = func() time.Time { return time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC) }
	return svc, mStore, mTx, mRepo
}

func isExportKey(key string) bool {
	return strings.HasPrefix(key, "exports/persons-") && strings.HasSuffix(key, ".json")
}

func TestExportService_ExportPersons(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		svc, mStore, mTx, mRepo := newTestExportService()
		mTx.On("RunInTx", ctx, repository.TxOptions{ReadOnly: true}).Return(nil)
		mRepo.On("FindAll", ctx).Return(repoMocks.Seq(nil, john, mosche, sarah))

		var uploaded []map[string]any
		mStore.On("Put", ctx, mock.MatchedBy(isExportKey), mock.Anything, mock.MatchedBy(func(opt storage.PutObjectOptions) bool {
			return opt.ContentType == "application/json" && opt.Metadata["record-count"] == "3" && opt.Size > 0
		})).Return(func(ctx context.Context, key string, r io.Reader, opt storage.PutObjectOptions) storage.ObjectInfo {
			body, _ := io.ReadAll(r)
			_ = json.Unmarshal(body, &uploaded)
			return storage.ObjectInfo{Key: key, Size: opt.Size}
		}, nil)
		mStore.On("PresignGet", ctx, mock.MatchedBy(isExportKey), 15*time.Minute).Return("https://minio/exports/x?sig", nil)

		res, err := svc.ExportPersons(ctx)

		require.NoError(t, err)
		assert.Equal(t, 3, res.Count)
		assert.True(t, isExportKey(res.Key))
		assert.Equal(t, "exports/"+res.Name, res.Key)
		assert.Equal(t, "https://minio/exports/x?sig", res.URL)
		assert.Equal(t, time.Date(2026, time.October, 19, 12, 15, 0, 0, time.UTC), res.ExpiresAt)
		require.Len(t, uploaded, 3)
		assert.Equal(t, "child", uploaded[1]["type"])
		assert.Equal(t, "Shalom", uploaded[1]["kindergarten"])
		mStore.AssertExpectations(t)
	})

	t.Run("read error", func(t *testing.T) {
		svc, mStore, mTx, mRepo := newTestExportService()
		mTx.On("RunInTx", ctx, repository.TxOptions{ReadOnly: true}).Return(nil)
		mRepo.On("FindAll", ctx).Return(repoMocks.Seq(errors.New("db fail")))

		_, err := svc.ExportPersons(ctx)

		assert.EqualError(t, err, "read persons: db fail")
		mStore.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("storage error", func(t *testing.T) {
		svc, mStore, mTx, mRepo := newTestExportService()
		mTx.On("RunInTx", ctx, repository.TxOptions{ReadOnly: true}).Return(nil)
		mRepo.On("FindAll", ctx).Return(repoMocks.Seq(nil))
		mStore.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).
			Return(storage.ObjectInfo{}, errors.New("storage fail"))

		_, err := svc.ExportPersons(ctx)

		assert.EqualError(t, err, "upload to storage: storage fail")
	})

	t.Run("presign error with successful rollback", func(t *testing.T) {
		svc, mStore, mTx, mRepo := newTestExportService()
		mTx.On("RunInTx", ctx, repository.TxOptions{ReadOnly: true}).Return(nil)
		mRepo.On("FindAll", ctx).Return(repoMocks.Seq(nil, john))
		mStore.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).
			Return(func(ctx context.Context, key string, r io.Reader, opt storage.PutObjectOptions) storage.ObjectInfo {
				return storage.ObjectInfo{Key: key}
			}, nil)
		mStore.On("PresignGet", ctx, mock.Anything, mock.Anything).Return("", errors.New("presign fail"))
		mStore.On("Delete", ctx, mock.MatchedBy(isExportKey)).Return(nil)

		_, err := svc.ExportPersons(ctx)

		assert.EqualError(t, err, "presign failed: presign fail")
		mStore.AssertExpectations(t)
	})

	t.Run("presign error with failed rollback", func(t *testing.T) {
		svc, mStore, mTx, mRepo := newTestExportService()
		mTx.On("RunInTx", ctx, repository.TxOptions{ReadOnly: true}).Return(nil)
		mRepo.On("FindAll", ctx).Return(repoMocks.Seq(nil, john))
		mStore.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).
			Return(func(ctx context.Context, key string, r io.Reader, opt storage.PutObjectOptions) storage.ObjectInfo {
				return storage.ObjectInfo{Key: key}
			}, nil)
		mStore.On("PresignGet", ctx, mock.Anything, mock.Anything).Return("", errors.New("presign fail"))
		mStore.On("Delete", ctx, mock.Anything).Return(errors.New("delete fail"))

		_, err := svc.ExportPersons(ctx)

		assert.ErrorContains(t, err, "rollback delete failed: delete fail")
	})
}

func TestExportService_OpenExport(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		exportName string
		setupMocks func(mStore *storeMocks.MockStorage)
		wantErr    error
	}{
		{
			name:       "happy path",
			exportName: "persons-1.json",
			setupMocks: func(mStore *storeMocks.MockStorage) {
				mStore.On("Get", ctx, "exports/persons-1.json").
					Return(io.NopCloser(strings.NewReader("[]")), storage.ObjectInfo{Key: "exports/persons-1.json", Size: 2}, nil)
			},
		},
		{
			name:       "path traversal",
			exportName: "../secrets.json",
			setupMocks: func(mStore *storeMocks.MockStorage) {},
			wantErr:    ErrInvalidExportName,
		},
		{
			name:       "not json",
			exportName: "persons-1.csv",
			setupMocks: func(mStore *storeMocks.MockStorage) {},
			wantErr:    ErrInvalidExportName,
		},
		{
			name:       "missing object",
			exportName: "persons-2.json",
			setupMocks: func(mStore *storeMocks.MockStorage) {
				mStore.On("Get", ctx, "exports/persons-2.json").Return(nil, storage.ObjectInfo{}, storage.ErrObjectNotFound)
			},
			wantErr: ErrExportNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mStore, _, _ := newTestExportService()
			tt.setupMocks(mStore)

			rc, info, err := svc.OpenExport(ctx, tt.exportName)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, rc)
			} else {
				require.NoError(t, err)
				defer rc.Close()
				body, _ := io.ReadAll(rc)
				assert.Equal(t, "[]", string(body))
				assert.Equal(t, int64(2), info.Size)
			}
			mStore.AssertExpectations(t)
		})
	}
}
