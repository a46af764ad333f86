package device_test

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/gevartrix/dshop-booking-backend/internal/device"
	"github.com/gevartrix/dshop-booking-backend/internal/device/mocks"
	"github.com/gevartrix/dshop-booking-backend/internal/pkg/storage"
)

// memStorage is an in-memory stand-in for the photo store.
type memStorage struct {
	mu    sync.Mutex
	files map[string][]byte
}

func newMemStorage() *memStorage {
	return &memStorage{files: make(map[string][]byte)}
}

func (s *memStorage) Save(_ context.Context, path string, content io.Reader) error {
	data, err := io.ReadAll(content)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[path] = data
	return nil
}

func (s *memStorage) Open(_ context.Context, path string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.files[path]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *memStorage) Remove(_ context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.files, path)
	return nil
}

type serviceDeps struct {
	repo  *mocks.MockRepository
	store *memStorage
	svc   device.Service
}

func newServiceDeps(t *testing.T) serviceDeps {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRepository(ctrl)
	store := newMemStorage()
	return serviceDeps{
		repo:  repo,
		store: store,
		svc:   device.NewService(repo, store),
	}
}

func TestServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("blank descriptive fields default to the placeholder", func(t *testing.T) {
		deps := newServiceDeps(t)

		deps.repo.EXPECT().Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, d *device.Device) error {
				d.ID = "dev-1"
				return nil
			})

		d, err := deps.svc.Create(ctx, device.CreateRequest{Name: "Raspberry Pi"})
		require.NoError(t, err)
		assert.Equal(t, "Raspberry Pi", d.Name)
		assert.Equal(t, device.NotSpecified, d.Category)
		assert.Equal(t, device.NotSpecified, d.Model)
		assert.Equal(t, device.NotSpecified, d.RAM)
		assert.Equal(t, device.NotSpecified, d.OS)
	})

	t.Run("name is mandatory", func(t *testing.T) {
		deps := newServiceDeps(t)

		_, err := deps.svc.Create(ctx, device.CreateRequest{Name: "   "})
		assert.ErrorIs(t, err, device.ErrNameRequired)
	})

	t.Run("duplicate name passes through", func(t *testing.T) {
		deps := newServiceDeps(t)

		deps.repo.EXPECT().Create(ctx, gomock.Any()).
			Return(device.ErrDuplicateName("Raspberry Pi"))

		_, err := deps.svc.Create(ctx, device.CreateRequest{Name: "Raspberry Pi"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Device 'Raspberry Pi' is already added.")
	})
}

func TestServiceCategoriesCache(t *testing.T) {
	ctx := context.Background()

	t.Run("repeat calls hit the cache", func(t *testing.T) {
		deps := newServiceDeps(t)

		deps.repo.EXPECT().ListCategories(ctx).
			Return([]string{"Laptop", "Single-board computer"}, nil).
			Times(1)

		for i := 0; i < 3; i++ {
			got, err := deps.svc.Categories(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"Laptop", "Single-board computer"}, got)
		}
	})

	t.Run("device churn invalidates the cache", func(t *testing.T) {
		deps := newServiceDeps(t)

		deps.repo.EXPECT().ListCategories(ctx).Return([]string{"Laptop"}, nil)
		_, err := deps.svc.Categories(ctx)
		require.NoError(t, err)

		deps.repo.EXPECT().Create(ctx, gomock.Any()).Return(nil)
		_, err = deps.svc.Create(ctx, device.CreateRequest{Name: "Raspberry Pi", Category: "Single-board computer"})
		require.NoError(t, err)

		deps.repo.EXPECT().ListCategories(ctx).
			Return([]string{"Laptop", "Single-board computer"}, nil)
		got, err := deps.svc.Categories(ctx)
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("no categories at all", func(t *testing.T) {
		deps := newServiceDeps(t)

		deps.repo.EXPECT().ListCategories(ctx).Return(nil, nil)

		_, err := deps.svc.Categories(ctx)
		assert.ErrorIs(t, err, device.ErrNoCategories)
	})
}

func TestServiceDeleteByName(t *testing.T) {
	ctx := context.Background()
	deps := newServiceDeps(t)

	photoPath := "devices/dev-1.jpg"
	require.NoError(t, deps.store.Save(ctx, photoPath, bytes.NewReader([]byte("jpeg bytes"))))

	deps.repo.EXPECT().DeleteByName(ctx, "Raspberry Pi").Return(&device.Device{
		ID:        "dev-1",
		Name:      "Raspberry Pi",
		PhotoPath: &photoPath,
	}, nil)

	d, err := deps.svc.DeleteByName(ctx, "Raspberry Pi")
	require.NoError(t, err)
	assert.Equal(t, "dev-1", d.ID)

	// The orphaned photo is cleaned up with the record.
	_, err = deps.store.Open(ctx, photoPath)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func testPNG(t *testing.T, width, height int) io.Reader {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, width, height))))
	return &buf
}

func TestServicePhotos(t *testing.T) {
	ctx := context.Background()

	t.Run("upload stores a bounded jpeg and records the path", func(t *testing.T) {
		deps := newServiceDeps(t)

		deps.repo.EXPECT().GetByName(ctx, "Raspberry Pi").
			Return(&device.Device{ID: "dev-1", Name: "Raspberry Pi"}, nil)
		deps.repo.EXPECT().SetPhotoPath(ctx, "dev-1", "devices/dev-1.jpg").Return(nil)

		d, err := deps.svc.SetPhoto(ctx, "Raspberry Pi", testPNG(t, 3000, 1500))
		require.NoError(t, err)
		require.NotNil(t, d.PhotoPath)
		assert.Equal(t, "devices/dev-1.jpg", *d.PhotoPath)

		stored, err := deps.store.Open(ctx, "devices/dev-1.jpg")
		require.NoError(t, err)
		defer stored.Close()

		img, err := jpeg.Decode(stored)
		require.NoError(t, err)
		bounds := img.Bounds()
		assert.LessOrEqual(t, bounds.Dx(), 1024)
		assert.LessOrEqual(t, bounds.Dy(), 1024)
	})

	t.Run("failed path update removes the stored file", func(t *testing.T) {
		deps := newServiceDeps(t)

		deps.repo.EXPECT().GetByName(ctx, "Raspberry Pi").
			Return(&device.Device{ID: "dev-1", Name: "Raspberry Pi"}, nil)
		deps.repo.EXPECT().SetPhotoPath(ctx, "dev-1", "devices/dev-1.jpg").
			Return(assert.AnError)

		_, err := deps.svc.SetPhoto(ctx, "Raspberry Pi", testPNG(t, 100, 100))
		require.Error(t, err)

		_, err = deps.store.Open(ctx, "devices/dev-1.jpg")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("fetching a photo that was never uploaded", func(t *testing.T) {
		deps := newServiceDeps(t)

		deps.repo.EXPECT().GetByName(ctx, "Raspberry Pi").
			Return(&device.Device{ID: "dev-1", Name: "Raspberry Pi"}, nil)

		_, err := deps.svc.Photo(ctx, "Raspberry Pi")
		assert.ErrorIs(t, err, device.ErrNoPhoto)
	})

	t.Run("garbage upload is rejected", func(t *testing.T) {
		deps := newServiceDeps(t)

		deps.repo.EXPECT().GetByName(ctx, "Raspberry Pi").
			Return(&device.Device{ID: "dev-1", Name: "Raspberry Pi"}, nil)

		_, err := deps.svc.SetPhoto(ctx, "Raspberry Pi", bytes.NewReader([]byte("not an image")))
		assert.Error(t, err)
	})
}
