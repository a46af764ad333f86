package device

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/gevartrix/dshop-booking-backend/internal/pkg/storage"
)

// CreateRequest carries the admin-supplied device details. Blank descriptive
// fields default to NotSpecified.
type CreateRequest struct {
	Name     string
	Category string
	Model    string
	RAM      string
	OS       string
}

// Service defines business logic related to devices.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Device, error)
	GetByName(ctx context.Context, name string) (*Device, error)
	List(ctx context.Context, filter Filter) ([]*Device, error)
	DeleteByName(ctx context.Context, name string) (*Device, error)
	// Categories returns the distinct category strings across all devices.
	// Results are cached for a few minutes; device churn invalidates the
	// cache.
	Categories(ctx context.Context) ([]string, error)

	// SetPhoto stores a bounded JPEG rendition of the uploaded image and
	// attaches it to the device.
	SetPhoto(ctx context.Context, name string, content io.Reader) (*Device, error)
	// Photo streams the device's stored photo.
	Photo(ctx context.Context, name string) (io.ReadCloser, error)
}

const categoriesCacheKey = "device-categories"

type service struct {
	repo  Repository
	store storage.Storage
	cache *cache.Cache
}

// NewService creates a new device Service.
func NewService(repo Repository, store storage.Storage) Service {
	return &service{
		repo:  repo,
		store: store,
		cache: cache.New(5*time.Minute, 10*time.Minute),
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Device, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	d := &Device{
		Name:     name,
		Category: orNotSpecified(req.Category),
		Model:    orNotSpecified(req.Model),
		RAM:      orNotSpecified(req.RAM),
		OS:       orNotSpecified(req.OS),
	}

	if err := s.repo.Create(ctx, d); err != nil {
		return nil, err
	}

	s.cache.Delete(categoriesCacheKey)
	return d, nil
}

func (s *service) GetByName(ctx context.Context, name string) (*Device, error) {
	return s.repo.GetByName(ctx, name)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Device, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) DeleteByName(ctx context.Context, name string) (*Device, error) {
	d, err := s.repo.DeleteByName(ctx, name)
	if err != nil {
		return nil, err
	}

	s.cache.Delete(categoriesCacheKey)

	if d.PhotoPath != nil {
		// Best effort: the record is gone either way.
		_ = s.store.Remove(ctx, *d.PhotoPath)
	}
	return d, nil
}

func (s *service) Categories(ctx context.Context) ([]string, error) {
	if cached, ok := s.cache.Get(categoriesCacheKey); ok {
		if categories, ok := cached.([]string); ok {
			return categories, nil
		}
	}

	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	if len(categories) == 0 {
		return nil, ErrNoCategories
	}

	s.cache.Set(categoriesCacheKey, categories, cache.DefaultExpiration)
	return categories, nil
}

const (
	photoMaxWidth  = 1024
	photoMaxHeight = 1024
)

func (s *service) SetPhoto(ctx context.Context, name string, content io.Reader) (*Device, error) {
	d, err := s.repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}

	scaled, err := storage.FitJPEG(content, photoMaxWidth, photoMaxHeight)
	if err != nil {
		return nil, err
	}

	path := fmt.Sprintf("devices/%s.jpg", d.ID)
	if err := s.store.Save(ctx, path, scaled); err != nil {
		return nil, err
	}

	if err := s.repo.SetPhotoPath(ctx, d.ID, path); err != nil {
		// Keep storage consistent with the record.
		_ = s.store.Remove(ctx, path)
		return nil, err
	}

	d.PhotoPath = &path
	return d, nil
}

func (s *service) Photo(ctx context.Context, name string) (io.ReadCloser, error) {
	d, err := s.repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if d.PhotoPath == nil {
		return nil, ErrNoPhoto
	}
	return s.store.Open(ctx, *d.PhotoPath)
}

func orNotSpecified(value string) string {
	if strings.TrimSpace(value) == "" {
		return NotSpecified
	}
	return value
}
