package services

import (
	"context"
	"strings"

	"github.com/kendall-kelly/shower-configurator-api/models"
	"github.com/kendall-kelly/shower-configurator-api/utils"
	"go.uber.org/zap"
)

// AddonInput is the payload for creating an addon. A missing model_id makes the addon global.
type AddonInput struct {
	Name    string  `json:"name" binding:"required"`
	Price   float64 `json:"price" binding:"gte=0"`
	ModelID *uint   `json:"model_id"`
}

// AddonPatch holds the fields of a partial addon update.
// A model_id of 0 detaches the addon from its model, making it global.
type AddonPatch struct {
	Name    *string  `json:"name"`
	Price   *float64 `json:"price" binding:"omitempty,gte=0"`
	ModelID *uint    `json:"model_id"`
}

// GalleryInput is the payload for creating a gallery image (JSON or multipart form)
type GalleryInput struct {
	ImagePath   string `json:"image_path" form:"image_path"`
	Description string `json:"description" form:"description"`
}

// GalleryPatch holds the fields of a partial gallery image update
type GalleryPatch struct {
	ImagePath   *string `json:"image_path" form:"image_path"`
	Description *string `json:"description" form:"description"`
}

// ListAddons returns all addons, or only those attached to modelID when it is set
func (s *CatalogService) ListAddons(ctx context.Context, modelID *uint) ([]models.Addon, error) {
	list := []models.Addon{}
	q := s.db.WithContext(ctx).Order("id ASC")
	if modelID != nil {
		q = q.Where("model_id = ?", *modelID)
	}
	if err := q.Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// GetAddon returns one addon
func (s *CatalogService) GetAddon(ctx context.Context, id uint) (*models.Addon, error) {
	return findByID[models.Addon](ctx, s.db, id, "addon")
}

// CreateAddon inserts an addon, global or attached to an existing model
func (s *CatalogService) CreateAddon(ctx context.Context, in AddonInput) (*models.Addon, error) {
	name, err := cleanName("addon", in.Name)
	if err != nil {
		return nil, err
	}
	if in.Price < 0 {
		return nil, validationError("price must not be negative")
	}

	modelID, err := s.resolveAddonModel(ctx, in.ModelID)
	if err != nil {
		return nil, err
	}

	addon := &models.Addon{Name: name, Price: in.Price, ModelID: modelID}
	if err := createRow(ctx, s.db, addon, "addon"); err != nil {
		return nil, err
	}
	return addon, nil
}

// UpdateAddon merges the non-nil patch fields into the stored addon
func (s *CatalogService) UpdateAddon(ctx context.Context, id uint, patch AddonPatch) (*models.Addon, error) {
	addon, err := findByID[models.Addon](ctx, s.db, id, "addon")
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		name, err := cleanName("addon", *patch.Name)
		if err != nil {
			return nil, err
		}
		addon.Name = name
	}
	if patch.Price != nil {
		if *patch.Price < 0 {
			return nil, validationError("price must not be negative")
		}
		addon.Price = *patch.Price
	}
	if patch.ModelID != nil {
		modelID, err := s.resolveAddonModel(ctx, patch.ModelID)
		if err != nil {
			return nil, err
		}
		addon.ModelID = modelID
	}

	if err := saveRow(ctx, s.db, addon, "addon"); err != nil {
		return nil, err
	}
	return addon, nil
}

// DeleteAddon removes an addon
func (s *CatalogService) DeleteAddon(ctx context.Context, id uint) error {
	return deleteByID[models.Addon](ctx, s.db, id, "addon")
}

func (s *CatalogService) resolveAddonModel(ctx context.Context, modelID *uint) (*uint, error) {
	if modelID == nil || *modelID == 0 {
		return nil, nil
	}
	if err := ensureExists[models.Model](ctx, s.db, *modelID, "model"); err != nil {
		return nil, err
	}
	id := *modelID
	return &id, nil
}

// ListGallery returns all gallery images
func (s *CatalogService) ListGallery(ctx context.Context) ([]models.GalleryImage, error) {
	return listAll[models.GalleryImage](ctx, s.db)
}

// CreateGalleryImage inserts a gallery image; the image path is required
func (s *CatalogService) CreateGalleryImage(ctx context.Context, in GalleryInput) (*models.GalleryImage, error) {
	path := strings.TrimSpace(in.ImagePath)
	if path == "" {
		return nil, validationError("image_path is required")
	}

	img := &models.GalleryImage{ImagePath: path, Description: in.Description}
	if err := createRow(ctx, s.db, img, "gallery image"); err != nil {
		return nil, err
	}
	return img, nil
}

// UpdateGalleryImage merges the non-nil patch fields into the stored gallery image
func (s *CatalogService) UpdateGalleryImage(ctx context.Context, id uint, patch GalleryPatch) (*models.GalleryImage, error) {
	img, err := findByID[models.GalleryImage](ctx, s.db, id, "gallery image")
	if err != nil {
		return nil, err
	}

	if patch.ImagePath != nil {
		path := strings.TrimSpace(*patch.ImagePath)
		if path == "" {
			return nil, validationError("image_path must not be empty")
		}
		img.ImagePath = path
	}
	if patch.Description != nil {
		img.Description = *patch.Description
	}

	if err := saveRow(ctx, s.db, img, "gallery image"); err != nil {
		return nil, err
	}
	return img, nil
}

// DeleteGalleryImage removes a gallery image record and its stored file, unless another
// catalog row still points at the same file
func (s *CatalogService) DeleteGalleryImage(ctx context.Context, id uint) error {
	img, err := findByID[models.GalleryImage](ctx, s.db, id, "gallery image")
	if err != nil {
		return err
	}
	if err := deleteByID[models.GalleryImage](ctx, s.db, id, "gallery image"); err != nil {
		return err
	}

	s.releaseImage(ctx, img.ImagePath)
	return nil
}

// releaseImage deletes an uploaded file once no gallery image, model or shower type references it
func (s *CatalogService) releaseImage(ctx context.Context, imagePath string) {
	images := GetImageService()
	if images == nil || utils.FilenameFromURL(imagePath) == "" {
		return
	}

	counts := []func() (int64, error){
		func() (int64, error) { return countWhere[models.GalleryImage](ctx, s.db, "image_path = ?", imagePath) },
		func() (int64, error) { return countWhere[models.Model](ctx, s.db, "image_path = ?", imagePath) },
		func() (int64, error) { return countWhere[models.ShowerType](ctx, s.db, "image_path = ?", imagePath) },
	}
	for _, count := range counts {
		n, err := count()
		if err != nil {
			zap.L().Warn("Failed to check image references", zap.String("image_path", imagePath), zap.Error(err))
			return
		}
		if n > 0 {
			return
		}
	}

	if err := images.DeleteImage(ctx, imagePath); err != nil {
		zap.L().Warn("Failed to delete gallery image file", zap.String("image_path", imagePath), zap.Error(err))
	}
}
