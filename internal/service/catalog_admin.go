package service

import (
	"context"
	"strings"

	"github.com/dukerupert/vitrina/internal/cache"
	"github.com/dukerupert/vitrina/internal/domain"
	"github.com/dukerupert/vitrina/internal/repository"
	"github.com/dukerupert/vitrina/internal/storage"
	"github.com/shopspring/decimal"
)

// ProductInput creates a product.
type ProductInput struct {
	CategoryID        int64           `json:"category" validate:"required,gt=0"`
	BrandID           *int64          `json:"brand" validate:"omitempty,gt=0"`
	Title             string          `json:"title" validate:"required,max=255"`
	Slug              string          `json:"slug" validate:"required,max=255,slug"`
	ShortDescription  string          `json:"shortDescription" validate:"max=512"`
	Description       string          `json:"description" validate:"max=4000"`
	FullDescription   string          `json:"fullDescription"`
	Price             decimal.Decimal `json:"price"`
	QuantityAvailable int32           `json:"count" validate:"gte=0"`
	FreeDelivery      bool            `json:"freeDelivery"`
	Limited           bool            `json:"limited"`
	SortIndex         int32           `json:"sortIndex"`
}

// ImageInput attaches a stored media key to a product.
type ImageInput struct {
	Key string `json:"key" validate:"required,max=512"`
	Alt string `json:"alt" validate:"max=255"`
}

// FeatureValueInput sets one specification of a product.
type FeatureValueInput struct {
	FeatureID int64  `json:"featureId" validate:"required,gt=0"`
	Value     string `json:"value" validate:"required,max=255"`
}

// CatalogAdminService covers staff writes to the catalog. Every write
// invalidates the cached listings it can affect.
type CatalogAdminService interface {
	CreateProduct(ctx context.Context, in ProductInput) (*domain.ProductDetail, error)
	AddImage(ctx context.Context, productID int64, in ImageInput) (*domain.Image, error)
	SetFeatureValue(ctx context.Context, productID int64, in FeatureValueInput) (*domain.Specification, error)
}

type catalogAdminService struct {
	store repository.Store
	media storage.Resolver
	cache cache.Cache
}

func NewCatalogAdminService(store repository.Store, media storage.Resolver, c cache.Cache) CatalogAdminService {
	if c == nil {
		c = cache.Noop{}
	}
	return &catalogAdminService{store: store, media: media, cache: c}
}

func (s *catalogAdminService) CreateProduct(ctx context.Context, in ProductInput) (*domain.ProductDetail, error) {
	const op = "catalog_admin.create_product"

	in.Title = strings.TrimSpace(in.Title)
	in.Slug = strings.TrimSpace(in.Slug)
	err := validateStruct(op, in)
	if err != nil && !domain.IsValidationError(err) {
		return nil, err
	}
	if in.Price.IsNegative() {
		err = domain.AddFieldError(err, "price", "must be greater than or equal to 0")
	}
	if err != nil {
		return nil, err
	}

	if _, err := s.store.GetCategory(ctx, in.CategoryID); err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrCategoryNotFound
		}
		return nil, domain.Internal(err, op, "failed to load category")
	}

	var brand *domain.Brand
	if in.BrandID != nil {
		b, err := s.store.GetBrand(ctx, *in.BrandID)
		if err != nil {
			if repository.IsNotFound(err) {
				return nil, ErrBrandNotFound
			}
			return nil, domain.Internal(err, op, "failed to load brand")
		}
		brand = &domain.Brand{ID: b.ID, Name: b.Name}
	}

	p, err := s.store.CreateProduct(ctx, repository.CreateProductParams{
		CategoryID:        in.CategoryID,
		BrandID:           repository.Int8(in.BrandID),
		Title:             in.Title,
		Slug:              in.Slug,
		ShortDescription:  in.ShortDescription,
		Description:       in.Description,
		FullDescription:   in.FullDescription,
		Price:             in.Price,
		QuantityAvailable: in.QuantityAvailable,
		FreeDelivery:      in.FreeDelivery,
		IsLimited:         in.Limited,
		SortIndex:         in.SortIndex,
	})
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrSlugTaken
		}
		return nil, domain.Internal(err, op, "failed to create product")
	}

	s.invalidate(ctx)

	return &domain.ProductDetail{
		ID:              p.ID,
		Category:        p.CategoryID,
		Brand:           brand,
		Price:           p.Price,
		Count:           p.QuantityAvailable,
		Date:            p.CreatedAt,
		Title:           p.Title,
		Slug:            p.Slug,
		Description:     p.ShortDescription,
		FullDescription: p.FullDescription,
		FreeDelivery:    p.FreeDelivery,
		Limited:         p.IsLimited,
		Images:          []domain.Image{},
		Tags:            []domain.Tag{},
		Specifications:  []domain.Specification{},
		Reviews:         []domain.Review{},
	}, nil
}

// AddImage resolves the key to a URL once and stores the URL.
func (s *catalogAdminService) AddImage(ctx context.Context, productID int64, in ImageInput) (*domain.Image, error) {
	const op = "catalog_admin.add_image"

	if err := validateStruct(op, in); err != nil {
		return nil, err
	}

	p, err := s.store.GetProductByID(ctx, productID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrProductNotFound
		}
		return nil, domain.Internal(err, op, "failed to load product")
	}

	url, err := storage.Resolve(ctx, s.media, in.Key)
	if err != nil {
		return nil, mediaError(op, "key", err)
	}

	alt := strings.TrimSpace(in.Alt)
	if alt == "" {
		alt = p.Title
	}

	img, err := s.store.CreateProductImage(ctx, repository.CreateProductImageParams{
		ProductID: productID,
		Url:       url,
		Alt:       alt,
	})
	if err != nil {
		return nil, domain.Internal(err, op, "failed to save image")
	}

	s.invalidate(ctx)
	return &domain.Image{Src: img.Url, Alt: img.Alt}, nil
}

func (s *catalogAdminService) SetFeatureValue(ctx context.Context, productID int64, in FeatureValueInput) (*domain.Specification, error) {
	const op = "catalog_admin.set_feature_value"

	in.Value = strings.TrimSpace(in.Value)
	if err := validateStruct(op, in); err != nil {
		return nil, err
	}

	if _, err := s.store.GetProductByID(ctx, productID); err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrProductNotFound
		}
		return nil, domain.Internal(err, op, "failed to load product")
	}

	feature, err := s.store.GetFeature(ctx, in.FeatureID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrFeatureNotFound
		}
		return nil, domain.Internal(err, op, "failed to load feature")
	}

	fv, err := s.store.CreateFeatureValue(ctx, repository.CreateFeatureValueParams{
		ProductID: productID,
		FeatureID: feature.ID,
		Value:     in.Value,
	})
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrFeatureValueSet
		}
		return nil, domain.Internal(err, op, "failed to save feature value")
	}

	return &domain.Specification{Name: feature.Name, Value: fv.Value}, nil
}

// invalidate drops cached listings. Failures only delay freshness until
// the entries expire.
func (s *catalogAdminService) invalidate(ctx context.Context) {
	_ = s.cache.Delete(ctx, cache.KeyPopular, cache.KeyLimited)
	_ = s.cache.DeletePrefix(ctx, cache.KeyTagsPrefix)
	_ = s.cache.DeletePrefix(ctx, cache.KeyFiltersPrefix)
}
