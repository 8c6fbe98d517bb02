package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

type Querier interface {
	// catalog
	ListActiveCategories(ctx context.Context) ([]Category, error)
	ListBannerCategories(ctx context.Context, limit int32) ([]Category, error)
	GetCategory(ctx context.Context, id int64) (Category, error)
	GetBrand(ctx context.Context, id int64) (Brand, error)
	GetProductByID(ctx context.Context, id int64) (Product, error)
	GetProductBySlug(ctx context.Context, slug string) (Product, error)
	ListProducts(ctx context.Context, arg ListProductsParams) ([]ProductListRow, error)
	CountProducts(ctx context.Context, arg CountProductsParams) (int64, error)
	ListPopularProducts(ctx context.Context, limit int32) ([]ProductListRow, error)
	ListLimitedProducts(ctx context.Context, limit int32) ([]ProductListRow, error)
	GetProductReviewStats(ctx context.Context, productID int64) (GetProductReviewStatsRow, error)
	ListProductImages(ctx context.Context, productIds []int64) ([]ProductImage, error)
	ListProductTags(ctx context.Context, productIds []int64) ([]ListProductTagsRow, error)
	ListTags(ctx context.Context, categoryID pgtype.Int8) ([]Tag, error)
	ListProductSpecifications(ctx context.Context, productID int64) ([]ListProductSpecificationsRow, error)
	ListBrandFacets(ctx context.Context, categoryID pgtype.Int8) ([]ListBrandFacetsRow, error)
	GetPriceBounds(ctx context.Context, categoryID pgtype.Int8) (GetPriceBoundsRow, error)
	CreateProduct(ctx context.Context, arg CreateProductParams) (Product, error)
	CreateProductImage(ctx context.Context, arg CreateProductImageParams) (ProductImage, error)
	GetFeature(ctx context.Context, id int64) (Feature, error)
	CreateFeatureValue(ctx context.Context, arg CreateFeatureValueParams) (FeatureValue, error)
	IncrementPurchases(ctx context.Context, arg IncrementPurchasesParams) error

	// reviews
	CreateReview(ctx context.Context, arg CreateReviewParams) (Review, error)
	ListProductReviews(ctx context.Context, productID int64) ([]ListProductReviewsRow, error)

	// cart
	ListCartLines(ctx context.Context, arg OwnerParams) ([]ListCartLinesRow, error)
	LockCartLines(ctx context.Context, arg OwnerParams) ([]CartLine, error)
	AddUserCartLine(ctx context.Context, arg AddUserCartLineParams) (CartLine, error)
	AddGuestCartLine(ctx context.Context, arg AddGuestCartLineParams) (CartLine, error)
	GetCartLine(ctx context.Context, arg GetCartLineParams) (CartLine, error)
	GetCartLineByProductForUpdate(ctx context.Context, arg GetCartLineByProductParams) (CartLine, error)
	UpdateCartLineQuantity(ctx context.Context, arg UpdateCartLineQuantityParams) (CartLine, error)
	DeleteCartLine(ctx context.Context, arg DeleteCartLineParams) (int64, error)
	DeleteCartLinesByIDs(ctx context.Context, ids []int64) (int64, error)
	ClearCart(ctx context.Context, arg OwnerParams) (int64, error)
	MergeGuestCart(ctx context.Context, arg MergeGuestCartParams) (int64, error)

	// orders
	CreateOrder(ctx context.Context, arg CreateOrderParams) (Order, error)
	CreateOrderItem(ctx context.Context, arg CreateOrderItemParams) (OrderItem, error)
	GetOrder(ctx context.Context, id int64) (Order, error)
	GetOrderForOwner(ctx context.Context, arg GetOrderForOwnerParams) (Order, error)
	ListOrdersForOwner(ctx context.Context, arg OwnerParams) ([]Order, error)
	ListOrderItems(ctx context.Context, orderIds []int64) ([]ListOrderItemsRow, error)
	TransitionOrderStatus(ctx context.Context, arg TransitionOrderStatusParams) (Order, error)

	// users and sessions
	CreateUser(ctx context.Context, arg CreateUserParams) (User, error)
	GetUserByID(ctx context.Context, id int64) (User, error)
	GetUserByUsername(ctx context.Context, username string) (User, error)
	UpdateUserPassword(ctx context.Context, arg UpdateUserPasswordParams) error
	CreateProfile(ctx context.Context, arg CreateProfileParams) (Profile, error)
	GetProfile(ctx context.Context, userID int64) (Profile, error)
	UpdateProfile(ctx context.Context, arg UpdateProfileParams) (Profile, error)
	UpdateProfileAvatar(ctx context.Context, arg UpdateProfileAvatarParams) (Profile, error)
	CreateSession(ctx context.Context, arg CreateSessionParams) (Session, error)
	GetSession(ctx context.Context, token string) (Session, error)
	DeleteSession(ctx context.Context, token string) error
	DeleteExpiredSessions(ctx context.Context) (int64, error)
	DeleteOrphanGuestCartLines(ctx context.Context) (int64, error)
}

var _ Querier = (*Queries)(nil)
