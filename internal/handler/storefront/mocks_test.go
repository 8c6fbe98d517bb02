package storefront

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dukerupert/vitrina/internal/domain"
	"github.com/dukerupert/vitrina/internal/service"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// MOCK SERVICES
// =============================================================================

type mockCartService struct {
	getFunc       func(ctx context.Context, owner domain.Owner) (*domain.Cart, error)
	addFunc       func(ctx context.Context, owner domain.Owner, productID int64, quantity int) (*domain.Cart, error)
	decrementFunc func(ctx context.Context, owner domain.Owner, productID int64, quantity int) (*domain.Cart, error)
	updateFunc    func(ctx context.Context, owner domain.Owner, lineID int64, quantity int) (*domain.Cart, error)
	removeFunc    func(ctx context.Context, owner domain.Owner, lineID int64) (*domain.Cart, error)
	clearFunc     func(ctx context.Context, owner domain.Owner) error
}

func (m *mockCartService) Get(ctx context.Context, owner domain.Owner) (*domain.Cart, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, owner)
	}
	return domain.NewCart(nil), nil
}

func (m *mockCartService) Add(ctx context.Context, owner domain.Owner, productID int64, quantity int) (*domain.Cart, error) {
	if m.addFunc != nil {
		return m.addFunc(ctx, owner, productID, quantity)
	}
	return domain.NewCart(nil), nil
}

func (m *mockCartService) Decrement(ctx context.Context, owner domain.Owner, productID int64, quantity int) (*domain.Cart, error) {
	if m.decrementFunc != nil {
		return m.decrementFunc(ctx, owner, productID, quantity)
	}
	return domain.NewCart(nil), nil
}

func (m *mockCartService) Update(ctx context.Context, owner domain.Owner, lineID int64, quantity int) (*domain.Cart, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, owner, lineID, quantity)
	}
	return domain.NewCart(nil), nil
}

func (m *mockCartService) Remove(ctx context.Context, owner domain.Owner, lineID int64) (*domain.Cart, error) {
	if m.removeFunc != nil {
		return m.removeFunc(ctx, owner, lineID)
	}
	return domain.NewCart(nil), nil
}

func (m *mockCartService) Clear(ctx context.Context, owner domain.Owner) error {
	if m.clearFunc != nil {
		return m.clearFunc(ctx, owner)
	}
	return nil
}

type mockCheckoutService struct {
	checkoutFunc func(ctx context.Context, owner domain.Owner, contact domain.Contact) (*domain.Order, error)
}

func (m *mockCheckoutService) Checkout(ctx context.Context, owner domain.Owner, contact domain.Contact) (*domain.Order, error) {
	return m.checkoutFunc(ctx, owner, contact)
}

type mockOrderService struct {
	listFunc       func(ctx context.Context, owner domain.Owner) ([]domain.Order, error)
	getFunc        func(ctx context.Context, owner domain.Owner, id int64) (*domain.Order, error)
	markPaidFunc   func(ctx context.Context, owner domain.Owner, id int64) (*domain.Order, error)
	transitionFunc func(ctx context.Context, id int64, to domain.OrderStatus) (*domain.Order, error)
}

func (m *mockOrderService) List(ctx context.Context, owner domain.Owner) ([]domain.Order, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, owner)
	}
	return nil, nil
}

func (m *mockOrderService) Get(ctx context.Context, owner domain.Owner, id int64) (*domain.Order, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, owner, id)
	}
	return nil, service.ErrOrderNotFound
}

func (m *mockOrderService) MarkPaid(ctx context.Context, owner domain.Owner, id int64) (*domain.Order, error) {
	if m.markPaidFunc != nil {
		return m.markPaidFunc(ctx, owner, id)
	}
	return nil, service.ErrOrderNotFound
}

func (m *mockOrderService) Transition(ctx context.Context, id int64, to domain.OrderStatus) (*domain.Order, error) {
	if m.transitionFunc != nil {
		return m.transitionFunc(ctx, id, to)
	}
	return nil, service.ErrOrderNotFound
}

type mockUserService struct {
	registerFunc func(ctx context.Context, in service.SignUpInput, guestToken string) (*service.Login, error)
	signInFunc   func(ctx context.Context, in service.SignInInput, guestToken string) (*service.Login, error)
	signOutFunc  func(ctx context.Context, token string) error
}

func (m *mockUserService) Register(ctx context.Context, in service.SignUpInput, guestToken string) (*service.Login, error) {
	return m.registerFunc(ctx, in, guestToken)
}

func (m *mockUserService) SignIn(ctx context.Context, in service.SignInInput, guestToken string) (*service.Login, error) {
	return m.signInFunc(ctx, in, guestToken)
}

func (m *mockUserService) SignOut(ctx context.Context, token string) error {
	if m.signOutFunc != nil {
		return m.signOutFunc(ctx, token)
	}
	return nil
}

func (m *mockUserService) CreateStaff(ctx context.Context, username, password string) (*domain.User, error) {
	return nil, domain.Errorf(domain.EINTERNAL, "", "not implemented")
}

type mockProfileService struct {
	getFunc            func(ctx context.Context, userID int64) (*domain.Profile, error)
	updateFunc         func(ctx context.Context, userID int64, in service.ProfileInput) (*domain.Profile, error)
	changePasswordFunc func(ctx context.Context, userID int64, in service.PasswordInput) error
	setAvatarFunc      func(ctx context.Context, userID int64, in service.AvatarInput) (*domain.Profile, error)
}

func (m *mockProfileService) Get(ctx context.Context, userID int64) (*domain.Profile, error) {
	return m.getFunc(ctx, userID)
}

func (m *mockProfileService) Update(ctx context.Context, userID int64, in service.ProfileInput) (*domain.Profile, error) {
	return m.updateFunc(ctx, userID, in)
}

func (m *mockProfileService) ChangePassword(ctx context.Context, userID int64, in service.PasswordInput) error {
	return m.changePasswordFunc(ctx, userID, in)
}

func (m *mockProfileService) SetAvatar(ctx context.Context, userID int64, in service.AvatarInput) (*domain.Profile, error) {
	return m.setAvatarFunc(ctx, userID, in)
}

type mockReviewService struct {
	listFunc   func(ctx context.Context, productID int64) ([]domain.Review, error)
	createFunc func(ctx context.Context, userID, productID int64, in service.ReviewInput) (*domain.Review, error)
}

func (m *mockReviewService) List(ctx context.Context, productID int64) ([]domain.Review, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, productID)
	}
	return nil, nil
}

func (m *mockReviewService) Create(ctx context.Context, userID, productID int64, in service.ReviewInput) (*domain.Review, error) {
	return m.createFunc(ctx, userID, productID, in)
}

type mockCatalogService struct {
	categoriesFunc   func(ctx context.Context) ([]domain.Category, error)
	bannersFunc      func(ctx context.Context) ([]domain.Banner, error)
	tagsFunc         func(ctx context.Context, categoryID *int64) ([]domain.Tag, error)
	listProductsFunc func(ctx context.Context, q domain.CatalogQuery) (*domain.ProductPage, error)
	productFunc      func(ctx context.Context, ref string) (*domain.ProductDetail, error)
	filtersFunc      func(ctx context.Context, categoryID *int64) (*domain.FilterOptions, error)
}

func (m *mockCatalogService) Categories(ctx context.Context) ([]domain.Category, error) {
	if m.categoriesFunc != nil {
		return m.categoriesFunc(ctx)
	}
	return []domain.Category{}, nil
}

func (m *mockCatalogService) Banners(ctx context.Context) ([]domain.Banner, error) {
	if m.bannersFunc != nil {
		return m.bannersFunc(ctx)
	}
	return []domain.Banner{}, nil
}

func (m *mockCatalogService) Tags(ctx context.Context, categoryID *int64) ([]domain.Tag, error) {
	if m.tagsFunc != nil {
		return m.tagsFunc(ctx, categoryID)
	}
	return []domain.Tag{}, nil
}

func (m *mockCatalogService) ListProducts(ctx context.Context, q domain.CatalogQuery) (*domain.ProductPage, error) {
	if m.listProductsFunc != nil {
		return m.listProductsFunc(ctx, q)
	}
	return &domain.ProductPage{}, nil
}

func (m *mockCatalogService) Popular(ctx context.Context) ([]domain.ProductShort, error) {
	return []domain.ProductShort{}, nil
}

func (m *mockCatalogService) Limited(ctx context.Context) ([]domain.ProductShort, error) {
	return []domain.ProductShort{}, nil
}

func (m *mockCatalogService) Product(ctx context.Context, ref string) (*domain.ProductDetail, error) {
	if m.productFunc != nil {
		return m.productFunc(ctx, ref)
	}
	return nil, service.ErrProductNotFound
}

func (m *mockCatalogService) Filters(ctx context.Context, categoryID *int64) (*domain.FilterOptions, error) {
	if m.filtersFunc != nil {
		return m.filtersFunc(ctx, categoryID)
	}
	return &domain.FilterOptions{}, nil
}

// =============================================================================
// REQUEST HELPERS
// =============================================================================

// serve routes a single request through a mux so path values resolve.
func serve(pattern string, h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	mux.HandleFunc(pattern, h)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func jsonRequest(method, target, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func asOwner(req *http.Request, owner domain.Owner) *http.Request {
	return req.WithContext(domain.NewContextWithOwner(req.Context(), owner))
}

func asUser(req *http.Request, id int64) *http.Request {
	return req.WithContext(domain.NewContextWithUser(req.Context(), &domain.CurrentUser{ID: id, Username: "alice"}))
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(dst))
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	decodeBody(t, rec, &body)
	return body.Error.Code
}
