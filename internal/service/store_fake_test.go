package service

import (
	"context"
	"math"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dukerupert/vitrina/internal/auth"
	"github.com/dukerupert/vitrina/internal/domain"
	"github.com/dukerupert/vitrina/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	auth.Cost = bcrypt.MinCost
}

// =============================================================================
// IN-MEMORY STORE
// =============================================================================

// fakeData is the state of the fake database. ExecTx snapshots it so a
// failing transaction leaves no trace.
type fakeData struct {
	nextID     int64
	categories map[int64]repository.Category
	brands     map[int64]repository.Brand
	features   map[int64]repository.Feature
	products   map[int64]repository.Product
	images     []repository.ProductImage
	values     []repository.FeatureValue
	lines      []repository.CartLine
	orders     []repository.Order
	items      []repository.OrderItem
	users      []repository.User
	profiles   map[int64]repository.Profile
	sessions   map[string]repository.Session
	reviews    []repository.Review
}

func (d *fakeData) clone() *fakeData {
	return &fakeData{
		nextID:     d.nextID,
		categories: cloneMap(d.categories),
		brands:     cloneMap(d.brands),
		features:   cloneMap(d.features),
		products:   cloneMap(d.products),
		images:     slices.Clone(d.images),
		values:     slices.Clone(d.values),
		lines:      slices.Clone(d.lines),
		orders:     slices.Clone(d.orders),
		items:      slices.Clone(d.items),
		users:      slices.Clone(d.users),
		profiles:   cloneMap(d.profiles),
		sessions:   cloneMap(d.sessions),
		reviews:    slices.Clone(d.reviews),
	}
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// fakeStore implements repository.Store in memory. Queries not listed here
// panic through the nil embedded Querier.
type fakeStore struct {
	repository.Querier

	mu     sync.Mutex
	data   *fakeData
	now    time.Time
	failOn map[string]error
	txs    int
}

var _ repository.Store = (*fakeStore)(nil)

func newFakeStore() *fakeStore {
	return &fakeStore{
		data: &fakeData{
			nextID:     100,
			categories: map[int64]repository.Category{},
			brands:     map[int64]repository.Brand{},
			features:   map[int64]repository.Feature{},
			products:   map[int64]repository.Product{},
			profiles:   map[int64]repository.Profile{},
			sessions:   map[string]repository.Session{},
		},
		now:    time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		failOn: map[string]error{},
	}
}

func (s *fakeStore) ExecTx(ctx context.Context, fn func(repository.Querier) error) error {
	s.mu.Lock()
	snapshot := s.data.clone()
	s.txs++
	s.mu.Unlock()

	if err := fn(s); err != nil {
		s.mu.Lock()
		s.data = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *fakeStore) id() int64 {
	s.data.nextID++
	return s.data.nextID
}

func (s *fakeStore) fail(name string) error {
	return s.failOn[name]
}

func uniqueErr(constraint string) error {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint}
}

func ownedBy(userID pgtype.Int8, key pgtype.Text, p repository.OwnerParams) bool {
	switch {
	case p.UserID.Valid:
		return userID.Valid && userID.Int64 == p.UserID.Int64
	case p.SessionKey.Valid:
		return !userID.Valid && key.Valid && key.String == p.SessionKey.String
	}
	return false
}

// --- seeding helpers --------------------------------------------------------

func (s *fakeStore) addCategory(id int64, name string) {
	s.data.categories[id] = repository.Category{ID: id, Name: name, Slug: strings.ToLower(name), IsActive: true}
}

func (s *fakeStore) addProduct(id int64, title string, price string) repository.Product {
	if _, ok := s.data.categories[1]; !ok {
		s.addCategory(1, "Phones")
	}
	p := repository.Product{
		ID:                id,
		CategoryID:        1,
		Title:             title,
		Slug:              strings.ToLower(strings.ReplaceAll(title, " ", "-")),
		Price:             decimal.RequireFromString(price),
		QuantityAvailable: 10,
		IsActive:          true,
		CreatedAt:         s.now,
	}
	s.data.products[id] = p
	return p
}

func (s *fakeStore) setPrice(id int64, price string) {
	p := s.data.products[id]
	p.Price = decimal.RequireFromString(price)
	s.data.products[id] = p
}

func (s *fakeStore) linesOf(owner domain.Owner) []repository.CartLine {
	args := repository.OwnerArgs(owner)
	var out []repository.CartLine
	for _, l := range s.data.lines {
		if ownedBy(l.UserID, l.SessionKey, args) {
			out = append(out, l)
		}
	}
	return out
}

// --- catalog ----------------------------------------------------------------

func (s *fakeStore) GetCategory(ctx context.Context, id int64) (repository.Category, error) {
	c, ok := s.data.categories[id]
	if !ok {
		return repository.Category{}, pgx.ErrNoRows
	}
	return c, nil
}

func (s *fakeStore) GetBrand(ctx context.Context, id int64) (repository.Brand, error) {
	b, ok := s.data.brands[id]
	if !ok {
		return repository.Brand{}, pgx.ErrNoRows
	}
	return b, nil
}

func (s *fakeStore) GetProductByID(ctx context.Context, id int64) (repository.Product, error) {
	if err := s.fail("GetProductByID"); err != nil {
		return repository.Product{}, err
	}
	p, ok := s.data.products[id]
	if !ok {
		return repository.Product{}, pgx.ErrNoRows
	}
	return p, nil
}

func (s *fakeStore) CreateProduct(ctx context.Context, arg repository.CreateProductParams) (repository.Product, error) {
	for _, p := range s.data.products {
		if p.Slug == arg.Slug {
			return repository.Product{}, uniqueErr("products_slug_key")
		}
	}
	p := repository.Product{
		ID:                s.id(),
		CategoryID:        arg.CategoryID,
		BrandID:           arg.BrandID,
		Title:             arg.Title,
		Slug:              arg.Slug,
		ShortDescription:  arg.ShortDescription,
		Description:       arg.Description,
		FullDescription:   arg.FullDescription,
		Price:             arg.Price,
		QuantityAvailable: arg.QuantityAvailable,
		FreeDelivery:      arg.FreeDelivery,
		IsLimited:         arg.IsLimited,
		IsActive:          true,
		SortIndex:         arg.SortIndex,
		CreatedAt:         s.now,
	}
	s.data.products[p.ID] = p
	return p, nil
}

func (s *fakeStore) CreateProductImage(ctx context.Context, arg repository.CreateProductImageParams) (repository.ProductImage, error) {
	var order int32
	for _, img := range s.data.images {
		if img.ProductID == arg.ProductID {
			order++
		}
	}
	img := repository.ProductImage{ID: s.id(), ProductID: arg.ProductID, Url: arg.Url, Alt: arg.Alt, SortOrder: order}
	s.data.images = append(s.data.images, img)
	return img, nil
}

func (s *fakeStore) GetFeature(ctx context.Context, id int64) (repository.Feature, error) {
	f, ok := s.data.features[id]
	if !ok {
		return repository.Feature{}, pgx.ErrNoRows
	}
	return f, nil
}

func (s *fakeStore) CreateFeatureValue(ctx context.Context, arg repository.CreateFeatureValueParams) (repository.FeatureValue, error) {
	for _, v := range s.data.values {
		if v.ProductID == arg.ProductID && v.FeatureID == arg.FeatureID {
			return repository.FeatureValue{}, uniqueErr("feature_values_product_id_feature_id_key")
		}
	}
	v := repository.FeatureValue{ID: s.id(), ProductID: arg.ProductID, FeatureID: arg.FeatureID, Value: arg.Value}
	s.data.values = append(s.data.values, v)
	return v, nil
}

func (s *fakeStore) IncrementPurchases(ctx context.Context, arg repository.IncrementPurchasesParams) error {
	p := s.data.products[arg.ID]
	p.PurchasesCount += arg.Quantity
	s.data.products[arg.ID] = p
	return nil
}

// --- reviews ----------------------------------------------------------------

func (s *fakeStore) CreateReview(ctx context.Context, arg repository.CreateReviewParams) (repository.Review, error) {
	for _, r := range s.data.reviews {
		if r.ProductID == arg.ProductID && r.UserID == arg.UserID {
			return repository.Review{}, uniqueErr("reviews_product_id_user_id_key")
		}
	}
	r := repository.Review{
		ID:        s.id(),
		ProductID: arg.ProductID,
		UserID:    arg.UserID,
		Text:      arg.Text,
		Rating:    arg.Rating,
		CreatedAt: s.now,
	}
	s.data.reviews = append(s.data.reviews, r)
	return r, nil
}

func (s *fakeStore) ListProductReviews(ctx context.Context, productID int64) ([]repository.ListProductReviewsRow, error) {
	var out []repository.ListProductReviewsRow
	for _, r := range s.data.reviews {
		if r.ProductID != productID {
			continue
		}
		row := repository.ListProductReviewsRow{ID: r.ID, Text: r.Text, Rating: r.Rating, CreatedAt: r.CreatedAt}
		for _, u := range s.data.users {
			if u.ID == r.UserID {
				row.Username = u.Username
			}
		}
		if p, ok := s.data.profiles[r.UserID]; ok {
			row.FullName = p.FullName
			row.Email = p.Email
		}
		out = append(out, row)
	}
	return out, nil
}

// --- cart -------------------------------------------------------------------

func (s *fakeStore) ListCartLines(ctx context.Context, arg repository.OwnerParams) ([]repository.ListCartLinesRow, error) {
	var out []repository.ListCartLinesRow
	for _, l := range s.data.lines {
		if !ownedBy(l.UserID, l.SessionKey, arg) {
			continue
		}
		p := s.data.products[l.ProductID]
		out = append(out, repository.ListCartLinesRow{
			ID:         l.ID,
			ProductID:  l.ProductID,
			Quantity:   l.Quantity,
			PriceAtAdd: l.PriceAtAdd,
			Title:      p.Title,
			Slug:       p.Slug,
			Price:      p.Price,
		})
	}
	return out, nil
}

func (s *fakeStore) LockCartLines(ctx context.Context, arg repository.OwnerParams) ([]repository.CartLine, error) {
	var out []repository.CartLine
	for _, l := range s.data.lines {
		if ownedBy(l.UserID, l.SessionKey, arg) {
			out = append(out, l)
		}
	}
	return out, nil
}

// upsertLine adds qty to the owner's line for productID. Past the INTEGER
// range it either caps the quantity or fails like Postgres does.
func (s *fakeStore) upsertLine(owner repository.OwnerParams, productID int64, qty int32, price decimal.Decimal, capped bool) (repository.CartLine, error) {
	for i, l := range s.data.lines {
		if l.ProductID == productID && ownedBy(l.UserID, l.SessionKey, owner) {
			sum := int64(l.Quantity) + int64(qty)
			if sum > math.MaxInt32 {
				if !capped {
					return repository.CartLine{}, &pgconn.PgError{Code: "22003", Message: "integer out of range"}
				}
				sum = math.MaxInt32
			}
			s.data.lines[i].Quantity = int32(sum)
			return s.data.lines[i], nil
		}
	}
	l := repository.CartLine{
		ID:         s.id(),
		UserID:     owner.UserID,
		SessionKey: owner.SessionKey,
		ProductID:  productID,
		Quantity:   qty,
		PriceAtAdd: price,
		CreatedAt:  s.now,
	}
	s.data.lines = append(s.data.lines, l)
	return l, nil
}

func (s *fakeStore) AddUserCartLine(ctx context.Context, arg repository.AddUserCartLineParams) (repository.CartLine, error) {
	owner := repository.OwnerParams{UserID: pgtype.Int8{Int64: arg.UserID, Valid: true}}
	return s.upsertLine(owner, arg.ProductID, arg.Quantity, arg.PriceAtAdd, false)
}

func (s *fakeStore) AddGuestCartLine(ctx context.Context, arg repository.AddGuestCartLineParams) (repository.CartLine, error) {
	owner := repository.OwnerParams{SessionKey: pgtype.Text{String: arg.SessionKey, Valid: true}}
	return s.upsertLine(owner, arg.ProductID, arg.Quantity, arg.PriceAtAdd, false)
}

func (s *fakeStore) GetCartLine(ctx context.Context, arg repository.GetCartLineParams) (repository.CartLine, error) {
	owner := repository.OwnerParams{UserID: arg.UserID, SessionKey: arg.SessionKey}
	for _, l := range s.data.lines {
		if l.ID == arg.ID && ownedBy(l.UserID, l.SessionKey, owner) {
			return l, nil
		}
	}
	return repository.CartLine{}, pgx.ErrNoRows
}

func (s *fakeStore) GetCartLineByProductForUpdate(ctx context.Context, arg repository.GetCartLineByProductParams) (repository.CartLine, error) {
	owner := repository.OwnerParams{UserID: arg.UserID, SessionKey: arg.SessionKey}
	for _, l := range s.data.lines {
		if l.ProductID == arg.ProductID && ownedBy(l.UserID, l.SessionKey, owner) {
			return l, nil
		}
	}
	return repository.CartLine{}, pgx.ErrNoRows
}

func (s *fakeStore) UpdateCartLineQuantity(ctx context.Context, arg repository.UpdateCartLineQuantityParams) (repository.CartLine, error) {
	for i, l := range s.data.lines {
		if l.ID == arg.ID {
			s.data.lines[i].Quantity = arg.Quantity
			return s.data.lines[i], nil
		}
	}
	return repository.CartLine{}, pgx.ErrNoRows
}

func (s *fakeStore) DeleteCartLine(ctx context.Context, arg repository.DeleteCartLineParams) (int64, error) {
	owner := repository.OwnerParams{UserID: arg.UserID, SessionKey: arg.SessionKey}
	before := len(s.data.lines)
	s.data.lines = slices.DeleteFunc(s.data.lines, func(l repository.CartLine) bool {
		return l.ID == arg.ID && ownedBy(l.UserID, l.SessionKey, owner)
	})
	return int64(before - len(s.data.lines)), nil
}

func (s *fakeStore) DeleteCartLinesByIDs(ctx context.Context, ids []int64) (int64, error) {
	if err := s.fail("DeleteCartLinesByIDs"); err != nil {
		return 0, err
	}
	before := len(s.data.lines)
	s.data.lines = slices.DeleteFunc(s.data.lines, func(l repository.CartLine) bool {
		return slices.Contains(ids, l.ID)
	})
	return int64(before - len(s.data.lines)), nil
}

func (s *fakeStore) ClearCart(ctx context.Context, arg repository.OwnerParams) (int64, error) {
	before := len(s.data.lines)
	s.data.lines = slices.DeleteFunc(s.data.lines, func(l repository.CartLine) bool {
		return ownedBy(l.UserID, l.SessionKey, arg)
	})
	return int64(before - len(s.data.lines)), nil
}

func (s *fakeStore) MergeGuestCart(ctx context.Context, arg repository.MergeGuestCartParams) (int64, error) {
	guest := repository.OwnerParams{SessionKey: pgtype.Text{String: arg.SessionKey, Valid: true}}
	user := repository.OwnerParams{UserID: pgtype.Int8{Int64: arg.UserID, Valid: true}}

	var merged int64
	for _, l := range slices.Clone(s.data.lines) {
		if ownedBy(l.UserID, l.SessionKey, guest) {
			if _, err := s.upsertLine(user, l.ProductID, l.Quantity, l.PriceAtAdd, true); err != nil {
				return merged, err
			}
			merged++
		}
	}
	return merged, nil
}

// --- orders -----------------------------------------------------------------

func (s *fakeStore) CreateOrder(ctx context.Context, arg repository.CreateOrderParams) (repository.Order, error) {
	o := repository.Order{
		ID:          s.id(),
		UserID:      arg.UserID,
		SessionKey:  arg.SessionKey,
		FullName:    arg.FullName,
		Phone:       arg.Phone,
		Email:       arg.Email,
		Address:     arg.Address,
		Comment:     arg.Comment,
		TotalAmount: arg.TotalAmount,
		Status:      string(domain.OrderStatusNew),
		CreatedAt:   s.now,
		UpdatedAt:   s.now,
	}
	s.data.orders = append(s.data.orders, o)
	return o, nil
}

func (s *fakeStore) CreateOrderItem(ctx context.Context, arg repository.CreateOrderItemParams) (repository.OrderItem, error) {
	if err := s.fail("CreateOrderItem"); err != nil {
		return repository.OrderItem{}, err
	}
	item := repository.OrderItem{
		ID:           s.id(),
		OrderID:      arg.OrderID,
		ProductID:    arg.ProductID,
		Quantity:     arg.Quantity,
		PriceAtOrder: arg.PriceAtOrder,
	}
	s.data.items = append(s.data.items, item)
	return item, nil
}

func (s *fakeStore) GetOrder(ctx context.Context, id int64) (repository.Order, error) {
	for _, o := range s.data.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return repository.Order{}, pgx.ErrNoRows
}

func (s *fakeStore) GetOrderForOwner(ctx context.Context, arg repository.GetOrderForOwnerParams) (repository.Order, error) {
	owner := repository.OwnerParams{UserID: arg.UserID, SessionKey: arg.SessionKey}
	for _, o := range s.data.orders {
		if o.ID == arg.ID && ownedBy(o.UserID, o.SessionKey, owner) {
			return o, nil
		}
	}
	return repository.Order{}, pgx.ErrNoRows
}

func (s *fakeStore) ListOrdersForOwner(ctx context.Context, arg repository.OwnerParams) ([]repository.Order, error) {
	var out []repository.Order
	for _, o := range s.data.orders {
		if ownedBy(o.UserID, o.SessionKey, arg) {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (s *fakeStore) ListOrderItems(ctx context.Context, orderIDs []int64) ([]repository.ListOrderItemsRow, error) {
	var out []repository.ListOrderItemsRow
	for _, item := range s.data.items {
		if !slices.Contains(orderIDs, item.OrderID) {
			continue
		}
		p := s.data.products[item.ProductID]
		out = append(out, repository.ListOrderItemsRow{
			OrderID:      item.OrderID,
			ProductID:    item.ProductID,
			Quantity:     item.Quantity,
			PriceAtOrder: item.PriceAtOrder,
			Title:        p.Title,
			Slug:         p.Slug,
		})
	}
	return out, nil
}

func (s *fakeStore) TransitionOrderStatus(ctx context.Context, arg repository.TransitionOrderStatusParams) (repository.Order, error) {
	for i, o := range s.data.orders {
		if o.ID == arg.ID && slices.Contains(arg.FromStatus, o.Status) {
			s.data.orders[i].Status = arg.Status
			s.data.orders[i].UpdatedAt = s.now
			return s.data.orders[i], nil
		}
	}
	return repository.Order{}, pgx.ErrNoRows
}

func (s *fakeStore) setOrderStatus(id int64, status domain.OrderStatus) {
	for i, o := range s.data.orders {
		if o.ID == id {
			s.data.orders[i].Status = string(status)
		}
	}
}

// --- users and sessions -----------------------------------------------------

func (s *fakeStore) CreateUser(ctx context.Context, arg repository.CreateUserParams) (repository.User, error) {
	for _, u := range s.data.users {
		if u.Username == arg.Username {
			return repository.User{}, uniqueErr("users_username_key")
		}
	}
	u := repository.User{
		ID:           s.id(),
		Username:     arg.Username,
		PasswordHash: arg.PasswordHash,
		IsStaff:      arg.IsStaff,
		CreatedAt:    s.now,
	}
	s.data.users = append(s.data.users, u)
	return u, nil
}

func (s *fakeStore) GetUserByID(ctx context.Context, id int64) (repository.User, error) {
	for _, u := range s.data.users {
		if u.ID == id {
			return u, nil
		}
	}
	return repository.User{}, pgx.ErrNoRows
}

func (s *fakeStore) GetUserByUsername(ctx context.Context, username string) (repository.User, error) {
	for _, u := range s.data.users {
		if u.Username == username {
			return u, nil
		}
	}
	return repository.User{}, pgx.ErrNoRows
}

func (s *fakeStore) UpdateUserPassword(ctx context.Context, arg repository.UpdateUserPasswordParams) error {
	for i, u := range s.data.users {
		if u.ID == arg.ID {
			s.data.users[i].PasswordHash = arg.PasswordHash
		}
	}
	return nil
}

func (s *fakeStore) checkContactUnique(userID int64, email, phone pgtype.Text) error {
	for id, p := range s.data.profiles {
		if id == userID {
			continue
		}
		if email.Valid && p.Email.Valid && p.Email.String == email.String {
			return uniqueErr("profiles_email_key")
		}
		if phone.Valid && p.Phone.Valid && p.Phone.String == phone.String {
			return uniqueErr("profiles_phone_key")
		}
	}
	return nil
}

func (s *fakeStore) CreateProfile(ctx context.Context, arg repository.CreateProfileParams) (repository.Profile, error) {
	if err := s.checkContactUnique(arg.UserID, arg.Email, arg.Phone); err != nil {
		return repository.Profile{}, err
	}
	p := repository.Profile{
		UserID:   arg.UserID,
		FullName: arg.FullName,
		Email:    arg.Email,
		Phone:    arg.Phone,
		Balance:  decimal.Zero,
	}
	s.data.profiles[arg.UserID] = p
	return p, nil
}

func (s *fakeStore) GetProfile(ctx context.Context, userID int64) (repository.Profile, error) {
	p, ok := s.data.profiles[userID]
	if !ok {
		return repository.Profile{}, pgx.ErrNoRows
	}
	return p, nil
}

func (s *fakeStore) UpdateProfile(ctx context.Context, arg repository.UpdateProfileParams) (repository.Profile, error) {
	p, ok := s.data.profiles[arg.UserID]
	if !ok {
		return repository.Profile{}, pgx.ErrNoRows
	}
	if err := s.checkContactUnique(arg.UserID, arg.Email, arg.Phone); err != nil {
		return repository.Profile{}, err
	}
	p.FullName = arg.FullName
	p.Email = arg.Email
	p.Phone = arg.Phone
	s.data.profiles[arg.UserID] = p
	return p, nil
}

func (s *fakeStore) UpdateProfileAvatar(ctx context.Context, arg repository.UpdateProfileAvatarParams) (repository.Profile, error) {
	p, ok := s.data.profiles[arg.UserID]
	if !ok {
		return repository.Profile{}, pgx.ErrNoRows
	}
	p.AvatarUrl = arg.AvatarUrl
	p.AvatarAlt = arg.AvatarAlt
	s.data.profiles[arg.UserID] = p
	return p, nil
}

func (s *fakeStore) CreateSession(ctx context.Context, arg repository.CreateSessionParams) (repository.Session, error) {
	sess := repository.Session{
		Token:     arg.Token,
		UserID:    arg.UserID,
		ExpiresAt: arg.ExpiresAt,
		CreatedAt: s.now,
	}
	s.data.sessions[arg.Token] = sess
	return sess, nil
}

// GetSession ignores expired sessions like the real query does.
func (s *fakeStore) GetSession(ctx context.Context, token string) (repository.Session, error) {
	sess, ok := s.data.sessions[token]
	if !ok || !sess.ExpiresAt.After(time.Now()) {
		return repository.Session{}, pgx.ErrNoRows
	}
	return sess, nil
}

func (s *fakeStore) DeleteSession(ctx context.Context, token string) error {
	delete(s.data.sessions, token)
	return nil
}

// =============================================================================
// SIDE EFFECT RECORDERS
// =============================================================================

type recordingPublisher struct {
	mu       sync.Mutex
	subjects []string
	events   []any
	err      error
}

func (p *recordingPublisher) Publish(ctx context.Context, subject string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.subjects = append(p.subjects, subject)
	p.events = append(p.events, event)
	return p.err
}

type recordingMailer struct {
	mu     sync.Mutex
	orders []domain.Order
	err    error
}

func (m *recordingMailer) SendOrderConfirmation(ctx context.Context, order *domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders = append(m.orders, *order)
	return m.err
}

type recordingCache struct {
	deleted  []string
	prefixes []string
}

func (c *recordingCache) Get(context.Context, string, any) (bool, error) { return false, nil }

func (c *recordingCache) Set(context.Context, string, any, time.Duration) error { return nil }

func (c *recordingCache) Delete(_ context.Context, keys ...string) error {
	c.deleted = append(c.deleted, keys...)
	return nil
}

func (c *recordingCache) DeletePrefix(_ context.Context, prefix string) error {
	c.prefixes = append(c.prefixes, prefix)
	return nil
}

// fakeMedia resolves keys listed in files.
type fakeMedia struct {
	files map[string]bool
}

func (m fakeMedia) URL(key string) string { return "https://cdn.test/" + key }

func (m fakeMedia) Exists(_ context.Context, key string) (bool, error) {
	return m.files[key], nil
}
