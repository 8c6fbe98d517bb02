package repository

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

type Brand struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type CartLine struct {
	ID         int64           `json:"id"`
	UserID     pgtype.Int8     `json:"user_id"`
	SessionKey pgtype.Text     `json:"session_key"`
	ProductID  int64           `json:"product_id"`
	Quantity   int32           `json:"quantity"`
	PriceAtAdd decimal.Decimal `json:"price_at_add"`
	CreatedAt  time.Time       `json:"created_at"`
}

type Category struct {
	ID        int64       `json:"id"`
	ParentID  pgtype.Int8 `json:"parent_id"`
	Name      string      `json:"name"`
	Slug      string      `json:"slug"`
	IconUrl   pgtype.Text `json:"icon_url"`
	IsActive  bool        `json:"is_active"`
	CreatedAt time.Time   `json:"created_at"`
}

type Feature struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type FeatureValue struct {
	ID        int64  `json:"id"`
	ProductID int64  `json:"product_id"`
	FeatureID int64  `json:"feature_id"`
	Value     string `json:"value"`
}

type Order struct {
	ID          int64           `json:"id"`
	UserID      pgtype.Int8     `json:"user_id"`
	SessionKey  pgtype.Text     `json:"session_key"`
	FullName    string          `json:"full_name"`
	Phone       string          `json:"phone"`
	Email       string          `json:"email"`
	Address     string          `json:"address"`
	Comment     string          `json:"comment"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type OrderItem struct {
	ID           int64           `json:"id"`
	OrderID      int64           `json:"order_id"`
	ProductID    int64           `json:"product_id"`
	Quantity     int32           `json:"quantity"`
	PriceAtOrder decimal.Decimal `json:"price_at_order"`
}

type Product struct {
	ID                int64           `json:"id"`
	CategoryID        int64           `json:"category_id"`
	BrandID           pgtype.Int8     `json:"brand_id"`
	Title             string          `json:"title"`
	Slug              string          `json:"slug"`
	ShortDescription  string          `json:"short_description"`
	Description       string          `json:"description"`
	FullDescription   string          `json:"full_description"`
	Price             decimal.Decimal `json:"price"`
	QuantityAvailable int32           `json:"quantity_available"`
	FreeDelivery      bool            `json:"free_delivery"`
	IsLimited         bool            `json:"is_limited"`
	IsActive          bool            `json:"is_active"`
	SortIndex         int32           `json:"sort_index"`
	PurchasesCount    int32           `json:"purchases_count"`
	CreatedAt         time.Time       `json:"created_at"`
}

type ProductImage struct {
	ID        int64  `json:"id"`
	ProductID int64  `json:"product_id"`
	Url       string `json:"url"`
	Alt       string `json:"alt"`
	SortOrder int32  `json:"sort_order"`
}

type Profile struct {
	UserID    int64           `json:"user_id"`
	FullName  string          `json:"full_name"`
	Email     pgtype.Text     `json:"email"`
	Phone     pgtype.Text     `json:"phone"`
	Balance   decimal.Decimal `json:"balance"`
	AvatarUrl pgtype.Text     `json:"avatar_url"`
	AvatarAlt string          `json:"avatar_alt"`
}

type Review struct {
	ID        int64     `json:"id"`
	ProductID int64     `json:"product_id"`
	UserID    int64     `json:"user_id"`
	Text      string    `json:"text"`
	Rating    int16     `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}

type Session struct {
	Token     string      `json:"token"`
	UserID    pgtype.Int8 `json:"user_id"`
	ExpiresAt time.Time   `json:"expires_at"`
	CreatedAt time.Time   `json:"created_at"`
}

type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"password_hash"`
	IsStaff      bool      `json:"is_staff"`
	CreatedAt    time.Time `json:"created_at"`
}
