package models

import "time"

// User represents a registered customer account. PasswordHash is nil for
// accounts created through Google sign-in.
type User struct {
	ID             int64      `db:"user_id" json:"user_id"`
	Email          string     `db:"email" json:"email"`
	FullName       string     `db:"full_name" json:"full_name"`
	PasswordHash   *string    `db:"password_hash" json:"-"`
	RewardsBalance int64      `db:"rewards_balance" json:"rewards_balance"`
	ResetToken     *string    `db:"reset_password_token" json:"-"`
	ResetExpires   *time.Time `db:"reset_password_expires" json:"-"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
}

// Game is a top-up catalog entry (Mobile Legends, Free Fire, ...).
type Game struct {
	ID                    int64     `db:"game_id" json:"game_id"`
	Name                  string    `db:"name" json:"name"`
	Slug                  string    `db:"slug" json:"slug"`
	Category              string    `db:"category" json:"category"`
	ImageURL              string    `db:"image_url" json:"image_url"`
	HeroImageURL          *string   `db:"hero_image_url" json:"hero_image_url,omitempty"`
	UserIDHelp            *string   `db:"user_id_help" json:"userIdHelp,omitempty"`
	AppStoreURL           *string   `db:"app_store_url" json:"appStoreUrl,omitempty"`
	GooglePlayURL         *string   `db:"google_play_url" json:"googlePlayUrl,omitempty"`
	Description           *string   `db:"description" json:"descriptionForLeftColumn,omitempty"`
	PaymentMethodsSummary *string   `db:"payment_methods_summary" json:"paymentMethodsSummary,omitempty"`
	PurchaseInstructions  *string   `db:"purchase_instructions" json:"purchaseInstructions,omitempty"`
	HeaderPromoText       *string   `db:"header_promo_text" json:"header_promo_text,omitempty"`
	IsActive              bool      `db:"is_active" json:"is_active"`
	CreatedAt             time.Time `db:"created_at" json:"created_at"`
	UpdatedAt             time.Time `db:"updated_at" json:"updated_at"`
}

// Product is a purchasable denomination belonging to a game. Price is in
// whole rupiah.
type Product struct {
	ID          int64     `db:"product_id" json:"product_id"`
	GameID      int64     `db:"game_id" json:"game_id"`
	Name        string    `db:"name" json:"name"`
	Price       int64     `db:"price" json:"price"`
	Description *string   `db:"description" json:"description,omitempty"`
	IsActive    bool      `db:"is_active" json:"is_active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// Promotion is a banner shown on the storefront.
type Promotion struct {
	ID          int64     `db:"promo_id" json:"promo_id"`
	Title       string    `db:"title" json:"title"`
	Description *string   `db:"description" json:"description,omitempty"`
	ImageURL    string    `db:"image_url" json:"image_url"`
	LinkURL     *string   `db:"link_url" json:"link_url,omitempty"`
	IsActive    bool      `db:"is_active" json:"is_active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// Review is a per-game customer review.
type Review struct {
	Rating       int       `db:"rating" json:"rating"`
	ReviewText   string    `db:"review_text" json:"review_text"`
	CustomerName string    `db:"customer_name" json:"customer_name"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// ReviewStats aggregates visible reviews for a game.
type ReviewStats struct {
	TotalReviews  int64   `db:"total_reviews" json:"total_reviews"`
	AverageRating float64 `db:"average_rating" json:"average_rating"`
}

// Testimonial is a curated storefront testimonial, not tied to a user row.
type Testimonial struct {
	CustomerName string    `db:"customer_name" json:"customer_name"`
	GameName     string    `db:"game_name" json:"game_name"`
	Rating       int       `db:"rating" json:"rating"`
	ReviewText   string    `db:"review_text" json:"review_text"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// FavoriteGame is the projection returned for a user's favorites list.
type FavoriteGame struct {
	GameID   int64  `db:"game_id" json:"game_id"`
	Name     string `db:"name" json:"name"`
	Slug     string `db:"slug" json:"slug"`
	ImageURL string `db:"image_url" json:"image_url"`
}

// Transaction is a top-up order. UserID is nil for guest checkout, in which
// case EmailForGuest carries the contact address. RewardsEarned stays NULL
// until the order first transitions into SUCCESS.
type Transaction struct {
	ID            string    `db:"transaction_id" json:"transaction_id"`
	ExternalID    string    `db:"external_id" json:"external_id"`
	UserID        *int64    `db:"user_id" json:"user_id,omitempty"`
	EmailForGuest *string   `db:"email_for_guest" json:"email_for_guest,omitempty"`
	ProductID     int64     `db:"product_id" json:"product_id"`
	Quantity      int       `db:"quantity" json:"quantity"`
	PricePerItem  int64     `db:"price_per_item" json:"price_per_item"`
	TotalPrice    int64     `db:"total_price" json:"total_price"`
	PaymentMethod string    `db:"payment_method" json:"payment_method"`
	Status        string    `db:"status" json:"status"`
	UserGameID    string    `db:"user_game_id" json:"user_game_id"`
	RewardsUsed   int64     `db:"rewards_used" json:"rewards_used"`
	RewardsEarned *int64    `db:"rewards_earned" json:"rewards_earned,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// TransactionDetail joins a transaction with its product and game names for
// lookups and listings.
type TransactionDetail struct {
	Transaction
	ProductName *string `db:"product_name" json:"product_name,omitempty"`
	GameName    *string `db:"game_name" json:"game_name,omitempty"`
	GameSlug    *string `db:"game_slug" json:"game_slug,omitempty"`
}

// AdminTransactionRow is the back-office listing projection. UserIdentifier
// is the account email, or the guest email when no account is attached.
type AdminTransactionRow struct {
	ID             string    `db:"transaction_id" json:"transaction_id"`
	ExternalID     string    `db:"external_id" json:"external_id"`
	UserID         *int64    `db:"user_id" json:"user_id,omitempty"`
	UserIdentifier *string   `db:"user_identifier" json:"user_identifier,omitempty"`
	GameName       string    `db:"game_name" json:"game_name"`
	ProductName    string    `db:"product_name" json:"product_name"`
	Quantity       int       `db:"quantity" json:"quantity"`
	TotalPrice     int64     `db:"total_price" json:"total_price"`
	Status         string    `db:"status" json:"status"`
	RewardsUsed    int64     `db:"rewards_used" json:"rewards_used"`
	RewardsEarned  *int64    `db:"rewards_earned" json:"rewards_earned,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// GameSummary is the admin games listing with a product count per game.
type GameSummary struct {
	ID           int64  `db:"game_id" json:"game_id"`
	Name         string `db:"name" json:"name"`
	Slug         string `db:"slug" json:"slug"`
	Category     string `db:"category" json:"category"`
	IsActive     bool   `db:"is_active" json:"is_active"`
	ProductCount int64  `db:"product_count" json:"product_count"`
}

// DashboardStats backs the admin dashboard widgets.
type DashboardStats struct {
	IncomeToday           int64 `json:"incomeToday"`
	TransactionsToday     int64 `json:"transactionsToday"`
	NewUsersToday         int64 `json:"newUsersToday"`
	TransactionsThisMonth int64 `json:"transactionsThisMonth"`
}

// Transaction statuses. PENDING is the initial state; the transition endpoint
// accepts any member of this set regardless of the current state.
const (
	StatusPending  = "PENDING"
	StatusSuccess  = "SUCCESS"
	StatusFailed   = "FAILED"
	StatusExpired  = "EXPIRED"
	StatusRefunded = "REFUNDED"
)

// ValidStatus reports whether s belongs to the closed status set.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusSuccess, StatusFailed, StatusExpired, StatusRefunded:
		return true
	}
	return false
}

// Game categories accepted by the admin CRUD.
const (
	CategoryPopuler  = "populer"
	CategoryBaru     = "baru"
	CategoryWebstore = "webstore"
)
