package service

import (
	"context"

	"dpstore-backend/internal/models"
	"dpstore-backend/internal/store"
)

// CatalogService serves the public storefront reads.
type CatalogService struct {
	store *store.Store
}

// NewCatalogService creates a new catalog service
func NewCatalogService(store *store.Store) *CatalogService {
	return &CatalogService{store: store}
}

// GameDetail bundles a game with its purchasable denominations.
type GameDetail struct {
	Game     *models.Game
	Nominals []models.Product
}

// GameReviews bundles a game's visible reviews with their aggregates.
type GameReviews struct {
	Reviews []models.Review     `json:"reviews"`
	Stats   *models.ReviewStats `json:"stats"`
}

// PaymentMethod is a static storefront payment option.
type PaymentMethod struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Logo      *string `json:"logo"`
	IconClass string  `json:"iconClass,omitempty"`
}

func (s *CatalogService) ListGames(ctx context.Context) ([]models.Game, error) {
	return s.store.ListActiveGames(ctx)
}

func (s *CatalogService) SearchGames(ctx context.Context, q string) ([]models.Game, error) {
	return s.store.SearchGames(ctx, q)
}

// GetGameDetail returns an active game and its active products, cheapest
// first. Missing HTML snippets get storefront defaults.
func (s *CatalogService) GetGameDetail(ctx context.Context, slug string) (*GameDetail, error) {
	game, err := s.store.GetActiveGameBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	if game.PaymentMethodsSummary == nil {
		def := "<p>Metode pembayaran beragam tersedia.</p>"
		game.PaymentMethodsSummary = &def
	}
	if game.PurchaseInstructions == nil {
		def := "<p>Ikuti langkah mudah untuk membeli.</p>"
		game.PurchaseInstructions = &def
	}

	nominals, err := s.store.ListActiveProductsByGame(ctx, game.ID)
	if err != nil {
		return nil, err
	}

	return &GameDetail{Game: game, Nominals: nominals}, nil
}

func (s *CatalogService) ListPromotions(ctx context.Context) ([]models.Promotion, error) {
	return s.store.ListActivePromotions(ctx)
}

// GetGameReviews returns visible reviews plus count and average rating.
func (s *CatalogService) GetGameReviews(ctx context.Context, slug string) (*GameReviews, error) {
	reviews, err := s.store.ListReviewsByGameSlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	stats, err := s.store.GetReviewStats(ctx, slug)
	if err != nil {
		return nil, err
	}
	return &GameReviews{Reviews: reviews, Stats: stats}, nil
}

func (s *CatalogService) ListTestimonials(ctx context.Context) ([]models.Testimonial, error) {
	return s.store.ListTestimonials(ctx)
}

func strptr(s string) *string { return &s }

// PaymentMethods returns the static storefront payment options.
func (s *CatalogService) PaymentMethods() []PaymentMethod {
	return []PaymentMethod{
		{ID: "gopay", Name: "GoPay", Logo: strptr("https://upload.wikimedia.org/wikipedia/commons/thumb/8/86/Gopay_logo.svg/1200px-Gopay_logo.svg.png")},
		{ID: "ovo", Name: "OVO", Logo: strptr("https://upload.wikimedia.org/wikipedia/commons/thumb/e/eb/Logo_ovo_purple.svg/1200px-Logo_ovo_purple.svg.png")},
		{ID: "dana", Name: "Dana", Logo: strptr("https://upload.wikimedia.org/wikipedia/commons/thumb/7/72/Logo_dana_blue.svg/1200px-Logo_dana_blue.svg.png")},
		{ID: "bank_transfer", Name: "Bank Transfer", IconClass: "fas fa-university fa-lg text-purple-400 w-[24px] text-center"},
		{ID: "alfamart", Name: "Alfamart", Logo: strptr("https://upload.wikimedia.org/wikipedia/commons/9/9e/ALFAMART_LOGO_BARU.png")},
		{ID: "shopeepay", Name: "ShopeePay", Logo: strptr("https://shopeepay.co.id/src/pages/home/assets/images/new-homepage/new-spp-logo.svg")},
		{ID: "qris", Name: "Qris", Logo: strptr("https://upload.wikimedia.org/wikipedia/commons/thumb/a/a2/Logo_QRIS.svg/2560px-Logo_QRIS.svg.png")},
		{ID: "indomaret", Name: "Indomaret", Logo: strptr("https://upload.wikimedia.org/wikipedia/commons/9/9d/Logo_Indomaret.png")},
		{ID: "linkaja", Name: "Link Aja", Logo: strptr("https://upload.wikimedia.org/wikipedia/commons/thumb/8/85/LinkAja.svg/2048px-LinkAja.svg.png")},
	}
}
