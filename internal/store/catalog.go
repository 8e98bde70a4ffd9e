package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"dpstore-backend/internal/models"

	"github.com/jmoiron/sqlx"
)

// ListActiveGames retrieves the public storefront game list.
func (s *Store) ListActiveGames(ctx context.Context) ([]models.Game, error) {
	var games []models.Game
	err := s.db.SelectContext(ctx, &games,
		`SELECT game_id, name, slug, category, image_url, header_promo_text, is_active, created_at, updated_at
		 FROM games WHERE is_active = TRUE ORDER BY created_at DESC`)
	return games, err
}

// SearchGames matches active games by name, case-insensitively. An empty
// query returns all active games ordered by name.
func (s *Store) SearchGames(ctx context.Context, q string) ([]models.Game, error) {
	var games []models.Game
	if q == "" {
		err := s.db.SelectContext(ctx, &games,
			`SELECT game_id, name, slug, category, image_url, header_promo_text, is_active, created_at, updated_at
			 FROM games WHERE is_active = TRUE ORDER BY name`)
		return games, err
	}
	err := s.db.SelectContext(ctx, &games,
		`SELECT game_id, name, slug, category, image_url, header_promo_text, is_active, created_at, updated_at
		 FROM games WHERE name ILIKE $1 AND is_active = TRUE ORDER BY name`,
		"%"+q+"%")
	return games, err
}

// GetActiveGameBySlug retrieves one active game with its full detail columns.
func (s *Store) GetActiveGameBySlug(ctx context.Context, slug string) (*models.Game, error) {
	var game models.Game
	err := s.db.GetContext(ctx, &game,
		`SELECT * FROM games WHERE slug = $1 AND is_active = TRUE`, slug)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &game, nil
}

// ListActiveProductsByGame retrieves active products for a game, cheapest first.
func (s *Store) ListActiveProductsByGame(ctx context.Context, gameID int64) ([]models.Product, error) {
	var products []models.Product
	err := s.db.SelectContext(ctx, &products,
		`SELECT * FROM products WHERE game_id = $1 AND is_active = TRUE ORDER BY price ASC`, gameID)
	return products, err
}

// ListActivePromotions retrieves active promotions, newest first.
func (s *Store) ListActivePromotions(ctx context.Context) ([]models.Promotion, error) {
	var promos []models.Promotion
	err := s.db.SelectContext(ctx, &promos,
		`SELECT * FROM promotions WHERE is_active = TRUE ORDER BY created_at DESC`)
	return promos, err
}

// ListReviewsByGameSlug retrieves visible reviews with the reviewer's name.
func (s *Store) ListReviewsByGameSlug(ctx context.Context, slug string) ([]models.Review, error) {
	var reviews []models.Review
	err := s.db.SelectContext(ctx, &reviews,
		`SELECT r.rating, r.review_text, r.created_at, u.full_name AS customer_name
		 FROM reviews r
		 JOIN users u ON r.user_id = u.user_id
		 JOIN games g ON r.game_id = g.game_id
		 WHERE g.slug = $1 AND r.is_visible = TRUE
		 ORDER BY r.created_at DESC`, slug)
	return reviews, err
}

// GetReviewStats aggregates visible review count and average rating for a game.
func (s *Store) GetReviewStats(ctx context.Context, slug string) (*models.ReviewStats, error) {
	var stats models.ReviewStats
	err := s.db.GetContext(ctx, &stats,
		`SELECT COUNT(r.review_id) AS total_reviews,
		        COALESCE(AVG(r.rating), 0) AS average_rating
		 FROM reviews r
		 JOIN games g ON r.game_id = g.game_id
		 WHERE g.slug = $1 AND r.is_visible = TRUE`, slug)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// ListTestimonials retrieves visible storefront testimonials, newest first.
func (s *Store) ListTestimonials(ctx context.Context) ([]models.Testimonial, error) {
	var ts []models.Testimonial
	err := s.db.SelectContext(ctx, &ts,
		`SELECT customer_name, game_name, rating, review_text, created_at
		 FROM testimonials WHERE is_visible = TRUE ORDER BY created_at DESC`)
	return ts, err
}

// --- Admin game/product/promotion management ---

// ListGamesWithProductCount backs the admin games table.
func (s *Store) ListGamesWithProductCount(ctx context.Context) ([]models.GameSummary, error) {
	var games []models.GameSummary
	err := s.db.SelectContext(ctx, &games,
		`SELECT g.game_id, g.name, g.slug, g.category, g.is_active,
		        COUNT(p.product_id) AS product_count
		 FROM games g
		 LEFT JOIN products p ON g.game_id = p.game_id
		 GROUP BY g.game_id
		 ORDER BY g.name ASC`)
	return games, err
}

// GetGameByID retrieves one game regardless of its active flag.
func (s *Store) GetGameByID(ctx context.Context, id int64) (*models.Game, error) {
	var game models.Game
	err := s.db.GetContext(ctx, &game, `SELECT * FROM games WHERE game_id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &game, nil
}

// CreateGame inserts a game; a duplicate slug surfaces as ErrConflict.
func (s *Store) CreateGame(ctx context.Context, g *models.Game) error {
	err := s.db.GetContext(ctx, g,
		`INSERT INTO games (name, slug, category, image_url, user_id_help, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING *`,
		g.Name, g.Slug, g.Category, g.ImageURL, g.UserIDHelp, g.IsActive)
	if IsUniqueViolation(err) {
		return fmt.Errorf("slug %q: %w", g.Slug, ErrConflict)
	}
	return err
}

// UpdateGame updates a game's editable columns by id.
func (s *Store) UpdateGame(ctx context.Context, g *models.Game) error {
	err := s.db.GetContext(ctx, g,
		`UPDATE games
		 SET name = $1, slug = $2, category = $3, image_url = $4, user_id_help = $5,
		     is_active = $6, updated_at = NOW()
		 WHERE game_id = $7
		 RETURNING *`,
		g.Name, g.Slug, g.Category, g.ImageURL, g.UserIDHelp, g.IsActive, g.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if IsUniqueViolation(err) {
		return fmt.Errorf("slug %q: %w", g.Slug, ErrConflict)
	}
	return err
}

// DeleteGameCascade removes a game together with its products and reviews in
// one transaction.
func (s *Store) DeleteGameCascade(ctx context.Context, id int64) error {
	return s.WithTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM products WHERE game_id = $1`, id); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM reviews WHERE game_id = $1`, id); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM games WHERE game_id = $1`, id)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// ListProductsByGame retrieves all products of a game for the back office.
func (s *Store) ListProductsByGame(ctx context.Context, gameID int64) ([]models.Product, error) {
	var products []models.Product
	err := s.db.SelectContext(ctx, &products,
		`SELECT * FROM products WHERE game_id = $1 ORDER BY price ASC`, gameID)
	return products, err
}

// CreateProduct inserts a product.
func (s *Store) CreateProduct(ctx context.Context, p *models.Product) error {
	return s.db.GetContext(ctx, p,
		`INSERT INTO products (game_id, name, price, description, is_active)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING *`,
		p.GameID, p.Name, p.Price, p.Description, p.IsActive)
}

// UpdateProduct updates a product's editable columns by id.
func (s *Store) UpdateProduct(ctx context.Context, p *models.Product) error {
	err := s.db.GetContext(ctx, p,
		`UPDATE products
		 SET name = $1, price = $2, description = $3, is_active = $4, updated_at = NOW()
		 WHERE product_id = $5
		 RETURNING *`,
		p.Name, p.Price, p.Description, p.IsActive, p.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// DeleteProduct removes a product by id.
func (s *Store) DeleteProduct(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE product_id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListPromotions retrieves every promotion for the back office.
func (s *Store) ListPromotions(ctx context.Context) ([]models.Promotion, error) {
	var promos []models.Promotion
	err := s.db.SelectContext(ctx, &promos, `SELECT * FROM promotions ORDER BY created_at DESC`)
	return promos, err
}

// CreatePromotion inserts a promotion.
func (s *Store) CreatePromotion(ctx context.Context, p *models.Promotion) error {
	return s.db.GetContext(ctx, p,
		`INSERT INTO promotions (title, description, image_url, link_url, is_active)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING *`,
		p.Title, p.Description, p.ImageURL, p.LinkURL, p.IsActive)
}

// UpdatePromotion updates a promotion by id.
func (s *Store) UpdatePromotion(ctx context.Context, p *models.Promotion) error {
	err := s.db.GetContext(ctx, p,
		`UPDATE promotions
		 SET title = $1, description = $2, image_url = $3, link_url = $4, is_active = $5
		 WHERE promo_id = $6
		 RETURNING *`,
		p.Title, p.Description, p.ImageURL, p.LinkURL, p.IsActive, p.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// DeletePromotion removes a promotion by id.
func (s *Store) DeletePromotion(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM promotions WHERE promo_id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
