package service

import (
	"context"
	"time"

	"dpstore-backend/internal/auth"
	"dpstore-backend/internal/models"
	"dpstore-backend/internal/store"
	"dpstore-backend/internal/util"

	"go.uber.org/zap"
)

// AdminService backs the back office: credential check against the env-held
// admin account, dashboard counters, and catalog/user management.
type AdminService struct {
	store         *store.Store
	adminUsername string
	adminPassHash string
	logger        *zap.Logger
}

// NewAdminService creates a new admin service
func NewAdminService(store *store.Store, adminUsername, adminPassHash string) *AdminService {
	return &AdminService{
		store:         store,
		adminUsername: adminUsername,
		adminPassHash: adminPassHash,
		logger:        util.GetLogger(),
	}
}

// Login checks the single back-office account. There is no admin table; the
// credentials live in configuration.
func (s *AdminService) Login(username, password string) error {
	if username != s.adminUsername || !auth.CheckPassword(s.adminPassHash, password) {
		util.LoginFailuresTotal.Inc()
		return ErrBadCredentials
	}
	return nil
}

// DashboardStats computes today's and this month's counters in the server's
// local timezone.
func (s *AdminService) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	ctx, span := util.StartSpan(ctx, "AdminService.DashboardStats")
	defer span.End()

	now := time.Now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return s.store.GetDashboardStats(ctx, todayStart, monthStart)
}

// --- Transactions ---

func (s *AdminService) ListTransactions(ctx context.Context, status string) ([]models.AdminTransactionRow, error) {
	return s.store.ListTransactionsAdmin(ctx, status)
}

func (s *AdminService) ListTransactionsSince(ctx context.Context, since time.Time) ([]models.Transaction, error) {
	return s.store.ListTransactionsSince(ctx, since)
}

// --- Games ---

func (s *AdminService) ListGames(ctx context.Context) ([]models.GameSummary, error) {
	return s.store.ListGamesWithProductCount(ctx)
}

func (s *AdminService) GetGame(ctx context.Context, id int64) (*models.Game, error) {
	return s.store.GetGameByID(ctx, id)
}

func (s *AdminService) CreateGame(ctx context.Context, g *models.Game) error {
	if err := s.store.CreateGame(ctx, g); err != nil {
		return err
	}
	s.logger.Info("Game created", zap.Int64("game_id", g.ID), zap.String("slug", g.Slug))
	return nil
}

func (s *AdminService) UpdateGame(ctx context.Context, g *models.Game) error {
	return s.store.UpdateGame(ctx, g)
}

func (s *AdminService) DeleteGame(ctx context.Context, id int64) error {
	if err := s.store.DeleteGameCascade(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Game deleted", zap.Int64("game_id", id))
	return nil
}

// --- Products ---

func (s *AdminService) ListProducts(ctx context.Context, gameID int64) ([]models.Product, error) {
	return s.store.ListProductsByGame(ctx, gameID)
}

func (s *AdminService) CreateProduct(ctx context.Context, p *models.Product) error {
	return s.store.CreateProduct(ctx, p)
}

func (s *AdminService) UpdateProduct(ctx context.Context, p *models.Product) error {
	return s.store.UpdateProduct(ctx, p)
}

func (s *AdminService) DeleteProduct(ctx context.Context, id int64) error {
	return s.store.DeleteProduct(ctx, id)
}

// --- Promotions ---

func (s *AdminService) ListPromotions(ctx context.Context) ([]models.Promotion, error) {
	return s.store.ListPromotions(ctx)
}

func (s *AdminService) CreatePromotion(ctx context.Context, p *models.Promotion) error {
	return s.store.CreatePromotion(ctx, p)
}

func (s *AdminService) UpdatePromotion(ctx context.Context, p *models.Promotion) error {
	return s.store.UpdatePromotion(ctx, p)
}

func (s *AdminService) DeletePromotion(ctx context.Context, id int64) error {
	return s.store.DeletePromotion(ctx, id)
}

// --- Users ---

func (s *AdminService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.store.ListUsers(ctx)
}

// GetUserDetail returns one user together with their order history for the
// back-office detail page.
func (s *AdminService) GetUserDetail(ctx context.Context, userID int64) (*models.User, []models.TransactionDetail, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	txs, err := s.store.ListTransactionsByUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	return user, txs, nil
}

func (s *AdminService) SetRewardsBalance(ctx context.Context, userID, balance int64) (*models.User, error) {
	user, err := s.store.SetRewardsBalance(ctx, userID, balance)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Rewards balance overwritten",
		zap.Int64("user_id", userID),
		zap.Int64("balance", balance))
	return user, nil
}
