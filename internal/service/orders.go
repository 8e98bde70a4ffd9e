package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"dpstore-backend/internal/broker"
	"dpstore-backend/internal/models"
	"dpstore-backend/internal/store"
	"dpstore-backend/internal/util"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// Redemption is capped at 10% of the pre-discount order value; accrual pays
// 1% of the gross (pre-redemption) value. Amounts are whole rupiah, so the
// floor in both rules is integer division.
const (
	redemptionCapDivisor = 10
	accrualRateDivisor   = 100
	externalIDAttempts   = 3
)

var ErrProductUnavailable = errors.New("product not found or inactive")

// OrderService owns the transaction/rewards workflow: order creation with
// optional rewards redemption, and the admin status transition that accrues
// rewards on success.
type OrderService struct {
	store  *store.Store
	events *broker.NotificationPublisher
	logger *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(store *store.Store, events *broker.NotificationPublisher) *OrderService {
	return &OrderService{
		store:  store,
		events: events,
		logger: util.GetLogger(),
	}
}

// CreateOrderParams is the validated input for order creation. UserID is nil
// for guest checkout; EmailForGuest must then carry the contact address
// (enforced by the handler before the store is touched).
type CreateOrderParams struct {
	ProductID     int64
	Quantity      int
	UserGameID    string
	PaymentMethod string
	UseRewards    bool
	UserID        *int64
	UserEmail     string
	UserFullName  string
	EmailForGuest *string
}

// RedemptionFor returns the points redeemed against a gross order value:
// min(floor(gross * 0.10), balance), never negative.
func RedemptionFor(gross, balance int64) int64 {
	if gross <= 0 || balance <= 0 {
		return 0
	}
	cap := gross / redemptionCapDivisor
	if balance < cap {
		return balance
	}
	return cap
}

// AccrualFor returns the points earned on a successful order:
// floor(0.01 * (totalPrice + rewardsUsed)), computed on the gross value.
func AccrualFor(totalPrice, rewardsUsed int64) int64 {
	original := totalPrice + rewardsUsed
	if original <= 0 {
		return 0
	}
	return original / accrualRateDivisor
}

const base36 = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NewExternalID builds a human-facing transaction id of the form
// TX-DP-<epochMillis>-<3 random base36 chars>. The external_id column is
// UNIQUE and inserts retry on collision, so the short suffix is safe.
func NewExternalID() string {
	var b strings.Builder
	b.WriteString("TX-DP-")
	b.WriteString(fmt.Sprintf("%d", time.Now().UnixMilli()))
	b.WriteByte('-')
	for i := 0; i < 3; i++ {
		b.WriteByte(base36[rand.Intn(len(base36))])
	}
	return b.String()
}

// CreateOrder runs the redemption path: re-reads the product price inside a
// database transaction, optionally redeems rewards, inserts the PENDING row,
// and commits. Nothing persists if any step fails. The confirmation email is
// dispatched after commit and never affects the result.
func (s *OrderService) CreateOrder(ctx context.Context, p *CreateOrderParams) (*models.Transaction, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.CreateOrder")
	defer span.End()

	var (
		created       models.Transaction
		productName   string
		recipientMail string
		recipientName string
	)

	err := s.store.WithTx(ctx, func(tx *sqlx.Tx) error {
		product, err := s.store.GetActiveProductTx(ctx, tx, p.ProductID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrProductUnavailable
			}
			return err
		}
		productName = product.Name

		gross := product.Price * int64(p.Quantity)
		totalPrice := gross
		var rewardsUsed int64

		recipientMail = p.UserEmail
		recipientName = p.UserFullName

		if p.UserID != nil && p.UseRewards {
			user, err := s.store.GetUserForUpdateTx(ctx, tx, *p.UserID)
			if err != nil && !errors.Is(err, store.ErrNotFound) {
				return err
			}
			if user != nil {
				recipientMail = user.Email
				recipientName = user.FullName
				if user.RewardsBalance > 0 {
					rewardsUsed = RedemptionFor(gross, user.RewardsBalance)
					totalPrice = gross - rewardsUsed
					if totalPrice < 0 {
						totalPrice = 0
					}
					if err := s.store.DebitRewardsTx(ctx, tx, *p.UserID, rewardsUsed); err != nil {
						return err
					}
				}
			}
		}

		created = models.Transaction{
			UserID:        p.UserID,
			ProductID:     p.ProductID,
			Quantity:      p.Quantity,
			PricePerItem:  product.Price,
			TotalPrice:    totalPrice,
			PaymentMethod: p.PaymentMethod,
			Status:        models.StatusPending,
			UserGameID:    p.UserGameID,
			RewardsUsed:   rewardsUsed,
		}
		if p.UserID == nil {
			created.EmailForGuest = p.EmailForGuest
		}

		for attempt := 0; ; attempt++ {
			created.ExternalID = NewExternalID()
			err := s.store.InsertTransactionTx(ctx, tx, &created)
			if err == nil {
				return nil
			}
			if errors.Is(err, store.ErrConflict) && attempt < externalIDAttempts-1 {
				s.logger.Warn("External id collision, retrying",
					zap.String("external_id", created.ExternalID))
				continue
			}
			return err
		}
	})
	if err != nil {
		if errors.Is(err, ErrProductUnavailable) {
			util.TransactionsFailedTotal.WithLabelValues("product_unavailable").Inc()
		} else {
			util.TransactionsFailedTotal.WithLabelValues("db_error").Inc()
		}
		return nil, err
	}

	util.TransactionsCreatedTotal.Inc()
	if created.RewardsUsed > 0 {
		util.RewardsRedeemedPoints.Add(float64(created.RewardsUsed))
	}
	s.logger.Info("Transaction created",
		zap.String("external_id", created.ExternalID),
		zap.Int64("total_price", created.TotalPrice),
		zap.Int64("rewards_used", created.RewardsUsed))

	s.notifyOrderCreated(ctx, &created, productName, recipientMail, recipientName, p)

	return &created, nil
}

// notifyOrderCreated publishes the confirmation-mail event. Best-effort: a
// broker failure is logged and the committed order stands.
func (s *OrderService) notifyOrderCreated(ctx context.Context, t *models.Transaction, productName, email, name string, p *CreateOrderParams) {
	if t.UserID == nil {
		if p.EmailForGuest == nil {
			return
		}
		email = *p.EmailForGuest
		name = "Pelanggan"
	}
	if email == "" {
		return
	}
	if name == "" {
		name = "Pelanggan"
	}

	ev := &models.OrderCreatedEvent{
		BaseEvent:      broker.NewBaseEvent(models.EventTypeOrderCreated),
		ExternalID:     t.ExternalID,
		RecipientEmail: email,
		RecipientName:  name,
		ProductName:    productName,
		Quantity:       t.Quantity,
		UserGameID:     t.UserGameID,
		PaymentMethod:  t.PaymentMethod,
		TotalPrice:     t.TotalPrice,
	}
	if err := s.events.PublishOrderCreated(ctx, ev); err != nil {
		s.logger.Error("Failed to publish OrderCreated event",
			zap.String("external_id", t.ExternalID),
			zap.Error(err))
	}
}

// UpdateStatus runs the accrual path: sets the new status and, on the first
// transition into SUCCESS for a registered user's order, credits 1% of the
// gross value back to the user and stamps rewards_earned. Repeated SUCCESS
// transitions are no-ops for the balance. Any status may follow any other;
// redeemed points are not refunded on FAILED/EXPIRED/REFUNDED.
func (s *OrderService) UpdateStatus(ctx context.Context, transactionID, newStatus string) (*models.Transaction, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.UpdateStatus")
	defer span.End()

	newStatus = strings.ToUpper(newStatus)

	var (
		updated *models.Transaction
		accrued int64
	)
	err := s.store.WithTx(ctx, func(tx *sqlx.Tx) error {
		accrued = 0
		t, err := s.store.UpdateStatusTx(ctx, tx, transactionID, newStatus)
		if err != nil {
			return err
		}

		if t.Status == models.StatusSuccess && t.UserID != nil && t.RewardsEarned == nil {
			earned := AccrualFor(t.TotalPrice, t.RewardsUsed)
			if earned > 0 {
				if err := s.store.CreditRewardsTx(ctx, tx, *t.UserID, earned); err != nil {
					return err
				}
				if err := s.store.SetRewardsEarnedTx(ctx, tx, t.ID, earned); err != nil {
					return err
				}
				t.RewardsEarned = &earned
				accrued = earned
			}
		}

		updated = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	util.StatusTransitionsTotal.WithLabelValues(newStatus).Inc()
	if accrued > 0 {
		util.RewardsAccruedPoints.Add(float64(accrued))
	}
	s.logger.Info("Transaction status updated",
		zap.String("transaction_id", updated.ID),
		zap.String("status", updated.Status))

	return updated, nil
}

// CheckByExternalID looks a transaction up for the public status page.
func (s *OrderService) CheckByExternalID(ctx context.Context, externalID string) (*models.TransactionDetail, error) {
	return s.store.GetTransactionByExternalID(ctx, externalID)
}

// HistoryForUser returns the authenticated user's order history.
func (s *OrderService) HistoryForUser(ctx context.Context, userID int64) ([]models.TransactionDetail, error) {
	return s.store.ListTransactionsByUser(ctx, userID)
}
