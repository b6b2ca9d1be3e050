package mysql

import (
	"errors"
	"log"
	"time"

	"checkout-service/internal/domain"
	"checkout-service/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepo{db: db}
}

// CreateFromCart consumes the cart and creates the order atomically. The
// consume step is a conditional UPDATE so two concurrent checkouts of the
// same cart cannot both succeed: the loser sees zero affected rows.
func (r *orderRepo) CreateFromCart(order *domain.Order, cartID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.Cart{}).
			Where("id = ? AND status = ?", cartID, domain.CartStatusOpen).
			Update("status", domain.CartStatusConsumed)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.NewConflict("cart %s already consumed", cartID)
		}
		if err := tx.Create(order).Error; err != nil {
			log.Printf("order: create from cart %s: %v", cartID, err)
			return err
		}
		return nil
	})
}

func (r *orderRepo) FindByID(id uint64) (*domain.Order, error) {
	var o domain.Order
	if err := r.db.Preload("Items").First(&o, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("order: find %d: %v", id, err)
		return nil, err
	}
	return &o, nil
}

func (r *orderRepo) FindByReference(reference string) (*domain.Order, error) {
	var o domain.Order
	if err := r.db.Preload("Items").First(&o, "reference = ?", reference).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("order: find by reference %s: %v", reference, err)
		return nil, err
	}
	return &o, nil
}

func (r *orderRepo) FindByWorkspace(workspaceID uint64) ([]domain.Order, error) {
	var out []domain.Order
	if err := r.db.Preload("Items").
		Where("workspace_id = ?", workspaceID).
		Order("created_at DESC").Find(&out).Error; err != nil {
		log.Printf("order: find by workspace %d: %v", workspaceID, err)
		return nil, err
	}
	return out, nil
}

func (r *orderRepo) RecordChargeResult(orderID uint64, to domain.OrderStatus, paymentRef, declineReason string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var o domain.Order
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&o, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NewNotFound("order")
			}
			return err
		}
		if !o.Status.CanTransitionTo(to) {
			return &domain.InvalidTransitionError{From: o.Status, To: to}
		}
		return tx.Model(&o).Updates(map[string]any{
			"status":         to,
			"payment_ref":    paymentRef,
			"decline_reason": declineReason,
		}).Error
	})
}

func (r *orderRepo) TransitionStatus(orderID uint64, to domain.OrderStatus, actor string) (*domain.Order, error) {
	var updated *domain.Order
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var o domain.Order
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&o, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NewNotFound("order")
			}
			return err
		}
		if !o.Status.CanTransitionTo(to) {
			return &domain.InvalidTransitionError{From: o.Status, To: to}
		}
		audit := domain.OrderStatusAudit{
			OrderID:    o.ID,
			Actor:      actor,
			FromStatus: o.Status,
			ToStatus:   to,
		}
		if err := tx.Model(&o).Update("status", to).Error; err != nil {
			return err
		}
		if err := tx.Create(&audit).Error; err != nil {
			return err
		}
		o.Status = to
		updated = &o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// applyEvent runs one webhook reconciliation: the idempotency record insert
// and the order mutation share a transaction, so a rejected event rolls the
// record back and a later legitimate delivery can still apply.
func (r *orderRepo) applyEvent(eventID, eventType, orderReference string, apply func(tx *gorm.DB, o *domain.Order) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&domain.WebhookEvent{
			EventID:     eventID,
			EventType:   eventType,
			ProcessedAt: time.Now(),
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrEventAlreadyProcessed
		}
		var o domain.Order
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&o, "reference = ?", orderReference).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NewNotFound("order")
			}
			return err
		}
		return apply(tx, &o)
	})
}

func (r *orderRepo) ApplyPaymentSucceeded(eventID, orderReference, paymentRef string) error {
	return r.applyEvent(eventID, "payment.succeeded", orderReference, func(tx *gorm.DB, o *domain.Order) error {
		if !o.Status.CanTransitionTo(domain.StatusCompleted) {
			return &domain.InvalidTransitionError{From: o.Status, To: domain.StatusCompleted}
		}
		return tx.Model(o).Updates(map[string]any{
			"status":      domain.StatusCompleted,
			"payment_ref": paymentRef,
		}).Error
	})
}

func (r *orderRepo) ApplyPaymentFailed(eventID, orderReference, declineReason string) error {
	return r.applyEvent(eventID, "payment.failed", orderReference, func(tx *gorm.DB, o *domain.Order) error {
		if !o.Status.CanTransitionTo(domain.StatusFailed) {
			return &domain.InvalidTransitionError{From: o.Status, To: domain.StatusFailed}
		}
		return tx.Model(o).Updates(map[string]any{
			"status":         domain.StatusFailed,
			"decline_reason": declineReason,
		}).Error
	})
}

func (r *orderRepo) ApplyRefund(eventID, orderReference string, amount int64, partial bool) error {
	eventType := "charge.refunded"
	target := domain.StatusRefunded
	if partial {
		eventType = "charge.partially_refunded"
		target = domain.StatusPartiallyRefunded
	}
	return r.applyEvent(eventID, eventType, orderReference, func(tx *gorm.DB, o *domain.Order) error {
		if o.Status != domain.StatusCompleted {
			return domain.NewConflict("cannot refund order %s in status %s", o.Reference, o.Status)
		}
		return tx.Model(o).Updates(map[string]any{
			"status":          target,
			"refunded_amount": amount,
		}).Error
	})
}

func (r *orderRepo) AggregateCompletedByDay(workspaceID uint64) ([]domain.AnalyticsBucket, error) {
	var buckets []domain.AnalyticsBucket
	err := r.db.Model(&domain.Order{}).
		Select("DATE(created_at) AS day, SUM(grand_total) AS revenue, COUNT(*) AS order_count").
		Where("workspace_id = ? AND status = ?", workspaceID, domain.StatusCompleted).
		Group("DATE(created_at)").
		Order("day ASC").
		Scan(&buckets).Error
	if err != nil {
		log.Printf("order: aggregate workspace %d: %v", workspaceID, err)
		return nil, err
	}
	return buckets, nil
}
