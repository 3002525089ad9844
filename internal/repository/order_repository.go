package repository

import (
	"time"

	"github.com/pawmemo/pawmemo-backend/internal/models"
	"gorm.io/gorm"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) Create(order *models.PaymentOrder) error {
	return r.db.Create(order).Error
}

func (r *OrderRepository) GetByOrderNo(orderNo string) (*models.PaymentOrder, error) {
	var order models.PaymentOrder
	err := r.db.Where("order_no = ?", orderNo).First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepository) GetUserOrders(userID uint) ([]models.PaymentOrder, error) {
	var orders []models.PaymentOrder
	err := r.db.Where("user_id = ?", userID).Order("created_at desc").Find(&orders).Error
	return orders, err
}

// CompletePending settles a pending order as paid. The conditional update
// on status guarantees that when two notifications race, exactly one wins;
// the tier upgrade, the platform reference, and the ledger entry all commit
// in the same transaction or not at all. The tier update is guarded by
// tier_level < target so a paid order can never downgrade a user.
func (r *OrderRepository) CompletePending(orderNo string, platformRef string, paidAt time.Time) (bool, error) {
	won := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var order models.PaymentOrder
		if err := tx.Where("order_no = ?", orderNo).First(&order).Error; err != nil {
			return err
		}

		res := tx.Model(&models.PaymentOrder{}).
			Where("order_no = ? AND status = ?", orderNo, models.OrderStatusPending).
			Updates(map[string]interface{}{
				"status":       models.OrderStatusPaid,
				"platform_ref": platformRef,
				"paid_at":      paidAt,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Lost the race or the order was already terminal; no-op.
			return nil
		}
		won = true

		var user models.User
		if err := tx.First(&user, order.UserID).Error; err != nil {
			return err
		}

		tierAfter := user.TierLevel
		if order.TierTarget > user.TierLevel {
			up := tx.Model(&models.User{}).
				Where("id = ? AND tier_level < ?", order.UserID, order.TierTarget).
				Update("tier_level", order.TierTarget)
			if up.Error != nil {
				return up.Error
			}
			if up.RowsAffected > 0 {
				tierAfter = order.TierTarget
			}
		}

		entry := models.PaymentLedger{
			OrderNo:    orderNo,
			UserID:     order.UserID,
			Amount:     order.Amount,
			TierBefore: user.TierLevel,
			TierAfter:  tierAfter,
		}
		return tx.Create(&entry).Error
	})
	return won, err
}

// TransitionPending moves a pending order to a non-paid terminal status.
// Returns false without error when the order was already terminal.
func (r *OrderRepository) TransitionPending(orderNo string, status models.OrderStatus, platformRef string) (bool, error) {
	updates := map[string]interface{}{"status": status}
	if platformRef != "" {
		updates["platform_ref"] = platformRef
	}
	res := r.db.Model(&models.PaymentOrder{}).
		Where("order_no = ? AND status = ?", orderNo, models.OrderStatusPending).
		Updates(updates)
	return res.RowsAffected > 0, res.Error
}

// RefundPaid marks a paid order refunded. Refund is a distinct terminal
// state reachable only from paid.
func (r *OrderRepository) RefundPaid(orderNo string, platformRef string) (bool, error) {
	updates := map[string]interface{}{"status": models.OrderStatusRefunded}
	if platformRef != "" {
		updates["platform_ref"] = platformRef
	}
	res := r.db.Model(&models.PaymentOrder{}).
		Where("order_no = ? AND status = ?", orderNo, models.OrderStatusPaid).
		Updates(updates)
	return res.RowsAffected > 0, res.Error
}

func (r *OrderRepository) GetLedgerEntries(userID uint) ([]models.PaymentLedger, error) {
	var entries []models.PaymentLedger
	err := r.db.Where("user_id = ?", userID).Order("created_at desc").Find(&entries).Error
	return entries, err
}
