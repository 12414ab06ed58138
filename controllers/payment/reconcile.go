package paymentControllers

import (
	"errors"
	"log"

	"gorm.io/gorm"

	orderControllers "github.com/Turki20/HallaOrder/controllers/order"
	"github.com/Turki20/HallaOrder/models"
)

// ApplyCheckoutCompleted is the shared completion routine for the synchronous
// success poll and the asynchronous webhook. It must be idempotent: once a
// session has been applied, re-invoking it for the same session id changes
// nothing.
//
// Lookup is by transaction_id = session id. After the first application the
// transaction id has been swapped to the payment-intent id, so a re-delivered
// event finds no row and is a no-op; a concurrent duplicate that still finds
// the row is stopped by the Completed status check.
func ApplyCheckoutCompleted(db *gorm.DB, sessionID, paymentIntent string) (bool, error) {
	var payment models.Payment
	err := db.Preload("Order").Preload("Order.Branch").
		Where("transaction_id = ?", sessionID).
		First(&payment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if payment.Status == models.PaymentCompleted {
		return false, nil
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{"status": models.PaymentCompleted}
		if paymentIntent != "" {
			updates["transaction_id"] = paymentIntent
		}
		if err := tx.Model(&models.Payment{}).Where("id = ?", payment.ID).
			Updates(updates).Error; err != nil {
			return err
		}

		if payment.Order == nil {
			return nil
		}
		order := payment.Order

		if err := tx.Model(&models.Order{}).Where("id = ?", order.ID).
			Update("status", models.OrderStatusDelivered).Error; err != nil {
			return err
		}

		// Invoice and wallet credit are side effects of the payment: a failure
		// here is logged, not allowed to roll back the payment update.
		if err := ensureInvoice(tx, order); err != nil {
			log.Printf("invoice creation failed for order %d: %v", order.ID, err)
		}
		if err := creditWallet(tx, order); err != nil {
			log.Printf("wallet credit failed for order %d: %v", order.ID, err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	if payment.Order != nil {
		payment.Order.Status = models.OrderStatusDelivered
		orderControllers.BroadcastOrderUpdate(payment.Order)
	}
	return true, nil
}

// MarkPaymentFailed handles expiry and decline events. Only the payment row is
// touched; a failed payment never cancels the order.
func MarkPaymentFailed(db *gorm.DB, transactionID string) error {
	return db.Model(&models.Payment{}).
		Where("transaction_id = ?", transactionID).
		Update("status", models.PaymentFailed).Error
}

// ensureInvoice creates the order's invoice if none exists (get-or-create; no
// unique constraint backs this).
func ensureInvoice(tx *gorm.DB, order *models.Order) error {
	var count int64
	if err := tx.Model(&models.Invoice{}).Where("order_id = ?", order.ID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	invoice := models.Invoice{
		OrderID:     order.ID,
		TotalAmount: order.TotalPrice,
		SentVia:     models.SentViaEmail,
	}
	if order.CustomerID != nil {
		var customer models.User
		if err := tx.First(&customer, *order.CustomerID).Error; err == nil {
			invoice.CustomerName = customer.Name
			invoice.CustomerPhone = customer.Phone
			invoice.CustomerEmail = customer.Email
		}
	} else {
		invoice.CustomerName = order.GuestName
		invoice.CustomerPhone = order.GuestPhone
		invoice.SentVia = models.SentViaSMS
	}
	return tx.Create(&invoice).Error
}

// creditWallet appends the restaurant's CREDIT for a paid order, once.
func creditWallet(tx *gorm.DB, order *models.Order) error {
	var count int64
	if err := tx.Model(&models.WalletTransaction{}).
		Where("order_id = ? AND kind = ?", order.ID, models.WalletCredit).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	credit := models.WalletTransaction{
		RestaurantID:  order.Branch.RestaurantID,
		OrderID:       &order.ID,
		Kind:          models.WalletCredit,
		AmountHalalah: models.ToHalalah(order.TotalPrice),
	}
	return tx.Create(&credit).Error
}
