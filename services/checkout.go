package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Kariqs/maxtech-api/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CheckoutLine struct {
	ID       uint            `json:"id"`
	Type     string          `json:"type"`
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`

	// captured is set for lines read from the stored cart, whose price was
	// fixed when the item was added.
	captured bool
}

type BillingDetails struct {
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	StreetAddress1 string `json:"streetAddress1"`
	StreetAddress2 string `json:"streetAddress2"`
	City           string `json:"city"`
	State          string `json:"state"`
	Pin            string `json:"pin"`
	Country        string `json:"country"`
	Notes          string `json:"notes"`
}

func (b BillingDetails) FullName() string {
	return strings.TrimSpace(b.FirstName + " " + b.LastName)
}

func (b BillingDetails) Address() string {
	parts := []string{b.StreetAddress1, b.StreetAddress2, b.City, b.State, b.Pin, b.Country}
	var filled []string
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			filled = append(filled, strings.TrimSpace(p))
		}
	}
	return strings.Join(filled, ", ")
}

type PlaceOrderInput struct {
	UserID         uint
	Lines          []CheckoutLine
	Billing        BillingDetails
	DeliveryMethod string
	Store          string
	PickupDate     *time.Time
	CouponCode     string
}

// PlaceOrder turns checkout lines into an order. Lines that do not resolve to
// a catalog item are skipped; if none resolve the call fails. With no lines the
// user's stored cart is used. The user's cart is emptied in the same
// transaction that creates the order.
func PlaceOrder(ctx context.Context, db *gorm.DB, in PlaceOrderInput) (*models.Order, error) {
	if strings.TrimSpace(in.DeliveryMethod) == "" {
		return nil, newError(ErrValidation, "deliveryMethod is required")
	}

	lines := in.Lines
	if len(lines) == 0 {
		stored, err := cartLines(ctx, db, in.UserID)
		if err != nil {
			return nil, err
		}
		lines = stored
	}
	if len(lines) == 0 {
		return nil, newError(ErrValidation, "No items to order")
	}

	order := models.Order{
		UserID:          in.UserID,
		Status:          models.OrderStatusPending,
		DeliveryMethod:  in.DeliveryMethod,
		Store:           in.Store,
		PickupDate:      in.PickupDate,
		CustomerName:    in.Billing.FullName(),
		CustomerEmail:   in.Billing.Email,
		CustomerPhone:   in.Billing.Phone,
		ShippingAddress: in.Billing.Address(),
		Notes:           in.Billing.Notes,
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		total := decimal.Zero
		for _, line := range lines {
			if line.Quantity < 1 {
				continue
			}
			item, err := resolveLine(tx, line)
			if err != nil {
				return err
			}
			if item == nil {
				continue
			}
			order.Items = append(order.Items, *item)
			total = total.Add(item.LineTotal())
		}
		if len(order.Items) == 0 {
			return newError(ErrValidation, "No valid items found in DB.")
		}

		order.TotalAmount = total
		if in.CouponCode != "" {
			coupon, err := FindCoupon(ctx, tx, in.CouponCode)
			if err != nil {
				return err
			}
			quote, err := ApplyCoupon(coupon, total, time.Now())
			if err != nil {
				return err
			}
			order.CouponCode = coupon.Code
			order.DiscountAmount = quote.Discount
			order.TotalAmount = quote.FinalAmount
		}

		if err := tx.Create(&order).Error; err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		return tx.Unscoped().Where("user_id = ?", in.UserID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func cartLines(ctx context.Context, db *gorm.DB, userID uint) ([]CheckoutLine, error) {
	var items []models.CartItem
	if err := db.WithContext(ctx).Where("user_id = ?", userID).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}

	lines := make([]CheckoutLine, 0, len(items))
	for _, item := range items {
		typ, id := item.Item()
		lines = append(lines, CheckoutLine{ID: id, Type: typ, Name: item.Name, Quantity: item.Quantity, Price: item.UnitPrice, captured: true})
	}
	return lines, nil
}

// resolveLine locks the referenced catalog row, deducts stock and returns the
// order item. A nil item means the line does not match anything.
func resolveLine(tx *gorm.DB, line CheckoutLine) (*models.OrderItem, error) {
	locked := tx.Clauses(clause.Locking{Strength: "UPDATE"})
	item := &models.OrderItem{Quantity: line.Quantity}

	var (
		table string
		stock int
		name  string
		price decimal.Decimal
		err   error
	)
	switch line.Type {
	case models.ItemTypeProduct:
		var p models.Product
		err = locked.First(&p, line.ID).Error
		table, stock, name, price = "products", p.Stock, p.Name, p.SellingPrice
		item.ProductID = &p.ID
	case models.ItemTypeAccessory:
		var a models.Accessory
		err = locked.First(&a, line.ID).Error
		table, stock, name, price = "accessories", a.Stock, a.Name, a.SellingPrice
		item.AccessoryID = &a.ID
	case models.ItemTypePart:
		var p models.Part
		err = locked.First(&p, line.ID).Error
		table, stock, name, price = "parts", p.Stock, p.Name, p.Price
		item.PartID = &p.ID
	default:
		return nil, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if stock < line.Quantity {
		return nil, newError(ErrConflict, "Insufficient stock for "+name)
	}
	if err := tx.Table(table).Where("id = ?", line.ID).
		Update("stock", gorm.Expr("stock - ?", line.Quantity)).Error; err != nil {
		return nil, err
	}

	item.Name = name
	item.Price = price
	if line.captured && line.Price.IsPositive() {
		item.Price = line.Price
	}
	return item, nil
}
