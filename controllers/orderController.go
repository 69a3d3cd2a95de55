package controllers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Kariqs/maxtech-api/cache"
	"github.com/Kariqs/maxtech-api/initializers"
	"github.com/Kariqs/maxtech-api/models"
	"github.com/Kariqs/maxtech-api/services"
	"github.com/Kariqs/maxtech-api/utils"
	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"
)

var storeLocations = map[string]string{
	"hinjewadi": "123 Tech Avenue, Hinjewadi, Pune",
	"kothrud":   "456 Innovation Road, Kothrud, Pune",
}

func storeAddress(store string) string {
	if addr, ok := storeLocations[strings.ToLower(strings.TrimSpace(store))]; ok {
		return addr
	}
	return "Store address not found."
}

type confirmationOrder struct {
	CartItems      []services.CheckoutLine `json:"cartItems"`
	BillingDetails *services.BillingDetails `json:"billingDetails" binding:"required"`
	Coupon         string                  `json:"coupon"`
	DeliveryMethod string                  `json:"deliveryMethod" binding:"required"`
	Store          string                  `json:"store"`
	Date           string                  `json:"date"`
}

type confirmationRequest struct {
	To    string             `json:"to"`
	Order *confirmationOrder `json:"order" binding:"required"`
}

// pickupDate accepts an RFC 3339 timestamp or a plain date.
func pickupDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("invalid date %q", raw)
}

func deliveryLabel(method string) string {
	if method == models.DeliveryHome {
		return "For Delivery"
	}
	return "For Pickup"
}

func sendOrderEmails(order *models.Order, billing services.BillingDetails) {
	var note string
	if order.DeliveryMethod == models.DeliveryPickup {
		note = "Pickup at " + storeAddress(order.Store)
	} else {
		note = "Home delivery"
	}

	if to := initializers.Cfg.DetailsEmail; to != "" {
		subject := fmt.Sprintf("New Order Received #%d - %s", order.ID, deliveryLabel(order.DeliveryMethod))
		data := utils.EmailData{Message: note, Order: order, LogoURL: initializers.Cfg.LogoURL}
		if err := utils.SendEmail(to, subject, data, "order_admin.html"); err != nil {
			slog.Error("Failed to send admin order email", "order", order.ID, "error", err)
		}
	}

	if billing.Email != "" {
		data := utils.EmailData{
			Name:    orName(billing.FirstName, "there"),
			Message: "We've received your order and are getting it ready for you. " + note + ".",
			Order:   order,
			LogoURL: initializers.Cfg.LogoURL,
		}
		subject := fmt.Sprintf("Your Order Confirmation #%d", order.ID)
		if err := utils.SendEmail(billing.Email, subject, data, "order_customer.html"); err != nil {
			slog.Error("Failed to send customer order email", "order", order.ID, "error", err)
		}
	}
}

// cacheKeysForOrder lists the catalog entries whose stock the order changed.
func cacheKeysForOrder(order *models.Order) []string {
	var keys []string
	for _, item := range order.Items {
		switch {
		case item.ProductID != nil:
			keys = append(keys, cache.KeyProducts, cache.ProductKey(*item.ProductID))
		case item.AccessoryID != nil:
			keys = append(keys, cache.KeyAccessories, cache.AccessoryKey(*item.AccessoryID))
		}
	}
	return keys
}

func broadcastOrder(event string, order models.Order) {
	if initializers.Feed != nil {
		initializers.Feed.Broadcast(event, order)
	}
}

// SendOrderConfirmation places an order for the signed-in user and mails the
// store and the customer. Mail failures do not fail the order.
func SendOrderConfirmation(ctx *gin.Context) {
	var req confirmationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request data", err)
		return
	}

	date, err := pickupDate(req.Order.Date)
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request data", err)
		return
	}

	order, err := services.PlaceOrder(ctx.Request.Context(), initializers.DB, services.PlaceOrderInput{
		UserID:         currentUser(ctx).UserID,
		Lines:          req.Order.CartItems,
		Billing:        *req.Order.BillingDetails,
		DeliveryMethod: req.Order.DeliveryMethod,
		Store:          req.Order.Store,
		PickupDate:     date,
		CouponCode:     req.Order.Coupon,
	})
	if err != nil {
		sendServiceError(ctx, err, msgInternalServerError)
		return
	}

	sendOrderEmails(order, *req.Order.BillingDetails)
	initializers.Catalog.Delete(ctx.Request.Context(), cacheKeysForOrder(order)...)
	broadcastOrder("order.created", *order)

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"success": true,
		"message": "Order placed and emails sent successfully",
		"data":    order,
	})
}

func GetOrders(ctx *gin.Context) {
	user := currentUser(ctx)

	query := initializers.DB.
		Preload("Items.Product").
		Preload("Items.Accessory").
		Preload("Items.Part").
		Preload("User").
		Order("created_at desc")
	if user.Role != models.RoleSuperAdmin {
		query = query.Where("user_id = ?", user.UserID)
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, msgInternalServerError, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"success": true, "orders": orders})
}

type orderStatusInput struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

func UpdateOrderStatus(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}
	var input orderStatusInput
	if err := ctx.ShouldBindJSON(&input); err != nil || !input.Status.Valid() {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid order status")
		return
	}

	var order models.Order
	if err := initializers.DB.First(&order, id).Error; err != nil {
		sendServiceError(ctx, err, msgInternalServerError)
		return
	}
	if err := initializers.DB.Model(&order).Update("status", input.Status).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, msgInternalServerError, err)
		return
	}
	order.Status = input.Status

	broadcastOrder("order.updated", order)
	sendJSONResponse(ctx, http.StatusOK, gin.H{"success": true, "order": order})
}

func DeleteOrder(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	err := initializers.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Order{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		sendServiceError(ctx, err, msgInternalServerError)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"success": true, "message": "Order deleted successfully"})
}

// GetUndeliveredCount counts orders still waiting to reach the customer.
func GetUndeliveredCount(ctx *gin.Context) {
	var count int64
	closed := []models.OrderStatus{models.OrderStatusDelivered, models.OrderStatusCancelled, models.OrderStatusFailed}
	if err := initializers.DB.Model(&models.Order{}).Where("status NOT IN ?", closed).Count(&count).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, msgInternalServerError, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"success": true, "count": count})
}

func ExportOrders(ctx *gin.Context) {
	var orders []models.Order
	if err := initializers.DB.Preload("Items").Order("created_at desc").Find(&orders).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to fetch orders", err)
		return
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Orders")
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to create Excel sheet", err)
		return
	}

	headers := []string{
		"ID", "UserID", "Status", "DeliveryMethod", "Store", "Customer", "Email", "Phone",
		"Address", "Items", "Coupon", "Discount", "Total", "CreatedAt",
	}
	headerRow := sheet.AddRow()
	for _, h := range headers {
		headerRow.AddCell().SetValue(h)
	}

	for _, o := range orders {
		row := sheet.AddRow()
		row.AddCell().SetValue(o.ID)
		row.AddCell().SetValue(o.UserID)
		row.AddCell().SetValue(string(o.Status))
		row.AddCell().SetValue(o.DeliveryMethod)
		row.AddCell().SetValue(o.Store)
		row.AddCell().SetValue(o.CustomerName)
		row.AddCell().SetValue(o.CustomerEmail)
		row.AddCell().SetValue(o.CustomerPhone)
		row.AddCell().SetValue(o.ShippingAddress)

		var items []string
		for _, item := range o.Items {
			items = append(items, fmt.Sprintf("%s x%d", item.Name, item.Quantity))
		}
		row.AddCell().SetValue(strings.Join(items, "; "))
		row.AddCell().SetValue(o.CouponCode)
		row.AddCell().SetValue(o.DiscountAmount.StringFixed(2))
		row.AddCell().SetValue(o.TotalAmount.StringFixed(2))
		row.AddCell().SetValue(o.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	ctx.Header("Content-Disposition", "attachment; filename=orders.xlsx")
	ctx.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Header("Content-Transfer-Encoding", "binary")
	ctx.Header("Expires", "0")

	if err := file.Write(ctx.Writer); err != nil {
		slog.Error("Failed to write Excel file", "error", err)
	}
}

// OrderFeed upgrades the request to a websocket that receives order events.
func OrderFeed(ctx *gin.Context) {
	if initializers.Feed == nil {
		sendErrorResponse(ctx, http.StatusServiceUnavailable, "Order feed is not available")
		return
	}
	initializers.Feed.Serve(ctx.Writer, ctx.Request)
}

type contactInput struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone" binding:"required"`
	Message string `json:"message" binding:"required"`
}

func ContactUs(ctx *gin.Context) {
	var input contactInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "All fields are required")
		return
	}
	to := initializers.Cfg.DetailsEmail
	if to == "" {
		sendErrorResponse(ctx, http.StatusInternalServerError, "Recipient email not configured")
		return
	}

	data := utils.EmailData{
		Message: "New Contact Form Submission",
		Fields: []utils.Field{
			{Label: "Name", Value: input.Name},
			{Label: "Email", Value: input.Email},
			{Label: "Phone", Value: input.Phone},
			{Label: "Message", Value: input.Message},
		},
	}
	if err := utils.SendEmail(to, "New Contact Form Submission from "+input.Name, data, "contact.html"); err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to send message", err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"success": true, "message": "Message sent successfully!"})
}

type repairForm struct {
	FullName               string   `json:"fullName"`
	Email                  string   `json:"email"`
	Phone                  string   `json:"phone"`
	DeviceBrand            string   `json:"deviceBrand"`
	IssueType              string   `json:"issueType"`
	Description            string   `json:"description"`
	SelectedIssueFromIcons string   `json:"selectedIssueFromIcons"`
	ContactMethod          string   `json:"contactMethod"`
	UploadedFiles          []string `json:"uploadedFiles"`
}

type repairFormRequest struct {
	To       string      `json:"to" binding:"required"`
	FormData *repairForm `json:"formData" binding:"required"`
}

// ContactUsForm mails a repair request. The configured details address takes
// precedence over the recipient in the body.
func ContactUsForm(ctx *gin.Context) {
	var req repairFormRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid request data")
		return
	}
	to := initializers.Cfg.DetailsEmail
	if to == "" {
		to = req.To
	}

	form := req.FormData
	fields := []utils.Field{
		{Label: "Name", Value: form.FullName},
		{Label: "Email", Value: form.Email},
		{Label: "Phone", Value: form.Phone},
		{Label: "Device Brand", Value: form.DeviceBrand},
		{Label: "Issue Type", Value: form.IssueType},
		{Label: "Selected Issue", Value: form.SelectedIssueFromIcons},
		{Label: "Description", Value: form.Description},
		{Label: "Preferred Contact Method", Value: form.ContactMethod},
	}
	if len(form.UploadedFiles) > 0 {
		fields = append(fields, utils.Field{Label: "Uploaded Files", Value: strings.Join(form.UploadedFiles, ", ")})
	}

	data := utils.EmailData{Message: "New Contact Form Submission", Fields: fields}
	if err := utils.SendEmail(to, "Contact Form Submission from "+form.FullName, data, "contact.html"); err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to send email", err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Email sent successfully"})
}
