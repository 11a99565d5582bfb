package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/Kariqs/agromarket-api/initializers"
	"github.com/Kariqs/agromarket-api/listing"
	"github.com/Kariqs/agromarket-api/middlewares"
	"github.com/Kariqs/agromarket-api/models"
	"github.com/Kariqs/agromarket-api/payments"
	"github.com/Kariqs/agromarket-api/services"
	"github.com/Kariqs/agromarket-api/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type stockError struct {
	ItemID    string
	Name      string
	Available int
}

func (e *stockError) Error() string {
	return fmt.Sprintf("only %d of %s left in stock", e.Available, e.Name)
}

var errOrderItemNotFound = errors.New("order references an unknown item")

// reserveStock prices every line from the catalogue and decrements stock.
// The conditional update keeps stock from going negative under concurrent
// orders.
func reserveStock(tx *gorm.DB, items []models.OrderItem) (float64, error) {
	var total float64
	for i := range items {
		var product models.MarketplaceItem
		if err := tx.Where("id = ?", items[i].ItemID).First(&product).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, fmt.Errorf("%w: %s", errOrderItemNotFound, items[i].ItemID)
			}
			return 0, err
		}

		result := tx.Model(&models.MarketplaceItem{}).
			Where("id = ? AND stock >= ?", product.ID, items[i].Quantity).
			UpdateColumn("stock", gorm.Expr("stock - ?", items[i].Quantity))
		if result.Error != nil {
			return 0, result.Error
		}
		if result.RowsAffected == 0 {
			return 0, &stockError{ItemID: product.ID, Name: product.Name, Available: product.Stock}
		}

		items[i].ID = ""
		items[i].Name = product.Name
		items[i].Price = product.Price
		total += product.Price * float64(items[i].Quantity)
	}
	return total, nil
}

func CreateOrder(ctx *gin.Context) {
	var orderInfo models.Order
	if err := ctx.ShouldBindJSON(&orderInfo); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	order := models.Order{
		UserID:           middlewares.UserID(ctx),
		FirstName:        orderInfo.FirstName,
		LastName:         orderInfo.LastName,
		Email:            orderInfo.Email,
		Phone:            orderInfo.Phone,
		DeliveryLocation: orderInfo.DeliveryLocation,
		Status:           models.OrderStatusPending,
		PaymentStatus:    models.PaymentStatusPending,
		OrderItems:       orderInfo.OrderItems,
	}

	err := db(ctx).Transaction(func(tx *gorm.DB) error {
		total, err := reserveStock(tx, order.OrderItems)
		if err != nil {
			return err
		}
		order.Total = total
		return tx.Create(&order).Error
	})
	if err != nil {
		var serr *stockError
		switch {
		case errors.As(err, &serr):
			respondWithError(ctx, http.StatusConflict, "Insufficient stock", err)
		case errors.Is(err, errOrderItemNotFound):
			respondWithError(ctx, http.StatusBadRequest, "Invalid order items", err)
		default:
			respondWithError(ctx, http.StatusInternalServerError, "Failed to create order", err)
		}
		return
	}

	clearCart(ctx, order.UserID)
	notify(ctx, services.NotificationNewOrder, "New order",
		fmt.Sprintf("Order %s placed by %s %s for %.2f", order.ID, order.FirstName, order.LastName, order.Total))
	if err := deps.Mailer.Send(ctx.Request.Context(), order.Email, "We received your order", services.TemplateOrderReceived, utils.EmailData{
		Name:    order.FirstName,
		Message: fmt.Sprintf("Your order %s for %.2f has been received.", order.ID, order.Total),
		LinkURL: deps.Config.Mail.FrontendURL + "/orders",
	}); err != nil {
		initializers.Logger.Warn("order email not sent", zap.String("order_id", order.ID), zap.Error(err))
	}

	initiatePayment(ctx, &order)
}

// initiatePayment always answers with the saved order. When Pesapal is not
// configured or fails, the order stays UNPAID.
func initiatePayment(ctx *gin.Context, order *models.Order) {
	res, err := deps.Pesapal.SubmitOrder(ctx.Request.Context(), payments.OrderRequest{
		ID:          "ORDER-" + order.ID,
		Currency:    deps.Pesapal.Currency(),
		Amount:      order.Total,
		Description: "Payment for order #" + order.ID,
		BillingAddress: payments.BillingAddress{
			EmailAddress: order.Email,
			PhoneNumber:  order.Phone,
			CountryCode:  "KE",
			FirstName:    order.FirstName,
			LastName:     order.LastName,
			City:         order.DeliveryLocation,
			Line1:        order.DeliveryLocation,
		},
	})
	if err != nil {
		if !errors.Is(err, payments.ErrNotConfigured) {
			initializers.Logger.Error("pesapal order submission failed", zap.String("order_id", order.ID), zap.Error(err))
		}
		order.PaymentStatus = models.PaymentStatusUnpaid
		if uerr := db(ctx).Model(order).Update("payment_status", order.PaymentStatus).Error; uerr != nil {
			initializers.Logger.Error("failed to mark order unpaid", zap.String("order_id", order.ID), zap.Error(uerr))
		}

		status := http.StatusCreated
		message := "Order created successfully. Payment is not available right now."
		if !errors.Is(err, payments.ErrNotConfigured) {
			status = http.StatusBadGateway
			message = "Order created but payment could not be initiated."
		}
		sendJSONResponse(ctx, status, gin.H{"message": message, "order": order})
		return
	}

	if err := db(ctx).Model(order).Updates(map[string]any{
		"pesapal_tracking_id": res.OrderTrackingID,
		"payment_status":      models.PaymentStatusPending,
	}).Error; err != nil {
		initializers.Logger.Error("order created, but tracking id not saved",
			zap.String("order_id", order.ID),
			zap.String("tracking_id", res.OrderTrackingID),
			zap.Error(err),
		)
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"message":           "Order created successfully. Redirect user to payment.",
		"redirect_url":      res.RedirectURL,
		"order_id":          order.ID,
		"order_tracking_id": res.OrderTrackingID,
		"order":             order,
	})
}

func clearCart(ctx *gin.Context, userID string) {
	err := db(ctx).Where("cart_id IN (?)", db(ctx).Model(&models.Cart{}).Select("id").Where("user_id = ?", userID)).
		Delete(&models.CartItem{}).Error
	if err != nil {
		initializers.Logger.Warn("failed to clear cart", zap.String("user_id", userID), zap.Error(err))
	}
}

func HandlePesapalIPN(ctx *gin.Context) {
	var trackingID, merchantRef string

	if ctx.Request.Method == http.MethodPost {
		var payload struct {
			OrderTrackingID        string `json:"OrderTrackingId"`
			OrderMerchantReference string `json:"OrderMerchantReference"`
		}
		if err := ctx.ShouldBindJSON(&payload); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
			return
		}
		trackingID = payload.OrderTrackingID
		merchantRef = payload.OrderMerchantReference
	} else {
		trackingID = ctx.Query("orderTrackingId")
		merchantRef = ctx.Query("orderMerchantReference")
	}

	if trackingID == "" || merchantRef == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing parameters"})
		return
	}

	status, err := deps.Pesapal.TransactionStatus(ctx.Request.Context(), trackingID)
	if err != nil {
		initializers.Logger.Error("pesapal status check failed", zap.String("tracking_id", trackingID), zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check payment status"})
		return
	}

	if err := db(ctx).Model(&models.Order{}).
		Where("pesapal_tracking_id = ?", trackingID).
		Update("payment_status", status.PaymentStatusDescription).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"orderNotificationType":  "IPNCHANGE",
		"orderTrackingId":        trackingID,
		"orderMerchantReference": merchantRef,
		"status":                 200,
	})
}

func orderSort(ctx *gin.Context) string {
	if ctx.DefaultQuery("sort", "desc") == "asc" {
		return "created_at ASC"
	}
	return "created_at DESC"
}

func GetOrders(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "15"))
	f := listing.Filter{Page: page, PageSize: limit}.Normalize()

	query := db(ctx).Model(&models.Order{})
	if search := ctx.Query("search"); search != "" {
		query = query.Where("id LIKE ? OR email LIKE ?", "%"+search+"%", "%"+search+"%")
	}
	if status := ctx.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var count int64
	if err := query.Session(&gorm.Session{}).Count(&count).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch orders", err)
		return
	}

	orders := []models.Order{}
	result := query.Preload("OrderItems").Order(orderSort(ctx)).Scopes(listing.Paginate(f)).Find(&orders)
	if result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch orders", result.Error)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"orders":   orders,
		"metadata": listing.NewMetadata(count, f),
	})
}

func GetMyOrders(ctx *gin.Context) {
	orders := []models.Order{}
	result := db(ctx).Preload("OrderItems").
		Where("user_id = ?", middlewares.UserID(ctx)).
		Order(orderSort(ctx)).
		Find(&orders)
	if result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to fetch orders.", result.Error)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"orders": orders})
}

func UpdateOrderStatus(ctx *gin.Context) {
	var orderStatusData struct {
		Status string `json:"status" binding:"required,oneof=Pending Processing Shipped Completed Cancelled"`
	}
	if err := ctx.ShouldBindJSON(&orderStatusData); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Failed to parse request body", err)
		return
	}

	result := db(ctx).Model(&models.Order{}).Where("id = ?", ctx.Param("id")).Update("status", orderStatusData.Status)
	if result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to update order status", result.Error)
		return
	}
	if result.RowsAffected == 0 {
		sendErrorResponse(ctx, http.StatusNotFound, "Order not found")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Order status updated successfully.",
	})
}
