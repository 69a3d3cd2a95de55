package controllers

import (
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strconv"

	"github.com/Kariqs/maxtech-api/initializers"
	"github.com/Kariqs/maxtech-api/models"
	"github.com/Kariqs/maxtech-api/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

type customBuildInput struct {
	BuildName  string         `json:"buildName" binding:"required"`
	Components datatypes.JSON `json:"components" binding:"required"`
}

func CreateCustomBuild(ctx *gin.Context) {
	var input customBuildInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Missing required fields.")
		return
	}

	build := models.CustomBuild{
		UserID:     currentUser(ctx).UserID,
		BuildName:  input.BuildName,
		Components: input.Components,
	}
	if err := initializers.DB.Create(&build).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Internal server error.", err)
		return
	}
	ctx.JSON(http.StatusCreated, build)
}

// GetBuildsByUser lists a user's builds. Users may only list their own.
func GetBuildsByUser(ctx *gin.Context) {
	userID, ok := paramID(ctx, "userId")
	if !ok {
		return
	}
	user := currentUser(ctx)
	if user.UserID != userID && !user.IsAdmin() {
		sendErrorResponse(ctx, http.StatusForbidden, "Forbidden")
		return
	}

	var builds []models.CustomBuild
	if err := initializers.DB.Where("user_id = ?", userID).Order("created_at desc").Find(&builds).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Internal server error.", err)
		return
	}
	ctx.JSON(http.StatusOK, builds)
}

func GetCustomBuild(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	var build models.CustomBuild
	if err := initializers.DB.First(&build, id).Error; err != nil {
		sendServiceError(ctx, err, "Internal server error.")
		return
	}
	ctx.JSON(http.StatusOK, build)
}

type buildMailInput struct {
	OrderDetails map[string]any `json:"orderDetails"`
}

// SendBuildConfirmation mails the chosen components to the signed-in user.
func SendBuildConfirmation(ctx *gin.Context) {
	user := currentUser(ctx)
	if user.Name == "" || user.Email == "" {
		sendJSONResponse(ctx, http.StatusBadRequest, gin.H{"success": false, "message": "Invalid user info in token"})
		return
	}

	var input buildMailInput
	if err := ctx.ShouldBindJSON(&input); err != nil || len(input.OrderDetails) == 0 {
		sendJSONResponse(ctx, http.StatusBadRequest, gin.H{"success": false, "message": "Order details are required"})
		return
	}

	components := make([]string, 0, len(input.OrderDetails))
	for component := range input.OrderDetails {
		components = append(components, component)
	}
	sort.Strings(components)

	fields := make([]utils.Field, 0, len(components))
	for _, component := range components {
		value := input.OrderDetails[component]
		if f, ok := value.(float64); ok {
			value = strconv.FormatFloat(f, 'f', -1, 64)
		}
		fields = append(fields, utils.Field{Label: component, Value: fmt.Sprint(value)})
	}

	data := utils.EmailData{
		Name:    user.Name,
		Message: "Thank you for your order! Here are your order details. We will notify you once your order is shipped.",
		LogoURL: initializers.Cfg.LogoURL,
		Fields:  fields,
	}
	if err := utils.SendEmail(user.Email, "Your Maxtech Order Confirmation", data, "build_confirmation.html"); err != nil {
		slog.Error("Error sending confirmation email", "user", user.UserID, "error", err)
		sendJSONResponse(ctx, http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"success": true, "message": "Confirmation email sent successfully"})
}
