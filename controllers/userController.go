package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Kariqs/maxtech-api/initializers"
	"github.com/Kariqs/maxtech-api/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type userUpdate struct {
	Name  *string `json:"name"`
	Email *string `json:"email" binding:"omitempty,email"`
	Phone *string `json:"phone"`
	Role  *string `json:"role" binding:"omitempty,oneof=USER ADMIN SUPER_ADMIN"`
}

func GetUsers(ctx *gin.Context) {
	var users []models.User
	if err := initializers.DB.Order("id asc").Find(&users).Error; err != nil {
		slog.Error("Error fetching users", "error", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch users")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "success", "data": users})
}

func GetUser(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	var user models.User
	if err := initializers.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "User not found")
			return
		}
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch user")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "success", "data": user})
}

// UpdateUser lets users edit themselves; only a super admin may edit others or change roles.
func UpdateUser(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}
	claims := currentUser(ctx)
	isSuperAdmin := claims.Role == models.RoleSuperAdmin
	if claims.UserID != id && !isSuperAdmin {
		sendErrorResponse(ctx, http.StatusForbidden, "Forbidden")
		return
	}

	var input userUpdate
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}
	if input.Role != nil && !isSuperAdmin {
		sendErrorResponse(ctx, http.StatusForbidden, "Only a super admin can change roles")
		return
	}

	var user models.User
	if err := initializers.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "User not found")
			return
		}
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to update user")
		return
	}

	updates := map[string]any{}
	if input.Name != nil {
		updates["name"] = strings.TrimSpace(*input.Name)
	}
	if input.Email != nil {
		email := normaliseEmail(*input.Email)
		var taken int64
		initializers.DB.Model(&models.User{}).Where("email = ? AND id <> ?", email, id).Count(&taken)
		if taken > 0 {
			sendErrorResponse(ctx, http.StatusConflict, "Email already in use")
			return
		}
		updates["email"] = email
	}
	if input.Phone != nil {
		updates["phone"] = *input.Phone
	}
	if input.Role != nil {
		updates["role"] = *input.Role
	}

	if len(updates) > 0 {
		if err := initializers.DB.Model(&user).Updates(updates).Error; err != nil {
			slog.Error("Error updating user", "id", id, "error", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to update user")
			return
		}
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "User updated", "data": user})
}

func DeleteUser(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	result := initializers.DB.Delete(&models.User{}, id)
	if result.Error != nil {
		slog.Error("Error deleting user", "id", id, "error", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to delete user")
		return
	}
	if result.RowsAffected == 0 {
		sendErrorResponse(ctx, http.StatusNotFound, "User not found")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "User deleted"})
}
