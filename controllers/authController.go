package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Kariqs/maxtech-api/initializers"
	"github.com/Kariqs/maxtech-api/middlewares"
	"github.com/Kariqs/maxtech-api/models"
	"github.com/Kariqs/maxtech-api/services"
	"github.com/Kariqs/maxtech-api/utils"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	// Default cost for bcrypt password hashing
	bcryptCost = 10

	// Standard response messages
	msgInvalidInput          = "invalid input"
	msgUserAlreadyExists     = "user already exists"
	msgFailedToHashPassword  = "failed to hash password"
	msgInvalidCredentials    = "Invalid credentials"
	msgAccountNotActivated   = "Account not activated, check your email to activate email."
	msgFailedToGenerateToken = "failed to generate token"
	msgInternalServerError   = "Internal server error"
	msgInvalidActivationLink = "Invalid or expired activation link"
	msgActivationSuccess     = "account has been activated successfully."
	msgResetLinkSent         = "Check your email for a password reset link."
	msgUserCreated           = "User created successfully. Check your email to activate your account."
	msgResetTokenError       = "There was an error trying to generate password reset link. Try again later."
	msgUnableToSaveToken     = "unable to save reset token."
	msgUnableToResetPassword = "unable to reset password"
)

func sendJSONResponse(ctx *gin.Context, status int, data gin.H) {
	ctx.JSON(status, data)
}

func sendErrorResponse(ctx *gin.Context, status int, message string) {
	sendJSONResponse(ctx, status, gin.H{"message": message})
}

// statusFor maps a service error kind to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrAuth):
		return http.StatusForbidden
	case errors.Is(err, services.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, services.ErrGateway):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func sendServiceError(ctx *gin.Context, err error, fallback string) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		slog.Error(fallback, "path", ctx.FullPath(), "error", err)
	}
	sendErrorResponse(ctx, status, services.Message(err, fallback))
}

func paramID(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 64)
	if err != nil || id == 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid "+name)
		return 0, false
	}
	return uint(id), true
}

func currentUser(ctx *gin.Context) *middlewares.Claims {
	claims, _ := middlewares.CurrentUser(ctx)
	return claims
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func comparePasswords(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func normaliseEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func findUserByEmail(email string) (models.User, error) {
	var user models.User
	result := initializers.DB.Where("email = ?", normaliseEmail(email)).First(&user)
	return user, result.Error
}

func sendAccountVerificationEmail(user models.User, activationToken string) error {
	emailData := utils.EmailData{
		Name:            user.Name,
		Message:         "Thank you for signing up! Click the button below to verify your account.",
		VerificationURL: initializers.Cfg.FrontendURL + "/auth/verify-email?token=" + url.QueryEscape(activationToken),
		LogoURL:         initializers.Cfg.LogoURL,
	}
	return utils.SendEmail(user.Email, "Account Verification", emailData, "verify_email.html")
}

func sendPasswordResetEmail(user models.User, resetToken string) error {
	emailData := utils.EmailData{
		Name:            user.Name,
		Message:         "You requested a password reset. Click the button below to reset your password.",
		VerificationURL: initializers.Cfg.FrontendURL + "/auth/reset-password?token=" + url.QueryEscape(resetToken),
		LogoURL:         initializers.Cfg.LogoURL,
	}
	return utils.SendEmail(user.Email, "MaxTech Account Password Reset", emailData, "reset_password.html")
}

// Signup handles user registration
func Signup(ctx *gin.Context) {
	var signUpData models.SignupData
	if err := ctx.ShouldBindJSON(&signUpData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	_, err := findUserByEmail(signUpData.Email)
	if err == nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgUserAlreadyExists)
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		slog.Error("Database error during user check", "error", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	hashedPassword, err := hashPassword(signUpData.Password)
	if err != nil {
		slog.Error("Password hashing error", "error", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToHashPassword)
		return
	}

	activationToken, err := utils.GenerateCode(16)
	if err != nil {
		slog.Error("Token generation error", "error", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	user := models.User{
		Name:                   strings.TrimSpace(signUpData.Name),
		Email:                  normaliseEmail(signUpData.Email),
		Phone:                  signUpData.Phone,
		Password:               hashedPassword,
		Role:                   models.RoleUser,
		AccountActivationToken: activationToken,
	}
	if result := initializers.DB.Create(&user); result.Error != nil {
		slog.Error("User creation error", "error", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	if err := sendAccountVerificationEmail(user, activationToken); err != nil {
		slog.Error("Error sending verification email", "email", user.Email, "error", err)
	} else {
		slog.Info("Verification email sent", "email", user.Email)
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"message": msgUserCreated,
		"user":    gin.H{"id": user.ID, "email": user.Email},
	})
}

// Login handles user authentication
func Login(ctx *gin.Context) {
	var loginData models.LoginData
	if err := ctx.ShouldBindJSON(&loginData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	user, err := findUserByEmail(loginData.Email)
	if err != nil {
		sendErrorResponse(ctx, http.StatusUnauthorized, msgInvalidCredentials)
		return
	}

	if err := comparePasswords(user.Password, loginData.Password); err != nil {
		sendErrorResponse(ctx, http.StatusUnauthorized, msgInvalidCredentials)
		return
	}

	if !user.AccountActivated {
		sendErrorResponse(ctx, http.StatusForbidden, msgAccountNotActivated)
		return
	}

	tokenString, err := middlewares.IssueToken(user, initializers.Cfg.JWTSecret, time.Now())
	if err != nil {
		slog.Error("JWT generation error", "error", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToGenerateToken)
		return
	}

	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(middlewares.TokenCookie, tokenString, int(middlewares.TokenTTL.Seconds()), "/", "", initializers.Cfg.Production(), true)

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message": "Login successful",
		"user":    gin.H{"id": user.ID, "email": user.Email, "role": user.Role},
		"token":   tokenString,
	})
}

func Logout(ctx *gin.Context) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(middlewares.TokenCookie, "", -1, "/", "", initializers.Cfg.Production(), true)
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Logged out"})
}

func Me(ctx *gin.Context) {
	claims := currentUser(ctx)

	var user models.User
	if err := initializers.DB.First(&user, claims.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusUnauthorized, "Unauthorized: User not found")
			return
		}
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"user": user})
}

// ActivateAccount activates a user account using the activation token
func ActivateAccount(ctx *gin.Context) {
	activationToken := ctx.Param("activationToken")
	if activationToken == "" {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidActivationLink)
		return
	}

	result := initializers.DB.Model(&models.User{}).
		Where("account_activation_token = ?", activationToken).
		Updates(map[string]any{
			"account_activated":        true,
			"account_activation_token": "",
		})

	if result.Error != nil {
		slog.Error("Account activation error", "error", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	if result.RowsAffected == 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidActivationLink)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": msgActivationSuccess})
}

// SendPasswordResetLink answers the same way whether or not the email is
// registered.
func SendPasswordResetLink(ctx *gin.Context) {
	type ForgotPasswordBody struct {
		Email string `json:"email" binding:"required,email"`
	}

	var forgotPasswordData ForgotPasswordBody
	if err := ctx.ShouldBindJSON(&forgotPasswordData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	user, err := findUserByEmail(forgotPasswordData.Email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			slog.Error("Password reset lookup failed", "error", err)
		}
		sendJSONResponse(ctx, http.StatusOK, gin.H{"message": msgResetLinkSent})
		return
	}

	passwordResetToken, err := utils.GenerateCode(16)
	if err != nil {
		slog.Error("Reset token generation error", "error", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgResetTokenError)
		return
	}

	if result := initializers.DB.Model(&user).Update("password_reset_token", passwordResetToken); result.Error != nil {
		slog.Error("Error saving reset token", "error", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgUnableToSaveToken)
		return
	}

	if err := sendPasswordResetEmail(user, passwordResetToken); err != nil {
		slog.Error("Error sending password reset email", "email", user.Email, "error", err)
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": msgResetLinkSent})
}

// ResetPassword resets a user's password using a reset token
func ResetPassword(ctx *gin.Context) {
	type ResetPasswordInfo struct {
		Password string `json:"password" binding:"required,min=8"`
	}

	var resetPasswordData ResetPasswordInfo
	if err := ctx.ShouldBindJSON(&resetPasswordData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	resetToken := ctx.Param("resetToken")
	if resetToken == "" {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidActivationLink)
		return
	}

	hashedPassword, err := hashPassword(resetPasswordData.Password)
	if err != nil {
		slog.Error("Password hashing error", "error", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToHashPassword)
		return
	}

	result := initializers.DB.Model(&models.User{}).
		Where("password_reset_token = ?", resetToken).
		Updates(map[string]any{
			"password":             hashedPassword,
			"password_reset_token": "",
		})

	if result.Error != nil {
		slog.Error("Error resetting password", "error", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgUnableToResetPassword)
		return
	}

	if result.RowsAffected == 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidActivationLink)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Password reset successful"})
}
