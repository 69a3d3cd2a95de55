package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func GetHome(ctx *gin.Context) {
	message := `Welcome to MaxTech API. Enjoy seamless interaction with this API.

The following are the endpoints for this API:

AUTH
- POST "/auth/signup" - Create user account
- POST "/auth/login" - Access user account
- POST "/auth/logout" - Clear the session cookie
- GET "/auth/me" - Current user
- POST "/auth/verify-email/:activationToken" - Activate user account
- POST "/auth/forgot-password" - Request password reset
- POST "/auth/reset-password/:resetToken" - Reset user password

USERS
- GET "/users" - List users (super admin)
- GET "/users/:id" - Get user (super admin)
- PUT "/users/:id" - Update user
- DELETE "/users/:id" - Delete user (super admin)

CATALOG
- GET "/products", "/products/:id" - Browse products
- POST "/products", "/products/bulk", "/products/images" - Create products (admin)
- PATCH, DELETE "/products/:id" - Update or delete a product (admin)
- GET "/accessories", "/accessories/:id" - Browse accessories
- POST "/accessories", "/accessories/images" - Create accessories (admin)
- PATCH, DELETE "/accessories/:id" - Update or delete an accessory (admin)
- GET "/parts", "/parts/search?name=", "/parts/:id" - Browse parts
- POST "/parts", "/parts/bulk"; PUT, DELETE "/parts/:id" - Manage parts (super admin)
- GET "/categories", "/categories/:id"; POST, PUT, DELETE - Categories
- GET "/search?q=" - Search products and accessories

CART
- POST "/cart" - Add an item
- GET "/cart" - Current cart
- PATCH "/cart/:cartItemId" - Change quantity
- DELETE "/cart/:cartItemId" - Remove an item
- DELETE "/cart" - Empty the cart

ORDERS
- POST "/orders/send-confirmation" - Place an order
- GET "/orders" - List orders
- PUT "/orders/:id" - Update order status (super admin)
- DELETE "/orders/:id" - Delete order (super admin)
- GET "/orders/export" - Orders spreadsheet (admin)
- GET "/orders/undelivered-count" - Open orders (admin)
- GET "/orders/feed" - Live order feed (admin)
- POST "/orders/contact-us", "/orders/contact-us-form" - Contact forms

PAYMENT
- POST "/payment/create-order" - Start a hosted payment
- POST "/payment/webhook" - Gateway callback
- GET "/payment/check-status/:orderId" - Reconcile a payment

PROMOTIONS
- POST "/coupons/apply" - Quote a coupon
- GET "/sales/active" - Current sale

REVIEWS
- GET, POST "/reviews"; GET "/reviews/:id" - Product reviews
- GET, POST "/accessory-reviews"; GET "/accessory-reviews/:id" - Accessory reviews

CUSTOM BUILDS
- POST "/custom-builds" - Save a build
- GET "/custom-builds/user/:userId" - Builds for a user
- GET "/custom-builds/:id" - Get a build
- POST "/custom-builds/mail" - Email a build confirmation`

	ctx.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}
