package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/framecart/eyewear-api/config"
	couponControllers "github.com/framecart/eyewear-api/controllers/coupon"
	prescriptionControllers "github.com/framecart/eyewear-api/controllers/prescription"
	productcontroller "github.com/framecart/eyewear-api/controllers/product"
	userControllers "github.com/framecart/eyewear-api/controllers/user"
	wishlistControllers "github.com/framecart/eyewear-api/controllers/wishlist"
	"github.com/framecart/eyewear-api/middleware"
)

// SetupUserRoutes registers all "/user/*" endpoints. Requires JWT middleware.
// Guests can browse; the wishlist and prescriptions require a signed-in user,
// since the shopping cart itself lives on the client until checkout.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	userGroup := r.Group("/user")
	userGroup.Use(middleware.ValidateToken)
	{
		// ──────────────── User Profile ────────────────
		userGroup.GET("/", middleware.RequireUser, userControllers.GetUser(db))
		userGroup.PUT("/", middleware.RequireUser, userControllers.UpdateUser(db))

		// ──────────────── Wishlist ────────────────
		wishlistGroup := userGroup.Group("/wishlist")
		wishlistGroup.Use(middleware.RequireUser)
		{
			wishlistGroup.GET("", wishlistControllers.GetWishlist(db))
			wishlistGroup.POST("/toggle", wishlistControllers.ToggleWishlist(db))
		}

		// ──────────────── Browse Products ────────────────
		userGroup.GET("/products", productcontroller.GetProducts(db))
		userGroup.GET("/products/:id", productcontroller.GetProductByID(db))

		// ──────────────── Browse Categories + Products ────────────────
		userGroup.GET("/categories", userControllers.GetAllCategoriesWithProducts(db))

		// ──────────────── Lens Packages ────────────────
		userGroup.GET("/lens-packages", productcontroller.GetLensPackages(db))

		// ──────────────── Coupons ────────────────
		userGroup.POST("/coupons/validate", couponControllers.ValidateCoupon(db))

		// ──────────────── Prescriptions ────────────────
		prescriptionGroup := userGroup.Group("/prescriptions")
		prescriptionGroup.Use(middleware.RequireUser)
		{
			prescriptionGroup.POST("", prescriptionControllers.UploadPrescription(db, cfg.UploadsDir, cfg.PublicURL))
			prescriptionGroup.GET("", prescriptionControllers.GetPrescriptions(db))
			prescriptionGroup.DELETE("/:id", prescriptionControllers.DeletePrescription(db, cfg.UploadsDir))
		}
	}
}
