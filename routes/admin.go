package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	adminController "github.com/framecart/eyewear-api/controllers/admin"
	couponControllers "github.com/framecart/eyewear-api/controllers/coupon"
	productcontroller "github.com/framecart/eyewear-api/controllers/product"
	userControllers "github.com/framecart/eyewear-api/controllers/user"
	wishlistControllers "github.com/framecart/eyewear-api/controllers/wishlist"
	"github.com/framecart/eyewear-api/middleware"
)

// SetupAdminRoutes registers all "/admin/*" endpoints. Requires API-key middleware.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateAPIKey)
	{
		// ─────────── Admin & User Management ───────────
		adminGroup.GET("/admins", adminController.GetAllAdmins(db))
		adminGroup.GET("/users", userControllers.GetAllUsers(db))
		adminGroup.GET("/notifications", adminController.GetNotifications(db))

		// ─────────── Product Management ───────────
		productAdmin := adminGroup.Group("/products")
		{
			productAdmin.POST("", productcontroller.CreateProduct(db))
			productAdmin.PUT("/:id", productcontroller.UpdateProduct(db))
			productAdmin.GET("", productcontroller.GetProducts(db))
			productAdmin.DELETE("/:id", productcontroller.DeleteProduct(db))
			productAdmin.POST("/import-excel", productcontroller.ImportProductsFromExcel(db))
			productAdmin.GET("/export-excel", productcontroller.ExportProductsToExcel(db))
		}

		// ─────────── Category Management ───────────
		categoryAdmin := adminGroup.Group("/categories")
		{
			categoryAdmin.POST("", productcontroller.CreateCategory(db))
			categoryAdmin.PUT("/:id", productcontroller.UpdateCategory(db))
			categoryAdmin.GET("", productcontroller.GetAllCategories(db))
			categoryAdmin.DELETE("/:id", productcontroller.DeleteCategory(db))
		}

		// ─────────── Lens Package Management ───────────
		lensAdmin := adminGroup.Group("/lens-packages")
		{
			lensAdmin.POST("", productcontroller.CreateLensPackage(db))
			lensAdmin.PUT("/:id", productcontroller.UpdateLensPackage(db))
			lensAdmin.GET("", productcontroller.GetLensPackages(db))
			lensAdmin.DELETE("/:id", productcontroller.DeleteLensPackage(db))
		}

		// ─────────── Coupon Management ───────────
		couponAdmin := adminGroup.Group("/coupons")
		{
			couponAdmin.POST("", couponControllers.CreateCoupon(db))
			couponAdmin.GET("", couponControllers.GetCoupons(db))
			couponAdmin.PUT("/:id", couponControllers.UpdateCoupon(db))
			couponAdmin.DELETE("/:id", couponControllers.DeleteCoupon(db))
		}

		// ─────────── Admin Approval Workflow ───────────
		adminMgmt := adminGroup.Group("/admin-management")
		{
			adminMgmt.GET("/pending", adminController.ListPendingAdmins(db))
			adminMgmt.POST("/approve", adminController.ApproveAdmin(db))
			adminMgmt.POST("/reject", adminController.RejectAdmin(db))
		}

		bannerMgmt := adminGroup.Group("/banner")
		{
			bannerMgmt.POST("/upload", adminController.UploadBanner(db))
			bannerMgmt.GET("/", adminController.GetBanners(db))
			bannerMgmt.DELETE("/:id", adminController.DeleteBanner(db))
		}

		wishlistMgmt := adminGroup.Group("/user-wishlist")
		{
			wishlistMgmt.GET("/:user_id", wishlistControllers.GetAdminUserWishlist(db))
		}
	}

	// Storefront banners are public
	r.GET("/banners", adminController.GetBanners(db))
}
