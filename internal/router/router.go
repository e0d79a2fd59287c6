package router

import (
	"time"

	"storefront/internal/api"
	"storefront/internal/cache"
	"storefront/internal/database"
	"storefront/internal/handler"
	"storefront/internal/handler/applications"
	"storefront/internal/handler/auth"
	"storefront/internal/handler/careers"
	"storefront/internal/handler/comments"
	"storefront/internal/handler/contacts"
	"storefront/internal/handler/inquiries"
	"storefront/internal/handler/notifications"
	"storefront/internal/handler/products"
	"storefront/internal/handler/users"
	"storefront/internal/middleware"
	"storefront/internal/worker"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
)

// BodyLimit 上限需容納 10MB 圖片加上表單欄位
const BodyLimit = "11M"

// ResumeBodyLimit 履歷上限 5MB，加上表單欄位
const ResumeBodyLimit = "6M"

// 每個 IP 在 window 內的請求上限
const (
	authLimit    = 10
	authWindow   = 15 * time.Minute
	formLimit    = 5
	formWindow   = time.Hour
	inquiryLimit = 10
)

// Tokens 由 *service.TokenIssuer 實作
type Tokens interface {
	middleware.TokenVerifier
	auth.Tokens
}

// Deps 路由需要的所有相依元件，由 cmd/service 建立後注入
type Deps struct {
	DB         database.DB
	Cache      cache.Cache
	Tokens     Tokens
	Files      handler.Files
	Pool       worker.Pool
	Notifier   handler.Notifier
	Logger     *zap.Logger
	Origins    []string
	Production bool
	UploadDir  string
}

// Setup 註冊所有路由與中介層
func Setup(e *echo.Echo, d Deps) {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	// 限流以連線來源 IP 為準，不信任客戶端自帶的 X-Forwarded-For / X-Real-IP
	e.IPExtractor = echo.ExtractIPDirect()
	e.HTTPErrorHandler = handler.ErrorHandler(d.Logger)
	e.Validator = api.NewValidator()
	e.Use(echomw.RequestID())
	e.Use(echomw.Recover())
	e.Use(middleware.CORS(d.Origins, d.Production, d.Logger))
	e.Use(middleware.RequestLogger(d.Logger))
	e.Use(middleware.Metrics())
	e.Use(echomw.BodyLimit(BodyLimit))

	if d.UploadDir != "" {
		e.Static("/uploads", d.UploadDir)
	}
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	db := d.DB
	requireAuth := middleware.RequireAuth(d.Tokens, db)
	optionalAuth := middleware.OptionalAuth(d.Tokens, db)
	authLimiter := middleware.RateLimit(d.Cache, "auth", authLimit, authWindow)

	base := e.Group("/api")
	base.GET("/health", handler.HealthHandler(db, d.Cache))

	// 帳號
	apiAuth := base.Group("/auth")
	apiAuth.POST("/signup", auth.SignupHandler(db, d.Tokens, d.Notifier), authLimiter)
	apiAuth.POST("/login", auth.LoginHandler(db, d.Tokens), authLimiter)
	apiAuth.POST("/logout", auth.LogoutHandler(d.Tokens))
	apiAuth.GET("/check", auth.CheckAuthHandler(), requireAuth)
	apiAuth.PUT("/update-profile", auth.UpdateProfileHandler(db, d.Files, d.Pool), requireAuth)

	// 使用者管理
	apiUsers := apiAuth.Group("/users", requireAuth)
	apiUsers.GET("", users.ListUsersHandler(db), middleware.RequireAdmin)
	apiUsers.GET("/:id", users.GetUserHandler(db), middleware.RequireSelfOrAdmin("id"))
	apiUsers.PUT("/:id/role", users.UpdateUserRoleHandler(db), middleware.RequireAdmin)
	apiUsers.DELETE("/:id", users.DeleteUserHandler(db, d.Files, d.Pool), middleware.RequireAdmin)

	// 商品
	apiProducts := base.Group("/products")
	apiProducts.GET("", products.ListProductsHandler(db), optionalAuth)
	apiProducts.GET("/:id", products.GetProductHandler(db, d.Cache), optionalAuth)
	apiProducts.POST("", products.CreateProductHandler(db, d.Files, d.Pool), requireAuth, middleware.RequireAdmin)
	apiProducts.PUT("/:id", products.UpdateProductHandler(db, d.Cache, d.Files, d.Pool), requireAuth, middleware.RequireAdmin)
	apiProducts.DELETE("/:id", products.DeleteProductHandler(db, d.Cache, d.Files, d.Pool), requireAuth, middleware.RequireAdmin)

	// 留言
	apiComments := base.Group("/comments")
	apiComments.POST("/product/:productId", comments.CreateCommentHandler(db, d.Notifier), optionalAuth)
	apiComments.GET("/product/:productId", comments.ListProductCommentsHandler(db))
	apiCommentsAdmin := apiComments.Group("/admin", requireAuth, middleware.RequireAdmin)
	apiCommentsAdmin.GET("/all", comments.ListAllCommentsHandler(db))
	apiCommentsAdmin.PUT("/:id/approve", comments.ApproveCommentHandler(db))
	apiCommentsAdmin.DELETE("/:id", comments.DeleteCommentHandler(db))

	// 詢價
	apiInquiries := base.Group("/inquiries")
	apiInquiries.POST("", inquiries.CreateInquiryHandler(db, d.Notifier),
		middleware.RateLimit(d.Cache, "inquiry", inquiryLimit, formWindow), optionalAuth)
	apiInquiries.GET("/my", inquiries.MyInquiriesHandler(db), requireAuth)
	apiInquiries.GET("", inquiries.ListInquiriesHandler(db), requireAuth, middleware.RequireAdmin)
	apiInquiries.PUT("/:id/status", inquiries.UpdateInquiryStatusHandler(db), requireAuth, middleware.RequireAdmin)
	apiInquiries.DELETE("/:id", inquiries.DeleteInquiryHandler(db), requireAuth, middleware.RequireAdmin)

	// 職缺與應徵
	apiCareers := base.Group("/careers")
	apiCareers.GET("", careers.ListCareersHandler(db))
	apiCareers.GET("/admin/all", careers.ListAllCareersHandler(db), requireAuth, middleware.RequireAdmin)
	apiCareers.GET("/:id", careers.GetCareerHandler(db), optionalAuth)
	apiCareers.POST("", careers.CreateCareerHandler(db), requireAuth, middleware.RequireAdmin)
	apiCareers.PUT("/:id", careers.UpdateCareerHandler(db), requireAuth, middleware.RequireAdmin)
	apiCareers.DELETE("/:id", careers.DeleteCareerHandler(db), requireAuth, middleware.RequireAdmin)
	apiCareers.POST("/:id/apply", applications.ApplyHandler(db, d.Files, d.Pool, d.Notifier),
		echomw.BodyLimit(ResumeBodyLimit), optionalAuth)

	apiApplications := base.Group("/job-applications", requireAuth)
	apiApplications.GET("/user/:userId", applications.UserApplicationsHandler(db), middleware.RequireSelfOrAdmin("userId"))
	apiApplications.GET("", applications.ListApplicationsHandler(db), middleware.RequireAdmin)
	apiApplications.PUT("/:id/status", applications.UpdateApplicationStatusHandler(db), middleware.RequireAdmin)

	// 聯絡表單
	apiContact := base.Group("/contact")
	apiContact.POST("", contacts.CreateContactHandler(db, d.Notifier), middleware.RateLimit(d.Cache, "contact", formLimit, formWindow))
	apiContact.GET("", contacts.ListContactsHandler(db), requireAuth, middleware.RequireAdmin)
	apiContact.PUT("/:id/status", contacts.UpdateContactStatusHandler(db), requireAuth, middleware.RequireAdmin)
	apiContact.DELETE("/:id", contacts.DeleteContactHandler(db), requireAuth, middleware.RequireAdmin)

	// 通知
	apiNotifications := base.Group("/notifications", requireAuth)
	apiNotifications.GET("", notifications.ListNotificationsHandler(db))
	apiNotifications.GET("/unread-count", notifications.UnreadCountHandler(db))
	apiNotifications.PUT("/read-all", notifications.MarkAllReadHandler(db))
	apiNotifications.PUT("/:id/read", notifications.MarkReadHandler(db))
	apiNotifications.POST("", notifications.CreateNotificationHandler(d.Notifier), middleware.RequireAdmin)
	apiNotifications.GET("/:id", notifications.GetNotificationHandler(db), middleware.RequireAdmin)
	apiNotifications.DELETE("/:id", notifications.DeleteNotificationHandler(db), middleware.RequireAdmin)
}
