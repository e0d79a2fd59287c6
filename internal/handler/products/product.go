package products

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"storefront/internal/api"
	"storefront/internal/cache"
	"storefront/internal/database"
	"storefront/internal/handler"
	"storefront/internal/metrics"
	"storefront/internal/middleware"
	"storefront/internal/model"
	"storefront/internal/store"
	"storefront/internal/worker"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// CacheTTL 單一商品快取時間
const CacheTTL = 5 * time.Minute

const imageDir = "products"

var (
	listProducts   = store.ListProducts
	getProductByID = store.GetProductByID
	createProduct  = store.CreateProduct
	updateProduct  = store.UpdateProduct
	deleteProduct  = store.DeleteProduct
)

func cacheKey(id int) string {
	return fmt.Sprintf("product:%d", id)
}

// invalidate 快取失效失敗只記錄，TTL 到期後自然更新
func invalidate(c echo.Context, cch cache.Cache, id int) {
	if err := cch.Del(c.Request().Context(), cacheKey(id)).Err(); err != nil {
		zap.L().Warn("product cache invalidation failed", zap.Int("productId", id), zap.Error(err))
	}
}

// bindProduct 解析 multipart 表單並套用到 p
func bindProduct(c echo.Context, p *model.Product) (string, bool) {
	var req api.ProductRequest
	if err := c.Bind(&req); err != nil {
		return "invalid form data", false
	}
	if err := c.Validate(&req); err != nil {
		return err.Error(), false
	}
	p.Name = strings.TrimSpace(req.Name)
	p.Description = req.Description
	p.Category = strings.TrimSpace(req.Category)
	p.Price = model.Price{Amount: req.PriceAmount, Currency: req.PriceCurrency, Unit: req.PriceUnit}
	if p.Price.Currency == "" {
		p.Price.Currency = "USD"
	}
	if req.IsActive != "" {
		p.IsActive = req.IsActive == "true"
	}
	return "", true
}

// ListProductsHandler 公開列表；管理員帶 all=true 時包含下架商品
// @Summary     List products
// @Tags        products
// @Produce     json
// @Param       category query    string false "分類"
// @Param       page     query    int    false "頁碼" default(1)
// @Param       limit    query    int    false "每頁筆數" default(10)
// @Param       all      query    bool   false "包含下架商品（限管理員）"
// @Success     200      {object} api.ProductListResponse
// @Router      /products [get]
func ListProductsHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		page, limit, offset := handler.Page(c)
		products, total, err := listProducts(c.Request().Context(), db, store.ProductFilter{
			Category:        c.QueryParam("category"),
			IncludeInactive: c.QueryParam("all") == "true" && middleware.CurrentUser(c).IsAdmin(),
			Limit:           limit,
			Offset:          offset,
		})
		if err != nil {
			return err
		}
		if products == nil {
			products = []model.Product{}
		}
		return c.JSON(http.StatusOK, api.ProductListResponse{
			Products:   products,
			Pagination: api.NewPagination(page, limit, total),
		})
	}
}

// GetProductHandler 先查 Redis，未命中再查資料庫並回寫
// @Summary     Get product
// @Tags        products
// @Produce     json
// @Param       id  path     int true "Product ID"
// @Success     200 {object} model.Product
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Router      /products/{id} [get]
func GetProductHandler(db database.DB, cch cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := handler.ParamID(c, "id")
		if !ok {
			return handler.Fail(c, http.StatusBadRequest, "invalid product id")
		}
		ctx := c.Request().Context()

		var product model.Product
		hit, err := cache.GetJSON(ctx, cch, cacheKey(id), &product)
		switch {
		case err != nil:
			metrics.CacheLookups.WithLabelValues("product", "error").Inc()
			zap.L().Warn("product cache read failed", zap.Int("productId", id), zap.Error(err))
		case hit:
			metrics.CacheLookups.WithLabelValues("product", "hit").Inc()
		default:
			metrics.CacheLookups.WithLabelValues("product", "miss").Inc()
		}

		if !hit {
			p, err := getProductByID(ctx, db, id)
			if err != nil {
				return handler.NotFoundOr(c, err, "Product not found")
			}
			product = *p
			if err := cache.SetJSON(ctx, cch, cacheKey(id), product, CacheTTL); err != nil {
				zap.L().Warn("product cache write failed", zap.Int("productId", id), zap.Error(err))
			}
		}

		if !product.IsActive && !middleware.CurrentUser(c).IsAdmin() {
			return handler.Fail(c, http.StatusNotFound, "Product not found")
		}
		return c.JSON(http.StatusOK, product)
	}
}

// CreateProductHandler 新增商品，圖片為必填
// @Summary     Create product
// @Tags        products
// @Accept      multipart/form-data
// @Produce     json
// @Param       name          formData string true  "名稱"
// @Param       description   formData string false "描述"
// @Param       category      formData string true  "分類"
// @Param       priceAmount   formData number false "價格"
// @Param       priceCurrency formData string false "幣別" default(USD)
// @Param       priceUnit     formData string false "單位"
// @Param       isActive      formData bool   false "是否上架" default(true)
// @Param       image         formData file   true  "商品圖片 (≤10MB)"
// @Success     201 {object} model.Product
// @Failure     400 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Security    CookieAuth
// @Router      /products [post]
func CreateProductHandler(db database.DB, files handler.Files, pool worker.Pool) echo.HandlerFunc {
	return func(c echo.Context) error {
		p := &model.Product{IsActive: true}
		if msg, ok := bindProduct(c, p); !ok {
			return handler.Fail(c, http.StatusBadRequest, msg)
		}
		fh, err := c.FormFile("image")
		if err != nil {
			return handler.Fail(c, http.StatusBadRequest, "Product image is required")
		}
		url, err := files.SaveImage(fh, imageDir)
		if err != nil {
			return handler.UploadError(c, err)
		}

		p.ImageURL = url
		creator := middleware.CurrentUser(c).ID
		p.CreatedBy = &creator
		product, err := createProduct(c.Request().Context(), db, p)
		if err != nil {
			handler.RemoveLater(pool, files, url)
			return err
		}
		return c.JSON(http.StatusCreated, product)
	}
}

// UpdateProductHandler 覆寫商品欄位；有新圖片時舊圖交由 worker 刪除
// @Summary     Update product
// @Tags        products
// @Accept      multipart/form-data
// @Produce     json
// @Param       id            path     int    true  "Product ID"
// @Param       name          formData string true  "名稱"
// @Param       description   formData string false "描述"
// @Param       category      formData string true  "分類"
// @Param       priceAmount   formData number false "價格"
// @Param       priceCurrency formData string false "幣別"
// @Param       priceUnit     formData string false "單位"
// @Param       isActive      formData bool   false "是否上架"
// @Param       image         formData file   false "新圖片 (≤10MB)"
// @Success     200 {object} model.Product
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Security    CookieAuth
// @Router      /products/{id} [put]
func UpdateProductHandler(db database.DB, cch cache.Cache, files handler.Files, pool worker.Pool) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := handler.ParamID(c, "id")
		if !ok {
			return handler.Fail(c, http.StatusBadRequest, "invalid product id")
		}
		ctx := c.Request().Context()
		p, err := getProductByID(ctx, db, id)
		if err != nil {
			return handler.NotFoundOr(c, err, "Product not found")
		}
		if msg, ok := bindProduct(c, p); !ok {
			return handler.Fail(c, http.StatusBadRequest, msg)
		}

		oldImage := p.ImageURL
		newImage := ""
		if fh, err := c.FormFile("image"); err == nil {
			if newImage, err = files.SaveImage(fh, imageDir); err != nil {
				return handler.UploadError(c, err)
			}
			p.ImageURL = newImage
		}

		product, err := updateProduct(ctx, db, p)
		if err != nil {
			handler.RemoveLater(pool, files, newImage)
			return handler.NotFoundOr(c, err, "Product not found")
		}
		if newImage != "" && oldImage != newImage {
			handler.RemoveLater(pool, files, oldImage)
		}
		invalidate(c, cch, id)
		return c.JSON(http.StatusOK, product)
	}
}

// DeleteProductHandler 刪除商品與圖片
// @Summary     Delete product
// @Tags        products
// @Produce     json
// @Param       id  path     int true "Product ID"
// @Success     200 {object} api.MessageResponse
// @Failure     404 {object} api.ErrorResponse
// @Security    CookieAuth
// @Router      /products/{id} [delete]
func DeleteProductHandler(db database.DB, cch cache.Cache, files handler.Files, pool worker.Pool) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := handler.ParamID(c, "id")
		if !ok {
			return handler.Fail(c, http.StatusBadRequest, "invalid product id")
		}
		image, err := deleteProduct(c.Request().Context(), db, id)
		if err != nil {
			return handler.NotFoundOr(c, err, "Product not found")
		}
		handler.RemoveLater(pool, files, image)
		invalidate(c, cch, id)
		return c.JSON(http.StatusOK, api.MessageResponse{Message: "Product deleted successfully"})
	}
}
