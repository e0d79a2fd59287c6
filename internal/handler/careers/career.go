package careers

import (
	"net/http"
	"strings"

	"storefront/internal/api"
	"storefront/internal/database"
	"storefront/internal/handler"
	"storefront/internal/middleware"
	"storefront/internal/model"
	"storefront/internal/store"

	"github.com/labstack/echo/v4"
)

const defaultEmploymentType = "full-time"

var (
	createCareer  = store.CreateCareer
	getCareerByID = store.GetCareerByID
	listCareers   = store.ListCareers
	updateCareer  = store.UpdateCareer
	deleteCareer  = store.DeleteCareer
)

func bindCareer(c echo.Context, career *model.Career) (string, bool) {
	var req api.CareerRequest
	if err := c.Bind(&req); err != nil {
		return "invalid request body", false
	}
	if err := c.Validate(&req); err != nil {
		return err.Error(), false
	}
	career.Title = strings.TrimSpace(req.Title)
	career.Department = strings.TrimSpace(req.Department)
	career.Location = strings.TrimSpace(req.Location)
	career.EmploymentType = req.EmploymentType
	if career.EmploymentType == "" {
		career.EmploymentType = defaultEmploymentType
	}
	career.Description = req.Description
	career.Requirements = make([]string, 0, len(req.Requirements))
	for _, r := range req.Requirements {
		if r = strings.TrimSpace(r); r != "" {
			career.Requirements = append(career.Requirements, r)
		}
	}
	if req.IsActive != nil {
		career.IsActive = *req.IsActive
	}
	return "", true
}

func respondList(c echo.Context, db database.DB, activeOnly bool) error {
	list, err := listCareers(c.Request().Context(), db, activeOnly)
	if err != nil {
		return err
	}
	if list == nil {
		list = []model.Career{}
	}
	return c.JSON(http.StatusOK, list)
}

// ListCareersHandler 公開的開放職缺
// @Summary     Open positions
// @Tags        careers
// @Produce     json
// @Success     200 {array} model.Career
// @Router      /careers [get]
func ListCareersHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		return respondList(c, db, true)
	}
}

// ListAllCareersHandler 包含已關閉的職缺
// @Summary     All positions
// @Tags        careers
// @Produce     json
// @Success     200 {array} model.Career
// @Security    CookieAuth
// @Router      /careers/admin/all [get]
func ListAllCareersHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		return respondList(c, db, false)
	}
}

// GetCareerHandler 關閉的職缺只有管理員看得到
// @Summary     Get position
// @Tags        careers
// @Produce     json
// @Param       id  path     int true "Career ID"
// @Success     200 {object} model.Career
// @Failure     404 {object} api.ErrorResponse
// @Router      /careers/{id} [get]
func GetCareerHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := handler.ParamID(c, "id")
		if !ok {
			return handler.Fail(c, http.StatusBadRequest, "invalid career id")
		}
		career, err := getCareerByID(c.Request().Context(), db, id)
		if err != nil {
			return handler.NotFoundOr(c, err, "Career not found")
		}
		if !career.IsActive && !middleware.CurrentUser(c).IsAdmin() {
			return handler.Fail(c, http.StatusNotFound, "Career not found")
		}
		return c.JSON(http.StatusOK, career)
	}
}

// CreateCareerHandler
// @Summary     Create position
// @Tags        careers
// @Accept      json
// @Produce     json
// @Param       body body     api.CareerRequest true "職缺內容"
// @Success     201  {object} model.Career
// @Failure     400  {object} api.ErrorResponse
// @Security    CookieAuth
// @Router      /careers [post]
func CreateCareerHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		career := &model.Career{IsActive: true}
		if msg, ok := bindCareer(c, career); !ok {
			return handler.Fail(c, http.StatusBadRequest, msg)
		}
		creator := middleware.CurrentUser(c).ID
		career.CreatedBy = &creator

		created, err := createCareer(c.Request().Context(), db, career)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusCreated, created)
	}
}

// UpdateCareerHandler 整筆覆寫；未帶 isActive 時維持原狀態
// @Summary     Update position
// @Tags        careers
// @Accept      json
// @Produce     json
// @Param       id   path     int               true "Career ID"
// @Param       body body     api.CareerRequest true "職缺內容"
// @Success     200  {object} model.Career
// @Failure     400  {object} api.ErrorResponse
// @Failure     404  {object} api.ErrorResponse
// @Security    CookieAuth
// @Router      /careers/{id} [put]
func UpdateCareerHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := handler.ParamID(c, "id")
		if !ok {
			return handler.Fail(c, http.StatusBadRequest, "invalid career id")
		}
		ctx := c.Request().Context()
		career, err := getCareerByID(ctx, db, id)
		if err != nil {
			return handler.NotFoundOr(c, err, "Career not found")
		}
		if msg, ok := bindCareer(c, career); !ok {
			return handler.Fail(c, http.StatusBadRequest, msg)
		}
		updated, err := updateCareer(ctx, db, career)
		if err != nil {
			return handler.NotFoundOr(c, err, "Career not found")
		}
		return c.JSON(http.StatusOK, updated)
	}
}

// DeleteCareerHandler 相關的應徵資料一併刪除
// @Summary     Delete position
// @Tags        careers
// @Produce     json
// @Param       id  path     int true "Career ID"
// @Success     200 {object} api.MessageResponse
// @Failure     404 {object} api.ErrorResponse
// @Security    CookieAuth
// @Router      /careers/{id} [delete]
func DeleteCareerHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := handler.ParamID(c, "id")
		if !ok {
			return handler.Fail(c, http.StatusBadRequest, "invalid career id")
		}
		if err := deleteCareer(c.Request().Context(), db, id); err != nil {
			return handler.NotFoundOr(c, err, "Career not found")
		}
		return c.JSON(http.StatusOK, api.MessageResponse{Message: "Career deleted successfully"})
	}
}
