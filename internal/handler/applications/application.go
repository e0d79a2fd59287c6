package applications

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"storefront/internal/api"
	"storefront/internal/database"
	"storefront/internal/handler"
	"storefront/internal/middleware"
	"storefront/internal/model"
	"storefront/internal/service"
	"storefront/internal/store"
	"storefront/internal/worker"

	"github.com/labstack/echo/v4"
)

const resumeDir = "resumes"

var (
	getCareerByID              = store.GetCareerByID
	createJobApplication       = store.CreateJobApplication
	listApplicationsByUser     = store.ListApplicationsByUser
	listJobApplications        = store.ListJobApplications
	updateJobApplicationStatus = store.UpdateJobApplicationStatus
)

// ApplyHandler 投遞履歷；同一職缺同一 email 只能投一次
// @Summary     Apply for a position
// @Tags        job-applications
// @Accept      multipart/form-data
// @Produce     json
// @Param       id          path     int    true  "Career ID"
// @Param       fullName    formData string true  "姓名"
// @Param       email       formData string true  "Email"
// @Param       phone       formData string false "電話"
// @Param       coverLetter formData string false "自我介紹"
// @Param       resume      formData file   true  "履歷 (pdf/doc/docx, ≤5MB)"
// @Success     201 {object} model.JobApplication
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Router      /careers/{id}/apply [post]
func ApplyHandler(db database.DB, files handler.Files, pool worker.Pool, notifier handler.Notifier) echo.HandlerFunc {
	return func(c echo.Context) error {
		careerID, ok := handler.ParamID(c, "id")
		if !ok {
			return handler.Fail(c, http.StatusBadRequest, "invalid career id")
		}
		var req api.ApplyRequest
		if err := c.Bind(&req); err != nil {
			return handler.Fail(c, http.StatusBadRequest, "invalid form data")
		}
		if err := c.Validate(&req); err != nil {
			return handler.Fail(c, http.StatusBadRequest, err.Error())
		}

		ctx := c.Request().Context()
		career, err := getCareerByID(ctx, db, careerID)
		if err != nil {
			return handler.NotFoundOr(c, err, "Career not found")
		}
		if !career.IsActive {
			return handler.Fail(c, http.StatusNotFound, "Career not found")
		}

		fh, err := c.FormFile("resume")
		if err != nil {
			return handler.Fail(c, http.StatusBadRequest, "Resume is required")
		}
		url, err := files.SaveDocument(fh, resumeDir)
		if err != nil {
			return handler.UploadError(c, err)
		}

		app := &model.JobApplication{
			CareerID:    careerID,
			FullName:    strings.TrimSpace(req.FullName),
			Email:       strings.ToLower(strings.TrimSpace(req.Email)),
			Phone:       strings.TrimSpace(req.Phone),
			CoverLetter: req.CoverLetter,
			ResumeURL:   url,
		}
		if u := middleware.CurrentUser(c); u != nil {
			app.UserID = &u.ID
		}

		created, err := createJobApplication(ctx, db, app)
		if err != nil {
			handler.RemoveLater(pool, files, url)
			if errors.Is(err, store.ErrConflict) {
				return handler.Fail(c, http.StatusBadRequest, "You have already applied for this position")
			}
			if errors.Is(err, store.ErrInvalidReference) {
				return handler.Fail(c, http.StatusNotFound, "Career not found")
			}
			return err
		}

		notifier.BestEffort(ctx, service.NewNotification{
			Type:    model.NotificationSystem,
			Title:   "New job application",
			Message: fmt.Sprintf("%s applied for %s", created.FullName, career.Title),
			Data:    map[string]any{"applicationId": created.ID, "careerId": careerID},
		})
		return c.JSON(http.StatusCreated, created)
	}
}

// UserApplicationsHandler 本人或管理員查看某使用者的投遞紀錄
// @Summary     Applications of a user
// @Tags        job-applications
// @Produce     json
// @Param       userId path     int true "User ID"
// @Success     200    {array}  model.JobApplication
// @Failure     403    {object} api.ErrorResponse
// @Security    CookieAuth
// @Router      /job-applications/user/{userId} [get]
func UserApplicationsHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, ok := handler.ParamID(c, "userId")
		if !ok {
			return handler.Fail(c, http.StatusBadRequest, "invalid user id")
		}
		apps, err := listApplicationsByUser(c.Request().Context(), db, userID)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, nonNil(apps))
	}
}

// ListApplicationsHandler
// @Summary     All applications
// @Tags        job-applications
// @Produce     json
// @Param       careerId query    int    false "Career ID"
// @Param       status   query    string false "pending / reviewed / shortlisted / rejected / hired"
// @Success     200      {array}  model.JobApplication
// @Failure     400      {object} api.ErrorResponse
// @Security    CookieAuth
// @Router      /job-applications [get]
func ListApplicationsHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var f store.ApplicationFilter
		if raw := c.QueryParam("careerId"); raw != "" {
			id, err := strconv.Atoi(raw)
			if err != nil || id <= 0 {
				return handler.Fail(c, http.StatusBadRequest, "invalid career id")
			}
			f.CareerID = id
		}
		f.Status = model.ApplicationStatus(c.QueryParam("status"))
		switch f.Status {
		case "", model.ApplicationPending, model.ApplicationReviewed, model.ApplicationShortlisted,
			model.ApplicationRejected, model.ApplicationHired:
		default:
			return handler.Fail(c, http.StatusBadRequest, "status must be one of: pending reviewed shortlisted rejected hired")
		}

		apps, err := listJobApplications(c.Request().Context(), db, f)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, nonNil(apps))
	}
}

// UpdateApplicationStatusHandler
// @Summary     Update application status
// @Tags        job-applications
// @Accept      json
// @Produce     json
// @Param       id   path     int                                true "Application ID"
// @Param       body body     api.UpdateApplicationStatusRequest true "新狀態"
// @Success     200  {object} model.JobApplication
// @Failure     400  {object} api.ErrorResponse
// @Failure     404  {object} api.ErrorResponse
// @Security    CookieAuth
// @Router      /job-applications/{id}/status [put]
func UpdateApplicationStatusHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := handler.ParamID(c, "id")
		if !ok {
			return handler.Fail(c, http.StatusBadRequest, "invalid application id")
		}
		var req api.UpdateApplicationStatusRequest
		if err := c.Bind(&req); err != nil {
			return handler.Fail(c, http.StatusBadRequest, "invalid request body")
		}
		if err := c.Validate(&req); err != nil {
			return handler.Fail(c, http.StatusBadRequest, err.Error())
		}
		app, err := updateJobApplicationStatus(c.Request().Context(), db, id, model.ApplicationStatus(req.Status))
		if err != nil {
			return handler.NotFoundOr(c, err, "Application not found")
		}
		return c.JSON(http.StatusOK, app)
	}
}

func nonNil(apps []model.JobApplication) []model.JobApplication {
	if apps == nil {
		return []model.JobApplication{}
	}
	return apps
}
