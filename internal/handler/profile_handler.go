package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"devconnector/internal/auth"
	apperrors "devconnector/internal/errors"
	"devconnector/internal/model"
	"devconnector/internal/service"
)

// dateLayouts are the accepted formats for experience and education dates.
var dateLayouts = []string{"2006-01-02", time.RFC3339}

// ProfileHandler handles profile endpoints.
type ProfileHandler struct {
	profileService service.ProfileService
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// ProfileRequest represents a create-or-update profile request.
type ProfileRequest struct {
	Company        string `json:"company"`
	Website        string `json:"website"`
	Location       string `json:"location"`
	Status         string `json:"status" validate:"required" msg:"Status is required"`
	Skills         string `json:"skills" validate:"required" msg:"Skills is required"`
	Bio            string `json:"bio"`
	GitHubUsername string `json:"githubusername"`
	YouTube        string `json:"youtube"`
	Twitter        string `json:"twitter"`
	Facebook       string `json:"facebook"`
	LinkedIn       string `json:"linkedin"`
	Instagram      string `json:"instagram"`
}

// ExperienceRequest represents a new job entry.
type ExperienceRequest struct {
	Title       string `json:"title" validate:"required" msg:"Title is required"`
	Company     string `json:"company" validate:"required" msg:"Company is required"`
	Location    string `json:"location"`
	From        string `json:"from" validate:"required" msg:"From date is required"`
	To          string `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

// EducationRequest represents a new school entry.
type EducationRequest struct {
	School       string `json:"school" validate:"required" msg:"School is required"`
	Degree       string `json:"degree" validate:"required" msg:"Degree is required"`
	FieldOfStudy string `json:"fieldofstudy" validate:"required" msg:"Field of study is required"`
	From         string `json:"from" validate:"required" msg:"From date is required"`
	To           string `json:"to"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

func parseDate(param, value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, apperrors.NewValidationError(param, "Invalid date")
}

// parseRange parses from and the optional to date.
func parseRange(from, to string) (time.Time, *time.Time, error) {
	start, err := parseDate("from", from)
	if err != nil {
		return time.Time{}, nil, err
	}
	if strings.TrimSpace(to) == "" {
		return start, nil, nil
	}
	end, err := parseDate("to", to)
	if err != nil {
		return time.Time{}, nil, err
	}
	return start, &end, nil
}

// Me godoc
// @Summary Get the caller's profile
// @Tags profile
// @Produce json
// @Security TokenAuth
// @Success 200 {object} model.Profile
// @Failure 400 {object} errors.MessageResponse
// @Router /profile/me [get]
func (h *ProfileHandler) Me(c echo.Context) error {
	profile, err := h.profileService.GetCurrent(c.Request().Context(), auth.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// Upsert godoc
// @Summary Create or update the caller's profile
// @Tags profile
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param request body ProfileRequest true "Profile fields; skills is comma separated"
// @Success 200 {object} model.Profile
// @Failure 400 {object} errors.ErrorResponse
// @Router /profile [post]
func (h *ProfileHandler) Upsert(c echo.Context) error {
	var req ProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	profile, err := h.profileService.Upsert(c.Request().Context(), auth.UserID(c), service.ProfileInput{
		Company:        req.Company,
		Website:        req.Website,
		Location:       req.Location,
		Status:         req.Status,
		Skills:         req.Skills,
		Bio:            req.Bio,
		GitHubUsername: req.GitHubUsername,
		Social: model.Social{
			YouTube:   req.YouTube,
			Twitter:   req.Twitter,
			Facebook:  req.Facebook,
			LinkedIn:  req.LinkedIn,
			Instagram: req.Instagram,
		},
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// List godoc
// @Summary List all profiles
// @Tags profile
// @Produce json
// @Success 200 {array} model.Profile
// @Router /profile [get]
func (h *ProfileHandler) List(c echo.Context) error {
	profiles, err := h.profileService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profiles)
}

// GetByUser godoc
// @Summary Get a profile by user id
// @Tags profile
// @Produce json
// @Param user_id path string true "User ID"
// @Success 200 {object} model.Profile
// @Failure 400 {object} errors.MessageResponse
// @Router /profile/user/{user_id} [get]
func (h *ProfileHandler) GetByUser(c echo.Context) error {
	profile, err := h.profileService.GetByUserID(c.Request().Context(), c.Param("user_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// DeleteAccount godoc
// @Summary Delete the caller's posts, profile and account
// @Tags profile
// @Produce json
// @Security TokenAuth
// @Success 200 {object} errors.MessageResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /profile [delete]
func (h *ProfileHandler) DeleteAccount(c echo.Context) error {
	if err := h.profileService.DeleteAccount(c.Request().Context(), auth.UserID(c)); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, apperrors.MessageResponse{Msg: "User deleted"})
}

// AddExperience godoc
// @Summary Add a job entry to the caller's profile
// @Tags profile
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param request body ExperienceRequest true "Experience"
// @Success 200 {object} model.Profile
// @Failure 400 {object} errors.ErrorResponse
// @Router /profile/experience [put]
func (h *ProfileHandler) AddExperience(c echo.Context) error {
	var req ExperienceRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	from, to, err := parseRange(req.From, req.To)
	if err != nil {
		return err
	}

	profile, err := h.profileService.AddExperience(c.Request().Context(), auth.UserID(c), model.Experience{
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		From:        from,
		To:          to,
		Current:     req.Current,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// RemoveExperience godoc
// @Summary Remove a job entry from the caller's profile
// @Tags profile
// @Produce json
// @Security TokenAuth
// @Param exp_id path string true "Experience ID"
// @Success 200 {object} model.Profile
// @Failure 404 {object} errors.MessageResponse
// @Router /profile/experience/{exp_id} [delete]
func (h *ProfileHandler) RemoveExperience(c echo.Context) error {
	profile, err := h.profileService.RemoveExperience(c.Request().Context(), auth.UserID(c), c.Param("exp_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// AddEducation godoc
// @Summary Add a school entry to the caller's profile
// @Tags profile
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param request body EducationRequest true "Education"
// @Success 200 {object} model.Profile
// @Failure 400 {object} errors.ErrorResponse
// @Router /profile/education [put]
func (h *ProfileHandler) AddEducation(c echo.Context) error {
	var req EducationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	from, to, err := parseRange(req.From, req.To)
	if err != nil {
		return err
	}

	profile, err := h.profileService.AddEducation(c.Request().Context(), auth.UserID(c), model.Education{
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         from,
		To:           to,
		Current:      req.Current,
		Description:  req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// RemoveEducation godoc
// @Summary Remove a school entry from the caller's profile
// @Tags profile
// @Produce json
// @Security TokenAuth
// @Param edu_id path string true "Education ID"
// @Success 200 {object} model.Profile
// @Failure 404 {object} errors.MessageResponse
// @Router /profile/education/{edu_id} [delete]
func (h *ProfileHandler) RemoveEducation(c echo.Context) error {
	profile, err := h.profileService.RemoveEducation(c.Request().Context(), auth.UserID(c), c.Param("edu_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}
