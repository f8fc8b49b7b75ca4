package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/devconnect/devconnect-backend/internal/http/response"
	"github.com/devconnect/devconnect-backend/internal/services"
	"github.com/devconnect/devconnect-backend/internal/validation"
)

var upsertProfileRules = validation.Rules{
	{Field: "status", Message: "Status is required", Check: validation.Required},
	{Field: "skills", Message: "Skills is required", Check: validation.Required},
}

var addExperienceRules = validation.Rules{
	{Field: "title", Message: "Title is required", Check: validation.Required},
	{Field: "company", Message: "Company is required", Check: validation.Required},
	{Field: "from", Message: "From date is required", Check: validation.Required},
}

var addEducationRules = validation.Rules{
	{Field: "school", Message: "School is required", Check: validation.Required},
	{Field: "degree", Message: "Degree is required", Check: validation.Required},
	{Field: "fieldofstudy", Message: "Field of study is required", Check: validation.Required},
	{Field: "from", Message: "From date is required", Check: validation.Required},
}

type ProfileHandler struct {
	profileService services.ProfileService
	githubService  services.GithubService
}

func NewProfileHandler(profileService services.ProfileService, githubService services.GithubService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService, githubService: githubService}
}

func (ph *ProfileHandler) Me(c *gin.Context) {
	uid, ok := callerID(c)
	if !ok {
		response.RespondError(c, http.StatusUnauthorized, "unauthenticated", nil)
		return
	}
	view, err := ph.profileService.GetOwn(c.Request.Context(), uid)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, view)
}

func (ph *ProfileHandler) Upsert(c *gin.Context) {
	uid, ok := callerID(c)
	if !ok {
		response.RespondError(c, http.StatusUnauthorized, "unauthenticated", nil)
		return
	}
	var req struct {
		Status         string `json:"status"`
		Skills         string `json:"skills"`
		Company        string `json:"company"`
		Website        string `json:"website"`
		Location       string `json:"location"`
		Bio            string `json:"bio"`
		GithubUsername string `json:"githubusername"`
		Youtube        string `json:"youtube"`
		Twitter        string `json:"twitter"`
		Facebook       string `json:"facebook"`
		Linkedin       string `json:"linkedin"`
		Instagram      string `json:"instagram"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if errs := upsertProfileRules.Validate(map[string]string{
		"status": req.Status,
		"skills": req.Skills,
	}); errs != nil {
		response.RespondValidationErrors(c, errs)
		return
	}
	profile, err := ph.profileService.Upsert(c.Request.Context(), uid, services.ProfileInput{
		Status:         req.Status,
		Skills:         req.Skills,
		Company:        req.Company,
		Website:        req.Website,
		Location:       req.Location,
		Bio:            req.Bio,
		GithubUsername: req.GithubUsername,
		Youtube:        req.Youtube,
		Twitter:        req.Twitter,
		Facebook:       req.Facebook,
		Linkedin:       req.Linkedin,
		Instagram:      req.Instagram,
	})
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, profile)
}

func (ph *ProfileHandler) List(c *gin.Context) {
	views, err := ph.profileService.ListAll(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, views)
}

func (ph *ProfileHandler) GetByUser(c *gin.Context) {
	view, err := ph.profileService.GetByUserID(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, view)
}

func (ph *ProfileHandler) Delete(c *gin.Context) {
	uid, ok := callerID(c)
	if !ok {
		response.RespondError(c, http.StatusUnauthorized, "unauthenticated", nil)
		return
	}
	if err := ph.profileService.Delete(c.Request.Context(), uid); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"msg": "user deleted"})
}

func (ph *ProfileHandler) AddExperience(c *gin.Context) {
	uid, ok := callerID(c)
	if !ok {
		response.RespondError(c, http.StatusUnauthorized, "unauthenticated", nil)
		return
	}
	var req struct {
		Title       string `json:"title"`
		Company     string `json:"company"`
		Location    string `json:"location"`
		From        string `json:"from"`
		To          string `json:"to"`
		Current     bool   `json:"current"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if errs := addExperienceRules.Validate(map[string]string{
		"title":   req.Title,
		"company": req.Company,
		"from":    req.From,
	}); errs != nil {
		response.RespondValidationErrors(c, errs)
		return
	}
	from, to, err := parseDateRange(req.From, req.To)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_date", err)
		return
	}
	profile, perr := ph.profileService.AddExperience(c.Request.Context(), uid, services.ExperienceInput{
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		From:        from,
		To:          to,
		Current:     req.Current,
		Description: req.Description,
	})
	if perr != nil {
		response.RespondAPIError(c, perr)
		return
	}
	response.RespondOK(c, profile)
}

func (ph *ProfileHandler) DeleteExperience(c *gin.Context) {
	uid, ok := callerID(c)
	if !ok {
		response.RespondError(c, http.StatusUnauthorized, "unauthenticated", nil)
		return
	}
	profile, err := ph.profileService.RemoveExperience(c.Request.Context(), uid, c.Param("exp_id"))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, profile)
}

func (ph *ProfileHandler) AddEducation(c *gin.Context) {
	uid, ok := callerID(c)
	if !ok {
		response.RespondError(c, http.StatusUnauthorized, "unauthenticated", nil)
		return
	}
	var req struct {
		School       string `json:"school"`
		Degree       string `json:"degree"`
		FieldOfStudy string `json:"fieldofstudy"`
		From         string `json:"from"`
		To           string `json:"to"`
		Current      bool   `json:"current"`
		Description  string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if errs := addEducationRules.Validate(map[string]string{
		"school":       req.School,
		"degree":       req.Degree,
		"fieldofstudy": req.FieldOfStudy,
		"from":         req.From,
	}); errs != nil {
		response.RespondValidationErrors(c, errs)
		return
	}
	from, to, err := parseDateRange(req.From, req.To)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_date", err)
		return
	}
	profile, perr := ph.profileService.AddEducation(c.Request.Context(), uid, services.EducationInput{
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         from,
		To:           to,
		Current:      req.Current,
		Description:  req.Description,
	})
	if perr != nil {
		response.RespondAPIError(c, perr)
		return
	}
	response.RespondOK(c, profile)
}

func (ph *ProfileHandler) DeleteEducation(c *gin.Context) {
	uid, ok := callerID(c)
	if !ok {
		response.RespondError(c, http.StatusUnauthorized, "unauthenticated", nil)
		return
	}
	profile, err := ph.profileService.RemoveEducation(c.Request.Context(), uid, c.Param("edu_id"))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, profile)
}

func (ph *ProfileHandler) GithubRepos(c *gin.Context) {
	body, err := ph.githubService.Repos(c.Request.Context(), c.Param("username"))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", body)
}

// parseDateRange accepts the date formats the frontend sends. "to" is
// optional.
func parseDateRange(fromRaw, toRaw string) (time.Time, *time.Time, error) {
	from, err := parseDate(fromRaw)
	if err != nil {
		return time.Time{}, nil, err
	}
	if toRaw == "" {
		return from, nil, nil
	}
	to, err := parseDate(toRaw)
	if err != nil {
		return time.Time{}, nil, err
	}
	return from, &to, nil
}

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}
