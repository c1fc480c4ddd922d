package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/influencetie/backend/internal/http/dto"
	"github.com/influencetie/backend/internal/middleware"
	"github.com/influencetie/backend/internal/models"
	"github.com/influencetie/backend/internal/services"
)

type CampaignHandler struct {
	campaigns *services.CampaignService
	log       *zap.Logger
}

func NewCampaignHandler(campaigns *services.CampaignService, log *zap.Logger) *CampaignHandler {
	return &CampaignHandler{campaigns: campaigns, log: log}
}

func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params(name))
	return id, err == nil
}

func (h *CampaignHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateCampaignRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c)
	}
	if errs := req.Validate(); errs != nil {
		return respondValidation(c, errs)
	}

	campaign := &models.Campaign{
		Title:             req.Title,
		Description:       req.Description,
		Budget:            req.Budget,
		Category:          req.Category,
		Requirements:      req.Requirements,
		RequirementsJSON:  req.RequirementsJSON,
		TargetAudience:    req.TargetAudience,
		ContentGuidelines: req.ContentGuidelines,
		StartDate:         req.StartDate,
		EndDate:           req.EndDate,
	}
	created, err := h.campaigns.CreateCampaign(c.Context(), middleware.GetUserID(c), middleware.GetRole(c), campaign)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK("Campaign created", fiber.Map{"campaign": created}))
}

func (h *CampaignHandler) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit := c.QueryInt("limit", 20)

	in := services.ListCampaignsInput{
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
	if v := c.Query("status"); v != "" {
		in.Status = &v
	}
	if v := c.Query("category"); v != "" {
		in.Category = &v
	}
	if v := c.Query("search"); v != "" {
		in.Search = &v
	}
	if v := c.QueryFloat("min_budget", -1); v >= 0 {
		in.MinBudget = &v
	}
	if v := c.QueryFloat("max_budget", -1); v >= 0 {
		in.MaxBudget = &v
	}

	items, total, err := h.campaigns.ListCampaigns(c.Context(), middleware.GetUserID(c), middleware.GetRole(c), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.OK("Campaigns retrieved", dto.ListData{
		Items:      items,
		Pagination: dto.NewPagination(page, limit, total),
	}))
}

func (h *CampaignHandler) Get(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return respondValidation(c, dto.Errors{"id": {"must be a valid UUID"}})
	}

	detail, err := h.campaigns.GetCampaign(c.Context(), id, middleware.GetUserID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.OK("Campaign retrieved", fiber.Map{"campaign": detail}))
}

func (h *CampaignHandler) Update(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return respondValidation(c, dto.Errors{"id": {"must be a valid UUID"}})
	}

	var req dto.UpdateCampaignRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c)
	}
	if errs := req.Validate(); errs != nil {
		return respondValidation(c, errs)
	}

	updated, err := h.campaigns.UpdateCampaign(c.Context(), id, middleware.GetUserID(c), req.Fields())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.OK("Campaign updated", fiber.Map{"campaign": updated}))
}

func (h *CampaignHandler) Delete(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return respondValidation(c, dto.Errors{"id": {"must be a valid UUID"}})
	}

	if err := h.campaigns.DeleteCampaign(c.Context(), id, middleware.GetUserID(c)); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.OK("Campaign deleted", nil))
}

func (h *CampaignHandler) Apply(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return respondValidation(c, dto.Errors{"id": {"must be a valid UUID"}})
	}

	var req dto.ApplyToCampaignRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c)
	}
	if errs := req.Validate(); errs != nil {
		return respondValidation(c, errs)
	}

	app, err := h.campaigns.ApplyToCampaign(c.Context(), id, middleware.GetUserID(c), middleware.GetRole(c), req.ProposedRate)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK("Application submitted", fiber.Map{"application": app}))
}

func (h *CampaignHandler) ListApplications(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return respondValidation(c, dto.Errors{"id": {"must be a valid UUID"}})
	}

	apps, err := h.campaigns.ListApplications(c.Context(), id, middleware.GetUserID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.OK("Applications retrieved", fiber.Map{"applications": apps}))
}

func (h *CampaignHandler) DecideApplication(c *fiber.Ctx) error {
	campaignID, ok := parseUUIDParam(c, "campaignId")
	if !ok {
		return respondValidation(c, dto.Errors{"campaignId": {"must be a valid UUID"}})
	}
	applicationID, ok := parseUUIDParam(c, "applicationId")
	if !ok {
		return respondValidation(c, dto.Errors{"applicationId": {"must be a valid UUID"}})
	}

	var req dto.DecideApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c)
	}
	if errs := req.Validate(); errs != nil {
		return respondValidation(c, errs)
	}

	app, err := h.campaigns.DecideApplication(c.Context(), campaignID, applicationID,
		middleware.GetUserID(c), req.Status, req.AgreedRate)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.OK("Application "+app.Status, fiber.Map{"application": app}))
}

// ListMyApplications serves the influencer's own application history.
func (h *CampaignHandler) ListMyApplications(c *fiber.Ctx) error {
	apps, err := h.campaigns.ListMyApplications(c.Context(), middleware.GetUserID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.OK("Applications retrieved", fiber.Map{"applications": apps}))
}
