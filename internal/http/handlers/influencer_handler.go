package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/influencetie/backend/internal/http/dto"
	"github.com/influencetie/backend/internal/repositories"
	"github.com/influencetie/backend/internal/services"
)

type InfluencerHandler struct {
	users *services.UserService
	log   *zap.Logger
}

func NewInfluencerHandler(users *services.UserService, log *zap.Logger) *InfluencerHandler {
	return &InfluencerHandler{users: users, log: log}
}

// List serves the influencer directory with optional filters.
func (h *InfluencerHandler) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit := c.QueryInt("limit", 20)

	f := repositories.InfluencerFilter{
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
	if v := c.Query("category"); v != "" {
		f.Category = &v
	}
	if v := c.Query("location"); v != "" {
		f.Location = &v
	}
	if v := c.Query("search"); v != "" {
		f.Search = &v
	}
	if v := c.QueryInt("min_followers", -1); v >= 0 {
		f.MinFollowers = &v
	}

	influencers, total, err := h.users.ListInfluencers(c.Context(), f)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(dto.OK("Influencers retrieved", dto.ListData{
		Items:      influencers,
		Pagination: dto.NewPagination(page, limit, total),
	}))
}
