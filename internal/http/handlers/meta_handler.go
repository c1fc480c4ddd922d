package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/influencetie/backend/internal/http/dto"
)

type MetaHandler struct{}

func NewMetaHandler() *MetaHandler {
	return &MetaHandler{}
}

type MetaCategory struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

var predefinedCategories = []MetaCategory{
	{ID: "fashion", Label: "Fashion & Style"},
	{ID: "beauty", Label: "Beauty & Cosmetics"},
	{ID: "fitness", Label: "Health & Fitness"},
	{ID: "food", Label: "Food & Cooking"},
	{ID: "travel", Label: "Travel"},
	{ID: "tech", Label: "Technology"},
	{ID: "gaming", Label: "Gaming"},
	{ID: "lifestyle", Label: "Lifestyle"},
	{ID: "music", Label: "Music"},
	{ID: "art", Label: "Art & Design"},
	{ID: "education", Label: "Education"},
	{ID: "finance", Label: "Finance"},
	{ID: "parenting", Label: "Parenting & Family"},
	{ID: "pets", Label: "Pets & Animals"},
	{ID: "sports", Label: "Sports"},
	{ID: "entertainment", Label: "Entertainment"},
	{ID: "business", Label: "Business"},
	{ID: "other", Label: "Other"},
}

func (h *MetaHandler) Categories(c *fiber.Ctx) error {
	return c.JSON(dto.OK("Categories retrieved", fiber.Map{"categories": predefinedCategories}))
}
