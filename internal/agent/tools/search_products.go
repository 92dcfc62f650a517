package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"

	"github.com/decision-agent-poc-v1/agent/internal/agent/model"
)

// ===================================
// Search Products Tool
// ===================================

type SearchProductsInput struct {
	Category  string  `json:"category,omitempty"`
	MinPrice  float64 `json:"min_price,omitempty"`
	MaxPrice  float64 `json:"max_price,omitempty"`
	MinRating float64 `json:"min_rating,omitempty"`
	MaxRating float64 `json:"max_rating,omitempty"`
	Keyword   string  `json:"keyword,omitempty"`
	Limit     int     `json:"limit,omitempty"`
}

type SearchProductsOutput struct {
	Summary  string          `json:"summary"`
	Products []model.Product `json:"products"`
	Total    int             `json:"total"`
}

func searchProductsInfo() (*schema.ToolInfo, map[string]*schema.ParameterInfo) {
	params := map[string]*schema.ParameterInfo{
		"category": {
			Type: schema.String,
			Desc: "Category filter, partial match, case-insensitive (e.g. Speakers, Printers, Electronics)",
		},
		"min_price": {
			Type: schema.Number,
			Desc: "Minimum discounted price in INR",
		},
		"max_price": {
			Type: schema.Number,
			Desc: "Maximum discounted price in INR",
		},
		"min_rating": {
			Type: schema.Number,
			Desc: "Minimum average rating (1.0-5.0)",
		},
		"max_rating": {
			Type: schema.Number,
			Desc: "Maximum average rating (1.0-5.0)",
		},
		"keyword": {
			Type: schema.String,
			Desc: "Keyword searched in product name and description",
		},
		"limit": {
			Type: schema.Number,
			Desc: "Maximum number of products to return (default 10, max 25)",
		},
	}
	info := &schema.ToolInfo{
		Name:        ToolSearchProducts,
		Desc:        "Find products by category, price range, rating range, or keyword. Returns structured product data with name, category, prices, discount and rating. Returns an explicit empty result when nothing matches.",
		ParamsOneOf: schema.NewParamsOneOfByParams(params),
	}
	return info, params
}

func createSearchProductsTool() tool.InvokableTool {
	info, _ := searchProductsInfo()
	return utils.NewTool(info, func(ctx context.Context, in *SearchProductsInput) (*SearchProductsOutput, error) {
		limit := in.Limit
		if limit <= 0 {
			limit = 10
		}
		if limit > 25 {
			limit = 25
		}

		category := strings.ToLower(strings.TrimSpace(in.Category))
		keyword := strings.ToLower(strings.TrimSpace(in.Keyword))

		var matched []model.Product
		for _, p := range CatalogProducts {
			if category != "" && !strings.Contains(strings.ToLower(p.Category), category) {
				continue
			}
			if keyword != "" &&
				!strings.Contains(strings.ToLower(p.Name), keyword) &&
				!strings.Contains(strings.ToLower(p.About), keyword) {
				continue
			}
			if in.MinPrice > 0 && p.DiscountedPrice < in.MinPrice {
				continue
			}
			if in.MaxPrice > 0 && p.DiscountedPrice > in.MaxPrice {
				continue
			}
			if in.MinRating > 0 && p.Rating < in.MinRating {
				continue
			}
			if in.MaxRating > 0 && p.Rating > in.MaxRating {
				continue
			}
			matched = append(matched, p)
		}

		total := len(matched)
		if len(matched) > limit {
			matched = matched[:limit]
		}
		if matched == nil {
			matched = []model.Product{}
		}

		// No-results is an expected outcome, never an error.
		summary := fmt.Sprintf("Found %d products", total)
		if total == 0 {
			summary = "No products matched the given filters"
		} else if total > len(matched) {
			summary = fmt.Sprintf("Found %d products, returning the first %d", total, len(matched))
		}

		return &SearchProductsOutput{
			Summary:  summary,
			Products: matched,
			Total:    total,
		}, nil
	})
}
