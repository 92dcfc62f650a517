package tools

import (
	"fmt"
)

// Tool names exposed to the planner and selector prompts.
const (
	ToolSearchProducts      = "search_products"
	ToolAnalyzeReviews      = "analyze_reviews"
	ToolCalculateStatistics = "calculate_statistics"
)

// NewDefaultRegistry builds the closed registry with the three catalog tools.
func NewDefaultRegistry() (*Registry, error) {
	reg := NewRegistry()

	searchInfo, searchParams := searchProductsInfo()
	if err := reg.Register(searchInfo, searchParams, createSearchProductsTool()); err != nil {
		return nil, fmt.Errorf("register %s: %w", ToolSearchProducts, err)
	}

	reviewInfo, reviewParams := analyzeReviewsInfo()
	if err := reg.Register(reviewInfo, reviewParams, createAnalyzeReviewsTool()); err != nil {
		return nil, fmt.Errorf("register %s: %w", ToolAnalyzeReviews, err)
	}

	statsInfo, statsParams := calculateStatisticsInfo()
	if err := reg.Register(statsInfo, statsParams, createCalculateStatisticsTool()); err != nil {
		return nil, fmt.Errorf("register %s: %w", ToolCalculateStatistics, err)
	}

	return reg, nil
}
