package tools

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"

	"github.com/decision-agent-poc-v1/agent/internal/agent/model"
)

// ===================================
// Calculate Statistics Tool
// ===================================

const (
	OpCategoryComparison    = "category_comparison"
	OpPriceAnalysis         = "price_analysis"
	OpRatingRanking         = "rating_ranking"
	OpDiscountEffectiveness = "discount_effectiveness"
	OpSummary               = "summary"
)

type CalculateStatisticsInput struct {
	Operation    string   `json:"operation"`
	Categories   []string `json:"categories,omitempty"`
	ProductNames []string `json:"product_names,omitempty"`
	TopN         int      `json:"top_n,omitempty"`
}

type CategoryStats struct {
	Category     string  `json:"category"`
	Count        int     `json:"count"`
	AvgRating    float64 `json:"avg_rating"`
	AvgPrice     float64 `json:"avg_price"`
	AvgDiscount  float64 `json:"avg_discount_pct"`
	TotalRatings int     `json:"total_ratings"`
}

type RankedProduct struct {
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Rating      float64 `json:"rating"`
	RatingCount int     `json:"rating_count"`
	Price       float64 `json:"price"`
}

type PriceStats struct {
	Min         float64 `json:"min"`
	Max         float64 `json:"max"`
	Mean        float64 `json:"mean"`
	Median      float64 `json:"median"`
	AvgDiscount float64 `json:"avg_discount_pct"`
}

type DiscountBucket struct {
	Range     string  `json:"range"`
	Count     int     `json:"count"`
	AvgRating float64 `json:"avg_rating"`
}

type CalculateStatisticsOutput struct {
	Summary    string           `json:"summary"`
	Operation  string           `json:"operation"`
	Categories []CategoryStats  `json:"categories,omitempty"`
	Ranking    []RankedProduct  `json:"ranking,omitempty"`
	Prices     *PriceStats      `json:"prices,omitempty"`
	Discounts  []DiscountBucket `json:"discounts,omitempty"`
}

func calculateStatisticsInfo() (*schema.ToolInfo, map[string]*schema.ParameterInfo) {
	params := map[string]*schema.ParameterInfo{
		"operation": {
			Type:     schema.String,
			Required: true,
			Enum: []string{
				OpCategoryComparison, OpPriceAnalysis, OpRatingRanking,
				OpDiscountEffectiveness, OpSummary,
			},
			Desc: "Which statistic to compute",
		},
		"categories": {
			Type:     schema.Array,
			ElemInfo: &schema.ParameterInfo{Type: schema.String},
			Desc:     "Categories to compare or restrict to (partial match, case-insensitive)",
		},
		"product_names": {
			Type:     schema.Array,
			ElemInfo: &schema.ParameterInfo{Type: schema.String},
			Desc:     "Exact list of product names to restrict to (e.g. from a previous search)",
		},
		"top_n": {
			Type: schema.Number,
			Desc: "Number of entries for rankings (default 5)",
		},
	}
	info := &schema.ToolInfo{
		Name:        ToolCalculateStatistics,
		Desc:        "Calculate statistics over the catalog: category comparisons, price analysis, rating rankings, discount effectiveness, or an overall summary.",
		ParamsOneOf: schema.NewParamsOneOfByParams(params),
	}
	return info, params
}

func createCalculateStatisticsTool() tool.InvokableTool {
	info, _ := calculateStatisticsInfo()
	return utils.NewTool(info, func(ctx context.Context, in *CalculateStatisticsInput) (*CalculateStatisticsOutput, error) {
		products := filterForStats(in)
		out := &CalculateStatisticsOutput{Operation: in.Operation}

		if len(products) == 0 {
			out.Summary = "No products matched the given filters"
			return out, nil
		}

		switch in.Operation {
		case OpCategoryComparison:
			out.Categories = compareCategories(products, in.Categories)
			out.Summary = fmt.Sprintf("Compared %d category groups over %d products", len(out.Categories), len(products))
		case OpPriceAnalysis:
			out.Prices = analyzePrices(products)
			out.Summary = fmt.Sprintf("Price analysis over %d products: mean ₹%.0f, median ₹%.0f", len(products), out.Prices.Mean, out.Prices.Median)
		case OpRatingRanking:
			topN := in.TopN
			if topN <= 0 {
				topN = 5
			}
			out.Ranking = rankByRating(products, topN)
			out.Summary = fmt.Sprintf("Top %d of %d products by rating", len(out.Ranking), len(products))
		case OpDiscountEffectiveness:
			out.Discounts = discountBuckets(products)
			out.Summary = fmt.Sprintf("Discount effectiveness over %d products in %d discount bands", len(products), len(out.Discounts))
		case OpSummary:
			out.Categories = compareCategories(products, nil)
			out.Prices = analyzePrices(products)
			out.Summary = fmt.Sprintf("Catalog summary: %d products across %d category groups", len(products), len(out.Categories))
		default:
			// The registry's enum validation makes this unreachable via the
			// engine; guard anyway for direct callers.
			out.Summary = fmt.Sprintf("Unknown operation %q", in.Operation)
		}
		return out, nil
	})
}

func filterForStats(in *CalculateStatisticsInput) []model.Product {
	exact := make(map[string]bool, len(in.ProductNames))
	for _, n := range in.ProductNames {
		exact[strings.ToLower(strings.TrimSpace(n))] = true
	}

	var products []model.Product
	for _, p := range CatalogProducts {
		if len(exact) > 0 && !exact[strings.ToLower(p.Name)] {
			continue
		}
		if len(in.Categories) > 0 && matchCategory(p.Category, in.Categories) == "" {
			continue
		}
		products = append(products, p)
	}
	return products
}

// matchCategory returns the first requested category contained in cat, or "".
func matchCategory(cat string, requested []string) string {
	lower := strings.ToLower(cat)
	for _, want := range requested {
		w := strings.ToLower(strings.TrimSpace(want))
		if w != "" && strings.Contains(lower, w) {
			return strings.TrimSpace(want)
		}
	}
	return ""
}

// compareCategories groups by the requested category terms when provided,
// otherwise by the catalog's top-level category segment.
func compareCategories(products []model.Product, requested []string) []CategoryStats {
	groups := make(map[string][]model.Product)
	for _, p := range products {
		key := topLevelCategory(p.Category)
		if len(requested) > 0 {
			key = matchCategory(p.Category, requested)
			if key == "" {
				continue
			}
		}
		groups[key] = append(groups[key], p)
	}

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	stats := make([]CategoryStats, 0, len(keys))
	for _, k := range keys {
		g := groups[k]
		cs := CategoryStats{Category: k, Count: len(g)}
		for _, p := range g {
			cs.AvgRating += p.Rating
			cs.AvgPrice += p.DiscountedPrice
			cs.AvgDiscount += p.DiscountPercentage
			cs.TotalRatings += p.RatingCount
		}
		n := float64(len(g))
		cs.AvgRating = round2(cs.AvgRating / n)
		cs.AvgPrice = round2(cs.AvgPrice / n)
		cs.AvgDiscount = round2(cs.AvgDiscount / n)
		stats = append(stats, cs)
	}
	return stats
}

func analyzePrices(products []model.Product) *PriceStats {
	prices := make([]float64, 0, len(products))
	var sum, discountSum float64
	for _, p := range products {
		prices = append(prices, p.DiscountedPrice)
		sum += p.DiscountedPrice
		discountSum += p.DiscountPercentage
	}
	sort.Float64s(prices)

	median := prices[len(prices)/2]
	if len(prices)%2 == 0 {
		median = (prices[len(prices)/2-1] + prices[len(prices)/2]) / 2
	}
	return &PriceStats{
		Min:         prices[0],
		Max:         prices[len(prices)-1],
		Mean:        round2(sum / float64(len(prices))),
		Median:      median,
		AvgDiscount: round2(discountSum / float64(len(prices))),
	}
}

func rankByRating(products []model.Product, topN int) []RankedProduct {
	sorted := append([]model.Product(nil), products...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Rating != sorted[j].Rating {
			return sorted[i].Rating > sorted[j].Rating
		}
		return sorted[i].RatingCount > sorted[j].RatingCount
	})
	if len(sorted) > topN {
		sorted = sorted[:topN]
	}
	ranked := make([]RankedProduct, 0, len(sorted))
	for _, p := range sorted {
		ranked = append(ranked, RankedProduct{
			Name:        p.Name,
			Category:    p.Category,
			Rating:      p.Rating,
			RatingCount: p.RatingCount,
			Price:       p.DiscountedPrice,
		})
	}
	return ranked
}

func discountBuckets(products []model.Product) []DiscountBucket {
	bands := []struct {
		label    string
		min, max float64
	}{
		{"0-25%", 0, 25},
		{"25-50%", 25, 50},
		{"50-75%", 50, 75},
		{"75-100%", 75, 101},
	}

	buckets := make([]DiscountBucket, 0, len(bands))
	for _, band := range bands {
		var count int
		var ratingSum float64
		for _, p := range products {
			if p.DiscountPercentage >= band.min && p.DiscountPercentage < band.max {
				count++
				ratingSum += p.Rating
			}
		}
		if count == 0 {
			continue
		}
		buckets = append(buckets, DiscountBucket{
			Range:     band.label,
			Count:     count,
			AvgRating: round2(ratingSum / float64(count)),
		})
	}
	return buckets
}

func topLevelCategory(cat string) string {
	if i := strings.Index(cat, "|"); i > 0 {
		return cat[:i]
	}
	return cat
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
