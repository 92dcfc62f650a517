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
// Analyze Reviews Tool
// ===================================

type AnalyzeReviewsInput struct {
	Category     string   `json:"category,omitempty"`
	ProductName  string   `json:"product_name,omitempty"`
	ProductNames []string `json:"product_names,omitempty"`
	AnalysisType string   `json:"analysis_type,omitempty"`
	MinRating    float64  `json:"min_rating,omitempty"`
	MaxRating    float64  `json:"max_rating,omitempty"`
}

type AnalyzeReviewsOutput struct {
	Summary          string         `json:"summary"`
	AnalysisType     string         `json:"analysis_type"`
	ProductsAnalyzed int            `json:"products_analyzed"`
	ReviewsAnalyzed  int            `json:"reviews_analyzed"`
	Complaints       []string       `json:"complaints,omitempty"`
	Praise           []string       `json:"praise,omitempty"`
	Themes           map[string]int `json:"themes,omitempty"`
}

var complaintMarkers = []string{
	"stopped working", "not working", "broke", "poor", "cheap", "waste",
	"refund", "disappointed", "slow", "drops", "dropping", "disconnect",
	"inaccurate", "off", "annoying", "noisy", "loud", "hot", "expensive",
}

var praiseMarkers = []string{
	"excellent", "great", "good", "love", "amazing", "value for money",
	"works well", "sturdy", "recommended", "comfortable", "fast", "bright",
}

// reviewThemes maps a theme label to the markers that signal it.
var reviewThemes = map[string][]string{
	"build_quality": {"build", "sturdy", "broke", "cheap", "plastic", "quality"},
	"battery":       {"battery", "charge", "charging", "playback"},
	"sound":         {"sound", "bass", "clarity", "tinny", "audio"},
	"price":         {"price", "value for money", "expensive", "rupee", "budget"},
	"connectivity":  {"wifi", "bluetooth", "connection", "disconnect", "pairing"},
	"performance":   {"slow", "fast", "accurate", "inaccurate", "tracking"},
}

func analyzeReviewsInfo() (*schema.ToolInfo, map[string]*schema.ParameterInfo) {
	params := map[string]*schema.ParameterInfo{
		"category": {
			Type: schema.String,
			Desc: "Restrict analysis to products whose category contains this value",
		},
		"product_name": {
			Type: schema.String,
			Desc: "Restrict analysis to products whose name contains this value",
		},
		"product_names": {
			Type:     schema.Array,
			ElemInfo: &schema.ParameterInfo{Type: schema.String},
			Desc:     "Exact list of product names to analyze (e.g. from a previous search)",
		},
		"analysis_type": {
			Type: schema.String,
			Enum: []string{"complaints", "praise", "themes", "all"},
			Desc: "Which analysis to run (default: all)",
		},
		"min_rating": {
			Type: schema.Number,
			Desc: "Only analyze products rated at or above this value",
		},
		"max_rating": {
			Type: schema.Number,
			Desc: "Only analyze products rated at or below this value",
		},
	}
	info := &schema.ToolInfo{
		Name:        ToolAnalyzeReviews,
		Desc:        "Analyze customer reviews for complaints, praise or recurring themes over a product subset. Returns extracted review snippets and theme counts. Returns an explicit empty result when no reviews match.",
		ParamsOneOf: schema.NewParamsOneOfByParams(params),
	}
	return info, params
}

func createAnalyzeReviewsTool() tool.InvokableTool {
	info, _ := analyzeReviewsInfo()
	return utils.NewTool(info, func(ctx context.Context, in *AnalyzeReviewsInput) (*AnalyzeReviewsOutput, error) {
		analysisType := strings.ToLower(strings.TrimSpace(in.AnalysisType))
		if analysisType == "" {
			analysisType = "all"
		}

		products := selectProducts(in)
		byID := make(map[string]model.Product, len(products))
		for _, p := range products {
			byID[p.ID] = p
		}

		out := &AnalyzeReviewsOutput{AnalysisType: analysisType, ProductsAnalyzed: len(products)}
		for _, rv := range CatalogReviews {
			p, ok := byID[rv.ProductID]
			if !ok {
				continue
			}
			out.ReviewsAnalyzed++
			text := strings.ToLower(rv.Title + " " + rv.Content)

			if analysisType == "complaints" || analysisType == "all" {
				if matchesAny(text, complaintMarkers) {
					out.Complaints = append(out.Complaints, fmt.Sprintf("%s: %s - %s", p.Name, rv.Title, rv.Content))
				}
			}
			if analysisType == "praise" || analysisType == "all" {
				if matchesAny(text, praiseMarkers) {
					out.Praise = append(out.Praise, fmt.Sprintf("%s: %s - %s", p.Name, rv.Title, rv.Content))
				}
			}
			if analysisType == "themes" || analysisType == "all" {
				for theme, markers := range reviewThemes {
					if matchesAny(text, markers) {
						if out.Themes == nil {
							out.Themes = make(map[string]int)
						}
						out.Themes[theme]++
					}
				}
			}
		}

		if out.ReviewsAnalyzed == 0 {
			out.Summary = "No reviews matched the given filters"
			return out, nil
		}
		out.Summary = fmt.Sprintf(
			"Analyzed %d reviews across %d products: %d complaint signals, %d praise signals, %d themes",
			out.ReviewsAnalyzed, out.ProductsAnalyzed, len(out.Complaints), len(out.Praise), len(out.Themes),
		)
		return out, nil
	})
}

// selectProducts applies the review tool's product filters to the catalog.
func selectProducts(in *AnalyzeReviewsInput) []model.Product {
	category := strings.ToLower(strings.TrimSpace(in.Category))
	name := strings.ToLower(strings.TrimSpace(in.ProductName))

	exact := make(map[string]bool, len(in.ProductNames))
	for _, n := range in.ProductNames {
		exact[strings.ToLower(strings.TrimSpace(n))] = true
	}

	var products []model.Product
	for _, p := range CatalogProducts {
		if len(exact) > 0 && !exact[strings.ToLower(p.Name)] {
			continue
		}
		if category != "" && !strings.Contains(strings.ToLower(p.Category), category) {
			continue
		}
		if name != "" && !strings.Contains(strings.ToLower(p.Name), name) {
			continue
		}
		if in.MinRating > 0 && p.Rating < in.MinRating {
			continue
		}
		if in.MaxRating > 0 && p.Rating > in.MaxRating {
			continue
		}
		products = append(products, p)
	}
	return products
}

func matchesAny(text string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(text, m) {
			return true
		}
	}
	return false
}
