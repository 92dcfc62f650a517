package tools

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func invokeReviews(t *testing.T, params map[string]any) AnalyzeReviewsOutput {
	t.Helper()
	reg, err := NewDefaultRegistry()
	require.NoError(t, err)

	raw, err := reg.Invoke(context.Background(), ToolAnalyzeReviews, params)
	require.NoError(t, err)

	var out AnalyzeReviewsOutput
	require.NoError(t, json.Unmarshal([]byte(raw), &out))
	return out
}

func TestAnalyzeReviewsComplaints(t *testing.T) {
	out := invokeReviews(t, map[string]any{
		"category":      "speakers",
		"analysis_type": "complaints",
	})
	assert.Equal(t, "complaints", out.AnalysisType)
	assert.Equal(t, 3, out.ProductsAnalyzed)
	assert.NotZero(t, out.ReviewsAnalyzed)
	assert.NotEmpty(t, out.Complaints)
	assert.Empty(t, out.Praise)
	assert.Empty(t, out.Themes)
}

func TestAnalyzeReviewsPraise(t *testing.T) {
	out := invokeReviews(t, map[string]any{
		"product_name":  "JBL",
		"analysis_type": "praise",
	})
	assert.Equal(t, 1, out.ProductsAnalyzed)
	assert.NotEmpty(t, out.Praise)
	assert.Empty(t, out.Complaints)
}

func TestAnalyzeReviewsThemes(t *testing.T) {
	out := invokeReviews(t, map[string]any{
		"category":      "speakers",
		"analysis_type": "themes",
	})
	require.NotEmpty(t, out.Themes)
	assert.Positive(t, out.Themes["sound"])
}

func TestAnalyzeReviewsAllIsDefault(t *testing.T) {
	out := invokeReviews(t, map[string]any{"category": "printers"})
	assert.Equal(t, "all", out.AnalysisType)
	assert.NotEmpty(t, out.Complaints)
	assert.NotEmpty(t, out.Praise)
	assert.NotEmpty(t, out.Themes)
}

func TestAnalyzeReviewsExactNameSubset(t *testing.T) {
	out := invokeReviews(t, map[string]any{
		"product_names": []any{"boAt Stone 352 Bluetooth Speaker"},
	})
	assert.Equal(t, 1, out.ProductsAnalyzed)
	assert.Equal(t, 2, out.ReviewsAnalyzed)
}

func TestAnalyzeReviewsRatingBound(t *testing.T) {
	out := invokeReviews(t, map[string]any{
		"category":   "speakers",
		"max_rating": 4.2,
	})
	// JBL Flip 6 at 4.5 must be excluded
	assert.Equal(t, 2, out.ProductsAnalyzed)
}

func TestAnalyzeReviewsNoMatches(t *testing.T) {
	out := invokeReviews(t, map[string]any{"category": "telescopes"})
	assert.Zero(t, out.ReviewsAnalyzed)
	assert.Equal(t, "No reviews matched the given filters", out.Summary)
}

func TestAnalyzeReviewsRejectsUnknownAnalysisType(t *testing.T) {
	reg, err := NewDefaultRegistry()
	require.NoError(t, err)
	_, err = reg.Invoke(context.Background(), ToolAnalyzeReviews, map[string]any{
		"analysis_type": "sentiment_vibes",
	})
	require.Error(t, err)
}
