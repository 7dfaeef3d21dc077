package dev

import (
	"context"
	"time"

	"scout/internal/domain/research"
)

// SeedResearch inserts a handful of research records so the API has data to
// serve on a fresh local database.
func SeedResearch(ctx context.Context, repo research.Repository) error {
	records := []*research.ResearchRecord{
		{
			ProjectID:   "demo-project",
			UserID:      "demo-user",
			SourceType:  research.SourceTypeURL,
			SourceInput: "https://www.allbirds.com",
			Title:       "Research: Allbirds",
			AnalysisData: research.AnalysisResult{
				Product: research.ProductAnalysis{
					Name:        "Allbirds Wool Runners",
					Description: "Sustainable wool sneakers",
					Features:    []string{"Merino wool upper", "Carbon-neutral shipping"},
					Pricing:     "$98",
				},
				Company: research.CompanyAnalysis{
					Name:    "Allbirds",
					Founded: "2016",
				},
				AdRecommendations: research.AdRecommendations{
					KeyMessages: []string{"Comfort without compromise"},
				},
				Sources:     []research.Source{{URL: "https://www.allbirds.com", Title: "Allbirds"}},
				GeneratedAt: time.Now().UTC(),
			},
		},
		{
			ProjectID:   "demo-project",
			UserID:      "demo-user",
			SourceType:  research.SourceTypeText,
			SourceInput: "eco-friendly water bottles",
			Title:       "Research: eco-friendly water bottles",
			AnalysisData: research.AnalysisResult{
				Market: research.MarketAnalysis{
					Trends:     []string{"Plastic-free packaging", "Refill stations"},
					MarketSize: "USD 10B by 2030",
					Competitors: []research.Competitor{
						{Name: "Hydro Flask", Positioning: "Premium insulated bottles"},
					},
				},
				GeneratedAt: time.Now().UTC(),
			},
		},
	}

	for _, rec := range records {
		if err := repo.Create(ctx, rec); err != nil {
			return err
		}
	}
	return nil
}
