package llm

import (
	"bytes"
	"context"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/dartview/internal/models"
	"github.com/ternarybob/dartview/internal/services/insights"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Fallback messages returned when the provider fails
const (
	AnalysisFallback   = "죄송합니다. AI 분석 중 오류가 발생했습니다."
	ComparisonFallback = "회사 비교 분석 중 오류가 발생했습니다."
)

// NarrativeService implements interfaces.NarrativeService on top of a Generator
type NarrativeService struct {
	generator Generator
	model     string
	logger    arbor.ILogger
	markdown  goldmark.Markdown
}

// NewNarrativeService creates a narrative service. An empty model selects the default provider's model.
func NewNarrativeService(generator Generator, model string, logger arbor.ILogger) *NarrativeService {
	return &NarrativeService{
		generator: generator,
		model:     model,
		logger:    logger,
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.Table, extension.Strikethrough, extension.Linkify),
		),
	}
}

// Analyze summarises statements over years and asks the provider to narrate them.
// Provider failures yield Success=false with AnalysisFallback and the error text.
func (s *NarrativeService) Analyze(ctx context.Context, companyName string, statements map[string]*models.Statement, years []string) *models.AnalysisResult {
	summary := insights.DeriveSummary(statements, years)
	prompt := ComposeAnalysisPrompt(companyName, summary, years)

	text, err := s.generate(ctx, prompt)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("company", companyName).
			Msg("Narrative analysis failed")
		return &models.AnalysisResult{
			Success:  false,
			Analysis: AnalysisFallback,
			Error:    err.Error(),
		}
	}

	return &models.AnalysisResult{
		Success:      true,
		Analysis:     text,
		AnalysisHTML: s.renderHTML(text),
		Summary:      summary,
	}
}

// Compare asks the provider to compare the key metrics of several companies
func (s *NarrativeService) Compare(ctx context.Context, companies []models.CompanyMetrics) *models.AnalysisResult {
	prompt := ComposeComparisonPrompt(companies)

	text, err := s.generate(ctx, prompt)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int("companies", len(companies)).
			Msg("Narrative comparison failed")
		return &models.AnalysisResult{
			Success:  false,
			Analysis: ComparisonFallback,
			Error:    err.Error(),
		}
	}

	return &models.AnalysisResult{
		Success:      true,
		Analysis:     text,
		AnalysisHTML: s.renderHTML(text),
	}
}

func (s *NarrativeService) generate(ctx context.Context, prompt string) (string, error) {
	resp, err := s.generator.GenerateContent(ctx, &ContentRequest{
		Prompt: prompt,
		Model:  s.model,
	})
	if err != nil {
		return "", err
	}

	s.logger.Debug().
		Str("provider", string(resp.Provider)).
		Str("model", resp.Model).
		Int("response_length", len(resp.Text)).
		Msg("Narrative generated")

	return resp.Text, nil
}

// renderHTML converts markdown output to HTML; conversion errors leave the field empty
func (s *NarrativeService) renderHTML(markdown string) string {
	var buf bytes.Buffer
	if err := s.markdown.Convert([]byte(markdown), &buf); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to render narrative markdown")
		return ""
	}
	return buf.String()
}
