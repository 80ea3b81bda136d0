package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/oortis/tempscore/internal/contracts"
	"github.com/oortis/tempscore/internal/pipeline"
	"github.com/oortis/tempscore/pkg/config"
	"github.com/oortis/tempscore/pkg/logger"
)

// ScoreHandler serves the temperature-score endpoint.
type ScoreHandler struct {
	pipeline  *pipeline.Pipeline
	providers *config.Providers
	logger    *logger.Logger
}

// NewScoreHandler creates a score handler.
func NewScoreHandler(p *pipeline.Pipeline, providersCfg *config.Providers, log *logger.Logger) *ScoreHandler {
	return &ScoreHandler{
		pipeline:  p,
		providers: providersCfg,
		logger:    log,
	}
}

// ScoreRequest is the request body of POST /temperature_score. Omitted
// default score and aggregation method fall back to the configured
// defaults.
type ScoreRequest struct {
	DataProviders       []string                     `json:"data_providers"`
	Companies           []contracts.PortfolioCompany `json:"companies"`
	DefaultScore        *float64                     `json:"default_score"`
	AggregationMethod   string                       `json:"aggregation_method"`
	GroupingColumns     []string                     `json:"grouping_columns"`
	IncludeColumns      []string                     `json:"include_columns"`
	Scenario            *contracts.Scenario          `json:"scenario"`
	AnonymizeDataDump   bool                         `json:"anonymize_data_dump"`
	FilterScopeCategory []string                     `json:"filter_scope_category"`
	FilterTimeFrame     []string                     `json:"filter_time_frame"`
}

// ScoreResponse is the response body of POST /temperature_score.
type ScoreResponse struct {
	AggregatedScores    []contracts.AggregatedScore   `json:"aggregated_scores"`
	Scores              []contracts.ScoreRow          `json:"scores"`
	Coverage            float64                       `json:"coverage"`
	Companies           []map[string]interface{}      `json:"companies"`
	FeatureDistribution map[string]map[string]float64 `json:"feature_distribution"`
}

// Calculate computes the portfolio temperature score.
// POST /temperature_score
func (h *ScoreHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	var body ScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if len(body.Companies) == 0 {
		respondError(w, http.StatusBadRequest, "companies must not be empty")
		return
	}

	req, err := h.buildRequest(body)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.pipeline.Run(r.Context(), req)
	if err != nil {
		if pipeline.IsClientError(err) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.WithError(err).Error("Pipeline failed")
		respondError(w, http.StatusInternalServerError, "temperature score calculation failed")
		return
	}

	respondJSON(w, http.StatusOK, ScoreResponse{
		AggregatedScores:    result.Aggregations,
		Scores:              result.Scores,
		Coverage:            result.Coverage,
		Companies:           result.Companies,
		FeatureDistribution: result.Distribution,
	})
}

// buildRequest translates the transport request into a pipeline request,
// applying configured defaults and parsing the enumerated fields.
func (h *ScoreHandler) buildRequest(body ScoreRequest) (pipeline.Request, error) {
	fallback := h.providers.DefaultScore
	if body.DefaultScore != nil {
		fallback = *body.DefaultScore
	}
	if fallback < 0 {
		return pipeline.Request{}, fmt.Errorf("default_score must not be negative")
	}

	methodStr := body.AggregationMethod
	if methodStr == "" {
		methodStr = h.providers.DefaultAggregation
	}
	method, err := contracts.ParseAggregationMethod(methodStr)
	if err != nil {
		return pipeline.Request{}, err
	}

	scopes := make([]contracts.Scope, 0, len(body.FilterScopeCategory))
	for _, raw := range body.FilterScopeCategory {
		scope, ok := contracts.ParseScope(raw)
		if !ok {
			return pipeline.Request{}, fmt.Errorf("unknown scope category %q", raw)
		}
		scopes = append(scopes, scope)
	}

	frames := make([]contracts.TimeFrame, 0, len(body.FilterTimeFrame))
	for _, raw := range body.FilterTimeFrame {
		frame, ok := contracts.ParseTimeFrame(raw)
		if !ok {
			return pipeline.Request{}, fmt.Errorf("unknown time frame %q", raw)
		}
		frames = append(frames, frame)
	}

	return pipeline.Request{
		Providers:       body.DataProviders,
		Portfolio:       body.Companies,
		FallbackScore:   fallback,
		Method:          method,
		Grouping:        body.GroupingColumns,
		Scenario:        body.Scenario,
		ScopeFilter:     scopes,
		TimeFrameFilter: frames,
		IncludeColumns:  body.IncludeColumns,
		Anonymize:       body.AnonymizeDataDump,
	}, nil
}
