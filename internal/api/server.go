// Package api is the HTTP surface of the green router. It is thin glue:
// input validation, orchestration calls, output shaping. No carbon logic
// lives here.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/Nisarg-M-Patel/green-MoE/internal/carbon"
	"github.com/Nisarg-M-Patel/green-MoE/internal/classify"
	"github.com/Nisarg-M-Patel/green-MoE/internal/service"
)

// CarbonService is the slice of the orchestrator the API consumes.
type CarbonService interface {
	AllReadings(ctx context.Context) []carbon.CarbonReading
	RegionCarbon(ctx context.Context, region string) service.RegionCarbon
}

// Processor forwards text work to a hosted model.
type Processor interface {
	Process(ctx context.Context, task classify.TaskType, text string) (string, error)
}

// Server serves the HTTP API.
type Server struct {
	svc       CarbonService
	processor Processor
	engine    *gin.Engine
	logger    zerolog.Logger
}

// NewServer builds the router. It returns an error only for an invalid
// CORS configuration.
func NewServer(cors CORSConfig, svc CarbonService, processor Processor, logger zerolog.Logger) (*Server, error) {
	if err := cors.Validate(); err != nil {
		return nil, err
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery(), requestIDMiddleware(), metricsMiddleware(), corsMiddleware(cors))

	s := &Server{
		svc:       svc,
		processor: processor,
		engine:    engine,
		logger:    logger,
	}
	s.registerRoutes()
	return s, nil
}

// Handler returns the root http.Handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) registerRoutes() {
	s.engine.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Green AI Router API"})
	})
	s.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiGroup := s.engine.Group("/api")
	apiGroup.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	apiGroup.POST("/process", s.handleProcess)

	carbonGroup := apiGroup.Group("/carbon")
	carbonGroup.GET("/rankings", s.handleRankings)
	carbonGroup.GET("/regions/:region", s.handleRegion)
	carbonGroup.GET("/greenest", s.handleGreenest)
}

// handleRankings serves all regions ranked greenest-first. Regions whose
// fetch failed are simply missing from the list.
func (s *Server) handleRankings(c *gin.Context) {
	ranked := carbon.Rank(s.svc.AllReadings(c.Request.Context()))

	out := make([]RankingEntry, 0, len(ranked))
	for _, entry := range ranked {
		out = append(out, RankingEntry{
			Rank:               entry.Rank,
			RegionID:           entry.Reading.Region,
			BalancingAuthority: entry.Reading.BalancingAuthority,
			CarbonIntensity:    entry.Reading.CarbonIntensity,
			RenewableShare:     entry.Reading.RenewablePercent,
			DataHour:           entry.Reading.DataHour,
			FuelMix:            toFuelMix(entry.Reading.FuelMix),
		})
	}
	c.JSON(http.StatusOK, gin.H{"rankings": out})
}

// handleRegion serves one region's carbon data, falling back to the
// degraded-mode constants when the lookup fails.
func (s *Server) handleRegion(c *gin.Context) {
	region := c.Param("region")
	data := s.svc.RegionCarbon(c.Request.Context(), region)

	// A fallback response carries sentinel fields and an empty fuel mix.
	c.JSON(http.StatusOK, RegionResponse{
		RegionID:           data.Region,
		BalancingAuthority: data.BalancingAuthority,
		CarbonIntensity:    data.CarbonIntensity,
		RenewableShare:     data.RenewablePercent,
		DataHour:           data.DataHour,
		FuelMix:            toFuelMix(data.FuelMix),
	})
}

// handleGreenest names the lowest-carbon region, or the configured clean
// default when the whole fleet is unavailable.
func (s *Server) handleGreenest(c *gin.Context) {
	region, ok := carbon.Greenest(s.svc.AllReadings(c.Request.Context()))
	if !ok {
		region = carbon.Fallback.DefaultRegion
	}
	c.JSON(http.StatusOK, GreenestResponse{RegionID: region, Fallback: !ok})
}

// handleProcess classifies the text, routes it to the greenest region,
// runs the model, and attaches that region's carbon profile.
func (s *Server) handleProcess(c *gin.Context) {
	start := time.Now()

	var req ProcessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}

	ctx := c.Request.Context()
	task := classify.Classify(req.Text)

	readings := s.svc.AllReadings(ctx)
	region, ok := carbon.Greenest(readings)
	if !ok {
		region = carbon.Fallback.DefaultRegion
	}

	result, err := s.processor.Process(ctx, task, req.Text)
	if err != nil {
		s.logger.Error().Err(err).Str("task", string(task)).Msg("inference failed")
		result = "Error processing request"
	}

	data := s.svc.RegionCarbon(ctx, region)

	c.JSON(http.StatusOK, ProcessResponse{
		Result:          result,
		TaskType:        string(task),
		Region:          region,
		CarbonIntensity: data.CarbonIntensity,
		CarbonSaved:     carbonSaved(readings, data.CarbonIntensity),
		ResponseTime:    time.Since(start).Seconds(),
	})
}

// carbonSaved describes how much cleaner the chosen region is than the
// fleet average of the current readings. With no usable fleet data the
// comparison is unknown rather than fabricated.
func carbonSaved(readings []carbon.CarbonReading, chosen float64) string {
	if len(readings) == 0 {
		return "unknown"
	}
	var sum float64
	for _, r := range readings {
		sum += r.CarbonIntensity
	}
	avg := sum / float64(len(readings))
	if avg <= 0 {
		return "unknown"
	}

	saved := (avg - chosen) / avg * 100
	if saved < 0 {
		saved = 0
	}
	return fmt.Sprintf("%.0f%% cleaner than fleet average", saved)
}

func toFuelMix(mix []carbon.FuelGeneration) []FuelMixEntry {
	out := make([]FuelMixEntry, 0, len(mix))
	for _, fuel := range mix {
		out = append(out, FuelMixEntry{
			Fuel:       fuel.FuelType,
			Generation: fuel.GenerationMWh,
			Share:      fuel.Percentage,
		})
	}
	return out
}
