// Package service orchestrates per-region carbon lookups: cache, catalog,
// provider fetch, scoring and ranking.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/Nisarg-M-Patel/green-MoE/internal/cache"
	"github.com/Nisarg-M-Patel/green-MoE/internal/carbon"
	"github.com/Nisarg-M-Patel/green-MoE/internal/catalog"
	"github.com/Nisarg-M-Patel/green-MoE/internal/metrics"
)

// Provider fetches raw fuel-type generation records for a balancing
// authority. *eia.Client satisfies this.
type Provider interface {
	FuelTypeData(ctx context.Context, balancingAuthority string) ([]carbon.GenerationRecord, error)
}

// Sentinel causes for a failed single-region lookup. They pick which
// degraded-mode DataHour label callers substitute; none of them is ever
// surfaced through Reading or AllReadings.
var (
	// ErrUnknownRegion means the region has no catalog mapping.
	ErrUnknownRegion = errors.New("region not in catalog")

	// ErrNoUsableData means the provider answered but the payload reduced
	// to zero generation.
	ErrNoUsableData = errors.New("no usable generation data")
)

// Service resolves carbon readings for compute regions.
type Service struct {
	catalog  *catalog.Catalog
	provider Provider
	cache    *cache.Store
	logger   zerolog.Logger
	now      func() time.Time
}

// New wires a Service from its collaborators.
func New(cat *catalog.Catalog, provider Provider, store *cache.Store, logger zerolog.Logger) *Service {
	return &Service{
		catalog:  cat,
		provider: provider,
		cache:    store,
		logger:   logger,
		now:      time.Now,
	}
}

// Reading returns the carbon reading for one region, fetching and caching
// on a cache miss. Every failure mode reads as absence; nothing is raised
// to the caller.
func (s *Service) Reading(ctx context.Context, region string) (carbon.CarbonReading, bool) {
	reading, err := s.lookup(ctx, region)
	if err != nil {
		s.logger.Warn().Err(err).Str("region", region).Msg("no carbon data for region")
		return carbon.CarbonReading{}, false
	}
	return reading, true
}

// lookup implements the fetch pipeline and classifies failures with the
// sentinel errors above so RegionCarbon can label its fallback.
func (s *Service) lookup(ctx context.Context, region string) (carbon.CarbonReading, error) {
	if cached, ok := s.cache.Get(region); ok {
		metrics.CacheHits.Inc()
		return cached, nil
	}
	metrics.CacheMisses.Inc()

	mapping, ok := s.catalog.Lookup(region)
	if !ok {
		return carbon.CarbonReading{}, fmt.Errorf("%w: %s", ErrUnknownRegion, region)
	}

	records, err := s.provider.FuelTypeData(ctx, mapping.BalancingAuthority)
	if err != nil {
		metrics.FetchFailures.WithLabelValues(region).Inc()
		return carbon.CarbonReading{}, fmt.Errorf("fetch failed for %s: %w", region, err)
	}

	mix := carbon.ParseFuelMix(records)
	if len(mix) == 0 {
		metrics.FetchFailures.WithLabelValues(region).Inc()
		return carbon.CarbonReading{}, fmt.Errorf("%w for %s (%s)", ErrNoUsableData, region, mapping.BalancingAuthority)
	}

	now := s.now()
	reading := carbon.CarbonReading{
		Region:             region,
		BalancingAuthority: mapping.BalancingAuthority,
		CarbonIntensity:    carbon.Intensity(mix),
		RenewablePercent:   carbon.RenewableShare(mix),
		FuelMix:            mix,
		CapturedAt:         now,
		DataHour:           now.Format("2006-01-02 15:00"),
	}

	s.cache.Put(region, reading)
	return reading, nil
}

// AllReadings fetches every cataloged region concurrently and returns the
// successful readings in catalog order. Individual failures are dropped;
// one slow or failing region never aborts its siblings, so the whole call
// is bounded by the slowest single fetch, not the sum.
func (s *Service) AllReadings(ctx context.Context) []carbon.CarbonReading {
	regions := s.catalog.Regions()
	results := make([]*carbon.CarbonReading, len(regions))

	var g errgroup.Group
	for i, region := range regions {
		i, region := i, region
		g.Go(func() error {
			if reading, ok := s.Reading(ctx, region.ID); ok {
				results[i] = &reading
			}
			return nil
		})
	}
	// Reading never returns an error; Wait is purely a join barrier.
	_ = g.Wait()

	readings := make([]carbon.CarbonReading, 0, len(regions))
	for _, r := range results {
		if r != nil {
			readings = append(readings, *r)
		}
	}
	return readings
}

// Rankings returns all regions ranked greenest-first.
func (s *Service) Rankings(ctx context.Context) []carbon.RankEntry {
	return carbon.Rank(s.AllReadings(ctx))
}

// Greenest returns the lowest-carbon region, or ("", false) when no
// region produced a reading.
func (s *Service) Greenest(ctx context.Context) (string, bool) {
	return carbon.Greenest(s.AllReadings(ctx))
}

// GreenestOrDefault returns the lowest-carbon region, falling back to the
// configured known-clean default when the whole fleet came back empty.
func (s *Service) GreenestOrDefault(ctx context.Context) string {
	if region, ok := s.Greenest(ctx); ok {
		return region
	}
	s.logger.Warn().
		Str("fallback", carbon.Fallback.DefaultRegion).
		Msg("could not determine greenest region, using fallback")
	return carbon.Fallback.DefaultRegion
}

// RegionCarbon is the per-region summary attached to routed work. It is
// either a genuine measurement or the explicit fallback constants.
type RegionCarbon struct {
	Region             string
	BalancingAuthority string
	CarbonIntensity    float64
	RenewablePercent   float64
	DataHour           string

	// FuelMix is the full mix behind a genuine measurement; empty for a
	// fallback.
	FuelMix []carbon.FuelGeneration
}

// RegionCarbon returns carbon data for a region, substituting the
// degraded-mode constants when the lookup fails. DataHour distinguishes
// "no data" from an outright fetch error.
func (s *Service) RegionCarbon(ctx context.Context, region string) RegionCarbon {
	reading, err := s.lookup(ctx, region)
	if err == nil {
		return RegionCarbon{
			Region:             reading.Region,
			BalancingAuthority: reading.BalancingAuthority,
			CarbonIntensity:    reading.CarbonIntensity,
			RenewablePercent:   reading.RenewablePercent,
			DataHour:           reading.DataHour,
			FuelMix:            reading.FuelMix,
		}
	}

	dataHour := carbon.Fallback.DataHourError
	if errors.Is(err, ErrUnknownRegion) || errors.Is(err, ErrNoUsableData) {
		dataHour = carbon.Fallback.DataHourNoData
	}

	s.logger.Warn().Err(err).Str("region", region).Msg("substituting fallback carbon data")
	return RegionCarbon{
		Region:             region,
		BalancingAuthority: carbon.Fallback.BalancingAuthority,
		CarbonIntensity:    carbon.Fallback.CarbonIntensity,
		RenewablePercent:   carbon.Fallback.RenewablePercent,
		DataHour:           dataHour,
	}
}
