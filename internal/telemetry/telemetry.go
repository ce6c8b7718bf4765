// Package telemetry aggregates per-region latency statistics over a fixed
// telemetry collection and exposes them over a small HTTP endpoint.
package telemetry

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"
)

// Record is one telemetry observation.
type Record struct {
	Region    string  `json:"region"`
	LatencyMS float64 `json:"latency_ms"`
	UptimePct float64 `json:"uptime_pct"`
}

// RegionStats is the aggregate for one region.
type RegionStats struct {
	// AvgLatency is the arithmetic mean latency in milliseconds.
	AvgLatency float64 `json:"avg_latency"`

	// P95Latency is the 95th-percentile latency, linearly interpolated.
	P95Latency float64 `json:"p95_latency"`

	// AvgUptime is the arithmetic mean uptime percentage.
	AvgUptime float64 `json:"avg_uptime"`

	// Breaches counts observations with latency strictly above the
	// requested threshold.
	Breaches int `json:"breaches"`
}

// LoadCollection reads a telemetry collection from a JSON file holding an
// array of records.
func LoadCollection(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read telemetry collection: %w", err)
	}
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse telemetry collection: %w", err)
	}
	return records, nil
}

// Aggregate computes per-region statistics for the requested regions.
//
// Regions with no matching records are omitted from the result rather than
// reported as zeros, so callers can distinguish "no data" from "fast".
func Aggregate(records []Record, regions []string, thresholdMS float64) map[string]RegionStats {
	result := make(map[string]RegionStats)
	for _, region := range regions {
		var latencies, uptimes []float64
		for _, r := range records {
			if r.Region != region {
				continue
			}
			latencies = append(latencies, r.LatencyMS)
			uptimes = append(uptimes, r.UptimePct)
		}
		if len(latencies) == 0 {
			continue
		}

		breaches := 0
		for _, l := range latencies {
			if l > thresholdMS {
				breaches++
			}
		}

		sorted := append([]float64(nil), latencies...)
		sort.Float64s(sorted)

		result[region] = RegionStats{
			AvgLatency: mean(latencies),
			P95Latency: percentile(sorted, 95),
			AvgUptime:  mean(uptimes),
			Breaches:   breaches,
		}
	}
	return result
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// percentile computes the p-th percentile of an ascending-sorted slice
// using linear interpolation between the two nearest ranks.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	rank := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}
