package services

import (
	"math"

	"milk-collection-service/internal/domain"
)

// AverageSpeedKmh is the fixed speed assumption used to turn route distance
// into an estimated travel time.
const AverageSpeedKmh = 30.0

// LowUtilizationThresholdPercent flags trips carrying less than this share of
// their vehicle capacity.
const LowUtilizationThresholdPercent = 70.0

// RecomputeTrip rebuilds every derived trip metric from the current stop
// sequence: total carried volume, route distance (consecutive stop legs plus
// a final leg to the cluster anchor), travel time and utilization.
//
// It is idempotent and reads nothing beyond the trip and anchor it is given.
// A trip with no stops has all derived fields reset to zero rather than
// retaining stale values.
func RecomputeTrip(trip domain.Trip, anchor domain.Coordinate) domain.Trip {
	out := trip

	if len(trip.FarmerStops) == 0 {
		out.TotalMilkLiters = 0
		out.DistanceKm = 0
		out.TravelTimeMinutes = 0
		out.UtilizationPercent = 0
		return out
	}

	total := 0.0
	for _, s := range trip.FarmerStops {
		total += s.MilkLiters
	}

	distance := 0.0
	for i := 0; i+1 < len(trip.FarmerStops); i++ {
		distance += domain.HaversineKm(trip.FarmerStops[i].Coordinate, trip.FarmerStops[i+1].Coordinate)
	}
	distance += domain.HaversineKm(trip.FarmerStops[len(trip.FarmerStops)-1].Coordinate, anchor)
	distance = round2(distance)

	out.TotalMilkLiters = total
	out.DistanceKm = distance
	out.TravelTimeMinutes = int(math.Round(distance / AverageSpeedKmh * 60))
	out.UtilizationPercent = utilizationPercent(total, trip.CapacityLiters)
	return out
}

// RecomputeClusterStats re-derives the aggregate stats for one cluster. It
// reads only the cluster passed in, so the cost of a reassignment stays
// bounded by the affected clusters.
func RecomputeClusterStats(cluster domain.Cluster) domain.ClusterStats {
	stats := domain.ClusterStats{
		VehiclesUsed:     len(cluster.Trips),
		LowUtilizedTrips: []domain.TripUtilization{},
		UnusedTrips:      []string{},
	}

	for _, t := range cluster.Trips {
		stats.TotalAssignedMilkLiters += t.TotalMilkLiters

		// An empty trip is unused, not low-utilized.
		if len(t.FarmerStops) == 0 {
			stats.UnusedTrips = append(stats.UnusedTrips, t.ID)
			continue
		}
		if t.UtilizationPercent < LowUtilizationThresholdPercent {
			stats.LowUtilizedTrips = append(stats.LowUtilizedTrips, domain.TripUtilization{
				TripID:       t.ID,
				VehicleLabel: t.VehicleLabel,
				Percent:      t.UtilizationPercent,
			})
		}
	}

	if cluster.CapacityLiters > 0 {
		stats.FullnessPercent = round2(stats.TotalAssignedMilkLiters / cluster.CapacityLiters * 100)
	}
	return stats
}

func utilizationPercent(totalLiters, capacityLiters float64) float64 {
	if capacityLiters > 0 {
		pct := round2(totalLiters / capacityLiters * 100)
		return math.Max(0, math.Min(100, pct))
	}
	// Without a known capacity a percentage would be fabricated; degrade to a
	// binary loaded/empty signal instead.
	if totalLiters > 0 {
		return 100
	}
	return 0
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
