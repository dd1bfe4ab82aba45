package services

import (
	"fmt"

	"milk-collection-service/internal/domain"
	"milk-collection-service/internal/ports"
)

// NormalizeOptions carries the enrichment inputs for one normalization pass.
type NormalizeOptions struct {
	// FleetRoster in listing order; the first plate number seen per category
	// is pinned for the whole pass so labels stay stable between refreshes.
	FleetRoster []ports.RosterEntry
	// TypeCapacities maps a vehicle category to its capacity in liters, used
	// when the document carries no vehicle-level capacity.
	TypeCapacities map[string]float64
	// HubLocations maps cluster names to chilling center locations from the
	// storage hub master.
	HubLocations map[string]domain.Coordinate
	// DefaultAnchor is used when neither the document nor the hub master has
	// a location for a cluster.
	DefaultAnchor domain.Coordinate
}

// Normalize converts a raw optimizer document into a strict Schedule with all
// derived metrics populated.
//
// It never fails: missing or malformed pieces degrade to empty slices and
// documented defaults, and a fully malformed document yields a schedule with
// zero clusters. Every fallback is deterministic, so normalizing the same
// document twice produces identical schedules.
func Normalize(doc ports.RawScheduleDocument, opts NormalizeOptions) domain.Schedule {
	roster := pinRoster(opts.FleetRoster)

	clusters := make([]domain.Cluster, 0, len(doc.Clusters))
	for ci, rc := range doc.Clusters {
		name := stringOr(rc.Name, fmt.Sprintf("Center %d", ci+1))
		anchor := resolveAnchor(rc, name, opts)

		trips := make([]domain.Trip, 0, len(rc.Vehicles))
		for vi, rv := range rc.Vehicles {
			trips = append(trips, normalizeTrip(rv, ci, vi, name, anchor, roster, opts.TypeCapacities))
		}

		cluster := domain.Cluster{
			Name:           name,
			CapacityLiters: floatOr(rc.Capacity, 0),
			Anchor:         anchor,
			Trips:          trips,
		}
		cluster.Stats = RecomputeClusterStats(cluster)
		clusters = append(clusters, cluster)
	}

	return domain.Schedule{Clusters: clusters}
}

func normalizeTrip(
	rv ports.RawVehicle,
	clusterIdx int,
	vehicleIdx int,
	clusterName string,
	anchor domain.Coordinate,
	roster map[string]string,
	typeCapacities map[string]float64,
) domain.Trip {
	typeKey := stringOr(rv.Type, fmt.Sprintf("Vehicle %d", vehicleIdx+1))

	label := typeKey
	if rv.VehicleNumber != nil && *rv.VehicleNumber != "" {
		label = *rv.VehicleNumber
	} else if plate, ok := roster[typeKey]; ok {
		label = plate
	}

	stops := make([]domain.FarmerStop, 0, len(rv.Farmers))
	unknown := make([]int, 0, len(rv.Farmers))
	knownSum := 0.0

	for fi, rf := range rv.Farmers {
		// Missing coordinates fall back to the cluster anchor so distance
		// math never sees an absent point.
		coord := anchor
		if rf.Lat != nil && rf.Lng != nil {
			coord = domain.Coordinate{Lat: *rf.Lat, Lon: *rf.Lng}
		}

		stop := domain.FarmerStop{
			ID:            fmt.Sprintf("%s-v%d-f%d", clusterName, vehicleIdx, fi),
			Name:          stringOr(rf.Name, fmt.Sprintf("Farmer %d", fi+1)),
			Coordinate:    coord,
			LocationLabel: locationLabel(coord),
		}

		if rf.MilkLiters != nil {
			stop.MilkLiters = *rf.MilkLiters
			if stop.MilkLiters < 0 {
				stop.MilkLiters = 0
			}
			knownSum += stop.MilkLiters
		} else {
			unknown = append(unknown, fi)
		}

		stops = append(stops, stop)
	}

	// Reconcile a declared vehicle total against the known farmer volumes:
	// knowns are kept verbatim and only the remainder is spread over farmers
	// whose volume is absent. Without a declared total, unknowns stay at 0.
	if len(unknown) > 0 {
		remaining := 0.0
		if rv.TotalMilk != nil {
			remaining = *rv.TotalMilk - knownSum
			if remaining < 0 {
				remaining = 0
			}
		}
		for i, share := range splitEvenly(remaining, len(unknown)) {
			stops[unknown[i]].MilkLiters = share
		}
	}

	capacity := floatOr(rv.Capacity, 0)
	if capacity <= 0 {
		capacity = typeCapacities[typeKey]
	}

	trip := domain.Trip{
		ID:             fmt.Sprintf("trip-%d-%d", clusterIdx, vehicleIdx),
		VehicleLabel:   label,
		FarmerStops:    stops,
		CapacityLiters: capacity,
	}
	return RecomputeTrip(trip, anchor)
}

// splitEvenly divides total liters across n recipients: whole liters by
// integer division, one extra liter each to the first (remainder) recipients.
// Any fractional part rides on the first recipient so no volume is dropped.
func splitEvenly(total float64, n int) []float64 {
	shares := make([]float64, n)
	if n == 0 || total <= 0 {
		return shares
	}

	whole := int(total)
	base := whole / n
	rem := whole % n
	for i := range shares {
		shares[i] = float64(base)
		if i < rem {
			shares[i]++
		}
	}
	shares[0] += total - float64(whole)
	return shares
}

func pinRoster(entries []ports.RosterEntry) map[string]string {
	roster := make(map[string]string, len(entries))
	for _, e := range entries {
		if e.Category == "" || e.VehicleNumber == "" {
			continue
		}
		if _, ok := roster[e.Category]; !ok {
			roster[e.Category] = e.VehicleNumber
		}
	}
	return roster
}

func resolveAnchor(rc ports.RawCluster, name string, opts NormalizeOptions) domain.Coordinate {
	if rc.Lat != nil && rc.Lng != nil {
		return domain.Coordinate{Lat: *rc.Lat, Lon: *rc.Lng}
	}
	if loc, ok := opts.HubLocations[name]; ok {
		return loc
	}
	return opts.DefaultAnchor
}

// locationLabel derives a coarse proximity label from coordinate bands in the
// collection region. Cosmetic only.
func locationLabel(c domain.Coordinate) string {
	switch {
	case c.Lat < 10.2:
		return "Near Madurai, Tamil Nadu"
	case c.Lat < 10.4 && c.Lon > 78.3:
		return "Near Viralimalai, Tamil Nadu"
	case c.Lat < 10.5 && c.Lon > 78.2:
		return "Near Dindigul, Tamil Nadu"
	case c.Lat > 10.5 && c.Lon < 78.2:
		return "Near Karur, Tamil Nadu"
	case c.Lat > 10.6:
		return "Near Trichy, Tamil Nadu"
	default:
		return "Near Pudukkottai, Tamil Nadu"
	}
}

func stringOr(p *string, fallback string) string {
	if p != nil && *p != "" {
		return *p
	}
	return fallback
}

func floatOr(p *float64, fallback float64) float64 {
	if p != nil {
		return *p
	}
	return fallback
}
