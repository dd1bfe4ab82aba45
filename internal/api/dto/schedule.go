package dto

import (
	"milk-collection-service/internal/domain"
)

// Wire shapes follow the optimizer's field naming so the dashboard can render
// either source without translation.

type StopResponse struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	MilkLiters float64 `json:"milk_liters"`
	Lat        float64 `json:"lat"`
	Lng        float64 `json:"lng"`
	Location   string  `json:"location"`
}

type TripResponse struct {
	ID                 string         `json:"id"`
	VehicleNumber      string         `json:"vehicle_number"`
	Capacity           float64        `json:"capacity"`
	TotalMilk          float64        `json:"total_milk"`
	DistanceKm         float64        `json:"distance_km"`
	TravelTimeMinutes  int            `json:"travel_time_minutes"`
	UtilizationPercent float64        `json:"utilization_percent"`
	Farmers            []StopResponse `json:"farmers"`
}

type LowUtilizedResponse struct {
	TripID        string  `json:"trip_id"`
	VehicleNumber string  `json:"vehicle_number"`
	Percent       float64 `json:"percent"`
}

type ClusterStatsResponse struct {
	VehiclesUsed      int                   `json:"vehicles_used"`
	TotalAssignedMilk float64               `json:"total_assigned_milk"`
	FullnessPercent   float64               `json:"fullness_percent"`
	LowUtilized       []LowUtilizedResponse `json:"low_utilized"`
	UnusedTrips       []string              `json:"unused_trips"`
}

type ClusterResponse struct {
	Name     string               `json:"name"`
	Capacity float64              `json:"capacity"`
	Lat      float64              `json:"lat"`
	Lng      float64              `json:"lng"`
	Vehicles []TripResponse       `json:"vehicles"`
	Stats    ClusterStatsResponse `json:"stats"`
}

type ScheduleResponse struct {
	Clusters []ClusterResponse `json:"clusters"`
}

func FromSchedule(s domain.Schedule) ScheduleResponse {
	out := ScheduleResponse{Clusters: make([]ClusterResponse, 0, len(s.Clusters))}
	for _, c := range s.Clusters {
		vehicles := make([]TripResponse, 0, len(c.Trips))
		for _, t := range c.Trips {
			farmers := make([]StopResponse, 0, len(t.FarmerStops))
			for _, fs := range t.FarmerStops {
				farmers = append(farmers, StopResponse{
					ID:         fs.ID,
					Name:       fs.Name,
					MilkLiters: fs.MilkLiters,
					Lat:        fs.Coordinate.Lat,
					Lng:        fs.Coordinate.Lon,
					Location:   fs.LocationLabel,
				})
			}
			vehicles = append(vehicles, TripResponse{
				ID:                 t.ID,
				VehicleNumber:      t.VehicleLabel,
				Capacity:           t.CapacityLiters,
				TotalMilk:          t.TotalMilkLiters,
				DistanceKm:         t.DistanceKm,
				TravelTimeMinutes:  t.TravelTimeMinutes,
				UtilizationPercent: t.UtilizationPercent,
				Farmers:            farmers,
			})
		}

		stats := ClusterStatsResponse{
			VehiclesUsed:      c.Stats.VehiclesUsed,
			TotalAssignedMilk: c.Stats.TotalAssignedMilkLiters,
			FullnessPercent:   c.Stats.FullnessPercent,
			LowUtilized:       make([]LowUtilizedResponse, 0, len(c.Stats.LowUtilizedTrips)),
			UnusedTrips:       append([]string{}, c.Stats.UnusedTrips...),
		}
		for _, lu := range c.Stats.LowUtilizedTrips {
			stats.LowUtilized = append(stats.LowUtilized, LowUtilizedResponse{
				TripID:        lu.TripID,
				VehicleNumber: lu.VehicleLabel,
				Percent:       lu.Percent,
			})
		}

		out.Clusters = append(out.Clusters, ClusterResponse{
			Name:     c.Name,
			Capacity: c.CapacityLiters,
			Lat:      c.Anchor.Lat,
			Lng:      c.Anchor.Lon,
			Vehicles: vehicles,
			Stats:    stats,
		})
	}
	return out
}

// ToDomain rebuilds a schedule from its wire form. Derived fields are taken
// as-is; callers that mutate the result recompute them afterwards.
func (r ScheduleResponse) ToDomain() domain.Schedule {
	out := domain.Schedule{Clusters: make([]domain.Cluster, 0, len(r.Clusters))}
	for _, c := range r.Clusters {
		trips := make([]domain.Trip, 0, len(c.Vehicles))
		for _, t := range c.Vehicles {
			stops := make([]domain.FarmerStop, 0, len(t.Farmers))
			for _, fs := range t.Farmers {
				stops = append(stops, domain.FarmerStop{
					ID:            fs.ID,
					Name:          fs.Name,
					MilkLiters:    fs.MilkLiters,
					Coordinate:    domain.Coordinate{Lat: fs.Lat, Lon: fs.Lng},
					LocationLabel: fs.Location,
				})
			}
			trips = append(trips, domain.Trip{
				ID:                 t.ID,
				VehicleLabel:       t.VehicleNumber,
				FarmerStops:        stops,
				CapacityLiters:     t.Capacity,
				TotalMilkLiters:    t.TotalMilk,
				DistanceKm:         t.DistanceKm,
				TravelTimeMinutes:  t.TravelTimeMinutes,
				UtilizationPercent: t.UtilizationPercent,
			})
		}

		stats := domain.ClusterStats{
			VehiclesUsed:            c.Stats.VehiclesUsed,
			TotalAssignedMilkLiters: c.Stats.TotalAssignedMilk,
			FullnessPercent:         c.Stats.FullnessPercent,
			LowUtilizedTrips:        make([]domain.TripUtilization, 0, len(c.Stats.LowUtilized)),
			UnusedTrips:             append([]string{}, c.Stats.UnusedTrips...),
		}
		for _, lu := range c.Stats.LowUtilized {
			stats.LowUtilizedTrips = append(stats.LowUtilizedTrips, domain.TripUtilization{
				TripID:       lu.TripID,
				VehicleLabel: lu.VehicleNumber,
				Percent:      lu.Percent,
			})
		}

		out.Clusters = append(out.Clusters, domain.Cluster{
			Name:           c.Name,
			CapacityLiters: c.Capacity,
			Anchor:         domain.Coordinate{Lat: c.Lat, Lon: c.Lng},
			Trips:          trips,
			Stats:          stats,
		})
	}
	return out
}

// TripRefRequest addresses one trip by (cluster, trip id) plus a stop index.
type TripRefRequest struct {
	Cluster string `json:"cluster"`
	TripID  string `json:"trip_id"`
	Index   int    `json:"index"`
}

// MoveStopRequest carries the full working schedule plus the move to apply.
// The server is stateless about in-progress edits; the dashboard owns the
// working copy.
type MoveStopRequest struct {
	Schedule    ScheduleResponse `json:"schedule"`
	Source      TripRefRequest   `json:"source"`
	Destination TripRefRequest   `json:"destination"`
}
