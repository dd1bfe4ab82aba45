package services

import (
	"milk-collection-service/internal/domain"
	"milk-collection-service/internal/ports"
)

// Denormalize converts a strict Schedule back into the raw document shape the
// optimizer backend accepts, so a manually edited schedule can be stored as a
// new run. All pointer fields are populated; the round trip through Normalize
// reproduces the same schedule.
func Denormalize(s domain.Schedule) ports.RawScheduleDocument {
	clusters := make([]ports.RawCluster, 0, len(s.Clusters))
	for _, c := range s.Clusters {
		vehicles := make([]ports.RawVehicle, 0, len(c.Trips))
		for _, t := range c.Trips {
			farmers := make([]ports.RawFarmer, 0, len(t.FarmerStops))
			for _, fs := range t.FarmerStops {
				farmers = append(farmers, ports.RawFarmer{
					Name:       strPtr(fs.Name),
					Lat:        floatPtr(fs.Coordinate.Lat),
					Lng:        floatPtr(fs.Coordinate.Lon),
					MilkLiters: floatPtr(fs.MilkLiters),
				})
			}
			vehicles = append(vehicles, ports.RawVehicle{
				VehicleNumber: strPtr(t.VehicleLabel),
				Capacity:      floatPtr(t.CapacityLiters),
				TotalMilk:     floatPtr(t.TotalMilkLiters),
				Farmers:       farmers,
			})
		}
		clusters = append(clusters, ports.RawCluster{
			Name:     strPtr(c.Name),
			Capacity: floatPtr(c.CapacityLiters),
			Lat:      floatPtr(c.Anchor.Lat),
			Lng:      floatPtr(c.Anchor.Lon),
			Vehicles: vehicles,
		})
	}
	return ports.RawScheduleDocument{Clusters: clusters}
}

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }
