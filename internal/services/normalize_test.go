package services

import (
	"math"
	"testing"

	"milk-collection-service/internal/domain"
	"milk-collection-service/internal/ports"
)

func fptr(v float64) *float64 { return &v }
func sptr(v string) *string   { return &v }

func TestNormalizeMilkAllocationEvenRemainder(t *testing.T) {
	doc := ports.RawScheduleDocument{
		Clusters: []ports.RawCluster{{
			Name: sptr("Center A"),
			Vehicles: []ports.RawVehicle{{
				Type:      sptr("mini"),
				TotalMilk: fptr(100),
				Farmers: []ports.RawFarmer{
					{Name: sptr("F1"), MilkLiters: fptr(25)},
					{Name: sptr("F2"), MilkLiters: fptr(35)},
					{Name: sptr("F3")},
					{Name: sptr("F4")},
				},
			}},
		}},
	}

	s := Normalize(doc, NormalizeOptions{})
	stops := s.Clusters[0].Trips[0].FarmerStops

	if stops[0].MilkLiters != 25 || stops[1].MilkLiters != 35 {
		t.Fatalf("known volumes were not preserved: %v / %v", stops[0].MilkLiters, stops[1].MilkLiters)
	}
	if stops[2].MilkLiters != 20 || stops[3].MilkLiters != 20 {
		t.Fatalf("unknown split = %v / %v, want 20 / 20", stops[2].MilkLiters, stops[3].MilkLiters)
	}
	if got := s.Clusters[0].Trips[0].TotalMilkLiters; got != 100 {
		t.Fatalf("trip total = %v, want 100", got)
	}
}

func TestNormalizeMilkAllocationOddRemainder(t *testing.T) {
	doc := ports.RawScheduleDocument{
		Clusters: []ports.RawCluster{{
			Vehicles: []ports.RawVehicle{{
				TotalMilk: fptr(101),
				Farmers: []ports.RawFarmer{
					{MilkLiters: fptr(60)},
					{},
					{},
				},
			}},
		}},
	}

	stops := Normalize(doc, NormalizeOptions{}).Clusters[0].Trips[0].FarmerStops

	// 41 remaining liters over two unknowns: the first gets the extra unit.
	if stops[1].MilkLiters != 21 || stops[2].MilkLiters != 20 {
		t.Fatalf("unknown split = %v / %v, want 21 / 20", stops[1].MilkLiters, stops[2].MilkLiters)
	}
}

func TestNormalizeNoDeclaredTotalLeavesUnknownsAtZero(t *testing.T) {
	doc := ports.RawScheduleDocument{
		Clusters: []ports.RawCluster{{
			Vehicles: []ports.RawVehicle{{
				Farmers: []ports.RawFarmer{{}, {}},
			}},
		}},
	}

	trip := Normalize(doc, NormalizeOptions{}).Clusters[0].Trips[0]
	if trip.TotalMilkLiters != 0 {
		t.Fatalf("trip total = %v, want 0 (no fabricated volumes)", trip.TotalMilkLiters)
	}
	for i, st := range trip.FarmerStops {
		if st.MilkLiters != 0 {
			t.Fatalf("stop %d volume = %v, want 0", i, st.MilkLiters)
		}
	}
}

func TestNormalizeSumInvariant(t *testing.T) {
	doc := ports.RawScheduleDocument{
		Clusters: []ports.RawCluster{{
			Vehicles: []ports.RawVehicle{
				{
					TotalMilk: fptr(90),
					Farmers:   []ports.RawFarmer{{MilkLiters: fptr(40)}, {}, {}},
				},
				{
					Farmers: []ports.RawFarmer{{MilkLiters: fptr(12.5)}, {MilkLiters: fptr(7.5)}},
				},
			},
		}},
	}

	for _, trip := range Normalize(doc, NormalizeOptions{}).Clusters[0].Trips {
		sum := 0.0
		for _, st := range trip.FarmerStops {
			sum += st.MilkLiters
		}
		if math.Abs(trip.TotalMilkLiters-sum) > 1e-9 {
			t.Fatalf("trip %s total = %v, stop sum = %v", trip.ID, trip.TotalMilkLiters, sum)
		}
	}
}

func TestNormalizeNameAndLabelFallbacks(t *testing.T) {
	doc := ports.RawScheduleDocument{
		Clusters: []ports.RawCluster{{
			Vehicles: []ports.RawVehicle{
				{Type: sptr("mini")},
				{},
			},
		}},
	}

	roster := []ports.RosterEntry{
		{Category: "mini", VehicleNumber: "TN-55-1001"},
		{Category: "mini", VehicleNumber: "TN-55-2002"}, // later plates never displace the pinned one
	}

	s := Normalize(doc, NormalizeOptions{FleetRoster: roster})
	if got := s.Clusters[0].Name; got != "Center 1" {
		t.Fatalf("cluster name = %q, want %q", got, "Center 1")
	}
	if got := s.Clusters[0].Trips[0].VehicleLabel; got != "TN-55-1001" {
		t.Fatalf("vehicle label = %q, want pinned plate %q", got, "TN-55-1001")
	}
	if got := s.Clusters[0].Trips[1].VehicleLabel; got != "Vehicle 2" {
		t.Fatalf("vehicle label = %q, want positional fallback %q", got, "Vehicle 2")
	}
}

func TestNormalizeCoordinateFallbackIsAnchor(t *testing.T) {
	anchor := domain.Coordinate{Lat: 10.3, Lon: 78.4}
	doc := ports.RawScheduleDocument{
		Clusters: []ports.RawCluster{{
			Name:     sptr("Center A"),
			Vehicles: []ports.RawVehicle{{Farmers: []ports.RawFarmer{{Name: sptr("F1")}}}},
		}},
	}

	s := Normalize(doc, NormalizeOptions{
		HubLocations: map[string]domain.Coordinate{"Center A": anchor},
	})

	stop := s.Clusters[0].Trips[0].FarmerStops[0]
	if stop.Coordinate != anchor {
		t.Fatalf("stop coordinate = %v, want anchor %v", stop.Coordinate, anchor)
	}
	if stop.LocationLabel == "" {
		t.Fatal("location label must be filled")
	}
	// A lone stop sitting on the anchor travels nowhere.
	if d := s.Clusters[0].Trips[0].DistanceKm; d != 0 {
		t.Fatalf("distance = %v, want 0", d)
	}
}

func TestNormalizeDistanceAndTravelTime(t *testing.T) {
	doc := ports.RawScheduleDocument{
		Clusters: []ports.RawCluster{{
			Lat: fptr(10.0000),
			Lng: fptr(78.0000),
			Vehicles: []ports.RawVehicle{{
				Farmers: []ports.RawFarmer{
					{Lat: fptr(10.0000), Lng: fptr(78.0000), MilkLiters: fptr(10)},
					{Lat: fptr(10.0100), Lng: fptr(78.0000), MilkLiters: fptr(10)},
				},
			}},
		}},
	}

	trip := Normalize(doc, NormalizeOptions{}).Clusters[0].Trips[0]

	// ~1.11 km out plus ~1.11 km back to the anchor.
	if math.Abs(trip.DistanceKm-2.22) > 0.02 {
		t.Fatalf("distance = %v, want ~2.22", trip.DistanceKm)
	}
	if trip.TravelTimeMinutes != 4 {
		t.Fatalf("travel time = %d, want 4 at 30 km/h", trip.TravelTimeMinutes)
	}
}

func TestNormalizeCapacityFromTypeMapAndUtilization(t *testing.T) {
	doc := ports.RawScheduleDocument{
		Clusters: []ports.RawCluster{{
			Capacity: fptr(1000),
			Vehicles: []ports.RawVehicle{
				{
					Type:    sptr("mini"),
					Farmers: []ports.RawFarmer{{MilkLiters: fptr(150)}},
				},
				{
					Type:    sptr("unmapped"),
					Farmers: []ports.RawFarmer{{MilkLiters: fptr(30)}},
				},
			},
		}},
	}

	s := Normalize(doc, NormalizeOptions{TypeCapacities: map[string]float64{"mini": 500}})

	if got := s.Clusters[0].Trips[0].UtilizationPercent; got != 30 {
		t.Fatalf("utilization = %v, want 30", got)
	}
	// Unknown capacity degrades to the binary loaded signal.
	if got := s.Clusters[0].Trips[1].UtilizationPercent; got != 100 {
		t.Fatalf("utilization without capacity = %v, want 100", got)
	}
	if got := s.Clusters[0].Stats.FullnessPercent; got != 18 {
		t.Fatalf("fullness = %v, want 18", got)
	}
}

func TestNormalizeMalformedDocument(t *testing.T) {
	s := Normalize(ports.RawScheduleDocument{}, NormalizeOptions{})
	if len(s.Clusters) != 0 {
		t.Fatalf("clusters = %d, want 0", len(s.Clusters))
	}

	s = Normalize(ports.RawScheduleDocument{Clusters: []ports.RawCluster{{}}}, NormalizeOptions{})
	if len(s.Clusters) != 1 || len(s.Clusters[0].Trips) != 0 {
		t.Fatalf("empty cluster record should normalize to a cluster with no trips, got %+v", s.Clusters)
	}
}
