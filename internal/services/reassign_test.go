package services

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"milk-collection-service/internal/domain"
)

func buildSchedule() domain.Schedule {
	anchorA := domain.Coordinate{Lat: 10.00, Lon: 78.00}
	anchorB := domain.Coordinate{Lat: 10.50, Lon: 78.30}

	tripA := RecomputeTrip(domain.Trip{
		ID:             "trip-1",
		VehicleLabel:   "TN-55-1001",
		CapacityLiters: 100,
		FarmerStops: []domain.FarmerStop{
			{ID: "A-v0-f0", Name: "F1", MilkLiters: 10, Coordinate: domain.Coordinate{Lat: 10.01, Lon: 78.00}},
			{ID: "A-v0-f1", Name: "F2", MilkLiters: 15, Coordinate: domain.Coordinate{Lat: 10.02, Lon: 78.01}},
			{ID: "A-v0-f2", Name: "F3", MilkLiters: 25, Coordinate: domain.Coordinate{Lat: 10.03, Lon: 78.02}},
		},
	}, anchorA)

	tripB := RecomputeTrip(domain.Trip{
		ID:             "trip-1", // same local id as tripA, different cluster
		VehicleLabel:   "TN-55-2002",
		CapacityLiters: 100,
		FarmerStops: []domain.FarmerStop{
			{ID: "B-v0-f0", Name: "G1", MilkLiters: 12, Coordinate: domain.Coordinate{Lat: 10.51, Lon: 78.31}},
			{ID: "B-v0-f1", Name: "G2", MilkLiters: 18, Coordinate: domain.Coordinate{Lat: 10.52, Lon: 78.32}},
		},
	}, anchorB)

	clusterA := domain.Cluster{Name: "Center A", CapacityLiters: 200, Anchor: anchorA, Trips: []domain.Trip{tripA}}
	clusterA.Stats = RecomputeClusterStats(clusterA)
	clusterB := domain.Cluster{Name: "Center B", CapacityLiters: 200, Anchor: anchorB, Trips: []domain.Trip{tripB}}
	clusterB.Stats = RecomputeClusterStats(clusterB)

	return domain.Schedule{Clusters: []domain.Cluster{clusterA, clusterB}}
}

func TestMoveStopConservation(t *testing.T) {
	before := buildSchedule()
	movedVolume := before.Clusters[0].Trips[0].FarmerStops[1].MilkLiters

	after, err := MoveStop(before,
		domain.TripRef{ClusterName: "Center A", TripID: "trip-1"}, 1,
		domain.TripRef{ClusterName: "Center B", TripID: "trip-1"}, 0,
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	src := after.Clusters[0].Trips[0]
	dst := after.Clusters[1].Trips[0]

	if len(src.FarmerStops) != 2 || len(dst.FarmerStops) != 3 {
		t.Fatalf("stop counts = %d / %d, want 2 / 3", len(src.FarmerStops), len(dst.FarmerStops))
	}
	if math.Abs(src.TotalMilkLiters-(50-movedVolume)) > 1e-9 {
		t.Fatalf("source total = %v, want %v", src.TotalMilkLiters, 50-movedVolume)
	}
	if math.Abs(dst.TotalMilkLiters-(30+movedVolume)) > 1e-9 {
		t.Fatalf("destination total = %v, want %v", dst.TotalMilkLiters, 30+movedVolume)
	}
	if dst.FarmerStops[0].ID != "A-v0-f1" {
		t.Fatalf("moved stop not inserted at destination index 0: %+v", dst.FarmerStops)
	}

	// Cluster aggregates follow the move.
	if got := after.Clusters[0].Stats.TotalAssignedMilkLiters; math.Abs(got-(50-movedVolume)) > 1e-9 {
		t.Fatalf("source cluster assigned = %v, want %v", got, 50-movedVolume)
	}
	if got := after.Clusters[1].Stats.TotalAssignedMilkLiters; math.Abs(got-(30+movedVolume)) > 1e-9 {
		t.Fatalf("destination cluster assigned = %v, want %v", got, 30+movedVolume)
	}
}

func TestMoveStopDoesNotMutateInput(t *testing.T) {
	before := buildSchedule()
	snapshot := before.Clone()

	if _, err := MoveStop(before,
		domain.TripRef{ClusterName: "Center A", TripID: "trip-1"}, 0,
		domain.TripRef{ClusterName: "Center B", TripID: "trip-1"}, 0,
	); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(before, snapshot) {
		t.Fatal("input schedule was mutated")
	}
}

func TestMoveStopCompositeKeyDisambiguates(t *testing.T) {
	// Both clusters contain a trip with the local id "trip-1". A reorder
	// addressed to Center B must leave Center A untouched.
	before := buildSchedule()

	after, err := MoveStop(before,
		domain.TripRef{ClusterName: "Center B", TripID: "trip-1"}, 0,
		domain.TripRef{ClusterName: "Center B", TripID: "trip-1"}, 1,
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(after.Clusters[0], before.Clusters[0]) {
		t.Fatal("cluster with the same local trip id was wrongly mutated")
	}
	if got := after.Clusters[1].Trips[0].FarmerStops[0].ID; got != "B-v0-f1" {
		t.Fatalf("reorder did not apply to the addressed cluster, first stop = %q", got)
	}
}

func TestMoveStopUnknownRefIsNoOp(t *testing.T) {
	before := buildSchedule()

	after, err := MoveStop(before,
		domain.TripRef{ClusterName: "Center Z", TripID: "trip-1"}, 0,
		domain.TripRef{ClusterName: "Center B", TripID: "trip-1"}, 0,
	)
	if !errors.Is(err, ErrTripNotFound) {
		t.Fatalf("error = %v, want ErrTripNotFound", err)
	}
	if !reflect.DeepEqual(after, before) {
		t.Fatal("schedule changed despite rejected move")
	}
}

func TestMoveStopIndexOutOfRangeIsNoOp(t *testing.T) {
	before := buildSchedule()
	srcRef := domain.TripRef{ClusterName: "Center A", TripID: "trip-1"}
	dstRef := domain.TripRef{ClusterName: "Center B", TripID: "trip-1"}

	if _, err := MoveStop(before, srcRef, 7, dstRef, 0); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("source bound: error = %v, want ErrIndexOutOfRange", err)
	}
	if _, err := MoveStop(before, srcRef, 0, dstRef, 5); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("destination bound: error = %v, want ErrIndexOutOfRange", err)
	}

	after, _ := MoveStop(before, srcRef, 7, dstRef, 0)
	if !reflect.DeepEqual(after, before) {
		t.Fatal("schedule changed despite rejected move")
	}
}

func TestMoveStopSameTripReorder(t *testing.T) {
	before := buildSchedule()
	ref := domain.TripRef{ClusterName: "Center A", TripID: "trip-1"}

	after, err := MoveStop(before, ref, 0, ref, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	trip := after.Clusters[0].Trips[0]
	if len(trip.FarmerStops) != 3 {
		t.Fatalf("stop count = %d, want 3", len(trip.FarmerStops))
	}
	if trip.FarmerStops[2].ID != "A-v0-f0" {
		t.Fatalf("stop order after reorder = %v", []string{trip.FarmerStops[0].ID, trip.FarmerStops[1].ID, trip.FarmerStops[2].ID})
	}
	if trip.TotalMilkLiters != before.Clusters[0].Trips[0].TotalMilkLiters {
		t.Fatalf("reorder changed total volume: %v", trip.TotalMilkLiters)
	}
}

func TestMoveStopEmptiedTripBecomesUnused(t *testing.T) {
	before := buildSchedule()

	s := before
	var err error
	for i := 0; i < 2; i++ {
		s, err = MoveStop(s,
			domain.TripRef{ClusterName: "Center B", TripID: "trip-1"}, 0,
			domain.TripRef{ClusterName: "Center A", TripID: "trip-1"}, 0,
		)
		if err != nil {
			t.Fatalf("move %d: %v", i, err)
		}
	}

	emptied := s.Clusters[1].Trips[0]
	if emptied.TotalMilkLiters != 0 || emptied.DistanceKm != 0 || emptied.TravelTimeMinutes != 0 || emptied.UtilizationPercent != 0 {
		t.Fatalf("emptied trip kept stale metrics: %+v", emptied)
	}

	stats := s.Clusters[1].Stats
	if len(stats.UnusedTrips) != 1 || stats.UnusedTrips[0] != "trip-1" {
		t.Fatalf("unused = %+v, want the emptied trip", stats.UnusedTrips)
	}
	if len(stats.LowUtilizedTrips) != 0 {
		t.Fatalf("emptied trip must not be low-utilized: %+v", stats.LowUtilizedTrips)
	}
}
