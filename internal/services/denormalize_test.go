package services

import (
	"reflect"
	"testing"

	"milk-collection-service/internal/domain"
	"milk-collection-service/internal/ports"
)

func TestDenormalizeRoundTrip(t *testing.T) {
	doc := ports.RawScheduleDocument{Clusters: []ports.RawCluster{{
		Name:     sptr("Center A"),
		Capacity: fptr(5000),
		Lat:      fptr(10.39),
		Lng:      fptr(78.81),
		Vehicles: []ports.RawVehicle{{
			VehicleNumber: sptr("TN-55-1001"),
			Capacity:      fptr(1000),
			Farmers: []ports.RawFarmer{
				{Name: sptr("Velu Dairy"), Lat: fptr(10.40), Lng: fptr(78.82), MilkLiters: fptr(40)},
				{Name: sptr("Mani Farm"), Lat: fptr(10.41), Lng: fptr(78.80), MilkLiters: fptr(25)},
			},
		}},
	}}}

	opts := NormalizeOptions{DefaultAnchor: domain.Coordinate{Lat: 10.39, Lon: 78.81}}
	first := Normalize(doc, opts)
	second := Normalize(Denormalize(first), opts)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("round trip changed the schedule:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestDenormalizeEmpty(t *testing.T) {
	out := Denormalize(domain.Schedule{})
	if len(out.Clusters) != 0 {
		t.Fatalf("expected no clusters, got %d", len(out.Clusters))
	}
}
