package domain

import (
	"math"
	"testing"
)

func TestHaversineKmIdenticalPoints(t *testing.T) {
	p := Coordinate{Lat: 10.5, Lon: 78.2}
	if d := HaversineKm(p, p); d != 0 {
		t.Fatalf("distance between identical points = %v, want 0", d)
	}
}

func TestHaversineKmOneHundredthDegreeLatitude(t *testing.T) {
	a := Coordinate{Lat: 10.0000, Lon: 78.0000}
	b := Coordinate{Lat: 10.0100, Lon: 78.0000}

	// 0.01 degrees of latitude is about 1.11 km on a 6371 km sphere.
	d := HaversineKm(a, b)
	if math.Abs(d-1.112) > 0.01 {
		t.Fatalf("distance = %v, want ~1.11", d)
	}
}

func TestHaversineKmSymmetric(t *testing.T) {
	a := Coordinate{Lat: 10.12, Lon: 78.45}
	b := Coordinate{Lat: 10.61, Lon: 78.02}

	if ab, ba := HaversineKm(a, b), HaversineKm(b, a); math.Abs(ab-ba) > 1e-9 {
		t.Fatalf("asymmetric distance: %v vs %v", ab, ba)
	}
}
