package domain

// FarmerStop is a single pickup point on a vehicle trip.
// The ID is scoped to (cluster, vehicle index, original farmer index) so it
// stays unique after stops move between trips.
type FarmerStop struct {
	ID            string
	Name          string
	MilkLiters    float64
	Coordinate    Coordinate
	LocationLabel string
}

// Trip is one vehicle's ordered pickup assignment within a cluster.
// Stop order is the visiting sequence.
//
// TotalMilkLiters, DistanceKm, TravelTimeMinutes and UtilizationPercent are
// derived from FarmerStops plus the cluster anchor and capacity. They carry no
// independent truth: they are only ever written by recomputation, never edited
// directly, so they cannot drift from the stop list.
type Trip struct {
	ID                 string
	VehicleLabel       string
	FarmerStops        []FarmerStop
	CapacityLiters     float64
	TotalMilkLiters    float64
	DistanceKm         float64
	TravelTimeMinutes  int
	UtilizationPercent float64
}

// TripUtilization identifies an under-utilized trip within a cluster.
type TripUtilization struct {
	TripID       string
	VehicleLabel string
	Percent      float64
}

// ClusterStats are aggregate figures derived from a cluster's trips.
// A trip with zero stops is "unused", never "low-utilized"; the two are
// distinct categories.
type ClusterStats struct {
	VehiclesUsed            int
	TotalAssignedMilkLiters float64
	FullnessPercent         float64
	LowUtilizedTrips        []TripUtilization
	UnusedTrips             []string
}

// Cluster is one chilling center's schedule. The anchor coordinate is the
// center's location, used as the implicit final leg of every trip.
type Cluster struct {
	Name           string
	CapacityLiters float64
	Anchor         Coordinate
	Trips          []Trip
	Stats          ClusterStats
}

// Schedule is the full in-memory trip schedule. It is built fresh from each
// optimizer fetch and replaced wholesale, never merged.
type Schedule struct {
	Clusters []Cluster
}

// TripRef addresses exactly one trip. Trip IDs repeat across clusters in
// optimizer output, so lookups always carry the owning cluster name.
type TripRef struct {
	ClusterName string
	TripID      string
}

// FindTrip resolves a composite reference to (cluster index, trip index).
func (s *Schedule) FindTrip(ref TripRef) (int, int, bool) {
	for ci := range s.Clusters {
		if s.Clusters[ci].Name != ref.ClusterName {
			continue
		}
		for ti := range s.Clusters[ci].Trips {
			if s.Clusters[ci].Trips[ti].ID == ref.TripID {
				return ci, ti, true
			}
		}
	}
	return 0, 0, false
}

// Clone returns a deep copy of the schedule. Mutating operations work on a
// clone so the caller can swap the previous value atomically.
func (s Schedule) Clone() Schedule {
	out := Schedule{Clusters: make([]Cluster, len(s.Clusters))}
	for ci, c := range s.Clusters {
		cc := c
		cc.Trips = make([]Trip, len(c.Trips))
		for ti, t := range c.Trips {
			tt := t
			tt.FarmerStops = append([]FarmerStop(nil), t.FarmerStops...)
			cc.Trips[ti] = tt
		}
		cc.Stats = c.Stats.clone()
		out.Clusters[ci] = cc
	}
	return out
}

func (st ClusterStats) clone() ClusterStats {
	out := st
	out.LowUtilizedTrips = append([]TripUtilization(nil), st.LowUtilizedTrips...)
	out.UnusedTrips = append([]string(nil), st.UnusedTrips...)
	return out
}
