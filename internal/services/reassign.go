package services

import (
	"errors"
	"fmt"

	"milk-collection-service/internal/domain"
)

var (
	// ErrTripNotFound means a trip reference could not be resolved to exactly
	// one trip.
	ErrTripNotFound = errors.New("move stop: trip not found")
	// ErrIndexOutOfRange means the source or destination position lies
	// outside the referenced trip's stop list.
	ErrIndexOutOfRange = errors.New("move stop: stop index out of range")
)

// MoveStop removes the stop at srcIdx from the source trip and inserts it at
// dstIdx in the destination trip. Source and destination may be the same trip,
// which reorders stops within one vehicle.
//
// Trips are addressed by (cluster name, trip id); a bare trip id is never
// matched, so an id repeated across clusters cannot hit the wrong trip. Only
// the affected trips and their clusters are recomputed.
//
// The input schedule is never mutated. On success a new schedule value is
// returned for the caller to swap in atomically; on any rejection the input
// is returned unchanged alongside the error.
func MoveStop(s domain.Schedule, src domain.TripRef, srcIdx int, dst domain.TripRef, dstIdx int) (domain.Schedule, error) {
	next := s.Clone()

	sci, sti, ok := next.FindTrip(src)
	if !ok {
		return s, fmt.Errorf("%w: source %s/%s", ErrTripNotFound, src.ClusterName, src.TripID)
	}
	dci, dti, ok := next.FindTrip(dst)
	if !ok {
		return s, fmt.Errorf("%w: destination %s/%s", ErrTripNotFound, dst.ClusterName, dst.TripID)
	}

	srcTrip := &next.Clusters[sci].Trips[sti]
	dstTrip := &next.Clusters[dci].Trips[dti]
	sameTrip := sci == dci && sti == dti

	if srcIdx < 0 || srcIdx >= len(srcTrip.FarmerStops) {
		return s, fmt.Errorf("%w: source index %d with %d stops", ErrIndexOutOfRange, srcIdx, len(srcTrip.FarmerStops))
	}

	moved := srcTrip.FarmerStops[srcIdx]
	srcTrip.FarmerStops = append(srcTrip.FarmerStops[:srcIdx], srcTrip.FarmerStops[srcIdx+1:]...)

	if dstIdx < 0 || dstIdx > len(dstTrip.FarmerStops) {
		return s, fmt.Errorf("%w: destination index %d with %d stops", ErrIndexOutOfRange, dstIdx, len(dstTrip.FarmerStops))
	}

	inserted := make([]domain.FarmerStop, 0, len(dstTrip.FarmerStops)+1)
	inserted = append(inserted, dstTrip.FarmerStops[:dstIdx]...)
	inserted = append(inserted, moved)
	inserted = append(inserted, dstTrip.FarmerStops[dstIdx:]...)
	dstTrip.FarmerStops = inserted

	*dstTrip = RecomputeTrip(*dstTrip, next.Clusters[dci].Anchor)
	if !sameTrip {
		*srcTrip = RecomputeTrip(*srcTrip, next.Clusters[sci].Anchor)
	}

	next.Clusters[sci].Stats = RecomputeClusterStats(next.Clusters[sci])
	if dci != sci {
		next.Clusters[dci].Stats = RecomputeClusterStats(next.Clusters[dci])
	}

	return next, nil
}
