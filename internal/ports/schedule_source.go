package ports

import (
	"context"
	"encoding/json"
)

// Raw optimizer output. Everything below the top-level cluster list is
// optional; pointers distinguish "absent" from zero, which matters for milk
// allocation (an unknown volume is not a zero volume).
type RawFarmer struct {
	Name       *string  `json:"name"`
	Lat        *float64 `json:"lat"`
	Lng        *float64 `json:"lng"`
	MilkLiters *float64 `json:"milk_liters"`
}

// Some optimizer revisions emit farmers as bare name strings.
func (f *RawFarmer) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var name string
		if err := json.Unmarshal(b, &name); err != nil {
			return err
		}
		f.Name = &name
		return nil
	}

	type plain RawFarmer
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*f = RawFarmer(p)
	return nil
}

type RawVehicle struct {
	Type          *string     `json:"type"`
	VehicleNumber *string     `json:"vehicle_number"`
	Capacity      *float64    `json:"capacity"`
	TotalMilk     *float64    `json:"total_milk"`
	Farmers       []RawFarmer `json:"farmers"`
}

type RawCluster struct {
	Name     *string      `json:"name"`
	Capacity *float64     `json:"capacity"`
	Lat      *float64     `json:"lat"`
	Lng      *float64     `json:"lng"`
	Vehicles []RawVehicle `json:"vehicles"`
}

// RawScheduleDocument is the opaque optimization result as the backend
// produces it. The normalizer is the compatibility boundary that turns it
// into a strict domain.Schedule.
type RawScheduleDocument struct {
	Clusters []RawCluster `json:"clusters"`
}

// ScheduleSource fetches the latest optimization result from the backend
// optimizer service.
type ScheduleSource interface {
	FetchLatest(ctx context.Context) (RawScheduleDocument, error)
}

// ScheduleSink pushes a manually overridden schedule back to the backend.
type ScheduleSink interface {
	SaveManual(ctx context.Context, doc RawScheduleDocument) error
}

// ScheduleCache keeps the latest fetched document close by so schedule reads
// do not hit the optimizer service on every request.
type ScheduleCache interface {
	Get(ctx context.Context) (RawScheduleDocument, bool, error)
	Set(ctx context.Context, doc RawScheduleDocument) error
	Invalidate(ctx context.Context) error
}
