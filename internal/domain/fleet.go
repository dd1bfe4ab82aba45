package domain

// Vehicle is a fleet master record. VehicleNumber is the display plate used by
// the trip scheduler when the vehicle's category can be resolved.
type Vehicle struct {
	ID             int64
	VehicleNumber  string
	Category       string
	CapacityLiters float64
	DriverName     string
	DriverContact  string
	IsAvailable    bool
}
