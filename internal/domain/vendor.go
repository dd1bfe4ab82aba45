package domain

// Vendor is a farmer master record.
type Vendor struct {
	ID              int64
	Name            string
	Location        Coordinate
	DailyMilkLiters float64
	HubID           *int64
}
