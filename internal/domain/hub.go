package domain

// StorageHub is a chilling center master record. Its location anchors every
// trip of the cluster that serves it.
type StorageHub struct {
	ID             int64
	Name           string
	Location       Coordinate
	CapacityLiters float64
}
