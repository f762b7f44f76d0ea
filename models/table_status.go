package models

// TableStatus is the occupancy state of a table. This is the single canonical
// enum for every surface (staff floor view, manager view, receptionist view).
type TableStatus string

const (
	TableAvailable    TableStatus = "available"
	TableOccupied     TableStatus = "occupied"
	TableReserved     TableStatus = "reserved"
	TableOutOfService TableStatus = "out_of_service"
)

var tableTransitions = map[TableStatus][]TableStatus{
	TableAvailable:    {TableOccupied, TableReserved, TableOutOfService},
	TableOccupied:     {TableAvailable, TableOutOfService},
	TableReserved:     {TableOccupied, TableAvailable, TableOutOfService},
	TableOutOfService: {TableAvailable},
}

func (s TableStatus) Valid() bool {
	_, ok := tableTransitions[s]
	return ok
}

func (s TableStatus) CanTransition(to TableStatus) bool {
	for _, next := range tableTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}
