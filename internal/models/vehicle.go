package models

// VehicleType is the category of a fleet vehicle.
type VehicleType string

const (
	VehicleTruck VehicleType = "Truck"
	VehicleVan   VehicleType = "Van"
	VehicleCar   VehicleType = "Car"
	VehicleBus   VehicleType = "Bus"
)

// VehicleStatus is the operational status of a vehicle.
type VehicleStatus string

const (
	StatusActive      VehicleStatus = "active"
	StatusMaintenance VehicleStatus = "maintenance"
	StatusInactive    VehicleStatus = "inactive"
)

// Vehicle represents a fleet vehicle as listed by the fleet API.
type Vehicle struct {
	VehicleID       string        `bson:"vehicle_id" json:"vehicle_id"`
	Type            VehicleType   `bson:"type" json:"type"`
	Status          VehicleStatus `bson:"status" json:"status"`
	FuelEfficiency  float64       `bson:"fuel_efficiency" json:"fuel_efficiency"` // MPG
	NextMaintenance Date          `bson:"next_maintenance" json:"next_maintenance"`
	LastMaintenance *Date         `bson:"last_maintenance,omitempty" json:"last_maintenance,omitempty"`
	Mileage         int           `bson:"mileage,omitempty" json:"mileage,omitempty"` // in kilometers
}

// Alert returns the maintenance alert view of the vehicle.
func (v Vehicle) Alert() MaintenanceAlert {
	return MaintenanceAlert{
		VehicleID:       v.VehicleID,
		Type:            v.Type,
		NextMaintenance: v.NextMaintenance,
		Mileage:         v.Mileage,
	}
}

// IsValidVehicleType checks if a vehicle type is known
func IsValidVehicleType(t VehicleType) bool {
	switch t {
	case VehicleTruck, VehicleVan, VehicleCar, VehicleBus:
		return true
	default:
		return false
	}
}

// IsValidStatus checks if a vehicle status is known
func IsValidStatus(s VehicleStatus) bool {
	switch s {
	case StatusActive, StatusMaintenance, StatusInactive:
		return true
	default:
		return false
	}
}
