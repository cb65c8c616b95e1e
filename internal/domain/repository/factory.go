package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Staff() StaffRepository
	Orders() OrderRepository
	Schedules() ScheduleRepository
	Shipments() ShipmentRepository
}
