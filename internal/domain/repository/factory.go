package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Orders() OrderRepository
	OrderItems() OrderItemRepository
	Payments() PaymentRepository
	Products() ProductRepository
	Clients() ClientRepository
	Users() UserRepository
	Audit() AuditRepository
}
