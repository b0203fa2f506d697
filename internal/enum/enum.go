package enum

// ── State machines ──

const (
	OrderStatusNew        = "NEW"
	OrderStatusInProgress = "IN_PROGRESS"
	OrderStatusReady      = "READY"
	OrderStatusCompleted  = "COMPLETED"
	OrderStatusCancelled  = "CANCELLED"
)

const (
	TableStatusAvailable = "AVAILABLE"
	TableStatusOccupied  = "OCCUPIED"
	TableStatusReserved  = "RESERVED"
)

// ── Roles ──

const (
	RoleAdmin   = "ADMIN"
	RoleWaiter  = "WAITER"
	RoleKitchen = "KITCHEN"
	RoleBar     = "BAR"
)

// ── Configurable labels ──

// Station names are routing-policy keys, not a closed set; these are the
// defaults the seed data installs.
const (
	StationKitchen = "kitchen"
	StationBar     = "bar"
)

const (
	LangArabic  = "ar"
	LangEnglish = "en"
	LangItalian = "it"
)
