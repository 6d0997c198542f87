package config

// ApprovalPolicy decides which bookings need an approver before checkout.
type ApprovalPolicy string

const (
	// ApprovalAlways requires approval for every booking.
	ApprovalAlways ApprovalPolicy = "always"
	// ApprovalEmployeesOnly requires approval only for employee bookings;
	// approvers and admins book pre-approved.
	ApprovalEmployeesOnly ApprovalPolicy = "employees_only"
	// ApprovalNever auto-approves every booking.
	ApprovalNever ApprovalPolicy = "never"
)

type BookingConfig struct {
	ApprovalPolicy ApprovalPolicy `yaml:"approval_policy"`
}

func loadBookingConfig() *BookingConfig {
	policy := ApprovalPolicy(getEnv("BOOKING_APPROVAL_POLICY", string(ApprovalEmployeesOnly)))
	switch policy {
	case ApprovalAlways, ApprovalEmployeesOnly, ApprovalNever:
	default:
		policy = ApprovalEmployeesOnly
	}

	return &BookingConfig{
		ApprovalPolicy: policy,
	}
}
