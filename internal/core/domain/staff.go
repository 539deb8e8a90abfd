package domain

// Staff represents a clinic staff member able to authenticate against the API.
// Identity management is a thin collaborator here; the ledger core only needs
// the staff ID (for audit fields) and the clinic scope.
type Staff struct {
	StaffID      string `json:"staffID"`
	ClinicID     string `json:"clinicID"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`
	IsActive     bool   `json:"isActive"`
	AuditFields
}
