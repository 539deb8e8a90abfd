package services

import (
	"context"

	"github.com/vitalis-hms/clinic_ledger_app/internal/dto"
)

// AuthSvcFacade defines the thin authentication surface: verify staff
// credentials and issue a clinic-scoped token.
type AuthSvcFacade interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}
