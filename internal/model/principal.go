package model

import "github.com/google/uuid"

type Role string

const (
	RoleAdmin     Role = "ADMIN"
	RoleEstimator Role = "ESTIMATOR"
	RoleViewer    Role = "VIEWER"
)

// Principal identifies the authenticated caller of the API.
type Principal struct {
	UserID uuid.UUID
	OrgID  uuid.UUID
	Role   Role
}

func (p Principal) IsAdmin() bool     { return p.Role == RoleAdmin }
func (p Principal) IsEstimator() bool { return p.Role == RoleEstimator }
func (p Principal) IsViewer() bool    { return p.Role == RoleViewer }

// CanWrite reports whether the principal may create or modify quotes.
func (p Principal) CanWrite() bool {
	return p.Role == RoleAdmin || p.Role == RoleEstimator
}
