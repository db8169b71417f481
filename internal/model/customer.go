package model

import "github.com/google/uuid"

type Customer struct {
	ID          uuid.UUID
	CompanyName string
	ContactName string
	Email       string
	Phone       string
	Address     string
	City        string
	State       string
	Zip         string
}
