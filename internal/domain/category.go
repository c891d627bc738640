package domain

import "time"

type Category struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type Supplier struct {
	ID                  int64     `json:"id"`
	Name                string    `json:"name"`
	ContactPerson       string    `json:"contact_person"`
	Phone               string    `json:"phone"`
	Email               string    `json:"email"`
	Address             string    `json:"address"`
	HalalCertified      bool      `json:"halal_certified"`
	CertificationNumber string    `json:"certification_number"`
	CreatedAt           time.Time `json:"created_at"`
}
