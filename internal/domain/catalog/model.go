package catalog

import "time"

// Item is an entry in the medicine/supplies catalog. The ID is the clinic's
// catalog code, not a surrogate key, because inventory transactions reference
// it directly.
type Item struct {
	ID                 string    `db:"id" json:"id"`
	Name               string    `db:"name" json:"name"`
	Category           string    `db:"category" json:"category"`
	Unit               *string   `db:"unit" json:"unit,omitempty"`
	DefaultRetailPrice float64   `db:"default_retail_price" json:"default_retail_price"`
	CreatedAt          time.Time `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time `db:"updated_at" json:"updated_at"`
}

// MedicalService is an entry in the services catalog (lab tests, imaging,
// consultation types). Services are addressed by (category, id).
type MedicalService struct {
	ID         string    `db:"id" json:"id"`
	Category   string    `db:"category" json:"category"`
	Name       string    `db:"name" json:"name"`
	Price      *float64  `db:"price" json:"price,omitempty"`
	ServiceFee *float64  `db:"service_fee" json:"service_fee,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// EffectivePrice resolves the billable price of a service: the listed price,
// falling back to the service fee, falling back to zero.
func (s *MedicalService) EffectivePrice() float64 {
	if s.Price != nil {
		return *s.Price
	}
	if s.ServiceFee != nil {
		return *s.ServiceFee
	}
	return 0
}

// ServiceKey identifies a medical service within the catalog.
type ServiceKey struct {
	Category string
	ID       string
}
