package details

import "fmt"

const DefaultCurrency = "PKR"

type Sale struct {
	Date     string  `json:"sale_date"`
	WeightKg float64 `json:"sale_weight"`
	Buyer    string  `json:"buyer,omitempty"`
	Price    float64 `json:"sale_price"`
	Currency string  `json:"currency,omitempty"`
}

func (Sale) payload() {}

func (s Sale) Validate() error {
	if err := checkDate("sale_date", s.Date); err != nil {
		return err
	}
	if s.WeightKg < 0 {
		return fmt.Errorf("%w: sale_weight must be >= 0", ErrInvalid)
	}
	if s.Price < 0 {
		return fmt.Errorf("%w: sale_price must be >= 0", ErrInvalid)
	}
	return nil
}

// Normalized completa la moneda por defecto.
func (s Sale) Normalized() Sale {
	if s.Currency == "" {
		s.Currency = DefaultCurrency
	}
	return s
}
