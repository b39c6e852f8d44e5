package details

// Culling registra el descarte; el animal no se borra.
type Culling struct {
	Reason string `json:"reason"`
	Date   string `json:"date"`
}

func (Culling) payload() {}

func (c Culling) Validate() error {
	return checkDate("date", c.Date)
}
