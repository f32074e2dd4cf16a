package domain

// BusinessEntity is one of the company's operating divisions. Its short code
// prefixes every reference the entity issues.
type BusinessEntity struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ShortCode string `json:"shortCode"`
}
