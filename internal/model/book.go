package model

// Book represents a catalog entry. Copy counts track physical stock;
// Available must mirror AvailableCopies > 0.
type Book struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	ISBN            string `json:"isbn"`
	Category        string `json:"category"`
	Description     string `json:"description"`
	CoverURL        string `json:"cover_url,omitempty"`
	Available       bool   `json:"available"`
	TotalCopies     int    `json:"total_copies"`
	AvailableCopies int    `json:"available_copies"`
}
