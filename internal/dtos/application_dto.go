package dtos

import "github.com/jobtracker-app/jobtracker/internal/models"

type ApplicationRequest struct {
	Company  string `json:"company" binding:"required"`
	Position string `json:"position" binding:"required"`
	Date     string `json:"date" binding:"required"`

	// Optional Fields
	Status    string `json:"status"` // Defaults to "submitted" if empty
	OfferLink string `json:"offer_link"`
	Notes     string `json:"notes"`
}

func (r ApplicationRequest) Draft() models.Draft {
	return models.Draft{
		Company:   r.Company,
		Position:  r.Position,
		Date:      r.Date,
		Status:    models.Status(r.Status),
		OfferLink: r.OfferLink,
		Notes:     r.Notes,
	}
}

// DraftRequest carries the form's current field state. Nothing is required
// here: a draft may be arbitrarily incomplete until submit.
type DraftRequest struct {
	Company   string `json:"company"`
	Position  string `json:"position"`
	Date      string `json:"date"`
	Status    string `json:"status"`
	OfferLink string `json:"offer_link"`
	Notes     string `json:"notes"`
}

func (r DraftRequest) Draft() models.Draft {
	return models.Draft{
		Company:   r.Company,
		Position:  r.Position,
		Date:      r.Date,
		Status:    models.Status(r.Status),
		OfferLink: r.OfferLink,
		Notes:     r.Notes,
	}
}
