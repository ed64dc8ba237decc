package postgres

import (
	"time"

	"github.com/pedalnorte/championship-api/internal/domain/registration"
)

type registrationRequestTableModel struct {
	ID            string    `db:"id"`
	NationalID    string    `db:"national_id"`
	FullName      string    `db:"full_name"`
	Email         string    `db:"email"`
	Phone         string    `db:"phone"`
	Club          string    `db:"club"`
	City          string    `db:"city"`
	Category      string    `db:"category"`
	BirthDate     string    `db:"birth_date"`
	Instagram     string    `db:"instagram"`
	TermsAccepted bool      `db:"terms_accepted"`
	Status        string    `db:"status"`
	CreatedAt     time.Time `db:"created_at"`
}

func registrationRequestFromTableModel(row registrationRequestTableModel) registration.Request {
	return registration.Request{
		ID:            row.ID,
		NationalID:    row.NationalID,
		FullName:      row.FullName,
		Email:         row.Email,
		Phone:         row.Phone,
		Club:          row.Club,
		City:          row.City,
		Category:      row.Category,
		BirthDate:     row.BirthDate,
		Instagram:     row.Instagram,
		TermsAccepted: row.TermsAccepted,
		Status:        row.Status,
		CreatedAt:     row.CreatedAt,
	}
}

func registrationRequestToTableModel(item registration.Request) registrationRequestTableModel {
	return registrationRequestTableModel{
		ID:            item.ID,
		NationalID:    item.NationalID,
		FullName:      item.FullName,
		Email:         item.Email,
		Phone:         item.Phone,
		Club:          item.Club,
		City:          item.City,
		Category:      item.Category,
		BirthDate:     item.BirthDate,
		Instagram:     item.Instagram,
		TermsAccepted: item.TermsAccepted,
		Status:        item.Status,
		CreatedAt:     item.CreatedAt,
	}
}
