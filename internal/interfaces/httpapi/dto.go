package httpapi

import (
	"context"
	"time"

	"github.com/pedalnorte/championship-api/internal/domain/club"
	"github.com/pedalnorte/championship-api/internal/domain/registration"
	"github.com/pedalnorte/championship-api/internal/domain/result"
	"github.com/pedalnorte/championship-api/internal/domain/rider"
	"github.com/pedalnorte/championship-api/internal/domain/rut"
	"github.com/pedalnorte/championship-api/internal/usecase"
)

type registrationRequestDTO struct {
	ID         string `json:"id"`
	NationalID string `json:"nationalId"`
	FullName   string `json:"fullName"`
	Email      string `json:"email"`
	Phone      string `json:"phone,omitempty"`
	Club       string `json:"club,omitempty"`
	City       string `json:"city,omitempty"`
	Category   string `json:"category"`
	BirthDate  string `json:"birthDate,omitempty"`
	Instagram  string `json:"instagram,omitempty"`
	Status     string `json:"status"`
	CreatedAt  string `json:"createdAt"`
}

type riderDTO struct {
	ID         string `json:"id"`
	NationalID string `json:"nationalId"`
	FullName   string `json:"fullName"`
	Category   string `json:"category"`
	Club       string `json:"club"`
	City       string `json:"city"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Instagram  string `json:"instagram,omitempty"`
	BirthDate  string `json:"birthDate,omitempty"`
	CreatedAt  string `json:"createdAt"`
	UpdatedAt  string `json:"updatedAt"`
}

// riderPublicDTO is the unauthenticated profile view; contact details and the
// national identifier stay off it.
type riderPublicDTO struct {
	ID        string `json:"id"`
	FullName  string `json:"fullName"`
	Category  string `json:"category"`
	Club      string `json:"club"`
	City      string `json:"city"`
	Instagram string `json:"instagram,omitempty"`
}

type eventDTO struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Date   string `json:"date"`
	Status string `json:"status"`
	Round  int    `json:"round"`
}

type clubDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type resultDTO struct {
	ID             string   `json:"id"`
	EventID        string   `json:"eventId"`
	RiderID        string   `json:"riderId"`
	CategoryPlayed string   `json:"categoryPlayed"`
	Position       int      `json:"position"`
	Points         int      `json:"points"`
	RaceTime       string   `json:"raceTime,omitempty"`
	AvgSpeed       *float64 `json:"avgSpeed,omitempty"`
	CreatedAt      string   `json:"createdAt"`
	UpdatedAt      string   `json:"updatedAt"`
}

type eventRankingRowDTO struct {
	Rank           int      `json:"rank"`
	RiderID        string   `json:"riderId"`
	FullName       string   `json:"fullName"`
	Club           string   `json:"club"`
	CategoryPlayed string   `json:"categoryPlayed"`
	Position       int      `json:"position"`
	Points         int      `json:"points"`
	RaceTime       string   `json:"raceTime,omitempty"`
	AvgSpeed       *float64 `json:"avgSpeed,omitempty"`
}

type globalRankingRowDTO struct {
	Rank        int    `json:"rank"`
	RiderID     string `json:"riderId"`
	FullName    string `json:"fullName"`
	Club        string `json:"club"`
	Category    string `json:"category"`
	TotalPoints int    `json:"totalPoints"`
	EventCount  int    `json:"eventCount"`
}

type outcomeDTO struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	Rider   *riderDTO `json:"rider,omitempty"`
}

func registrationRequestToDTO(ctx context.Context, v registration.Request) registrationRequestDTO {
	ctx, span := startSpan(ctx, "httpapi.registrationRequestToDTO")
	defer span.End()

	return registrationRequestDTO{
		ID:         v.ID,
		NationalID: rut.Format(v.NationalID),
		FullName:   v.FullName,
		Email:      v.Email,
		Phone:      v.Phone,
		Club:       v.Club,
		City:       v.City,
		Category:   v.Category,
		BirthDate:  v.BirthDate,
		Instagram:  v.Instagram,
		Status:     v.Status,
		CreatedAt:  v.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func riderToDTO(ctx context.Context, v rider.Rider) riderDTO {
	ctx, span := startSpan(ctx, "httpapi.riderToDTO")
	defer span.End()

	return riderDTO{
		ID:         v.ID,
		NationalID: rut.Format(v.NationalID),
		FullName:   v.FullName,
		Category:   v.Category,
		Club:       v.Club,
		City:       v.City,
		Email:      v.Email,
		Phone:      v.Phone,
		Instagram:  v.Instagram,
		BirthDate:  v.BirthDate,
		CreatedAt:  v.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:  v.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func riderToPublicDTO(ctx context.Context, v rider.Rider) riderPublicDTO {
	ctx, span := startSpan(ctx, "httpapi.riderToPublicDTO")
	defer span.End()

	return riderPublicDTO{
		ID:        v.ID,
		FullName:  v.FullName,
		Category:  v.Category,
		Club:      v.Club,
		City:      v.City,
		Instagram: v.Instagram,
	}
}

func eventToDTO(ctx context.Context, v usecase.EventWithRound) eventDTO {
	ctx, span := startSpan(ctx, "httpapi.eventToDTO")
	defer span.End()

	return eventDTO{
		ID:     v.ID,
		Name:   v.Name,
		Date:   v.Date.UTC().Format("2006-01-02"),
		Status: v.Status,
		Round:  v.Round,
	}
}

func clubToDTO(ctx context.Context, v club.Club) clubDTO {
	ctx, span := startSpan(ctx, "httpapi.clubToDTO")
	defer span.End()

	return clubDTO{
		ID:   v.ID,
		Name: v.Name,
	}
}

func resultToDTO(ctx context.Context, v result.Result) resultDTO {
	ctx, span := startSpan(ctx, "httpapi.resultToDTO")
	defer span.End()

	return resultDTO{
		ID:             v.ID,
		EventID:        v.EventID,
		RiderID:        v.RiderID,
		CategoryPlayed: v.CategoryPlayed,
		Position:       v.Position,
		Points:         v.Points,
		RaceTime:       v.RaceTime,
		AvgSpeed:       v.AvgSpeed,
		CreatedAt:      v.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:      v.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func eventRankingRowToDTO(ctx context.Context, v usecase.EventRankingRow) eventRankingRowDTO {
	ctx, span := startSpan(ctx, "httpapi.eventRankingRowToDTO")
	defer span.End()

	return eventRankingRowDTO{
		Rank:           v.Rank,
		RiderID:        v.RiderID,
		FullName:       v.FullName,
		Club:           v.Club,
		CategoryPlayed: v.CategoryPlayed,
		Position:       v.Position,
		Points:         v.Points,
		RaceTime:       v.RaceTime,
		AvgSpeed:       v.AvgSpeed,
	}
}

func globalRankingRowToDTO(ctx context.Context, v usecase.GlobalRankingRow) globalRankingRowDTO {
	ctx, span := startSpan(ctx, "httpapi.globalRankingRowToDTO")
	defer span.End()

	return globalRankingRowDTO{
		Rank:        v.Rank,
		RiderID:     v.RiderID,
		FullName:    v.FullName,
		Club:        v.Club,
		Category:    v.Category,
		TotalPoints: v.TotalPoints,
		EventCount:  v.EventCount,
	}
}

func outcomeToDTO(ctx context.Context, v usecase.Outcome) outcomeDTO {
	ctx, span := startSpan(ctx, "httpapi.outcomeToDTO")
	defer span.End()

	out := outcomeDTO{
		Success: v.Success,
		Message: v.Message,
	}
	if v.Rider.ID != "" {
		mapped := riderToDTO(ctx, v.Rider)
		out.Rider = &mapped
	}
	return out
}
