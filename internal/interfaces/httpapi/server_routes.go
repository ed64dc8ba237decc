package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/rut/validate", handler.ValidateNationalID)
	mux.HandleFunc("GET /v1/points/suggest", handler.SuggestPoints)
	mux.HandleFunc("POST /v1/registrations", handler.SubmitRegistration)
	mux.HandleFunc("GET /v1/events", handler.ListEvents)
	mux.HandleFunc("GET /v1/events/{eventID}/ranking", handler.GetEventRanking)
	mux.HandleFunc("GET /v1/rankings/global", handler.GetGlobalRanking)
	mux.HandleFunc("GET /v1/clubs", handler.ListClubs)
	mux.HandleFunc("GET /v1/riders/{riderID}", handler.GetRider)
}

func registerOperatorRoutes(mux *http.ServeMux, handler *Handler, operatorToken string) {
	operator := func(h http.HandlerFunc) http.Handler {
		return RequireOperatorToken(operatorToken, h)
	}

	mux.Handle("GET /v1/registrations/pending", operator(handler.ListPendingRegistrations))
	mux.Handle("GET /v1/registrations/{requestID}/duplicates", operator(handler.FindRegistrationDuplicates))
	mux.Handle("POST /v1/registrations/{requestID}/approve", operator(handler.ApproveRegistration))
	mux.Handle("POST /v1/registrations/{requestID}/reject", operator(handler.RejectRegistration))
	mux.Handle("GET /v1/riders", operator(handler.ListRiders))
	mux.Handle("PUT /v1/riders/{riderID}", operator(handler.SaveRider))
	mux.Handle("DELETE /v1/riders/{riderID}", operator(handler.DeleteRider))
	mux.Handle("PUT /v1/results", operator(handler.UpsertResult))
	mux.Handle("DELETE /v1/results/{resultID}", operator(handler.DeleteResult))
}
