package appointments

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"petpal-api/internal/domain/users"
	"petpal-api/internal/middleware"
	"petpal-api/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

var validate = validator.New()

const dateLayout = "2006-01-02"

func RegisterRoutes(r chi.Router, svc *Service, usersSvc *users.Service) {
	r.Route("/appointments", func(ar chi.Router) {
		ar.Use(middleware.RequireAuth)

		ar.Post("/", bookHandler(svc, usersSvc))
		ar.Get("/my", myAppointmentsHandler(svc, usersSvc))
		ar.With(middleware.Require(auth.ActionAppointmentsServe)).
			Get("/provider", providerAppointmentsHandler(svc, usersSvc))
		ar.With(middleware.Require(auth.ActionAppointmentsAll)).
			Get("/all", allAppointmentsHandler(svc, usersSvc))

		ar.Put("/{appointmentID}/reschedule", rescheduleHandler(svc))
		ar.Delete("/{appointmentID}", cancelHandler(svc))
	})
}

type bookRequest struct {
	ProviderID      string `json:"provider_id" validate:"required"`
	ServiceType     string `json:"service_type" validate:"required"`
	AppointmentDate string `json:"appointment_date" validate:"required"`
	AppointmentTime string `json:"appointment_time" validate:"required"`
	Notes           string `json:"notes"`
}

type rescheduleRequest struct {
	AppointmentDate *string `json:"appointment_date"`
	AppointmentTime *string `json:"appointment_time"`
}

type partySummary struct {
	ID            string `json:"id"`
	FullName      string `json:"full_name"`
	Role          string `json:"role"`
	ContactNumber string `json:"contact_number,omitempty"`
	Email         string `json:"email,omitempty"`
}

type appointmentResponse struct {
	ID              string        `json:"id"`
	BuyerID         string        `json:"buyer_id"`
	ProviderID      string        `json:"provider_id"`
	ServiceType     string        `json:"service_type"`
	AppointmentDate string        `json:"appointment_date"`
	AppointmentTime string        `json:"appointment_time"`
	Status          string        `json:"status"`
	Notes           string        `json:"notes,omitempty"`
	Buyer           *partySummary `json:"buyer,omitempty"`
	Provider        *partySummary `json:"provider,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

func bookHandler(svc *Service, usersSvc *users.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, _ := middleware.GetPrincipal(r.Context())

		var req bookRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, "missing or invalid fields", http.StatusBadRequest)
			return
		}

		date, err := time.Parse(dateLayout, req.AppointmentDate)
		if err != nil {
			http.Error(w, "appointment_date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		a, err := svc.Book(r.Context(), p.UserID, BookInput{
			ProviderID:  req.ProviderID,
			ServiceType: req.ServiceType,
			Date:        date,
			Time:        req.AppointmentTime,
			Notes:       req.Notes,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrProviderUnavailable):
				http.Error(w, "service provider not available", http.StatusNotFound)
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, "missing or invalid fields", http.StatusBadRequest)
			default:
				serverError(w, err)
			}
			return
		}

		writeJSON(w, http.StatusCreated, toResponse(r, usersSvc, a))
	}
}

func myAppointmentsHandler(svc *Service, usersSvc *users.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, _ := middleware.GetPrincipal(r.Context())

		items, err := svc.ListForBuyer(r.Context(), p.UserID)
		if err != nil {
			serverError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toResponses(r, usersSvc, items))
	}
}

func providerAppointmentsHandler(svc *Service, usersSvc *users.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, _ := middleware.GetPrincipal(r.Context())

		items, err := svc.ListForProvider(r.Context(), p.UserID)
		if err != nil {
			serverError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toResponses(r, usersSvc, items))
	}
}

func allAppointmentsHandler(svc *Service, usersSvc *users.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListAll(r.Context())
		if err != nil {
			serverError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toResponses(r, usersSvc, items))
	}
}

func rescheduleHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, _ := middleware.GetPrincipal(r.Context())

		var req rescheduleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var date *time.Time
		if req.AppointmentDate != nil {
			d, err := time.Parse(dateLayout, *req.AppointmentDate)
			if err != nil {
				http.Error(w, "appointment_date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			date = &d
		}

		a, err := svc.Reschedule(r.Context(), chi.URLParam(r, "appointmentID"), p, date, req.AppointmentTime)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toBareResponse(a))
	}
}

func cancelHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, _ := middleware.GetPrincipal(r.Context())

		if err := svc.Cancel(r.Context(), chi.URLParam(r, "appointmentID"), p); err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "appointment cancelled"})
	}
}

func toResponses(r *http.Request, usersSvc *users.Service, items []Appointment) []appointmentResponse {
	out := make([]appointmentResponse, 0, len(items))
	for _, a := range items {
		out = append(out, toResponse(r, usersSvc, a))
	}
	return out
}

// toResponse agrega buyer/provider (lookup tolerante: si el usuario ya no
// existe, la cita se devuelve sin el resumen).
func toResponse(r *http.Request, usersSvc *users.Service, a Appointment) appointmentResponse {
	resp := toBareResponse(a)

	if u, err := usersSvc.GetByID(r.Context(), a.BuyerID); err == nil {
		resp.Buyer = &partySummary{
			ID: u.ID, FullName: u.FullName, Role: string(u.Role),
			ContactNumber: u.ContactNumber, Email: u.Email,
		}
	}
	if u, err := usersSvc.GetByID(r.Context(), a.ProviderID); err == nil {
		resp.Provider = &partySummary{
			ID: u.ID, FullName: u.FullName, Role: string(u.Role),
			ContactNumber: u.ContactNumber, Email: u.Email,
		}
	}

	return resp
}

func toBareResponse(a Appointment) appointmentResponse {
	return appointmentResponse{
		ID:              a.ID,
		BuyerID:         a.BuyerID,
		ProviderID:      a.ProviderID,
		ServiceType:     string(a.ServiceType),
		AppointmentDate: a.Date.Format(dateLayout),
		AppointmentTime: a.Time,
		Status:          string(a.Status),
		Notes:           a.Notes,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		http.Error(w, "appointment not found", http.StatusNotFound)
	case errors.Is(err, ErrForbidden):
		http.Error(w, "not authorized", http.StatusForbidden)
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, "missing or invalid fields", http.StatusBadRequest)
	default:
		serverError(w, err)
	}
}

func serverError(w http.ResponseWriter, err error) {
	log.Error().Err(err).Msg("appointments: unexpected error")
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
