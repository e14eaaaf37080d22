package accessories

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"petpal-api/internal/middleware"
	"petpal-api/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

var validate = validator.New()

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/accessories", func(ar chi.Router) {
		ar.Get("/", listHandler(svc))
		ar.Get("/animal/{animalType}", listByAnimalHandler(svc))
		ar.Get("/{accessoryID}", getHandler(svc))

		ar.Group(func(adm chi.Router) {
			adm.Use(middleware.Require(auth.ActionAccessoriesManage))
			adm.Post("/", createHandler(svc))
			adm.Put("/{accessoryID}", updateHandler(svc))
			adm.Delete("/{accessoryID}", deleteHandler(svc))
		})
	})
}

type createRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description" validate:"required"`
	Cost        float64 `json:"cost" validate:"gte=0"`
	Image       string  `json:"image" validate:"required"`
	AnimalType  string  `json:"animal_type" validate:"required"`
	UseCase     string  `json:"use_case" validate:"required"`
	Stock       int     `json:"stock" validate:"gte=0"`
}

type updateRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Cost        *float64 `json:"cost"`
	Image       *string  `json:"image"`
	AnimalType  *string  `json:"animal_type"`
	UseCase     *string  `json:"use_case"`
	Stock       *int     `json:"stock"`
	IsAvailable *bool    `json:"is_available"`
}

type accessoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Cost        float64   `json:"cost"`
	Image       string    `json:"image"`
	AnimalType  string    `json:"animal_type"`
	UseCase     string    `json:"use_case"`
	Stock       int       `json:"stock"`
	IsAvailable bool      `json:"is_available"`
	AddedByID   string    `json:"added_by_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func listHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListAvailable(r.Context())
		if err != nil {
			serverError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toResponses(items))
	}
}

func listByAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListByAnimalType(r.Context(), chi.URLParam(r, "animalType"))
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, "unknown animal type", http.StatusBadRequest)
				return
			}
			serverError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toResponses(items))
	}
}

func getHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := svc.GetByID(r.Context(), chi.URLParam(r, "accessoryID"))
		if err != nil {
			http.Error(w, "accessory not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, toResponse(a))
	}
}

func createHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, _ := middleware.GetPrincipal(r.Context())

		var req createRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, "all fields are required", http.StatusBadRequest)
			return
		}

		a, err := svc.Create(r.Context(), p.UserID, CreateInput{
			Name:        req.Name,
			Description: req.Description,
			Cost:        req.Cost,
			Image:       req.Image,
			AnimalType:  req.AnimalType,
			UseCase:     req.UseCase,
			Stock:       req.Stock,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, "all fields are required", http.StatusBadRequest)
				return
			}
			serverError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toResponse(a))
	}
}

func updateHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		a, err := svc.Update(r.Context(), chi.URLParam(r, "accessoryID"), UpdateInput{
			Name:        req.Name,
			Description: req.Description,
			Cost:        req.Cost,
			Image:       req.Image,
			AnimalType:  req.AnimalType,
			UseCase:     req.UseCase,
			Stock:       req.Stock,
			IsAvailable: req.IsAvailable,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrNotFound):
				http.Error(w, "accessory not found", http.StatusNotFound)
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, "missing or invalid fields", http.StatusBadRequest)
			default:
				serverError(w, err)
			}
			return
		}

		writeJSON(w, http.StatusOK, toResponse(a))
	}
}

func deleteHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "accessoryID")); err != nil {
			if errors.Is(err, ErrNotFound) {
				http.Error(w, "accessory not found", http.StatusNotFound)
				return
			}
			serverError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "accessory deleted"})
	}
}

func toResponses(items []Accessory) []accessoryResponse {
	out := make([]accessoryResponse, 0, len(items))
	for _, a := range items {
		out = append(out, toResponse(a))
	}
	return out
}

func toResponse(a Accessory) accessoryResponse {
	return accessoryResponse{
		ID:          a.ID,
		Name:        a.Name,
		Description: a.Description,
		Cost:        a.Cost,
		Image:       a.Image,
		AnimalType:  string(a.AnimalType),
		UseCase:     a.UseCase,
		Stock:       a.Stock,
		IsAvailable: a.IsAvailable,
		AddedByID:   a.AddedByID,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func serverError(w http.ResponseWriter, err error) {
	log.Error().Err(err).Msg("accessories: unexpected error")
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
