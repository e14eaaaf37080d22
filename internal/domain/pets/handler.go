package pets

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

func RegisterRoutes(r chi.Router, svc *Service, usersSvc *users.Service) {
	r.Route("/pets", func(pr chi.Router) {
		pr.Get("/", listPetsHandler(svc, usersSvc))

		pr.With(middleware.Require(auth.ActionPetsCreate)).Post("/", createPetHandler(svc))
		pr.With(middleware.Require(auth.ActionPetsCreateAdmin)).Post("/admin", createPetHandler(svc))
		pr.With(middleware.Require(auth.ActionPetsListOwn)).Get("/my-pets", myPetsHandler(svc))

		pr.Group(func(mr chi.Router) {
			mr.Use(middleware.Require(auth.ActionPetsManage))
			mr.Put("/{petID}", updatePetHandler(svc))
			mr.Delete("/{petID}", deletePetHandler(svc))
		})
	})
}

type createPetRequest struct {
	Name        string  `json:"name" validate:"required"`
	Type        string  `json:"type" validate:"required"`
	Breed       string  `json:"breed" validate:"required"`
	Age         int     `json:"age" validate:"gte=0"`
	Price       float64 `json:"price" validate:"gte=0"`
	Stock       int     `json:"stock" validate:"gte=0"`
	Description string  `json:"description" validate:"required"`
	Image       string  `json:"image" validate:"required"`
}

type updatePetRequest struct {
	Name        *string  `json:"name"`
	Type        *string  `json:"type"`
	Breed       *string  `json:"breed"`
	Age         *int     `json:"age"`
	Price       *float64 `json:"price"`
	Stock       *int     `json:"stock"`
	Description *string  `json:"description"`
	Image       *string  `json:"image"`
}

type sellerSummary struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Location string `json:"location"`
}

type petResponse struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Type        string         `json:"type"`
	Breed       string         `json:"breed"`
	Age         int            `json:"age"`
	Price       float64        `json:"price"`
	Stock       int            `json:"stock"`
	IsAvailable bool           `json:"is_available"`
	Description string         `json:"description"`
	Image       string         `json:"image"`
	SellerID    string         `json:"seller_id"`
	Seller      *sellerSummary `json:"seller,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func listPetsHandler(svc *Service, usersSvc *users.Service) http.HandlerFunc {
	// Vitrina pública: muestra todo, con datos básicos del seller.
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			serverError(w, err)
			return
		}

		sellers := map[string]*sellerSummary{}
		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			resp := toPetResponse(p)

			if _, ok := sellers[p.SellerID]; !ok {
				if u, err := usersSvc.GetByID(r.Context(), p.SellerID); err == nil {
					sellers[p.SellerID] = &sellerSummary{ID: u.ID, FullName: u.FullName, Location: u.Location}
				} else {
					// seller borrado: se muestra la publicación igual
					sellers[p.SellerID] = nil
				}
			}
			resp.Seller = sellers[p.SellerID]

			out = append(out, resp)
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func createPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, _ := middleware.GetPrincipal(r.Context())

		var req createPetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, "missing or invalid fields", http.StatusBadRequest)
			return
		}

		pet, err := svc.Create(r.Context(), p.UserID, CreateInput{
			Name:        req.Name,
			Type:        req.Type,
			Breed:       req.Breed,
			Age:         req.Age,
			Price:       req.Price,
			Stock:       req.Stock,
			Description: req.Description,
			Image:       req.Image,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, "missing or invalid fields", http.StatusBadRequest)
				return
			}
			serverError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toPetResponse(pet))
	}
}

func myPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, _ := middleware.GetPrincipal(r.Context())

		items, err := svc.ListBySeller(r.Context(), p.UserID)
		if err != nil {
			serverError(w, err)
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, pet := range items {
			out = append(out, toPetResponse(pet))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func updatePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, _ := middleware.GetPrincipal(r.Context())

		var req updatePetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		// admin edita cualquier mascota; seller solo las suyas
		sellerScope := p.UserID
		if p.Role == auth.RoleAdmin {
			sellerScope = ""
		}

		pet, err := svc.Update(r.Context(), chi.URLParam(r, "petID"), sellerScope, UpdateInput{
			Name:        req.Name,
			Type:        req.Type,
			Breed:       req.Breed,
			Age:         req.Age,
			Price:       req.Price,
			Stock:       req.Stock,
			Description: req.Description,
			Image:       req.Image,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrNotFound):
				http.Error(w, "pet not found", http.StatusNotFound)
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, "missing or invalid fields", http.StatusBadRequest)
			default:
				serverError(w, err)
			}
			return
		}

		writeJSON(w, http.StatusOK, toPetResponse(pet))
	}
}

func deletePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, _ := middleware.GetPrincipal(r.Context())

		sellerScope := p.UserID
		if p.Role == auth.RoleAdmin {
			sellerScope = ""
		}

		if err := svc.Delete(r.Context(), chi.URLParam(r, "petID"), sellerScope); err != nil {
			if errors.Is(err, ErrNotFound) {
				http.Error(w, "pet not found", http.StatusNotFound)
				return
			}
			serverError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"message": "pet deleted"})
	}
}

func toPetResponse(p Pet) petResponse {
	return petResponse{
		ID:          p.ID,
		Name:        p.Name,
		Type:        p.Type,
		Breed:       p.Breed,
		Age:         p.Age,
		Price:       p.Price,
		Stock:       p.Stock,
		IsAvailable: p.Available(),
		Description: p.Description,
		Image:       p.Image,
		SellerID:    p.SellerID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func serverError(w http.ResponseWriter, err error) {
	log.Error().Err(err).Msg("pets: unexpected error")
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
