package users

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

// RegisterRoutes monta /auth/* y los directorios públicos de providers.
func RegisterRoutes(r chi.Router, svc *Service, issuer auth.TokenIssuer, secureCookies bool) {
	r.Route("/auth", func(ar chi.Router) {
		ar.Post("/register", registerHandler(svc, issuer, secureCookies))
		ar.Post("/login", loginHandler(svc, issuer, secureCookies))
		ar.Post("/logout", logoutHandler(secureCookies))

		ar.Group(func(pr chi.Router) {
			pr.Use(middleware.RequireAuth)
			pr.Get("/me", meHandler(svc))
			pr.Put("/me", updateMeHandler(svc))
		})

		ar.Group(func(adm chi.Router) {
			adm.Use(middleware.Require(auth.ActionUsersManage))
			adm.Get("/users", listUsersHandler(svc))
			adm.Put("/users/{userID}", adminUpdateUserHandler(svc))
		})
	})

	// Directorios públicos de providers activos.
	providers := map[string]auth.Role{
		"/vets":    auth.RoleVet,
		"/walkers": auth.RoleWalker,
		"/daycare": auth.RoleDaycare,
	}
	for prefix, role := range providers {
		role := role
		r.Route(prefix, func(dr chi.Router) {
			dr.Get("/", listProvidersHandler(svc, role))
			dr.Get("/profile/{userID}", getProviderHandler(svc, role))
		})
	}
}

type registerRequest struct {
	Email         string  `json:"email" validate:"required,email"`
	Password      string  `json:"password" validate:"required,min=6"`
	FullName      string  `json:"full_name" validate:"required"`
	Age           int     `json:"age" validate:"required,gt=0"`
	Sex           string  `json:"sex" validate:"required"`
	Location      string  `json:"location" validate:"required"`
	Role          string  `json:"role"`
	HourlyRate    float64 `json:"hourly_rate" validate:"gte=0"`
	Image         string  `json:"image"`
	ContactNumber string  `json:"contact_number"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type userResponse struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	FullName      string    `json:"full_name"`
	Age           int       `json:"age"`
	Sex           string    `json:"sex"`
	Location      string    `json:"location"`
	Role          string    `json:"role"`
	HourlyRate    float64   `json:"hourly_rate"`
	Image         string    `json:"image"`
	ContactNumber string    `json:"contact_number"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type updateProfileRequest struct {
	Email         *string  `json:"email"`
	FullName      *string  `json:"full_name"`
	Age           *int     `json:"age"`
	Sex           *string  `json:"sex"`
	Location      *string  `json:"location"`
	HourlyRate    *float64 `json:"hourly_rate"`
	Image         *string  `json:"image"`
	ContactNumber *string  `json:"contact_number"`
}

type adminUpdateRequest struct {
	updateProfileRequest
	Role     *string `json:"role"`
	IsActive *bool   `json:"is_active"`
}

func registerHandler(svc *Service, issuer auth.TokenIssuer, secure bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, "missing or invalid fields", http.StatusBadRequest)
			return
		}

		u, err := svc.Register(r.Context(), RegisterInput{
			Email:         req.Email,
			Password:      req.Password,
			FullName:      req.FullName,
			Age:           req.Age,
			Sex:           req.Sex,
			Location:      req.Location,
			Role:          req.Role,
			HourlyRate:    req.HourlyRate,
			Image:         req.Image,
			ContactNumber: req.ContactNumber,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrEmailTaken):
				http.Error(w, "user already exists", http.StatusBadRequest)
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, "missing or invalid fields", http.StatusBadRequest)
			default:
				serverError(w, err)
			}
			return
		}

		if err := setTokenCookie(w, issuer, u.ID, secure); err != nil {
			serverError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toUserResponse(u))
	}
}

func loginHandler(svc *Service, issuer auth.TokenIssuer, secure bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, "invalid credentials", http.StatusBadRequest)
			return
		}

		u, err := svc.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, ErrInvalidCredentials) {
				http.Error(w, "invalid credentials", http.StatusBadRequest)
				return
			}
			serverError(w, err)
			return
		}

		if err := setTokenCookie(w, issuer, u.ID, secure); err != nil {
			serverError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toUserResponse(u))
	}
}

// logoutHandler solo borra la cookie; el token sigue válido hasta expirar
// (comportamiento heredado del sistema original).
func logoutHandler(secure bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{
			Name:     middleware.CookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   secure,
			SameSite: http.SameSiteLaxMode,
		})
		writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
	}
}

func meHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, _ := middleware.GetPrincipal(r.Context())

		u, err := svc.GetByID(r.Context(), p.UserID)
		if err != nil {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, toUserResponse(u))
	}
}

func updateMeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, _ := middleware.GetPrincipal(r.Context())

		var req updateProfileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		u, err := svc.UpdateProfile(r.Context(), p.UserID, toProfileInput(req))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toUserResponse(u))
	}
}

func listUsersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			serverError(w, err)
			return
		}

		out := make([]userResponse, 0, len(items))
		for _, u := range items {
			out = append(out, toUserResponse(u))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func adminUpdateUserHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req adminUpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		u, err := svc.AdminUpdate(r.Context(), chi.URLParam(r, "userID"), AdminUpdateInput{
			UpdateProfileInput: toProfileInput(req.updateProfileRequest),
			Role:               req.Role,
			IsActive:           req.IsActive,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toUserResponse(u))
	}
}

func listProvidersHandler(svc *Service, role auth.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListProviders(r.Context(), role)
		if err != nil {
			serverError(w, err)
			return
		}

		out := make([]userResponse, 0, len(items))
		for _, u := range items {
			out = append(out, toUserResponse(u))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getProviderHandler(svc *Service, role auth.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := svc.GetProvider(r.Context(), role, chi.URLParam(r, "userID"))
		if err != nil {
			http.Error(w, string(role)+" not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, toUserResponse(u))
	}
}

func setTokenCookie(w http.ResponseWriter, issuer auth.TokenIssuer, userID string, secure bool) error {
	token, exp, err := issuer.Issue(userID)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  exp,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func toProfileInput(req updateProfileRequest) UpdateProfileInput {
	return UpdateProfileInput{
		Email:         req.Email,
		FullName:      req.FullName,
		Age:           req.Age,
		Sex:           req.Sex,
		Location:      req.Location,
		HourlyRate:    req.HourlyRate,
		Image:         req.Image,
		ContactNumber: req.ContactNumber,
	}
}

// toUserResponse nunca expone el hash de password.
func toUserResponse(u User) userResponse {
	return userResponse{
		ID:            u.ID,
		Email:         u.Email,
		FullName:      u.FullName,
		Age:           u.Age,
		Sex:           string(u.Sex),
		Location:      u.Location,
		Role:          string(u.Role),
		HourlyRate:    u.HourlyRate,
		Image:         u.Image,
		ContactNumber: u.ContactNumber,
		IsActive:      u.IsActive,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, "missing or invalid fields", http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "user not found", http.StatusNotFound)
	default:
		serverError(w, err)
	}
}

// serverError: mensaje genérico al cliente, detalle solo en logs.
func serverError(w http.ResponseWriter, err error) {
	log.Error().Err(err).Msg("users: unexpected error")
	http.Error(w, "internal error", http.StatusInternalServerError)
}

// writeJSON duplicado a propósito en cada módulo de handlers,
// igual que la convención del resto del código.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
