package orders

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"petpal-api/internal/domain/accessories"
	"petpal-api/internal/domain/pets"
	"petpal-api/internal/domain/users"
	"petpal-api/internal/middleware"
	"petpal-api/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

var validate = validator.New()

const dateLayout = "2006-01-02"

func RegisterRoutes(r chi.Router, svc *Service, usersSvc *users.Service, petsSvc *pets.Service, accSvc *accessories.Service) {
	res := &resolver{users: usersSvc, pets: petsSvc, accessories: accSvc}

	r.Route("/orders", func(or chi.Router) {
		or.Use(middleware.RequireAuth)

		or.Post("/pet", purchasePetHandler(svc, res))
		or.Post("/accessory", purchaseAccessoryHandler(svc, res))
		or.Post("/service", bookServiceHandler(svc, res))

		or.Get("/my-orders", myOrdersHandler(svc, res))
		or.With(middleware.Require(auth.ActionOrdersSales)).Get("/my-sales", mySalesHandler(svc, res))
		or.With(middleware.Require(auth.ActionOrdersAll)).Get("/all", allOrdersHandler(svc, res))

		or.Get("/appointments", serviceBookingsHandler(svc, res))

		or.With(middleware.Require(auth.ActionOrdersUpdateStatus)).
			Put("/{orderID}/status", updateStatusHandler(svc, res))
		or.With(middleware.Require(auth.ActionOrdersDelete)).
			Delete("/{orderID}", deleteOrderHandler(svc))
	})
}

type purchasePetRequest struct {
	PetID string `json:"pet_id" validate:"required"`
}

type purchaseAccessoryRequest struct {
	AccessoryID string `json:"accessory_id" validate:"required"`
	Quantity    int    `json:"quantity" validate:"gte=0"`
}

type bookServiceRequest struct {
	ProviderID      string `json:"provider_id" validate:"required"`
	ServiceType     string `json:"service_type" validate:"required"`
	AppointmentDate string `json:"appointment_date" validate:"required"`
	AppointmentTime string `json:"appointment_time" validate:"required"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type itemSummary struct {
	ID   string `json:"id"`
	Kind string `json:"kind"`
	Name string `json:"name"`
}

type orderResponse struct {
	ID              string       `json:"id"`
	BuyerID         string       `json:"buyer_id"`
	BuyerName       string       `json:"buyer_name,omitempty"`
	SellerID        string       `json:"seller_id,omitempty"`
	SellerName      string       `json:"seller_name,omitempty"`
	Type            string       `json:"type"`
	Item            *itemSummary `json:"item,omitempty"`
	Amount          float64      `json:"amount"`
	Status          string       `json:"status"`
	AppointmentDate string       `json:"appointment_date,omitempty"`
	AppointmentTime string       `json:"appointment_time,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

// resolver materializa la referencia polimórfica item con un lookup
// explícito por kind (nada de reflexión sobre strings).
type resolver struct {
	users       *users.Service
	pets        *pets.Service
	accessories *accessories.Service
}

func (res *resolver) item(r *http.Request, o Order) *itemSummary {
	switch o.ItemKind {
	case KindPet:
		if p, err := res.pets.GetByID(r.Context(), o.ItemID); err == nil {
			return &itemSummary{ID: p.ID, Kind: string(KindPet), Name: p.Name}
		}
	case KindAccessory:
		if a, err := res.accessories.GetByID(r.Context(), o.ItemID); err == nil {
			return &itemSummary{ID: a.ID, Kind: string(KindAccessory), Name: a.Name}
		}
	case KindUser:
		if u, err := res.users.GetByID(r.Context(), o.ItemID); err == nil {
			return &itemSummary{ID: u.ID, Kind: string(KindUser), Name: u.FullName}
		}
	}
	// item borrado: la orden se devuelve sin resumen
	return nil
}

func (res *resolver) userName(r *http.Request, id string) string {
	if id == "" {
		return ""
	}
	if u, err := res.users.GetByID(r.Context(), id); err == nil {
		return u.FullName
	}
	return ""
}

func purchasePetHandler(svc *Service, res *resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, _ := middleware.GetPrincipal(r.Context())

		var req purchasePetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, "missing or invalid fields", http.StatusBadRequest)
			return
		}

		o, err := svc.PurchasePet(r.Context(), p.UserID, req.PetID)
		if err != nil {
			if errors.Is(err, ErrNotAvailable) || errors.Is(err, pets.ErrOutOfStock) {
				http.Error(w, "pet not available", http.StatusNotFound)
				return
			}
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toResponse(r, res, o))
	}
}

func purchaseAccessoryHandler(svc *Service, res *resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, _ := middleware.GetPrincipal(r.Context())

		var req purchaseAccessoryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, "missing or invalid fields", http.StatusBadRequest)
			return
		}

		o, err := svc.PurchaseAccessory(r.Context(), p.UserID, req.AccessoryID, req.Quantity)
		if err != nil {
			if errors.Is(err, ErrNotAvailable) || errors.Is(err, accessories.ErrOutOfStock) {
				http.Error(w, "accessory not available", http.StatusNotFound)
				return
			}
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toResponse(r, res, o))
	}
}

func bookServiceHandler(svc *Service, res *resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, _ := middleware.GetPrincipal(r.Context())

		var req bookServiceRequest
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

		o, err := svc.BookService(r.Context(), p.UserID, BookServiceInput{
			ProviderID:  req.ProviderID,
			ServiceType: req.ServiceType,
			Date:        date,
			Time:        req.AppointmentTime,
		})
		if err != nil {
			if errors.Is(err, ErrNotAvailable) {
				http.Error(w, "service provider not available", http.StatusNotFound)
				return
			}
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toResponse(r, res, o))
	}
}

func myOrdersHandler(svc *Service, res *resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, _ := middleware.GetPrincipal(r.Context())

		items, err := svc.ListForBuyer(r.Context(), p.UserID)
		if err != nil {
			serverError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toResponses(r, res, items))
	}
}

func mySalesHandler(svc *Service, res *resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, _ := middleware.GetPrincipal(r.Context())

		items, err := svc.ListForSeller(r.Context(), p.UserID)
		if err != nil {
			serverError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toResponses(r, res, items))
	}
}

func allOrdersHandler(svc *Service, res *resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListAll(r.Context())
		if err != nil {
			serverError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toResponses(r, res, items))
	}
}

func serviceBookingsHandler(svc *Service, res *resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, _ := middleware.GetPrincipal(r.Context())

		mine, _ := strconv.ParseBool(r.URL.Query().Get("mine"))

		items, err := svc.ListServiceBookings(r.Context(), p, r.URL.Query().Get("type"), mine)
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, "unknown service type", http.StatusBadRequest)
				return
			}
			serverError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toResponses(r, res, items))
	}
}

func updateStatusHandler(svc *Service, res *resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, _ := middleware.GetPrincipal(r.Context())

		var req updateStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		o, err := svc.UpdateStatus(r.Context(), chi.URLParam(r, "orderID"), req.Status, p)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toResponse(r, res, o))
	}
}

func deleteOrderHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, _ := middleware.GetPrincipal(r.Context())

		if err := svc.Delete(r.Context(), chi.URLParam(r, "orderID"), p); err != nil {
			if errors.Is(err, ErrNotServiceType) {
				http.Error(w, "only service bookings can be deleted", http.StatusBadRequest)
				return
			}
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "order deleted"})
	}
}

func toResponses(r *http.Request, res *resolver, items []Order) []orderResponse {
	out := make([]orderResponse, 0, len(items))
	for _, o := range items {
		out = append(out, toResponse(r, res, o))
	}
	return out
}

func toResponse(r *http.Request, res *resolver, o Order) orderResponse {
	resp := orderResponse{
		ID:         o.ID,
		BuyerID:    o.BuyerID,
		BuyerName:  res.userName(r, o.BuyerID),
		SellerID:   o.SellerID,
		SellerName: res.userName(r, o.SellerID),
		Type:       string(o.Type),
		Item:       res.item(r, o),
		Amount:     o.Amount,
		Status:     string(o.Status),
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
	}
	if o.Date != nil {
		resp.AppointmentDate = o.Date.Format(dateLayout)
		resp.AppointmentTime = o.Time
	}
	return resp
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		http.Error(w, "order not found", http.StatusNotFound)
	case errors.Is(err, ErrForbidden):
		http.Error(w, "not authorized", http.StatusForbidden)
	case errors.Is(err, ErrBadTransition):
		http.Error(w, "invalid status transition", http.StatusBadRequest)
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, "missing or invalid fields", http.StatusBadRequest)
	default:
		serverError(w, err)
	}
}

func serverError(w http.ResponseWriter, err error) {
	log.Error().Err(err).Msg("orders: unexpected error")
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
