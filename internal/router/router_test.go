package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"petpal-api/internal/adapters/auth/jwtauth"
	"petpal-api/internal/router"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	ts := httptest.NewServer(router.New(router.Options{
		Tokens:         jwtauth.New("test-secret", time.Hour),
		AllowedOrigins: []string{"*"},
		Logger:         zerolog.Nop(),
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestHTTP_AuthFlow(t *testing.T) {
	ts := newTestServer(t)

	// 1) Registro setea cookie y nunca expone el password
	body, cookie := register(t, ts.URL, map[string]any{
		"email":     "Ana@Example.com",
		"password":  "secret123",
		"full_name": "Ana Buyer",
		"age":       30,
		"sex":       "Female",
		"location":  "Lima",
	})
	if cookie == "" {
		t.Fatal("register: missing token cookie")
	}
	if strings.Contains(string(body), "secret123") || strings.Contains(string(body), "password") {
		t.Fatalf("register response leaks password data: %s", string(body))
	}

	var created struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	_ = json.Unmarshal(body, &created)
	if created.Email != "ana@example.com" {
		t.Fatalf("expected lowercased email, got %q", created.Email)
	}
	if created.Role != "buyer" {
		t.Fatalf("expected default role buyer, got %q", created.Role)
	}

	// 2) Email duplicado (case-insensitive) => 400
	{
		st, _, _ := doReq(t, ts.URL, "POST", "/auth/register", "", map[string]any{
			"email":     "ANA@example.com",
			"password":  "otherpass",
			"full_name": "Ana Dos",
			"age":       25,
			"sex":       "Female",
			"location":  "Lima",
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 duplicate email, got %d", st)
		}
	}

	// 3) Password incorrecto => 400 genérico
	{
		st, _, _ := doReq(t, ts.URL, "POST", "/auth/login", "", map[string]any{
			"email":    "ana@example.com",
			"password": "wrong",
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 bad password, got %d", st)
		}
	}

	// 4) Login OK emite cookie nueva
	{
		st, _, c := doReq(t, ts.URL, "POST", "/auth/login", "", map[string]any{
			"email":    "ana@example.com",
			"password": "secret123",
		})
		if st != http.StatusOK || c == "" {
			t.Fatalf("expected 200 + cookie on login, got %d cookie=%q", st, c)
		}
		cookie = c
	}

	// 5) /auth/me con cookie
	{
		st, body, _ := doReq(t, ts.URL, "GET", "/auth/me", cookie, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 me, got %d body=%s", st, string(body))
		}
	}

	// 6) /auth/me sin token => 401
	{
		st, _, _ := doReq(t, ts.URL, "GET", "/auth/me", "", nil)
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 me without token, got %d", st)
		}
	}

	// 7) Logout borra la cookie pero el token emitido sigue siendo válido
	// hasta expirar (comportamiento heredado).
	{
		st, _, _ := doReq(t, ts.URL, "POST", "/auth/logout", cookie, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 logout, got %d", st)
		}
		st, _, _ = doReq(t, ts.URL, "GET", "/auth/me", cookie, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 me with old token after logout, got %d", st)
		}
	}
}

func TestHTTP_PetPurchaseFlow(t *testing.T) {
	ts := newTestServer(t)

	_, sellerCookie := registerRole(t, ts.URL, "seller@test.com", "seller", 0)
	_, buyerCookie := registerRole(t, ts.URL, "buyer@test.com", "buyer", 0)

	// Seller publica con stock 1
	petID := ""
	{
		st, body, _ := doReq(t, ts.URL, "POST", "/pets", sellerCookie, map[string]any{
			"name":        "Rocky",
			"type":        "Dog",
			"breed":       "Boxer",
			"age":         2,
			"price":       350.0,
			"stock":       1,
			"description": "friendly",
			"image":       "rocky.jpg",
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 create pet, got %d body=%s", st, string(body))
		}
		petID = extractID(t, body)
	}

	// Buyer no puede publicar mascotas
	{
		st, _, _ := doReq(t, ts.URL, "POST", "/pets", buyerCookie, map[string]any{
			"name": "x", "type": "x", "breed": "x", "age": 1,
			"price": 1.0, "description": "x", "image": "x",
		})
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 buyer creating pet, got %d", st)
		}
	}

	// Compra: amount congela el precio de lista
	{
		st, body, _ := doReq(t, ts.URL, "POST", "/orders/pet", buyerCookie, map[string]any{
			"pet_id": petID,
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 purchase, got %d body=%s", st, string(body))
		}
		var o struct {
			Amount float64 `json:"amount"`
			Status string  `json:"status"`
			Type   string  `json:"type"`
		}
		_ = json.Unmarshal(body, &o)
		if o.Amount != 350.0 || o.Status != "pending" || o.Type != "pet" {
			t.Fatalf("unexpected order payload: %s", string(body))
		}
	}

	// Stock agotado: la vitrina la marca no disponible y recomprar da 404
	{
		st, body, _ := doReq(t, ts.URL, "GET", "/pets", "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list pets, got %d", st)
		}
		var items []struct {
			ID          string `json:"id"`
			IsAvailable bool   `json:"is_available"`
		}
		_ = json.Unmarshal(body, &items)
		for _, it := range items {
			if it.ID == petID && it.IsAvailable {
				t.Fatal("expected pet unavailable after stock hit zero")
			}
		}

		st, _, _ = doReq(t, ts.URL, "POST", "/orders/pet", buyerCookie, map[string]any{
			"pet_id": petID,
		})
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 purchasing out-of-stock pet, got %d", st)
		}
	}

	// El seller ve la venta
	{
		st, body, _ := doReq(t, ts.URL, "GET", "/orders/my-sales", sellerCookie, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 my-sales, got %d", st)
		}
		var sales []json.RawMessage
		_ = json.Unmarshal(body, &sales)
		if len(sales) != 1 {
			t.Fatalf("expected 1 sale, got %d body=%s", len(sales), string(body))
		}
	}

	// Buyer no entra a my-sales
	{
		st, _, _ := doReq(t, ts.URL, "GET", "/orders/my-sales", buyerCookie, nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 buyer my-sales, got %d", st)
		}
	}
}

func TestHTTP_AccessoryFlow(t *testing.T) {
	ts := newTestServer(t)

	_, adminCookie := registerRole(t, ts.URL, "admin@test.com", "admin", 0)
	_, buyerCookie := registerRole(t, ts.URL, "buyer@test.com", "buyer", 0)

	// Solo admin carga accesorios
	{
		st, _, _ := doReq(t, ts.URL, "POST", "/accessories", buyerCookie, map[string]any{
			"name": "Leash", "description": "x", "cost": 10.0,
			"image": "x.jpg", "animal_type": "Dog", "use_case": "walks",
		})
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 buyer creating accessory, got %d", st)
		}
	}

	accID := ""
	{
		st, body, _ := doReq(t, ts.URL, "POST", "/accessories", adminCookie, map[string]any{
			"name":        "Leash",
			"description": "strong leash",
			"cost":        10.0,
			"image":       "leash.jpg",
			"animal_type": "Dog",
			"use_case":    "walks",
			"stock":       5,
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 create accessory, got %d body=%s", st, string(body))
		}
		accID = extractID(t, body)
	}

	// Filtro por animal incluye los "All"
	{
		st, body, _ := doReq(t, ts.URL, "POST", "/accessories", adminCookie, map[string]any{
			"name":        "Bowl",
			"description": "universal bowl",
			"cost":        5.0,
			"image":       "bowl.jpg",
			"animal_type": "All",
			"use_case":    "feeding",
			"stock":       3,
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 create bowl, got %d body=%s", st, string(body))
		}

		st, body, _ = doReq(t, ts.URL, "GET", "/accessories/animal/Dog", "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list by animal, got %d", st)
		}
		var items []json.RawMessage
		_ = json.Unmarshal(body, &items)
		if len(items) != 2 {
			t.Fatalf("expected Dog+All accessories (2), got %d", len(items))
		}
	}

	// quantity multiplica el costo
	{
		st, body, _ := doReq(t, ts.URL, "POST", "/orders/accessory", buyerCookie, map[string]any{
			"accessory_id": accID,
			"quantity":     2,
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 purchase accessory, got %d body=%s", st, string(body))
		}
		var o struct {
			Amount float64 `json:"amount"`
		}
		_ = json.Unmarshal(body, &o)
		if o.Amount != 20.0 {
			t.Fatalf("expected amount 20 (cost*qty), got %v", o.Amount)
		}
	}

	// Pedir más que el stock restante => 404
	{
		st, _, _ := doReq(t, ts.URL, "POST", "/orders/accessory", buyerCookie, map[string]any{
			"accessory_id": accID,
			"quantity":     4,
		})
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 over-stock purchase, got %d", st)
		}
	}

	// Agotar stock apaga is_available y lo saca del catálogo público
	{
		st, _, _ := doReq(t, ts.URL, "POST", "/orders/accessory", buyerCookie, map[string]any{
			"accessory_id": accID,
			"quantity":     3,
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 purchasing remaining stock, got %d", st)
		}

		st, body, _ := doReq(t, ts.URL, "GET", "/accessories", "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list accessories, got %d", st)
		}
		if strings.Contains(string(body), accID) {
			t.Fatal("expected sold-out accessory hidden from public list")
		}
	}
}

func TestHTTP_ServiceBookingFlow(t *testing.T) {
	ts := newTestServer(t)

	walkerID, walkerCookie := registerRole(t, ts.URL, "walker@test.com", "walker", 25.0)
	_, buyerCookie := registerRole(t, ts.URL, "buyer@test.com", "buyer", 0)
	_, adminCookie := registerRole(t, ts.URL, "admin@test.com", "admin", 0)

	// Reserva: amount = hourlyRate del provider, congelado
	orderID := ""
	{
		st, body, _ := doReq(t, ts.URL, "POST", "/orders/service", buyerCookie, map[string]any{
			"provider_id":      walkerID,
			"service_type":     "walker",
			"appointment_date": "2026-09-15",
			"appointment_time": "10:00",
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 book service, got %d body=%s", st, string(body))
		}
		var o struct {
			ID              string  `json:"id"`
			Amount          float64 `json:"amount"`
			Status          string  `json:"status"`
			AppointmentDate string  `json:"appointment_date"`
			AppointmentTime string  `json:"appointment_time"`
		}
		_ = json.Unmarshal(body, &o)
		if o.Amount != 25.0 {
			t.Fatalf("expected amount frozen at hourly rate 25, got %v", o.Amount)
		}
		if o.Status != "pending" || o.AppointmentDate != "2026-09-15" || o.AppointmentTime != "10:00" {
			t.Fatalf("unexpected booking payload: %s", string(body))
		}
		orderID = o.ID
	}

	// Tipo que no es servicio => 400
	{
		st, _, _ := doReq(t, ts.URL, "POST", "/orders/service", buyerCookie, map[string]any{
			"provider_id":      walkerID,
			"service_type":     "pet",
			"appointment_date": "2026-09-15",
			"appointment_time": "10:00",
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 non-service type, got %d", st)
		}
	}

	// Provider con rol que no matchea => 404
	{
		st, _, _ := doReq(t, ts.URL, "POST", "/orders/service", buyerCookie, map[string]any{
			"provider_id":      walkerID,
			"service_type":     "vet",
			"appointment_date": "2026-09-15",
			"appointment_time": "10:00",
		})
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 role mismatch, got %d", st)
		}
	}

	// Vista unificada: buyer ve su reserva; walker con mine=true también
	{
		st, body, _ := doReq(t, ts.URL, "GET", "/orders/appointments?type=walker", buyerCookie, nil)
		if st != http.StatusOK || !strings.Contains(string(body), orderID) {
			t.Fatalf("expected buyer booking in unified view, got %d body=%s", st, string(body))
		}

		st, body, _ = doReq(t, ts.URL, "GET", "/orders/appointments?mine=true", walkerCookie, nil)
		if st != http.StatusOK || !strings.Contains(string(body), orderID) {
			t.Fatalf("expected provider booking with mine=true, got %d body=%s", st, string(body))
		}

		// mine=false para el walker = su perspectiva de buyer (vacía)
		st, body, _ = doReq(t, ts.URL, "GET", "/orders/appointments", walkerCookie, nil)
		if st != http.StatusOK || strings.Contains(string(body), orderID) {
			t.Fatalf("expected empty buyer view for walker, got %d body=%s", st, string(body))
		}

		st, _, _ = doReq(t, ts.URL, "GET", "/orders/appointments?type=banana", buyerCookie, nil)
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 unknown service type filter, got %d", st)
		}
	}

	// Máquina de estados: provider confirma, luego completa; los saltos
	// inválidos dan 400 y el buyer ni siquiera pasa el gate de rol.
	{
		st, _, _ := doReq(t, ts.URL, "PUT", "/orders/"+orderID+"/status", buyerCookie, map[string]any{
			"status": "confirmed",
		})
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 buyer updating status, got %d", st)
		}

		st, _, _ = doReq(t, ts.URL, "PUT", "/orders/"+orderID+"/status", walkerCookie, map[string]any{
			"status": "completed",
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 pending->completed, got %d", st)
		}

		st, _, _ = doReq(t, ts.URL, "PUT", "/orders/"+orderID+"/status", walkerCookie, map[string]any{
			"status": "confirmed",
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 pending->confirmed, got %d", st)
		}

		st, _, _ = doReq(t, ts.URL, "PUT", "/orders/"+orderID+"/status", walkerCookie, map[string]any{
			"status": "pending",
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 confirmed->pending, got %d", st)
		}

		st, _, _ = doReq(t, ts.URL, "PUT", "/orders/"+orderID+"/status", walkerCookie, map[string]any{
			"status": "completed",
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 confirmed->completed, got %d", st)
		}
	}

	// /orders/all es de admin; delete es de admin y solo para servicios
	{
		st, _, _ := doReq(t, ts.URL, "GET", "/orders/all", buyerCookie, nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 buyer orders/all, got %d", st)
		}

		st, body, _ := doReq(t, ts.URL, "GET", "/orders/all", adminCookie, nil)
		if st != http.StatusOK || !strings.Contains(string(body), orderID) {
			t.Fatalf("expected admin to see all orders, got %d", st)
		}

		st, _, _ = doReq(t, ts.URL, "DELETE", "/orders/"+orderID, walkerCookie, nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 walker deleting order, got %d", st)
		}

		st, _, _ = doReq(t, ts.URL, "DELETE", "/orders/"+orderID, adminCookie, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 admin delete booking, got %d", st)
		}

		st, _, _ = doReq(t, ts.URL, "DELETE", "/orders/"+orderID, adminCookie, nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 deleting twice, got %d", st)
		}
	}
}

func TestHTTP_AppointmentsFlow(t *testing.T) {
	ts := newTestServer(t)

	vetID, vetCookie := registerRole(t, ts.URL, "vet@test.com", "vet", 40.0)
	_, buyerCookie := registerRole(t, ts.URL, "buyer@test.com", "buyer", 0)

	// Reservar contra un usuario que no es provider del tipo => 404
	{
		st, _, _ := doReq(t, ts.URL, "POST", "/appointments", buyerCookie, map[string]any{
			"provider_id":      vetID,
			"service_type":     "walker",
			"appointment_date": "2026-10-01",
			"appointment_time": "09:00",
		})
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 provider role mismatch, got %d", st)
		}
	}

	apptID := ""
	{
		st, body, _ := doReq(t, ts.URL, "POST", "/appointments", buyerCookie, map[string]any{
			"provider_id":      vetID,
			"service_type":     "vet",
			"appointment_date": "2026-10-01",
			"appointment_time": "09:00",
			"notes":            "annual checkup",
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 book appointment, got %d body=%s", st, string(body))
		}
		apptID = extractID(t, body)
	}

	// Doble booking del mismo slot se acepta
	{
		st, _, _ := doReq(t, ts.URL, "POST", "/appointments", buyerCookie, map[string]any{
			"provider_id":      vetID,
			"service_type":     "vet",
			"appointment_date": "2026-10-01",
			"appointment_time": "09:00",
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 double-booked slot, got %d", st)
		}
	}

	// Cada lado ve lo suyo
	{
		st, body, _ := doReq(t, ts.URL, "GET", "/appointments/my", buyerCookie, nil)
		if st != http.StatusOK || !strings.Contains(string(body), apptID) {
			t.Fatalf("expected buyer appointment list, got %d body=%s", st, string(body))
		}

		st, body, _ = doReq(t, ts.URL, "GET", "/appointments/provider", vetCookie, nil)
		if st != http.StatusOK || !strings.Contains(string(body), apptID) {
			t.Fatalf("expected provider appointment list, got %d body=%s", st, string(body))
		}

		st, _, _ = doReq(t, ts.URL, "GET", "/appointments/provider", buyerCookie, nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 buyer on provider list, got %d", st)
		}

		st, _, _ = doReq(t, ts.URL, "GET", "/appointments/all", vetCookie, nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 vet on admin list, got %d", st)
		}
	}

	// Reprogramar no resetea el status
	{
		st, body, _ := doReq(t, ts.URL, "PUT", "/appointments/"+apptID+"/reschedule", buyerCookie, map[string]any{
			"appointment_date": "2026-10-02",
			"appointment_time": "11:30",
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 reschedule, got %d body=%s", st, string(body))
		}
		var a struct {
			AppointmentDate string `json:"appointment_date"`
			AppointmentTime string `json:"appointment_time"`
			Status          string `json:"status"`
		}
		_ = json.Unmarshal(body, &a)
		if a.AppointmentDate != "2026-10-02" || a.AppointmentTime != "11:30" || a.Status != "pending" {
			t.Fatalf("unexpected reschedule payload: %s", string(body))
		}
	}

	// El provider no reprograma, pero sí puede cancelar
	{
		st, _, _ := doReq(t, ts.URL, "PUT", "/appointments/"+apptID+"/reschedule", vetCookie, map[string]any{
			"appointment_time": "15:00",
		})
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 provider reschedule, got %d", st)
		}

		st, _, _ = doReq(t, ts.URL, "DELETE", "/appointments/"+apptID, vetCookie, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 provider cancel, got %d", st)
		}

		// Cancelación = borrado duro
		st, body, _ := doReq(t, ts.URL, "GET", "/appointments/my", buyerCookie, nil)
		if st != http.StatusOK || strings.Contains(string(body), apptID) {
			t.Fatalf("expected cancelled appointment gone, got %d body=%s", st, string(body))
		}
	}
}

func TestHTTP_ProviderDirectories(t *testing.T) {
	ts := newTestServer(t)

	vetID, _ := registerRole(t, ts.URL, "vet@test.com", "vet", 40.0)
	_, adminCookie := registerRole(t, ts.URL, "admin@test.com", "admin", 0)

	// Directorio público sin auth
	{
		st, body, _ := doReq(t, ts.URL, "GET", "/vets", "", nil)
		if st != http.StatusOK || !strings.Contains(string(body), vetID) {
			t.Fatalf("expected vet in public directory, got %d body=%s", st, string(body))
		}

		st, _, _ = doReq(t, ts.URL, "GET", "/vets/profile/"+vetID, "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 vet profile, got %d", st)
		}

		// perfil de vet por el directorio de walkers => 404
		st, _, _ = doReq(t, ts.URL, "GET", "/walkers/profile/"+vetID, "", nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 cross-directory profile, got %d", st)
		}
	}

	// Admin desactiva al vet y desaparece del directorio
	{
		st, _, _ := doReq(t, ts.URL, "PUT", "/auth/users/"+vetID, adminCookie, map[string]any{
			"is_active": false,
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 admin deactivate, got %d", st)
		}

		st, body, _ := doReq(t, ts.URL, "GET", "/vets", "", nil)
		if st != http.StatusOK || strings.Contains(string(body), vetID) {
			t.Fatalf("expected deactivated vet hidden, got %d body=%s", st, string(body))
		}
	}
}

func register(t *testing.T, baseURL string, payload map[string]any) ([]byte, string) {
	t.Helper()

	st, body, cookie := doReq(t, baseURL, "POST", "/auth/register", "", payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 register, got %d body=%s", st, string(body))
	}
	return body, cookie
}

func registerRole(t *testing.T, baseURL, email, role string, hourlyRate float64) (string, string) {
	t.Helper()

	body, cookie := register(t, baseURL, map[string]any{
		"email":       email,
		"password":    "secret123",
		"full_name":   "Test " + role,
		"age":         28,
		"sex":         "Male",
		"location":    "Lima",
		"role":        role,
		"hourly_rate": hourlyRate,
	})
	return extractID(t, body), cookie
}

func extractID(t *testing.T, body []byte) string {
	t.Helper()

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("missing id in body=%s", string(body))
	}
	return resp.ID
}

// doReq manda el token como cookie, igual que el browser. Devuelve
// status, body y el valor de la cookie "token" si la respuesta setea una.
func doReq(t *testing.T, baseURL, method, path, tokenCookie string, body any) (int, []byte, string) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tokenCookie != "" {
		req.AddCookie(&http.Cookie{Name: "token", Value: tokenCookie})
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)

	var newToken string
	for _, c := range res.Cookies() {
		if c.Name == "token" && c.Value != "" {
			newToken = c.Value
		}
	}
	return res.StatusCode, respBody, newToken
}
