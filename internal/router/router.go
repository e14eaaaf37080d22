package router

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"petpal-api/internal/adapters/auth/jwtauth"
	"petpal-api/internal/adapters/storage/memory"
	"petpal-api/internal/adapters/storage/postgres"
	"petpal-api/internal/domain/accessories"
	"petpal-api/internal/domain/appointments"
	"petpal-api/internal/domain/orders"
	"petpal-api/internal/domain/pets"
	"petpal-api/internal/domain/users"
	"petpal-api/internal/middleware"
)

// Options arma el árbol de dependencias del server.
// Tokens nil habilita el modo debug de auth (headers X-Debug-*),
// pensado para tests y desarrollo local; aun así se necesita un
// issuer para /auth/login, así que se crea uno efímero.
type Options struct {
	Tokens *jwtauth.Manager
	DB     *sql.DB // nil => repos in-memory

	SecureCookies  bool
	AllowedOrigins []string

	Logger zerolog.Logger
}

func New(opts Options) http.Handler {
	var (
		usersRepo        users.Repository
		petsRepo         pets.Repository
		accessoriesRepo  accessories.Repository
		appointmentsRepo appointments.Repository
		ordersRepo       orders.Repository
	)
	if opts.DB != nil {
		usersRepo = postgres.NewUsersRepo(opts.DB)
		petsRepo = postgres.NewPetsRepo(opts.DB)
		accessoriesRepo = postgres.NewAccessoriesRepo(opts.DB)
		appointmentsRepo = postgres.NewAppointmentsRepo(opts.DB)
		ordersRepo = postgres.NewOrdersRepo(opts.DB)
	} else {
		usersRepo = memory.NewUsersRepo()
		petsRepo = memory.NewPetsRepo()
		accessoriesRepo = memory.NewAccessoriesRepo()
		appointmentsRepo = memory.NewAppointmentsRepo()
		ordersRepo = memory.NewOrdersRepo()
	}

	usersSvc := users.NewService(usersRepo)
	petsSvc := pets.NewService(petsRepo)
	accessoriesSvc := accessories.NewService(accessoriesRepo)
	appointmentsSvc := appointments.NewService(appointmentsRepo, usersSvc)
	ordersSvc := orders.NewService(ordersRepo, usersSvc, petsSvc, accessoriesSvc)

	issuer := opts.Tokens
	if issuer == nil {
		issuer = jwtauth.New("dev-secret", 7*24*time.Hour)
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(opts.Logger))
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if opts.Tokens != nil {
		r.Use(middleware.AuthContext(opts.Tokens, usersSvc))
	} else {
		r.Use(middleware.AuthContext(nil, usersSvc))
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	users.RegisterRoutes(r, usersSvc, issuer, opts.SecureCookies)
	pets.RegisterRoutes(r, petsSvc, usersSvc)
	accessories.RegisterRoutes(r, accessoriesSvc)
	appointments.RegisterRoutes(r, appointmentsSvc, usersSvc)
	orders.RegisterRoutes(r, ordersSvc, usersSvc, petsSvc, accessoriesSvc)

	return r
}
