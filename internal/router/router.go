package router

import (
	"database/sql"
	"net/http"
	"strings"
	"time"

	rediscache "gestion-citas/internal/adapters/cache/redis"
	"gestion-citas/internal/adapters/directory/remote"
	mem "gestion-citas/internal/adapters/storage/memory"
	pg "gestion-citas/internal/adapters/storage/postgres"
	"gestion-citas/internal/domain/appointments"
	"gestion-citas/internal/domain/pets"
	"gestion-citas/internal/domain/users"
	"gestion-citas/internal/middleware"
	"gestion-citas/internal/platform/httpclient"
	"gestion-citas/internal/platform/logger"

	_ "gestion-citas/docs"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	goredis "github.com/redis/go-redis/v9"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	Logger logger.Logger

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// Opcional: cachea las consultas a directorios.
	Redis    *goredis.Client
	CacheTTL time.Duration

	// Opcional: si vienen, mascotas/veterinarios se resuelven por HTTP
	// en lugar de contra los módulos locales.
	PetsDirectoryURL  string
	UsersDirectoryURL string
	DirectoryTimeout  time.Duration
}

func NewRouter(opts Options) (http.Handler, error) {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	var (
		petRepo   pets.Repository
		userRepo  users.Repository
		apptStore appointments.Store
	)
	if opts.DB != nil {
		petRepo = pg.NewPetsRepo(opts.DB)
		userRepo = pg.NewUsersRepo(opts.DB)
		apptStore = pg.NewAppointmentStore(opts.DB)
	} else {
		petRepo = mem.NewPetRepo()
		userRepo = mem.NewUserRepo()
		apptStore = mem.NewAppointmentStore()
	}

	petsSvc := pets.NewService(petRepo)
	usersSvc := users.NewService(userRepo)

	petDir, userDir, err := directories(opts, petsSvc, usersSvc, log)
	if err != nil {
		return nil, err
	}

	scheduler := appointments.NewScheduler(apptStore, petDir, userDir, log)

	pets.RegisterRoutes(r, petsSvc)
	users.RegisterRoutes(r, usersSvc)
	appointments.RegisterRoutes(r, scheduler, log)

	return r, nil
}

func directories(opts Options, petsSvc *pets.Service, usersSvc *users.Service, log logger.Logger) (appointments.PetDirectory, appointments.UserDirectory, error) {
	var (
		petDir  appointments.PetDirectory  = petsSvc
		userDir appointments.UserDirectory = usersSvc
	)

	if u := strings.TrimSpace(opts.PetsDirectoryURL); u != "" {
		c, err := httpclient.New(u, opts.DirectoryTimeout, nil)
		if err != nil {
			return nil, nil, err
		}
		petDir = remote.NewPetDirectory(c)
	}
	if u := strings.TrimSpace(opts.UsersDirectoryURL); u != "" {
		c, err := httpclient.New(u, opts.DirectoryTimeout, nil)
		if err != nil {
			return nil, nil, err
		}
		userDir = remote.NewUserDirectory(c)
	}

	if opts.Redis != nil {
		petDir = rediscache.NewPetDirectory(petDir, opts.Redis, opts.CacheTTL, log)
		userDir = rediscache.NewUserDirectory(userDir, opts.Redis, opts.CacheTTL, log)
	}
	return petDir, userDir, nil
}
