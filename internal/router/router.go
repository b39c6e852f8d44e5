package router

import (
	"net/http"

	"sheep-management/internal/adapters/storage"
	_ "sheep-management/internal/docs"
	"sheep-management/internal/domain/activities"
	"sheep-management/internal/domain/animals"
	"sheep-management/internal/domain/records"
	"sheep-management/internal/middleware"
	"sheep-management/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	Logger logger.Logger // puede ser nil (no loguea)

	// Opcional: si no viene, usa repos in-memory.
	Repos *storage.Repos
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}
	repos := opts.Repos
	if repos == nil {
		repos = storage.Memory()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLog(log))
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// Services por módulo
	animalsSvc := animals.NewService(repos.Animals)
	activitiesSvc := activities.NewService(repos.Activities)
	recordsSvc := records.NewService(repos.Records, animalsSvc, activitiesSvc)

	// Rutas por módulo
	animals.RegisterRoutes(r, animalsSvc, log)
	activities.RegisterRoutes(r, activitiesSvc, animalsSvc, log)
	records.RegisterRoutes(r, recordsSvc, log)

	return r
}
