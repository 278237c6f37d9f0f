package http

import (
	"database/sql"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"talentmatch/internal/handlers"
	"talentmatch/internal/ingest"
	"talentmatch/internal/objstore"
	"talentmatch/internal/search"
	"talentmatch/internal/shortlist"
	"talentmatch/internal/storage"
	"talentmatch/internal/vectorstore"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	DB             *sql.DB
	Profiles       storage.ProfileStore
	Chats          storage.ChatStore
	Pipeline       *ingest.Pipeline
	Engine         search.Engine
	Responder      shortlist.Responder
	Objects        objstore.ObjectStore
	Vectors        *vectorstore.QdrantStore
	Collection     string
	FilesDir       string
	MaxUploadBytes int64
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(CORS)
	r.Use(LoggerMiddleware)

	profileHandler := handlers.NewProfileHandler(deps.Profiles, deps.Objects)
	resumeHandler := handlers.NewResumeHandler(deps.Pipeline, deps.Profiles, deps.Objects, deps.MaxUploadBytes)
	searchHandler := handlers.NewSearchHandler(deps.Engine, deps.Objects)
	chatsHandler := handlers.NewChatsHandler(deps.Chats, deps.Responder)
	healthHandler := handlers.NewHealthHandler(deps.DB, deps.Vectors, deps.Collection)

	r.Route("/api", func(r chi.Router) {
		r.Post("/signup", profileHandler.Signup)
		r.Method(http.MethodGet, "/health", healthHandler)

		// Everything below needs a resolved caller.
		r.Group(func(r chi.Router) {
			r.Use(Identity(deps.Profiles))

			r.Get("/profile", profileHandler.Get)
			r.Put("/profile", profileHandler.Update)
			r.Put("/profile/role", profileHandler.ConfirmRole)

			r.Post("/resume", resumeHandler.Upload)
			r.Delete("/resume", resumeHandler.Delete)

			r.Post("/search", searchHandler.Search)

			r.Route("/chats", func(r chi.Router) {
				r.Post("/", chatsHandler.Create)
				r.Get("/", chatsHandler.List)
				r.Delete("/{chatID}", chatsHandler.Delete)
				r.Get("/{chatID}/messages", chatsHandler.ListMessages)
				r.Post("/{chatID}/messages", chatsHandler.PostMessage)
			})
		})
	})

	// Stored resume files. Paths are unguessable; directory listings are
	// refused.
	if deps.FilesDir != "" {
		fileServer := http.StripPrefix("/files/", noListing(http.FileServer(http.Dir(deps.FilesDir))))
		r.Handle("/files/*", fileServer)
	}

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"talentmatch"}` + "\n"))
	})

	return r
}

// noListing hides directory indexes behind the file server.
func noListing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "" || strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}
