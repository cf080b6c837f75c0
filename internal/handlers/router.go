package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"codecanvas/backend/internal/middleware"
)

// NewRouter wires the REST surface. Every mutation is a POST under /auth —
// that is the wire contract the frontend already speaks, kept verbatim down to
// the per-endpoint id field names. signUp and login are public; everything
// else sits behind the bearer-token middleware.
func NewRouter(h *Handler, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.Logger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("API is running..."))
	})

	r.Get("/ws/preview/{projectId}", h.ServeWs)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/signUp", h.SignUp)
		r.Post("/login", h.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth)

			r.Post("/getUserDetails", h.GetUserDetails)
			r.Post("/createProject", h.CreateProject)
			r.Post("/getProjects", h.GetProjects)
			r.Post("/getProject", h.GetProject)
			r.Post("/deleteProject", h.DeleteProject)
			r.Post("/updateProject", h.UpdateProject)
			r.Post("/saveDocument", h.SaveDocument)
			r.Post("/getDocument", h.GetDocument)
		})
	})

	return r
}
