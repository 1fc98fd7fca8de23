package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/users/register", h.register)
		r.Post("/api/users/login", h.login)
		r.Post("/api/users/logout", h.logout)

		r.Post("/api/payment/create-order", h.createOrder)
		r.Post("/api/payment/verify-payment", h.verifyPayment)
	})

	// routes behind JWT authorization
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/api/users/profile", h.getProfile)
		r.Put("/api/users/profile", h.updateProfile)
		r.Put("/api/users/password", h.changePassword)
		r.Post("/api/users/send-email", h.sendEmail)

		r.Get("/api/students", h.listStudents)
		r.Post("/api/students", h.createStudent)
		r.Get("/api/students/download/excel", h.downloadStudentsExcel)
		r.Get("/api/students/{id}", h.getStudent)
		r.Put("/api/students/{id}", h.updateStudent)
		r.Delete("/api/students/{id}", h.deleteStudent)
		r.Get("/api/students/{id}/generate-pdf", h.generateStudentPDF)
	})

	// legacy local uploads, kept readable for records created before the
	// object-store migration
	router.Get("/uploads/*", h.serveUpload)

	return router
}
