package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes mounts the public and admin route groups under /api/v1.
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Get("/health", handlers.healthHandler.getHealth())

	r.Route("/api/v1", func(r chi.Router) {
		// Public routes
		r.Group(func(r chi.Router) {
			r.Get("/projects", handlers.projectHandler.getLatestProjects())
			r.Get("/projects/{slug}", handlers.projectHandler.getProject())
			r.Get("/skills", handlers.skillHandler.getAllSkills())
			r.Get("/learning", handlers.learningHandler.getAllLearning())
			r.Get("/experience", handlers.experienceHandler.getAllExperiences())
			r.Get("/certificates", handlers.certificateHandler.getAllCertificates())
			r.Get("/media", handlers.mediaHandler.getAllMedia())
			r.Get("/profile", handlers.profileHandler.getProfile())
			r.Get("/about", handlers.aboutHandler.getAbout())

			r.Post("/contact", handlers.contactHandler.createMessage())

			r.Post("/auth/login", handlers.authHandler.login())
			r.Post("/auth/logout", handlers.authHandler.logout())
			r.Post("/auth/register-admin", handlers.authHandler.registerAdmin())
			r.Post("/auth/forgot-password", handlers.authHandler.forgotPassword())
			r.Post("/auth/reset-password", handlers.authHandler.resetPassword())
		})

		// Admin routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.authenticate)
			r.Use(authMiddleware.requireAdmin)

			r.Get("/auth/me", handlers.authHandler.me())
			r.Post("/auth/change-password", handlers.authHandler.changePassword())

			r.Get("/projects/admin/all", handlers.projectHandler.getAllProjects())
			r.Post("/projects", handlers.projectHandler.createProject())
			r.Put("/projects/{slug}", handlers.projectHandler.updateProject())
			r.Delete("/projects/{slug}", handlers.projectHandler.deleteProject())

			r.Post("/skills", handlers.skillHandler.createSkill())
			r.Put("/skills/{skillID}", handlers.skillHandler.updateSkill())
			r.Delete("/skills/{skillID}", handlers.skillHandler.deleteSkill())

			r.Post("/learning", handlers.learningHandler.createLearning())
			r.Put("/learning/{learningID}", handlers.learningHandler.updateLearning())
			r.Delete("/learning/{learningID}", handlers.learningHandler.deleteLearning())

			r.Post("/experience", handlers.experienceHandler.createExperience())
			r.Put("/experience/{experienceID}", handlers.experienceHandler.updateExperience())
			r.Delete("/experience/{experienceID}", handlers.experienceHandler.deleteExperience())

			r.Post("/certificates", handlers.certificateHandler.createCertificate())
			r.Put("/certificates/{certificateID}", handlers.certificateHandler.updateCertificate())
			r.Delete("/certificates/{certificateID}", handlers.certificateHandler.deleteCertificate())

			r.Post("/media", handlers.mediaHandler.createMedia())
			r.Post("/media/upload-url", handlers.mediaHandler.createUploadURL())
			r.Put("/media/{mediaID}", handlers.mediaHandler.updateMedia())
			r.Delete("/media/{mediaID}", handlers.mediaHandler.deleteMedia())

			r.Put("/profile", handlers.profileHandler.updateProfile())
			r.Put("/about", handlers.aboutHandler.updateAbout())

			r.Get("/contact", handlers.contactHandler.getAllMessages())
			r.Put("/contact/{messageID}/status", handlers.contactHandler.updateMessageStatus())
			r.Put("/contact/{messageID}/save", handlers.contactHandler.toggleMessageSave())
			r.Delete("/contact/{messageID}", handlers.contactHandler.deleteMessage())
		})
	})
}
