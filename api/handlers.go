package api

import (
	"time"

	"github.com/rpupo63/portfolio-backend/services"
)

// serviceSet bundles every service the router needs.
type serviceSet struct {
	auth        *services.AuthService
	projects    *services.ProjectService
	skills      *services.SkillService
	learning    *services.LearningService
	experiences *services.ExperienceService
	certs       *services.CertificateService
	media       *services.MediaService
	profile     *services.ProfileService
	about       *services.AboutService
	contact     *services.ContactService
}

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(svc serviceSet, startupTime time.Time, exposeResetToken bool) *routeHandlers {
	return &routeHandlers{
		healthHandler:      newHealthHandler(startupTime),
		authHandler:        newAuthHandler(svc.auth, exposeResetToken),
		projectHandler:     newProjectHandler(svc.projects),
		skillHandler:       newSkillHandler(svc.skills),
		learningHandler:    newLearningHandler(svc.learning),
		experienceHandler:  newExperienceHandler(svc.experiences),
		certificateHandler: newCertificateHandler(svc.certs),
		mediaHandler:       newMediaHandler(svc.media),
		profileHandler:     newProfileHandler(svc.profile),
		aboutHandler:       newAboutHandler(svc.about),
		contactHandler:     newContactHandler(svc.contact),
	}
}
