package api

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	healthHandler      healthHandler
	authHandler        authHandler
	projectHandler     projectHandler
	skillHandler       skillHandler
	learningHandler    learningHandler
	experienceHandler  experienceHandler
	certificateHandler certificateHandler
	mediaHandler       mediaHandler
	profileHandler     profileHandler
	aboutHandler       aboutHandler
	contactHandler     contactHandler
}

// ErrorResponse represents an error response from the API
// @Description Error response structure
type ErrorResponse struct {
	Error  string            `json:"error" example:"Internal Server Error"`
	Fields map[string]string `json:"fields,omitempty"`
}
