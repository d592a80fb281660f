package api

import (
	"errors"
	"os"
	"strings"
)

func (s *Server) registerRoutes() error {
	if s == nil || s.router == nil {
		return nil
	}

	api := s.router.Group("/api")
	apiKey := strings.TrimSpace(os.Getenv("RAGSCOPE_API_KEY"))
	if apiKey != "" {
		api.Use(apiKeyAuthMiddleware(apiKey))
	} else if strings.EqualFold(strings.TrimSpace(os.Getenv("RAGSCOPE_DISABLE_AUTH")), "true") {
		// Explicitly allow unauthenticated access.
	} else {
		return errors.New("api: missing auth configuration: set RAGSCOPE_API_KEY or set RAGSCOPE_DISABLE_AUTH=true")
	}

	api.GET("/health", s.handleHealth)
	api.GET("/strategies", s.handleListStrategies)

	api.GET("/dataset", s.handleDatasetInfo)
	api.GET("/sample", s.handleSample)

	api.POST("/compare", s.handleCompare)
	api.GET("/export", s.handleExport)
	api.GET("/history", s.handleHistory)

	return nil
}
