package handler

import "github.com/aubrey-sherman/baby-bootcamp-be/internal/service"

// Handler aggregates the per-module HTTP handlers.
type Handler struct {
	Auth    *AuthHandler
	Feeding *FeedingHandler
	Export  *ExportHandler
}

// NewHandler creates the Handler aggregate.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(svc.Auth),
		Feeding: NewFeedingHandler(svc.Feeding),
		Export:  NewExportHandler(svc.Export),
	}
}
