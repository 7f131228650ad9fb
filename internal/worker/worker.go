package worker

import (
	"context"

	"github.com/gamestore-zarzis/backend/internal/service"
)

type Workers struct {
	CodeCleaner CodeCleaner
}

type Deps struct {
	Services *service.Services
}

type CodeCleaner interface {
	CleanupCodes(ctx context.Context, reason string) error
}

func NewWorkers(deps Deps) *Workers {
	return &Workers{
		CodeCleaner: newCodeCleaner(deps.Services.Maintenance),
	}
}
