package controllers

import (
	"context"
	"net/http"

	"github.com/vaporvista/storefront-backend/api/responses"
	pkgerrors "github.com/vaporvista/storefront-backend/pkg/errors"
	"github.com/vaporvista/storefront-backend/pkg/logger"
)

// Pinger is anything the readiness probe checks.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthController struct {
	logg   *logger.Logger
	checks map[string]Pinger
}

func NewHealthController(logg *logger.Logger, checks map[string]Pinger) *HealthController {
	return &HealthController{logg: logg, checks: checks}
}

// Live reports process liveness.
func (c *HealthController) Live(w http.ResponseWriter, r *http.Request) {
	responses.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Ready pings each dependency and fails when any is unreachable.
func (c *HealthController) Ready(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	statuses := make(map[string]string, len(c.checks))
	healthy := true

	for name, check := range c.checks {
		if err := check.Ping(ctx); err != nil {
			statuses[name] = "unreachable"
			healthy = false
			if c.logg != nil {
				c.logg.Warn(c.logg.WithField(ctx, "dependency", name), "health.dependency_unreachable")
			}
			continue
		}
		statuses[name] = "ok"
	}

	if !healthy {
		responses.WriteError(ctx, c.logg, w,
			pkgerrors.New(pkgerrors.CodeDependency, "dependency unreachable").WithDetails(statuses))
		return
	}
	responses.WriteJSON(w, http.StatusOK, statuses)
}
