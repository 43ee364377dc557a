package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/pricewatch/internal/engine"
	domain "github.com/donaldgifford/pricewatch/pkg/types"
)

// CycleRunner starts a polling cycle on demand.
type CycleRunner interface {
	RunNow(ctx context.Context, trigger string) (*domain.CycleReport, error)
}

// CycleLister reads cycle run history.
type CycleLister interface {
	ListCycleRuns(ctx context.Context, limit int) ([]domain.CycleRun, error)
}

// CyclesHandler triggers cycles and reports on past runs.
type CyclesHandler struct {
	runner CycleRunner
	runs   CycleLister
}

// NewCyclesHandler creates a new CyclesHandler.
func NewCyclesHandler(r CycleRunner, l CycleLister) *CyclesHandler {
	return &CyclesHandler{runner: r, runs: l}
}

// TriggerCycleOutput is the response body for a manual cycle.
type TriggerCycleOutput struct {
	Body *domain.CycleReport
}

// Trigger runs one cycle and returns its report. It answers 409 while
// another cycle is running.
func (h *CyclesHandler) Trigger(ctx context.Context, _ *struct{}) (*TriggerCycleOutput, error) {
	report, err := h.runner.RunNow(ctx, engine.TriggerManual)
	if err != nil {
		if errors.Is(err, engine.ErrCycleInProgress) {
			return nil, huma.Error409Conflict(err.Error())
		}
		return nil, huma.Error500InternalServerError("cycle failed: " + err.Error())
	}
	return &TriggerCycleOutput{Body: report}, nil
}

// ListCyclesInput holds query parameters for cycle history.
type ListCyclesInput struct {
	Limit int `query:"limit" default:"20" minimum:"1" maximum:"200" doc:"Number of runs to return"`
}

// ListCyclesOutput is the response body for cycle history.
type ListCyclesOutput struct {
	Body []domain.CycleRun
}

// List returns recent cycle runs, newest first.
func (h *CyclesHandler) List(ctx context.Context, input *ListCyclesInput) (*ListCyclesOutput, error) {
	runs, err := h.runs.ListCycleRuns(ctx, input.Limit)
	if err != nil {
		return nil, huma.Error500InternalServerError("listing cycles failed: " + err.Error())
	}
	if runs == nil {
		runs = []domain.CycleRun{}
	}
	return &ListCyclesOutput{Body: runs}, nil
}

// RegisterCycleRoutes registers cycle endpoints with the Huma API.
func RegisterCycleRoutes(api huma.API, h *CyclesHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "trigger-cycle",
		Method:      http.MethodPost,
		Path:        "/api/v1/cycles",
		Summary:     "Run a polling cycle now",
		Description: "Fetches every tracked item, records price history and sends " +
			"alerts. Responds with the cycle report once the cycle finishes.",
		Tags:   []string{"cycles"},
		Errors: []int{http.StatusConflict, http.StatusInternalServerError},
	}, h.Trigger)

	huma.Register(api, huma.Operation{
		OperationID: "list-cycles",
		Method:      http.MethodGet,
		Path:        "/api/v1/cycles",
		Summary:     "List recent cycle runs",
		Tags:        []string{"cycles"},
		Errors:      []int{http.StatusInternalServerError},
	}, h.List)
}
