package server

import (
	"net/http"

	"github.com/jonathan/resume-fit/internal/pipeline/steps"
)

// StepInfo describes one analysis stage for clients rendering progress.
type StepInfo struct {
	Name         string   `json:"name"`
	Category     string   `json:"category"`
	Position     int      `json:"position"`
	Dependencies []string `json:"dependencies"`
}

// StepsResponse lists the stages in execution order
type StepsResponse struct {
	Steps []StepInfo `json:"steps"`
}

// handleListSteps returns the stage registry in the order progress events arrive
func (s *Server) handleListSteps(w http.ResponseWriter, _ *http.Request) {
	order := steps.Order()
	resp := StepsResponse{Steps: make([]StepInfo, 0, len(order))}
	for _, name := range order {
		def := steps.StepRegistry[name]
		deps := def.Dependencies
		if deps == nil {
			deps = []string{}
		}
		resp.Steps = append(resp.Steps, StepInfo{
			Name:         def.Name,
			Category:     def.Category,
			Position:     steps.Position(name),
			Dependencies: deps,
		})
	}
	s.jsonResponse(w, http.StatusOK, resp)
}
