package standings

import (
	"context"

	"github.com/google/uuid"

	"github.com/mcdev12/footyleague/go/internal/models"
	"github.com/mcdev12/footyleague/go/internal/rpc"
)

// ServiceName is the connect service path prefix
const ServiceName = "league.v1.StandingsService"

type StandingsApp interface {
	ComputeStandings(ctx context.Context, seasonID uuid.UUID) ([]models.StandingRow, error)
}

type StandingsRequest struct {
	SeasonID string `json:"seasonId"`
}

type StandingsResponse struct {
	SeasonID string               `json:"seasonId"`
	Rows     []models.StandingRow `json:"rows"`
}

// Service exposes the league table over connect
type Service struct {
	app StandingsApp
}

// NewService creates a new standings service
func NewService(app StandingsApp) *Service {
	return &Service{app: app}
}

// Routes returns the handlers to mount on the server mux
func (s *Service) Routes() []rpc.Route {
	return []rpc.Route{
		rpc.Unary(ServiceName, "ComputeStandings", s.ComputeStandings),
	}
}

func (s *Service) ComputeStandings(ctx context.Context, req *StandingsRequest) (*StandingsResponse, error) {
	seasonID, err := rpc.ParseID("seasonId", req.SeasonID)
	if err != nil {
		return nil, err
	}
	rows, err := s.app.ComputeStandings(ctx, seasonID)
	if err != nil {
		return nil, err
	}
	return &StandingsResponse{SeasonID: seasonID.String(), Rows: rows}, nil
}
