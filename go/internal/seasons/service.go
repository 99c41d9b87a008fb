package seasons

import (
	"context"

	"github.com/google/uuid"

	"github.com/mcdev12/footyleague/go/internal/models"
	"github.com/mcdev12/footyleague/go/internal/rpc"
)

// ServiceName is the connect service path prefix
const ServiceName = "league.v1.SeasonService"

// SeasonsApp defines what the service layer needs from the seasons application
type SeasonsApp interface {
	CreateSeason(ctx context.Context, req CreateSeasonRequest) (*models.Season, error)
	GetSeason(ctx context.Context, id uuid.UUID) (*models.Season, error)
	ListSeasons(ctx context.Context) ([]models.Season, error)
	UpdateRegulation(ctx context.Context, seasonID uuid.UUID, reg models.Regulation) (*models.Season, error)
	CreateGoalType(ctx context.Context, req CreateGoalTypeRequest) (*models.GoalType, error)
	ListGoalTypes(ctx context.Context) ([]models.GoalType, error)
}

type SeasonRequest struct {
	ID string `json:"id"`
}

type SeasonResponse struct {
	Season *models.Season `json:"season"`
}

type ListSeasonsRequest struct{}

type ListSeasonsResponse struct {
	Seasons []models.Season `json:"seasons"`
}

type UpdateRegulationRequest struct {
	SeasonID   string            `json:"seasonId"`
	Regulation models.Regulation `json:"regulation"`
}

type GoalTypeResponse struct {
	GoalType *models.GoalType `json:"goalType"`
}

type ListGoalTypesRequest struct{}

type ListGoalTypesResponse struct {
	GoalTypes []models.GoalType `json:"goalTypes"`
}

// Service exposes the seasons App over connect
type Service struct {
	app SeasonsApp
}

// NewService creates a new seasons service
func NewService(app SeasonsApp) *Service {
	return &Service{app: app}
}

// Routes returns the handlers to mount on the server mux
func (s *Service) Routes() []rpc.Route {
	return []rpc.Route{
		rpc.Unary(ServiceName, "CreateSeason", s.CreateSeason),
		rpc.Unary(ServiceName, "GetSeason", s.GetSeason),
		rpc.Unary(ServiceName, "ListSeasons", s.ListSeasons),
		rpc.Unary(ServiceName, "UpdateRegulation", s.UpdateRegulation),
		rpc.Unary(ServiceName, "CreateGoalType", s.CreateGoalType),
		rpc.Unary(ServiceName, "ListGoalTypes", s.ListGoalTypes),
	}
}

func (s *Service) CreateSeason(ctx context.Context, req *CreateSeasonRequest) (*SeasonResponse, error) {
	season, err := s.app.CreateSeason(ctx, *req)
	if err != nil {
		return nil, err
	}
	return &SeasonResponse{Season: season}, nil
}

func (s *Service) GetSeason(ctx context.Context, req *SeasonRequest) (*SeasonResponse, error) {
	id, err := rpc.ParseID("id", req.ID)
	if err != nil {
		return nil, err
	}
	season, err := s.app.GetSeason(ctx, id)
	if err != nil {
		return nil, err
	}
	return &SeasonResponse{Season: season}, nil
}

func (s *Service) ListSeasons(ctx context.Context, _ *ListSeasonsRequest) (*ListSeasonsResponse, error) {
	seasons, err := s.app.ListSeasons(ctx)
	if err != nil {
		return nil, err
	}
	return &ListSeasonsResponse{Seasons: seasons}, nil
}

func (s *Service) UpdateRegulation(ctx context.Context, req *UpdateRegulationRequest) (*SeasonResponse, error) {
	id, err := rpc.ParseID("seasonId", req.SeasonID)
	if err != nil {
		return nil, err
	}
	season, err := s.app.UpdateRegulation(ctx, id, req.Regulation)
	if err != nil {
		return nil, err
	}
	return &SeasonResponse{Season: season}, nil
}

func (s *Service) CreateGoalType(ctx context.Context, req *CreateGoalTypeRequest) (*GoalTypeResponse, error) {
	gt, err := s.app.CreateGoalType(ctx, *req)
	if err != nil {
		return nil, err
	}
	return &GoalTypeResponse{GoalType: gt}, nil
}

func (s *Service) ListGoalTypes(ctx context.Context, _ *ListGoalTypesRequest) (*ListGoalTypesResponse, error) {
	out, err := s.app.ListGoalTypes(ctx)
	if err != nil {
		return nil, err
	}
	return &ListGoalTypesResponse{GoalTypes: out}, nil
}
