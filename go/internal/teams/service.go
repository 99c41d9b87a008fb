package teams

import (
	"context"

	"github.com/google/uuid"

	"github.com/mcdev12/footyleague/go/internal/models"
	"github.com/mcdev12/footyleague/go/internal/rpc"
)

// ServiceName is the connect service path prefix
const ServiceName = "league.v1.TeamService"

// TeamsApp defines what the service layer needs from the teams application
type TeamsApp interface {
	CreateTeam(ctx context.Context, req CreateTeamRequest) (*models.Team, error)
	GetTeam(ctx context.Context, id uuid.UUID) (*models.Team, error)
	ListTeams(ctx context.Context, pagination PaginationParams) ([]models.Team, error)
	UpdateTeam(ctx context.Context, id uuid.UUID, req UpdateTeamRequest) (*models.Team, error)
	DeleteTeam(ctx context.Context, id uuid.UUID) error
}

type TeamRequest struct {
	ID string `json:"id"`
}

type UpdateTeamMessage struct {
	ID string `json:"id"`
	UpdateTeamRequest
}

type TeamResponse struct {
	Team *models.Team `json:"team"`
}

type ListTeamsResponse struct {
	Teams []models.Team `json:"teams"`
}

type DeleteTeamResponse struct{}

// Service exposes the teams App over connect
type Service struct {
	app TeamsApp
}

// NewService creates a new teams service
func NewService(app TeamsApp) *Service {
	return &Service{app: app}
}

// Routes returns the handlers to mount on the server mux
func (s *Service) Routes() []rpc.Route {
	return []rpc.Route{
		rpc.Unary(ServiceName, "CreateTeam", s.CreateTeam),
		rpc.Unary(ServiceName, "GetTeam", s.GetTeam),
		rpc.Unary(ServiceName, "ListTeams", s.ListTeams),
		rpc.Unary(ServiceName, "UpdateTeam", s.UpdateTeam),
		rpc.Unary(ServiceName, "DeleteTeam", s.DeleteTeam),
	}
}

func (s *Service) CreateTeam(ctx context.Context, req *CreateTeamRequest) (*TeamResponse, error) {
	team, err := s.app.CreateTeam(ctx, *req)
	if err != nil {
		return nil, err
	}
	return &TeamResponse{Team: team}, nil
}

func (s *Service) GetTeam(ctx context.Context, req *TeamRequest) (*TeamResponse, error) {
	id, err := rpc.ParseID("id", req.ID)
	if err != nil {
		return nil, err
	}
	team, err := s.app.GetTeam(ctx, id)
	if err != nil {
		return nil, err
	}
	return &TeamResponse{Team: team}, nil
}

func (s *Service) ListTeams(ctx context.Context, req *PaginationParams) (*ListTeamsResponse, error) {
	teams, err := s.app.ListTeams(ctx, *req)
	if err != nil {
		return nil, err
	}
	return &ListTeamsResponse{Teams: teams}, nil
}

func (s *Service) UpdateTeam(ctx context.Context, req *UpdateTeamMessage) (*TeamResponse, error) {
	id, err := rpc.ParseID("id", req.ID)
	if err != nil {
		return nil, err
	}
	team, err := s.app.UpdateTeam(ctx, id, req.UpdateTeamRequest)
	if err != nil {
		return nil, err
	}
	return &TeamResponse{Team: team}, nil
}

func (s *Service) DeleteTeam(ctx context.Context, req *TeamRequest) (*DeleteTeamResponse, error) {
	id, err := rpc.ParseID("id", req.ID)
	if err != nil {
		return nil, err
	}
	if err := s.app.DeleteTeam(ctx, id); err != nil {
		return nil, err
	}
	return &DeleteTeamResponse{}, nil
}
