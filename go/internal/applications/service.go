package applications

import (
	"context"

	"github.com/google/uuid"

	"github.com/mcdev12/footyleague/go/internal/models"
	"github.com/mcdev12/footyleague/go/internal/rpc"
)

// ServiceName is the connect service path prefix
const ServiceName = "league.v1.ApplicationService"

// ApplicationsApp defines what the service layer needs from the applications application
type ApplicationsApp interface {
	Apply(ctx context.Context, teamID, seasonID uuid.UUID) (*models.Application, error)
	Decide(ctx context.Context, id uuid.UUID, decision models.ApplicationStatus) (*models.Application, error)
	Withdraw(ctx context.Context, id uuid.UUID) (*models.Application, error)
	GetApplication(ctx context.Context, id uuid.UUID) (*models.Application, error)
	ListBySeason(ctx context.Context, seasonID uuid.UUID) ([]models.Application, error)
}

type ApplyRequest struct {
	TeamID   string `json:"teamId"`
	SeasonID string `json:"seasonId"`
}

type DecideRequest struct {
	ApplicationID string                   `json:"applicationId"`
	Decision      models.ApplicationStatus `json:"decision"`
}

type ApplicationRequest struct {
	ApplicationID string `json:"applicationId"`
}

type ApplicationResponse struct {
	Application *models.Application `json:"application"`
}

type ListApplicationsRequest struct {
	SeasonID string `json:"seasonId"`
}

type ListApplicationsResponse struct {
	Applications []models.Application `json:"applications"`
}

// Service exposes the application workflow over connect
type Service struct {
	app ApplicationsApp
}

// NewService creates a new applications service
func NewService(app ApplicationsApp) *Service {
	return &Service{app: app}
}

// Routes returns the handlers to mount on the server mux
func (s *Service) Routes() []rpc.Route {
	return []rpc.Route{
		rpc.Unary(ServiceName, "Apply", s.Apply),
		rpc.Unary(ServiceName, "Decide", s.Decide),
		rpc.Unary(ServiceName, "Withdraw", s.Withdraw),
		rpc.Unary(ServiceName, "GetApplication", s.GetApplication),
		rpc.Unary(ServiceName, "ListApplications", s.ListApplications),
	}
}

func (s *Service) Apply(ctx context.Context, req *ApplyRequest) (*ApplicationResponse, error) {
	teamID, err := rpc.ParseID("teamId", req.TeamID)
	if err != nil {
		return nil, err
	}
	seasonID, err := rpc.ParseID("seasonId", req.SeasonID)
	if err != nil {
		return nil, err
	}
	app, err := s.app.Apply(ctx, teamID, seasonID)
	if err != nil {
		return nil, err
	}
	return &ApplicationResponse{Application: app}, nil
}

func (s *Service) Decide(ctx context.Context, req *DecideRequest) (*ApplicationResponse, error) {
	id, err := rpc.ParseID("applicationId", req.ApplicationID)
	if err != nil {
		return nil, err
	}
	app, err := s.app.Decide(ctx, id, req.Decision)
	if err != nil {
		return nil, err
	}
	return &ApplicationResponse{Application: app}, nil
}

func (s *Service) Withdraw(ctx context.Context, req *ApplicationRequest) (*ApplicationResponse, error) {
	id, err := rpc.ParseID("applicationId", req.ApplicationID)
	if err != nil {
		return nil, err
	}
	app, err := s.app.Withdraw(ctx, id)
	if err != nil {
		return nil, err
	}
	return &ApplicationResponse{Application: app}, nil
}

func (s *Service) GetApplication(ctx context.Context, req *ApplicationRequest) (*ApplicationResponse, error) {
	id, err := rpc.ParseID("applicationId", req.ApplicationID)
	if err != nil {
		return nil, err
	}
	app, err := s.app.GetApplication(ctx, id)
	if err != nil {
		return nil, err
	}
	return &ApplicationResponse{Application: app}, nil
}

func (s *Service) ListApplications(ctx context.Context, req *ListApplicationsRequest) (*ListApplicationsResponse, error) {
	seasonID, err := rpc.ParseID("seasonId", req.SeasonID)
	if err != nil {
		return nil, err
	}
	apps, err := s.app.ListBySeason(ctx, seasonID)
	if err != nil {
		return nil, err
	}
	return &ListApplicationsResponse{Applications: apps}, nil
}
