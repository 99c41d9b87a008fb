package roster

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mcdev12/footyleague/go/internal/models"
	"github.com/mcdev12/footyleague/go/internal/rpc"
)

// ServiceName is the connect service path prefix
const ServiceName = "league.v1.RosterService"

// RosterApp defines what the service layer needs from the roster application
type RosterApp interface {
	AddPlayer(ctx context.Context, req AddPlayerRequest) (*models.Player, error)
	UpdatePlayer(ctx context.Context, playerID uuid.UUID, req UpdatePlayerRequest) (*models.Player, error)
	RemovePlayer(ctx context.Context, playerID uuid.UUID) error
	ListRoster(ctx context.Context, teamID uuid.UUID) ([]models.Player, error)
	CheckAddition(ctx context.Context, req AddPlayerRequest) error
	CheckEligibility(ctx context.Context, teamID, seasonID uuid.UUID) error
}

type PlayerMessage struct {
	SeasonID  string            `json:"seasonId"`
	TeamID    string            `json:"teamId"`
	Name      string            `json:"name"`
	BirthDate time.Time         `json:"birthDate"`
	Type      models.PlayerType `json:"type"`
}

type UpdatePlayerMessage struct {
	PlayerID  string             `json:"playerId"`
	SeasonID  string             `json:"seasonId"`
	Name      *string            `json:"name,omitempty"`
	BirthDate *time.Time         `json:"birthDate,omitempty"`
	Type      *models.PlayerType `json:"type,omitempty"`
}

type PlayerRequest struct {
	PlayerID string `json:"playerId"`
}

type PlayerResponse struct {
	Player *models.Player `json:"player"`
}

type TeamRequest struct {
	TeamID string `json:"teamId"`
}

type ListRosterResponse struct {
	Players []models.Player `json:"players"`
}

type EligibilityRequest struct {
	TeamID   string `json:"teamId"`
	SeasonID string `json:"seasonId"`
}

// CheckResponse is returned when a check passes; violations come back as errors
type CheckResponse struct {
	OK bool `json:"ok"`
}

type RemovePlayerResponse struct{}

// Service exposes the roster App over connect
type Service struct {
	app RosterApp
}

// NewService creates a new roster service
func NewService(app RosterApp) *Service {
	return &Service{app: app}
}

// Routes returns the handlers to mount on the server mux
func (s *Service) Routes() []rpc.Route {
	return []rpc.Route{
		rpc.Unary(ServiceName, "AddPlayer", s.AddPlayer),
		rpc.Unary(ServiceName, "UpdatePlayer", s.UpdatePlayer),
		rpc.Unary(ServiceName, "RemovePlayer", s.RemovePlayer),
		rpc.Unary(ServiceName, "ListRoster", s.ListRoster),
		rpc.Unary(ServiceName, "ValidateRosterAddition", s.ValidateRosterAddition),
		rpc.Unary(ServiceName, "CheckEligibility", s.CheckEligibility),
	}
}

func (s *Service) AddPlayer(ctx context.Context, req *PlayerMessage) (*PlayerResponse, error) {
	appReq, err := s.toAddPlayerRequest(req)
	if err != nil {
		return nil, err
	}
	player, err := s.app.AddPlayer(ctx, appReq)
	if err != nil {
		return nil, err
	}
	return &PlayerResponse{Player: player}, nil
}

func (s *Service) UpdatePlayer(ctx context.Context, req *UpdatePlayerMessage) (*PlayerResponse, error) {
	playerID, err := rpc.ParseID("playerId", req.PlayerID)
	if err != nil {
		return nil, err
	}
	seasonID, err := rpc.ParseID("seasonId", req.SeasonID)
	if err != nil {
		return nil, err
	}
	player, err := s.app.UpdatePlayer(ctx, playerID, UpdatePlayerRequest{
		SeasonID:  seasonID,
		Name:      req.Name,
		BirthDate: req.BirthDate,
		Type:      req.Type,
	})
	if err != nil {
		return nil, err
	}
	return &PlayerResponse{Player: player}, nil
}

func (s *Service) RemovePlayer(ctx context.Context, req *PlayerRequest) (*RemovePlayerResponse, error) {
	playerID, err := rpc.ParseID("playerId", req.PlayerID)
	if err != nil {
		return nil, err
	}
	if err := s.app.RemovePlayer(ctx, playerID); err != nil {
		return nil, err
	}
	return &RemovePlayerResponse{}, nil
}

func (s *Service) ListRoster(ctx context.Context, req *TeamRequest) (*ListRosterResponse, error) {
	teamID, err := rpc.ParseID("teamId", req.TeamID)
	if err != nil {
		return nil, err
	}
	players, err := s.app.ListRoster(ctx, teamID)
	if err != nil {
		return nil, err
	}
	return &ListRosterResponse{Players: players}, nil
}

func (s *Service) ValidateRosterAddition(ctx context.Context, req *PlayerMessage) (*CheckResponse, error) {
	appReq, err := s.toAddPlayerRequest(req)
	if err != nil {
		return nil, err
	}
	if err := s.app.CheckAddition(ctx, appReq); err != nil {
		return nil, err
	}
	return &CheckResponse{OK: true}, nil
}

func (s *Service) CheckEligibility(ctx context.Context, req *EligibilityRequest) (*CheckResponse, error) {
	teamID, err := rpc.ParseID("teamId", req.TeamID)
	if err != nil {
		return nil, err
	}
	seasonID, err := rpc.ParseID("seasonId", req.SeasonID)
	if err != nil {
		return nil, err
	}
	if err := s.app.CheckEligibility(ctx, teamID, seasonID); err != nil {
		return nil, err
	}
	return &CheckResponse{OK: true}, nil
}

func (s *Service) toAddPlayerRequest(msg *PlayerMessage) (AddPlayerRequest, error) {
	seasonID, err := rpc.ParseID("seasonId", msg.SeasonID)
	if err != nil {
		return AddPlayerRequest{}, err
	}
	teamID, err := rpc.ParseID("teamId", msg.TeamID)
	if err != nil {
		return AddPlayerRequest{}, err
	}
	return AddPlayerRequest{
		SeasonID:  seasonID,
		TeamID:    teamID,
		Name:      msg.Name,
		BirthDate: msg.BirthDate,
		Type:      msg.Type,
	}, nil
}
