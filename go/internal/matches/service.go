package matches

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mcdev12/footyleague/go/internal/models"
	"github.com/mcdev12/footyleague/go/internal/rpc"
)

// ServiceName is the connect service path prefix
const ServiceName = "league.v1.MatchService"

// MatchesApp defines what the service layer needs from the matches application
type MatchesApp interface {
	ScheduleMatch(ctx context.Context, req ScheduleMatchRequest) (*models.Match, error)
	RescheduleMatch(ctx context.Context, id uuid.UUID, req RescheduleMatchRequest) (*models.Match, error)
	RecordGoal(ctx context.Context, req RecordGoalRequest) (*models.Goal, error)
	GetMatch(ctx context.Context, id uuid.UUID) (*models.Match, error)
	ListMatches(ctx context.Context, seasonID uuid.UUID) ([]models.Match, error)
	ListGoals(ctx context.Context, matchID uuid.UUID) ([]models.Goal, error)
	GetOutcome(ctx context.Context, matchID uuid.UUID) (models.MatchOutcome, bool, error)
}

type ScheduleMatchMessage struct {
	SeasonID  string    `json:"seasonId"`
	Team1ID   string    `json:"team1Id"`
	Team2ID   string    `json:"team2Id"`
	MatchTime time.Time `json:"matchTime"`
	Stadium   string    `json:"stadium"`
}

type RescheduleMatchMessage struct {
	MatchID   string    `json:"matchId"`
	MatchTime time.Time `json:"matchTime"`
	Stadium   string    `json:"stadium"`
}

type MatchRequest struct {
	MatchID string `json:"matchId"`
}

type MatchResponse struct {
	Match *models.Match `json:"match"`
}

type ListMatchesRequest struct {
	SeasonID string `json:"seasonId"`
}

type ListMatchesResponse struct {
	Matches []models.Match `json:"matches"`
}

type RecordGoalMessage struct {
	MatchID    string `json:"matchId"`
	TeamID     string `json:"teamId"`
	PlayerID   string `json:"playerId"`
	GoalTypeID string `json:"goalTypeId"`
	Minute     int    `json:"minute"`
}

type GoalResponse struct {
	Goal *models.Goal `json:"goal"`
}

type ListGoalsResponse struct {
	Goals []models.Goal `json:"goals"`
}

// OutcomeResponse carries no outcome while the match is unplayed
type OutcomeResponse struct {
	Played  bool                 `json:"played"`
	Outcome *models.MatchOutcome `json:"outcome,omitempty"`
}

// Service exposes match recording over connect
type Service struct {
	app MatchesApp
}

// NewService creates a new matches service
func NewService(app MatchesApp) *Service {
	return &Service{app: app}
}

// Routes returns the handlers to mount on the server mux
func (s *Service) Routes() []rpc.Route {
	return []rpc.Route{
		rpc.Unary(ServiceName, "ScheduleMatch", s.ScheduleMatch),
		rpc.Unary(ServiceName, "RescheduleMatch", s.RescheduleMatch),
		rpc.Unary(ServiceName, "RecordGoal", s.RecordGoal),
		rpc.Unary(ServiceName, "GetMatch", s.GetMatch),
		rpc.Unary(ServiceName, "ListMatches", s.ListMatches),
		rpc.Unary(ServiceName, "ListGoals", s.ListGoals),
		rpc.Unary(ServiceName, "GetOutcome", s.GetOutcome),
	}
}

func (s *Service) ScheduleMatch(ctx context.Context, req *ScheduleMatchMessage) (*MatchResponse, error) {
	seasonID, err := rpc.ParseID("seasonId", req.SeasonID)
	if err != nil {
		return nil, err
	}
	team1ID, err := rpc.ParseID("team1Id", req.Team1ID)
	if err != nil {
		return nil, err
	}
	team2ID, err := rpc.ParseID("team2Id", req.Team2ID)
	if err != nil {
		return nil, err
	}
	m, err := s.app.ScheduleMatch(ctx, ScheduleMatchRequest{
		SeasonID:  seasonID,
		Team1ID:   team1ID,
		Team2ID:   team2ID,
		MatchTime: req.MatchTime,
		Stadium:   req.Stadium,
	})
	if err != nil {
		return nil, err
	}
	return &MatchResponse{Match: m}, nil
}

func (s *Service) RescheduleMatch(ctx context.Context, req *RescheduleMatchMessage) (*MatchResponse, error) {
	id, err := rpc.ParseID("matchId", req.MatchID)
	if err != nil {
		return nil, err
	}
	m, err := s.app.RescheduleMatch(ctx, id, RescheduleMatchRequest{MatchTime: req.MatchTime, Stadium: req.Stadium})
	if err != nil {
		return nil, err
	}
	return &MatchResponse{Match: m}, nil
}

func (s *Service) RecordGoal(ctx context.Context, req *RecordGoalMessage) (*GoalResponse, error) {
	ids := make([]uuid.UUID, 4)
	for i, f := range []struct{ name, value string }{
		{"matchId", req.MatchID},
		{"teamId", req.TeamID},
		{"playerId", req.PlayerID},
		{"goalTypeId", req.GoalTypeID},
	} {
		id, err := rpc.ParseID(f.name, f.value)
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	g, err := s.app.RecordGoal(ctx, RecordGoalRequest{
		MatchID:    ids[0],
		TeamID:     ids[1],
		PlayerID:   ids[2],
		GoalTypeID: ids[3],
		Minute:     req.Minute,
	})
	if err != nil {
		return nil, err
	}
	return &GoalResponse{Goal: g}, nil
}

func (s *Service) GetMatch(ctx context.Context, req *MatchRequest) (*MatchResponse, error) {
	id, err := rpc.ParseID("matchId", req.MatchID)
	if err != nil {
		return nil, err
	}
	m, err := s.app.GetMatch(ctx, id)
	if err != nil {
		return nil, err
	}
	return &MatchResponse{Match: m}, nil
}

func (s *Service) ListMatches(ctx context.Context, req *ListMatchesRequest) (*ListMatchesResponse, error) {
	seasonID, err := rpc.ParseID("seasonId", req.SeasonID)
	if err != nil {
		return nil, err
	}
	ms, err := s.app.ListMatches(ctx, seasonID)
	if err != nil {
		return nil, err
	}
	return &ListMatchesResponse{Matches: ms}, nil
}

func (s *Service) ListGoals(ctx context.Context, req *MatchRequest) (*ListGoalsResponse, error) {
	id, err := rpc.ParseID("matchId", req.MatchID)
	if err != nil {
		return nil, err
	}
	goals, err := s.app.ListGoals(ctx, id)
	if err != nil {
		return nil, err
	}
	return &ListGoalsResponse{Goals: goals}, nil
}

func (s *Service) GetOutcome(ctx context.Context, req *MatchRequest) (*OutcomeResponse, error) {
	id, err := rpc.ParseID("matchId", req.MatchID)
	if err != nil {
		return nil, err
	}
	o, played, err := s.app.GetOutcome(ctx, id)
	if err != nil {
		return nil, err
	}
	if !played {
		return &OutcomeResponse{}, nil
	}
	return &OutcomeResponse{Played: true, Outcome: &o}, nil
}
