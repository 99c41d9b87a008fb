package main

import (
	"database/sql"

	"github.com/jonboulle/clockwork"

	"github.com/mcdev12/footyleague/go/internal/applications"
	"github.com/mcdev12/footyleague/go/internal/matches"
	"github.com/mcdev12/footyleague/go/internal/roster"
	"github.com/mcdev12/footyleague/go/internal/rpc"
	"github.com/mcdev12/footyleague/go/internal/seasons"
	"github.com/mcdev12/footyleague/go/internal/standings"
	"github.com/mcdev12/footyleague/go/internal/teams"
)

type Services struct {
	Teams        *teams.Service
	Seasons      *seasons.Service
	Roster       *roster.Service
	Applications *applications.Service
	Matches      *matches.Service
	Standings    *standings.Service

	// apps used by background workers
	SeasonsApp      *seasons.App
	RosterApp       *roster.App
	ApplicationsApp *applications.App
	MatchesApp      *matches.App
	StandingsApp    *standings.App
}

func setupServices(database *sql.DB, settings *Settings, clock clockwork.Clock) *Services {
	// Wire up dependency injection chain
	// Database layer → Repository layer → App layer → Service layer

	// Teams
	teamsApp := teams.NewApp(teams.NewRepository(database))

	// Seasons and goal types
	seasonsApp := seasons.NewApp(seasons.NewRepository(database), settings.Config.Regulation, clock)

	// Roster
	rosterApp := roster.NewApp(roster.NewRepository(database), teamsApp, seasonsApp, clock)

	// Applications
	applicationsApp := applications.NewApp(applications.NewRepository(database), seasonsApp, teamsApp, clock)

	// Matches
	matchesApp := matches.NewApp(matches.NewRepository(database), seasonsApp, teamsApp, seasonsApp, applicationsApp, clock)

	// Standings
	standingsApp := standings.NewApp(applicationsApp, matchesApp, seasonsApp)

	return &Services{
		Teams:           teams.NewService(teamsApp),
		Seasons:         seasons.NewService(seasonsApp),
		Roster:          roster.NewService(rosterApp),
		Applications:    applications.NewService(applicationsApp),
		Matches:         matches.NewService(matchesApp),
		Standings:       standings.NewService(standingsApp),
		SeasonsApp:      seasonsApp,
		RosterApp:       rosterApp,
		ApplicationsApp: applicationsApp,
		MatchesApp:      matchesApp,
		StandingsApp:    standingsApp,
	}
}

func (s *Services) Routes() []rpc.Route {
	var routes []rpc.Route
	routes = append(routes, s.Teams.Routes()...)
	routes = append(routes, s.Seasons.Routes()...)
	routes = append(routes, s.Roster.Routes()...)
	routes = append(routes, s.Applications.Routes()...)
	routes = append(routes, s.Matches.Routes()...)
	routes = append(routes, s.Standings.Routes()...)
	return routes
}
