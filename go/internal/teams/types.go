package teams

// CreateTeamRequest represents the data needed to register a club
type CreateTeamRequest struct {
	Name        string `json:"name"`
	HomeStadium string `json:"homeStadium"`
}

// UpdateTeamRequest represents the fields that can be changed on a club
type UpdateTeamRequest struct {
	Name        *string `json:"name,omitempty"`
	HomeStadium *string `json:"homeStadium,omitempty"`
}

// PaginationParams represents pagination parameters
type PaginationParams struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

const (
	defaultPageSize = 50
	maxPageSize     = 200
)
