package dto

// PageParams defines the query parameters shared by paginated listings.
type PageParams struct {
	Limit     int     `form:"limit,default=20" binding:"omitempty,min=1,max=200"`
	NextToken *string `form:"nextToken"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// TransitionRequest carries an optional reason for lifecycle actions.
type TransitionRequest struct {
	Reason string `json:"reason"`
}
