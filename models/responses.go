package models

// StudentPage is the response of the scoped student listing. TotalPages is
// computed from a scoped count query: ceil(count/limit).
type StudentPage struct {
	// Students holds the records of the requested page, always scoped to
	// the authenticated owner.
	Students []Student `json:"students"`

	// TotalPages is the number of pages available under the current
	// filter and limit.
	TotalPages int `json:"totalPage"`

	// CurrentPage echoes the requested page number.
	CurrentPage int `json:"currentPage"`
}

// TokenResponse is the body of a successful login.
type TokenResponse struct {
	Token string `json:"token"`
}

// MessageResponse is the uniform JSON body used for confirmations and
// errors alike.
type MessageResponse struct {
	Message string `json:"message"`
}
