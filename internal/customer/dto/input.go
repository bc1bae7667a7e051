package dto

type CustomerInput struct {
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	Notes     *string `json:"notes"`
}

type CustomerFilters struct {
	SearchQuery string
	Page        int
	PageSize    int
}
