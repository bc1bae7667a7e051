package dto

type ItemFilters struct {
	Kind        string
	SearchQuery string
	IsActive    *bool
	Page        int
	PageSize    int
}
