package dto

import "time"

type MovementFilters struct {
	ItemID    string
	Kind      string
	StartDate *time.Time
	EndDate   *time.Time
	Page      int
	PageSize  int
}
