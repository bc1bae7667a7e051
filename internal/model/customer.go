package model

type Customer struct {
	BaseModel
	FirstName string  `db:"first_name" json:"first_name"`
	LastName  string  `db:"last_name" json:"last_name"`
	Email     *string `db:"email" json:"email"`
	Phone     *string `db:"phone" json:"phone"`
	Notes     *string `db:"notes" json:"notes"`
}
