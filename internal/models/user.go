package models

// Author: отображаемое имя автора, подтягивается из справочника пользователей при чтении.
type Author struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}
