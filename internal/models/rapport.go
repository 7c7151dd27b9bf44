package models

type Rapport struct {
	ID     string `json:"id" db:"id"`
	Date   string `json:"date" db:"rapport_date"`
	Result string `json:"result" db:"result"`
}
