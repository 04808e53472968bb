package model

type Feed struct {
	BaseModel
	Name     string `db:"name" json:"name"`
	Category string `db:"category" json:"category"`
	Level    int    `db:"level" json:"level"`
}
