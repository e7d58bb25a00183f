package model

import (
	"musafir/shared/model"
)

const (
	TableName  = "reviews"
	EntityName = "review"

	FieldID         = "id"
	FieldEntityType = "entity_type"
	FieldEntityID   = "entity_id"
	FieldUserID     = "user_id"
	FieldRating     = "rating"
)

type Review struct {
	ID         string `db:"id"`
	EntityType string `db:"entity_type"`
	EntityID   string `db:"entity_id"`
	UserID     string `db:"user_id"`
	Rating     int    `db:"rating"`
	Comment    string `db:"comment"`
	model.Metadata
}
