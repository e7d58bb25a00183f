package model

import (
	"musafir/shared/model"
)

const (
	TableName  = "notifications"
	EntityName = "notification"

	FieldID     = "id"
	FieldUserID = "user_id"
	FieldKind   = "kind"
	FieldRead   = "read"
)

const (
	KindBooking = "booking"
)

type Notification struct {
	ID     string `db:"id"`
	UserID string `db:"user_id"`
	Kind   string `db:"kind"`
	Title  string `db:"title"`
	Body   string `db:"body"`
	Read   bool   `db:"read"`
	model.Metadata
}
