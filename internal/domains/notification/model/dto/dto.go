package dto

import (
	"musafir/internal/domains/notification/model"
	"musafir/shared"
	gDto "musafir/shared/dto"
)

type NotificationResponse struct {
	ID    string `json:"id"`
	Kind  string `json:"kind"`
	Title string `json:"title"`
	Body  string `json:"body"`
	Read  bool   `json:"read"`
	gDto.Metadata
}

func (r *NotificationResponse) FromModel(mod model.Notification) {
	r.ID = mod.ID
	r.Kind = mod.Kind
	r.Title = mod.Title
	r.Body = mod.Body
	r.Read = mod.Read
	r.Metadata.FromModel(mod.Metadata)
}

type GetNotificationsResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	Unread        int                    `json:"unread"`
	TotalPage     int                    `json:"total_page"`
	TotalData     int                    `json:"total_data"`
}

func (r *GetNotificationsResponse) FromModels(models []model.Notification, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Notifications = make([]NotificationResponse, len(models))
	for i, mod := range models {
		r.Notifications[i].FromModel(mod)
	}
}
