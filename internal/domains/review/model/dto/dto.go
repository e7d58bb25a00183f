package dto

import (
	"math"

	"github.com/google/uuid"

	"musafir/internal/domains/review/model"
	gDto "musafir/shared/dto"
	gModel "musafir/shared/model"
	"musafir/shared/timezone"
)

type CreateReviewRequest struct {
	EntityType string `json:"entity_type" validate:"required,oneof=hotel car flight umrah property"`
	EntityID   string `json:"entity_id"   validate:"required,uuid"`
	Rating     int    `json:"rating"      validate:"required,min=1,max=5"`
	Comment    string `json:"comment"     validate:"omitempty,max=2000"`
}

func (c *CreateReviewRequest) ToModel(user string) model.Review {
	return model.Review{
		ID:         uuid.NewString(),
		EntityType: c.EntityType,
		EntityID:   c.EntityID,
		UserID:     user,
		Rating:     c.Rating,
		Comment:    c.Comment,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type ReviewResponse struct {
	ID         string `json:"id"`
	EntityType string `json:"entity_type"`
	EntityID   string `json:"entity_id"`
	UserID     string `json:"user_id"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
	gDto.Metadata
}

func (r *ReviewResponse) FromModel(mod model.Review) {
	r.ID = mod.ID
	r.EntityType = mod.EntityType
	r.EntityID = mod.EntityID
	r.UserID = mod.UserID
	r.Rating = mod.Rating
	r.Comment = mod.Comment
	r.Metadata.FromModel(mod.Metadata)
}

type GetReviewsResponse struct {
	Reviews   []ReviewResponse `json:"reviews"`
	TotalPage int              `json:"total_page"`
	TotalData int              `json:"total_data"`
}

// ReviewSummaryResponse aggregates ratings for one entity.
type ReviewSummaryResponse struct {
	EntityType string      `json:"entity_type"`
	EntityID   string      `json:"entity_id"`
	Average    float64     `json:"average"`
	Total      int         `json:"total"`
	Breakdown  map[int]int `json:"breakdown"`
}

// Summarize computes the average rating rounded to one decimal and the
// per-star counts.
func Summarize(entityType, entityID string, reviews []model.Review) ReviewSummaryResponse {
	res := ReviewSummaryResponse{
		EntityType: entityType,
		EntityID:   entityID,
		Breakdown:  map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0},
	}

	if len(reviews) == 0 {
		return res
	}

	sum := 0
	for _, review := range reviews {
		sum += review.Rating
		res.Breakdown[review.Rating]++
	}

	res.Total = len(reviews)
	res.Average = math.Round(float64(sum)/float64(len(reviews))*10) / 10

	return res
}
