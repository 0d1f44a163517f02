package dto

import "time"

type CreateReviewRequest struct {
	Content string `json:"content" validate:"required,max=60"`
}

type UpdateReviewRequest struct {
	Content string `json:"content" validate:"required,max=60"`
}

type ReviewResponse struct {
	ID         uint      `json:"id"`
	CafeID     uint      `json:"cafe_id"`
	Content    string    `json:"content"`
	AuthorID   uint      `json:"author_id"`
	AuthorName string    `json:"author_name"`
	AuthorImg  string    `json:"author_image,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type LikeResponse struct {
	CafeID    uint  `json:"cafe_id"`
	LikeCount int64 `json:"like_count"`
	Liked     bool  `json:"liked"`
}
