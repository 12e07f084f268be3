package entity

import "time"

type Movie struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	RunningTime int       `json:"runningTime"`
	Thumbnail   string    `json:"thumbnail"`
	Rating      float64   `json:"rating"`
	Duration    int       `json:"duration"`
	CreatedAt   time.Time `json:"created_at"`
}

type Comment struct {
	ID        string    `json:"_id"`
	MovieID   string    `json:"movieId"`
	UserID    string    `json:"userId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}
