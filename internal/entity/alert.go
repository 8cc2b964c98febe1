package entity

import "time"

type Alert struct {
	ID        string    `json:"_id"`
	Message   string    `json:"message"`
	Link      string    `json:"link,omitempty"`
	Document  *Document `json:"document,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
