package models

import "time"

type Blog struct {
	BlogID      string    `bson:"blogid" json:"blogid"`
	Title       string    `bson:"blog_title" json:"blog_title"`
	Description string    `bson:"blog_description" json:"blog_description"`
	Date        time.Time `bson:"blog_date" json:"blog_date"`
	Image       string    `bson:"blog_image,omitempty" json:"blog_image,omitempty"`
	ImageID     string    `bson:"image_id,omitempty" json:"-"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}
