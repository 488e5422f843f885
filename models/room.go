package models

type Room struct {
	RoomID      string  `bson:"roomid" json:"roomid"`
	RoomNo      string  `bson:"room_no" json:"room_no"`
	RoomType    string  `bson:"room_type" json:"room_type"`
	Description string  `bson:"room_description" json:"room_description"`
	Size        string  `bson:"room_size" json:"room_size"`
	Beds        string  `bson:"room_beds" json:"room_beds"`
	Amount      float64 `bson:"room_amount" json:"room_amount"` // nightly rate, major units
	Image       string  `bson:"room_image,omitempty" json:"room_image,omitempty"`
	ImageID     string  `bson:"image_id,omitempty" json:"-"`
}
