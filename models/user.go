package models

import "time"

type User struct {
	UserID         string    `bson:"userid" json:"userid"`
	FirstName      string    `bson:"firstname" json:"firstname"`
	LastName       string    `bson:"lastname" json:"lastname"`
	Email          string    `bson:"email" json:"email"`
	Phone          string    `bson:"phone" json:"phone"`
	Password       string    `bson:"password" json:"-"`
	Role           string    `bson:"role" json:"role"`
	ResetOTP       string    `bson:"reset_otp,omitempty" json:"-"`
	ResetOTPExpiry time.Time `bson:"reset_otp_expiry,omitempty" json:"-"`
	RefreshToken   string    `bson:"refresh_token,omitempty" json:"-"`
	RefreshExpiry  time.Time `bson:"refresh_expiry,omitempty" json:"-"`
	LastLogin      time.Time `bson:"last_login,omitempty" json:"-"`
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
}
