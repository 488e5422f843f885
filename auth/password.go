package auth

import (
	"context"
	"encoding/json"
	"log"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"unwind/db"
	"unwind/mailer"
	"unwind/rdx"
	"unwind/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

const otpTTL = time.Hour

func GenerateOTP(length int) string {
	digits := "0123456789"
	var otp strings.Builder
	for i := 0; i < length; i++ {
		otp.WriteByte(digits[rand.Intn(len(digits))])
	}
	return otp.String()
}

// ForgotPassword emails a password-reset OTP. The OTP is cached in Redis
// with a one-hour expiry and mirrored on the user document.
func ForgotPassword(mail *mailer.Mailer) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		var input struct {
			Email string `json:"email"`
		}
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Email == "" {
			utils.RespondWithError(w, http.StatusBadRequest, "Email is required.")
			return
		}

		err := db.UserCollection.FindOne(context.TODO(), bson.M{"email": input.Email}).Err()
		if err != nil {
			utils.RespondWithError(w, http.StatusNotFound, "User not found.")
			return
		}

		otp := GenerateOTP(4)
		if err := rdx.SetWithExpiry("otp:"+otp, input.Email, otpTTL); err != nil {
			log.Printf("Failed to cache OTP: %v", err)
		}
		_, err = db.UserCollection.UpdateOne(
			context.TODO(),
			bson.M{"email": input.Email},
			bson.M{"$set": bson.M{
				"reset_otp":        otp,
				"reset_otp_expiry": time.Now().Add(otpTTL),
			}},
		)
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error!")
			return
		}

		body := "Use the following code to reset your password: " + otp
		if err := mail.Send(input.Email, "Password Reset", body); err != nil {
			log.Printf("Failed to send reset email: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Error sending the email.")
			return
		}

		utils.SendResponse(w, http.StatusOK, nil, "Password reset email sent.", nil)
	}
}

// CheckResetOTP validates a reset code before the client shows the
// new-password form.
func CheckResetOTP(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	otp := ps.ByName("otp")

	err := db.UserCollection.FindOne(context.TODO(), bson.M{
		"reset_otp":        otp,
		"reset_otp_expiry": bson.M{"$gt": time.Now()},
	}).Err()
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid or expired otp.")
		return
	}
	utils.SendResponse(w, http.StatusOK, map[string]string{"otp": otp}, "Please reset your password.", nil)
}

func ResetPassword(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		OTP      string `json:"otp"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil ||
		input.OTP == "" || input.Password == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "otp and password are required.")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error!")
		return
	}

	result, err := db.UserCollection.UpdateOne(
		context.TODO(),
		bson.M{
			"reset_otp":        input.OTP,
			"reset_otp_expiry": bson.M{"$gt": time.Now()},
		},
		bson.M{
			"$set":   bson.M{"password": string(hashedPassword)},
			"$unset": bson.M{"reset_otp": "", "reset_otp_expiry": ""},
		},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error!")
		return
	}
	if result.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid or expired otp.")
		return
	}

	rdx.RdxDel("otp:" + input.OTP)
	utils.SendResponse(w, http.StatusOK, nil, "Password reset successful.", nil)
}

func ChangePassword(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	var input struct {
		OldPassword string `json:"oldpassword"`
		NewPassword string `json:"newpassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil ||
		input.OldPassword == "" || input.NewPassword == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "oldpassword and newpassword are required.")
		return
	}
	if strings.TrimSpace(input.OldPassword) == "" || strings.TrimSpace(input.NewPassword) == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Space is not allowed.")
		return
	}

	var user struct {
		Password string `bson:"password"`
	}
	err := db.UserCollection.FindOne(context.TODO(), bson.M{"userid": userID}).Decode(&user)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "User not found.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.OldPassword)); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid old password.")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error!")
		return
	}
	_, err = db.UserCollection.UpdateOne(
		context.TODO(),
		bson.M{"userid": userID},
		bson.M{"$set": bson.M{"password": string(hashedPassword)}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error!")
		return
	}

	utils.SendResponse(w, http.StatusOK, nil, "Password Changed Successfully.", nil)
}
