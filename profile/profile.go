package profile

import (
	"encoding/json"
	"net/http"

	"unwind/db"
	"unwind/models"
	"unwind/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func GetProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	var user models.User
	err := db.UserCollection.FindOne(r.Context(), bson.M{"userid": userID}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "User not found.")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error!")
		return
	}
	utils.SendResponse(w, http.StatusOK, user, "Success", nil)
}

func UpdateProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	var input struct {
		FirstName string `json:"firstname"`
		LastName  string `json:"lastname"`
		Phone     string `json:"phone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input.")
		return
	}
	if input.FirstName == "" || input.LastName == "" || input.Phone == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "firstname, lastname and phone are required.")
		return
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.User
	err := db.UserCollection.FindOneAndUpdate(
		r.Context(),
		bson.M{"userid": userID},
		bson.M{"$set": bson.M{
			"firstname": input.FirstName,
			"lastname":  input.LastName,
			"phone":     input.Phone,
		}},
		opts,
	).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "User not found.")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error!")
		return
	}
	utils.SendResponse(w, http.StatusOK, updated, "Profile Updated Successfully.", nil)
}
