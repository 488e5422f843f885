package profile

import (
	"net/http"

	"unwind/booking"
	"unwind/db"
	"unwind/models"
	"unwind/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ListUsers returns a page of customer accounts. Admin only.
func ListUsers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	q := utils.ParseQueryOptions(r)
	skip := int64((q.Page - 1) * q.Limit)
	limit := int64(q.Limit)

	opts := options.Find().SetSkip(skip).SetLimit(limit)
	cur, err := db.UserCollection.Find(r.Context(), bson.M{"role": "user"}, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error!")
		return
	}
	defer cur.Close(r.Context())

	var users []models.User
	if err := cur.All(r.Context(), &users); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error!")
		return
	}
	if len(users) == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Users not found.")
		return
	}

	totalCount, err := db.UserCollection.CountDocuments(r.Context(), bson.M{"role": "user"})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error!")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success":    true,
		"status":     http.StatusOK,
		"message":    "Success",
		"data":       users,
		"pagination": utils.NewPagination(q.Page, q.Limit, totalCount),
	})
}

// DashboardCounts returns the admin dashboard numbers: registered customers,
// total rooms, and rooms free as of today.
func DashboardCounts(svc *booking.Service) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		userCount, err := db.UserCollection.CountDocuments(r.Context(), bson.M{"role": "user"})
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error!")
			return
		}
		roomCount, err := db.RoomsCollection.CountDocuments(r.Context(), bson.M{})
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error!")
			return
		}

		today := booking.StartOfToday().Format("2006-01-02")
		available, err := svc.AvailableRooms(r.Context(), today, today, "")
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error!")
			return
		}

		utils.SendResponse(w, http.StatusOK, utils.M{
			"userCount":          userCount,
			"roomCount":          roomCount,
			"availableRoomCount": len(available),
		}, "Success", nil)
	}
}
