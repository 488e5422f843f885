package rooms

import (
	"context"
	"log"
	"net/http"
	"strconv"

	"unwind/booking"
	"unwind/db"
	"unwind/models"
	"unwind/uploads"
	"unwind/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	picDir    = "./static/roompic"
	picPrefix = "/static/roompic"
)

// AddRoom creates a room from a multipart form. Admin only.
func AddRoom(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid form data.")
		return
	}

	room := models.Room{
		RoomNo:      r.FormValue("room_no"),
		RoomType:    r.FormValue("room_type"),
		Description: r.FormValue("room_description"),
		Size:        r.FormValue("room_size"),
		Beds:        r.FormValue("room_beds"),
	}
	if room.RoomNo == "" || room.RoomType == "" || room.Description == "" ||
		room.Size == "" || room.Beds == "" || r.FormValue("room_amount") == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing required fields.")
		return
	}
	amount, err := strconv.ParseFloat(r.FormValue("room_amount"), 64)
	if err != nil || amount <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "room_amount must be a positive number.")
		return
	}
	room.Amount = amount

	err = db.RoomsCollection.FindOne(context.TODO(), bson.M{"room_no": room.RoomNo}).Err()
	if err == nil {
		utils.RespondWithError(w, http.StatusConflict, "Room number already exists.")
		return
	} else if err != mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error!")
		return
	}

	saved, err := uploads.SaveImage(r, "room_image", picDir, picPrefix)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Room image upload failed.")
		return
	}
	room.RoomID = "r" + utils.GenerateID(10)
	room.Image = saved.URL
	room.ImageID = saved.ImageID

	if _, err := db.RoomsCollection.InsertOne(context.TODO(), room); err != nil {
		if derr := uploads.Delete(picDir, room.ImageID); derr != nil {
			log.Printf("Failed to clean up room image %s: %v", room.ImageID, derr)
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to add room.")
		return
	}

	utils.SendResponse(w, http.StatusCreated, room, "Room Added Successfully.", nil)
}

// ListRooms returns a page of rooms, optionally filtered by type. When
// start_date and end_date query parameters are present it instead returns
// the rooms free for that range, availability-checked through the booking
// core.
func ListRooms(svc *booking.Service) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		q := utils.ParseQueryOptions(r)

		start := r.URL.Query().Get("start_date")
		end := r.URL.Query().Get("end_date")
		if start != "" && end != "" {
			free, err := svc.AvailableRooms(r.Context(), start, end, q.RoomType)
			if err != nil {
				utils.RespondWithError(w, http.StatusBadRequest, "Invalid date range.")
				return
			}
			if len(free) == 0 {
				utils.RespondWithError(w, http.StatusNotFound, "No available rooms found.")
				return
			}
			utils.SendResponse(w, http.StatusOK, free, "Success", nil)
			return
		}

		listRooms(w, r, q)
	}
}

func listRooms(w http.ResponseWriter, r *http.Request, q utils.QueryOptions) {

	filter := bson.M{}
	if q.RoomType != "" {
		filter["room_type"] = q.RoomType
	}

	opts := options.Find().
		SetSkip(int64((q.Page - 1) * q.Limit)).
		SetLimit(int64(q.Limit))
	cur, err := db.RoomsCollection.Find(r.Context(), filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error!")
		return
	}
	defer cur.Close(r.Context())

	var rooms []models.Room
	if err := cur.All(r.Context(), &rooms); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error!")
		return
	}
	if len(rooms) == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Rooms not found.")
		return
	}

	totalCount, err := db.RoomsCollection.CountDocuments(r.Context(), filter)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error!")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success":    true,
		"status":     http.StatusOK,
		"message":    "Success",
		"data":       rooms,
		"pagination": utils.NewPagination(q.Page, q.Limit, totalCount),
	})
}

func GetRoom(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var room models.Room
	err := db.RoomsCollection.FindOne(r.Context(), bson.M{"roomid": ps.ByName("roomid")}).Decode(&room)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Room not found.")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error!")
		return
	}
	utils.SendResponse(w, http.StatusOK, room, "Success", nil)
}

// UpdateRoom edits a room from a multipart form. The image is optional; when
// a new one is uploaded the old files are removed from disk. Admin only.
func UpdateRoom(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	roomID := ps.ByName("roomid")

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid form data.")
		return
	}

	var existing models.Room
	err := db.RoomsCollection.FindOne(r.Context(), bson.M{"roomid": roomID}).Decode(&existing)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Room not found.")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error!")
		return
	}

	update := bson.M{}
	for form, field := range map[string]string{
		"room_no":          "room_no",
		"room_type":        "room_type",
		"room_description": "room_description",
		"room_size":        "room_size",
		"room_beds":        "room_beds",
	} {
		if v := r.FormValue(form); v != "" {
			update[field] = v
		}
	}
	if v := r.FormValue("room_amount"); v != "" {
		amount, err := strconv.ParseFloat(v, 64)
		if err != nil || amount <= 0 {
			utils.RespondWithError(w, http.StatusBadRequest, "room_amount must be a positive number.")
			return
		}
		update["room_amount"] = amount
	}

	if no, ok := update["room_no"]; ok && no != existing.RoomNo {
		err := db.RoomsCollection.FindOne(r.Context(), bson.M{"room_no": no}).Err()
		if err == nil {
			utils.RespondWithError(w, http.StatusConflict, "Room number already exists.")
			return
		} else if err != mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error!")
			return
		}
	}

	if _, _, err := r.FormFile("room_image"); err == nil {
		saved, err := uploads.SaveImage(r, "room_image", picDir, picPrefix)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Room image upload failed.")
			return
		}
		if derr := uploads.Delete(picDir, existing.ImageID); derr != nil {
			log.Printf("Failed to remove old room image %s: %v", existing.ImageID, derr)
		}
		update["room_image"] = saved.URL
		update["image_id"] = saved.ImageID
	}

	if len(update) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Nothing to update.")
		return
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Room
	err = db.RoomsCollection.FindOneAndUpdate(
		r.Context(),
		bson.M{"roomid": roomID},
		bson.M{"$set": update},
		opts,
	).Decode(&updated)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error!")
		return
	}

	utils.SendResponse(w, http.StatusOK, updated, "Room Updated Successfully.", nil)
}

// DeleteRoom removes a room and its stored images. Admin only.
func DeleteRoom(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	roomID := ps.ByName("roomid")

	var existing models.Room
	err := db.RoomsCollection.FindOne(r.Context(), bson.M{"roomid": roomID}).Decode(&existing)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Room not found.")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error!")
		return
	}

	if _, err := db.RoomsCollection.DeleteOne(r.Context(), bson.M{"roomid": roomID}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete room.")
		return
	}
	if err := uploads.Delete(picDir, existing.ImageID); err != nil {
		log.Printf("Failed to remove room image %s: %v", existing.ImageID, err)
	}

	utils.SendResponse(w, http.StatusOK, nil, "Room Deleted Successfully.", nil)
}
