package blog

import (
	"context"
	"log"
	"net/http"
	"time"

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
	picDir    = "./static/blogpic"
	picPrefix = "/static/blogpic"
)

// CreateBlog publishes a post from a multipart form. Admin only.
func CreateBlog(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid form data.")
		return
	}

	title := r.FormValue("blog_title")
	description := r.FormValue("blog_description")
	dateStr := r.FormValue("blog_date")
	if title == "" || description == "" || dateStr == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing required fields.")
		return
	}
	date, err := booking.ParseDate(dateStr)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "blog_date must be in YYYY-MM-DD format.")
		return
	}

	saved, err := uploads.SaveImage(r, "blog_image", picDir, picPrefix)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Blog image upload failed.")
		return
	}

	post := models.Blog{
		BlogID:      "bl" + utils.GenerateID(10),
		Title:       title,
		Description: description,
		Date:        date,
		Image:       saved.URL,
		ImageID:     saved.ImageID,
		CreatedAt:   time.Now().UTC(),
	}
	if _, err := db.BlogsCollection.InsertOne(context.TODO(), post); err != nil {
		if derr := uploads.Delete(picDir, post.ImageID); derr != nil {
			log.Printf("Failed to clean up blog image %s: %v", post.ImageID, derr)
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create blog.")
		return
	}

	utils.SendResponse(w, http.StatusCreated, post, "Blog Created Successfully.", nil)
}

// ListBlogs returns a page of posts, newest first.
func ListBlogs(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	q := utils.ParseQueryOptions(r)

	opts := options.Find().
		SetSort(bson.M{"blog_date": -1}).
		SetSkip(int64((q.Page - 1) * q.Limit)).
		SetLimit(int64(q.Limit))
	cur, err := db.BlogsCollection.Find(r.Context(), bson.M{}, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error!")
		return
	}
	defer cur.Close(r.Context())

	var posts []models.Blog
	if err := cur.All(r.Context(), &posts); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error!")
		return
	}
	if len(posts) == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Blogs not found.")
		return
	}

	totalCount, err := db.BlogsCollection.CountDocuments(r.Context(), bson.M{})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error!")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success":    true,
		"status":     http.StatusOK,
		"message":    "Success",
		"data":       posts,
		"pagination": utils.NewPagination(q.Page, q.Limit, totalCount),
	})
}

func GetBlog(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var post models.Blog
	err := db.BlogsCollection.FindOne(r.Context(), bson.M{"blogid": ps.ByName("blogid")}).Decode(&post)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Blog not found.")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error!")
		return
	}
	utils.SendResponse(w, http.StatusOK, post, "Success", nil)
}

// UpdateBlog edits a post from a multipart form. Admin only.
func UpdateBlog(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	blogID := ps.ByName("blogid")

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid form data.")
		return
	}

	var existing models.Blog
	err := db.BlogsCollection.FindOne(r.Context(), bson.M{"blogid": blogID}).Decode(&existing)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Blog not found.")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error!")
		return
	}

	update := bson.M{}
	if v := r.FormValue("blog_title"); v != "" {
		update["blog_title"] = v
	}
	if v := r.FormValue("blog_description"); v != "" {
		update["blog_description"] = v
	}
	if v := r.FormValue("blog_date"); v != "" {
		date, err := booking.ParseDate(v)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "blog_date must be in YYYY-MM-DD format.")
			return
		}
		update["blog_date"] = date
	}

	if _, _, err := r.FormFile("blog_image"); err == nil {
		saved, err := uploads.SaveImage(r, "blog_image", picDir, picPrefix)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Blog image upload failed.")
			return
		}
		if derr := uploads.Delete(picDir, existing.ImageID); derr != nil {
			log.Printf("Failed to remove old blog image %s: %v", existing.ImageID, derr)
		}
		update["blog_image"] = saved.URL
		update["image_id"] = saved.ImageID
	}

	if len(update) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Nothing to update.")
		return
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Blog
	err = db.BlogsCollection.FindOneAndUpdate(
		r.Context(),
		bson.M{"blogid": blogID},
		bson.M{"$set": update},
		opts,
	).Decode(&updated)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error!")
		return
	}

	utils.SendResponse(w, http.StatusOK, updated, "Blog Updated Successfully.", nil)
}

// DeleteBlog removes a post and its stored images. Admin only.
func DeleteBlog(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	blogID := ps.ByName("blogid")

	var existing models.Blog
	err := db.BlogsCollection.FindOne(r.Context(), bson.M{"blogid": blogID}).Decode(&existing)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Blog not found.")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error!")
		return
	}

	if _, err := db.BlogsCollection.DeleteOne(r.Context(), bson.M{"blogid": blogID}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete blog.")
		return
	}
	if err := uploads.Delete(picDir, existing.ImageID); err != nil {
		log.Printf("Failed to remove blog image %s: %v", existing.ImageID, err)
	}

	utils.SendResponse(w, http.StatusOK, nil, "Blog Deleted Successfully.", nil)
}
