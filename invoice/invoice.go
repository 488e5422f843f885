// Package invoice renders a guest's paid bookings as a PDF statement and can
// deliver it by email.
package invoice

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"unwind/booking"
	"unwind/db"
	"unwind/mailer"
	"unwind/models"
	"unwind/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"
)

const dateLayout = "2006-01-02"

// BuildPDF renders an invoice for the given guest and their paid bookings.
func BuildPDF(user models.User, views []booking.BookingView) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Booking Invoice")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Guest: %s %s", user.FirstName, user.LastName))
	pdf.Ln(6)
	pdf.Cell(0, 8, fmt.Sprintf("Email: %s", user.Email))
	pdf.Ln(6)
	pdf.Cell(0, 8, fmt.Sprintf("Issued: %s", time.Now().UTC().Format(dateLayout)))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(35, 8, "Booking", "1", 0, "", false, 0, "")
	pdf.CellFormat(35, 8, "Room", "1", 0, "", false, 0, "")
	pdf.CellFormat(30, 8, "Check-in", "1", 0, "", false, 0, "")
	pdf.CellFormat(30, 8, "Check-out", "1", 0, "", false, 0, "")
	pdf.CellFormat(30, 8, "Amount", "1", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	var total float64
	var lastPaymentID string
	for _, v := range views {
		room := "-"
		if v.Room != nil {
			room = fmt.Sprintf("%s (%s)", v.Room.RoomNo, v.Room.RoomType)
		}
		pdf.CellFormat(35, 8, v.BookingID, "1", 0, "", false, 0, "")
		pdf.CellFormat(35, 8, room, "1", 0, "", false, 0, "")
		pdf.CellFormat(30, 8, v.StartDate.Format(dateLayout), "1", 0, "", false, 0, "")
		pdf.CellFormat(30, 8, v.EndDate.Format(dateLayout), "1", 0, "", false, 0, "")
		pdf.CellFormat(30, 8, fmt.Sprintf("%.2f", v.TotalAmount), "1", 1, "R", false, 0, "")
		total += v.TotalAmount
		if v.PaymentID != "" {
			lastPaymentID = v.PaymentID
		}
	}

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(130, 8, "Total", "1", 0, "", false, 0, "")
	pdf.CellFormat(30, 8, fmt.Sprintf("%.2f", total), "1", 1, "R", false, 0, "")

	if lastPaymentID != "" {
		qrPNG, err := qrcode.Encode(lastPaymentID, qrcode.Medium, 256)
		if err != nil {
			return nil, fmt.Errorf("failed to generate QR code: %w", err)
		}
		imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
		pdf.ImageOptions("qr", 160, pdf.GetY()+10, 35, 35, false, imageOpts, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func collect(ctx context.Context, svc *booking.Service, userID string) (models.User, []booking.BookingView, error) {
	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user); err != nil {
		return models.User{}, nil, err
	}
	views, err := svc.UserBookings(ctx, userID, user.Email)
	if err != nil {
		return models.User{}, nil, err
	}
	return user, views, nil
}

// DownloadHandler streams the caller's invoice as a PDF attachment.
func DownloadHandler(svc *booking.Service) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		userID := utils.GetUserIDFromRequest(r)

		user, views, err := collect(r.Context(), svc, userID)
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to prepare invoice.")
			return
		}
		if len(views) == 0 {
			utils.RespondWithError(w, http.StatusNotFound, "No paid bookings found.")
			return
		}

		data, err := BuildPDF(user, views)
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate PDF.")
			return
		}

		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", "attachment; filename=invoice-"+userID+".pdf")
		w.WriteHeader(http.StatusOK)
		w.Write(data)
	}
}

// EmailHandler mails the caller's invoice to their account address.
func EmailHandler(svc *booking.Service, mail *mailer.Mailer) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		userID := utils.GetUserIDFromRequest(r)

		user, views, err := collect(r.Context(), svc, userID)
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to prepare invoice.")
			return
		}
		if len(views) == 0 {
			utils.RespondWithError(w, http.StatusNotFound, "No paid bookings found.")
			return
		}

		data, err := BuildPDF(user, views)
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate PDF.")
			return
		}

		body := fmt.Sprintf("<p>Hi %s,</p><p>Please find your booking invoice attached.</p>", user.FirstName)
		if err := mail.SendWithAttachment(user.Email, "Your Booking Invoice", body, "invoice.pdf", data); err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Error sending the email.")
			return
		}

		utils.SendResponse(w, http.StatusOK, nil, "Invoice emailed successfully.", nil)
	}
}
