package booking

import (
	"context"
	"time"

	"unwind/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore implements Store on a bookings collection. Single-document
// atomicity comes from FindOneAndUpdate; no further coordination is done here.
type MongoStore struct {
	coll *mongo.Collection
}

func NewMongoStore(coll *mongo.Collection) *MongoStore {
	return &MongoStore{coll: coll}
}

func (m *MongoStore) Create(ctx context.Context, b models.Booking) error {
	_, err := m.coll.InsertOne(ctx, b)
	return err
}

func (m *MongoStore) Authoritative(ctx context.Context, roomID string, start, end time.Time) ([]models.Booking, error) {
	filter := bson.M{
		"isBooked":      true,
		"paymentStatus": models.StatusPaid,
		"start_date":    bson.M{"$lte": end},
		"end_date":      bson.M{"$gte": start},
	}
	if roomID != "" {
		filter["roomid"] = roomID
	}

	cur, err := m.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var bookings []models.Booking
	if err := cur.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (m *MongoStore) FindPending(ctx context.Context, userID, roomID string) (*models.Booking, error) {
	return m.findOne(ctx, bson.M{
		"userid":        userID,
		"roomid":        roomID,
		"paymentStatus": models.StatusPending,
	})
}

func (m *MongoStore) FindOwned(ctx context.Context, bookingID, userID string) (*models.Booking, error) {
	return m.findOne(ctx, bson.M{"bookingid": bookingID, "userid": userID})
}

func (m *MongoStore) FindPaidByUser(ctx context.Context, userID, email string) ([]models.Booking, error) {
	filter := bson.M{
		"userid":        userID,
		"isBooked":      true,
		"paymentStatus": models.StatusPaid,
	}
	if email != "" {
		filter["email"] = email
	}

	cur, err := m.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var bookings []models.Booking
	if err := cur.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (m *MongoStore) OverwritePending(ctx context.Context, bookingID string, upd PendingUpdate) (*models.Booking, error) {
	return m.findOneAndUpdate(ctx,
		bson.M{"bookingid": bookingID},
		bson.M{"$set": bson.M{
			"firstname":      upd.FirstName,
			"lastname":       upd.LastName,
			"phone_no":       upd.PhoneNo,
			"email":          upd.Email,
			"start_date":     upd.StartDate,
			"end_date":       upd.EndDate,
			"tot_amt":        upd.TotalAmount,
			"isBooked":       true,
			"paymentOrderId": upd.PaymentOrderID,
		}},
	)
}

func (m *MongoStore) SetPaymentResult(ctx context.Context, orderID, paymentID, status string) (*models.Booking, error) {
	return m.findOneAndUpdate(ctx,
		bson.M{"paymentOrderId": orderID},
		bson.M{"$set": bson.M{
			"paymentId":     paymentID,
			"paymentStatus": status,
		}},
	)
}

func (m *MongoStore) Release(ctx context.Context, bookingID, userID string) (*models.Booking, error) {
	return m.findOneAndUpdate(ctx,
		bson.M{"bookingid": bookingID, "userid": userID},
		bson.M{"$set": bson.M{
			"isBooked":      false,
			"paymentStatus": models.StatusPending,
		}},
	)
}

func (m *MongoStore) findOne(ctx context.Context, filter bson.M) (*models.Booking, error) {
	var b models.Booking
	err := m.coll.FindOne(ctx, filter).Decode(&b)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (m *MongoStore) findOneAndUpdate(ctx context.Context, filter, update bson.M) (*models.Booking, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var b models.Booking
	err := m.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&b)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// MongoCatalog implements RoomCatalog on the rooms collection.
type MongoCatalog struct {
	coll *mongo.Collection
}

func NewMongoCatalog(coll *mongo.Collection) *MongoCatalog {
	return &MongoCatalog{coll: coll}
}

func (m *MongoCatalog) FindByID(ctx context.Context, roomID string) (*models.Room, error) {
	var room models.Room
	err := m.coll.FindOne(ctx, bson.M{"roomid": roomID}).Decode(&room)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (m *MongoCatalog) List(ctx context.Context, roomType string, excludeIDs []string) ([]models.Room, error) {
	filter := bson.M{}
	if len(excludeIDs) > 0 {
		filter["roomid"] = bson.M{"$nin": excludeIDs}
	}
	if roomType != "" {
		filter["room_type"] = roomType
	}

	cur, err := m.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rooms []models.Room
	if err := cur.All(ctx, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}
