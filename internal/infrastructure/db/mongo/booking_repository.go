package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/storo/booking-api/internal/core/domain"
	"github.com/storo/booking-api/internal/core/ports"
)

const bookingsCollection = "bookings"

type BookingRepository struct {
	coll *mongo.Collection
}

func NewBookingRepository(db *mongo.Database) *BookingRepository {
	return &BookingRepository{coll: db.Collection(bookingsCollection)}
}

type mongoBooking struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	UserID         primitive.ObjectID `bson:"user_id"`
	PartnerID      primitive.ObjectID `bson:"partner_id"`
	WeightKg       float64            `bson:"weight_kg"`
	StartAt        time.Time          `bson:"start_at"`
	EndAt          time.Time          `bson:"end_at"`
	Price          float64            `bson:"price"`
	Status         string             `bson:"status"`
	PaymentStatus  string             `bson:"payment_status"`
	IdempotencyKey string             `bson:"idempotency_key,omitempty"`
	CreatedAt      time.Time          `bson:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at"`
}

// confirmedStatuses filters listings and stats to bookings a partner actually
// serves; pending bookings are still awaiting payment.
var confirmedStatuses = bson.A{string(domain.BookingBooked), string(domain.BookingCollected)}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	uid, err := primitive.ObjectIDFromHex(b.UserID)
	if err != nil {
		return nil, fmt.Errorf("insert booking: bad user id: %w", err)
	}
	pid, err := primitive.ObjectIDFromHex(b.PartnerID)
	if err != nil {
		return nil, fmt.Errorf("insert booking: bad partner id: %w", err)
	}

	doc := mongoBooking{
		UserID:         uid,
		PartnerID:      pid,
		WeightKg:       b.WeightKg,
		StartAt:        b.StartAt,
		EndAt:          b.EndAt,
		Price:          b.Price,
		Status:         string(b.Status),
		PaymentStatus:  string(b.PaymentStatus),
		IdempotencyKey: b.IdempotencyKey,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert booking: %w", err)
	}

	created := *b
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id string) (*domain.Booking, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrBookingNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *BookingRepository) FindByIdempotencyKey(ctx context.Context, userID, key string) (*domain.Booking, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, domain.ErrBookingNotFound
	}
	return r.findOne(ctx, bson.M{"user_id": uid, "idempotency_key": key})
}

func (r *BookingRepository) findOne(ctx context.Context, filter bson.M) (*domain.Booking, error) {
	var mb mongoBooking
	if err := r.coll.FindOne(ctx, filter).Decode(&mb); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, fmt.Errorf("find booking: %w", err)
	}
	return mb.toDomain(), nil
}

// UpdateStatus applies the transition only if the document still holds the
// expected current status. A concurrent transition that got there first makes
// the filter match nothing.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id string, from, to domain.BookingStatus) (*domain.Booking, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrBookingNotFound
	}

	var mb mongoBooking
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid, "status": string(from)},
		bson.M{"$set": bson.M{"status": string(to), "updated_at": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&mb)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// Either the booking is gone or its status moved under us.
			if _, findErr := r.FindByID(ctx, id); findErr != nil {
				return nil, findErr
			}
			return nil, domain.ErrInvalidTransition
		}
		return nil, fmt.Errorf("update booking status: %w", err)
	}
	return mb.toDomain(), nil
}

// ConfirmPayment marks the booking paid and promotes pending to booked. Both
// writes are single conditional updates, so replays settle on the same state.
func (r *BookingRepository) ConfirmPayment(ctx context.Context, id string) (*domain.Booking, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrBookingNotFound
	}

	now := time.Now().UTC()
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"payment_status": string(domain.PaymentPaid), "updated_at": now}},
	)
	if err != nil {
		return nil, fmt.Errorf("confirm payment: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrBookingNotFound
	}

	_, err = r.coll.UpdateOne(ctx,
		bson.M{"_id": oid, "status": string(domain.BookingPending)},
		bson.M{"$set": bson.M{"status": string(domain.BookingBooked), "updated_at": now}},
	)
	if err != nil {
		return nil, fmt.Errorf("confirm payment: promote status: %w", err)
	}

	return r.FindByID(ctx, id)
}

// ListForUser joins each booking with its partner's display fields via
// $lookup, newest first.
func (r *BookingRepository) ListForUser(ctx context.Context, userID string) ([]*ports.UserBooking, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"user_id": uid,
			"status":  bson.M{"$in": confirmedStatuses},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         partnersCollection,
			"localField":   "partner_id",
			"foreignField": "_id",
			"as":           "partner",
		}}},
		{{Key: "$unwind", Value: bson.M{"path": "$partner", "preserveNullAndEmptyArrays": true}}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("list user bookings: %w", err)
	}
	defer cur.Close(ctx)

	var out []*ports.UserBooking
	for cur.Next(ctx) {
		var row struct {
			mongoBooking `bson:",inline"`
			Partner      struct {
				Name    string `bson:"name"`
				Address string `bson:"address"`
			} `bson:"partner"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode user booking: %w", err)
		}
		out = append(out, &ports.UserBooking{
			Booking:        *row.mongoBooking.toDomain(),
			PartnerName:    row.Partner.Name,
			PartnerAddress: row.Partner.Address,
		})
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("user bookings cursor: %w", err)
	}
	return out, nil
}

// ListForPartner joins each booking with the traveler's contact fields,
// bounded by creation timestamp, newest first.
func (r *BookingRepository) ListForPartner(ctx context.Context, partnerID string, rng ports.BookingRange) ([]*ports.PartnerBooking, error) {
	pid, err := primitive.ObjectIDFromHex(partnerID)
	if err != nil {
		return nil, domain.ErrPartnerNotFound
	}

	match := bson.M{
		"partner_id": pid,
		"status":     bson.M{"$in": confirmedStatuses},
	}
	if createdAt := rangeFilter(rng); len(createdAt) > 0 {
		match["created_at"] = createdAt
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         usersCollection,
			"localField":   "user_id",
			"foreignField": "_id",
			"as":           "user",
		}}},
		{{Key: "$unwind", Value: bson.M{"path": "$user", "preserveNullAndEmptyArrays": true}}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("list partner bookings: %w", err)
	}
	defer cur.Close(ctx)

	var out []*ports.PartnerBooking
	for cur.Next(ctx) {
		var row struct {
			mongoBooking `bson:",inline"`
			User         struct {
				Name  string `bson:"name"`
				Email string `bson:"email"`
				Phone string `bson:"phone"`
			} `bson:"user"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode partner booking: %w", err)
		}
		out = append(out, &ports.PartnerBooking{
			Booking:   *row.mongoBooking.toDomain(),
			UserName:  row.User.Name,
			UserEmail: row.User.Email,
			UserPhone: row.User.Phone,
		})
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("partner bookings cursor: %w", err)
	}
	return out, nil
}

// Stats aggregates confirmed bookings in a single $group pass. An empty
// result set yields all-zero stats.
func (r *BookingRepository) Stats(ctx context.Context, partnerID string, rng ports.BookingRange) (*ports.BookingStats, error) {
	pid, err := primitive.ObjectIDFromHex(partnerID)
	if err != nil {
		return nil, domain.ErrPartnerNotFound
	}

	match := bson.M{
		"partner_id": pid,
		"status":     bson.M{"$in": confirmedStatuses},
	}
	if createdAt := rangeFilter(rng); len(createdAt) > 0 {
		match["created_at"] = createdAt
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"count": bson.M{"$sum": 1},
			"total": bson.M{"$sum": "$price"},
			"paid": bson.M{"$sum": bson.M{"$cond": bson.A{
				bson.M{"$eq": bson.A{"$payment_status", string(domain.PaymentPaid)}}, 1, 0,
			}}},
			"pending": bson.M{"$sum": bson.M{"$cond": bson.A{
				bson.M{"$eq": bson.A{"$payment_status", string(domain.PaymentPending)}}, 1, 0,
			}}},
		}}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("booking stats: %w", err)
	}
	defer cur.Close(ctx)

	stats := &ports.BookingStats{}
	if cur.Next(ctx) {
		var row struct {
			Count   int64   `bson:"count"`
			Total   float64 `bson:"total"`
			Paid    int64   `bson:"paid"`
			Pending int64   `bson:"pending"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode booking stats: %w", err)
		}
		stats.Count = row.Count
		stats.TotalEarnings = row.Total
		stats.PaidCount = row.Paid
		stats.PendingPaymentCount = row.Pending
		if row.Count > 0 {
			stats.AverageValue = row.Total / float64(row.Count)
		}
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("booking stats cursor: %w", err)
	}
	return stats, nil
}

// DeleteOwned removes the booking only when it belongs to the requesting
// user and is still pending, in one operation, so non-owners cannot learn
// whether a booking exists. Confirmed bookings are immutable history.
func (r *BookingRepository) DeleteOwned(ctx context.Context, id, userID string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrBookingNotFound
	}
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return domain.ErrBookingNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{
		"_id":     oid,
		"user_id": uid,
		"status":  string(domain.BookingPending),
	})
	if err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrBookingNotFound
	}
	return nil
}

// EnsureIndexes creates the query-path indexes for the bookings collection.
func (r *BookingRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "partner_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{
			Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "idempotency_key", Value: 1}},
			Options: options.Index().SetUnique(true).SetPartialFilterExpression(
				bson.M{"idempotency_key": bson.M{"$type": "string"}},
			),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func rangeFilter(rng ports.BookingRange) bson.M {
	createdAt := bson.M{}
	if !rng.From.IsZero() {
		createdAt["$gte"] = rng.From
	}
	if !rng.To.IsZero() {
		createdAt["$lte"] = rng.To
	}
	return createdAt
}

func (mb *mongoBooking) toDomain() *domain.Booking {
	return &domain.Booking{
		ID:             mb.ID.Hex(),
		UserID:         mb.UserID.Hex(),
		PartnerID:      mb.PartnerID.Hex(),
		WeightKg:       mb.WeightKg,
		StartAt:        mb.StartAt,
		EndAt:          mb.EndAt,
		Price:          mb.Price,
		Status:         domain.BookingStatus(mb.Status),
		PaymentStatus:  domain.PaymentStatus(mb.PaymentStatus),
		IdempotencyKey: mb.IdempotencyKey,
		CreatedAt:      mb.CreatedAt,
		UpdatedAt:      mb.UpdatedAt,
	}
}
