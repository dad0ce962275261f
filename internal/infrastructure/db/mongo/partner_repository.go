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
)

const partnersCollection = "partners"

type PartnerRepository struct {
	coll *mongo.Collection
}

func NewPartnerRepository(db *mongo.Database) *PartnerRepository {
	return &PartnerRepository{coll: db.Collection(partnersCollection)}
}

// geoJSON stores the location in GeoJSON Point form so the 2dsphere index
// can serve $nearSphere queries. Coordinate order is [longitude, latitude].
type geoJSON struct {
	Type        string    `bson:"type"`
	Coordinates []float64 `bson:"coordinates"`
}

type mongoPartner struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Address   string             `bson:"address"`
	Location  geoJSON            `bson:"location"`
	Capacity  int                `bson:"capacity"`
	Base      float64            `bson:"base"`
	PerKg     float64            `bson:"per_kg"`
	PerHour   float64            `bson:"per_hour"`
	Approved  bool               `bson:"approved"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (r *PartnerRepository) Create(ctx context.Context, p *domain.Partner) (*domain.Partner, error) {
	doc := mongoPartner{
		Name:    p.Name,
		Address: p.Address,
		Location: geoJSON{
			Type:        "Point",
			Coordinates: []float64{p.Location.Longitude, p.Location.Latitude},
		},
		Capacity:  p.Capacity,
		Base:      p.RateCard.Base,
		PerKg:     p.RateCard.PerKg,
		PerHour:   p.RateCard.PerHour,
		Approved:  false,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert partner: %w", err)
	}

	created := *p
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	created.Approved = false
	return &created, nil
}

func (r *PartnerRepository) FindByID(ctx context.Context, id string) (*domain.Partner, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrPartnerNotFound
	}

	var mp mongoPartner
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mp); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPartnerNotFound
		}
		return nil, fmt.Errorf("find partner: %w", err)
	}
	return mp.toDomain(), nil
}

// FindNearby runs a $nearSphere query against the 2dsphere index. The
// approved filter guarantees unapproved partners never surface; $nearSphere
// returns documents nearest-first.
func (r *PartnerRepository) FindNearby(ctx context.Context, lng, lat float64, radiusMeters int) ([]*domain.Partner, error) {
	filter := bson.M{
		"approved": true,
		"location": bson.M{
			"$nearSphere": bson.M{
				"$geometry": bson.M{
					"type":        "Point",
					"coordinates": []float64{lng, lat},
				},
				"$maxDistance": radiusMeters,
			},
		},
	}

	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find nearby partners: %w", err)
	}
	defer cur.Close(ctx)

	return decodePartners(ctx, cur)
}

func (r *PartnerRepository) ListByApproval(ctx context.Context, approved bool) ([]*domain.Partner, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{"approved": approved}, opts)
	if err != nil {
		return nil, fmt.Errorf("list partners: %w", err)
	}
	defer cur.Close(ctx)

	return decodePartners(ctx, cur)
}

// Approve flips the approval flag in one conditional update so concurrent
// admin actions cannot race a read-modify-write. Re-approving matches the
// document and changes nothing.
func (r *PartnerRepository) Approve(ctx context.Context, id string) (*domain.Partner, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrPartnerNotFound
	}

	var mp mongoPartner
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"approved": true, "updated_at": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&mp)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPartnerNotFound
		}
		return nil, fmt.Errorf("approve partner: %w", err)
	}
	return mp.toDomain(), nil
}

func (r *PartnerRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrPartnerNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete partner: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPartnerNotFound
	}
	return nil
}

func (r *PartnerRepository) CountAll(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count partners: %w", err)
	}
	return n, nil
}

func (r *PartnerRepository) CountByApproval(ctx context.Context, approved bool) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"approved": approved})
	if err != nil {
		return 0, fmt.Errorf("count partners: %w", err)
	}
	return n, nil
}

// EnsureIndexes creates the 2dsphere index required by $nearSphere.
func (r *PartnerRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "location", Value: "2dsphere"}}},
		{Keys: bson.D{{Key: "approved", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func decodePartners(ctx context.Context, cur *mongo.Cursor) ([]*domain.Partner, error) {
	var out []*domain.Partner
	for cur.Next(ctx) {
		var mp mongoPartner
		if err := cur.Decode(&mp); err != nil {
			return nil, fmt.Errorf("decode partner: %w", err)
		}
		out = append(out, mp.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("partner cursor: %w", err)
	}
	return out, nil
}

func (mp *mongoPartner) toDomain() *domain.Partner {
	p := &domain.Partner{
		ID:       mp.ID.Hex(),
		Name:     mp.Name,
		Address:  mp.Address,
		Capacity: mp.Capacity,
		RateCard: domain.RateCard{
			Base:    mp.Base,
			PerKg:   mp.PerKg,
			PerHour: mp.PerHour,
		},
		Approved:  mp.Approved,
		CreatedAt: mp.CreatedAt,
		UpdatedAt: mp.UpdatedAt,
	}
	if len(mp.Location.Coordinates) == 2 {
		p.Location = domain.GeoPoint{
			Longitude: mp.Location.Coordinates[0],
			Latitude:  mp.Location.Coordinates[1],
		}
	}
	return p
}
