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

const usersCollection = "users"

type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(usersCollection)}
}

type mongoUser struct {
	ID               primitive.ObjectID  `bson:"_id,omitempty"`
	Name             string              `bson:"name"`
	Email            string              `bson:"email"`
	PasswordHash     string              `bson:"password_hash"`
	Phone            string              `bson:"phone,omitempty"`
	Address          string              `bson:"address,omitempty"`
	Role             string              `bson:"role"`
	PartnerID        *primitive.ObjectID `bson:"partner_id,omitempty"`
	ResetTokenHash   string              `bson:"reset_token_hash,omitempty"`
	ResetTokenExpiry *time.Time          `bson:"reset_token_expiry,omitempty"`
	CreatedAt        time.Time           `bson:"created_at"`
	UpdatedAt        time.Time           `bson:"updated_at"`
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	doc := mongoUser{
		Name:         user.Name,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Phone:        user.Phone,
		Address:      user.Address,
		Role:         string(user.Role),
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
	if user.PartnerID != "" {
		pid, err := primitive.ObjectIDFromHex(user.PartnerID)
		if err != nil {
			return nil, fmt.Errorf("insert user: bad partner id: %w", err)
		}
		doc.PartnerID = &pid
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	created := *user
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *UserRepository) FindByPartnerID(ctx context.Context, partnerID string) (*domain.User, error) {
	pid, err := primitive.ObjectIDFromHex(partnerID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"partner_id": pid})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var mu mongoUser
	if err := r.coll.FindOne(ctx, filter).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return mu.toDomain(), nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id string, upd ports.ProfileUpdate) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.Name != nil && *upd.Name != "" {
		set["name"] = *upd.Name
	}
	if upd.Phone != nil {
		set["phone"] = *upd.Phone
	}
	if upd.Address != nil {
		set["address"] = *upd.Address
	}

	after := options.After
	var mu mongoUser
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(after),
	).Decode(&mu)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return mu.toDomain(), nil
}

func (r *UserRepository) SetResetToken(ctx context.Context, userID, tokenHash string, expiry time.Time) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return domain.ErrUserNotFound
	}

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{
			"reset_token_hash":   tokenHash,
			"reset_token_expiry": expiry,
			"updated_at":         time.Now().UTC(),
		}},
	)
	if err != nil {
		return fmt.Errorf("set reset token: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// ResetPassword matches the token hash and an unexpired expiry, replaces the
// password, and clears the token fields in one conditional update. A spent or
// expired token matches nothing.
func (r *UserRepository) ResetPassword(ctx context.Context, tokenHash, newPasswordHash string, now time.Time) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{
			"reset_token_hash":   tokenHash,
			"reset_token_expiry": bson.M{"$gt": now},
		},
		bson.M{
			"$set": bson.M{
				"password_hash": newPasswordHash,
				"updated_at":    now,
			},
			"$unset": bson.M{
				"reset_token_hash":   "",
				"reset_token_expiry": "",
			},
		},
	)
	if err != nil {
		return fmt.Errorf("reset password: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrInvalidResetToken
	}
	return nil
}

func (r *UserRepository) DeleteByPartnerID(ctx context.Context, partnerID string) error {
	pid, err := primitive.ObjectIDFromHex(partnerID)
	if err != nil {
		return domain.ErrUserNotFound
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"partner_id": pid})
	if err != nil {
		return fmt.Errorf("delete partner owner: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) CountByRole(ctx context.Context, role domain.Role) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"role": string(role)})
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

// EnsureIndexes creates the unique email index backing the registration
// uniqueness invariant.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "partner_id", Value: 1}}},
		{Keys: bson.D{{Key: "reset_token_hash", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func (mu *mongoUser) toDomain() *domain.User {
	u := &domain.User{
		ID:             mu.ID.Hex(),
		Name:           mu.Name,
		Email:          mu.Email,
		PasswordHash:   mu.PasswordHash,
		Phone:          mu.Phone,
		Address:        mu.Address,
		Role:           domain.Role(mu.Role),
		ResetTokenHash: mu.ResetTokenHash,
		CreatedAt:      mu.CreatedAt,
		UpdatedAt:      mu.UpdatedAt,
	}
	if mu.PartnerID != nil {
		u.PartnerID = mu.PartnerID.Hex()
	}
	if mu.ResetTokenExpiry != nil {
		u.ResetTokenExpiry = *mu.ResetTokenExpiry
	}
	return u
}
