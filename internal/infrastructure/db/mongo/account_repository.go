package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/SextoAndar/sexto-andar-auth/internal/core/domain"
)

const accountCollection = "accounts"

// AccountRepository is the MongoDB-backed credential store.
type AccountRepository struct {
	coll *mongo.Collection
}

func NewAccountRepository(db *mongo.Database) *AccountRepository {
	return &AccountRepository{coll: db.Collection(accountCollection)}
}

func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	if _, err := r.coll.InsertOne(ctx, account); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, duplicateError(err)
		}
		return nil, fmt.Errorf("insert account: %w", err)
	}
	return account, nil
}

// duplicateError maps a unique-index violation to the field that collided.
// The index name is embedded in the server error message.
func duplicateError(err error) error {
	if strings.Contains(err.Error(), "email_unique") {
		return domain.ErrDuplicateEmail
	}
	return domain.ErrDuplicateUsername
}

func (r *AccountRepository) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *AccountRepository) FindByUsername(ctx context.Context, username string) (*domain.Account, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *AccountRepository) findOne(ctx context.Context, filter bson.M) (*domain.Account, error) {
	var account domain.Account
	if err := r.coll.FindOne(ctx, filter).Decode(&account); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	return &account, nil
}

func (r *AccountRepository) UsernameTaken(ctx context.Context, username string) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"username": username}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count username: %w", err)
	}
	return n > 0, nil
}

func (r *AccountRepository) EmailTaken(ctx context.Context, email string) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"email": email}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count email: %w", err)
	}
	return n > 0, nil
}

// ListNonAdmins returns one page of USER and PROPERTY_OWNER accounts, oldest
// first, along with the total count. Picture bytes are excluded from the
// projection to keep list payloads small.
func (r *AccountRepository) ListNonAdmins(ctx context.Context, page, size int) ([]domain.Account, int64, error) {
	filter := bson.M{"role": bson.M{"$in": []domain.Role{domain.RoleUser, domain.RolePropertyOwner}}}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count accounts: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}}).
		SetSkip(int64((page - 1) * size)).
		SetLimit(int64(size)).
		SetProjection(bson.M{"profile_picture": 0})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list accounts: %w", err)
	}
	defer cursor.Close(ctx)

	var accounts []domain.Account
	if err := cursor.All(ctx, &accounts); err != nil {
		return nil, 0, fmt.Errorf("decode accounts: %w", err)
	}
	return accounts, total, nil
}

func (r *AccountRepository) CountAdmins(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"role": domain.RoleAdmin})
	if err != nil {
		return 0, fmt.Errorf("count admins: %w", err)
	}
	return n, nil
}

// DeleteAdmin removes an ADMIN account. Existence, role, and the last-admin
// count are re-checked inside a single transaction with the delete, so two
// concurrent deletions cannot both observe "not last admin" and jointly
// remove the final two admins.
func (r *AccountRepository) DeleteAdmin(ctx context.Context, id string) error {
	session, err := r.coll.Database().Client().StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		var target domain.Account
		if err := r.coll.FindOne(sc, bson.M{"_id": id, "role": domain.RoleAdmin}).Decode(&target); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, domain.ErrAccountNotFound
			}
			return nil, fmt.Errorf("find admin: %w", err)
		}

		n, err := r.coll.CountDocuments(sc, bson.M{"role": domain.RoleAdmin})
		if err != nil {
			return nil, fmt.Errorf("count admins: %w", err)
		}
		if n <= 1 {
			return nil, domain.ErrLastAdmin
		}

		if _, err := r.coll.DeleteOne(sc, bson.M{"_id": id}); err != nil {
			return nil, fmt.Errorf("delete admin: %w", err)
		}
		return nil, nil
	})
	return err
}

// DeleteUser removes a USER or PROPERTY_OWNER account. The role filter keeps
// a stale id from deleting an account that was promoted to ADMIN between the
// service-layer check and the delete.
func (r *AccountRepository) DeleteUser(ctx context.Context, id string) error {
	filter := bson.M{
		"_id":  id,
		"role": bson.M{"$in": []domain.Role{domain.RoleUser, domain.RolePropertyOwner}},
	}
	res, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func (r *AccountRepository) SetProfilePicture(ctx context.Context, id string, data []byte, contentType string) error {
	return r.updatePicture(ctx, id, bson.M{"$set": bson.M{
		"profile_picture":      data,
		"profile_picture_type": contentType,
	}})
}

func (r *AccountRepository) ClearProfilePicture(ctx context.Context, id string) error {
	return r.updatePicture(ctx, id, bson.M{"$unset": bson.M{
		"profile_picture":      "",
		"profile_picture_type": "",
	}})
}

func (r *AccountRepository) updatePicture(ctx context.Context, id string, update bson.M) error {
	res, err := r.coll.UpdateByID(ctx, id, update)
	if err != nil {
		return fmt.Errorf("update picture: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}
