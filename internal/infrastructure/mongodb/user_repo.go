package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/graphauth/graphauth/internal/domain"
)

const usersCollection = "users"

// userDoc is the stored shape of a user. The password field carries the
// bcrypt hash, never plaintext.
type userDoc struct {
	ID       bson.ObjectID `bson:"_id,omitempty"`
	Email    string        `bson:"email"`
	Password string        `bson:"password,omitempty"`
}

func (d userDoc) toDomain() domain.User {
	return domain.User{
		ID:           d.ID.Hex(),
		Email:        d.Email,
		PasswordHash: d.Password,
	}
}

type UserRepo struct {
	coll *mongo.Collection
}

func NewUserRepo(db *mongo.Database) *UserRepo {
	return &UserRepo{coll: db.Collection(usersCollection)}
}

// EnsureIndexes creates the unique email index. This index, not the
// application-level pre-check, is what actually enforces email uniqueness.
func (r *UserRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return domain.ErrDBUnavailable(err)
	}
	return nil
}

// excludePassword keeps the hash out of every projection that did not ask
// for it.
var excludePassword = bson.D{{Key: "password", Value: 0}}

func (r *UserRepo) GetByEmail(ctx context.Context, email string, withPassword bool) (domain.User, error) {
	opts := options.FindOne()
	if !withPassword {
		opts = opts.SetProjection(excludePassword)
	}

	var doc userDoc
	err := r.coll.FindOne(ctx, bson.D{{Key: "email", Value: email}}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.User{}, domain.ErrUserNotFound()
		}
		return domain.User{}, domain.ErrDBUnavailable(err)
	}
	return doc.toDomain(), nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (domain.User, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return domain.User{}, domain.ErrUserNotFound()
	}

	var doc userDoc
	err = r.coll.FindOne(ctx,
		bson.D{{Key: "_id", Value: oid}},
		options.FindOne().SetProjection(excludePassword),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.User{}, domain.ErrUserNotFound()
		}
		return domain.User{}, domain.ErrDBUnavailable(err)
	}
	return doc.toDomain(), nil
}

func (r *UserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	res, err := r.coll.InsertOne(ctx, userDoc{
		Email:    u.Email,
		Password: u.PasswordHash,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.User{}, domain.ErrEmailAlreadyExists()
		}
		return domain.User{}, domain.ErrDBUnavailable(err)
	}

	oid, ok := res.InsertedID.(bson.ObjectID)
	if !ok {
		return domain.User{}, domain.ErrInternal(errors.New("unexpected inserted id type"))
	}

	return domain.User{ID: oid.Hex(), Email: u.Email}, nil
}

func (r *UserRepo) UpdatePasswordHash(ctx context.Context, userID string, newHash string) error {
	oid, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return domain.ErrUserNotFound()
	}

	res, err := r.coll.UpdateByID(ctx, oid,
		bson.D{{Key: "$set", Value: bson.D{{Key: "password", Value: newHash}}}})
	if err != nil {
		return domain.ErrDBUnavailable(err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound()
	}
	return nil
}

func (r *UserRepo) List(ctx context.Context) ([]domain.User, error) {
	cur, err := r.coll.Find(ctx, bson.D{}, options.Find().SetProjection(excludePassword))
	if err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}

	var docs []userDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}

	out := make([]domain.User, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}
