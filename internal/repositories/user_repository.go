package repositories

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"savaan_backend/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrUserNotFound is the store-level sentinel for lookup misses.
var ErrUserNotFound = errors.New("user not found")

// ErrNoDatabase is returned by Ping on stores that hold data in process
// memory only, so health reporting can tell them apart from a live database.
var ErrNoDatabase = errors.New("no database configured")

// DuplicateKeyError reports which unique identity field collided. Field holds
// the human-readable label used in client messages ("Aadhar number" etc.).
type DuplicateKeyError struct {
	Field string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate key on %s", e.Field)
}

// UserRepository is the persistence boundary for registrant records. All
// uniqueness enforcement happens here: the create either succeeds atomically
// or fails with DuplicateKeyError, never leaving a partial record.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByMobile(ctx context.Context, mobile string) (*models.User, error)
	FindByAnyIdentity(ctx context.Context, q models.IdentityQuery) (*models.User, error)
	FindByDepartmentAndIdentity(ctx context.Context, departmentID, emailOrMobile string) (*models.User, error)
	FindAll(ctx context.Context) ([]models.User, error)
	UpdatePassword(ctx context.Context, id, newHash string, changedAt time.Time) error
	UpdateLastLogin(ctx context.Context, id string, ts time.Time) error
	UpdateManagementFee(ctx context.Context, id string, fee models.ManagementFee) error
	Ping(ctx context.Context) error
}

// uniqueFields maps index names to the labels surfaced to clients. Index
// names are fixed by EnsureIndexes so collisions can be attributed.
var uniqueFields = []struct {
	Name  string
	Label string
}{
	{"email", "email"},
	{"mobile", "mobile number"},
	{"aadhar", "Aadhar number"},
	{"pan", "PAN number"},
	{"departmentId", "department ID"},
}

type mongoUserRepository struct {
	collection *mongo.Collection
	client     *mongo.Client
}

// NewMongoUserRepository builds the Mongo-backed store over the users
// collection.
func NewMongoUserRepository(client *mongo.Client, database string) UserRepository {
	return &mongoUserRepository{
		collection: client.Database(database).Collection("users"),
		client:     client,
	}
}

// EnsureUserIndexes creates the five unique indexes uniqueness relies on.
// Called once at startup; races between concurrent registrations are settled
// by these indexes at write time, not by application pre-checks.
func EnsureUserIndexes(ctx context.Context, client *mongo.Client, database string) error {
	collection := client.Database(database).Collection("users")

	indexes := make([]mongo.IndexModel, 0, len(uniqueFields))
	for _, f := range uniqueFields {
		indexes = append(indexes, mongo.IndexModel{
			Keys:    bson.D{{Key: f.Name, Value: 1}},
			Options: options.Index().SetUnique(true).SetName(f.Name),
		})
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *mongoUserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}

	_, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, &DuplicateKeyError{Field: duplicateField(err)}
		}
		return nil, err
	}
	return user, nil
}

var indexNameRegexp = regexp.MustCompile(`index: (\w+)`)

// duplicateField attributes an E11000 error to one of the unique fields via
// the index name embedded in the driver message.
func duplicateField(err error) string {
	match := indexNameRegexp.FindStringSubmatch(err.Error())
	if len(match) == 2 {
		for _, f := range uniqueFields {
			if f.Name == match[1] {
				return f.Label
			}
		}
	}
	return "user"
}

func (r *mongoUserRepository) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *mongoUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"_id": objectID})
}

func (r *mongoUserRepository) FindByMobile(ctx context.Context, mobile string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"mobile": mobile})
}

func (r *mongoUserRepository) FindByAnyIdentity(ctx context.Context, q models.IdentityQuery) (*models.User, error) {
	var or []bson.M
	if q.Email != "" {
		or = append(or, bson.M{"email": q.Email})
	}
	if q.Mobile != "" {
		or = append(or, bson.M{"mobile": q.Mobile})
	}
	if q.Aadhar != "" {
		or = append(or, bson.M{"aadhar": q.Aadhar})
	}
	if q.PAN != "" {
		or = append(or, bson.M{"pan": q.PAN})
	}
	if q.DepartmentID != "" {
		or = append(or, bson.M{"departmentId": q.DepartmentID})
	}
	if len(or) == 0 {
		return nil, ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"$or": or})
}

func (r *mongoUserRepository) FindByDepartmentAndIdentity(ctx context.Context, departmentID, emailOrMobile string) (*models.User, error) {
	return r.findOne(ctx, bson.M{
		"departmentId": departmentID,
		"$or": []bson.M{
			{"email": emailOrMobile},
			{"mobile": emailOrMobile},
		},
	})
}

func (r *mongoUserRepository) FindAll(ctx context.Context) ([]models.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "registrationDate", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *mongoUserRepository) updateByID(ctx context.Context, id string, update bson.M) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrUserNotFound
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *mongoUserRepository) UpdatePassword(ctx context.Context, id, newHash string, changedAt time.Time) error {
	return r.updateByID(ctx, id, bson.M{"$set": bson.M{
		"password":          newHash,
		"passwordChangedAt": changedAt,
	}})
}

func (r *mongoUserRepository) UpdateLastLogin(ctx context.Context, id string, ts time.Time) error {
	return r.updateByID(ctx, id, bson.M{"$set": bson.M{"lastLogin": ts}})
}

func (r *mongoUserRepository) UpdateManagementFee(ctx context.Context, id string, fee models.ManagementFee) error {
	return r.updateByID(ctx, id, bson.M{"$set": bson.M{"managementFee": fee}})
}

func (r *mongoUserRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx, nil)
}
