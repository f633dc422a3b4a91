package file

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/studyaid/core/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const mongoConnectTimeout = 10 * time.Second

// MongoStore reads file records from a MongoDB collection whose documents use
// ObjectID primary keys and camelCase fields.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// mongoFileDocument mirrors a stored file document.
type mongoFileDocument struct {
	ID          primitive.ObjectID `bson:"_id"`
	Title       string             `bson:"title"`
	Description string             `bson:"description,omitempty"`
	Subject     string             `bson:"subject,omitempty"`
	FileName    string             `bson:"fileName,omitempty"`
	FileURL     string             `bson:"fileUrl,omitempty"`
	MimeType    string             `bson:"mimeType,omitempty"`
	Size        int64              `bson:"size,omitempty"`
	UploadedBy  bson.RawValue      `bson:"uploadedBy,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt,omitempty"`
	UpdatedAt   time.Time          `bson:"updatedAt,omitempty"`
}

// NewMongoStore connects to uri and verifies the connection.
func NewMongoStore(ctx context.Context, uri, database, collection string) (*MongoStore, error) {
	connectCtx, cancel := context.WithTimeout(ctx, mongoConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return &MongoStore{
		client:     client,
		collection: client.Database(database).Collection(collection),
	}, nil
}

// FindByID returns the file with the given hex ObjectID, or (nil, nil) when
// none exists. Ids that are not valid ObjectIDs cannot match and are treated
// as not found.
func (s *MongoStore) FindByID(ctx context.Context, id string) (*models.FileModel, error) {
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, nil
	}

	var doc mongoFileDocument
	if err := s.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find file %q: %w", id, err)
	}
	return doc.toModel(), nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *MongoStore) Close() error {
	return s.client.Disconnect(context.Background())
}

func (d mongoFileDocument) toModel() *models.FileModel {
	file := &models.FileModel{
		Title:       d.Title,
		Description: d.Description,
		Subject:     d.Subject,
		FileName:    d.FileName,
		FileURL:     d.FileURL,
		MimeType:    d.MimeType,
		Size:        d.Size,
	}
	file.ID = d.ID.Hex()
	file.CreatedAt = d.CreatedAt
	file.UpdatedAt = d.UpdatedAt
	if oid, ok := d.UploadedBy.ObjectIDOK(); ok {
		file.UploadedBy = oid.Hex()
	} else if name, ok := d.UploadedBy.StringValueOK(); ok {
		file.UploadedBy = name
	}
	return file
}
