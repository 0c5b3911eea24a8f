package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/backoffice/console-api/internal/core/domain"
)

const permissionsCollection = "permissions"

// MongoPermissionRepository stores one document per user holding the full
// grant list. Replace overwrites the document wholesale, matching the
// full-replacement contract of the persistence boundary.
type MongoPermissionRepository struct {
	coll *mongo.Collection
}

func NewPermissionRepository(db *mongo.Database) *MongoPermissionRepository {
	return &MongoPermissionRepository{coll: db.Collection(permissionsCollection)}
}

type mongoGrant struct {
	Resource  string `bson:"resource"`
	CanView   bool   `bson:"can_view"`
	CanCreate bool   `bson:"can_create"`
	CanUpdate bool   `bson:"can_update"`
	CanDelete bool   `bson:"can_delete"`
}

type mongoPermissionDoc struct {
	UserID string       `bson:"user_id"`
	Grants []mongoGrant `bson:"grants"`
}

func (r *MongoPermissionRepository) FindByUserID(ctx context.Context, userID string) ([]domain.PermissionGrant, error) {
	var doc mongoPermissionDoc
	if err := r.coll.FindOne(ctx, bson.M{"user_id": userID}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			// No grants saved yet: equivalent to all-false everywhere.
			return nil, nil
		}
		return nil, fmt.Errorf("find permissions: %w", err)
	}

	grants := make([]domain.PermissionGrant, 0, len(doc.Grants))
	for _, g := range doc.Grants {
		grants = append(grants, domain.PermissionGrant{
			Resource:  domain.Resource(g.Resource),
			CanView:   g.CanView,
			CanCreate: g.CanCreate,
			CanUpdate: g.CanUpdate,
			CanDelete: g.CanDelete,
		})
	}
	return grants, nil
}

func (r *MongoPermissionRepository) Replace(ctx context.Context, userID string, grants []domain.PermissionGrant) ([]domain.PermissionGrant, error) {
	doc := mongoPermissionDoc{UserID: userID, Grants: make([]mongoGrant, 0, len(grants))}
	for _, g := range grants {
		doc.Grants = append(doc.Grants, mongoGrant{
			Resource:  string(g.Resource),
			CanView:   g.CanView,
			CanCreate: g.CanCreate,
			CanUpdate: g.CanUpdate,
			CanDelete: g.CanDelete,
		})
	}

	opts := options.Replace().SetUpsert(true)
	if _, err := r.coll.ReplaceOne(ctx, bson.M{"user_id": userID}, doc, opts); err != nil {
		return nil, fmt.Errorf("replace permissions: %w", err)
	}

	return r.FindByUserID(ctx, userID)
}
