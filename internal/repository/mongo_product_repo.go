package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Barkatzx/medicare-server/internal/models"
)

type mongoProductRepo struct {
	col *mongo.Collection
}

func NewMongoProductRepo(db *mongo.Database, collection string) ProductRepository {
	return &mongoProductRepo{col: db.Collection(collection)}
}

func (r *mongoProductRepo) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.ProductSummary, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var products []models.ProductSummary
	if err := cur.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}
