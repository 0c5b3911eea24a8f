package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/backoffice/console-api/internal/core/domain"
	"github.com/backoffice/console-api/internal/core/ports"
)

const ordersCollection = "orders"

type MongoOrderRepository struct {
	coll *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *MongoOrderRepository {
	return &MongoOrderRepository{coll: db.Collection(ordersCollection)}
}

type mongoLineItem struct {
	ProductID string  `bson:"product_id"`
	Quantity  int     `bson:"quantity"`
	UnitPrice float64 `bson:"unit_price"`
}

type mongoPayment struct {
	Method string  `bson:"method"`
	Amount float64 `bson:"amount"`
}

type mongoOrder struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	OrderNumber string             `bson:"order_number"`
	ClientID    string             `bson:"client_id"`
	Items       []mongoLineItem    `bson:"items"`
	TotalAmount float64            `bson:"total_amount"`
	Payments    []mongoPayment     `bson:"payments"`
	Status      string             `bson:"status"`
	Notes       string             `bson:"notes,omitempty"`
	CreatedBy   string             `bson:"created_by"`
	CreatedAt   int64              `bson:"created_at"`
	UpdatedAt   int64              `bson:"updated_at"`
}

func (mo *mongoOrder) toDomain() *domain.Order {
	items := make([]domain.LineItem, 0, len(mo.Items))
	for _, it := range mo.Items {
		items = append(items, domain.LineItem{ProductRef: it.ProductID, Quantity: it.Quantity, UnitPrice: it.UnitPrice})
	}
	payments := make([]domain.PaymentAllocation, 0, len(mo.Payments))
	for _, p := range mo.Payments {
		payments = append(payments, domain.PaymentAllocation{Method: p.Method, Amount: p.Amount})
	}
	return &domain.Order{
		ID:          mo.ID.Hex(),
		OrderNumber: mo.OrderNumber,
		ClientID:    mo.ClientID,
		Items:       items,
		TotalAmount: mo.TotalAmount,
		Payments:    payments,
		Status:      domain.OrderStatus(mo.Status),
		Notes:       mo.Notes,
		CreatedBy:   mo.CreatedBy,
		CreatedAt:   unixToTime(mo.CreatedAt),
		UpdatedAt:   unixToTime(mo.UpdatedAt),
	}
}

func (r *MongoOrderRepository) Create(ctx context.Context, o *domain.Order) (*domain.Order, error) {
	doc := mongoOrder{
		OrderNumber: o.OrderNumber,
		ClientID:    o.ClientID,
		Items:       make([]mongoLineItem, 0, len(o.Items)),
		TotalAmount: o.TotalAmount,
		Payments:    make([]mongoPayment, 0, len(o.Payments)),
		Status:      string(o.Status),
		Notes:       o.Notes,
		CreatedBy:   o.CreatedBy,
		CreatedAt:   o.CreatedAt.Unix(),
		UpdatedAt:   o.UpdatedAt.Unix(),
	}
	for _, it := range o.Items {
		doc.Items = append(doc.Items, mongoLineItem{ProductID: it.ProductRef, Quantity: it.Quantity, UnitPrice: it.UnitPrice})
	}
	for _, p := range o.Payments {
		doc.Payments = append(doc.Payments, mongoPayment{Method: p.Method, Amount: p.Amount})
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}

	id, _ := res.InsertedID.(primitive.ObjectID)
	return r.FindByID(ctx, id.Hex())
}

func (r *MongoOrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrOrderNotFound
	}

	var mo mongoOrder
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mo); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("find order: %w", err)
	}
	return mo.toDomain(), nil
}

func (r *MongoOrderRepository) List(ctx context.Context, filter ports.ListOrdersFilter) ([]*domain.Order, int64, error) {
	query := bson.M{}
	if filter.ClientID != "" {
		query["client_id"] = filter.ClientID
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	defer cur.Close(ctx)

	var orders []*domain.Order
	for cur.Next(ctx) {
		var mo mongoOrder
		if err := cur.Decode(&mo); err != nil {
			return nil, 0, fmt.Errorf("decode order: %w", err)
		}
		orders = append(orders, mo.toDomain())
	}
	return orders, total, cur.Err()
}

func (r *MongoOrderRepository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrOrderNotFound
	}

	update := bson.M{"$set": bson.M{
		"status":     string(status),
		"updated_at": time.Now().UTC().Unix(),
	}}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrOrderNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *MongoOrderRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrOrderNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}
