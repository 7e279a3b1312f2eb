package repository

import (
	"context"

	"github.com/nekesuresh/RFP/types"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// TaskRepo persists background ingest tasks so clients can poll upload
// progress by task id.
type TaskRepo interface {
	CreateTask(ctx context.Context, task *types.IngestTask) error
	GetTask(ctx context.Context, id string) (*types.IngestTask, error)
	ListTasks(ctx context.Context, status []string, limit int) ([]*types.IngestTask, error)
	UpdateTask(ctx context.Context, task *types.IngestTask) error
}

type taskRepo struct {
	collection *mongo.Collection
}

func NewTaskRepo(db *mongo.Database) TaskRepo {
	return &taskRepo{
		collection: db.Collection("ingest_tasks"),
	}
}

func (r *taskRepo) CreateTask(ctx context.Context, task *types.IngestTask) error {
	_, err := r.collection.InsertOne(ctx, task)
	return err
}

func (r *taskRepo) GetTask(ctx context.Context, id string) (*types.IngestTask, error) {
	var task types.IngestTask
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&task)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepo) ListTasks(ctx context.Context, status []string, limit int) ([]*types.IngestTask, error) {
	filter := bson.M{}
	if len(status) > 0 {
		filter["status"] = bson.M{"$in": status}
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts = opts.SetLimit(int64(limit))
	}
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var tasks []*types.IngestTask
	for cursor.Next(ctx) {
		var task types.IngestTask
		if err := cursor.Decode(&task); err != nil {
			return nil, err
		}
		tasks = append(tasks, &task)
	}
	return tasks, cursor.Err()
}

func (r *taskRepo) UpdateTask(ctx context.Context, task *types.IngestTask) error {
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": task.ID}, task)
	return err
}
