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

	"github.com/careerhub/resume-api/internal/core/domain"
	"github.com/careerhub/resume-api/internal/core/ports"
)

const (
	collectionResumes    = "resumes"
	collectionStatusLogs = "resume_status_logs"
)

// ResumeRepository persists resumes and their append-only status logs. The
// client handle is kept alongside the database because the status transition
// runs inside a session transaction.
type ResumeRepository struct {
	client *mongo.Client
	db     *mongo.Database
}

func NewResumeRepository(db *mongo.Database) *ResumeRepository {
	return &ResumeRepository{client: db.Client(), db: db}
}

type resumeDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	AuthorID     string             `bson:"author_id"`
	AuthorName   string             `bson:"author_name"`
	Title        string             `bson:"title"`
	Introduction string             `bson:"introduction"`
	Status       string             `bson:"status"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

type statusLogDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	ResumeID    string             `bson:"resume_id"`
	RecruiterID string             `bson:"recruiter_id"`
	OldStatus   string             `bson:"old_status"`
	NewStatus   string             `bson:"new_status"`
	Reason      string             `bson:"reason"`
	CreatedAt   time.Time          `bson:"created_at"`
}

func (r *ResumeRepository) Create(ctx context.Context, resume *domain.Resume) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := resumeDoc{
		AuthorID:     resume.AuthorID,
		AuthorName:   resume.AuthorName,
		Title:        resume.Title,
		Introduction: resume.Introduction,
		Status:       string(resume.Status),
		CreatedAt:    resume.CreatedAt,
		UpdatedAt:    resume.UpdatedAt,
	}

	res, err := r.resumes().InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert resume: %w", err)
	}
	resume.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return nil
}

func (r *ResumeRepository) FindByID(ctx context.Context, id string, authorID string) (*domain.Resume, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter, err := resumeFilter(id, authorID)
	if err != nil {
		return nil, err
	}

	var doc resumeDoc
	if err := r.resumes().FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrResumeNotFound
		}
		return nil, fmt.Errorf("find resume: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ResumeRepository) List(ctx context.Context, filter ports.ListResumesFilter) ([]*domain.Resume, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.AuthorID != "" {
		query["author_id"] = filter.AuthorID
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	order := -1
	if filter.SortAsc {
		order = 1
	}

	cur, err := r.resumes().Find(ctx, query, options.Find().SetSort(bson.D{{Key: "created_at", Value: order}}))
	if err != nil {
		return nil, fmt.Errorf("list resumes: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Resume
	for cur.Next(ctx) {
		var doc resumeDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode resume: %w", err)
		}
		out = append(out, doc.toDomain())
	}
	return out, cur.Err()
}

func (r *ResumeRepository) Update(ctx context.Context, id, authorID, title, introduction string) (*domain.Resume, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter, err := resumeFilter(id, authorID)
	if err != nil {
		return nil, err
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if title != "" {
		set["title"] = title
	}
	if introduction != "" {
		set["introduction"] = introduction
	}

	var doc resumeDoc
	err = r.resumes().FindOneAndUpdate(ctx, filter, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrResumeNotFound
		}
		return nil, fmt.Errorf("update resume: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ResumeRepository) Delete(ctx context.Context, id, authorID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter, err := resumeFilter(id, authorID)
	if err != nil {
		return err
	}

	res, err := r.resumes().DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("delete resume: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrResumeNotFound
	}
	return nil
}

// TransitionStatus runs the status update and the log insert in one session
// transaction. The update is conditional on the resume still holding
// entry.OldStatus; losing that race aborts the transaction, so the log chain
// stays consistent and at most one of two concurrent transitions commits.
func (r *ResumeRepository) TransitionStatus(ctx context.Context, entry *domain.ResumeStatusLog) error {
	oid, err := primitive.ObjectIDFromHex(entry.ResumeID)
	if err != nil {
		return domain.ErrResumeNotFound
	}

	session, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		res, err := r.resumes().UpdateOne(sc,
			bson.M{"_id": oid, "status": string(entry.OldStatus)},
			bson.M{"$set": bson.M{
				"status":     string(entry.NewStatus),
				"updated_at": entry.CreatedAt,
			}},
		)
		if err != nil {
			return nil, fmt.Errorf("update status: %w", err)
		}
		if res.MatchedCount == 0 {
			return nil, domain.ErrResumeNotFound
		}

		ins, err := r.logs().InsertOne(sc, statusLogDoc{
			ResumeID:    entry.ResumeID,
			RecruiterID: entry.RecruiterID,
			OldStatus:   string(entry.OldStatus),
			NewStatus:   string(entry.NewStatus),
			Reason:      entry.Reason,
			CreatedAt:   entry.CreatedAt,
		})
		if err != nil {
			return nil, fmt.Errorf("insert status log: %w", err)
		}
		entry.ID = ins.InsertedID.(primitive.ObjectID).Hex()
		return nil, nil
	})
	return err
}

func (r *ResumeRepository) ListLogs(ctx context.Context, resumeID string) ([]*domain.ResumeStatusLog, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.logs().Find(ctx,
		bson.M{"resume_id": resumeID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("list status logs: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.ResumeStatusLog
	for cur.Next(ctx) {
		var doc statusLogDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode status log: %w", err)
		}
		out = append(out, &domain.ResumeStatusLog{
			ID:          doc.ID.Hex(),
			ResumeID:    doc.ResumeID,
			RecruiterID: doc.RecruiterID,
			OldStatus:   domain.ResumeStatus(doc.OldStatus),
			NewStatus:   domain.ResumeStatus(doc.NewStatus),
			Reason:      doc.Reason,
			CreatedAt:   doc.CreatedAt,
		})
	}
	return out, cur.Err()
}

// EnsureIndexes creates lookup indexes for resumes and their logs.
func (r *ResumeRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if _, err := r.resumes().Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "author_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}); err != nil {
		return err
	}
	_, err := r.logs().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "resume_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	return err
}

func (r *ResumeRepository) resumes() *mongo.Collection {
	return r.db.Collection(collectionResumes)
}

func (r *ResumeRepository) logs() *mongo.Collection {
	return r.db.Collection(collectionStatusLogs)
}

func resumeFilter(id, authorID string) (bson.M, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrResumeNotFound
	}
	filter := bson.M{"_id": oid}
	if authorID != "" {
		filter["author_id"] = authorID
	}
	return filter, nil
}

func (d *resumeDoc) toDomain() *domain.Resume {
	return &domain.Resume{
		ID:           d.ID.Hex(),
		AuthorID:     d.AuthorID,
		AuthorName:   d.AuthorName,
		Title:        d.Title,
		Introduction: d.Introduction,
		Status:       domain.ResumeStatus(d.Status),
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}
