package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/crewdesk/member-portal/internal/core/domain"
)

const sessionCollection = "sessions"

// SessionRepository implements ports.SessionRepository using MongoDB.
type SessionRepository struct {
	coll *mongo.Collection
}

func NewSessionRepository(db *mongo.Database) *SessionRepository {
	return &SessionRepository{coll: db.Collection(sessionCollection)}
}

// EnsureIndexes creates the indexes on the sessions collection: tokens are
// unique lookup keys, user_id backs bulk revocation.
func (r *SessionRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "token", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

type mongoSession struct {
	ID             string `bson:"_id"`
	Token          string `bson:"token"`
	UserID         string `bson:"user_id"`
	ExpiresAt      int64  `bson:"expires_at"`
	IPAddress      string `bson:"ip_address,omitempty"`
	UserAgent      string `bson:"user_agent,omitempty"`
	ImpersonatedBy string `bson:"impersonated_by,omitempty"`
	CreatedAt      int64  `bson:"created_at"`
}

func (r *SessionRepository) Create(ctx context.Context, session *domain.Session) error {
	doc := mongoSession{
		ID:             session.ID,
		Token:          session.Token,
		UserID:         session.UserID,
		ExpiresAt:      session.ExpiresAt.Unix(),
		IPAddress:      session.IPAddress,
		UserAgent:      session.UserAgent,
		ImpersonatedBy: session.ImpersonatedBy,
		CreatedAt:      session.CreatedAt.Unix(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (r *SessionRepository) FindByToken(ctx context.Context, token string) (*domain.Session, error) {
	var ms mongoSession
	if err := r.coll.FindOne(ctx, bson.M{"token": token}).Decode(&ms); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("find session: %w", err)
	}

	return &domain.Session{
		ID:             ms.ID,
		Token:          ms.Token,
		UserID:         ms.UserID,
		ExpiresAt:      unixToTime(ms.ExpiresAt),
		IPAddress:      ms.IPAddress,
		UserAgent:      ms.UserAgent,
		ImpersonatedBy: ms.ImpersonatedBy,
		CreatedAt:      unixToTime(ms.CreatedAt),
	}, nil
}

func (r *SessionRepository) DeleteByToken(ctx context.Context, token string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"token": token})
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

func (r *SessionRepository) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, fmt.Errorf("delete user sessions: %w", err)
	}
	return res.DeletedCount, nil
}
