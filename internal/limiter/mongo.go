package limiter

import (
	"context"
	"crypto/sha256"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Mongo is a MongoDB-backed limiter implementation with sliding window and lockout.
type Mongo struct {
	coll     *mongo.Collection
	window   time.Duration
	maxFails int
	blockFor time.Duration
}

type limiterDoc struct {
	Email        string    `bson:"email"`
	IPHash       []byte    `bson:"ip_hash"`
	FailCount    int       `bson:"fail_count"`
	BlockedUntil time.Time `bson:"blocked_until"`
	UpdatedAt    time.Time `bson:"updated_at"`
}

// NewMongo constructs a MongoDB-backed limiter.
func NewMongo(coll *mongo.Collection, window time.Duration, maxFails int, blockFor time.Duration) *Mongo {
	return &Mongo{coll: coll, window: window, maxFails: maxFails, blockFor: blockFor}
}

// HashIP returns a stable hash for an IP string to avoid storing raw addresses.
func HashIP(ip string) []byte {
	h := sha256.Sum256([]byte(ip))
	return h[:]
}

// Allow reports whether login is currently allowed and a retry-after duration.
func (l *Mongo) Allow(ctx context.Context, email string, ipHash []byte) (bool, time.Duration, error) {
	var doc limiterDoc
	err := l.coll.FindOne(ctx, bson.M{"email": email, "ip_hash": ipHash}).Decode(&doc)
	switch {
	case err == nil:
		if doc.BlockedUntil.After(time.Now()) {
			return false, time.Until(doc.BlockedUntil), nil
		}
		return true, 0, nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return true, 0, nil
	default:
		return false, 0, err
	}
}

// Success resets counters for (email, ip).
func (l *Mongo) Success(ctx context.Context, email string, ipHash []byte) error {
	_, err := l.coll.UpdateOne(ctx,
		bson.M{"email": email, "ip_hash": ipHash},
		bson.M{"$set": bson.M{
			"fail_count":    0,
			"blocked_until": time.Time{},
			"updated_at":    time.Now(),
		}},
		options.UpdateOne().SetUpsert(true),
	)
	return err
}

// Failure records a failed attempt; may set a block until a future time.
// The counter read and write are two store calls; a lost increment under
// concurrent failures only delays the lockout by one attempt.
func (l *Mongo) Failure(ctx context.Context, email string, ipHash []byte) (bool, time.Duration, error) {
	now := time.Now()

	fails := 1
	var doc limiterDoc
	err := l.coll.FindOne(ctx, bson.M{"email": email, "ip_hash": ipHash}).Decode(&doc)
	switch {
	case err == nil:
		if now.Sub(doc.UpdatedAt) <= l.window {
			fails = doc.FailCount + 1
		}
	case errors.Is(err, mongo.ErrNoDocuments):
		// first failure for this pair
	default:
		return false, 0, err
	}

	set := bson.M{"fail_count": fails, "updated_at": now}
	blocked := fails >= l.maxFails
	if blocked {
		set["blocked_until"] = now.Add(l.blockFor)
	}
	_, err = l.coll.UpdateOne(ctx,
		bson.M{"email": email, "ip_hash": ipHash},
		bson.M{"$set": set},
		options.UpdateOne().SetUpsert(true),
	)
	if err != nil {
		return false, 0, err
	}
	if blocked {
		return true, l.blockFor, nil
	}
	return false, 0, nil
}
