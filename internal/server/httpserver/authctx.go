package httpserver

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type ctxKey string

const userIDKey ctxKey = "sn.userID"

// WithUserID stores the authenticated owner id in context.
func WithUserID(ctx context.Context, id bson.ObjectID) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

// UserIDFromCtx fetches the owner id from context.
func UserIDFromCtx(ctx context.Context) (bson.ObjectID, bool) {
	v := ctx.Value(userIDKey)
	if v == nil {
		return bson.NilObjectID, false
	}
	id, ok := v.(bson.ObjectID)
	return id, ok
}
