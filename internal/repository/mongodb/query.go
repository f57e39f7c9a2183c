package mongodb

import (
	"regexp"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Sort keys accepted by listings. Notes use the first four, tasks all six.
const (
	SortNewest   = "newest"
	SortOldest   = "oldest"
	SortAZ       = "az"
	SortZA       = "za"
	SortDue      = "due"
	SortPriority = "priority"
)

// ListFilter builds the owner-scoped filter shared by the note and task
// listings. locked partitions the result set: locked rows and unlocked rows
// never appear in the same listing. search, when non-empty, matches as a
// case-insensitive substring against each of searchFields. extra carries
// resource-specific equality filters (e.g. completed for tasks).
func ListFilter(owner bson.ObjectID, search string, searchFields []string, locked bool, extra bson.M) bson.M {
	f := bson.M{
		"user_id":    owner,
		"is_deleted": false,
	}
	if locked {
		f["is_locked"] = true
	} else {
		f["is_locked"] = bson.M{"$ne": true}
	}
	if search != "" {
		or := make([]bson.M, 0, len(searchFields))
		for _, field := range searchFields {
			or = append(or, bson.M{field: bson.M{
				"$regex":   regexp.QuoteMeta(search),
				"$options": "i",
			}})
		}
		f["$or"] = or
	}
	for k, v := range extra {
		f[k] = v
	}
	return f
}

// SortOrder translates a sort key into a Mongo sort document. Unknown keys
// fall back to newest-first.
func SortOrder(key string) bson.D {
	switch key {
	case SortOldest:
		return bson.D{{Key: "updated_at", Value: 1}}
	case SortAZ:
		return bson.D{{Key: "title", Value: 1}}
	case SortZA:
		return bson.D{{Key: "title", Value: -1}}
	case SortDue:
		return bson.D{{Key: "due_date", Value: 1}}
	case SortPriority:
		return bson.D{{Key: "priority", Value: -1}, {Key: "updated_at", Value: -1}}
	default:
		return bson.D{{Key: "updated_at", Value: -1}}
	}
}
