package mongodb

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestListFilter_LockedPartition(t *testing.T) {
	t.Parallel()
	owner := bson.NewObjectID()

	f := ListFilter(owner, "", noteSearchFields, false, nil)
	require.Equal(t, owner, f["user_id"])
	require.Equal(t, false, f["is_deleted"])
	require.Equal(t, bson.M{"$ne": true}, f["is_locked"],
		"unlocked listing must exclude locked rows explicitly")
	require.NotContains(t, f, "$or")

	f = ListFilter(owner, "", noteSearchFields, true, nil)
	require.Equal(t, true, f["is_locked"])
}

func TestListFilter_SearchQuotesRegexMeta(t *testing.T) {
	t.Parallel()
	owner := bson.NewObjectID()

	f := ListFilter(owner, "a.b(c", taskSearchFields, false, nil)
	or, ok := f["$or"].([]bson.M)
	require.True(t, ok)
	require.Len(t, or, 2)
	require.Equal(t, bson.M{"$regex": `a\.b\(c`, "$options": "i"}, or[0]["title"])
	require.Equal(t, bson.M{"$regex": `a\.b\(c`, "$options": "i"}, or[1]["description"])
}

func TestListFilter_ExtraEquality(t *testing.T) {
	t.Parallel()
	owner := bson.NewObjectID()

	f := ListFilter(owner, "", taskSearchFields, false, bson.M{"completed": true})
	require.Equal(t, true, f["completed"])
}

func TestSortOrder(t *testing.T) {
	t.Parallel()

	cases := []struct {
		key  string
		want bson.D
	}{
		{SortNewest, bson.D{{Key: "updated_at", Value: -1}}},
		{SortOldest, bson.D{{Key: "updated_at", Value: 1}}},
		{SortAZ, bson.D{{Key: "title", Value: 1}}},
		{SortZA, bson.D{{Key: "title", Value: -1}}},
		{SortDue, bson.D{{Key: "due_date", Value: 1}}},
		{SortPriority, bson.D{{Key: "priority", Value: -1}, {Key: "updated_at", Value: -1}}},
		{"", bson.D{{Key: "updated_at", Value: -1}}},
		{"bogus", bson.D{{Key: "updated_at", Value: -1}}},
	}
	for _, c := range cases {
		require.Equal(t, c.want, SortOrder(c.key), "key %q", c.key)
	}
}
