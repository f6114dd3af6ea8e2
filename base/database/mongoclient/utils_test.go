package mongoclient

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/agritrade/goapi/base/ptr"
)

func TestMakeBsonM(t *testing.T) {
	req := require.New(t)

	type patchable struct {
		Name          string `bson:"name"`
		Quantity      *int32 `bson:"quantity,omitempty"`
		BiddingClosed *bool  `bson:"biddingClosed,omitempty"`
		Skipped       string `bson:"-"`
	}

	p := patchable{
		Name:          "maize 50kg",
		BiddingClosed: ptr.Bool(false),
		Skipped:       "ignored",
	}

	m, err := MakeBsonM(&p)
	req.NoError(err)
	req.Equal(bson.M{
		"name": "maize 50kg",
		// non-nil pointer to zero value still patches
		"biddingClosed": false,
	}, m)
}
