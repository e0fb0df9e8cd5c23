package mongostore

import (
	"context"
	"os"
	"time"
	"testing"

	"github.com/pbanos/symptree/store/storetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMongoStore(t *testing.T) {
	url := os.Getenv("SYMPTREE_TEST_MONGO_URL")
	if url == "" {
		t.Skip("SYMPTREE_TEST_MONGO_URL not set")
	}
	ctx := context.Background()
	s, err := Open(ctx, url)
	require.NoError(t, err)
	defer s.Close(ctx)
	ms := s.(*mongoStore)
	_, err = ms.modelsCollection().RemoveAll(nil)
	require.NoError(t, err)
	storetest.Run(t, s)
}

func TestOpenExpiredContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Open(ctx, "mongodb://localhost:27017/symptree")
	assert.ErrorIs(t, err, context.Canceled)

	ctx, cancel = context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()
	_, err = Open(ctx, "mongodb://localhost:27017/symptree")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
