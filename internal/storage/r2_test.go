package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewR2Client_RequiresSettings(t *testing.T) {
	cases := []R2Config{
		{},
		{Endpoint: "https://r2.example.com"},
		{Endpoint: "https://r2.example.com", AccessKey: "a", SecretKey: "b"},
	}
	for _, c := range cases {
		_, err := NewR2Client(context.Background(), c)
		assert.Error(t, err)
	}
}

func TestNewR2Client(t *testing.T) {
	client, err := NewR2Client(context.Background(), R2Config{
		Endpoint:  "https://account.r2.cloudflarestorage.com",
		AccessKey: "a",
		SecretKey: "b",
		Bucket:    "recipes",
	})
	assert.NoError(t, err)
	assert.Equal(t, "recipes", client.bucket)
}
