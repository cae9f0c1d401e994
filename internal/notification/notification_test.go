package notification

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFeed_Recent(t *testing.T) {
	feed := NewFeed(3)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		feed.Notify(ctx, LevelInfo, fmt.Sprintf("mensagem %d", i))
	}
	feed.Notify(ctx, LevelError, "falhou")

	recent := feed.Recent()
	assert.Len(t, recent, 3)
	assert.Equal(t, "falhou", recent[0].Message)
	assert.Equal(t, LevelError, recent[0].Level)
	assert.Equal(t, "mensagem 5", recent[1].Message)
	assert.Equal(t, "mensagem 4", recent[2].Message)
}
