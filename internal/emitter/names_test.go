package emitter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reirokusanami/destructure/internal/model"
)

func TestCompanionNames(t *testing.T) {
	assert.Equal(t, "DestructBook", destructName("Book"))
	assert.Equal(t, "DestructBookRef", destructRefName("Book"))
	assert.Equal(t, "BookMut", mutName("Book"))
}

func TestCompanionFieldName(t *testing.T) {
	assert.Equal(t, "Id", companionFieldName(&model.Field{Name: "id"}))
	assert.Equal(t, "PublishedAt", companionFieldName(&model.Field{Name: "publishedAt"}))
	assert.Equal(t, "Author", companionFieldName(&model.Field{Name: "Author"}))
	// Skipped fields keep their unexported name so other packages cannot
	// assign them.
	assert.Equal(t, "author", companionFieldName(&model.Field{Name: "author", Skip: true}))
}

func TestReceiverName(t *testing.T) {
	assert.Equal(t, "b", receiverName("Book"))
	assert.Equal(t, "d", receiverName("DestructBook"))
	// f and m are reserved by the generated method bodies.
	assert.Equal(t, "ff", receiverName("Flow"))
	assert.Equal(t, "mm", receiverName("Money"))
}
