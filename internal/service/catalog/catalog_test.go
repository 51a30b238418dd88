package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"drubez-planner/internal/storage"
)

func TestCatalog_Resolve(t *testing.T) {
	cat := New([]storage.RawMaterial{
		{ID: "prsa", Name: "Prsa", Kind: storage.KindBase},
		{ID: "stehna", Name: "Stehna", Kind: storage.KindBase},
	})

	m, ok := cat.Resolve("prsa")
	assert.True(t, ok)
	assert.Equal(t, "Prsa", m.Name)

	// Удалённый материал — не ошибка, просто нет вклада.
	m, ok = cat.Resolve("smazano")
	assert.False(t, ok)
	assert.Nil(t, m)
}

func TestCatalog_All(t *testing.T) {
	cat := New([]storage.RawMaterial{
		{ID: "prsa", Kind: storage.KindBase},
		{ID: "stehna", Kind: storage.KindBase},
	})

	assert.Len(t, cat.All(), 2)
}
