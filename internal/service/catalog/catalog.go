package catalog

import (
	"drubez-planner/internal/storage"
)

// Catalog — каталог материалов на день, собирается один раз из базы.
// Поиск по id; отсутствующий материал не ошибка — позиции с удалённым
// материалом просто не дают вклада в расчёт.
type Catalog struct {
	byID map[string]*storage.RawMaterial
}

func New(materials []storage.RawMaterial) *Catalog {
	c := &Catalog{byID: make(map[string]*storage.RawMaterial, len(materials))}
	for i := range materials {
		c.byID[materials[i].ID] = &materials[i]
	}
	return c
}

func (c *Catalog) Resolve(materialID string) (*storage.RawMaterial, bool) {
	m, ok := c.byID[materialID]
	return m, ok
}

// All возвращает материалы в произвольном порядке.
func (c *Catalog) All() []*storage.RawMaterial {
	out := make([]*storage.RawMaterial, 0, len(c.byID))
	for _, m := range c.byID {
		out = append(out, m)
	}
	return out
}
