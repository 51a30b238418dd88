package demand

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"drubez-planner/internal/service/catalog"
	"drubez-planner/internal/storage"
)

const testDate = "2025-06-02"

func testCatalog() *catalog.Catalog {
	return catalog.New([]storage.RawMaterial{
		{ID: "prsa", Name: "Prsa", Kind: storage.KindBase},
		{ID: "stehna", Name: "Stehna", Kind: storage.KindBase},
		{ID: "kridla", Name: "Křídla", Kind: storage.KindBase},
		{
			ID: "mix-gril", Name: "Mix gril", Kind: storage.KindMix,
			Components: []storage.MixComponent{
				{MaterialID: "prsa", Percent: 50},
				{MaterialID: "stehna", Percent: 50},
			},
		},
		{
			ID: "prsa-marin", Name: "Prsa marinovaná", Kind: storage.KindDerived,
			Derived: &storage.DerivedSpec{BaseMaterialID: "prsa", MarinadePercent: 20, LossPercent: 10},
		},
		{
			ID: "spiz-tacky", Name: "Špíz na táccích", Kind: storage.KindDerived,
			Derived: &storage.DerivedSpec{BaseMaterialID: "stehna", OrderInTrays: true, TrayWeightGrams: 500},
		},
	})
}

func item(materialID string, boxes float64) storage.OrderItem {
	return storage.OrderItem{ID: "i-" + materialID, MaterialID: materialID, Variant: "VL", BoxCount: boxes, IsActive: true}
}

func order(customerID string, items ...storage.OrderItem) storage.Order {
	return storage.Order{ID: "o-" + customerID, Date: testDate, CustomerID: customerID, Items: items}
}

func TestComputeDemand_BaseMaterialDefaultBoxWeight(t *testing.T) {
	// Без таблицы весов коробка стоит 10000 г.
	got := ComputeDemand(testDate, []storage.Order{order("kfc", item("prsa", 10))}, testCatalog(), NewWeightTable(nil, nil), Options{})

	assert.InDelta(t, 100.0, got["prsa"], 1e-9)
}

func TestWeightTable_FallbackChain(t *testing.T) {
	table := NewWeightTable(
		[]storage.BoxWeight{
			{CustomerID: "kfc", MaterialID: "prsa", Variant: "VL", Grams: 9000},
			{CustomerID: "kfc", MaterialID: "prsa", Variant: "S", Grams: 8000},
		},
		[]storage.BoxWeightOverride{
			{Date: testDate, BoxWeight: storage.BoxWeight{CustomerID: "kfc", MaterialID: "prsa", Variant: "S", Grams: 7500}},
		},
	)

	tests := []struct {
		name     string
		date     string
		customer string
		variant  string
		want     float64
	}{
		{"дневной override побеждает", testDate, "kfc", "S", 7500},
		{"точный вариант без override", "2025-06-03", "kfc", "S", 8000},
		{"неизвестный вариант падает в VL", "2025-06-03", "kfc", "M", 9000},
		{"клиент без таблицы — общий дефолт", testDate, "albert", "VL", 10000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, table.PerBoxGrams(tt.date, tt.customer, "prsa", tt.variant))
		})
	}
}

func TestComputeDemand_MixExpansionConservation(t *testing.T) {
	// Проценты в сумме 100 — разложенные кг равны кг микса.
	got := ComputeDemand(testDate, []storage.Order{order("kfc", item("mix-gril", 10))}, testCatalog(), NewWeightTable(nil, nil), Options{})

	assert.InDelta(t, 50.0, got["prsa"], 1e-9)
	assert.InDelta(t, 50.0, got["stehna"], 1e-9)
	assert.InDelta(t, 100.0, got["prsa"]+got["stehna"], 1e-9)
}

func TestComputeDemand_RatioOverride(t *testing.T) {
	it := item("mix-gril", 10)
	it.RatioOverride = []storage.MixComponent{
		{MaterialID: "prsa", Percent: 70},
		{MaterialID: "kridla", Percent: 30},
	}

	got := ComputeDemand(testDate, []storage.Order{order("kfc", it)}, testCatalog(), NewWeightTable(nil, nil), Options{})

	assert.InDelta(t, 70.0, got["prsa"], 1e-9)
	assert.InDelta(t, 30.0, got["kridla"], 1e-9)
	assert.Zero(t, got["stehna"])
}

func TestComputeDemand_DerivedProduct(t *testing.T) {
	// 100 кг готового: маринад 20% → 80 кг мяса, потеря 10% → 80/0.9 сырья.
	got := ComputeDemand(testDate, []storage.Order{order("kfc", item("prsa-marin", 10))}, testCatalog(), NewWeightTable(nil, nil), Options{})

	assert.InDelta(t, 80.0/0.9, got["prsa"], 1e-9)
}

func TestComputeDemand_DerivedRoundTrip(t *testing.T) {
	cat := catalog.New([]storage.RawMaterial{
		{ID: "prsa", Kind: storage.KindBase},
		{ID: "cisty", Kind: storage.KindDerived, Derived: &storage.DerivedSpec{BaseMaterialID: "prsa"}},
	})

	got := ComputeDemand(testDate, []storage.Order{order("kfc", item("cisty", 10))}, cat, NewWeightTable(nil, nil), Options{})

	// Без маринада и потерь сырьё равно заказанному весу точно.
	assert.Equal(t, 100.0, got["prsa"])
}

func TestComputeDemand_TraysUseTrayWeight(t *testing.T) {
	got := ComputeDemand(testDate, []storage.Order{order("kfc", item("spiz-tacky", 20))}, testCatalog(), NewWeightTable(nil, nil), Options{})

	// 20 лотков по 500 г, лотки не ходят через таблицу коробок.
	assert.InDelta(t, 10.0, got["stehna"], 1e-9)
}

func TestComputeDemand_CompletionNetting(t *testing.T) {
	it := item("prsa", 10)
	it.DoneCount = 10
	orders := []storage.Order{order("kfc", it)}

	done := ComputeDemand(testDate, orders, testCatalog(), NewWeightTable(nil, nil), Options{})
	assert.Zero(t, done["prsa"])

	full := ComputeDemand(testDate, orders, testCatalog(), NewWeightTable(nil, nil), Options{IgnoreCompleted: true})
	assert.InDelta(t, 100.0, full["prsa"], 1e-9)
}

func TestComputeDemand_InactiveItemSkipped(t *testing.T) {
	it := item("prsa", 10)
	it.IsActive = false

	got := ComputeDemand(testDate, []storage.Order{order("kfc", it)}, testCatalog(), NewWeightTable(nil, nil), Options{})

	assert.Empty(t, got)
}

func TestComputeDemand_MissingMaterialSkipped(t *testing.T) {
	orders := []storage.Order{order("kfc", item("smazano-davno", 10), item("prsa", 1))}

	var got map[string]float64
	assert.NotPanics(t, func() {
		got = ComputeDemand(testDate, orders, testCatalog(), NewWeightTable(nil, nil), Options{})
	})

	assert.InDelta(t, 10.0, got["prsa"], 1e-9)
	assert.Len(t, got, 1)
}

func TestComputeDemand_Additivity(t *testing.T) {
	a := []storage.Order{order("kfc", item("prsa", 3), item("mix-gril", 2))}
	b := []storage.Order{order("albert", item("prsa-marin", 5), item("stehna", 1))}

	sumAB := ComputeDemand(testDate, append(append([]storage.Order{}, a...), b...), testCatalog(), NewWeightTable(nil, nil), Options{})
	onlyA := ComputeDemand(testDate, a, testCatalog(), NewWeightTable(nil, nil), Options{})
	onlyB := ComputeDemand(testDate, b, testCatalog(), NewWeightTable(nil, nil), Options{})

	for id, kg := range sumAB {
		assert.InDelta(t, kg, onlyA[id]+onlyB[id], 1e-9, id)
	}
}

func TestComputeDemand_CustomerFilter(t *testing.T) {
	orders := []storage.Order{
		order("kfc", item("prsa", 10)),
		order("albert", item("prsa", 1)),
	}

	got := ComputeDemand(testDate, orders, testCatalog(), NewWeightTable(nil, nil), Options{
		CustomerFilter: func(customerID string) bool { return customerID != "kfc" },
	})

	assert.InDelta(t, 10.0, got["prsa"], 1e-9)
}
