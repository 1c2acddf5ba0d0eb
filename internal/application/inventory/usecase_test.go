package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinv "github.com/jhoicas/stackr-api/internal/application/inventory"
	"github.com/jhoicas/stackr-api/internal/domain"
	"github.com/jhoicas/stackr-api/internal/domain/entity"
	"github.com/jhoicas/stackr-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

// fakeStore estado compartido de los fakes. Los lotes se mantienen en orden de
// creación (seq ascendente).
type fakeStore struct {
	items   map[string]*entity.Item
	lots    []*entity.Lot
	records []*entity.InventoryRecord
	allocs  []*entity.LotAllocation
}

func newFakeStore() *fakeStore {
	return &fakeStore{items: make(map[string]*entity.Item)}
}

func (s *fakeStore) snapshot() *fakeStore {
	cp := &fakeStore{items: s.items}
	for _, l := range s.lots {
		lc := *l
		cp.lots = append(cp.lots, &lc)
	}
	cp.records = append(cp.records, s.records...)
	cp.allocs = append(cp.allocs, s.allocs...)
	return cp
}

func (s *fakeStore) restore(snap *fakeStore) {
	s.lots = snap.lots
	s.records = snap.records
	s.allocs = snap.allocs
}

func (s *fakeStore) findLot(id string) *entity.Lot {
	for _, l := range s.lots {
		if l.ID == id {
			return l
		}
	}
	return nil
}

type fakeItemRepo struct{ s *fakeStore }

func (r *fakeItemRepo) Create(_ context.Context, item *entity.Item) error {
	r.s.items[item.ID] = item
	return nil
}

func (r *fakeItemRepo) GetByID(_ context.Context, id string) (*entity.Item, error) {
	return r.s.items[id], nil
}

func (r *fakeItemRepo) GetByName(_ context.Context, name string) (*entity.Item, error) {
	for _, it := range r.s.items {
		if it.Name == name {
			return it, nil
		}
	}
	return nil, nil
}

func (r *fakeItemRepo) List(_ context.Context, _, _ int) ([]*entity.Item, error) {
	out := make([]*entity.Item, 0, len(r.s.items))
	for _, it := range r.s.items {
		out = append(out, it)
	}
	return out, nil
}

type fakeLotRepo struct{ s *fakeStore }

func (r *fakeLotRepo) Create(_ context.Context, lot *entity.Lot) error {
	lot.Seq = int64(len(r.s.lots) + 1)
	r.s.lots = append(r.s.lots, lot)
	return nil
}

func (r *fakeLotRepo) GetByID(_ context.Context, id string) (*entity.Lot, error) {
	return r.s.findLot(id), nil
}

func (r *fakeLotRepo) GetForUpdate(_ context.Context, id string) (*entity.Lot, error) {
	return r.s.findLot(id), nil
}

func (r *fakeLotRepo) ListAvailableByItem(_ context.Context, itemID string, excludeEmpty bool) ([]*entity.Lot, error) {
	var out []*entity.Lot
	for _, l := range r.s.lots {
		if l.ItemID != itemID {
			continue
		}
		if excludeEmpty && l.IsDepleted() {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

func (r *fakeLotRepo) ListAvailableForUpdate(ctx context.Context, itemID string) ([]*entity.Lot, error) {
	return r.ListAvailableByItem(ctx, itemID, true)
}

func (r *fakeLotRepo) Decrement(_ context.Context, lotID string, amount decimal.Decimal) error {
	lot := r.s.findLot(lotID)
	if lot == nil {
		return domain.ErrLotNotFound
	}
	if amount.GreaterThan(lot.RemainingQuantity) {
		return &domain.InsufficientLotQuantityError{
			LotID:     lot.ID,
			LotNumber: lot.LotNumber,
			Requested: amount,
			Available: lot.RemainingQuantity,
		}
	}
	lot.RemainingQuantity = lot.RemainingQuantity.Sub(amount)
	return nil
}

func (r *fakeLotRepo) List(_ context.Context, itemID string, _, _ int) ([]*entity.Lot, error) {
	var out []*entity.Lot
	for _, l := range r.s.lots {
		if itemID == "" || l.ItemID == itemID {
			out = append(out, l)
		}
	}
	return out, nil
}

type fakeRecordRepo struct{ s *fakeStore }

func (r *fakeRecordRepo) Create(_ context.Context, record *entity.InventoryRecord) error {
	r.s.records = append(r.s.records, record)
	return nil
}

func (r *fakeRecordRepo) ListByItem(_ context.Context, itemID string) ([]*entity.InventoryRecord, error) {
	var out []*entity.InventoryRecord
	for i := len(r.s.records) - 1; i >= 0; i-- {
		if r.s.records[i].ItemID == itemID {
			out = append(out, r.s.records[i])
		}
	}
	return out, nil
}

func (r *fakeRecordRepo) SumByItem(_ context.Context, itemID string) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, rec := range r.s.records {
		if rec.ItemID == itemID {
			sum = sum.Add(rec.Quantity)
		}
	}
	return sum, nil
}

type fakeAllocRepo struct{ s *fakeStore }

func (r *fakeAllocRepo) Create(_ context.Context, a *entity.LotAllocation) error {
	r.s.allocs = append(r.s.allocs, a)
	return nil
}

func (r *fakeAllocRepo) ListByRecord(_ context.Context, recordID string) ([]*entity.LotAllocation, error) {
	var out []*entity.LotAllocation
	for _, a := range r.s.allocs {
		if a.RecordID == recordID {
			out = append(out, a)
		}
	}
	return out, nil
}

// fakeTxRunner emula la transacción: toma un snapshot del estado y lo restaura
// si fn falla, igual que haría un ROLLBACK.
type fakeTxRunner struct{ s *fakeStore }

func (t *fakeTxRunner) Run(_ context.Context, fn func(
	lotRepo repository.LotRepository,
	recordRepo repository.InventoryRecordRepository,
	allocRepo repository.LotAllocationRepository,
) error) error {
	snap := t.s.snapshot()
	err := fn(&fakeLotRepo{s: t.s}, &fakeRecordRepo{s: t.s}, &fakeAllocRepo{s: t.s})
	if err != nil {
		t.s.restore(snap)
	}
	return err
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

const (
	itemID  = "item-1"
	otherID = "item-2"
)

func qty(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// newFixture arma el motor con un ítem y los lotes dados (remaining en orden
// FIFO).
func newFixture(t *testing.T, remaining ...string) (*appinv.UseCase, *fakeStore) {
	t.Helper()
	store := newFakeStore()
	store.items[itemID] = &entity.Item{ID: itemID, Name: "tornillo m4"}
	store.items[otherID] = &entity.Item{ID: otherID, Name: "tuerca m4"}
	for i, rem := range remaining {
		store.lots = append(store.lots, &entity.Lot{
			ID:                "lot-" + string(rune('1'+i)),
			Seq:               int64(i + 1),
			PurchaseID:        "pur-" + string(rune('1'+i)),
			ItemID:            itemID,
			LotNumber:         "LN-" + string(rune('1'+i)),
			RemainingQuantity: qty(rem),
		})
	}
	uc := appinv.NewUseCase(
		&fakeTxRunner{s: store},
		&fakeItemRepo{s: store},
		&fakeLotRepo{s: store},
		&fakeRecordRepo{s: store},
		&fakeAllocRepo{s: store},
	)
	return uc, store
}

func record(item, lot string, quantity string) appinv.RecordInputDTO {
	return appinv.RecordInputDTO{
		ItemID:    item,
		Quantity:  qty(quantity),
		LotID:     lot,
		UpdatedBy: "tester",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Entradas (cantidad positiva)
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateRecord_EntradaSinLote(t *testing.T) {
	uc, store := newFixture(t, "5")

	rec, err := uc.CreateInventoryRecord(context.Background(), record(itemID, "", "10"))
	require.NoError(t, err)

	assert.Nil(t, rec.LotID, "una entrada sin lote no referencia ningún lote")
	assert.Empty(t, store.allocs)
	assert.True(t, store.lots[0].RemainingQuantity.Equal(qty("5")),
		"las entradas no mutan el ledger de lotes")
}

func TestCreateRecord_EntradaConLote_EsAditiva(t *testing.T) {
	uc, store := newFixture(t, "5")

	rec, err := uc.CreateInventoryRecord(context.Background(), record(itemID, "lot-1", "3"))
	require.NoError(t, err)

	// El record referencia el lote pero remaining_quantity queda intacto: un
	// lote nunca se recarga.
	require.NotNil(t, rec.LotID)
	assert.Equal(t, "lot-1", *rec.LotID)
	assert.True(t, store.lots[0].RemainingQuantity.Equal(qty("5")))
	assert.Empty(t, store.allocs)
}

// ──────────────────────────────────────────────────────────────────────────────
// Retiros con lote explícito
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateRecord_RetiroLoteExplicito(t *testing.T) {
	uc, store := newFixture(t, "5", "10")

	rec, err := uc.CreateInventoryRecord(context.Background(), record(itemID, "lot-2", "-4"))
	require.NoError(t, err)

	assert.Equal(t, "lot-2", *rec.LotID)
	assert.True(t, store.lots[0].RemainingQuantity.Equal(qty("5")), "el lote no nombrado queda intacto")
	assert.True(t, store.lots[1].RemainingQuantity.Equal(qty("6")))

	require.Len(t, store.allocs, 1)
	assert.Equal(t, rec.ID, store.allocs[0].RecordID)
	assert.True(t, store.allocs[0].Quantity.Equal(qty("4")))
}

func TestCreateRecord_RetiroLoteExplicito_Insuficiente(t *testing.T) {
	// Otros lotes podrían cubrir el retiro, pero con lote nombrado no hay
	// fallback a FIFO.
	uc, store := newFixture(t, "3", "100")

	_, err := uc.CreateInventoryRecord(context.Background(), record(itemID, "lot-1", "-8"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientLot)

	var lotErr *domain.InsufficientLotQuantityError
	require.ErrorAs(t, err, &lotErr)
	assert.True(t, lotErr.Requested.Equal(qty("8")))
	assert.True(t, lotErr.Available.Equal(qty("3")))
	assert.Equal(t, "LN-1", lotErr.LotNumber)

	assert.True(t, store.lots[0].RemainingQuantity.Equal(qty("3")), "nada debe mutar")
	assert.True(t, store.lots[1].RemainingQuantity.Equal(qty("100")))
	assert.Empty(t, store.records)
	assert.Empty(t, store.allocs)
}

func TestCreateRecord_LoteDeOtroItem(t *testing.T) {
	uc, store := newFixture(t, "5")
	store.lots[0].ItemID = otherID

	_, err := uc.CreateInventoryRecord(context.Background(), record(itemID, "lot-1", "-1"))
	assert.ErrorIs(t, err, domain.ErrLotNotFound)
}

func TestCreateRecord_LoteInexistente(t *testing.T) {
	uc, _ := newFixture(t, "5")

	_, err := uc.CreateInventoryRecord(context.Background(), record(itemID, "no-existe", "-1"))
	assert.ErrorIs(t, err, domain.ErrLotNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Retiros FIFO
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateRecord_FIFO_CruzaLotes(t *testing.T) {
	uc, store := newFixture(t, "5", "10")

	rec, err := uc.CreateInventoryRecord(context.Background(), record(itemID, "", "-8"))
	require.NoError(t, err)

	// 5 del primero + 3 del segundo.
	assert.True(t, store.lots[0].RemainingQuantity.IsZero())
	assert.True(t, store.lots[1].RemainingQuantity.Equal(qty("7")))

	// Un solo record por el retiro completo, apuntando al primer lote drenado.
	require.Len(t, store.records, 1)
	require.NotNil(t, rec.LotID)
	assert.Equal(t, "lot-1", *rec.LotID)
	assert.True(t, rec.Quantity.Equal(qty("-8")), "el journal guarda la cantidad firmada original")

	// Auditoría: una fila por lote consumido, sumando exactamente el retiro.
	require.Len(t, store.allocs, 2)
	sum := decimal.Zero
	for _, a := range store.allocs {
		sum = sum.Add(a.Quantity)
		assert.Equal(t, rec.ID, a.RecordID)
	}
	assert.True(t, sum.Equal(qty("8")), "doble partida: allocations == abs(quantity)")

	// La consulta de auditoría devuelve exactamente esas filas.
	got, err := uc.GetRecordAllocations(context.Background(), rec.ID)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestCreateRecord_FIFO_PrimerLoteAlcanza(t *testing.T) {
	uc, store := newFixture(t, "5", "10")

	_, err := uc.CreateInventoryRecord(context.Background(), record(itemID, "", "-4"))
	require.NoError(t, err)

	assert.True(t, store.lots[0].RemainingQuantity.Equal(qty("1")))
	assert.True(t, store.lots[1].RemainingQuantity.Equal(qty("10")), "el segundo lote no se toca")
	require.Len(t, store.allocs, 1)
}

func TestCreateRecord_FIFO_SaltaLotesAgotados(t *testing.T) {
	uc, store := newFixture(t, "0", "6")

	rec, err := uc.CreateInventoryRecord(context.Background(), record(itemID, "", "-6"))
	require.NoError(t, err)

	assert.Equal(t, "lot-2", *rec.LotID, "el lote agotado no participa del recorrido")
	assert.True(t, store.lots[1].RemainingQuantity.IsZero())
}

func TestCreateRecord_FIFO_CantidadesFraccionarias(t *testing.T) {
	uc, store := newFixture(t, "2.5", "1.25")

	_, err := uc.CreateInventoryRecord(context.Background(), record(itemID, "", "-3.75"))
	require.NoError(t, err)

	assert.True(t, store.lots[0].RemainingQuantity.IsZero())
	assert.True(t, store.lots[1].RemainingQuantity.IsZero())

	sum := decimal.Zero
	for _, a := range store.allocs {
		sum = sum.Add(a.Quantity)
	}
	assert.True(t, sum.Equal(qty("3.75")))
}

func TestCreateRecord_FIFO_Insuficiente_NoMutaNada(t *testing.T) {
	uc, store := newFixture(t, "5", "10")

	_, err := uc.CreateInventoryRecord(context.Background(), record(itemID, "", "-20"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var aggErr *domain.InsufficientAggregateQuantityError
	require.ErrorAs(t, err, &aggErr)
	assert.True(t, aggErr.Requested.Equal(qty("20")))
	assert.True(t, aggErr.Available.Equal(qty("15")))
	assert.True(t, aggErr.Shortfall().Equal(qty("5")))

	// Todo o nada: ningún lote parcialmente drenado, journal vacío.
	assert.True(t, store.lots[0].RemainingQuantity.Equal(qty("5")))
	assert.True(t, store.lots[1].RemainingQuantity.Equal(qty("10")))
	assert.Empty(t, store.records)
	assert.Empty(t, store.allocs)
}

func TestCreateRecord_FIFO_SinLotes(t *testing.T) {
	uc, _ := newFixture(t)

	_, err := uc.CreateInventoryRecord(context.Background(), record(itemID, "", "-1"))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación y consultas
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateRecord_ItemInexistente(t *testing.T) {
	uc, _ := newFixture(t, "5")

	_, err := uc.CreateInventoryRecord(context.Background(), record("no-existe", "", "-1"))
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestCreateRecord_SinActor(t *testing.T) {
	uc, _ := newFixture(t, "5")

	in := record(itemID, "", "1")
	in.UpdatedBy = ""
	_, err := uc.CreateInventoryRecord(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGetCurrentQuantity_SumaDelJournal(t *testing.T) {
	uc, _ := newFixture(t, "100")
	ctx := context.Background()

	for _, q := range []string{"10", "-3", "2.5", "-1.5"} {
		_, err := uc.CreateInventoryRecord(ctx, record(itemID, "", q))
		require.NoError(t, err)
	}

	got, err := uc.GetCurrentQuantity(ctx, itemID)
	require.NoError(t, err)
	assert.True(t, got.Equal(qty("8")), "stock = suma de cantidades firmadas, got %s", got)
}

func TestGetItemHistory_MasRecientePrimero(t *testing.T) {
	uc, _ := newFixture(t, "100")
	ctx := context.Background()

	first, err := uc.CreateInventoryRecord(ctx, record(itemID, "", "1"))
	require.NoError(t, err)
	second, err := uc.CreateInventoryRecord(ctx, record(itemID, "", "2"))
	require.NoError(t, err)

	history, err := uc.GetItemHistory(ctx, itemID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, second.ID, history[0].ID)
	assert.Equal(t, first.ID, history[1].ID)
}

func TestGetAvailableLots_ExcludeEmpty(t *testing.T) {
	uc, _ := newFixture(t, "0", "7")
	ctx := context.Background()

	all, err := uc.GetAvailableLots(ctx, itemID, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	nonEmpty, err := uc.GetAvailableLots(ctx, itemID, true)
	require.NoError(t, err)
	require.Len(t, nonEmpty, 1)
	assert.Equal(t, "lot-2", nonEmpty[0].ID)
}
