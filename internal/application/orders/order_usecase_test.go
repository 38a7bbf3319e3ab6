package orders_test

import (
	"context"
	"testing"
	"time"

	"github.com/jhoicas/sorveteria-estoque/internal/application/dto"
	"github.com/jhoicas/sorveteria-estoque/internal/application/orders"
	"github.com/jhoicas/sorveteria-estoque/internal/domain"
	"github.com/jhoicas/sorveteria-estoque/internal/domain/entity"
	"github.com/jhoicas/sorveteria-estoque/internal/infrastructure/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fakePDF struct {
	last orders.PurchaseOrderDocument
}

func (f *fakePDF) GeneratePurchaseOrderPDF(_ context.Context, doc orders.PurchaseOrderDocument) ([]byte, error) {
	f.last = doc
	return []byte("%PDF-fake"), nil
}

func newOrderUseCase(t *testing.T) (*orders.OrderUseCase, *fakePDF) {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	products := memory.NewProductRepository(store)
	suppliers := memory.NewSupplierRepository(store)
	require.NoError(t, suppliers.Create(ctx, &entity.Supplier{ID: "s1", Name: "Laticínios Serra", Phone: "(11) 98765-4321"}))
	require.NoError(t, suppliers.Create(ctx, &entity.Supplier{ID: "s2", Name: "Embalagens SP", Phone: "11 3000-0000"}))
	for _, p := range []entity.Product{
		{ID: "leite", Name: "Leite integral", Unit: "L", UnitCost: dec("4.50"), SupplierID: "s1"},
		{ID: "creme", Name: "Creme de leite", Unit: "kg", UnitCost: dec("12"), SupplierID: "s1"},
		{ID: "pote", Name: "Pote 500ml", Unit: "un", UnitCost: dec("0.35"), SupplierID: "s2"},
		{ID: "avulso", Name: "Sem fornecedor", Unit: "un", UnitCost: dec("1")},
		{ID: "orfao", Name: "Fornecedor removido", Unit: "un", UnitCost: dec("1"), SupplierID: "s9"},
	} {
		p := p
		require.NoError(t, products.Create(ctx, &p))
	}
	pdf := &fakePDF{}
	uc := orders.NewOrderUseCase(products, suppliers, pdf, "55").
		WithClock(func() time.Time { return time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC) })
	return uc, pdf
}

func TestBuildSupplierMessage(t *testing.T) {
	msg := orders.BuildSupplierMessage(
		entity.Supplier{Name: "Laticínios Serra"},
		[]entity.OrderLine{
			{Product: entity.Product{Name: "Leite integral", Unit: "L"}, Quantity: dec("20")},
			{Product: entity.Product{Name: "Creme de leite", Unit: "kg"}, Quantity: dec("2.5")},
		},
	)
	want := "Olá Laticínios Serra!\n\n" +
		"Preciso dos seguintes itens:\n\n" +
		"• 20 L de Leite integral\n" +
		"• 2.5 kg de Creme de leite\n" +
		"\nPor favor, confirme a disponibilidade e o valor total.\n\n" +
		"Obrigado!"
	assert.Equal(t, want, msg)
}

func TestMessageLink(t *testing.T) {
	link, ok := orders.MessageLink("55", "(11) 98765-4321", "Olá a+b & c")
	require.True(t, ok)
	assert.Equal(t, "https://wa.me/5511987654321?text=Ol%C3%A1%20a%2Bb%20%26%20c", link)

	link, ok = orders.MessageLink("55", "11 98765-4321", "Obrigado! (2*) 'ok' ~_.-")
	require.True(t, ok)
	assert.Equal(t, "https://wa.me/5511987654321?text=Obrigado!%20(2*)%20'ok'%20~_.-", link)

	_, ok = orders.MessageLink("55", "sem telefone", "x")
	assert.False(t, ok)
}

func TestPreview_AgrupaPorProveedorYDescartaSinResolver(t *testing.T) {
	uc, _ := newOrderUseCase(t)
	out, err := uc.Preview(context.Background(), dto.OrderPreviewRequest{Items: []dto.OrderItemDTO{
		{ProductID: "creme", Quantity: dec("2")},
		{ProductID: "pote", Quantity: dec("100")},
		{ProductID: "leite", Quantity: dec("20")},
		{ProductID: "avulso", Quantity: dec("1")},
		{ProductID: "orfao", Quantity: dec("1")},
		{ProductID: "nao-existe", Quantity: dec("1")},
	}})
	require.NoError(t, err)
	require.Len(t, out.Orders, 2)

	emb := out.Orders[0]
	assert.Equal(t, "Embalagens SP", emb.SupplierName)
	assert.True(t, emb.EstimatedValue.Equal(dec("35")))

	lat := out.Orders[1]
	require.Len(t, lat.Lines, 2)
	assert.Equal(t, "creme", lat.Lines[0].ProductID, "conserva el orden del borrador")
	assert.Equal(t, "leite", lat.Lines[1].ProductID)
	assert.True(t, lat.EstimatedValue.Equal(dec("114")), "2*12 + 20*4.50")
	assert.Contains(t, lat.Message, "• 20 L de Leite integral\n")
	assert.Contains(t, lat.MessageLink, "https://wa.me/5511987654321?text=")

	assert.True(t, out.EstimatedValue.Equal(dec("149")))
}

func TestPreview_CantidadInvalida(t *testing.T) {
	uc, _ := newOrderUseCase(t)
	_, err := uc.Preview(context.Background(), dto.OrderPreviewRequest{Items: []dto.OrderItemDTO{
		{ProductID: "leite", Quantity: dec("0")},
	}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPurchaseOrderPDF(t *testing.T) {
	uc, pdf := newOrderUseCase(t)
	req := dto.OrderPreviewRequest{Items: []dto.OrderItemDTO{
		{ProductID: "leite", Quantity: dec("20")},
		{ProductID: "pote", Quantity: dec("100")},
	}}

	doc, name, err := uc.PurchaseOrderPDF(context.Background(), "s1", req)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-fake"), doc)
	assert.Equal(t, "pedido-s1-2026-03-15.pdf", name)
	assert.Equal(t, "Laticínios Serra", pdf.last.Supplier.Name)
	require.Len(t, pdf.last.Lines, 1)
	assert.True(t, pdf.last.EstimatedValue.Equal(dec("90")))
	assert.NotEmpty(t, pdf.last.MessageLink)

	_, _, err = uc.PurchaseOrderPDF(context.Background(), "s9", req)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
