package application

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/bizdesk/go-business-records/internal/domains/orders/domain"
)

func TestAssemble_ExactDecimalTotals(t *testing.T) {
	assembler := NewAssembler()
	// 0.10 * 3 + 0.20 must be exactly 0.50; float math would drift here.
	order := assembler.Assemble(domain.CustomerInfo{FirstName: "Ada"}, []domain.LineSnapshot{
		{ProductID: uuid.New(), ProductName: "Widget", Quantity: 3, UnitPrice: decimal.RequireFromString("0.10")},
		{ProductID: uuid.New(), ProductName: "Gadget", Quantity: 1, UnitPrice: decimal.RequireFromString("0.20")},
	})

	require.True(t, order.TotalPrice.Equal(decimal.RequireFromString("0.50")))
	require.NoError(t, order.Validate())
}

func TestAssemble_LinksItemsToOrder(t *testing.T) {
	assembler := NewAssembler()
	order := assembler.Assemble(domain.CustomerInfo{FirstName: "Ada"}, []domain.LineSnapshot{
		{ProductID: uuid.New(), ProductName: "Widget", Quantity: 2, UnitPrice: decimal.New(10, 0)},
	})

	require.NotEqual(t, uuid.Nil, order.ID)
	require.Equal(t, domain.StatusPending, order.Status)
	require.Len(t, order.Items, 1)
	require.Equal(t, order.ID, order.Items[0].OrderID)
	require.NotEqual(t, uuid.Nil, order.Items[0].ID)
	require.True(t, order.Items[0].LineTotal.Equal(decimal.New(20, 0)))
}

func TestAssemble_OrderNumberFormat(t *testing.T) {
	fixed := time.Date(2025, 12, 31, 23, 59, 0, 0, time.UTC)
	assembler := NewAssembler().WithClock(func() time.Time { return fixed })
	order := assembler.Assemble(domain.CustomerInfo{}, []domain.LineSnapshot{
		{ProductID: uuid.New(), Quantity: 1, UnitPrice: decimal.New(1, 0)},
	})

	require.Regexp(t, `^ORD-2512312359-[0-9A-F]{4}$`, order.OrderNumber)
}
