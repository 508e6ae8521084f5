package purchase

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/api/validators"
)

func TestCreateInputAcceptsFullLineShape(t *testing.T) {
	body := `{
		"supplier_id": "0b907a22-5f7a-4f0a-8c57-3cea1c8f9b11",
		"warehouse_id": "7f3e2d0c-90c1-4f55-bc0f-57a2f3f4d9a2",
		"order_date": "2025-08-01T00:00:00Z",
		"tax_rate": "8",
		"details": [
			{
				"product_id": "2f6d8e4a-70b3-41c8-9d34-6c1f0a9b8e55",
				"quantity": "3",
				"unit_price": "50000",
				"discount_percent": "10",
				"tax_rate": "5"
			}
		]
	}`
	req := httptest.NewRequest("POST", "/api/v1/purchase-orders", strings.NewReader(body))

	var input CreateInput
	err := validators.DecodeJSONBody(req, &input)
	require.NoError(t, err)
	require.Len(t, input.Lines, 1)
	require.True(t, input.Lines[0].DiscountPercent.Equal(d("10")))
	require.True(t, input.Lines[0].TaxRate.Equal(d("5")))
}
