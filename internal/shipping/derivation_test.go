package shipping

import (
	"testing"

	"github.com/Talonmortem/SHM/internal/warehouse"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func orderWithComponents() warehouse.Order {
	return warehouse.Order{
		ID:     10,
		Status: warehouse.OrderReadyToShip,
		Components: []warehouse.Product{
			{ID: 1, SummaRubSoSkidkoj: "1800.00", Weight: "2.00"},
			{ID: 2, SummaRubSoSkidkoj: "2500.00", Weight: "10.50"},
		},
	}
}

func TestDraftFromOrderDerivesAutoFields(t *testing.T) {
	d := DraftFromOrder(orderWithComponents(), "2025-10-01")

	assert.Equal(t, "2025-10-01", d.ShipDate)
	assert.Equal(t, "2", d.Places)
	assert.Equal(t, "4300.00", d.Price)
	assert.Equal(t, "12.5", d.Weight)
}

func TestManualEditPinsOnlyThatField(t *testing.T) {
	o := orderWithComponents()
	d := DraftFromOrder(o, "")

	d.SetAuto(FieldWeight, "20")

	// Another component appears; weight must stay manual, the rest follow.
	o.Components = append(o.Components, warehouse.Product{ID: 3, SummaRubSoSkidkoj: "700.00", Weight: "1.00"})
	d.Recompute(o.Components)

	assert.Equal(t, "20", d.Weight)
	assert.Equal(t, "3", d.Places)
	assert.Equal(t, "5000.00", d.Price)
}

func TestNewDraftResetsOverrides(t *testing.T) {
	o := orderWithComponents()
	d := DraftFromOrder(o, "")
	d.SetAuto(FieldPrice, "1")
	assert.True(t, d.Overridden().Price)

	fresh := DraftFromOrder(o, "")
	assert.False(t, fresh.Overridden().Price)
	assert.Equal(t, "4300.00", fresh.Price)
}

func TestValidate(t *testing.T) {
	d := NewDraft("")
	assert.ErrorIs(t, d.Validate(), ErrDateRequired)

	d.ShipDate = "2025-10-01"
	assert.ErrorIs(t, d.Validate(), ErrFullNameRequired)

	d.FullName = "   "
	assert.ErrorIs(t, d.Validate(), ErrFullNameRequired)

	d.FullName = "Ivanova A.P."
	assert.NoError(t, d.Validate())
}

func TestPayloadTruncatesPlaces(t *testing.T) {
	d := NewDraft("2025-10-01")
	d.FullName = "Ivanova A.P."
	d.SetAuto(FieldPlaces, "3,9")
	d.SetAuto(FieldPrice, "4 300,50")
	d.SetAuto(FieldWeight, "12,5")

	s, err := d.Payload()
	require.NoError(t, err)
	assert.Equal(t, 3, s.Places)
	assert.Equal(t, 4300.5, s.Price)
	assert.Equal(t, 12.5, s.Weight)
}

func TestDraftFromShipmentPinsEverything(t *testing.T) {
	d := DraftFromShipment(warehouse.Shipment{ID: 5, ShipDate: "2025-10-01", FullName: "Ivanova A.P.", Places: 4, Price: 100, Weight: 7})
	d.Recompute(nil)
	assert.Equal(t, "4", d.Places)
	assert.Equal(t, "100", d.Price)
	assert.Equal(t, "7", d.Weight)
}

func TestSuggest(t *testing.T) {
	clients := []warehouse.Customer{
		{ID: 1, FullName: "Ivanova Anna", Phone: "+7 900 111-22-33", PassportNumber: "4510 123456", City: "Kazan", TK: "CDEK"},
		{ID: 2, FullName: "Petrov Ivan", Phone: "+7 900 444-55-66"},
	}

	assert.Len(t, Suggest(clients, ByFullName, "ivan"), 2)
	assert.Len(t, Suggest(clients, ByPhone, "111"), 1)
	assert.Empty(t, Suggest(clients, ByFullName, "  "))

	exact := FindExact(clients, ByFullName, " ivanova anna ")
	require.NotNil(t, exact)
	assert.Equal(t, 1, exact.ID)
	assert.Nil(t, FindExact(clients, ByPassport, "0000"))
}

func TestApplyClient(t *testing.T) {
	d := NewDraft("2025-10-01")
	c := warehouse.Customer{City: "Kazan", FullName: "Ivanova Anna", Phone: "+7 900 111-22-33", PassportNumber: "4510 123456", TK: "CDEK"}

	ApplyClient(d, c, "")
	assert.Equal(t, "Ivanova Anna", d.FullName)
	assert.Equal(t, "Kazan", d.City)
	assert.Equal(t, "CDEK", d.TK)

	ApplyClient(d, c, "Ivanova A.")
	assert.Equal(t, "Ivanova A.", d.FullName)
	assert.Equal(t, "+7 900 111-22-33", d.Phone)
}

func TestSuggestLimit(t *testing.T) {
	clients := make([]warehouse.Customer, 0, 12)
	for i := 0; i < 12; i++ {
		clients = append(clients, warehouse.Customer{ID: i, FullName: "Ivanova"})
	}
	assert.Len(t, Suggest(clients, ByFullName, "ivanova"), maxSuggestions)
}
