package warehouse

import (
	"encoding/json"

	"github.com/Talonmortem/SHM/internal/numeric"
)

// Product lifecycle statuses as stored by the service.
const (
	ProductForSale  = 1
	ProductReserved = 2
	ProductSold     = 3
)

// Order statuses.
const (
	OrderNew         = 0
	OrderReadyToShip = 1
	OrderShipped     = 2
)

// FlexFloat decodes JSON numbers that the service may deliver either as a
// number or as a locale-formatted string.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		*f = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, _ := numeric.Parse(s).Float64()
		*f = FlexFloat(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = FlexFloat(v)
	return nil
}

// FlexInt is FlexFloat truncated to an integer.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	var v FlexFloat
	if err := v.UnmarshalJSON(data); err != nil {
		return err
	}
	*f = FlexInt(v)
	return nil
}

// Article is a purchased supply lot. Stock decreases server-side as lots are
// consumed into products; the console only reads the latest snapshot.
type Article struct {
	ID          FlexInt   `json:"id"`
	ServiceID   FlexInt   `json:"serviceId"`
	Code        FlexInt   `json:"code"`
	Description string    `json:"description"`
	Euro        FlexFloat `json:"euro"`
	Value       FlexFloat `json:"value"`
	Kg          FlexFloat `json:"kg"`
	StockValue  FlexFloat `json:"stockValue"`
}

// ArticleInProduct is one costing line of a product. The derived sums are kept
// as canonical 2-decimal strings, which is how the service stores them.
type ArticleInProduct struct {
	ID        int    `json:"id"`
	Article   int    `json:"article"`
	CursEvro  string `json:"cursEvro"`
	PriceEvro string `json:"priceEvro"`
	Weight    string `json:"weight"`
	Count     int    `json:"count"`
	SumEvro   string `json:"sumEvro"`
	SumRub    string `json:"sumRub"`
}

type Product struct {
	ID                int                `json:"id"`
	Status            int                `json:"status"`
	Name              string             `json:"name"`
	ArticlesInProduct []ArticleInProduct `json:"articlesInProduct"`
	Video             string             `json:"video"`
	Description       string             `json:"description"`
	Skidka            string             `json:"skidka"`
	Weight            string             `json:"weight"`
	Count             int                `json:"count"`
	SummaRubSoSkidkoj string             `json:"summaRubSoSkidkoj"`
	OnePrice          string             `json:"onePrice"`
}

type Payment struct {
	ID      int     `json:"id"`
	Date    string  `json:"date"`
	Method  string  `json:"method"`
	OrderID int     `json:"order_id"`
	Amount  float64 `json:"amount"`
	Comment string  `json:"comment"`
}

// Order embeds a snapshot of its component products as they were at commit
// time; later product edits do not rewrite persisted orders.
type Order struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Components  []Product `json:"components"`
	Quantity    int       `json:"quantity"`
	Status      int       `json:"status"`
	Description string    `json:"description"`
	Payments    []Payment `json:"payments"`
	Debt        float64   `json:"debt"`
}

// Customer is a saved client card used to prefill shipment forms.
type Customer struct {
	ID             int    `json:"id"`
	City           string `json:"city"`
	FullName       string `json:"full_name"`
	Phone          string `json:"phone"`
	PassportNumber string `json:"passport_number"`
	TK             string `json:"tk"`
	Comment        string `json:"comment"`
}

type Shipment struct {
	ID          int     `json:"id"`
	ShipDate    string  `json:"ship_date"`
	City        string  `json:"city"`
	FullName    string  `json:"full_name"`
	Phone       string  `json:"phone"`
	PassportInn string  `json:"passport_inn"`
	TK          string  `json:"tk"`
	Places      int     `json:"places"`
	Price       float64 `json:"price"`
	Weight      float64 `json:"weight"`
}

type ShipmentNote struct {
	ID       int    `json:"id"`
	ShipDate string `json:"ship_date"`
	Note     string `json:"note"`
}

type PaymentMethod struct {
	ID     int    `json:"id"`
	Method string `json:"method"`
}

// BalanceRow is one line of the per-article stock balance report.
type BalanceRow struct {
	ID          int       `json:"id"`
	No          int       `json:"no"`
	Code        FlexInt   `json:"code"`
	Description string    `json:"description"`
	IncomeKg    FlexFloat `json:"incomeKg"`
	SentKg      FlexFloat `json:"sentKg"`
	BalanceKg   FlexFloat `json:"balanceKg"`
	ReservedKg  FlexFloat `json:"reservedKg"`
	FreeKg      FlexFloat `json:"freeKg"`
}

type generatedName struct {
	Name string `json:"name"`
}

type orderEnvelope struct {
	Order *Order `json:"order"`
}
