package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/Talonmortem/SHM/internal/orders"
	"github.com/Talonmortem/SHM/internal/warehouse"
)

func writeJSON(payload any) error {
	enc := json.NewEncoder(os.Stdout)
	return enc.Encode(payload)
}

func writeProducts(opts *Options, products []warehouse.Product) error {
	if opts.JSON {
		return writeJSON(products)
	}
	if len(products) == 0 {
		fmt.Fprintln(os.Stdout, "Товаров нет.")
		return nil
	}
	fmt.Fprintf(os.Stdout, "Товары (%d):\n", len(products))
	for _, p := range products {
		fmt.Fprintf(os.Stdout, "- [%d] %s | %s | %s кг | %s руб | %s\n",
			p.ID, p.Name, productStatusLabel(p.Status), p.Weight, p.SummaRubSoSkidkoj, discountLabel(p.Skidka))
	}
	return nil
}

func writeArticles(opts *Options, articles []warehouse.Article) error {
	if opts.JSON {
		return writeJSON(articles)
	}
	if len(articles) == 0 {
		fmt.Fprintln(os.Stdout, "Артикулов нет.")
		return nil
	}
	fmt.Fprintf(os.Stdout, "Артикулы (%d):\n", len(articles))
	for _, a := range articles {
		fmt.Fprintf(os.Stdout, "- [%d] код %d | %s | %.2f евро | остаток %.2f\n",
			int(a.ID), int(a.Code), a.Description, float64(a.Euro), float64(a.StockValue))
	}
	return nil
}

func writeOrders(opts *Options, orderList []warehouse.Order) error {
	if opts.JSON {
		return writeJSON(orderList)
	}
	if len(orderList) == 0 {
		fmt.Fprintln(os.Stdout, "Заказов нет.")
		return nil
	}
	fmt.Fprintf(os.Stdout, "Заказы (%d):\n", len(orderList))
	for _, o := range orderList {
		fmt.Fprintf(os.Stdout, "- [%d] %s | %s | позиций %d | долг %.2f\n",
			o.ID, o.Name, orderStatusLabel(o.Status), len(o.Components), o.Debt)
	}
	return nil
}

func writeOrderDetail(opts *Options, o warehouse.Order) error {
	if opts.JSON {
		return writeJSON(o)
	}
	fmt.Fprintf(os.Stdout, "Заказ [%d] %s | %s | оплата: %s | долг %.2f\n",
		o.ID, o.Name, orderStatusLabel(o.Status), payStateLabel(orders.PaymentState(o)), o.Debt)
	if strings.TrimSpace(o.Description) != "" {
		fmt.Fprintf(os.Stdout, "Описание: %s\n", o.Description)
	}
	if len(o.Components) > 0 {
		fmt.Fprintln(os.Stdout, "Состав:")
		for _, p := range o.Components {
			fmt.Fprintf(os.Stdout, "- [%d] %s | %s кг | %s руб\n", p.ID, p.Name, p.Weight, p.SummaRubSoSkidkoj)
		}
	}
	if len(o.Payments) > 0 {
		fmt.Fprintln(os.Stdout, "Оплаты:")
		for _, p := range o.Payments {
			fmt.Fprintf(os.Stdout, "- %s | %s | %.2f\n", p.Date, p.Method, p.Amount)
		}
	}
	return nil
}

func writeClients(opts *Options, clients []warehouse.Customer) error {
	if opts.JSON {
		return writeJSON(clients)
	}
	if len(clients) == 0 {
		fmt.Fprintln(os.Stdout, "Клиентов нет.")
		return nil
	}
	fmt.Fprintf(os.Stdout, "Клиенты (%d):\n", len(clients))
	for _, c := range clients {
		fmt.Fprintf(os.Stdout, "- [%d] %s | %s | %s | %s\n", c.ID, c.FullName, c.Phone, c.City, c.TK)
	}
	return nil
}

func writeShipments(opts *Options, shipments []warehouse.Shipment) error {
	if opts.JSON {
		return writeJSON(shipments)
	}
	if len(shipments) == 0 {
		fmt.Fprintln(os.Stdout, "Отправок нет.")
		return nil
	}
	fmt.Fprintf(os.Stdout, "Отправки (%d):\n", len(shipments))
	for _, s := range shipments {
		fmt.Fprintf(os.Stdout, "- [%d] %s | %s | %s | мест %d | %.2f руб | %.2f кг\n",
			s.ID, s.ShipDate, s.FullName, s.City, s.Places, s.Price, s.Weight)
	}
	return nil
}

func writeNotes(opts *Options, notes []warehouse.ShipmentNote) error {
	if opts.JSON {
		return writeJSON(notes)
	}
	if len(notes) == 0 {
		fmt.Fprintln(os.Stdout, "Заметок нет.")
		return nil
	}
	for _, n := range notes {
		fmt.Fprintf(os.Stdout, "- [%d] %s: %s\n", n.ID, n.ShipDate, n.Note)
	}
	return nil
}

func writePayments(opts *Options, payments []warehouse.Payment) error {
	if opts.JSON {
		return writeJSON(payments)
	}
	if len(payments) == 0 {
		fmt.Fprintln(os.Stdout, "Оплат нет.")
		return nil
	}
	var total float64
	fmt.Fprintf(os.Stdout, "Оплаты (%d):\n", len(payments))
	for _, p := range payments {
		total += p.Amount
		comment := strings.TrimSpace(p.Comment)
		if comment != "" {
			comment = " | " + comment
		}
		fmt.Fprintf(os.Stdout, "- [%d] %s | %s | заказ %d | %.2f%s\n",
			p.ID, p.Date, p.Method, p.OrderID, p.Amount, comment)
	}
	fmt.Fprintf(os.Stdout, "Итого: %.2f\n", total)
	return nil
}

func writeBalance(opts *Options, rows []warehouse.BalanceRow) error {
	if opts.JSON {
		return writeJSON(rows)
	}
	if len(rows) == 0 {
		fmt.Fprintln(os.Stdout, "Остатков нет.")
		return nil
	}
	fmt.Fprintln(os.Stdout, "Остатки:")
	for _, r := range rows {
		fmt.Fprintf(os.Stdout, "- код %d | %s | приход %.2f | отправлено %.2f | остаток %.2f | резерв %.2f | свободно %.2f\n",
			int(r.Code), r.Description, float64(r.IncomeKg), float64(r.SentKg), float64(r.BalanceKg), float64(r.ReservedKg), float64(r.FreeKg))
	}
	return nil
}

func productStatusLabel(status int) string {
	switch status {
	case warehouse.ProductForSale:
		return "в продаже"
	case warehouse.ProductReserved:
		return "в резерве"
	case warehouse.ProductSold:
		return "продан"
	default:
		return fmt.Sprintf("статус %d", status)
	}
}

func orderStatusLabel(status int) string {
	switch status {
	case warehouse.OrderNew:
		return "новый"
	case warehouse.OrderReadyToShip:
		return "готов к отправке"
	case warehouse.OrderShipped:
		return "отправлен"
	default:
		return fmt.Sprintf("статус %d", status)
	}
}

func payStateLabel(state orders.PayState) string {
	switch state {
	case orders.PayNone:
		return "нет оплат"
	case orders.PayPartial:
		return "частично"
	default:
		return "оплачен"
	}
}

func discountLabel(skidka string) string {
	skidka = strings.TrimSpace(skidka)
	if skidka == "" || skidka == "0" {
		return "без скидки"
	}
	if !strings.HasSuffix(skidka, "%") {
		skidka += "%"
	}
	return "скидка " + skidka
}
