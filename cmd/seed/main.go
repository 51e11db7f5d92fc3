// Command seed loads a demo user with customers and bills spanning two
// months, enough to light up every report during local development.
// Safe to run repeatedly: it exits early if the demo user already exists.
package main

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"gst-billing/internal/core"
	"gst-billing/internal/db"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

const (
	demoUsername = "demo"
	demoPassword = "demo12345"
)

func main() {
	_ = godotenv.Load()

	url := os.Getenv("DATABASE_URL")
	if url == "" {
		log.Fatal("[CONFIG] DATABASE_URL is not set")
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, url)
	if err != nil {
		log.Fatalf("[CONNECT] %v", err)
	}
	defer pool.Close()

	users := core.NewUserService(pool)
	customers := core.NewCustomerService(pool)
	bills := core.NewBillService(pool)

	if _, err := users.GetByUsername(ctx, demoUsername); err == nil {
		log.Println("[SKIP] demo user already exists")
		return
	} else if !errors.Is(err, core.ErrNotFound) {
		log.Fatalf("[ERROR] check demo user: %v", err)
	}

	user, err := users.Create(ctx, demoUsername, demoPassword, "Demo Traders")
	if err != nil {
		log.Fatalf("[ERROR] create demo user: %v", err)
	}
	log.Printf("[USER] %s (id=%d)", user.Username, user.ID)

	customerSpecs := []core.CustomerInput{
		{Name: "Acme Stores", Email: "acme@example.com", Phone: "+91-9876543210", Address: "12 MG Road, Pune"},
		{Name: "Bharat Supplies", Email: "orders@bharatsupplies.in", Phone: "+91-9123456780", Address: "4 Station Road, Nashik"},
		{Name: "Sunrise Mart", Email: "hello@sunrisemart.in", Phone: "+91-9988776655", Address: "88 Lake View, Mumbai"},
	}
	var created []*core.Customer
	for _, spec := range customerSpecs {
		c, err := customers.Create(ctx, user.ID, spec)
		if err != nil {
			log.Fatalf("[ERROR] create customer %s: %v", spec.Name, err)
		}
		created = append(created, c)
		log.Printf("[CUSTOMER] %s (id=%d)", c.Name, c.ID)
	}

	item := func(desc string, qty int, price, rate string) core.LineItem {
		return core.LineItem{
			Description: desc,
			Quantity:    qty,
			UnitPrice:   decimal.RequireFromString(price),
			GSTRate:     decimal.RequireFromString(rate),
		}
	}
	now := time.Now()
	lastMonth := now.AddDate(0, -1, 0)

	billSpecs := []struct {
		customer *core.Customer
		number   string
		date     time.Time
		status   core.BillStatus
		items    []core.LineItem
	}{
		{created[0], "BILL-0001", lastMonth, core.BillStatusPaid, []core.LineItem{
			item("Steel Bucket 10L", 12, "149.50", "18"),
			item("Garden Hose 15m", 3, "499.00", "12"),
		}},
		{created[1], "BILL-0002", lastMonth.AddDate(0, 0, 6), core.BillStatusOverdue, []core.LineItem{
			item("LED Bulb 9W", 50, "85.00", "18"),
		}},
		{created[0], "BILL-0003", now.AddDate(0, 0, -7), core.BillStatusUnpaid, []core.LineItem{
			item("Steel Bucket 10L", 8, "149.50", "18"),
			item("Cotton Towel", 20, "120.00", "5"),
		}},
		{created[2], "BILL-0004", now.AddDate(0, 0, -2), core.BillStatusUnpaid, []core.LineItem{
			item("Rice Bag 25kg", 10, "1150.00", "0"),
			item("LED Bulb 9W", 10, "85.00", "18"),
		}},
	}
	for _, spec := range billSpecs {
		draft, err := core.BuildBill(spec.customer.ID, spec.number, spec.date, spec.date.AddDate(0, 0, 30), spec.items)
		if err != nil {
			log.Fatalf("[ERROR] build %s: %v", spec.number, err)
		}
		bill, err := bills.Create(ctx, user.ID, draft)
		if err != nil {
			log.Fatalf("[ERROR] create %s: %v", spec.number, err)
		}
		if spec.status != core.BillStatusUnpaid {
			if _, err := bills.UpdateStatus(ctx, user.ID, bill.ID, spec.status); err != nil {
				log.Fatalf("[ERROR] set %s status: %v", spec.number, err)
			}
		}
		log.Printf("[BILL] %s total=%s status=%s", bill.BillNumber, bill.Total, spec.status)
	}

	log.Println("[DONE] demo data loaded; login as demo/demo12345")
}
