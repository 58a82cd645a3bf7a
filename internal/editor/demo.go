package editor

import "github.com/mmynk/dinesplit/internal/models"

type demoItem struct {
	name     string
	price    float64
	assignee []int
}

// DemoBill builds the sample bill used to populate an empty store.
func (e *Editor) DemoBill() models.Bill {
	bill, _ := e.NewBill("Bistro Central", 0.085, 0.18)

	for _, name := range []string{"Alice", "Bob", "Charlie"} {
		bill, _ = e.AddDiner(bill, name)
	}

	menu := []demoItem{
		{"Grilled Salmon", 24.99, []int{0}},
		{"Truffle Fries", 8.50, []int{0, 1, 2}},
		{"Caesar Salad", 12.00, []int{1}},
		{"Margherita Pizza", 16.99, []int{1, 2}},
		{"Chicken Alfredo", 18.50, []int{2}},
		{"Glass of Wine", 9.00, []int{0}},
		{"Tiramisu", 7.50, []int{0, 1}},
		{"Iced Tea", 3.50, []int{2}},
		{"Garlic Bread", 5.99, []int{0, 1, 2}},
		{"Chocolate Cake", 8.00, []int{1}},
		{"Espresso", 4.50, []int{0}},
		{"Bruschetta", 6.99, []int{0, 2}},
	}
	for _, m := range menu {
		bill, _ = e.AddItem(bill, m.name, m.price)
		itemID := bill.Items[len(bill.Items)-1].ID
		for _, d := range m.assignee {
			bill = AssignItem(bill, itemID, bill.Diners[d].ID)
		}
	}
	return bill
}
