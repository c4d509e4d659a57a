package api

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestNormalizeExpenseEmbeddedCategoryName(t *testing.T) {
	raw := json.RawMessage(`{"id":"e1","nombreGasto":"Lunch","monto":12.5,"fechaGasto":"2024-03-02","categoria":{"_id":"C9","name":"Food"}}`)
	e, ok := NormalizeExpense(raw)
	if !ok {
		t.Fatal("NormalizeExpense returned !ok")
	}
	if e.CategoryName != "Food" || e.EmbeddedCategory != "Food" {
		t.Fatalf("CategoryName = %q, EmbeddedCategory = %q, want Food", e.CategoryName, e.EmbeddedCategory)
	}
	if e.CategoryID != "C9" {
		t.Fatalf("CategoryID = %q, want C9 from embedded object", e.CategoryID)
	}
	if !e.Amount.Equal(decimal.RequireFromString("12.5")) {
		t.Fatalf("Amount = %s, want 12.5", e.Amount)
	}
}

func TestNormalizeExpenseKeySpellings(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantName string
		wantCat  string
		wantCID  string
		wantDate string
	}{
		{
			name:     "flat nombreCategoria",
			raw:      `{"id":"1","nombreGasto":"Bus","monto":"3","fechaGasto":"2024-01-01","nombreCategoria":"Transport"}`,
			wantName: "Bus", wantCat: "Transport", wantDate: "2024-01-01",
		},
		{
			name:     "english keys",
			raw:      `{"_id":"2","name":"Taxi","amount":7,"date":"2024-01-02T10:00:00Z","categoryName":"Transport","categoryId":"c2"}`,
			wantName: "Taxi", wantCat: "Transport", wantCID: "c2", wantDate: "2024-01-02",
		},
		{
			name:     "categoria as plain string",
			raw:      `{"id":"3","titulo":"Gym","monto":30,"fecha":"2024-01-03","categoria":"Health"}`,
			wantName: "Gym", wantCat: "Health", wantDate: "2024-01-03",
		},
		{
			name:     "id only, snake case",
			raw:      `{"id":"4","nombreGasto":"Rent","monto":300,"fechaGasto":"2024-01-01","categoria_id":"c1"}`,
			wantName: "Rent", wantCID: "c1", wantDate: "2024-01-01",
		},
		{
			name:     "category id as object",
			raw:      `{"id":"5","nombreGasto":"Tea","monto":2,"fechaGasto":"2024-01-05","categoriaID":{"id":"c7"}}`,
			wantName: "Tea", wantCID: "c7", wantDate: "2024-01-05",
		},
		{
			name:     "numeric category id",
			raw:      `{"id":6,"nombreGasto":"Tea","monto":2,"fechaGasto":"2024-01-05","categoriaId":12}`,
			wantName: "Tea", wantCID: "12", wantDate: "2024-01-05",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, ok := NormalizeExpense(json.RawMessage(tt.raw))
			if !ok {
				t.Fatal("NormalizeExpense returned !ok")
			}
			if e.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", e.Name, tt.wantName)
			}
			if e.CategoryName != tt.wantCat {
				t.Errorf("CategoryName = %q, want %q", e.CategoryName, tt.wantCat)
			}
			if e.CategoryID != tt.wantCID {
				t.Errorf("CategoryID = %q, want %q", e.CategoryID, tt.wantCID)
			}
			if e.Date != tt.wantDate {
				t.Errorf("Date = %q, want %q", e.Date, tt.wantDate)
			}
		})
	}
}

func TestNormalizeExpenseGeneratesMissingID(t *testing.T) {
	e, ok := NormalizeExpense(json.RawMessage(`{"monto":5}`))
	if !ok {
		t.Fatal("NormalizeExpense returned !ok")
	}
	if e.ID == "" {
		t.Fatal("expected a generated id")
	}
	if e.Name != "Expense" {
		t.Fatalf("Name = %q, want fallback", e.Name)
	}
}

func TestNormalizeCategories(t *testing.T) {
	raws := []json.RawMessage{
		json.RawMessage(`{"id":1,"nombreCategoria":"Food"}`),
		json.RawMessage(`{"_id":"abc","nombre":"Rent"}`),
		json.RawMessage(`{"id":"x","nombre_categoria":"Fun"}`),
		json.RawMessage(`{"id":"y"}`),
		json.RawMessage(`"Loose"`),
		json.RawMessage(`true`),
	}
	cats := NormalizeCategories(raws)
	if len(cats) != 5 {
		t.Fatalf("len = %d, want 5", len(cats))
	}
	want := []struct{ id, name string }{
		{"1", "Food"}, {"abc", "Rent"}, {"x", "Fun"}, {"y", "Category 4"}, {"Loose", "Loose"},
	}
	for i, w := range want {
		if cats[i].ID != w.id || cats[i].Name != w.name {
			t.Errorf("cats[%d] = %+v, want id=%q name=%q", i, cats[i], w.id, w.name)
		}
	}
}

func TestDecodeListWrapped(t *testing.T) {
	list, err := decodeList([]byte(`{"data":[{"id":"1"},{"id":"2"}]}`), "gastos", "data")
	if err != nil {
		t.Fatalf("decodeList: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("len = %d, want 2", len(list))
	}

	list, err = decodeList([]byte(`null`))
	if err != nil || list != nil {
		t.Fatalf("null body: list=%v err=%v", list, err)
	}

	if _, err := decodeList([]byte(`{"other":1}`), "data"); err == nil {
		t.Fatal("expected error for object without list")
	}
}

func TestBackendMessage(t *testing.T) {
	cases := []struct{ body, want string }{
		{`{"message":"correo en uso"}`, "correo en uso"},
		{`{"message":["a","b"]}`, "a, b"},
		{`{"error":"Unauthorized"}`, "Unauthorized"},
		{`not json`, ""},
		{`{"statusCode":500}`, ""},
	}
	for _, c := range cases {
		if got := backendMessage([]byte(c.body)); got != c.want {
			t.Errorf("backendMessage(%s) = %q, want %q", c.body, got, c.want)
		}
	}
}
