package inventory

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestStockEntriesValuation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"warehouse_id":10,"sellable_on_hand_value":"100.50"},
			{"warehouse_id":10,"sellable_on_hand_value":null},
			{"warehouse_id":10,"sellable_on_hand_value":""},
			{"warehouse_id":10,"sellable_on_hand_value":49.50},
			{"warehouse_id":20,"sellable_on_hand_value":"999.99"}
		]`))
	}))
	defer server.Close()

	client := testClient(server.URL)
	got, err := client.StockEntriesValuation(context.Background(), "10")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.String() != "150" {
		t.Errorf("total = %s, want 150", got)
	}
}

func TestStockEntriesValuationAllWarehouses(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`[
			{"warehouse_id":10,"sellable_on_hand_value":"1.00"},
			{"warehouse_id":20,"sellable_on_hand_value":"2.00"}
		]`))
	}))
	defer server.Close()

	client := testClient(server.URL)
	got, err := client.StockEntriesValuation(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.String() != "3" {
		t.Errorf("total = %s, want 3", got)
	}
	if gotQuery != "per_page=200&page=1" {
		t.Errorf("query = %q, want no warehouse filter", gotQuery)
	}
}

func TestStockEntriesValuationPaginated(t *testing.T) {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "1" {
			w.Header().Set("Link", "<"+server.URL+"/stock_entries?warehouse_id=10&per_page=200&page=2>; rel=\"next\"")
			w.Write([]byte(`[{"warehouse_id":"10","sellable_on_hand_value":"10.10"}]`))
			return
		}
		w.Write([]byte(`[{"warehouse_id":"10","sellable_on_hand_value":"0.05"},{"warehouse_id":"10","sellable_on_hand_value":"19.85"}]`))
	}))
	defer server.Close()

	client := testClient(server.URL)
	got, err := client.StockEntriesValuation(context.Background(), "10")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.String() != "30" {
		t.Errorf("total = %s, want exactly 30", got)
	}
}

func TestMatchesLocation(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"numeric id", `[{"warehouse_id":7,"sellable_on_hand_value":"5"}]`, "5"},
		{"string id", `[{"warehouse_id":"7","sellable_on_hand_value":"5"}]`, "5"},
		{"null id", `[{"warehouse_id":null,"sellable_on_hand_value":"5"}]`, "0"},
		{"other id", `[{"warehouse_id":8,"sellable_on_hand_value":"5"}]`, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := reportServer(t, tt.body)
			client := testClient(server.URL)
			got, err := client.StockEntriesValuation(context.Background(), "7")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.String() != tt.want {
				t.Errorf("total = %s, want %s", got, tt.want)
			}
		})
	}
}
