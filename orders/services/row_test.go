package services

import "testing"

func TestRowField(t *testing.T) {
	headers := []string{"Invoice No", "Customer Name", "Product", "Sales QTY", "Unit Price", "Notes"}
	values := []string{"INV-001", "Acme", "Widget", "5", "10.00", ""}
	row := NewRow(headers, values)

	tests := []struct {
		name   string
		keys   []string
		want   string
		wantOk bool
	}{
		{
			name:   "substring match is case-insensitive",
			keys:   []string{"qty"},
			want:   "5",
			wantOk: true,
		},
		{
			name:   "priority order wins over header order",
			keys:   []string{"customer", "invoice"},
			want:   "Acme",
			wantOk: true,
		},
		{
			name:   "falls through to later key when first has no match",
			keys:   []string{"quantity ordered", "qty"},
			want:   "5",
			wantOk: true,
		},
		{
			name:   "empty cells are skipped",
			keys:   []string{"notes"},
			want:   "",
			wantOk: false,
		},
		{
			name:   "unknown header",
			keys:   []string{"warehouse"},
			want:   "",
			wantOk: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := row.Field(tt.keys...)
			if got != tt.want || ok != tt.wantOk {
				t.Errorf("Field(%v) = (%q, %v), want (%q, %v)", tt.keys, got, ok, tt.want, tt.wantOk)
			}
		})
	}
}

func TestRowFieldTrimsValues(t *testing.T) {
	row := NewRow([]string{"Customer"}, []string{"  Acme  "})
	got, ok := row.Field("customer")
	if !ok || got != "Acme" {
		t.Errorf("Field(customer) = (%q, %v), want (\"Acme\", true)", got, ok)
	}
}

func TestRowIsEmpty(t *testing.T) {
	tests := []struct {
		name    string
		headers []string
		values  []string
		want    bool
	}{
		{"all blank", []string{"A", "B"}, []string{"", "  "}, true},
		{"one value", []string{"A", "B"}, []string{"", "x"}, false},
		{"no cells", []string{"A", "B"}, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := NewRow(tt.headers, tt.values)
			if got := row.IsEmpty(); got != tt.want {
				t.Errorf("IsEmpty() = %v, want %v", got, tt.want)
			}
		})
	}
}
