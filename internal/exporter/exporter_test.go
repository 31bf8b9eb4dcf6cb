package exporter

import (
	"strings"
	"testing"

	"vehicletracker/internal/vehicle"
)

func TestWriteEmptyInventory(t *testing.T) {
	t.Parallel()
	var sb strings.Builder
	if err := Write(&sb, nil); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if sb.String() != "ID,Make,Model,Year,Count\n" {
		t.Fatalf("got %q, want header only", sb.String())
	}
}

func TestWriteRows(t *testing.T) {
	t.Parallel()
	var sb strings.Builder
	err := Write(&sb, []vehicle.Vehicle{
		{ID: 1, Make: "Toyota", Model: "Corolla", Year: 2020, Count: 5},
		{ID: 2, Make: "Honda", Model: "Civic", Year: 2019, Count: 0},
	})
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	want := "ID,Make,Model,Year,Count\n1,Toyota,Corolla,2020,5\n2,Honda,Civic,2019,0\n"
	if sb.String() != want {
		t.Fatalf("got %q, want %q", sb.String(), want)
	}
}

// TestWriteNoQuoting pins the documented limitation: embedded commas are
// written literally, not quoted.
func TestWriteNoQuoting(t *testing.T) {
	t.Parallel()
	var sb strings.Builder
	err := Write(&sb, []vehicle.Vehicle{
		{ID: 1, Make: "Alfa, Romeo", Model: "Giulia", Year: 2021, Count: 1},
	})
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !strings.Contains(sb.String(), "1,Alfa, Romeo,Giulia,2021,1") {
		t.Fatalf("got %q, want literal unquoted comma", sb.String())
	}
}
