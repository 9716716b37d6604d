package types

import "testing"

func TestTableRecords(t *testing.T) {
	tbl := &Table{
		Headers: []string{"id", "name"},
		Rows: [][]string{
			{"1", "Alice"},
			{"2", "Bob"},
		},
	}

	records := tbl.Records()
	if len(records) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(records))
	}
	if records[0][1] != "name" {
		t.Errorf("Expected header first, got %v", records[0])
	}
	if records[2][1] != "Bob" {
		t.Errorf("Expected last row Bob, got %v", records[2])
	}
	if tbl.Width() != 2 {
		t.Errorf("Expected width 2, got %d", tbl.Width())
	}
}

func TestTableRecordsHeaderOnly(t *testing.T) {
	tbl := &Table{Headers: []string{"id"}}

	records := tbl.Records()
	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}
}
