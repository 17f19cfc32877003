package tracker

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func TestSummarizeClient(t *testing.T) {
	store := &fakeStore{rows: [][]string{
		storedRow("t1", "Acme", "2024-01-01", "IN", "CH2025", "2024", "10"),
		storedRow("t2", "Acme", "2024-01-02", "OUT", "CH2025", "2024", "3"),
		storedRow("t3", "Borealis", "2024-01-02", "IN", "CH2025", "2024", "99"),
		storedRow("t4", "Acme", "2024-01-03", "IN", "AL2025", "2025", "4"),
	}}
	svc := newTestService(store, ConfigForSheet("Sheet1"))

	totals, err := svc.SummarizeClient(context.Background(), "Acme")
	if err != nil {
		t.Fatalf("SummarizeClient failed: %v", err)
	}

	want := []ModelTotal{
		{ModelNo: "AL2025", In: 4, Out: 0},
		{ModelNo: "CH2025", In: 10, Out: 3},
	}
	if !reflect.DeepEqual(totals, want) {
		t.Errorf("SummarizeClient = %+v, want %+v", totals, want)
	}
}

func TestSummarizeClient_OrderInvariant(t *testing.T) {
	rows := [][]string{
		storedRow("t1", "Acme", "2024-01-01", "IN", "CH2025", "2024", "10"),
		storedRow("t2", "Acme", "2024-01-02", "OUT", "CH2025", "2024", "3"),
		storedRow("t3", "Acme", "2024-01-03", "IN", "HF32C", "2025", "7"),
	}
	reversed := [][]string{rows[2], rows[1], rows[0]}

	svcA := newTestService(&fakeStore{rows: rows}, ConfigForSheet("Sheet1"))
	svcB := newTestService(&fakeStore{rows: reversed}, ConfigForSheet("Sheet1"))

	a, err := svcA.SummarizeClient(context.Background(), "Acme")
	if err != nil {
		t.Fatalf("SummarizeClient failed: %v", err)
	}
	b, err := svcB.SummarizeClient(context.Background(), "Acme")
	if err != nil {
		t.Fatalf("SummarizeClient failed: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Errorf("summary depends on store order: %+v vs %+v", a, b)
	}
}

func TestSummarizeClient_MatchIsCaseSensitive(t *testing.T) {
	store := &fakeStore{rows: [][]string{
		storedRow("t1", "Acme", "2024-01-01", "IN", "CH2025", "2024", "10"),
	}}
	svc := newTestService(store, ConfigForSheet("Sheet1"))

	totals, err := svc.SummarizeClient(context.Background(), "acme")
	if err != nil {
		t.Fatalf("SummarizeClient failed: %v", err)
	}
	if len(totals) != 0 {
		t.Errorf("lowercase query matched %d rows, want 0", len(totals))
	}
}

func TestSummarizeClient_LenientRows(t *testing.T) {
	store := &fakeStore{rows: [][]string{
		storedRow("t1", "Acme", "2024-01-01", "IN", "CH2025", "2024", "abc"), // bad qty counts 0
		storedRow("t2", "Acme", "2024-01-02", "IN", "CH2025", "2024", "5"),
		storedRow("t3", "Acme", "2024-01-03", "HOLD", "HF32C", "2025", "9"), // unknown status counts nowhere
		storedRow("t4", "Acme", "2024-01-04", "IN", "", "2025", "2"),        // blank model skipped
		{"t5", "Acme"}, // truncated historical record
	}}
	svc := newTestService(store, ConfigForSheet("Sheet1"))

	totals, err := svc.SummarizeClient(context.Background(), "Acme")
	if err != nil {
		t.Fatalf("SummarizeClient failed: %v", err)
	}

	want := []ModelTotal{
		{ModelNo: "CH2025", In: 5, Out: 0},
		{ModelNo: "HF32C", In: 0, Out: 0},
	}
	if !reflect.DeepEqual(totals, want) {
		t.Errorf("SummarizeClient = %+v, want %+v", totals, want)
	}
}

func TestSummarizeClient_UnknownClient(t *testing.T) {
	store := &fakeStore{rows: [][]string{
		storedRow("t1", "Acme", "2024-01-01", "IN", "CH2025", "2024", "10"),
	}}
	svc := newTestService(store, ConfigForSheet("Sheet1"))

	totals, err := svc.SummarizeClient(context.Background(), "Unknown")
	if err != nil {
		t.Fatalf("expected empty result, got error: %v", err)
	}
	if len(totals) != 0 {
		t.Errorf("unknown client returned %d rows, want 0", len(totals))
	}
}

func TestSummarizeClient_ReadError(t *testing.T) {
	store := &fakeStore{rangeErr: errors.New("backend unavailable")}
	svc := newTestService(store, ConfigForSheet("Sheet1"))

	_, err := svc.SummarizeClient(context.Background(), "Acme")

	var serr *StorageError
	if !errors.As(err, &serr) {
		t.Fatalf("expected StorageError, got %v", err)
	}
}

func TestClientDetails_PreservesStoreOrder(t *testing.T) {
	// Timestamps tie within a batch, so append order is the chronology.
	store := &fakeStore{rows: [][]string{
		storedRow("t2", "Acme", "2024-01-05", "OUT", "HF32C", "2025", "1"),
		storedRow("t1", "Borealis", "2024-01-01", "IN", "CH2025", "2024", "10"),
		storedRow("t1", "Acme", "2024-01-01", "IN", "CH2025", "2024", "10"),
		storedRow("t1", "Acme", "2024-01-01", "OUT", "CH2025", "2024", "3"),
	}}
	svc := newTestService(store, ConfigForSheet("Sheet1"))

	details, err := svc.ClientDetails(context.Background(), "Acme")
	if err != nil {
		t.Fatalf("ClientDetails failed: %v", err)
	}

	want := []Detail{
		{Timestamp: "t2", Date: "2024-01-05", ModelNo: "HF32C", BatchNo: "2025", Qty: "1", Status: "OUT"},
		{Timestamp: "t1", Date: "2024-01-01", ModelNo: "CH2025", BatchNo: "2024", Qty: "10", Status: "IN"},
		{Timestamp: "t1", Date: "2024-01-01", ModelNo: "CH2025", BatchNo: "2024", Qty: "3", Status: "OUT"},
	}
	if !reflect.DeepEqual(details, want) {
		t.Errorf("ClientDetails = %+v, want %+v", details, want)
	}
}

func TestClientDetails_NoMatches(t *testing.T) {
	store := &fakeStore{rows: [][]string{
		storedRow("t1", "Borealis", "2024-01-01", "IN", "CH2025", "2024", "10"),
	}}
	svc := newTestService(store, ConfigForSheet("Sheet1"))

	details, err := svc.ClientDetails(context.Background(), "Acme")
	if err != nil {
		t.Fatalf("ClientDetails failed: %v", err)
	}
	if len(details) != 0 {
		t.Errorf("got %d details, want 0", len(details))
	}
}
