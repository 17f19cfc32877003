package tracker

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func TestListClients(t *testing.T) {
	store := &fakeStore{rows: [][]string{
		storedRow("t1", "Zenith Traders", "2024-01-01", "IN", "CH2025", "2024", "10"),
		storedRow("t2", "Acme", "2024-01-02", "OUT", "CH2025", "2024", "3"),
		storedRow("t3", "", "2024-01-02", "IN", "HF32C", "2025", "1"),
		storedRow("t4", "Acme", "2024-01-03", "IN", "HF32C", "2025", "2"),
		storedRow("t5", "Borealis", "2024-01-04", "IN", "AL2025", "2026", "4"),
	}}
	svc := newTestService(store, ConfigForSheet("Sheet1"))

	clients, err := svc.ListClients(context.Background())
	if err != nil {
		t.Fatalf("ListClients failed: %v", err)
	}

	want := []string{"Acme", "Borealis", "Zenith Traders"}
	if !reflect.DeepEqual(clients, want) {
		t.Errorf("ListClients = %v, want %v", clients, want)
	}
}

func TestListClients_Idempotent(t *testing.T) {
	store := &fakeStore{rows: [][]string{
		storedRow("t1", "Acme", "2024-01-01", "IN", "CH2025", "2024", "10"),
		storedRow("t2", "Borealis", "2024-01-02", "OUT", "CH2025", "2024", "3"),
	}}
	svc := newTestService(store, ConfigForSheet("Sheet1"))

	first, err := svc.ListClients(context.Background())
	if err != nil {
		t.Fatalf("first call failed: %v", err)
	}
	second, err := svc.ListClients(context.Background())
	if err != nil {
		t.Fatalf("second call failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated calls differ: %v vs %v", first, second)
	}
}

func TestListClients_ReadError(t *testing.T) {
	store := &fakeStore{columnErr: errors.New("range unavailable")}
	svc := newTestService(store, ConfigForSheet("Sheet1"))

	_, err := svc.ListClients(context.Background())

	var serr *StorageError
	if !errors.As(err, &serr) {
		t.Fatalf("expected StorageError, got %v", err)
	}
}

func TestFilterClients(t *testing.T) {
	store := &fakeStore{rows: [][]string{
		storedRow("t1", "Acme", "2024-01-01", "IN", "CH2025", "2024", "10"),
		storedRow("t2", "ACE Hardware", "2024-01-02", "IN", "CH2025", "2024", "1"),
		storedRow("t3", "Borealis", "2024-01-03", "OUT", "CH2025", "2024", "3"),
	}}
	svc := newTestService(store, ConfigForSheet("Sheet1"))

	tests := []struct {
		name string
		q    string
		want []string
	}{
		{
			name: "empty query returns all",
			q:    "",
			want: []string{"ACE Hardware", "Acme", "Borealis"},
		},
		{
			name: "case-insensitive substring",
			q:    "ac",
			want: []string{"ACE Hardware", "Acme"},
		},
		{
			name: "no match",
			q:    "zzz",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.FilterClients(context.Background(), tt.q)
			if err != nil {
				t.Fatalf("FilterClients failed: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FilterClients(%q) = %v, want %v", tt.q, got, tt.want)
			}
		})
	}
}
