package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := NewStore(filepath.Join(t.TempDir(), "index.db"), os.DirFS("../.."))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func seed(t *testing.T, s *Store) {
	t.Helper()

	accounts := []Account{
		{LocalID: "@government", UUID: "g", Balance: 0, Authorization: "DEVELOPER"},
		{LocalID: "alice", UUID: "a", Balance: 60, Authorization: "CITIZEN"},
		{LocalID: "bob", UUID: "b", Balance: 40, Authorization: "ADMIN"},
	}
	records := []Record{
		{Timestamp: 1, Command: "open", Args: []string{"alice", "a"}, AccountIDs: []string{"alice"}},
		{Timestamp: 2, Command: "open", Args: []string{"bob", "b"}, AccountIDs: []string{"bob"}},
		{Timestamp: 3, Command: "transfer", Args: []string{"alice", "@government", "alice", "100"}, AccountIDs: []string{"alice", "@government"}},
		{Timestamp: 4, Command: "transfer", Args: []string{"alice", "alice", "bob", "40"}, AccountIDs: []string{"alice", "bob"}},
	}
	if err := s.Rebuild(accounts, records); err != nil {
		t.Fatalf("Rebuild: %v", err)
	}
}

func TestRebuildAndHistory(t *testing.T) {
	s := newTestStore(t)
	seed(t, s)

	tests := []struct {
		id       string
		limit    int
		wantSeqs []int64
	}{
		{"alice", 0, []int64{4, 3, 1}},
		{"alice", 2, []int64{4, 3}},
		{"bob", 10, []int64{4, 2}},
		{"@government", 10, []int64{3}},
		{"nobody", 10, nil},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			got, err := s.History(tt.id, tt.limit)
			if err != nil {
				t.Fatalf("History: %v", err)
			}
			if len(got) != len(tt.wantSeqs) {
				t.Fatalf("got %d records, want %d", len(got), len(tt.wantSeqs))
			}
			for i, rec := range got {
				if rec.Seq != tt.wantSeqs[i] {
					t.Errorf("record %d: seq = %d, want %d", i, rec.Seq, tt.wantSeqs[i])
				}
			}
		})
	}

	hist, _ := s.History("bob", 1)
	if hist[0].Command != "transfer" || len(hist[0].Args) != 4 || hist[0].Args[3] != "40" {
		t.Errorf("unexpected record: %+v", hist[0])
	}
}

func TestRebuildReplacesIndex(t *testing.T) {
	s := newTestStore(t)
	seed(t, s)

	err := s.Rebuild([]Account{{LocalID: "@government", UUID: "g", Authorization: "DEVELOPER"}}, nil)
	if err != nil {
		t.Fatalf("Rebuild: %v", err)
	}

	st, err := s.Stats()
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if st.Accounts != 1 || st.Records != 0 {
		t.Errorf("stats = %+v, want 1 account and 0 records", st)
	}
}

func TestApplyRecord(t *testing.T) {
	s := newTestStore(t)
	seed(t, s)

	rec := Record{Timestamp: 5, Command: "transfer", Args: []string{"bob", "bob", "alice", "15"}, AccountIDs: []string{"bob", "alice"}}
	err := s.ApplyRecord(rec, []Account{
		{LocalID: "bob", UUID: "b", Balance: 25, Authorization: "ADMIN"},
		{LocalID: "alice", UUID: "a", Balance: 75, Authorization: "CITIZEN"},
	})
	if err != nil {
		t.Fatalf("ApplyRecord: %v", err)
	}

	hist, err := s.History("alice", 1)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(hist) != 1 || hist[0].Seq != 5 {
		t.Fatalf("latest alice record = %+v, want seq 5", hist)
	}

	acc, err := s.GetAccount("alice")
	if err != nil {
		t.Fatalf("GetAccount: %v", err)
	}
	if acc.Balance != 75 {
		t.Errorf("alice balance = %d, want 75", acc.Balance)
	}
}

func TestLeaderboard(t *testing.T) {
	s := newTestStore(t)
	seed(t, s)

	board, err := s.Leaderboard(2)
	if err != nil {
		t.Fatalf("Leaderboard: %v", err)
	}
	if len(board) != 2 || board[0].LocalID != "alice" || board[1].LocalID != "bob" {
		t.Errorf("unexpected leaderboard: %+v", board)
	}

	all, err := s.Leaderboard(0)
	if err != nil {
		t.Fatalf("Leaderboard: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("got %d accounts, want 3", len(all))
	}
}

func TestGetAccountNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetAccount("ghost")
	if !errors.Is(err, ErrRecordNotFound) {
		t.Errorf("err = %v, want ErrRecordNotFound", err)
	}
}

func TestDuplicateSeqIsConstraintViolation(t *testing.T) {
	s := newTestStore(t)

	err := s.Rebuild(nil, []Record{
		{Seq: 1, Timestamp: 1, Command: "open", Args: []string{"a"}},
		{Seq: 1, Timestamp: 2, Command: "open", Args: []string{"b"}},
	})
	if !errors.Is(err, ErrConstraintViolation) {
		t.Errorf("err = %v, want ErrConstraintViolation", err)
	}
}

func TestReopenKeepsSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.db")
	fsys := os.DirFS("../..")

	s, err := NewStore(path, fsys)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	seed(t, s)
	_ = s.Close()

	s, err = NewStore(path, fsys)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = s.Close() }()

	st, err := s.Stats()
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if st.Accounts != 3 || st.Records != 4 {
		t.Errorf("stats = %+v", st)
	}
}
