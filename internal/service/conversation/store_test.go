package conversation

import (
	"fmt"
	"sync"
	"testing"

	"github.com/zhouzirui/newsdesk/backend/internal/model/chat"
)

func TestAppendAndSnapshot(t *testing.T) {
	store := NewStore()

	if _, err := store.Append(chat.RoleUser, "hello"); err != nil {
		t.Fatalf("Append err: %v", err)
	}
	if _, err := store.Append(chat.RoleAssistant, "hi there"); err != nil {
		t.Fatalf("Append err: %v", err)
	}

	snapshot := store.Snapshot()
	if len(snapshot) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(snapshot))
	}
	if snapshot[0].Role != chat.RoleUser || snapshot[0].Content != "hello" {
		t.Fatalf("unexpected first message: %+v", snapshot[0])
	}
	if snapshot[1].Role != chat.RoleAssistant || snapshot[1].Content != "hi there" {
		t.Fatalf("unexpected second message: %+v", snapshot[1])
	}
	if snapshot[0].ID == "" || snapshot[0].CreatedAt.IsZero() {
		t.Fatalf("message missing id or timestamp: %+v", snapshot[0])
	}
}

func TestAppendRejectsSystemRole(t *testing.T) {
	store := NewStore()

	if _, err := store.Append(chat.RoleSystem, "never stored"); err == nil {
		t.Fatal("expected error for system role")
	}
	if _, err := store.Append(chat.Role("operator"), "bogus"); err == nil {
		t.Fatal("expected error for unknown role")
	}
	if stats := store.Stats(); stats.Total != 0 {
		t.Fatalf("rejected append must not mutate, total=%d", stats.Total)
	}
}

func TestSnapshotIsolatedFromLaterMutation(t *testing.T) {
	store := NewStore()
	store.Append(chat.RoleUser, "first")

	snapshot := store.Snapshot()
	store.Append(chat.RoleAssistant, "second")
	store.Clear()

	if len(snapshot) != 1 || snapshot[0].Content != "first" {
		t.Fatalf("snapshot corrupted by later mutation: %+v", snapshot)
	}
}

func TestClear(t *testing.T) {
	store := NewStore()
	store.Append(chat.RoleUser, "a")
	store.Append(chat.RoleAssistant, "b")

	store.Clear()

	if got := store.Snapshot(); len(got) != 0 {
		t.Fatalf("expected empty snapshot after clear, got %d", len(got))
	}
	if stats := store.Stats(); stats.Total != 0 || stats.User != 0 || stats.Assistant != 0 {
		t.Fatalf("expected zero stats after clear, got %+v", stats)
	}

	store.Append(chat.RoleUser, "fresh")
	if stats := store.Stats(); stats.Total != 1 || stats.User != 1 {
		t.Fatalf("append after clear broken: %+v", stats)
	}
}

func TestStatsMatchSnapshot(t *testing.T) {
	store := NewStore()
	for i := 0; i < 5; i++ {
		store.Append(chat.RoleUser, fmt.Sprintf("u%d", i))
		store.Append(chat.RoleAssistant, fmt.Sprintf("a%d", i))
	}

	stats := store.Stats()
	snapshot := store.Snapshot()

	users, assistants := 0, 0
	for _, msg := range snapshot {
		switch msg.Role {
		case chat.RoleUser:
			users++
		case chat.RoleAssistant:
			assistants++
		}
	}

	if stats.Total != len(snapshot) || stats.User != users || stats.Assistant != assistants {
		t.Fatalf("stats %+v drifted from snapshot (total=%d user=%d assistant=%d)",
			stats, len(snapshot), users, assistants)
	}
}

func TestConcurrentAppendsNoTornEntries(t *testing.T) {
	store := NewStore()
	const workers = 8
	const perWorker = 50

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				store.Append(chat.RoleUser, fmt.Sprintf("w%d-m%d", w, i))
				store.Snapshot()
			}
		}(w)
	}
	wg.Wait()

	snapshot := store.Snapshot()
	if len(snapshot) != workers*perWorker {
		t.Fatalf("expected %d messages, got %d", workers*perWorker, len(snapshot))
	}
	for i, msg := range snapshot {
		if msg.ID == "" || msg.Content == "" || !msg.Role.Valid() {
			t.Fatalf("torn entry at %d: %+v", i, msg)
		}
	}
}
