package metadata

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestStoreSetGetDelete(t *testing.T) {
	s := NewStore()
	copyCmd := []string{"copy"}

	if _, ok := s.Get(copyCmd, "category"); ok {
		t.Error("empty store returned a value")
	}

	s.Set(copyCmd, "category", "files")
	if v, ok := s.Get(copyCmd, "category"); !ok || v != "files" {
		t.Errorf("Get = %q, %v", v, ok)
	}

	// Overwrite under the same key.
	s.Set(copyCmd, "category", "transfer")
	if v, _ := s.Get(copyCmd, "category"); v != "transfer" {
		t.Errorf("Get after overwrite = %q", v)
	}
	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1", s.Len())
	}

	s.Delete(copyCmd, "category")
	if _, ok := s.Get(copyCmd, "category"); ok {
		t.Error("value survived delete")
	}
	s.Delete(copyCmd, "category") // absent key is a no-op
}

func TestStoreForCommandOrderedAndIsolated(t *testing.T) {
	s := NewStore()
	s.Set([]string{"remote", "add"}, "example", "remote add origin http://x")
	s.Set([]string{"remote", "add"}, "category", "remotes")
	s.Set([]string{"remote"}, "category", "remotes")
	s.Set([]string{"status"}, "category", "inspection")

	var keys []string
	s.ForCommand([]string{"remote", "add"}, func(k, v string) bool {
		keys = append(keys, k)
		return true
	})
	if diff := cmp.Diff([]string{"category", "example"}, keys); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}

	// A parent path must not see its children's annotations.
	var parentKeys []string
	s.ForCommand([]string{"remote"}, func(k, v string) bool {
		parentKeys = append(parentKeys, k)
		return true
	})
	if diff := cmp.Diff([]string{"category"}, parentKeys); diff != "" {
		t.Errorf("parent keys mismatch (-want +got):\n%s", diff)
	}
}

func TestStoreForCommandEarlyStop(t *testing.T) {
	s := NewStore()
	cmd := []string{"copy"}
	s.Set(cmd, "a", "1")
	s.Set(cmd, "b", "2")
	s.Set(cmd, "c", "3")

	count := 0
	s.ForCommand(cmd, func(string, string) bool {
		count++
		return count < 2
	})
	if count != 2 {
		t.Errorf("visited %d, want 2", count)
	}
}

func TestStoreConcurrentAccess(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			cmd := []string{"copy"}
			for j := 0; j < 100; j++ {
				s.Set(cmd, "k", "v")
				s.Get(cmd, "k")
			}
		}(i)
	}
	wg.Wait()
	if v, ok := s.Get([]string{"copy"}, "k"); !ok || v != "v" {
		t.Errorf("Get = %q, %v", v, ok)
	}
}
