package lookup

import (
	"strings"
	"sync"
	"testing"
)

func TestChampionNames(t *testing.T) {
	tests := []struct {
		name   string
		locale Locale
		id     int
		want   string
	}{
		{"known english", LocaleEN, 103, "Ahri"},
		{"known korean", LocaleKO, 103, "아리"},
		{"unknown english", LocaleEN, 99999, "Champion 99999"},
		{"unknown korean", LocaleKO, 99999, "챔피언 99999"},
		{"zero id", LocaleEN, 0, "Champion 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewChampions(tt.locale).NameFor(tt.id); got != tt.want {
				t.Errorf("NameFor(%d) = %q, want %q", tt.id, got, tt.want)
			}
		})
	}
}

func TestQueueNames(t *testing.T) {
	en := NewQueues(LocaleEN)
	for _, id := range []int{400, 420, 440, 450, 830} {
		if got := en.NameFor(id); got == "Other Queue" || got == "" {
			t.Errorf("queue %d should be known, got %q", id, got)
		}
	}
	if got := en.NameFor(1700); got != "Other Queue" {
		t.Errorf("unknown queue = %q", got)
	}
	if got := NewQueues(LocaleKO).NameFor(420); got != "솔로랭크" {
		t.Errorf("korean solo queue = %q", got)
	}
	if got := NewQueues(LocaleKO).NameFor(1); got != "기타 게임" {
		t.Errorf("korean fallback = %q", got)
	}
}

func TestChampionTableCoverage(t *testing.T) {
	if len(champions) != 25 {
		t.Fatalf("expected 25 champions, got %d", len(champions))
	}
	for id, n := range champions {
		if n.en == "" || n.ko == "" {
			t.Errorf("champion %d missing a localized name", id)
		}
	}
}

func TestParseLocale(t *testing.T) {
	if ParseLocale(" KO ") != LocaleKO {
		t.Error("expected ko")
	}
	if ParseLocale("fr") != LocaleEN {
		t.Error("expected fallback to en")
	}
}

func TestConcurrentReads(t *testing.T) {
	tables := NewTables(LocaleEN)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if !strings.Contains(tables.Champions.NameFor(100000+i), "Champion") {
				t.Errorf("unexpected fallback")
			}
			_ = tables.Queues.NameFor(420)
		}(i)
	}
	wg.Wait()
}
