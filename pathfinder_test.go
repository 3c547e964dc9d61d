package pathfinder

import (
	"context"
	"testing"

	"github.com/bft-labs/pathfinder/pkg/navigator"
	"github.com/bft-labs/pathfinder/pkg/screen"
)

func TestNew(t *testing.T) {
	pf, err := New(Config{Name: "root"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := pf.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer pf.Stop()

	nav := navigator.New()
	if err := nav.SetStack(screen.Route{Name: "Home"}); err != nil {
		t.Fatalf("SetStack failed: %v", err)
	}
	pf.Attach(nav)
	pf.Router().NavigateTo(screen.Route{Name: "Settings"})

	if err := pf.Loop().Do(context.Background(), func() {}); err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	if got := nav.Top(); got != "Settings" {
		t.Errorf("Top() = %q, want Settings", got)
	}
}
