package session

import (
	"context"
	"fmt"
	"testing"

	"github.com/aretw0/storybuilder/pkg/adapters/memory"
	"github.com/aretw0/storybuilder/pkg/domain"
)

func TestManager_LockLifecycle(t *testing.T) {
	mgr := NewManager(memory.NewStore())
	ctx := context.Background()

	for i := 0; i < 10000; i++ {
		sid := fmt.Sprintf("session-%d", i)
		_ = mgr.Save(ctx, sid, domain.NewSession(sid, "start"))
		_ = mgr.Delete(ctx, sid)
	}

	if lockCount := len(mgr.locks); lockCount > 0 {
		t.Errorf("Lock leak detected: %d locks remain in memory after sessions were deleted", lockCount)
	}
}
