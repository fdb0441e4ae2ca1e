package log

import (
	"bytes"
	"os"
	"strings"
	"sync"
	"testing"
)

func TestL_ConcurrentFirstUse(t *testing.T) {
	const n = 16
	got := make([]any, n)

	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got[i] = L()
		}()
	}
	wg.Wait()

	for i, l := range got {
		if l == nil || l != got[0] {
			t.Fatalf("L() #%d = %p, want the same logger as #0 (%p)", i, l, got[0])
		}
	}
}

func TestWith_WritesFields(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)

	With(Fields{"component": "robot"}).Warn("actuator error")
	if out := buf.String(); !strings.Contains(out, "component=robot") || !strings.Contains(out, "actuator error") {
		t.Errorf("output = %q", out)
	}
}
