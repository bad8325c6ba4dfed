package ui

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"userenum/internal/core/domain"
	"userenum/internal/testutil"
)

var (
	_ Presenter = (*RawPresenter)(nil)
	_ Presenter = (*PTermPresenter)(nil)
)

func TestFormatResult(t *testing.T) {
	tests := []struct {
		name    string
		result  domain.ProbeResult
		verbose bool
		line    string
		shown   bool
	}{
		{"found", domain.Found("admin"), false, "[+] User found: admin", true},
		{"found verbose", domain.Found("admin"), true, "[+] User found: admin", true},
		{"not found quiet", domain.NotFound("ghost"), false, "", false},
		{"not found verbose", domain.NotFound("ghost"), true, "[-] User not found: ghost", true},
		{"errored", domain.Errored("broken", "Unexpected HTTP 500"), false, "[!] broken: Unexpected HTTP 500", true},
		{"invalid outcome", domain.ProbeResult{Candidate: "x"}, true, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, shown := FormatResult(tt.result, tt.verbose)
			testutil.AssertEqual(t, line, tt.line, "line")
			testutil.AssertEqual(t, shown, tt.shown, "shown")
		})
	}
}

func TestRawPresenter_Streams(t *testing.T) {
	var buf bytes.Buffer
	p := NewRawPresenter(&buf, false, 0)

	p.Start(RunInfo{BaseURL: "http://gitlab.local", Workers: 10, Window: 50})
	for _, c := range []string{"admin", "ghost", "broken"} {
		p.Submitted(c)
	}

	p.Report(domain.Found("admin"))
	testutil.AssertContains(t, buf.String(), "[+] User found: admin\n", "found is rendered as soon as it arrives")

	p.Report(domain.NotFound("ghost"))
	p.Report(domain.Errored("broken", "Unexpected HTTP 500"))
	p.Finish(domain.Summary{Submitted: 3, Completed: 3, Found: 1, NotFound: 1, Errored: 1, Duration: 20 * time.Millisecond})

	lines := testutil.Lines(buf.String())
	testutil.AssertEqual(t, lines[0], Banner, "banner first")
	testutil.AssertEqual(t, lines[1], "[+] User found: admin", "found line")
	testutil.AssertEqual(t, lines[2], "[!] broken: Unexpected HTTP 500", "error line")
	testutil.AssertNotContains(t, buf.String(), "ghost", "not found suppressed without verbose")
	testutil.AssertContains(t, lines[3], "3 submitted, 3 completed, 1 found", "summary")

	submitted, completed := p.Counters().Snapshot()
	testutil.AssertEqual(t, submitted, int64(3), "submitted")
	testutil.AssertEqual(t, completed, int64(3), "completed")
}

func TestRawPresenter_Verbose(t *testing.T) {
	var buf bytes.Buffer
	p := NewRawPresenter(&buf, true, 0)

	p.Submitted("ghost")
	p.Report(domain.NotFound("ghost"))

	testutil.AssertEqual(t, strings.TrimSpace(buf.String()), "[-] User not found: ghost", "verbose shows absence")
}

func TestRawPresenter_ProgressEvery(t *testing.T) {
	var buf bytes.Buffer
	p := NewRawPresenter(&buf, false, 2)

	for i := 0; i < 4; i++ {
		p.Submitted("x")
	}
	for i := 0; i < 4; i++ {
		p.Report(domain.NotFound("x"))
	}

	lines := testutil.Lines(buf.String())
	testutil.AssertEqual(t, len(lines), 2, "one progress line every two results")
	testutil.AssertEqual(t, lines[0], "[*] Progress: 2/4 completed", "first progress line")
	testutil.AssertEqual(t, lines[1], "[*] Progress: 4/4 completed", "second progress line")
}

func TestCounters_SnapshotNeverInverts(t *testing.T) {
	var c Counters
	var wg sync.WaitGroup
	done := make(chan struct{})

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 10000; i++ {
			c.Submit()
			c.Complete()
		}
		close(done)
	}()

	for {
		select {
		case <-done:
			wg.Wait()
			s, comp := c.Snapshot()
			testutil.AssertEqual(t, s, comp, "counters converge")
			return
		default:
			s, comp := c.Snapshot()
			if comp > s {
				t.Fatalf("completed %d exceeds submitted %d", comp, s)
			}
		}
	}
}

func TestFormatDuration(t *testing.T) {
	testutil.AssertEqual(t, formatDuration(250*time.Millisecond), "250ms", "sub-second")
	testutil.AssertEqual(t, formatDuration(1500*time.Millisecond), "1.5s", "seconds")
}
