package pageviews_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/solstack/site/internal/testutil"
)

func TestViewBeacon_RecordThenReadRoundTrip(t *testing.T) {
	app := testutil.NewSiteApp(t)
	client := testutil.NewHTTPHelper(t, app)

	record := client.Post("/api/views/contract-creation")
	if record.StatusCode != 202 {
		t.Fatalf("expected 202 from the beacon, got %d", record.StatusCode)
	}

	read := client.Get("/api/views/contract-creation")
	if read.StatusCode != 200 {
		t.Fatalf("expected 200 reading the count, got %d", read.StatusCode)
	}
	if !strings.Contains(read.Body, `"views":1`) {
		t.Errorf("expected one recorded view, got body %s", read.Body)
	}

	// The page picks the new count up on its next render.
	page := client.Get("/posts/contract-creation")
	if !strings.Contains(page.Body, "1 view") {
		t.Error("expected the post page to show the recorded view")
	}
}

func TestViewBeacon_FreshSlugReadsZero(t *testing.T) {
	app := testutil.NewSiteApp(t)
	client := testutil.NewHTTPHelper(t, app)

	resp := client.Get("/api/views/evm-storage-layout")

	if resp.StatusCode != 200 {
		t.Fatalf("expected 200 for a never-viewed slug, got %d", resp.StatusCode)
	}
	if !strings.Contains(resp.Body, `"views":0`) {
		t.Errorf("expected zero views, got body %s", resp.Body)
	}
}

func TestViewBeacon_RepeatedBeaconsAccumulate(t *testing.T) {
	app := testutil.NewSiteApp(t)
	client := testutil.NewHTTPHelper(t, app)

	const beacons = 5
	for i := 0; i < beacons; i++ {
		resp := client.Post("/api/views/reentrancy-in-practice")
		if resp.StatusCode != 202 {
			t.Fatalf("beacon %d: expected 202, got %d", i, resp.StatusCode)
		}
	}

	read := client.Get("/api/views/reentrancy-in-practice")
	if !strings.Contains(read.Body, fmt.Sprintf(`"views":%d`, beacons)) {
		t.Errorf("expected %d views, got body %s", beacons, read.Body)
	}
}

func TestViewBeacon_CountsAreSeparatePerSlug(t *testing.T) {
	app := testutil.NewSiteApp(t)
	client := testutil.NewHTTPHelper(t, app)

	client.Post("/api/views/contract-creation")
	client.Post("/api/views/contract-creation")
	client.Post("/api/views/evm-storage-layout")

	batch := client.Get("/api/views/?slugs=contract-creation,evm-storage-layout,reentrancy-in-practice")
	if batch.StatusCode != 200 {
		t.Fatalf("expected 200 from the batch endpoint, got %d", batch.StatusCode)
	}
	for _, want := range []string{
		`"contract-creation":2`,
		`"evm-storage-layout":1`,
		`"reentrancy-in-practice":0`,
	} {
		if !strings.Contains(batch.Body, want) {
			t.Errorf("expected batch body to contain %s, got %s", want, batch.Body)
		}
	}
}

func TestViewBeacon_RejectsMalformedSlug(t *testing.T) {
	app := testutil.NewSiteApp(t)
	client := testutil.NewHTTPHelper(t, app)

	resp := client.Post("/api/views/" + strings.Repeat("a", 129))

	if resp.StatusCode != 400 {
		t.Fatalf("expected 400 for an overlong slug, got %d", resp.StatusCode)
	}
	if !strings.Contains(resp.Body, "INVALID_SLUG") {
		t.Errorf("expected the invalid slug code, got body %s", resp.Body)
	}
}

func TestViewBeacon_UnknownSlugStillCounts(t *testing.T) {
	app := testutil.NewSiteApp(t)
	client := testutil.NewHTTPHelper(t, app)

	// The counter does not consult the post index; a beacon for a slug with
	// no post is recorded and simply never displayed anywhere.
	resp := client.Post("/api/views/no-such-post")
	if resp.StatusCode != 202 {
		t.Fatalf("expected 202 for a slug without a post, got %d", resp.StatusCode)
	}

	read := client.Get("/api/views/no-such-post")
	if !strings.Contains(read.Body, `"views":1`) {
		t.Errorf("expected the orphan count to read back, got body %s", read.Body)
	}
}
