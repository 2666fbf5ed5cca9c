package lvhn

import (
	"net/url"
	"reflect"
	"testing"
)

const listingPage = `<!DOCTYPE html>
<html><body>
<div class="view-content result-column">
  <article class="node node--type-doctor">
    <div class="headshot">
      <img src="/sites/default/files/styles/doctor/jane-roe.jpg?itok=abc" alt="">
    </div>
    <div class="field--name-node-title node__title">
      <a href="/doctors/jane-roe-md">Jane Roe, MD</a>
    </div>
    <span class="accepting-new-patients">Accepting new patients</span>
    <div class="highlights">
      <h4>Specialties</h4>
      <ul>
        <li>Cardiology</li>
        <li>Internal Medicine</li>
      </ul>
      <h4>Area of Focus</h4>
      <ul>
        <li>Heart Failure</li>
      </ul>
    </div>
    <div class="node node--type-location">
      <div class="field-name-node-title">Heart Institute</div>
      <span class="address-line1">1200 Cedar Crest Blvd</span>
      <span class="address-line2">Suite 300</span>
      <span class="locality">Allentown</span>
      <span class="administrative-area">PA</span>
      <span class="postal-code">18103</span>
      <span class="country">US</span>
      <div class="field--name-field-phone">610-555-0100</div>
    </div>
  </article>
  <article class="node node--type-doctor">
    <div class="field--name-node-title node__title">No Link Here</div>
  </article>
  <article class="node node--type-doctor">
    <div class="field--name-node-title node__title">
      <a href="https://example.org/doctors/john-smith-do">John Smith, DO</a>
    </div>
  </article>
</div>
</body></html>`

func TestParseSummaries(t *testing.T) {
	t.Parallel()

	base, _ := url.Parse("https://www.lvhn.org/find-a-doctor")
	summaries, skipped, err := ParseSummaries(listingPage, base)
	if err != nil {
		t.Fatalf("ParseSummaries() error = %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("ParseSummaries() returned %d summaries, want 2", len(summaries))
	}
	if len(skipped) != 1 {
		t.Fatalf("ParseSummaries() skipped %d cards, want 1", len(skipped))
	}

	first := summaries[0]
	if got, want := first.Name, "Jane Roe, MD"; got != want {
		t.Errorf("Name = %q, want %q", got, want)
	}
	if got, want := first.DetailsURI.String(), "https://www.lvhn.org/doctors/jane-roe-md"; got != want {
		t.Errorf("DetailsURI = %q, want %q", got, want)
	}
	if first.ImageURI == nil {
		t.Fatal("ImageURI is nil, want resolved headshot link")
	}
	if got, want := first.ImageURI.Path, "/sites/default/files/styles/doctor/jane-roe.jpg"; got != want {
		t.Errorf("ImageURI path = %q, want %q", got, want)
	}
	if !first.AcceptingNewPatients {
		t.Error("AcceptingNewPatients = false, want true")
	}
	if want := []string{"Cardiology", "Internal Medicine"}; !reflect.DeepEqual(first.Specialties, want) {
		t.Errorf("Specialties = %v, want %v", first.Specialties, want)
	}
	if want := []string{"Heart Failure"}; !reflect.DeepEqual(first.AreasOfFocus, want) {
		t.Errorf("AreasOfFocus = %v, want %v", first.AreasOfFocus, want)
	}

	if len(first.Locations) != 1 {
		t.Fatalf("Locations = %d entries, want 1", len(first.Locations))
	}
	loc := first.Locations[0]
	if got, want := loc.Name, "Heart Institute"; got != want {
		t.Errorf("Location name = %q, want %q", got, want)
	}
	if got, want := loc.Phone, "610-555-0100"; got != want {
		t.Errorf("Location phone = %q, want %q", got, want)
	}
	if got, want := loc.Address.Line1, "1200 Cedar Crest Blvd"; got != want {
		t.Errorf("Address line1 = %q, want %q", got, want)
	}
	if got, want := loc.Address.City, "Allentown"; got != want {
		t.Errorf("Address city = %q, want %q", got, want)
	}

	second := summaries[1]
	if got, want := second.DetailsURI.String(), "https://example.org/doctors/john-smith-do"; got != want {
		t.Errorf("absolute DetailsURI = %q, want %q", got, want)
	}
	if second.AcceptingNewPatients {
		t.Error("AcceptingNewPatients = true for card without marker")
	}
}

func TestParseSummariesTerminalPage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		page string
	}{
		{
			name: "no result column",
			page: `<html><body><div class="no-results">Nothing found</div></body></html>`,
		},
		{
			name: "empty result column",
			page: `<html><body><div class="result-column"></div></body></html>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			summaries, skipped, err := ParseSummaries(tt.page, nil)
			if err != nil {
				t.Fatalf("ParseSummaries() error = %v", err)
			}
			if len(summaries) != 0 || len(skipped) != 0 {
				t.Errorf("ParseSummaries() = %d summaries, %d skipped; want 0, 0",
					len(summaries), len(skipped))
			}
		})
	}
}

func TestParseSummariesRelativeLinkWithoutBase(t *testing.T) {
	t.Parallel()

	page := `<html><body><div class="result-column">
		<article class="node--type-doctor">
			<div class="field--name-node-title"><a href="/doctors/x">X</a></div>
		</article>
	</div></body></html>`

	summaries, skipped, err := ParseSummaries(page, nil)
	if err != nil {
		t.Fatalf("ParseSummaries() error = %v", err)
	}
	if len(summaries) != 0 {
		t.Errorf("got %d summaries, want 0", len(summaries))
	}
	if len(skipped) != 1 {
		t.Errorf("got %d skipped, want 1", len(skipped))
	}
}
