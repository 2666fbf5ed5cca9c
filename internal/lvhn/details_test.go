package lvhn

import (
	"net/url"
	"reflect"
	"strings"
	"testing"

	"github.com/eg467/docdirscan/internal/model"
)

const detailPage = `<!DOCTYPE html>
<html><body>
<div class="doctor-bio">
  <p>Dr. Roe has practiced cardiology in the Lehigh Valley since 2009.</p>
</div>
<div class="history">
  <h3>Education</h3>
  <div class="body">
    <p><strong>Medical School</strong>Temple University, 2005</p>
    <p><strong>Undergraduate</strong>Penn State University</p>
  </div>
  <h3>Training</h3>
  <div class="body">
    <p><strong>Fellowship</strong>Cleveland Clinic, Cardiology, 2011</p>
  </div>
  <h3>Certifications</h3>
  <div class="body">
    <p><strong>Board Certification, 2012</strong>American Board of Internal Medicine</p>
  </div>
</div>
<div class="field-name-field-has-scholarly-works">
  <a href="/scholarly-works/jane-roe">View scholarly works</a>
</div>
<ul class="term-list full" aria-describedby="conditions-label">
  <li>Atrial Fibrillation</li>
  <li>Heart Failure</li>
</ul>
<ul class="term-list full" aria-describedby="services-label">
  <li>Echocardiography</li>
</ul>
<div class="ratings">
  <p>4.8 out of 5 (132 ratings)</p>
  <div class="rating-category">
    Explains Conditions Well (57)
    <span class="score">4.9</span>
  </div>
  <div class="rating-category">
    Listens Carefully (44)
    <span class="score">4.7</span>
  </div>
</div>
</body></html>`

func TestParseDetails(t *testing.T) {
	t.Parallel()

	base, _ := url.Parse("https://www.lvhn.org/doctors/jane-roe-md")
	details, err := ParseDetails(detailPage, base)
	if err != nil {
		t.Fatalf("ParseDetails() error = %v", err)
	}

	if !strings.Contains(details.Bio, "practiced cardiology") {
		t.Errorf("Bio = %q, want biography text", details.Bio)
	}
	if details.ScholarlyWorksURI == nil {
		t.Fatal("ScholarlyWorksURI is nil, want resolved link")
	}
	if got, want := details.ScholarlyWorksURI.String(), "https://www.lvhn.org/scholarly-works/jane-roe"; got != want {
		t.Errorf("ScholarlyWorksURI = %q, want %q", got, want)
	}
	if want := []string{"Atrial Fibrillation", "Heart Failure"}; !reflect.DeepEqual(details.ConditionsTreated, want) {
		t.Errorf("ConditionsTreated = %v, want %v", details.ConditionsTreated, want)
	}
	if want := []string{"Echocardiography"}; !reflect.DeepEqual(details.ServicesOffered, want) {
		t.Errorf("ServicesOffered = %v, want %v", details.ServicesOffered, want)
	}

	if len(details.Degrees) != 2 {
		t.Fatalf("Degrees = %d entries, want 2", len(details.Degrees))
	}
	school := details.Degrees[0]
	if got, want := school.Type, "Medical School"; got != want {
		t.Errorf("degree type = %q, want %q", got, want)
	}
	if got, want := school.Institution, "Temple University"; got != want {
		t.Errorf("degree institution = %q, want %q", got, want)
	}
	if school.Year == nil || *school.Year != 2005 {
		t.Errorf("degree year = %v, want 2005", school.Year)
	}
	if school.Level != model.LevelEducation {
		t.Errorf("degree level = %v, want %v", school.Level, model.LevelEducation)
	}
	undergrad := details.Degrees[1]
	if undergrad.Year != nil {
		t.Errorf("undergraduate year = %d, want none", *undergrad.Year)
	}

	if len(details.Training) != 1 {
		t.Fatalf("Training = %d entries, want 1", len(details.Training))
	}
	fellowship := details.Training[0]
	if got, want := fellowship.Type, "Fellowship (Cardiology)"; got != want {
		t.Errorf("training type = %q, want %q", got, want)
	}
	if got, want := fellowship.Institution, "Cleveland Clinic"; got != want {
		t.Errorf("training institution = %q, want %q", got, want)
	}
	if fellowship.Year == nil || *fellowship.Year != 2011 {
		t.Errorf("training year = %v, want 2011", fellowship.Year)
	}
	if strings.Contains(fellowship.Details, "2011") {
		t.Errorf("training details %q still contains the year token", fellowship.Details)
	}
	if fellowship.Level != model.LevelTraining {
		t.Errorf("training level = %v, want %v", fellowship.Level, model.LevelTraining)
	}

	if len(details.Certifications) != 1 {
		t.Fatalf("Certifications = %d entries, want 1", len(details.Certifications))
	}
	cert := details.Certifications[0]
	// The year lives in the title here, so it is stripped from the title
	// and still recorded.
	if got, want := cert.Type, "Board Certification"; got != want {
		t.Errorf("certification type = %q, want %q", got, want)
	}
	if cert.Year == nil || *cert.Year != 2012 {
		t.Errorf("certification year = %v, want 2012", cert.Year)
	}
	if cert.Level != model.LevelCertification {
		t.Errorf("certification level = %v, want %v", cert.Level, model.LevelCertification)
	}
}

func TestParseDetailsEmptyPage(t *testing.T) {
	t.Parallel()

	details, err := ParseDetails(`<html><body><p>Maintenance</p></body></html>`, nil)
	if err != nil {
		t.Fatalf("ParseDetails() error = %v", err)
	}
	if details.Bio != "" || details.Degrees != nil || details.Training != nil ||
		details.Certifications != nil || details.ScholarlyWorksURI != nil ||
		details.ConditionsTreated != nil || details.ServicesOffered != nil ||
		details.Ratings != nil {
		t.Errorf("ParseDetails() on empty page = %+v, want zero-valued details", details)
	}
}

func TestExtractYear(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		in       string
		wantText string
		wantYear int // 0 means no year
	}{
		{name: "trailing year", in: "Temple University, 2005", wantText: "Temple University", wantYear: 2005},
		{name: "interior year", in: "Fellowship, 2015, Cardiology", wantText: "Fellowship, Cardiology", wantYear: 2015},
		{name: "no year", in: "Penn State University", wantText: "Penn State University"},
		{name: "only year", in: "2019", wantText: "", wantYear: 2019},
		{name: "first of two tokens wins", in: "Class of 2001, revalidated 2011", wantText: "Class of, revalidated 2011", wantYear: 2001},
		{name: "empty", in: "", wantText: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			gotText, gotYear := extractYear(tt.in)
			if gotText != tt.wantText {
				t.Errorf("extractYear(%q) text = %q, want %q", tt.in, gotText, tt.wantText)
			}
			switch {
			case tt.wantYear == 0 && gotYear != nil:
				t.Errorf("extractYear(%q) year = %d, want none", tt.in, *gotYear)
			case tt.wantYear != 0 && (gotYear == nil || *gotYear != tt.wantYear):
				t.Errorf("extractYear(%q) year = %v, want %d", tt.in, gotYear, tt.wantYear)
			}
		})
	}
}

func TestParseRatings(t *testing.T) {
	t.Parallel()

	doc, err := parseDocument(detailPage)
	if err != nil {
		t.Fatal(err)
	}
	ratings := parseRatings(doc)
	if len(ratings) != 3 {
		t.Fatalf("parseRatings() = %d ratings, want 3", len(ratings))
	}

	overall := ratings[0]
	if overall.Category != "Overall" || overall.Value != 4.8 || overall.Max != 5 || overall.Count != 132 {
		t.Errorf("aggregate rating = %+v, want Overall 4.8/5 from 132", overall)
	}
	if overall.Source != model.SourceLvhn {
		t.Errorf("aggregate source = %v, want %v", overall.Source, model.SourceLvhn)
	}

	explains := ratings[1]
	if explains.Category != "Explains Conditions Well" || explains.Value != 4.9 || explains.Count != 57 {
		t.Errorf("category rating = %+v, want Explains Conditions Well 4.9 from 57", explains)
	}
	listens := ratings[2]
	if listens.Category != "Listens Carefully" || listens.Value != 4.7 || listens.Count != 44 {
		t.Errorf("category rating = %+v, want Listens Carefully 4.7 from 44", listens)
	}
}

func TestParseRatingsPartial(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		page string
		want int
	}{
		{
			name: "no ratings section",
			page: `<html><body></body></html>`,
			want: 0,
		},
		{
			name: "aggregate only",
			page: `<html><body><div class="ratings"><p>3.5 out of 5</p></div></body></html>`,
			want: 1,
		},
		{
			name: "category missing score is skipped",
			page: `<html><body><div class="ratings">
				<div class="rating-category">Label (10)</div>
				<div class="rating-category">Other (4)<span class="score">4.0</span></div>
			</div></body></html>`,
			want: 1,
		},
		{
			name: "category label without count is skipped",
			page: `<html><body><div class="ratings">
				<div class="rating-category">Just A Label<span class="score">4.0</span></div>
			</div></body></html>`,
			want: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc, err := parseDocument(tt.page)
			if err != nil {
				t.Fatal(err)
			}
			if got := parseRatings(doc); len(got) != tt.want {
				t.Errorf("parseRatings() = %d ratings, want %d", len(got), tt.want)
			}
		})
	}
}
