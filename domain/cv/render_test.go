package cv

import (
	"errors"
	"strings"
	"testing"
)

func sampleProfile() Profile {
	return Profile{
		FullName: "سارة العتيبي",
		Title:    "مهندسة برمجيات",
		Email:    "sara@example.com",
		City:     "الرياض",
		Summary:  "خريجة علوم حاسب.",
		Education: []Education{
			{Institution: "جامعة الملك سعود", Degree: "بكالوريوس علوم حاسب", GPA: "4.33", Scale: "5", Years: "2020-2024"},
		},
		Experience: []Experience{
			{Company: "شركة تقنية", Role: "مطورة", Period: "2024", Description: "تطوير تطبيقات."},
		},
		Skills:    []string{"Go", "SQL"},
		Languages: []string{"العربية", "English"},
	}
}

func TestRender(t *testing.T) {
	doc, err := Render(sampleProfile())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	for _, want := range []string{
		"سارة العتيبي",
		"جامعة الملك سعود",
		"المعدل 4.33 من 5",
		`dir="rtl"`,
		"<style>",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("rendered document missing %q", want)
		}
	}
}

func TestRenderDeterministic(t *testing.T) {
	a, err := Render(sampleProfile())
	if err != nil {
		t.Fatal(err)
	}
	b, err := Render(sampleProfile())
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Error("identical profiles rendered differently")
	}
}

func TestRenderEscapesHTML(t *testing.T) {
	p := sampleProfile()
	p.Summary = `<script>alert("x")</script>`
	doc, err := Render(p)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(doc, "<script>alert") {
		t.Error("profile content was not escaped")
	}
}

func TestRenderEmpty(t *testing.T) {
	if _, err := Render(Profile{}); !errors.Is(err, ErrEmptyProfile) {
		t.Errorf("Render(empty) err = %v, want ErrEmptyProfile", err)
	}
}
