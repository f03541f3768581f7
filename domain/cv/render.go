package cv

import (
	"errors"
	"html/template"
	"strings"
)

// ErrEmptyProfile is returned when there is nothing to render.
var ErrEmptyProfile = errors.New("cv: profile is empty")

var docTemplate = template.Must(template.New("cv").Parse(`<!DOCTYPE html>
<html lang="ar" dir="rtl">
<head>
<meta charset="utf-8">
<title>{{.FullName}}</title>
<style>
  body { font-family: "Segoe UI", Tahoma, sans-serif; color: #1f2933; margin: 0; }
  .page { max-width: 760px; margin: 0 auto; padding: 40px 48px; }
  header { border-bottom: 3px solid #2f6f4f; padding-bottom: 16px; margin-bottom: 24px; }
  h1 { margin: 0; font-size: 28px; }
  .title { color: #2f6f4f; font-size: 16px; margin-top: 4px; }
  .contact { color: #52606d; font-size: 13px; margin-top: 8px; }
  section { margin-bottom: 20px; }
  h2 { font-size: 15px; color: #2f6f4f; border-bottom: 1px solid #d9e2ec; padding-bottom: 4px; }
  .entry { margin-bottom: 10px; }
  .entry .head { font-weight: 600; }
  .entry .meta { color: #52606d; font-size: 13px; }
  .tags span { display: inline-block; background: #eef4f0; border-radius: 4px; padding: 2px 10px; margin: 0 0 6px 6px; font-size: 13px; }
</style>
</head>
<body>
<div class="page">
<header>
  <h1>{{.FullName}}</h1>
  {{if .Title}}<div class="title">{{.Title}}</div>{{end}}
  {{if .ContactLine}}<div class="contact">{{.ContactLine}}</div>{{end}}
</header>
{{if .Summary}}<section><h2>نبذة</h2><p>{{.Summary}}</p></section>{{end}}
{{if .Education}}<section><h2>التعليم</h2>
{{range .Education}}<div class="entry">
  <div class="head">{{.Institution}}</div>
  <div class="meta">{{.Degree}}{{if .GPA}} — المعدل {{.GPA}}{{if .Scale}} من {{.Scale}}{{end}}{{end}}{{if .Years}} ({{.Years}}){{end}}</div>
</div>{{end}}</section>{{end}}
{{if .Experience}}<section><h2>الخبرات</h2>
{{range .Experience}}<div class="entry">
  <div class="head">{{.Role}}{{if .Company}} — {{.Company}}{{end}}</div>
  {{if .Period}}<div class="meta">{{.Period}}</div>{{end}}
  {{if .Description}}<p>{{.Description}}</p>{{end}}
</div>{{end}}</section>{{end}}
{{if .Skills}}<section><h2>المهارات</h2><div class="tags">{{range .Skills}}<span>{{.}}</span>{{end}}</div></section>{{end}}
{{if .Languages}}<section><h2>اللغات</h2><div class="tags">{{range .Languages}}<span>{{.}}</span>{{end}}</div></section>{{end}}
</div>
</body>
</html>
`))

type renderData struct {
	Profile
	ContactLine string
}

// Render produces the styled HTML document for a profile.
func Render(p Profile) (string, error) {
	if p.Empty() {
		return "", ErrEmptyProfile
	}

	var contact []string
	for _, s := range []string{p.Email, p.Phone, p.City} {
		if s != "" {
			contact = append(contact, s)
		}
	}

	var b strings.Builder
	err := docTemplate.Execute(&b, renderData{
		Profile:     p,
		ContactLine: strings.Join(contact, " · "),
	})
	if err != nil {
		return "", err
	}
	return b.String(), nil
}
