package report

import "html/template"

// reportData представляет данные для шаблона отчета
type reportData struct {
	FullName        string
	Age             int
	Gender          string
	Region          string
	Specializations []string
	PhoneNumber     string
	CVURL           string

	AptitudeScore int
	Grade         int

	InterpersonalResult         string
	InterpersonalRecommendation string
	TechnicalResult             string
	TechnicalRecommendation     string

	GeneratedAt string
}

var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="ru">
<head>
<meta charset="utf-8">
<title>Резюме кандидата</title>
<style>
  body { font-family: "DejaVu Sans", Arial, sans-serif; margin: 40px; color: #222; }
  h1 { font-size: 22px; border-bottom: 2px solid #444; padding-bottom: 8px; }
  h2 { font-size: 16px; margin-top: 28px; color: #333; }
  table { border-collapse: collapse; margin-top: 12px; }
  td { padding: 4px 12px 4px 0; vertical-align: top; }
  td.label { color: #666; white-space: nowrap; }
  .score { font-size: 20px; font-weight: bold; }
  .narrative { white-space: pre-wrap; margin-top: 6px; }
  .footer { margin-top: 40px; font-size: 11px; color: #999; }
</style>
</head>
<body>
<h1>Резюме кандидата: {{.FullName}}</h1>

<table>
  <tr><td class="label">Возраст</td><td>{{.Age}}</td></tr>
  <tr><td class="label">Пол</td><td>{{.Gender}}</td></tr>
  <tr><td class="label">Регион</td><td>{{.Region}}</td></tr>
  <tr><td class="label">Телефон</td><td>{{.PhoneNumber}}</td></tr>
  <tr><td class="label">Категории</td><td>{{range $i, $s := .Specializations}}{{if $i}}, {{end}}{{$s}}{{end}}</td></tr>
  {{if .CVURL}}<tr><td class="label">Резюме</td><td><a href="{{.CVURL}}">{{.CVURL}}</a></td></tr>{{end}}
</table>

<h2>IQ тест</h2>
<p class="score">{{.AptitudeScore}} баллов — категория {{.Grade}}</p>

<h2>Софт-скиллы: результат</h2>
<p class="narrative">{{.InterpersonalResult}}</p>

<h2>Софт-скиллы: рекомендации</h2>
<p class="narrative">{{.InterpersonalRecommendation}}</p>

<h2>Технические навыки: результат</h2>
<p class="narrative">{{.TechnicalResult}}</p>

<h2>Технические навыки: рекомендации</h2>
<p class="narrative">{{.TechnicalRecommendation}}</p>

<p class="footer">Сформировано автоматически {{.GeneratedAt}}</p>
</body>
</html>
`))
