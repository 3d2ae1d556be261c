package notify

import (
	"bytes"
	"html/template"
)

const shellTemplate = `<!DOCTYPE html>
<html>
<body style="margin:0;padding:0;background:#f1f5f9;font-family:Arial,sans-serif;">
<table width="100%" cellpadding="0" cellspacing="0" style="padding:24px 0;">
<tr><td align="center">
<table width="560" cellpadding="0" cellspacing="0" style="background:#ffffff;border-radius:12px;overflow:hidden;">
<tr><td style="background:#1e293b;color:#ffffff;padding:20px 28px;font-size:18px;font-weight:bold;">{{.Brand}}</td></tr>
<tr><td style="padding:28px;color:#0f172a;font-size:14px;line-height:1.6;">
<h3 style="margin-top:0;">{{.Heading}}</h3>
{{.Body}}
{{if .Link}}
<p style="margin:28px 0;"><a href="{{.Link}}" style="background-color:#1e293b;color:#ffffff;padding:12px 24px;text-decoration:none;border-radius:8px;font-weight:bold;display:inline-block;">{{.ButtonText}}</a></p>
<p style="font-size:12px;color:#64748b;">If the button does not work, open this link:<br><a href="{{.Link}}" style="color:#2563eb;word-break:break-all;">{{.Link}}</a></p>
{{end}}
</td></tr>
</table>
</td></tr>
</table>
</body>
</html>`

var shell = template.Must(template.New("shell").Parse(shellTemplate))

type shellData struct {
	Brand      string
	Heading    string
	Body       template.HTML
	Link       string
	ButtonText string
}

const bodyTemplate = `<p>{{.Intro}} <b>{{.EmployeeName}}</b>{{if .EmployeeID}} ({{.EmployeeID}}){{end}}.</p>
<table cellpadding="4" style="font-size:13px;color:#334155;">
{{if .Position}}<tr><td>Position</td><td>{{.Position}}</td></tr>{{end}}
{{if .Department}}<tr><td>Department</td><td>{{.Department}}</td></tr>{{end}}
<tr><td>Total score</td><td>{{printf "%.2f" .Total}} / 100</td></tr>
<tr><td>Status</td><td>{{.Status}}</td></tr>
</table>`

var body = template.Must(template.New("body").Parse(bodyTemplate))

type bodyData struct {
	Intro        string
	EmployeeName string
	EmployeeID   string
	Position     string
	Department   string
	Total        float64
	Status       string
}

func render(tpl *template.Template, data any) (string, error) {
	buf := new(bytes.Buffer)
	if err := tpl.Execute(buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
