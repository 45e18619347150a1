package email

import (
	"bytes"
	"html/template"
)

// BaseEmailData contains data for the base email wrapper
type BaseEmailData struct {
	Content template.HTML
	Subject string
}

// baseEmailTemplate is the reusable wrapper for all emails
const baseEmailTemplate = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Subject}}</title>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif;
            line-height: 1.6;
            color: #333;
            margin: 0;
            padding: 0;
            background-color: #f5f5f5;
        }
        .email-wrapper {
            max-width: 600px;
            margin: 0 auto;
            background-color: #ffffff;
        }
        .header {
            background-color: #1A1A1A;
            padding: 20px 30px;
        }
        .brand-name {
            color: #F5B321;
            font-size: 22px;
            font-weight: 700;
        }
        .brand-tagline {
            color: #ccc;
            font-size: 13px;
        }
        .content {
            padding: 30px;
        }
        .content h2 {
            margin-top: 0;
            color: #1A1A1A;
        }
        .detail-table {
            width: 100%;
            border-collapse: collapse;
            margin: 15px 0;
        }
        .detail-table td {
            padding: 8px 12px;
            border-bottom: 1px solid #eee;
            font-size: 14px;
        }
        .detail-table td:first-child {
            font-weight: 600;
            width: 160px;
            color: #555;
        }
        .message-box {
            background-color: #f9f9f9;
            border-left: 4px solid #F5B321;
            padding: 15px;
            margin: 15px 0;
            white-space: pre-wrap;
        }
        .footer {
            background-color: #1A1A1A;
            color: #999;
            padding: 20px 30px;
            font-size: 12px;
            text-align: center;
        }
        .footer a {
            color: #F5B321;
            text-decoration: none;
        }
    </style>
</head>
<body>
    <div class="email-wrapper">
        <div class="header">
            <div class="brand-name">Coleman MX</div>
            <div class="brand-tagline">Motocross Coaching &amp; Merch</div>
        </div>

        <div class="content">
            {{.Content}}
        </div>

        <div class="footer">
            <a href="mailto:ride@colemanmx.com">ride@colemanmx.com</a>
            <span style="color: #555; margin: 0 8px;">&bull;</span>
            <a href="https://www.colemanmx.com">www.colemanmx.com</a>
        </div>
    </div>
</body>
</html>
`

// WrapEmailContent wraps content in the base email template
func WrapEmailContent(content string, subject string) (string, error) {
	tmpl := template.Must(template.New("base").Parse(baseEmailTemplate))

	data := BaseEmailData{
		Content: template.HTML(content),
		Subject: subject,
	}

	var result bytes.Buffer
	if err := tmpl.Execute(&result, data); err != nil {
		return "", err
	}

	return result.String(), nil
}
