package email

import (
	"html/template"
	texttemplate "text/template"
)

var (
	welcomeText = texttemplate.Must(texttemplate.New("welcome.txt").Parse(
		`Hi {{.Name}},

Thanks for joining Salt & Scoville. Take the heat quiz to find sauces that match your tolerance.
`))

	welcomeHTML = template.Must(template.New("welcome.html").Parse(`<html>
  <body style="font-family: sans-serif;">
    <h2>Welcome!</h2>
    <p>Hi {{.Name}},</p>
    <p>Thanks for joining Salt &amp; Scoville. Take the heat quiz to find sauces that match your tolerance.</p>
  </body>
</html>
`))

	orderText = texttemplate.Must(texttemplate.New("order.txt").Parse(
		`Hi {{.Name}},

We received your order {{.Order.Number}}.
{{range .Order.Lines}}
  {{.Qty}} x {{.Name}}  {{.LineTotal}}{{end}}

Subtotal: {{.Order.Subtotal}}
{{- if .Order.Discount}}
Discount: -{{.Order.Discount}}{{end}}
Shipping: {{.Order.Shipping}}
Total:    {{.Order.Total}}
{{- if .Order.Points}}

You earned {{.Order.Points}} loyalty points.{{end}}
`))

	orderHTML = template.Must(template.New("order.html").Parse(`<html>
  <body style="font-family: sans-serif;">
    <h2>Order confirmed</h2>
    <p>Hi {{.Name}},</p>
    <p>We received your order <strong>{{.Order.Number}}</strong>.</p>
    <table>
      {{- range .Order.Lines}}
      <tr><td>{{.Qty}} &times; {{.Name}}</td><td>{{.LineTotal}}</td></tr>
      {{- end}}
      <tr><td>Subtotal</td><td>{{.Order.Subtotal}}</td></tr>
      {{- if .Order.Discount}}
      <tr><td>Discount</td><td>-{{.Order.Discount}}</td></tr>
      {{- end}}
      <tr><td>Shipping</td><td>{{.Order.Shipping}}</td></tr>
      <tr><td><strong>Total</strong></td><td><strong>{{.Order.Total}}</strong></td></tr>
    </table>
    {{- if .Order.Points}}
    <p>You earned {{.Order.Points}} loyalty points.</p>
    {{- end}}
  </body>
</html>
`))
)
