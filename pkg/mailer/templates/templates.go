// Package templates renders the transactional mails the worker sends.
package templates

import (
	"bytes"
	"fmt"
	"html/template"
)

const orderConfirmationHTML = `<!DOCTYPE html>
<html>
<body style="font-family: sans-serif; color: #333;">
  <h2>訂單成立</h2>
  <p>{{.Account}} 您好，已收到您的訂單（編號 {{.OrderID}}）。</p>
  <table cellpadding="6" cellspacing="0" border="0">
    <tr><th align="left">品項</th><th align="left">麵條</th><th align="right">數量</th><th align="right">單價</th></tr>
    {{range .Items}}
    <tr><td>{{.Name}}</td><td>{{.Noodle}}</td><td align="right">{{.Quantity}}</td><td align="right">{{.Price}}</td></tr>
    {{end}}
  </table>
  <p><strong>合計：{{.Total}} 元</strong></p>
  <p>取件人：{{.Name}}（{{.Phone}}）<br>地址：{{.Address}}</p>
</body>
</html>`

var orderConfirmation = template.Must(template.New("order_confirmation").Parse(orderConfirmationHTML))

// RenderOrderConfirmation renders the confirmation mail body.
func RenderOrderConfirmation(data any) (subject, html string, err error) {
	var buf bytes.Buffer
	if err := orderConfirmation.Execute(&buf, data); err != nil {
		return "", "", fmt.Errorf("render order_confirmation: %w", err)
	}
	return "訂單成立通知", buf.String(), nil
}
