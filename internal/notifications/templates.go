package notifications

import (
	"fmt"
	"html/template"
	"strings"
)

// Subjects follow the storefront's long-standing wording; the admin subject
// carries the customer name so the inbox is scannable.
const (
	subjectOrderConfirmation = "Order Confirmation - Cutiefy"
	subjectOrderDispatched   = "Order Dispatched - Cutiefy"
)

func subjectNewOrder(customerName string) string {
	return "New Order - " + customerName
}

var orderPlacedTemplate = template.Must(template.New("order-placed").Parse(`<!DOCTYPE html>
<html>
  <head>
    <style>
      body { font-family: Arial, sans-serif; color: #2C2C2C; }
      h1 { color: #D4AF37; }
      .container { max-width: 600px; margin: 0 auto; padding: 20px; }
      .header { background-color: #F8D4DC; padding: 20px; text-align: center; }
      .content { background-color: #FFF8F4; padding: 20px; }
      ul { list-style-type: none; padding: 0; }
      li { padding: 5px 0; }
    </style>
  </head>
  <body>
    <div class="container">
      <div class="header">
        <h1>Thank you for your order, {{.CustomerName}}!</h1>
      </div>
      <div class="content">
        <p>We've received your order with value ₹{{.OrderValue}}.</p>
        <ul>{{range .Items}}<li>{{.Name}} x{{.Quantity}} - ₹{{.Price}}</li>{{end}}</ul>
        <p>We will contact you shortly for payment details.</p>
      </div>
    </div>
  </body>
</html>`))

var newOrderAlertTemplate = template.Must(template.New("new-order-alert").Parse(`<!DOCTYPE html>
<html>
  <head>
    <style>
      body { font-family: Arial, sans-serif; }
      .container { max-width: 600px; margin: 0 auto; padding: 20px; }
    </style>
  </head>
  <body>
    <div class="container">
      <h1>New Order from {{.CustomerName}}</h1>
      <p>Order ID: {{.OrderID}}</p>
      <p>Value: ₹{{.OrderValue}}</p>
      <p>Contact: {{.Contact}}, {{.CustomerEmail}}</p>
    </div>
  </body>
</html>`))

var orderDispatchedTemplate = template.Must(template.New("order-dispatched").Parse(`<!DOCTYPE html>
<html>
  <head>
    <style>
      body { font-family: Arial, sans-serif; color: #2C2C2C; }
      h1 { color: #D4AF37; }
      .container { max-width: 600px; margin: 0 auto; padding: 20px; }
      .header { background-color: #F8D4DC; padding: 20px; text-align: center; }
      .content { background-color: #FFF8F4; padding: 20px; }
      table { width: 100%; border-collapse: collapse; }
      th, td { padding: 10px; text-align: left; border-bottom: 1px solid #ddd; }
      th { background-color: #FAD6C4; }
    </style>
  </head>
  <body>
    <div class="container">
      <div class="header">
        <h1>Your order is on its way, {{.CustomerName}}!</h1>
      </div>
      <div class="content">
        <table>
          <tr><th>Item</th><th>Qty</th><th>Price</th></tr>
          {{range .Items}}<tr><td>{{.Name}}</td><td>{{.Quantity}}</td><td>₹{{.Price}}</td></tr>{{end}}
        </table>
        <p>Subtotal: ₹{{.OrderValue}}</p>
        <p>Delivery Charges: ₹{{.DeliveryCharges}}</p>
        <p>Discount: ₹{{.DiscountApplied}}</p>
        <p><strong>Total Paid: ₹{{.PaymentReceived}}</strong></p>
        <p>Thank you for shopping with Cutiefy!</p>
      </div>
    </div>
  </body>
</html>`))

func renderTemplate(tpl *template.Template, event OrderEvent) (string, error) {
	var out strings.Builder
	if err := tpl.Execute(&out, event); err != nil {
		return "", fmt.Errorf("render %s template: %w", tpl.Name(), err)
	}
	return out.String(), nil
}
