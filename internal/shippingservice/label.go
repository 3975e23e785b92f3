package shippingservice

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/jcmexdev/order-fulfillment/internal/api/shippingv1"
)

var labelTmpl = template.Must(template.New("label").Parse(labelHTML))

type labelData struct {
	TrackingNumber string
	Customer       shippingv1.Customer
	Products       []shippingv1.Product
}

// renderLabel produces the HTML label document for a request.
func renderLabel(trackingNumber string, req shippingv1.LabelRequest) (string, error) {
	var b strings.Builder
	err := labelTmpl.Execute(&b, labelData{
		TrackingNumber: trackingNumber,
		Customer:       req.Customer,
		Products:       req.Products,
	})
	if err != nil {
		return "", fmt.Errorf("render label %s: %w", trackingNumber, err)
	}
	return b.String(), nil
}

const labelHTML = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>Shipping Label {{.TrackingNumber}}</title>
</head>
<body>
  <h1>Shipping Label</h1>
  <p class="tracking">Tracking Number: {{.TrackingNumber}}</p>
  <div class="ship-to">
    <h2>Ship To</h2>
    <p>{{.Customer.FirstName}} {{.Customer.LastName}}</p>
    <p>{{.Customer.ShippingAddress.Street1}}</p>
    {{- if .Customer.ShippingAddress.Street2}}
    <p>{{.Customer.ShippingAddress.Street2}}</p>
    {{- end}}
    <p>{{.Customer.ShippingAddress.City}}, {{.Customer.ShippingAddress.State}} {{.Customer.ShippingAddress.Zip}}</p>
  </div>
  <div class="contents">
    <h2>Contents</h2>
    <ul>
    {{- range .Products}}
      <li>{{.Name}} - {{.Description}}</li>
    {{- end}}
    </ul>
  </div>
</body>
</html>
`
