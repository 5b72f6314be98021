// internal/pkg/pdf/receipt.go
package pdf

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/order"
)

// Service handles PDF generation
type Service struct {
	config *config.Config
}

// NewService creates a new PDF service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
	}
}

// GenerateReceipt generates a PDF receipt for an order
func (s *Service) GenerateReceipt(o *order.Order) (*bytes.Buffer, error) {
	data := receiptData{
		StoreName: s.config.App.StoreName,
		StoreURL:  s.config.App.StoreURL,
		IssuedOn:  o.CreatedAt.Format("January 2, 2006"),
		Order:     o,
	}

	htmlContent, err := s.generateHTML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to generate HTML: %w", err)
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader([]byte(htmlContent)))
	page.FooterRight.Set("[page]")
	page.FooterFontSize.Set(9)
	page.Zoom.Set(0.95)

	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create PDF: %w", err)
	}

	return bytes.NewBuffer(pdfg.Bytes()), nil
}

// generateHTML generates HTML content from template
func (s *Service) generateHTML(data receiptData) (string, error) {
	tmpl := template.Must(template.New("receipt").Parse(receiptTemplate))

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// receiptData represents the data passed to the receipt template
type receiptData struct {
	StoreName string
	StoreURL  string
	IssuedOn  string
	Order     *order.Order
}

// Receipt HTML template
const receiptTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Receipt {{.Order.OrderNumber}}</title>
    <style>
        body {
            font-family: Arial, sans-serif;
            margin: 0;
            padding: 20px;
            color: #333;
        }
        .header {
            display: flex;
            justify-content: space-between;
            margin-bottom: 30px;
            border-bottom: 2px solid #eee;
            padding-bottom: 20px;
        }
        .receipt-title {
            font-size: 28px;
            font-weight: bold;
            color: #2563eb;
            margin-bottom: 10px;
        }
        .meta {
            margin-bottom: 30px;
            color: #666;
        }
        table.items {
            width: 100%;
            border-collapse: collapse;
            margin-bottom: 30px;
        }
        table.items th {
            text-align: left;
            border-bottom: 2px solid #333;
            padding: 8px 4px;
        }
        table.items td {
            border-bottom: 1px solid #eee;
            padding: 8px 4px;
        }
        .amount {
            text-align: right;
        }
        .total-row td {
            font-weight: bold;
            font-size: 16px;
            border-top: 2px solid #333;
        }
        .address {
            margin-top: 30px;
            color: #666;
        }
    </style>
</head>
<body>
    <div class="header">
        <div>
            <div class="receipt-title">{{.StoreName}}</div>
            <div>{{.StoreURL}}</div>
        </div>
        <div>
            <h2>Receipt</h2>
            <div>{{.Order.OrderNumber}}</div>
        </div>
    </div>

    <div class="meta">
        <div>Order placed: {{.IssuedOn}}</div>
        <div>Billed to: {{.Order.Email}}</div>
    </div>

    <table class="items">
        <thead>
            <tr>
                <th>Item</th>
                <th class="amount">Unit price</th>
                <th class="amount">Qty</th>
                <th class="amount">Total</th>
            </tr>
        </thead>
        <tbody>
            {{range .Order.Items}}
            <tr>
                <td>{{.Title}}</td>
                <td class="amount">${{printf "%.2f" .UnitPrice}}</td>
                <td class="amount">{{.Quantity}}</td>
                <td class="amount">${{printf "%.2f" .LineTotal}}</td>
            </tr>
            {{end}}
            <tr class="total-row">
                <td colspan="3">Total ({{.Order.Currency}})</td>
                <td class="amount">${{printf "%.2f" .Order.Total}}</td>
            </tr>
        </tbody>
    </table>

    <div class="address">
        <strong>Shipping to</strong><br>
        {{.Order.ShippingAddress.FirstName}} {{.Order.ShippingAddress.LastName}}<br>
        {{.Order.ShippingAddress.AddressLine1}}<br>
        {{if .Order.ShippingAddress.AddressLine2}}{{.Order.ShippingAddress.AddressLine2}}<br>{{end}}
        {{.Order.ShippingAddress.City}}, {{.Order.ShippingAddress.State}} {{.Order.ShippingAddress.PostalCode}}<br>
        {{.Order.ShippingAddress.Country}}
    </div>
</body>
</html>
`
