package backendapi

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"github.com/JuanseMastrangelo/asset-movements-console/internal/core/domain"
)

// SaveValues uploads the values step as multipart/form-data to POST /values.
func (c *Client) SaveValues(ctx context.Context, transactionID string, values domain.Values, documents []domain.Document) error {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	fields := []struct{ name, value string }{
		{"transactionId", transactionID},
		{"currencyAmount", values.CurrencyAmount.String()},
		{"exchangeRate", values.ExchangeRate.String()},
		{"totalAmount", values.TotalAmount.String()},
		{"notes", values.Notes},
	}
	for _, f := range fields {
		if err := w.WriteField(f.name, f.value); err != nil {
			return fmt.Errorf("failed to write field %s: %w", f.name, err)
		}
	}

	for _, doc := range documents {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fileDisposition("files", doc.Name))
		header.Set("Content-Type", doc.ContentType)
		part, err := w.CreatePart(header)
		if err != nil {
			return fmt.Errorf("failed to add file %s: %w", doc.Name, err)
		}
		if _, err := part.Write(doc.Content); err != nil {
			return fmt.Errorf("failed to write file %s: %w", doc.Name, err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finish multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("/values", nil), &body)
	if err != nil {
		return fmt.Errorf("failed to build values request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Accept", "application/json")
	return c.send(req, nil)
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func fileDisposition(field, filename string) string {
	return fmt.Sprintf(`form-data; name="%s"; filename="%s"`, quoteEscaper.Replace(field), quoteEscaper.Replace(filename))
}
