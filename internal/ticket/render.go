// Package ticket renders the barcode and QR images embedded in product
// records and printable label snapshots.
package ticket

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/png"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/boombuler/barcode/qr"
)

const (
	barcodeWidth  = 300
	barcodeHeight = 120
	qrSize        = 200

	dataURIPrefix = "data:image/png;base64,"
)

// RenderBarcode encodes the value as a Code 128 barcode and returns it as a
// PNG data URI ready for embedding in JSON responses.
func RenderBarcode(value string) (string, error) {
	if value == "" {
		return "", fmt.Errorf("barcode value must not be empty")
	}

	code, err := code128.Encode(value)
	if err != nil {
		return "", fmt.Errorf("failed to encode barcode: %w", err)
	}

	scaled, err := barcode.Scale(code, barcodeWidth, barcodeHeight)
	if err != nil {
		return "", fmt.Errorf("failed to scale barcode: %w", err)
	}

	return encodePNG(scaled)
}

// RenderQR encodes the payload as a QR code and returns it as a PNG data URI.
func RenderQR(payload string) (string, error) {
	if payload == "" {
		return "", fmt.Errorf("QR payload must not be empty")
	}

	code, err := qr.Encode(payload, qr.M, qr.Auto)
	if err != nil {
		return "", fmt.Errorf("failed to encode QR code: %w", err)
	}

	scaled, err := barcode.Scale(code, qrSize, qrSize)
	if err != nil {
		return "", fmt.Errorf("failed to scale QR code: %w", err)
	}

	return encodePNG(scaled)
}

func encodePNG(img barcode.Barcode) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("failed to encode PNG: %w", err)
	}
	return dataURIPrefix + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
