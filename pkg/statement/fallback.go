package statement

import "strings"

// Detection is one recognized text region from a page image, as produced by
// the image-recognition backend.
type Detection struct {
	Page       int
	Text       string
	Confidence float64
}

// RowsFromDetections extracts rows from per-region OCR detections when no
// line parser matched. Without issuer structure only the shared heuristics
// apply: a region with no parseable amount is discarded, and every field
// confidence is scaled by the region's own recognition confidence.
func RowsFromDetections(detections []Detection) []Row {
	var rows []Row
	for _, det := range detections {
		amount, amountConf := LargestAmount(det.Text)
		if amountConf == 0 {
			continue
		}
		parsedDate, dateConf := ParseDate(det.Text)
		txType, typeConf := InferTransactionType(det.Text)
		txType = ApplyTransferOverrides(txType, det.Text)
		method := DetectPaymentMethod(det.Text)
		ref, name := ExtractCounterparty(det.Text)

		rows = append(rows, Row{
			RawText:          det.Text,
			TransactionDate:  parsedDate,
			Description:      strings.TrimSpace(det.Text),
			Amount:           amount,
			TransactionType:  txType,
			PaymentMethod:    method,
			CounterpartyRef:  ref,
			CounterpartyName: name,
			Confidence: map[string]float64{
				"amount":           amountConf * det.Confidence,
				"date":             dateConf * det.Confidence,
				"transaction_type": typeConf,
				"description":      det.Confidence,
				"payment_method":   methodConf(method, 0.70),
			},
			SortOrder: len(rows),
		})
	}
	return rows
}
