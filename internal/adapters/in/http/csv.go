package http

import (
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"strings"

	"routeplan/internal/core/application/usecases/commands"
	"routeplan/internal/core/domain/model/order"
)

var errMissingHeader = errors.New("csv requires a header row")

// csvColumns lists the recognized header names. Header matching is
// case-insensitive and tolerates spaces instead of underscores and unit
// suffixes in parentheses, so "Weight (kg)" and "weight_kg" both match.
var csvColumns = map[string]struct{}{
	"customer_name":    {},
	"delivery_address": {},
	"weight_kg":        {},
	"priority":         {},
}

// normalizeHeader maps a header cell onto its canonical column name:
// lowercased, parentheses stripped, whitespace runs collapsed to one
// underscore.
func normalizeHeader(name string) string {
	normalized := strings.ToLower(strings.TrimSpace(name))
	normalized = strings.NewReplacer("(", " ", ")", " ").Replace(normalized)
	return strings.Join(strings.Fields(normalized), "_")
}

// parseOrderRows reads a CSV upload into order rows. Line numbers are
// 1-based file positions (the header is line 1) so rejections can point the
// operator at the exact line. Malformed numeric cells fall back to the order
// defaults instead of rejecting the row; missing required text fields are
// left empty and rejected later by command validation.
func parseOrderRows(r io.Reader) ([]commands.OrderRow, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errMissingHeader
		}
		return nil, err
	}

	columns := make(map[int]string, len(header))
	for i, name := range header {
		normalized := normalizeHeader(name)
		if _, known := csvColumns[normalized]; known {
			columns[i] = normalized
		}
	}

	rows := make([]commands.OrderRow, 0)
	line := 1
	for {
		record, err := reader.Read()
		line++
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		row := commands.OrderRow{
			Line:     line,
			WeightKg: order.DefaultWeightKg,
			Priority: order.DefaultPriority,
		}
		for i, cell := range record {
			value := strings.TrimSpace(cell)
			switch columns[i] {
			case "customer_name":
				row.CustomerName = value
			case "delivery_address":
				row.DeliveryAddress = value
			case "weight_kg":
				if weight, parseErr := strconv.ParseFloat(value, 64); parseErr == nil {
					row.WeightKg = weight
				}
			case "priority":
				if priority, parseErr := strconv.Atoi(value); parseErr == nil && priority > 0 {
					row.Priority = priority
				}
			}
		}

		rows = append(rows, row)
	}

	return rows, nil
}
