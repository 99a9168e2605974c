package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"salestracker/internal/models"
	"salestracker/internal/repository"
)

const dateLayout = "2006-01-02"

// requiredColumns must all be present in the CSV header, in any order.
var requiredColumns = []string{"customer_name", "amount", "date"}

// IngestService turns a raw CSV payload into persisted transactions.
// Validation is all-or-nothing across the whole file: nothing is written
// until every row has passed, so a retry after fixing one bad row never
// duplicates earlier rows.
type IngestService struct {
	txRepo repository.Transactions
}

func NewIngestService(txRepo repository.Transactions) *IngestService {
	return &IngestService{txRepo: txRepo}
}

// Ingest parses, validates and persists the payload. Returns the number of
// rows written. Error precedence: payload encoding, then header columns,
// then per-row data in file order.
func (s *IngestService) Ingest(ctx context.Context, raw []byte, uploadedBy string) (int, error) {
	if !utf8.Valid(raw) {
		return 0, ErrMalformedFile
	}

	reader := csv.NewReader(bytes.NewReader(raw))
	reader.FieldsPerRecord = -1 // row widths are checked per row, with row numbers

	cols, err := readHeader(reader)
	if err != nil {
		return 0, err
	}

	batch, err := stageRows(reader, cols, uploadedBy)
	if err != nil {
		return 0, err
	}
	return s.txRepo.InsertBatch(ctx, batch)
}

// columnIndex maps the required column names to their header positions.
type columnIndex struct {
	customerName int
	amount       int
	date         int
	width        int // minimum fields a data row must have
}

func readHeader(reader *csv.Reader) (columnIndex, error) {
	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		// An empty file has no header at all, so every column is missing.
		return columnIndex{}, &MissingColumnsError{Columns: requiredColumns}
	}
	if err != nil {
		return columnIndex{}, ErrMalformedFile
	}

	// Tolerate a UTF-8 BOM in front of the first column name.
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}

	pos := make(map[string]int, len(header))
	for i, name := range header {
		pos[name] = i
	}

	var missing []string
	for _, name := range requiredColumns {
		if _, ok := pos[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return columnIndex{}, &MissingColumnsError{Columns: missing}
	}

	cols := columnIndex{
		customerName: pos["customer_name"],
		amount:       pos["amount"],
		date:         pos["date"],
	}
	cols.width = cols.customerName
	for _, i := range []int{cols.amount, cols.date} {
		if i > cols.width {
			cols.width = i
		}
	}
	cols.width++
	return cols, nil
}

// stageRows validates every data row and builds the candidate batch.
// The first failure aborts the whole upload with its 1-indexed row number.
func stageRows(reader *csv.Reader, cols columnIndex, uploadedBy string) ([]models.Transaction, error) {
	var batch []models.Transaction
	for rowNum := 1; ; rowNum++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &InvalidRowError{Row: rowNum, Reason: err.Error()}
		}
		if len(record) < cols.width {
			return nil, &InvalidRowError{
				Row:    rowNum,
				Reason: fmt.Sprintf("expected at least %d fields, got %d", cols.width, len(record)),
			}
		}

		dateStr := record[cols.date]
		if _, err := time.Parse(dateLayout, dateStr); err != nil {
			return nil, &InvalidRowError{
				Row:    rowNum,
				Reason: fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", dateStr),
			}
		}

		amountStr := record[cols.amount]
		amount, err := strconv.ParseFloat(amountStr, 64)
		if err != nil {
			return nil, &InvalidRowError{
				Row:    rowNum,
				Reason: fmt.Sprintf("invalid amount %q", amountStr),
			}
		}

		batch = append(batch, models.Transaction{
			CustomerName: record[cols.customerName], // raw value, by contract not trimmed
			Amount:       amount,
			Date:         dateStr,
			UploadedBy:   uploadedBy,
		})
	}
	return batch, nil
}
